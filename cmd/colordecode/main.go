/*
NAME
  colordecode is a command-line driver for the colorcore color-pipeline
  decoder: it synthesizes a planar RGB444 gray-ramp test pattern at the
  resolution given by its -width and -height flags, runs it through the
  full decode pipeline, and writes the packed output to a file.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements colordecode, a small CLI around the colorcore
// decoder.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/ausocean/colorcore/decoder"
	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/internal/logging"
)

// Logging configuration.
const (
	logMaxSizeMB  = 100
	logMaxBackups = 5
	logMaxAgeDays = 14
)

func main() {
	var (
		width    = flag.Int("width", 1920, "frame width")
		height   = flag.Int("height", 1080, "frame height")
		output   = flag.String("output", "out.raw", "output file path")
		format   = flag.String("format", "rgb24", "output pixel format: rgb24, rgb32, bgra, yuyv, uyvy, nv12")
		logPath  = flag.String("log", "", "log file path; empty logs to stderr")
		workers  = flag.Int("workers", runtime.GOMAXPROCS(0), "number of dispatcher worker threads")
	)
	flag.Parse()

	log := logging.New(logging.Info, os.Stderr)
	if *logPath != "" {
		log = logging.NewRollingFile(logging.Info, *logPath, logMaxSizeMB, logMaxBackups, logMaxAgeDays)
	}

	of, err := parseFormat(*format)
	if err != nil {
		log.Error("invalid format", "error", err.Error())
		os.Exit(1)
	}

	fd := frame.Descriptor{
		Width:        *width,
		Height:       *height,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: of,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}

	d := decoder.New(*workers, log)
	defer d.Close()

	src := grayRampSource{width: *width, height: *height}
	out := make([][]byte, fd.Height)
	rowBytes := bytesPerRow(of, fd.Width)
	for i := range out {
		out[i] = make([]byte, rowBytes)
	}

	status, err := d.Decode(fd, src, out, decoder.Options{})
	if err != nil {
		log.Error("decode failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("decode complete", "status", status.String())

	f, err := os.Create(*output)
	if err != nil {
		log.Error("create output file", "error", err.Error())
		os.Exit(1)
	}
	defer f.Close()
	for _, row := range out {
		if _, err := f.Write(row); err != nil {
			log.Error("write output row", "error", err.Error())
			os.Exit(1)
		}
	}
}

func parseFormat(s string) (frame.OutputFormat, error) {
	switch s {
	case "rgb24":
		return frame.OutputRGB24, nil
	case "rgb32":
		return frame.OutputRGB32, nil
	case "bgra":
		return frame.OutputBGRA, nil
	case "yuyv":
		return frame.OutputYUYV, nil
	case "uyvy":
		return frame.OutputUYVY, nil
	case "nv12":
		return frame.OutputNV12, nil
	default:
		return frame.OutputNothingDefined, fmt.Errorf("unknown format %q", s)
	}
}

func bytesPerRow(of frame.OutputFormat, width int) int {
	switch of {
	case frame.OutputRGB24:
		return width * 3
	case frame.OutputRGB32, frame.OutputBGRA:
		return width * 4
	case frame.OutputYUYV, frame.OutputUYVY:
		return width * 2
	case frame.OutputNV12:
		return width + ((width+1)/2)*2
	default:
		return width * 4
	}
}

// grayRampSource synthesizes a horizontal gray ramp test pattern, a stand-
// in for real wavelet-reconstructed channel data.
type grayRampSource struct {
	width, height int
}

func (s grayRampSource) Row(y int) ([][]int16, error) {
	ramp := make([]int16, s.width)
	for x := 0; x < s.width; x++ {
		ramp[x] = int16(8192 * x / s.width)
	}
	return [][]int16{ramp, ramp, ramp}, nil
}
