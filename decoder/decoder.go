/*
NAME
  decoder.go

DESCRIPTION
  decode_frame (§6): the public entry point wiring the Intermediate Row
  Assembler, Color-Pipeline Planner, Active-Metadata Applicator and Output
  Row Converter together across the Worker-Thread Dispatcher. Optional
  per-frame levels (SHARPEN, HORIZONTAL_3D/VERTICAL_3D, HISTOGRAM,
  OUTPUT_UNCOMPRESSED) are selected via Options (§5).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package decoder wires the color pipeline's stages into the single
// public entry point decode_frame names in §6: assemble, plan, apply,
// convert, dispatched one row at a time across a worker pool.
package decoder

import (
	"fmt"

	"github.com/ausocean/colorcore/apply"
	"github.com/ausocean/colorcore/assemble"
	"github.com/ausocean/colorcore/dispatch"
	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/internal/logging"
	"github.com/ausocean/colorcore/plan"
	"github.com/ausocean/colorcore/rowconv"
	"github.com/ausocean/colorcore/wp13"
)

// Status is the closed set of non-fatal outcomes decode_frame can report
// alongside a nil error, mirroring the never-fails planner behavior and
// the partial-row-failure tolerance of the dispatcher (§7).
type Status int

const (
	StatusOK Status = iota
	StatusPartialRows
	StatusLookFileFallback
	StatusFloatMatrixFallback
)

func (s Status) String() string {
	switch s {
	case StatusPartialRows:
		return "partial rows failed and were skipped"
	case StatusLookFileFallback:
		return "look-file load failed, used 1D LUT path"
	case StatusFloatMatrixFallback:
		return "matrix exceeded fixed-point range, used float path"
	default:
		return "ok"
	}
}

// ChannelSource supplies one row's worth of per-channel wavelet-
// reconstructed samples, the upstream collaborator behind Assemble
// (§4.4, §6).
type ChannelSource interface {
	Row(y int) ([][]int16, error)
}

// defaultSharpenStrength is used when Options.Sharpen is set but
// SharpenStrength is left at its zero value.
const defaultSharpenStrength = 0.25

// Decoder owns the Planner and Dispatcher for a decoding session and
// exposes Decode, the public decode_frame entry point.
type Decoder struct {
	Planner    *plan.Planner
	Dispatcher *dispatch.Dispatcher
	Log        logging.Logger
}

// New returns a Decoder with a fresh Planner and a Dispatcher sized to
// numWorkers (<=0 selects GOMAXPROCS).
func New(numWorkers int, log logging.Logger) *Decoder {
	pool := workerpoolAdapter{dispatcher: dispatch.New(numWorkers, log)}
	return &Decoder{
		Planner:    plan.NewPlanner(log, pool, nil),
		Dispatcher: pool.dispatcher,
		Log:        log,
	}
}

// Close releases the decoder's worker pool.
func (d *Decoder) Close() { d.Dispatcher.Close() }

// workerpoolAdapter lets plan.Planner's filling loops run across the same
// dispatcher the row pipeline uses, posting one JobBuildLUTCurves job per
// contiguous chunk rather than running a second pool.
type workerpoolAdapter struct {
	dispatcher *dispatch.Dispatcher
}

func (a workerpoolAdapter) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := a.dispatcher.NumWorkers()
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	mb := dispatch.NewMailbox()
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		s, e := start, end
		mb.Post(dispatch.Job{
			Kind: dispatch.JobBuildLUTCurves, Level: 0, StartIndex: w, EndIndex: w + 1,
			Run: func(int) error {
				fn(s, e)
				return nil
			},
		})
	}
	a.dispatcher.Run(mb)
}

// Decode runs one frame's worth of rows through assemble -> plan -> apply,
// then through whichever optional levels opts selects, and finally packs
// the result into out (one []byte slice per row, pre-sized by the caller
// to the packer's BytesPerRow(fd.Width), or to fd.Width*channels*2 when
// opts.Uncompressed is set).
func (d *Decoder) Decode(fd frame.Descriptor, src ChannelSource, out [][]byte, opts Options) (Status, error) {
	if err := fd.Validate(); err != nil {
		return StatusOK, fmt.Errorf("decoder: invalid frame descriptor: %w", err)
	}
	if len(out) < fd.Height {
		return StatusOK, fmt.Errorf("decoder: need %d output rows, got %d", fd.Height, len(out))
	}
	if opts.Stereo != StereoNone && opts.Geomesh == nil {
		return StatusOK, fmt.Errorf("decoder: stereo warp requested but Options.Geomesh is nil")
	}

	cfg := plan.CFHDConfig{}
	pl, err := d.Planner.BuildPlan(fd, cfg)
	if err != nil {
		return StatusOK, fmt.Errorf("decoder: build plan: %w", err)
	}

	var packer rowconv.PixelPacker
	if !opts.Uncompressed {
		packer, err = rowconv.NewPacker(fd.OutputFormat, fd.Colorspace)
		if err != nil {
			return StatusOK, fmt.Errorf("decoder: select output packer: %w", err)
		}
	}

	status := StatusOK
	if pl.Cube == nil && cfg.LookFilePath != "" {
		status = StatusLookFileFallback
	}
	if pl.UseFloatMatrix {
		status = StatusFloatMatrixFallback
	}

	// Each level's job closures read from and write to their own
	// never-reassigned buffer variable (finalized/sharpened/warped); only
	// the bookkeeping variable `current` advances between levels, and it
	// is captured into a fresh, block-scoped `prev` before every advance.
	// Mailbox.Post merely records jobs — none run until Dispatcher.Run,
	// after every reassignment below has already happened — so a job
	// closure that read a variable the way `current` is reused here would
	// observe its *final* value instead of the value at post time.
	level := 0
	finalized := make([]wp13.Row, fd.Height)
	var current []wp13.Row = finalized

	mb := dispatch.NewMailbox()
	mb.Post(dispatch.Job{
		Kind: dispatch.JobWavelet, Level: level, StartIndex: 0, EndIndex: fd.Height,
		Run: func(y int) error {
			row, err := d.finalizeRow(fd, pl, src, y)
			if err != nil {
				return err
			}
			finalized[y] = row
			return nil
		},
	})
	level++

	if opts.Sharpen {
		strength := opts.SharpenStrength
		if strength == 0 {
			strength = defaultSharpenStrength
		}
		prev := current
		sharpened := make([]wp13.Row, fd.Height)
		mb.Post(dispatch.Job{
			Kind: dispatch.JobSharpen, Level: level, StartIndex: 0, EndIndex: fd.Height,
			Run: func(y int) error {
				sharpened[y] = dispatch.SharpenRow(prev, y, strength)
				return nil
			},
		})
		current = sharpened
		level++
	}

	if opts.Stereo != StereoNone {
		prev := current
		warped := make([]wp13.Row, fd.Height)
		kind := dispatch.JobHorizontal3D
		if opts.Stereo == StereoVertical {
			kind = dispatch.JobVertical3D
		}
		mb.Post(dispatch.Job{
			Kind: kind, Level: level, StartIndex: 0, EndIndex: fd.Height,
			Run: func(y int) error {
				warped[y] = wp13.NewRow(prev[y].Width, prev[y].Channels, prev[y].Flags, prev[y].BitDepth)
				for c := 0; c < prev[y].Channels; c++ {
					srcChan := prev[y].PlanarChannel(c)
					dstChan := warped[y].PlanarChannel(c)
					if err := opts.Geomesh.WarpRow(opts.StereoEye, y, srcChan, dstChan); err != nil {
						return fmt.Errorf("warp channel %d: %w", c, err)
					}
				}
				return nil
			},
		})
		current = warped
		level++
	}

	// current now holds its final value: nothing below reassigns it, so
	// the output/histogram closures below may safely capture it directly.
	outputKind := dispatch.JobOutput
	if opts.Uncompressed {
		outputKind = dispatch.JobOutputUncompressed
	}
	mb.Post(dispatch.Job{
		Kind: outputKind, Level: level, StartIndex: 0, EndIndex: fd.Height,
		Run: func(y int) error {
			if opts.Uncompressed {
				return packUncompressed(current[y], out[y], fd.Width)
			}
			if len(out[y]) < packer.BytesPerRow(fd.Width) {
				return fmt.Errorf("row %d: output buffer too small", y)
			}
			if err := packer.Pack(current[y], out[y], fd.Width, y); err != nil {
				return fmt.Errorf("row %d: pack: %w", y, err)
			}
			return nil
		},
	})
	if opts.Histogram && opts.HistogramWriter != nil && opts.HistogramRow >= 0 && opts.HistogramRow < fd.Height {
		mb.Post(dispatch.Job{
			Kind: dispatch.JobHistogram, Level: level, StartIndex: 0, EndIndex: 1,
			Run: func(int) error {
				return dispatch.RenderHistogram(current[opts.HistogramRow], opts.HistogramMode, opts.HistogramWriter)
			},
		})
	}

	if err := d.Dispatcher.Run(mb); err != nil {
		if status == StatusOK {
			status = StatusPartialRows
		}
		if d.Log != nil {
			d.Log.Warning("decode completed with row errors", "error", err.Error())
		}
	}
	return status, nil
}

// finalizeRow assembles and color-corrects row y into a WP13 planar row,
// without packing it to any output format (§4.2, §4.4, §6).
func (d *Decoder) finalizeRow(fd frame.Descriptor, pl *plan.Plan, src ChannelSource, y int) (wp13.Row, error) {
	channelRows, err := src.Row(y)
	if err != nil {
		return wp13.Row{}, fmt.Errorf("row %d: source: %w", y, err)
	}
	srcBitDepth := fd.WhitePointDepth
	if srcBitDepth == 0 {
		srcBitDepth = 16
	}
	assembled, err := assemble.Assemble(fd, channelRows, srcBitDepth, nil)
	if err != nil {
		return wp13.Row{}, fmt.Errorf("row %d: assemble: %w", y, err)
	}

	corrected := wp13.NewRow(assembled.Width, assembled.Channels, wp13.LayoutPlanar, 16)
	if err := apply.Row(pl, assembled, corrected, fd.Width); err != nil {
		return wp13.Row{}, fmt.Errorf("row %d: apply: %w", y, err)
	}
	return corrected, nil
}

// packUncompressed writes row as interleaved little-endian WP13 samples,
// bypassing rowconv's external pixel-format packers (§5
// "OUTPUT_UNCOMPRESSED").
func packUncompressed(row wp13.Row, out []byte, width int) error {
	need := width * row.Channels * 2
	if len(out) < need {
		return fmt.Errorf("decoder: uncompressed output buffer too small: have %d, need %d", len(out), need)
	}
	for c := 0; c < row.Channels; c++ {
		ch := row.PlanarChannel(c)
		for x := 0; x < width; x++ {
			off := (x*row.Channels + c) * 2
			v := uint16(ch[x])
			out[off] = byte(v)
			out[off+1] = byte(v >> 8)
		}
	}
	return nil
}
