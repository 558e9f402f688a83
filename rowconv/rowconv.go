/*
NAME
  rowconv.go

DESCRIPTION
  The Output Row Converter (§4.3): packs a WP13 intermediate row into one
  of the external pixel formats named by frame.OutputFormat, selecting a
  PixelPacker once per frame via NewPacker and reusing it for every row.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rowconv implements the Output Row Converter: packers for every
// external pixel format in frame.OutputFormat, built once per frame and
// reused across every row (§4.3).
package rowconv

import (
	"fmt"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/wp13"
)

// PixelPacker packs one WP13 intermediate row into a caller-provided byte
// buffer sized for exactly width pixels of the packer's format.
type PixelPacker interface {
	// Pack writes row y's width pixels from in into out. Row is already
	// color-corrected WP13 data (§4.2 output).
	Pack(in wp13.Row, out []byte, width, y int) error

	// BytesPerRow returns the number of output bytes Pack writes for a row
	// of the given width.
	BytesPerRow(width int) int
}

// NewPacker returns the PixelPacker for format in the given colorspace. It
// is selected once per frame (§4.3 "selected once per frame_descriptor").
func NewPacker(format frame.OutputFormat, cs frame.Colorspace) (PixelPacker, error) {
	switch format {
	case frame.OutputRGB24:
		return rgbPacker{alpha: false, order: orderRGB, bytesPerCh: 1}, nil
	case frame.OutputRGB32:
		return rgbPacker{alpha: true, order: orderRGB, bytesPerCh: 1}, nil
	case frame.OutputBGRA:
		return rgbPacker{alpha: true, order: orderBGR, bytesPerCh: 1}, nil
	case frame.OutputRG48:
		return rgbPacker{alpha: false, order: orderRGB, bytesPerCh: 2}, nil
	case frame.OutputRG64:
		return rgbPacker{alpha: true, order: orderRGB, bytesPerCh: 2}, nil
	case frame.OutputB64A:
		return rgbPacker{alpha: true, order: orderBGR, bytesPerCh: 2, alphaFirst: true}, nil
	case frame.OutputWP13:
		return wp13Packer{withAlpha: false}, nil
	case frame.OutputW13A:
		return wp13Packer{withAlpha: true}, nil
	case frame.OutputRG30, frame.OutputAR10, frame.OutputAB10, frame.OutputR210, frame.OutputDPX0:
		return newTenBitPacker(format)
	case frame.OutputV210:
		return v210Packer{mat: matrixFor(cs)}, nil
	case frame.OutputYU64:
		return yuv16Packer{mat: matrixFor(cs), order: orderYUYV}, nil
	case frame.OutputYR16:
		return yuv16Packer{mat: matrixFor(cs), order: orderYUYV, lumaOnly16: true}, nil
	case frame.OutputYUYV:
		return yuv422Packer{mat: matrixFor(cs), order: orderYUYV}, nil
	case frame.OutputUYVY:
		return yuv422Packer{mat: matrixFor(cs), order: orderUYVY}, nil
	case frame.OutputYVYU:
		return yuv422Packer{mat: matrixFor(cs), order: orderYVYU}, nil
	case frame.OutputR408:
		return yuv444Packer{mat: matrixFor(cs), order: orderAYUV, withAlpha: true}, nil
	case frame.OutputV408:
		return yuv444Packer{mat: matrixFor(cs), order: orderUYVA, withAlpha: true}, nil
	case frame.OutputCbYCrY8bit:
		return cbycryPacker{mat: matrixFor(cs), bits: 8}, nil
	case frame.OutputCbYCrY16bit:
		return cbycryPacker{mat: matrixFor(cs), bits: 16}, nil
	case frame.OutputCbYCrY2_8:
		return cbycryPacker{mat: matrixFor(cs), bits: 8, lumaBits: 8}, nil
	case frame.OutputCbYCrY2_14:
		return cbycryPacker{mat: matrixFor(cs), bits: 14, lumaBits: 14}, nil
	case frame.OutputCbYCrY10_6:
		return cbycryPacker{mat: matrixFor(cs), bits: 10, lumaBits: 6}, nil
	case frame.OutputNV12:
		return &planarYUVPacker{mat: matrixFor(cs), interleavedChroma: true}, nil
	case frame.OutputYV12:
		return &planarYUVPacker{mat: matrixFor(cs), interleavedChroma: false, swapUV: true}, nil
	default:
		return nil, fmt.Errorf("rowconv: unsupported output format %v", format)
	}
}

func clampByte(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func clampUint16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

func clampN(v int32, bits int) uint16 {
	max := int32(1<<uint(bits)) - 1
	if v < 0 {
		return 0
	}
	if v > max {
		return uint16(max)
	}
	return uint16(v)
}

// wp13ToSigned16 widens a WP13 intermediate (8192=1.0) to 16-bit signed
// linear range. The 8- and 10-bit packers scale directly from WP13 and do
// not call it.
func wp13ToSigned16(v int16) int32 {
	return int32(v) << 2
}

// wp13To8 reduces a WP13 sample to an 8-bit unsigned sample, 8192 -> 255,
// applying the ordered dither pattern at (x, y) in place of flat rounding
// (§4.3 "chroma subsampling" / dithered truncation for <13-bit output).
func wp13To8(v int16, x, y int) byte {
	r := (int32(v)*255 + ditherBias(x, y)) / 8192
	return clampByte(r)
}

// wp13To10 reduces a WP13 sample to a 10-bit unsigned sample, 8192 -> 1023,
// dithered the same way as wp13To8.
func wp13To10(v int16, x, y int) uint16 {
	r := (int32(v)*1023 + ditherBias(x, y)) / 8192
	return clampN(r, 10)
}

// wp13To16 widens/scales a WP13 sample to a 16-bit unsigned sample,
// 8192 -> 65535.
func wp13To16(v int16) uint16 {
	x := (int32(v) * 65535) / 8192
	return clampUint16(x)
}

// ditherPattern is the 8x2 ordered-dither matrix alternating per scanline
// parity, applied to every truncation of a WP13 sample to fewer than 13
// bits (§4.3 "Formats with < 13-bit output apply an 8x1 or 8x2 fixed-
// pattern ordered dither before truncation").
var ditherPattern = [2][8]int32{
	{0, 4, 1, 5, 0, 4, 1, 5},
	{6, 2, 7, 3, 6, 2, 7, 3},
}

// ditherBias returns the rounding bias for the pixel at column x, row y,
// subdividing the 8192-wide WP13 step into 8 ordered-dither levels in
// place of a flat half-step round.
func ditherBias(x, y int) int32 {
	return ditherPattern[y&1][x&7] * 1024
}

// downsample444to422 applies the 3-tap center-weighted chroma filter
// out[i] = (in[centre-1] + 2*in[centre] + in[centre+1] + 2) / 4, where
// centre is the even-indexed 4:4:4 sample co-sited with output pair i, and
// the filter taps are edge-replicated at the first and last column (§4.3
// "chroma subsampling").
func downsample444to422(in []int16, width int) []int16 {
	outW := (width + 1) / 2
	out := make([]int16, outW)
	for i := 0; i < outW; i++ {
		centre := i * 2
		if centre >= width {
			centre = width - 1
		}
		left := centre - 1
		if left < 0 {
			left = 0
		}
		right := centre + 1
		if right >= width {
			right = width - 1
		}
		out[i] = int16((int32(in[left]) + 2*int32(in[centre]) + int32(in[right]) + 2) / 4)
	}
	return out
}
