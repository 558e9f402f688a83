/*
NAME
  assemble.go

DESCRIPTION
  The Intermediate Row Assembler (§4.4): takes the per-channel rows handed
  up from the inverse wavelet stage and produces one wp13.Row in the
  layout the rest of the pipeline expects, up-shifting low bit-depth
  source data and optionally transforming RGB<->YUV in place.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package assemble implements the Intermediate Row Assembler: it merges
// the wavelet-reconstructed per-channel rows into a single wp13.Row ready
// for the Active-Metadata Applicator (§4.4).
package assemble

import (
	"fmt"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/wp13"
)

// Assemble builds a planar wp13.Row from channelRows, one []int16 slice per
// channel of the frame's source format, up-shifting to 16-bit precision
// when the source bit depth is below 16 (§4.4 "Bit-depth normalization").
// scratch, if non-nil and large enough, is reused as the backing store to
// avoid a per-row allocation; otherwise a new Row is allocated.
func Assemble(fd frame.Descriptor, channelRows [][]int16, srcBitDepth int, scratch []int16) (wp13.Row, error) {
	channels := fd.NumChannels()
	if len(channelRows) < channels {
		return wp13.Row{}, fmt.Errorf("assemble: need %d channel rows, got %d", channels, len(channelRows))
	}
	width := fd.Width
	for i := 0; i < channels; i++ {
		if len(channelRows[i]) < width {
			return wp13.Row{}, fmt.Errorf("assemble: channel %d row shorter than frame width", i)
		}
	}

	need := width * channels
	var data []int16
	if cap(scratch) >= need {
		data = scratch[:need]
	} else {
		data = make([]int16, need)
	}

	shift := 0
	if srcBitDepth > 0 && srcBitDepth < 16 {
		shift = 16 - srcBitDepth
	}

	for ch := 0; ch < channels; ch++ {
		dst := data[ch*width : (ch+1)*width]
		src := channelRows[ch]
		if shift == 0 {
			copy(dst, src[:width])
		} else {
			for x := 0; x < width; x++ {
				dst[x] = upShift(src[x], shift)
			}
		}
	}

	row := wp13.Row{Data: data, Width: width, Channels: channels, Flags: wp13.LayoutPlanar, BitDepth: 16}

	if fd.SourceFormat == frame.SourceYUV422 && !fd.OutputFormat.IsYUV() {
		PlanarYUV16toPlanarRGB16(row)
	}

	return row, nil
}

func upShift(v int16, shift int) int16 {
	x := int32(v) << uint(shift)
	return wp13.Clamp(x)
}

// ChunkyRGB16toChunkyYUV16 transforms a packed-layout row's RGB triples to
// Y'CbCr in place, used when an upstream stage delivers chunky (packed)
// samples (§4.4 "packed-to-planar bridging").
func ChunkyRGB16toChunkyYUV16(row wp13.Row) {
	for x := 0; x < row.Width; x++ {
		px := row.PackedPixel(x)
		r, g, b := px[0], px[1], px[2]
		y, cb, cr := rgbToYCbCr(r, g, b)
		px[0], px[1], px[2] = y, cb, cr
	}
}

// PlanarRGB16toPlanarYUV16 transforms a planar-layout row's R,G,B channels
// into Y,Cb,Cr in place (§4.4).
func PlanarRGB16toPlanarYUV16(row wp13.Row) {
	r := row.PlanarChannel(0)
	g := row.PlanarChannel(1)
	b := row.PlanarChannel(2)
	for x := 0; x < row.Width; x++ {
		y, cb, cr := rgbToYCbCr(r[x], g[x], b[x])
		r[x], g[x], b[x] = y, cb, cr
	}
}

// PlanarYUV16toPlanarRGB16 is the inverse transform, used when the source
// arrives as YUV422 but the requested output is RGB (§4.4).
func PlanarYUV16toPlanarRGB16(row wp13.Row) {
	y := row.PlanarChannel(0)
	cb := row.PlanarChannel(1)
	cr := row.PlanarChannel(2)
	for x := 0; x < row.Width; x++ {
		r, g, b := yCbCrToRGB(y[x], cb[x], cr[x])
		y[x], cb[x], cr[x] = r, g, b
	}
}

// rgbToYCbCr and yCbCrToRGB implement the JPEG 2000 forward/inverse
// reversible color transform (RCT: Y = floor((R+2G+B)/4), Cb = B-G,
// Cr = R-G) in WP13 fixed point, the integer analog of hwy/contrib/image's
// BaseForwardRCT/BaseInverseRCT kernels.
func rgbToYCbCr(r, g, b int16) (y, cb, cr int16) {
	yy := (int32(r) + 2*int32(g) + int32(b)) >> 2
	cbv := int32(b) - int32(g)
	crv := int32(r) - int32(g)
	return wp13.Clamp(yy), wp13.Clamp(cbv), wp13.Clamp(crv)
}

func yCbCrToRGB(y, cb, cr int16) (r, g, b int16) {
	g32 := int32(y) - (int32(cb)+int32(cr))>>2
	r32 := int32(cr) + g32
	b32 := int32(cb) + g32
	return wp13.Clamp(r32), wp13.Clamp(g32), wp13.Clamp(b32)
}
