/*
NAME
  yuv.go

DESCRIPTION
  YUV output formats: 8-bit 4:2:2 (YUYV/UYVY/YVYU), 8-bit 4:4:4:4
  (R408/V408), 16-bit (YU64/YR16), 10-bit packed 4:2:2 (V210), and the
  CbYCrY family spanning several bit depths (§4.3).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rowconv

import (
	"fmt"

	"github.com/ausocean/colorcore/wp13"
)

// yRow computes the luma row and companion full-resolution Cb/Cr rows for
// one scanline, ready for 4:2:2 downsampling by the caller.
func yRow(mat rgbToYUVMatrix, in wp13.Row, width int) (y, cb, cr []int16) {
	r := in.PlanarChannel(0)
	g := in.PlanarChannel(1)
	b := in.PlanarChannel(2)
	y = make([]int16, width)
	cb = make([]int16, width)
	cr = make([]int16, width)
	for x := 0; x < width; x++ {
		yv := mat.rgbToY(r[x], g[x], b[x])
		y[x] = int16(yv)
		cbv, crv := mat.rgbToCbCr(r[x], g[x], b[x], y[x])
		cb[x] = int16(cbv)
		cr[x] = int16(crv)
	}
	return y, cb, cr
}

type yuv422Packer struct {
	mat   rgbToYUVMatrix
	order pixelOrder
}

func (yuv422Packer) BytesPerRow(width int) int { return width * 2 }

func (p yuv422Packer) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cbFull, crFull := yRow(p.mat, in, width)
	cb := downsample444to422(cbFull, width)
	cr := downsample444to422(crFull, width)
	for i := 0; i < len(cb); i++ {
		x0 := i * 2
		x1 := x0 + 1
		y0 := wp13To8(yv[x0], x0, y)
		var y1 byte
		if x1 < width {
			y1 = wp13To8(yv[x1], x1, y)
		}
		cbv := wp13To8(cb[i], x0, y)
		crv := wp13To8(cr[i], x0, y)
		off := i * 4
		switch p.order {
		case orderUYVY:
			out[off], out[off+1], out[off+2], out[off+3] = cbv, y0, crv, y1
		case orderYVYU:
			out[off], out[off+1], out[off+2], out[off+3] = y0, crv, y1, cbv
		default: // orderYUYV
			out[off], out[off+1], out[off+2], out[off+3] = y0, cbv, y1, crv
		}
	}
	return nil
}

type yuv444Packer struct {
	mat       rgbToYUVMatrix
	order     pixelOrder
	withAlpha bool
}

func (yuv444Packer) BytesPerRow(width int) int { return width * 4 }

func (p yuv444Packer) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cb, cr := yRow(p.mat, in, width)
	var a []int16
	if p.withAlpha && in.Channels >= 4 {
		a = in.PlanarChannel(3)
	}
	for x := 0; x < width; x++ {
		off := x * 4
		av := byte(255)
		if a != nil {
			av = wp13To8(a[x], x, y)
		}
		switch p.order {
		case orderUYVA:
			out[off], out[off+1], out[off+2], out[off+3] = wp13To8(cb[x], x, y), wp13To8(yv[x], x, y), wp13To8(cr[x], x, y), av
		default: // orderAYUV
			out[off], out[off+1], out[off+2], out[off+3] = av, wp13To8(yv[x], x, y), wp13To8(cb[x], x, y), wp13To8(cr[x], x, y)
		}
	}
	return nil
}

type yuv16Packer struct {
	mat        rgbToYUVMatrix
	order      pixelOrder
	lumaOnly16 bool // set for YR16; Pack does not read it, so YR16 packs exactly like YU64
}

func (yuv16Packer) BytesPerRow(width int) int { return width * 4 }

func (p yuv16Packer) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cbFull, crFull := yRow(p.mat, in, width)
	cb := downsample444to422(cbFull, width)
	cr := downsample444to422(crFull, width)
	putU16 := func(o int, v uint16) {
		out[o] = byte(v)
		out[o+1] = byte(v >> 8)
	}
	for i := 0; i < len(cb); i++ {
		x0 := i * 2
		x1 := x0 + 1
		y0 := wp13To16(yv[x0])
		y1 := y0
		if x1 < width {
			y1 = wp13To16(yv[x1])
		}
		cbv := wp13To16(cb[i])
		crv := wp13To16(cr[i])
		off := i * 8
		putU16(off, y0)
		putU16(off+2, cbv)
		putU16(off+4, y1)
		putU16(off+6, crv)
	}
	return nil
}

// v210Packer packs 4:2:2 10-bit samples six pixels at a time into four
// 32-bit little-endian words per group, the standard V210 layout.
type v210Packer struct {
	mat rgbToYUVMatrix
}

func (v210Packer) BytesPerRow(width int) int {
	groups := (width + 5) / 6
	return groups * 16
}

func (p v210Packer) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cbFull, crFull := yRow(p.mat, in, width)
	cb := downsample444to422(cbFull, width)
	cr := downsample444to422(crFull, width)

	lumaAt := func(x int) uint32 {
		if x >= width {
			x = width - 1
		}
		return uint32(wp13To10(yv[x], x, y))
	}
	chromaAt := func(plane []int16, pairIdx int) uint32 {
		if pairIdx >= len(plane) {
			pairIdx = len(plane) - 1
		}
		return uint32(wp13To10(plane[pairIdx], pairIdx*2, y))
	}

	groups := (width + 5) / 6
	for grp := 0; grp < groups; grp++ {
		base := grp * 6
		pairBase := grp * 3
		y0, y1, y2 := lumaAt(base), lumaAt(base+1), lumaAt(base+2)
		y3, y4, y5 := lumaAt(base+3), lumaAt(base+4), lumaAt(base+5)
		cb0, cb2, cb4 := chromaAt(cb, pairBase), chromaAt(cb, pairBase+1), chromaAt(cb, pairBase+2)
		cr0, cr2, cr4 := chromaAt(cr, pairBase), chromaAt(cr, pairBase+1), chromaAt(cr, pairBase+2)

		packV210Group(out[grp*16:grp*16+16], y0, y1, y2, y3, y4, y5, cb0, cb2, cb4, cr0, cr2, cr4)
	}
	return nil
}

// packV210Group assembles one group of six 10-bit luma samples and their
// three co-sited 4:2:2 chroma pairs into the four 32-bit little-endian
// words of the standard V210 layout (§4.3, §8 scenario 4). out must be
// exactly 16 bytes.
func packV210Group(out []byte, y0, y1, y2, y3, y4, y5, cb0, cb2, cb4, cr0, cr2, cr4 uint32) {
	putV210Word(out[0:4], cb0, y0, cr0)
	putV210Word(out[4:8], y1, cb2, y2)
	putV210Word(out[8:12], cr2, y3, cb4)
	putV210Word(out[12:16], y4, cr4, y5)
}

func putV210Word(out []byte, lo, mid, hi uint32) {
	word := lo | (mid << 10) | (hi << 20)
	out[0] = byte(word)
	out[1] = byte(word >> 8)
	out[2] = byte(word >> 16)
	out[3] = byte(word >> 24)
}

// cbycryPacker implements the CbYCrY family: 4:2:2 samples at a
// configurable bit depth, optionally with a distinct luma bit depth
// (NewPacker uses 10-bit chroma with 6-bit luma for "10_6", and 8 and 14
// bits for every sample for "2_8" and "2_14").
type cbycryPacker struct {
	mat      rgbToYUVMatrix
	bits     int
	lumaBits int // 0 means same as bits
}

func (p cbycryPacker) effectiveLumaBits() int {
	if p.lumaBits == 0 {
		return p.bits
	}
	return p.lumaBits
}

func (p cbycryPacker) BytesPerRow(width int) int {
	// Each 2-pixel pair packs 4 samples (Cb,Y0,Cr,Y1); round bits up to
	// bytes conservatively at 2 bytes/sample for anything above 8 bits.
	bytesPerSample := 1
	if p.bits > 8 || p.effectiveLumaBits() > 8 {
		bytesPerSample = 2
	}
	pairs := (width + 1) / 2
	return pairs * 4 * bytesPerSample
}

func (p cbycryPacker) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	yv, cbFull, crFull := yRow(p.mat, in, width)
	cb := downsample444to422(cbFull, width)
	cr := downsample444to422(crFull, width)

	bytesPerSample := 1
	if p.bits > 8 || p.effectiveLumaBits() > 8 {
		bytesPerSample = 2
	}
	maxChroma := (1 << uint(p.bits)) - 1
	maxLuma := (1 << uint(p.effectiveLumaBits())) - 1

	write := func(off int, v uint16) {
		if bytesPerSample == 1 {
			out[off] = byte(v)
			return
		}
		out[off] = byte(v)
		out[off+1] = byte(v >> 8)
	}

	for i := 0; i < len(cb); i++ {
		x0 := i * 2
		x1 := x0 + 1
		y0 := scaleToBits(yv[x0], maxLuma, x0, y)
		y1 := y0
		if x1 < width {
			y1 = scaleToBits(yv[x1], maxLuma, x1, y)
		}
		cbv := scaleToBits(cb[i], maxChroma, x0, y)
		crv := scaleToBits(cr[i], maxChroma, x0, y)
		off := i * 4 * bytesPerSample
		write(off, cbv)
		write(off+bytesPerSample, y0)
		write(off+2*bytesPerSample, crv)
		write(off+3*bytesPerSample, y1)
	}
	return nil
}

func scaleToBits(v int16, max, x, y int) uint16 {
	r := (int32(v)*int32(max) + ditherBias(x, y)) / 8192
	if r < 0 {
		return 0
	}
	if r > int32(max) {
		return uint16(max)
	}
	return uint16(r)
}
