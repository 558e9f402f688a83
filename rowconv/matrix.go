/*
NAME
  matrix.go

DESCRIPTION
  RGB<->YCbCr fixed-point conversion matrices for the four colorspace
  combinations {Rec.601, Rec.709} x {video-safe, CG-full} (§4.3).

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

import "github.com/ausocean/colorcore/frame"

// rgbToYUVMatrix holds fixed-point (14-bit) coefficients for converting
// WP13 linear RGB (8192=1.0) into Y'CbCr, plus the output luma and chroma
// ranges.
type rgbToYUVMatrix struct {
	// Coefficients in units of 1/16384.
	kr, kg, kb int32
	// Output ranges in units of 1/16384: [0,16383] for CG, [1024,15360]
	// for video-safe.
	yMin, yMax int32
	cMin, cMax int32
}

const fp14 = 16384

var (
	matrix601VS = rgbToYUVMatrix{kr: 4899, kg: 9617, kb: 1868, yMin: 1024, yMax: 15360, cMin: 1024, cMax: 15360}
	matrix601CG = rgbToYUVMatrix{kr: 4899, kg: 9617, kb: 1868, yMin: 0, yMax: 16383, cMin: 0, cMax: 16383}
	matrix709VS = rgbToYUVMatrix{kr: 3483, kg: 11718, kb: 1183, yMin: 1024, yMax: 15360, cMin: 1024, cMax: 15360}
	matrix709CG = rgbToYUVMatrix{kr: 3483, kg: 11718, kb: 1183, yMin: 0, yMax: 16383, cMin: 0, cMax: 16383}
)

func matrixFor(cs frame.Colorspace) rgbToYUVMatrix {
	switch {
	case cs.Is709() && cs.IsCG():
		return matrix709CG
	case cs.Is709():
		return matrix709VS
	case cs.IsCG():
		return matrix601CG
	default:
		return matrix601VS
	}
}

// rgbToY computes Y' from WP13 linear RGB samples (8192=1.0), scaled to
// the matrix's output range.
func (m rgbToYUVMatrix) rgbToY(r, g, b int16) int32 {
	y := (int64(m.kr)*int64(r) + int64(m.kg)*int64(g) + int64(m.kb)*int64(b)) / fp14
	return scaleRange(int32(y), m.yMin, m.yMax)
}

// rgbToCbCr computes Cb,Cr from WP13 linear RGB and a precomputed luma.
func (m rgbToYUVMatrix) rgbToCbCr(r, g, b, y int16) (cb, cr int32) {
	bf := int32(b) - int32(y)
	rf := int32(r) - int32(y)
	cbv := int64(bf) * fp14 / int64(2*(fp14-int64(m.kb)))
	crv := int64(rf) * fp14 / int64(2*(fp14-int64(m.kr)))
	cb = scaleRange(int32(cbv)+4096, m.cMin, m.cMax)
	cr = scaleRange(int32(crv)+4096, m.cMin, m.cMax)
	return cb, cr
}

// scaleRange maps a WP13 sample in [0,8192] onto [lo,hi].
func scaleRange(v, lo, hi int32) int32 {
	scaled := lo + (v*(hi-lo))/8192
	if scaled < lo {
		return lo
	}
	if scaled > hi {
		return hi
	}
	return scaled
}

type pixelOrder int

const (
	orderRGB pixelOrder = iota
	orderBGR
	orderYUYV
	orderUYVY
	orderYVYU
	orderAYUV
	orderUYVA
)
