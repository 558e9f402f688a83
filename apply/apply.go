/*
NAME
  apply.go

DESCRIPTION
  The Active-Metadata Applicator (§4.2): runs a Plan, read-only, once per
  source row, transforming WP13 intermediate pixel data from an input row
  into an output row (linear
  matrix, curves, optional 3D cube, gamma/contrast, CDL saturation, alpha
  companding, split-screen preview).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package apply implements the Active-Metadata Applicator: it consumes an
// immutable plan.Plan and a row of wp13.Row intermediate pixel data and
// writes the color-corrected row, entirely without synchronization, since
// every worker thread holds its own row buffers and the Plan it reads is
// never mutated (§3 invariant #4).
package apply

import (
	"fmt"

	"github.com/ausocean/colorcore/internal/simd"
	"github.com/ausocean/colorcore/plan"
	"github.com/ausocean/colorcore/wp13"
)

// Row applies plan p to one row of width pixels from in, writing the result
// to out. Both rows must already be in 3- or 4-channel planar WP13 layout
// (§3 "Intermediate row views"). When p.SplitCCPosition is in (0,1], the
// first width*p.SplitCCPosition pixels are copied through uncorrected
// (split-screen preview). The Applicator never reads other rows.
func Row(p *plan.Plan, in, out wp13.Row, width int) error {
	if in.Channels < 3 || out.Channels < 3 {
		return fmt.Errorf("apply: row needs at least 3 channels, got in=%d out=%d", in.Channels, out.Channels)
	}
	if p == nil || !p.NeedsCorrection {
		return passthrough(in, out, width)
	}

	rIn, gIn, bIn := in.PlanarChannel(0), in.PlanarChannel(1), in.PlanarChannel(2)
	rOut, gOut, bOut := out.PlanarChannel(0), out.PlanarChannel(1), out.PlanarChannel(2)

	splitAt := -1
	if p.SplitCCPosition > 0 && p.SplitCCPosition <= 1 {
		splitAt = int(float64(width) * p.SplitCCPosition)
	}

	for x := 0; x < width; x++ {
		if splitAt >= 0 && x < splitAt {
			rOut[x], gOut[x], bOut[x] = rIn[x], gIn[x], bIn[x]
			continue
		}
		r, g, b := rIn[x], gIn[x], bIn[x]
		if p.Cube != nil {
			r, g, b = applyCubePixel(p, r, g, b)
		} else {
			r, g, b = apply1DPixel(p, r, g, b)
		}
		rOut[x], gOut[x], bOut[x] = r, g, b
	}

	if in.Channels >= 4 && out.Channels >= 4 {
		aIn := in.PlanarChannel(3)
		aOut := out.PlanarChannel(3)
		companded := applyAlphaCompand(p, aIn, aOut, width)
		if !companded {
			copy(aOut, aIn[:width])
		}
	}

	simd.ClampRow(rOut[:width], wp13.Min, wp13.Max)
	simd.ClampRow(gOut[:width], wp13.Min, wp13.Max)
	simd.ClampRow(bOut[:width], wp13.Min, wp13.Max)
	return nil
}

func passthrough(in, out wp13.Row, width int) error {
	for ch := 0; ch < in.Channels && ch < out.Channels; ch++ {
		src := in.PlanarChannel(ch)
		dst := out.PlanarChannel(ch)
		n := width
		if n > len(src) {
			n = len(src)
		}
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], src[:n])
	}
	return nil
}

// applyCubePixel maps an WP13 pixel through the plan's 3D cube. Values are
// first lifted from signed WP13 (8192=1.0) into the cube's [0,65535]
// unsigned domain.
func applyCubePixel(p *plan.Plan, r, g, b int16) (int16, int16, int16) {
	r16 := wp13ToUint16(r)
	g16 := wp13ToUint16(g)
	b16 := wp13ToUint16(b)
	ro, go_, bo := p.Cube.Interpolate(r16, g16, b16)
	return ro, go_, bo
}

func wp13ToUint16(v int16) uint16 {
	x := int32(v) + 16384
	if x < 0 {
		x = 0
	}
	if x > 65535 {
		x = 65535
	}
	return uint16(x)
}

// apply1DPixel runs the matrix/curve/gamma path used when no 3D cube was
// built (§4.1 step 14, §4.2).
func apply1DPixel(p *plan.Plan, r, g, b int16) (int16, int16, int16) {
	if p.NonUnity.Matrix {
		if p.UseFloatMatrix {
			r, g, b = applyMatrixFloat(p.LinearMatrixFloat, r, g, b)
		} else {
			r, g, b = applyMatrixFixed(p.LinearMatrixFixed, r, g, b)
		}
	}

	if p.NonUnity.EncodeDecode && len(p.CurveToLinear) > 0 {
		r = lookupCurveToLinear(p.CurveToLinear, r)
		g = lookupCurveToLinear(p.CurveToLinear, g)
		b = lookupCurveToLinear(p.CurveToLinear, b)
	}

	if p.HasGammaContrast {
		r = lookupLinearTable(gammaLUTFor(p, 0), r)
		g = lookupLinearTable(gammaLUTFor(p, 1), g)
		b = lookupLinearTable(gammaLUTFor(p, 2), b)
	}

	if p.NonUnity.Matrix {
		if p.UseFloatMatrix {
			r, g, b = applyMatrixFloat(p.CurvedMatrixFloat, r, g, b)
		} else {
			r, g, b = applyMatrixFixed(p.CurvedMatrixFixed, r, g, b)
		}
	}

	if p.NonUnity.EncodeDecode && len(p.LinearToCurve) > 0 {
		r = lookupLinearTable(p.LinearToCurve, r)
		g = lookupLinearTable(p.LinearToCurve, g)
		b = lookupLinearTable(p.LinearToCurve, b)
	}

	if p.NonUnity.CDLSaturation {
		r, g, b = cdlSaturateFixed(r, g, b, p.CDLSaturation)
	}

	return r, g, b
}

func gammaLUTFor(p *plan.Plan, ch int) []int16 {
	if p.PerChannelGammaLUT[ch] != nil {
		return p.PerChannelGammaLUT[ch]
	}
	return p.GammaContrastLUT
}

// lookupCurveToLinear maps a WP13 curved-space sample into the
// CurveToLinear table, whose domain is [-2,6) at 8192 ticks/unit
// (§4.1 step 14).
func lookupCurveToLinear(lut []int16, v int16) int16 {
	const lo = -2 * 8192
	idx := (int(v) - lo) * len(lut) / (8 * 8192)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lut) {
		idx = len(lut) - 1
	}
	return lut[idx]
}

// lookupLinearTable maps a WP13 linear-space sample (range roughly
// [-4,4)) into a 65536-entry table centered at index 32768 (§4.1 step 14).
func lookupLinearTable(lut []int16, v int16) int16 {
	idx := int(v) + 32768
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lut) {
		idx = len(lut) - 1
	}
	return lut[idx]
}

func applyMatrixFixed(m [3][4]int32, r, g, b int16) (int16, int16, int16) {
	rr := (int64(m[0][0])*int64(r) + int64(m[0][1])*int64(g) + int64(m[0][2])*int64(b) + int64(m[0][3])<<13) >> 13
	gg := (int64(m[1][0])*int64(r) + int64(m[1][1])*int64(g) + int64(m[1][2])*int64(b) + int64(m[1][3])<<13) >> 13
	bb := (int64(m[2][0])*int64(r) + int64(m[2][1])*int64(g) + int64(m[2][2])*int64(b) + int64(m[2][3])<<13) >> 13
	return saturate64(rr), saturate64(gg), saturate64(bb)
}

func applyMatrixFloat(m plan.Matrix3x4, r, g, b int16) (int16, int16, int16) {
	rf := float64(r) / 8192.0
	gf := float64(g) / 8192.0
	bf := float64(b) / 8192.0
	rr := m[0][0]*rf + m[0][1]*gf + m[0][2]*bf + m[0][3]
	gg := m[1][0]*rf + m[1][1]*gf + m[1][2]*bf + m[1][3]
	bb := m[2][0]*rf + m[2][1]*gf + m[2][2]*bf + m[2][3]
	return saturateFloat(rr), saturateFloat(gg), saturateFloat(bb)
}

func saturate64(v int64) int16 {
	if v < wp13.Min {
		return wp13.Min
	}
	if v > wp13.Max {
		return wp13.Max
	}
	return int16(v)
}

func saturateFloat(v float64) int16 {
	return wp13.Clamp(int32(v * 8192.0))
}

// cdlSaturateFixed applies ASC-CDL-style saturation around Rec.709 luma in
// fixed point (§4.1 step 12i, applied per-pixel here for the 1D path).
func cdlSaturateFixed(r, g, b int16, sat float64) (int16, int16, int16) {
	luma := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	rr := luma + (float64(r)-luma)*sat
	gg := luma + (float64(g)-luma)*sat
	bb := luma + (float64(b)-luma)*sat
	return saturate64(int64(rr)), saturate64(int64(gg)), saturate64(int64(bb))
}

// applyAlphaCompand expands a companded alpha channel per §4.2 "Alpha
// companding": a12 = ((a>>shift - 16) * gain) >> 15. It returns false (and
// leaves out untouched) when companding is disabled, so the caller falls
// back to a straight copy.
func applyAlphaCompand(p *plan.Plan, in, out []int16, width int) bool {
	if p.AlphaCompandGain == 0 {
		return false
	}
	const shift = 1
	for x := 0; x < width; x++ {
		a := int32(in[x])
		v := ((a>>shift - 16) * p.AlphaCompandGain) >> 15
		v += p.AlphaCompandDC
		out[x] = wp13.Clamp(v)
	}
	return true
}
