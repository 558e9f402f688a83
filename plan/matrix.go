/*
NAME
  matrix.go

DESCRIPTION
  3x4 affine color matrix construction: saturation interpolation, gain/lift,
  exposure and white-balance composition, per §4.1 steps 2-9. Matrices are
  composed with gonum/mat and then reduced to either fixed-point (16.13) or
  float coefficients depending on whether any coefficient escapes the
  fixed-point range.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package plan

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix3x4 is a 3-row, 4-column affine color matrix: three 3x3 linear
// coefficients plus a black-level offset column.
type Matrix3x4 [3][4]float64

// IdentityMatrix3x4 returns the 3x4 identity (no color change).
func IdentityMatrix3x4() Matrix3x4 {
	return Matrix3x4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// desaturation and full-saturation matrices from §4.1 step 3.
var desatMatrix = Matrix3x4{
	{0.309, 0.609, 0.082, 0},
	{0.309, 0.609, 0.082, 0},
	{0.309, 0.609, 0.082, 0},
}

var fullSatMatrix = Matrix3x4{
	{4.042, -2.681, -0.361, 0},
	{-1.358, 2.719, -0.361, 0},
	{-1.358, -2.681, 5.039, 0},
}

func (m Matrix3x4) toDense() *mat.Dense {
	d := mat.NewDense(3, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			d.Set(r, c, m[r][c])
		}
	}
	return d
}

func fromDense(d *mat.Dense) Matrix3x4 {
	var m Matrix3x4
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = d.At(r, c)
		}
	}
	return m
}

// mulLinear3x4 composes two 3x4 affine matrices as if the second were
// extended to 4x4 with an identity bottom row: result = a * extend(b), i.e.
// b is applied first and a second.
func mulLinear3x4(a, b Matrix3x4) Matrix3x4 {
	ad := a.toDense()
	bExt := mat.NewDense(4, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			bExt.Set(r, c, b[r][c])
		}
	}
	bExt.Set(3, 3, 1)
	var out mat.Dense
	out.Mul(ad, bExt)
	return fromDense(&out)
}

// lerpMatrix linearly interpolates between a and b by t in [0,1].
func lerpMatrix(a, b Matrix3x4, t float64) Matrix3x4 {
	var m Matrix3x4
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = a[r][c] + (b[r][c]-a[r][c])*t
		}
	}
	return m
}

// addScaledMatrix computes a + scale*b element-wise.
func addScaledMatrix(a, b Matrix3x4, scale float64) Matrix3x4 {
	var m Matrix3x4
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = a[r][c] + scale*b[r][c]
		}
	}
	return m
}

// applySaturation implements §4.1 step 3: interpolate between desaturation
// and full-saturation matrices depending on whether sat is below or above
// 1.0.
func applySaturation(base Matrix3x4, sat float64) Matrix3x4 {
	switch {
	case sat < 1.0:
		return lerpMatrix(desatMatrix, base, sat)
	case sat > 1.0:
		m := addScaledMatrix(base, fullSatMatrix, (sat-1)/3)
		return addScaledMatrix(m, base, (4-sat)/3-1)
	default:
		return base
	}
}

// applyGainLift applies per-channel gain and lift to m (§4.1 step 4),
// composed as the diagonal gain/lift matrix applied after m via
// mulLinear3x4: row r of m is scaled by gain[r] and offset by lift[r].
func applyGainLift(m Matrix3x4, gain, lift [3]float64) Matrix3x4 {
	var gl Matrix3x4
	for r := 0; r < 3; r++ {
		gl[r][r] = gain[r]
		gl[r][3] = lift[r]
	}
	return mulLinear3x4(gl, m)
}

// applyExposure multiplies every coefficient of m, including the offset
// column, by a scalar exposure factor (§4.1 step 5), composed via
// mulLinear3x4 as a uniform diagonal scale applied after m.
func applyExposure(m Matrix3x4, exposure float64) Matrix3x4 {
	var gl Matrix3x4
	for r := 0; r < 3; r++ {
		gl[r][r] = exposure
	}
	return mulLinear3x4(gl, m)
}

// applyWhiteBalance applies white-balance gains column-wise and to the
// black-level column, so custom-matrix offsets track white balance
// (§4.1 step 6). Gains are clamped to [0.4, 10.0] first (§4.1 step 7).
func applyWhiteBalance(m Matrix3x4, wb [3]float64) Matrix3x4 {
	clamped := [3]float64{}
	for i, g := range wb {
		clamped[i] = clampFloat(g, 0.4, 10.0)
	}
	var out Matrix3x4
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][c] * clamped[c]
		}
		out[r][3] = m[r][3] * clamped[r]
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// exceedsFixedRange reports whether any coefficient of m falls outside the
// 16.13 fixed-point representable range [-16, 31] (§4.1 step 8).
func exceedsFixedRange(m Matrix3x4) bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			if m[r][c] < -16 || m[r][c] > 31 {
				return true
			}
		}
	}
	return false
}

// needsFullCube reports whether a full 3D LUT build is required because the
// sum of a row's two off-diagonal coefficients in the linear matrix (G+B
// for the R row, R+B for G, R+G for B) falls below -1.0, or highlight
// desaturation is active with a max white-balance channel above 1.0
// (§4.1 step 9).
func needsFullCube(linear Matrix3x4, highlightDesat bool, wbMax float64) bool {
	rowSums := [3]float64{
		linear[0][1] + linear[0][2],
		linear[1][0] + linear[1][2],
		linear[2][0] + linear[2][1],
	}
	for _, s := range rowSums {
		if s < -1.0 {
			return true
		}
	}
	if highlightDesat && wbMax > 1.0 {
		return true
	}
	return false
}

// toFixed1613 converts a float matrix to 16.13 fixed-point int32
// coefficients (13 fractional bits, matching the WP13 domain).
func toFixed1613(m Matrix3x4) [3][4]int32 {
	var out [3][4]int32
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = int32(m[r][c] * 8192.0)
		}
	}
	return out
}
