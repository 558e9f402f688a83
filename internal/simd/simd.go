/*
NAME
  simd.go

DESCRIPTION
  Portable lane operations for the color pipeline's row loops (the
  applicator clamps its output rows with ClampRow), built on top of
  github.com/ajroetker/go-highway/hwy. This
  realizes the §9 design note: kernels are expressed as portable 128-bit
  lane operations (addsat, subsat, multiply-add-shift, clamp) with an automatic scalar
  fallback, rather than hand-written SSE2 intrinsics.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package simd wraps github.com/ajroetker/go-highway/hwy to give the color
// pipeline's per-scanline kernels portable vector width (SSE2/AVX2/AVX512/
// NEON, with a scalar fallback) without per-pixel branching.
package simd

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Lanes16 returns the number of int16 lanes the current build target
// processes per vector op.
func Lanes16() int { return hwy.MaxLanes[int16]() }

// AddSat16 computes dst[i] = sat(a[i] + b[i]) for signed 16-bit lanes,
// processing full vectors and a scalar tail.
func AddSat16(a, b, dst []int16) {
	n := min3(len(a), len(b), len(dst))
	lanes := Lanes16()
	i := 0
	for ; i+lanes <= n; i += lanes {
		va := hwy.Load(a[i:])
		vb := hwy.Load(b[i:])
		hwy.Store(hwy.SaturatedAdd(va, vb), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = satAdd16(a[i], b[i])
	}
}

// SubSat16 computes dst[i] = sat(a[i] - b[i]) for signed 16-bit lanes.
func SubSat16(a, b, dst []int16) {
	n := min3(len(a), len(b), len(dst))
	lanes := Lanes16()
	i := 0
	for ; i+lanes <= n; i += lanes {
		va := hwy.Load(a[i:])
		vb := hwy.Load(b[i:])
		hwy.Store(hwy.SaturatedSub(va, vb), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = satSub16(a[i], b[i])
	}
}

// ClampRow clamps every lane of row to [lo, hi], writing in place.
func ClampRow(row []int16, lo, hi int16) {
	n := len(row)
	lanes := Lanes16()
	loVec := hwy.Set(lo)
	hiVec := hwy.Set(hi)
	i := 0
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(row[i:])
		hwy.Store(hwy.Clamp(v, loVec, hiVec), row[i:])
	}
	for ; i < n; i++ {
		if row[i] < lo {
			row[i] = lo
		} else if row[i] > hi {
			row[i] = hi
		}
	}
}

// MulAddShift computes dst[i] = (a[i]*mul + add[i]) >> shift across a full
// row. mul is a scalar fixed-point coefficient broadcast across lanes. No
// package in the module calls it; the applicator's matrix step is scalar.
func MulAddShift(a []int32, mul int32, add []int32, shift int, dst []int32) {
	n := min3(len(a), len(add), len(dst))
	lanes := hwy.MaxLanes[int32]()
	mulVec := hwy.Set(mul)
	i := 0
	for ; i+lanes <= n; i += lanes {
		va := hwy.Load(a[i:])
		vadd := hwy.Load(add[i:])
		prod := hwy.FMA(va, mulVec, vadd)
		hwy.Store(hwy.ShiftRight(prod, shift), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = (a[i]*mul + add[i]) >> uint(shift)
	}
}

func satAdd16(a, b int16) int16 {
	sum := int32(a) + int32(b)
	return clamp16(sum)
}

func satSub16(a, b int16) int16 {
	diff := int32(a) - int32(b)
	return clamp16(diff)
}

func clamp16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
