/*
NAME
  cube.go

DESCRIPTION
  The 3D cube LUT: population (§4.1 steps 10-12), trilinear interpolation
  (invariant #3 in §3), and the "degenerates to three 1D curves" detector
  (§4.1 step 13, §8 property 3).

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

// Cube is a 3D color lookup table of (n+1)^3 RGB entries, n = 2^Depth,
// trilinearly interpolated and extrapolated at the border (invariant #3).
type Cube struct {
	Depth       int // k in {5,6}: side length is 2^k + 1.
	Data        []int16
	IsSeparable bool
}

// side returns the cube's lattice side length, 2^Depth + 1.
func (c *Cube) side() int { return (1 << c.Depth) + 1 }

// NewCube allocates a cube of the given depth (k=6 -> 65^3, k=5 -> 33^3),
// per §4.1 step 10.
func NewCube(depth int) *Cube {
	n := (1 << depth) + 1
	return &Cube{
		Depth: depth,
		Data:  make([]int16, n*n*n*3),
	}
}

// ChooseCubeDepth selects k=6 (65^3) for 16-bit output formats, k=5 (33^3)
// otherwise, per §4.1 step 10.
func ChooseCubeDepth(outputIs16Bit bool) int {
	if outputIs16Bit {
		return 6
	}
	return 5
}

func (c *Cube) index(ri, gi, bi int) int {
	n := c.side()
	return ((ri*n+gi)*n + bi) * 3
}

// Set stores an RGB triple at lattice coordinates (ri, gi, bi).
func (c *Cube) Set(ri, gi, bi int, r, g, b int16) {
	idx := c.index(ri, gi, bi)
	c.Data[idx] = r
	c.Data[idx+1] = g
	c.Data[idx+2] = b
}

// At returns the RGB triple at lattice coordinates (ri, gi, bi).
func (c *Cube) At(ri, gi, bi int) (r, g, b int16) {
	idx := c.index(ri, gi, bi)
	return c.Data[idx], c.Data[idx+1], c.Data[idx+2]
}

// Interpolate performs trilinear interpolation for a 16-bit unsigned RGB
// input, extrapolating at the border by clamping lattice indices to the
// valid range (invariant #3).
func (c *Cube) Interpolate(r16, g16, b16 uint16) (r, g, b int16) {
	n := c.side()
	maxIdx := n - 2 // last interval start index

	// Map [0,65535] onto [0, n-1) lattice intervals.
	rf := float64(r16) * float64(maxIdx+1) / 65536.0
	gf := float64(g16) * float64(maxIdx+1) / 65536.0
	bf := float64(b16) * float64(maxIdx+1) / 65536.0

	ri, rm := splitFrac(rf, maxIdx)
	gi, gm := splitFrac(gf, maxIdx)
	bi, bm := splitFrac(bf, maxIdx)

	return c.trilinear(ri, gi, bi, rm, gm, bm)
}

func splitFrac(v float64, maxIdx int) (idx int, frac float64) {
	if v < 0 {
		return 0, 0
	}
	idx = int(v)
	if idx > maxIdx {
		idx = maxIdx
	}
	frac = v - float64(idx)
	return idx, frac
}

func (c *Cube) trilinear(ri, gi, bi int, rm, gm, bm float64) (r, g, b int16) {
	c000r, c000g, c000b := c.At(ri, gi, bi)
	c100r, c100g, c100b := c.At(ri+1, gi, bi)
	c010r, c010g, c010b := c.At(ri, gi+1, bi)
	c110r, c110g, c110b := c.At(ri+1, gi+1, bi)
	c001r, c001g, c001b := c.At(ri, gi, bi+1)
	c101r, c101g, c101b := c.At(ri+1, gi, bi+1)
	c011r, c011g, c011b := c.At(ri, gi+1, bi+1)
	c111r, c111g, c111b := c.At(ri+1, gi+1, bi+1)

	lerp := func(a, b int16, t float64) float64 {
		return float64(a) + (float64(b)-float64(a))*t
	}

	// Interpolate along R.
	c00 := lerp(c000r, c100r, rm)
	c10 := lerp(c010r, c110r, rm)
	c01 := lerp(c001r, c101r, rm)
	c11 := lerp(c011r, c111r, rm)
	c0 := c00 + (c10-c00)*gm
	c1 := c01 + (c11-c01)*gm
	rr := c0 + (c1-c0)*bm

	c00 = lerp(c000g, c100g, rm)
	c10 = lerp(c010g, c110g, rm)
	c01 = lerp(c001g, c101g, rm)
	c11 = lerp(c011g, c111g, rm)
	c0 = c00 + (c10-c00)*gm
	c1 = c01 + (c11-c01)*gm
	gg := c0 + (c1-c0)*bm

	c00 = lerp(c000b, c100b, rm)
	c10 = lerp(c010b, c110b, rm)
	c01 = lerp(c001b, c101b, rm)
	c11 = lerp(c011b, c111b, rm)
	c0 = c00 + (c10-c00)*gm
	c1 = c01 + (c11-c01)*gm
	bb := c0 + (c1-c0)*bm

	return fixedFromFloat(rr / 8192.0), fixedFromFloat(gg / 8192.0), fixedFromFloat(bb / 8192.0)
}

// DetectSeparable tests whether the cube factors into three independent 1D
// curves: for fixed R, the R output must be the same regardless of G,B (and
// symmetrically for G and B), per §4.1 step 13 and §8 property 3.
func (c *Cube) DetectSeparable() bool {
	n := c.side()
	for ri := 0; ri < n; ri++ {
		var want int16
		first := true
		for gi := 0; gi < n; gi++ {
			for bi := 0; bi < n; bi++ {
				r, _, _ := c.At(ri, gi, bi)
				if first {
					want = r
					first = false
					continue
				}
				if r != want {
					c.IsSeparable = false
					return false
				}
			}
		}
	}
	for gi := 0; gi < n; gi++ {
		var want int16
		first := true
		for ri := 0; ri < n; ri++ {
			for bi := 0; bi < n; bi++ {
				_, g, _ := c.At(ri, gi, bi)
				if first {
					want = g
					first = false
					continue
				}
				if g != want {
					c.IsSeparable = false
					return false
				}
			}
		}
	}
	for bi := 0; bi < n; bi++ {
		var want int16
		first := true
		for ri := 0; ri < n; ri++ {
			for gi := 0; gi < n; gi++ {
				_, _, b := c.At(ri, gi, bi)
				if first {
					want = b
					first = false
					continue
				}
				if b != want {
					c.IsSeparable = false
					return false
				}
			}
		}
	}
	c.IsSeparable = true
	return true
}
