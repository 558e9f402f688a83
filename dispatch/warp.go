/*
NAME
  warp.go

DESCRIPTION
  HORIZONTAL_3D/VERTICAL_3D job support: left/right-eye remap using
  gocv's Mat/Remap, the grounding for GeomeshEngine implementations that
  want a hardware-accelerated warp path rather than a pure-Go one (§4.5).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dispatch

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// MatGeomesh is a GeomeshEngine backed by precomputed gocv remap maps, one
// pair of (mapX, mapY) Mats per eye, built once per frame descriptor and
// reused across rows.
type MatGeomesh struct {
	mapX, mapY [2]gocv.Mat
	width      int
}

// NewMatGeomesh builds a MatGeomesh from per-eye remap coordinate grids.
// coordsX/coordsY are width*height float32 row-major grids, one per eye.
func NewMatGeomesh(width, height int, coordsX, coordsY [2][]float32) (*MatGeomesh, error) {
	g := &MatGeomesh{width: width}
	for eye := 0; eye < 2; eye++ {
		mx, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV32F, float32BytesLE(coordsX[eye]))
		if err != nil {
			return nil, fmt.Errorf("dispatch: build mapX for eye %d: %w", eye, err)
		}
		my, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV32F, float32BytesLE(coordsY[eye]))
		if err != nil {
			return nil, fmt.Errorf("dispatch: build mapY for eye %d: %w", eye, err)
		}
		g.mapX[eye] = mx
		g.mapY[eye] = my
	}
	return g, nil
}

// Close releases the underlying gocv Mats.
func (g *MatGeomesh) Close() {
	for eye := 0; eye < 2; eye++ {
		g.mapX[eye].Close()
		g.mapY[eye].Close()
	}
}

// WarpRow remaps one row of src into dst for the given eye, using a
// single-row gocv.Remap call against the precomputed maps.
func (g *MatGeomesh) WarpRow(eye, y int, src, dst []int16) error {
	if eye < 0 || eye > 1 {
		return fmt.Errorf("dispatch: invalid eye index %d", eye)
	}
	rowIn, err := gocv.NewMatFromBytes(1, len(src), gocv.MatTypeCV16S, int16BytesLE(src))
	if err != nil {
		return fmt.Errorf("dispatch: wrap source row: %w", err)
	}
	defer rowIn.Close()

	mapXRow := g.mapX[eye].Region(newRowRect(y, g.width))
	mapYRow := g.mapY[eye].Region(newRowRect(y, g.width))
	defer mapXRow.Close()
	defer mapYRow.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.Remap(rowIn, &out, &mapXRow, &mapYRow, gocv.InterpolationLinear, gocv.BorderReplicate, gocv.NewScalar(0, 0, 0, 0))

	n := out.Total()
	if n > len(dst) {
		n = len(dst)
	}
	data := out.ToBytes()
	for i := 0; i < n; i++ {
		dst[i] = int16(data[i*2]) | int16(data[i*2+1])<<8
	}
	return nil
}

func newRowRect(y, width int) gocv.Rect {
	return gocv.NewRect(0, y, width, 1)
}

func float32BytesLE(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		bits := math.Float32bits(v)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

func int16BytesLE(vals []int16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}

