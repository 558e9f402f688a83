/*
NAME
  rgb.go

DESCRIPTION
  Packed RGB output formats: RGB24/RGB32/BGRA (8-bit), RG48/RG64/B64A
  (16-bit), optionally carrying a companded alpha channel (§4.3).

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

// rgbPacker packs 8- or 16-bit RGB(A)/BGR(A) pixels.
type rgbPacker struct {
	alpha      bool
	alphaFirst bool
	order      pixelOrder
	bytesPerCh int // 1 or 2
}

func (p rgbPacker) channels() int {
	if p.alpha {
		return 4
	}
	return 3
}

func (p rgbPacker) BytesPerRow(width int) int {
	return width * p.channels() * p.bytesPerCh
}

func (p rgbPacker) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	r := in.PlanarChannel(0)
	g := in.PlanarChannel(1)
	var b []int16
	if in.Channels >= 3 {
		b = in.PlanarChannel(2)
	}
	var a []int16
	if p.alpha && in.Channels >= 4 {
		a = in.PlanarChannel(3)
	}

	stride := p.channels() * p.bytesPerCh
	for x := 0; x < width; x++ {
		off := x * stride
		var c0, c1, c2 int16
		switch p.order {
		case orderBGR:
			c0, c1, c2 = b[x], g[x], r[x]
		default:
			c0, c1, c2 = r[x], g[x], b[x]
		}
		var av int16
		if a != nil {
			av = a[x]
		}
		if p.bytesPerCh == 1 {
			vals := [3]byte{wp13To8(c0, x, y), wp13To8(c1, x, y), wp13To8(c2, x, y)}
			if p.alpha {
				if p.alphaFirst {
					out[off] = wp13To8(av, x, y)
					out[off+1], out[off+2], out[off+3] = vals[0], vals[1], vals[2]
				} else {
					out[off], out[off+1], out[off+2] = vals[0], vals[1], vals[2]
					out[off+3] = wp13To8(av, x, y)
				}
			} else {
				out[off], out[off+1], out[off+2] = vals[0], vals[1], vals[2]
			}
		} else {
			vals := [3]uint16{wp13To16(c0), wp13To16(c1), wp13To16(c2)}
			putU16 := func(o int, v uint16) {
				out[o] = byte(v)
				out[o+1] = byte(v >> 8)
			}
			if p.alpha {
				if p.alphaFirst {
					putU16(off, wp13To16(av))
					putU16(off+2, vals[0])
					putU16(off+4, vals[1])
					putU16(off+6, vals[2])
				} else {
					putU16(off, vals[0])
					putU16(off+2, vals[1])
					putU16(off+4, vals[2])
					putU16(off+6, wp13To16(av))
				}
			} else {
				putU16(off, vals[0])
				putU16(off+2, vals[1])
				putU16(off+4, vals[2])
			}
		}
	}
	return nil
}
