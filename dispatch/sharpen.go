/*
NAME
  sharpen.go

DESCRIPTION
  The SHARPEN job kind (§4.5, §5): a 5-tap vertical unsharp-mask kernel
  applied across already-finalized rows, run at the dispatch level right
  after the rows it depends on have all completed.

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

import "github.com/ausocean/colorcore/wp13"

// SharpenRow applies a 5-tap (1-4-6-4-1/16) vertical unsharp-mask kernel to
// rows[y], reading the two rows above and below (edge-replicated past the
// frame boundary) and boosting the difference between rows[y] and its
// vertical blur by strength.
func SharpenRow(rows []wp13.Row, y int, strength float64) wp13.Row {
	width := rows[y].Width
	channels := rows[y].Channels
	out := wp13.NewRow(width, channels, rows[y].Flags, rows[y].BitDepth)

	at := func(yy int) wp13.Row {
		if yy < 0 {
			yy = 0
		}
		if yy >= len(rows) {
			yy = len(rows) - 1
		}
		return rows[yy]
	}
	rm2, rm1, r0, rp1, rp2 := at(y-2), at(y-1), rows[y], at(y+1), at(y+2)

	for c := 0; c < channels; c++ {
		a := rm2.PlanarChannel(c)
		b := rm1.PlanarChannel(c)
		m := r0.PlanarChannel(c)
		d := rp1.PlanarChannel(c)
		e := rp2.PlanarChannel(c)
		o := out.PlanarChannel(c)
		for x := 0; x < width; x++ {
			blur := (int32(a[x]) + 4*int32(b[x]) + 6*int32(m[x]) + 4*int32(d[x]) + int32(e[x])) / 16
			centre := int32(m[x])
			sharp := centre + int32(strength*float64(centre-blur))
			o[x] = wp13.Clamp(sharp)
		}
	}
	return out
}
