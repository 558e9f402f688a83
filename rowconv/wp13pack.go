/*
NAME
  wp13pack.go

DESCRIPTION
  The WP13/W13A output formats: raw intermediate WP13 samples packed
  directly into 16-bit little-endian words, with an optional alpha plane
  (§4.3, §3 "WP13 fixed-point convention").

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

type wp13Packer struct {
	withAlpha bool
}

func (p wp13Packer) channels() int {
	if p.withAlpha {
		return 4
	}
	return 3
}

func (p wp13Packer) BytesPerRow(width int) int {
	return width * p.channels() * 2
}

func (p wp13Packer) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	ch := p.channels()
	for c := 0; c < ch && c < in.Channels; c++ {
		plane := in.PlanarChannel(c)
		for x := 0; x < width; x++ {
			off := (x*ch + c) * 2
			v := uint16(plane[x])
			out[off] = byte(v)
			out[off+1] = byte(v >> 8)
		}
	}
	return nil
}
