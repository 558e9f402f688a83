/*
NAME
  tenbit.go

DESCRIPTION
  10-bit packed RGB output formats: RG30, AR10, AB10, R210, DPX0. Each
  packs one pixel into a 32-bit word with a different channel order and
  bit-endianness; the big-endian R210/DPX0 words are written with
  github.com/icza/bitio, the little-endian ones with encoding/binary (§4.3).

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
	"encoding/binary"
	"fmt"

	"github.com/icza/bitio"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/wp13"
)

// byteCursor is a minimal io.Writer over a pre-sized byte slice, letting
// bitio.Writer pack bits directly into the caller's output buffer without
// an intermediate allocation.
type byteCursor struct {
	buf []byte
	pos int
}

func (c *byteCursor) Write(p []byte) (int, error) {
	n := copy(c.buf[c.pos:], p)
	c.pos += n
	return n, nil
}

type tenBitLayout int

const (
	layoutRG30 tenBitLayout = iota // little-endian word: 00 RRRRRRRRRR GGGGGGGGGG BBBBBBBBBB
	layoutAR10                     // little-endian word: AA RRRRRRRRRR GGGGGGGGGG BBBBBBBBBB
	layoutAB10                     // little-endian word: AA BBBBBBBBBB GGGGGGGGGG RRRRRRRRRR
	layoutR210                      // big-endian word:    00 RRRRRRRRRR GGGGGGGGGG BBBBBBBBBB
	layoutDPX0                      // big-endian word:    RRRRRRRRRR GGGGGGGGGG BBBBBBBBBB 00
)

type tenBitPacker struct {
	layout tenBitLayout
}

func newTenBitPacker(format frame.OutputFormat) (PixelPacker, error) {
	switch format {
	case frame.OutputRG30:
		return tenBitPacker{layout: layoutRG30}, nil
	case frame.OutputAR10:
		return tenBitPacker{layout: layoutAR10}, nil
	case frame.OutputAB10:
		return tenBitPacker{layout: layoutAB10}, nil
	case frame.OutputR210:
		return tenBitPacker{layout: layoutR210}, nil
	case frame.OutputDPX0:
		return tenBitPacker{layout: layoutDPX0}, nil
	default:
		return nil, fmt.Errorf("rowconv: %v is not a 10-bit packed format", format)
	}
}

func (tenBitPacker) BytesPerRow(width int) int { return width * 4 }

func (p tenBitPacker) Pack(in wp13.Row, out []byte, width, y int) error {
	need := p.BytesPerRow(width)
	if len(out) < need {
		return fmt.Errorf("rowconv: output buffer too small: have %d, need %d", len(out), need)
	}
	r := in.PlanarChannel(0)
	g := in.PlanarChannel(1)
	b := in.PlanarChannel(2)
	var a []int16
	if in.Channels >= 4 {
		a = in.PlanarChannel(3)
	}

	// RG30/AR10/AB10 are little-endian words: the 2+10+10+10 bitfield is
	// packed into a uint32 and stored low-byte-first. R210 uses the same
	// bitfield but stored big-endian, and DPX0 tail-pads instead of
	// leading, so those two still go through the MSB-first bitio writer.
	switch p.layout {
	case layoutRG30, layoutAR10, layoutAB10:
		for x := 0; x < width; x++ {
			r10, g10, b10 := wp13To10(r[x], x, y), wp13To10(g[x], x, y), wp13To10(b[x], x, y)
			var a2 uint16
			if a != nil {
				a2 = uint16(wp13To10(a[x], x, y) >> 8)
			}
			var word uint32
			switch p.layout {
			case layoutRG30:
				word = packWord2_10_10_10(0, r10, g10, b10)
			case layoutAR10:
				word = packWord2_10_10_10(a2, r10, g10, b10)
			case layoutAB10:
				word = packWord2_10_10_10(a2, b10, g10, r10)
			}
			binary.LittleEndian.PutUint32(out[x*4:x*4+4], word)
		}
		return nil
	}

	cur := &byteCursor{buf: out}
	w := bitio.NewWriter(cur)
	for x := 0; x < width; x++ {
		r10, g10, b10 := wp13To10(r[x], x, y), wp13To10(g[x], x, y), wp13To10(b[x], x, y)
		var err error
		switch p.layout {
		case layoutR210:
			err = writeBE32(w, 0, r10, g10, b10)
		case layoutDPX0:
			err = writeBE32Tail(w, r10, g10, b10)
		}
		if err != nil {
			return fmt.Errorf("rowconv: pack 10-bit pixel %d: %w", x, err)
		}
	}
	return w.Close()
}

// packWord2_10_10_10 assembles a 2-bit high field and three 10-bit fields
// into a single 32-bit value, MSB field first (§4.3 10-bit packed layouts).
// Byte order is the caller's concern: big-endian layouts go through the
// bitio writer below, little-endian layouts store this value directly via
// binary.LittleEndian.
func packWord2_10_10_10(hi, c0, c1, c2 uint16) uint32 {
	return uint32(hi&0x3)<<30 | uint32(c0&0x3ff)<<20 | uint32(c1&0x3ff)<<10 | uint32(c2&0x3ff)
}

// writeBE32 writes a 2-bit high field then three 10-bit fields, MSB-first,
// filling a 32-bit word (§4.3 10-bit packed layouts).
func writeBE32(w *bitio.Writer, hi uint16, c0, c1, c2 uint16) error {
	if err := w.WriteBits(uint64(hi), 2); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(c0), 10); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(c1), 10); err != nil {
		return err
	}
	return w.WriteBits(uint64(c2), 10)
}

// writeBE32Tail writes three 10-bit fields followed by 2 padding bits, the
// DPX "method A" convention.
func writeBE32Tail(w *bitio.Writer, c0, c1, c2 uint16) error {
	if err := w.WriteBits(uint64(c0), 10); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(c1), 10); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(c2), 10); err != nil {
		return err
	}
	return w.WriteBits(0, 2)
}
