/*
NAME
  wp13.go

DESCRIPTION
  Numeric conventions and row-view types for the 13-bit signed "WP13"
  intermediate representation and its 16-bit unsigned sibling. See §3 and
  §9 ("Pointer arithmetic over 16-bit planar data") of the specification.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wp13 provides the fixed-point numeric conventions ("WP13": 13-bit
// signed, 8192 = 1.0) and the typed row-view wrapper used instead of raw
// pointers and pitches throughout the color pipeline.
package wp13

// Fixed-point conventions for the 13-bit signed intermediate domain.
const (
	Unity = 8192 // 1.0 in WP13 fixed point.
	Min   = -16384
	Max   = 32767
)

// Clamp saturates v to the WP13 representable range.
func Clamp(v int32) int16 {
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return int16(v)
}

// ClampUint16 saturates v to the unsigned 16-bit range [0, 65535].
func ClampUint16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// Layout tags the physical arrangement of samples within an intermediate
// row, and carries the small flag word described in §3 and §7.
type Layout uint8

const (
	// LayoutPlanar stores N consecutive runs of Width samples, channel by
	// channel (R, G, B[, A]).
	LayoutPlanar Layout = 1 << iota
	// LayoutEightPixelPlanar stores interleaved 8-sample blocks per
	// channel, repeated across the row.
	LayoutEightPixelPlanar
	// LayoutPacked stores interleaved per-pixel tuples.
	LayoutPacked
	// FlagPresaturated marks rows that have already been saturated and
	// must not be clipped again.
	FlagPresaturated
	// FlagColorFormatDone marks rows already converted to the output
	// colorspace family (invariant #2 in §3): only packing remains.
	FlagColorFormatDone
	// FlagAlphaCompanded marks rows whose alpha channel has already been
	// companded this frame; the Applicator must not compand it twice.
	FlagAlphaCompanded
)

// LayoutOf masks out the layout bits (as opposed to the status flag bits)
// from a combined flag word.
func LayoutOf(flags Layout) Layout {
	return flags & (LayoutPlanar | LayoutEightPixelPlanar | LayoutPacked)
}

// Row is a contiguous buffer of 16-bit values interpreted as signed WP13 or
// unsigned 16-bit samples depending on BitDepth, tagged by Layout and the
// channel count. It replaces raw pointer + pitch plumbing with a single
// typed view, per §9's "RowView" design note.
type Row struct {
	Data     []int16
	Width    int
	Channels int
	Flags    Layout
	// BitDepth is either 13 (signed WP13) or 16 (unsigned).
	BitDepth int
}

// NewRow allocates a Row with backing storage sized for width*channels
// samples.
func NewRow(width, channels int, flags Layout, bitDepth int) Row {
	return Row{
		Data:     make([]int16, width*channels),
		Width:    width,
		Channels: channels,
		Flags:    flags,
		BitDepth: bitDepth,
	}
}

// Signed returns the row's backing storage reinterpreted as signed samples;
// valid for any BitDepth since the storage type is always int16.
func (r Row) Signed() []int16 { return r.Data }

// Unsigned returns a copy of the row's samples reinterpreted as unsigned
// 16-bit samples via a safe bit-pattern cast, for BitDepth == 16 rows;
// writes to the copy do not reach the row.
func (r Row) Unsigned() []uint16 {
	out := make([]uint16, len(r.Data))
	for i, v := range r.Data {
		out[i] = uint16(v)
	}
	return out
}

// Presaturated reports whether the presaturation flag is set.
func (r Row) Presaturated() bool { return r.Flags&FlagPresaturated != 0 }

// ColorFormatDone reports whether the color-format-done flag is set
// (invariant #2 in §3).
func (r Row) ColorFormatDone() bool { return r.Flags&FlagColorFormatDone != 0 }

// PlanarChannel returns a view of one channel's Width contiguous samples
// from a LayoutPlanar row.
func (r Row) PlanarChannel(ch int) []int16 {
	if LayoutOf(r.Flags) != LayoutPlanar {
		panic("wp13: PlanarChannel called on non-planar row")
	}
	start := ch * r.Width
	return r.Data[start : start+r.Width]
}

// PackedPixel returns the Channels samples for pixel x from a LayoutPacked
// row.
func (r Row) PackedPixel(x int) []int16 {
	if LayoutOf(r.Flags) != LayoutPacked {
		panic("wp13: PackedPixel called on non-packed row")
	}
	start := x * r.Channels
	return r.Data[start : start+r.Channels]
}

// EightBlock returns the 8-sample block index blk (0-based, width/8 blocks
// per channel) for channel ch in a LayoutEightPixelPlanar row.
func (r Row) EightBlock(ch, blk int) []int16 {
	if LayoutOf(r.Flags) != LayoutEightPixelPlanar {
		panic("wp13: EightBlock called on non-8pixel-planar row")
	}
	blocksPerChannel := (r.Width + 7) / 8
	start := (ch*blocksPerChannel + blk) * 8
	return r.Data[start : start+8]
}
