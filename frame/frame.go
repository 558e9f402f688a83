/*
NAME
  frame.go

DESCRIPTION
  Defines the frame descriptor: the immutable per-frame metadata describing
  source encoding, output pixel format, resolution, colorspace and
  white-point depth that the color pipeline planner and converters key off.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frame defines the frame descriptor and the pixel-format,
// resolution and colorspace enumerations shared by every stage of the
// color pipeline.
package frame

import "fmt"

// SourceFormat identifies the encoding of wavelet-reconstructed channel
// rows arriving from the inverse wavelet stage.
type SourceFormat int

const (
	NothingDefined SourceFormat = iota
	SourceYUV422
	SourceRGB444
	SourceRGBA4444
	SourceBayer
)

// NumChannels returns the channel count implied by a source format.
func (f SourceFormat) NumChannels() int {
	switch f {
	case SourceYUV422, SourceRGB444:
		return 3
	case SourceRGBA4444:
		return 4
	case SourceBayer:
		return 4 // Bayer may yield 3 or 4 depending on decode path; 4 is the worst case allocation.
	default:
		return 0
	}
}

func (f SourceFormat) String() string {
	switch f {
	case SourceYUV422:
		return "YUV422"
	case SourceRGB444:
		return "RGB444"
	case SourceRGBA4444:
		return "RGBA4444"
	case SourceBayer:
		return "Bayer"
	default:
		return "Undefined"
	}
}

// OutputFormat is the packed external pixel format requested by the caller.
// Tags mirror §4.3 of the specification exactly.
type OutputFormat int

const (
	OutputNothingDefined OutputFormat = iota
	OutputRGB24
	OutputRGB32
	OutputBGRA
	OutputRG48
	OutputRG64
	OutputB64A
	OutputWP13
	OutputW13A
	OutputRG30
	OutputAR10
	OutputAB10
	OutputR210
	OutputDPX0
	OutputV210
	OutputYU64
	OutputYR16
	OutputYUYV
	OutputUYVY
	OutputYVYU
	OutputR408
	OutputV408
	OutputCbYCrY8bit
	OutputCbYCrY16bit
	OutputCbYCrY2_8
	OutputCbYCrY2_14
	OutputCbYCrY10_6
	OutputNV12
	OutputYV12
)

func (f OutputFormat) String() string {
	switch f {
	case OutputRGB24:
		return "RGB24"
	case OutputRGB32:
		return "RGB32"
	case OutputBGRA:
		return "BGRA"
	case OutputRG48:
		return "RG48"
	case OutputRG64:
		return "RG64"
	case OutputB64A:
		return "B64A"
	case OutputWP13:
		return "WP13"
	case OutputW13A:
		return "W13A"
	case OutputRG30:
		return "RG30"
	case OutputAR10:
		return "AR10"
	case OutputAB10:
		return "AB10"
	case OutputR210:
		return "R210"
	case OutputDPX0:
		return "DPX0"
	case OutputV210:
		return "V210"
	case OutputYU64:
		return "YU64"
	case OutputYR16:
		return "YR16"
	case OutputYUYV:
		return "YUYV"
	case OutputUYVY:
		return "UYVY"
	case OutputYVYU:
		return "YVYU"
	case OutputR408:
		return "R408"
	case OutputV408:
		return "V408"
	case OutputCbYCrY8bit:
		return "CbYCrY_8bit"
	case OutputCbYCrY16bit:
		return "CbYCrY_16bit"
	case OutputCbYCrY2_8:
		return "CbYCrY_2_8"
	case OutputCbYCrY2_14:
		return "CbYCrY_2_14"
	case OutputCbYCrY10_6:
		return "CbYCrY_10_6"
	case OutputNV12:
		return "NV12"
	case OutputYV12:
		return "YV12"
	default:
		return "Undefined"
	}
}

// IsYUV reports whether an output format family is YUV (as opposed to RGB).
func (f OutputFormat) IsYUV() bool {
	switch f {
	case OutputV210, OutputYU64, OutputYR16, OutputYUYV, OutputUYVY, OutputYVYU,
		OutputR408, OutputV408, OutputCbYCrY8bit, OutputCbYCrY16bit, OutputCbYCrY2_8,
		OutputCbYCrY2_14, OutputCbYCrY10_6, OutputNV12, OutputYV12:
		return true
	default:
		return false
	}
}

// BitsPerChannel returns the nominal per-channel bit depth for the format,
// per the §4.3 table.
func (f OutputFormat) BitsPerChannel() int {
	switch f {
	case OutputRGB24, OutputRGB32, OutputBGRA, OutputYUYV, OutputUYVY, OutputYVYU,
		OutputR408, OutputV408, OutputCbYCrY8bit:
		return 8
	case OutputRG48, OutputRG64, OutputB64A, OutputYU64, OutputYR16, OutputCbYCrY16bit:
		return 16
	case OutputWP13, OutputW13A:
		return 13
	case OutputRG30, OutputAR10, OutputAB10, OutputR210, OutputDPX0, OutputV210,
		OutputCbYCrY2_8, OutputCbYCrY2_14, OutputCbYCrY10_6:
		return 10
	case OutputNV12, OutputYV12:
		return 8
	default:
		return 0
	}
}

// HasAlpha reports whether the format carries an alpha/fourth channel.
func (f OutputFormat) HasAlpha() bool {
	switch f {
	case OutputRGB32, OutputBGRA, OutputRG64, OutputB64A, OutputW13A, OutputR408, OutputV408:
		return true
	default:
		return false
	}
}

// Resolution selects the spatial scale and debayer path applied while
// reconstructing a frame.
type Resolution int

const (
	ResFull Resolution = iota
	ResHalfHorizontal
	ResHalf
	ResQuarter
	ResQuarterUnscaled
	ResFullDebayer
	ResHalfHorizontalDebayer
	ResHalfNoDebayer
	ResLowpassOnly
)

// ForcesHalfHorizontalDebayer reports whether the resolution choice implies
// a forced half-horizontal debayer path, per §4.1 needs_correction.
func (r Resolution) ForcesHalfHorizontalDebayer() bool {
	return r == ResHalfHorizontalDebayer
}

// Colorspace is a bitfield selecting {601,709} x {CG,VS} range conventions.
type Colorspace int

const (
	Rec601 Colorspace = 0
	Rec709 Colorspace = 1 << 0

	RangeVideoSafe Colorspace = 0
	RangeCG        Colorspace = 1 << 1
)

// Is709 reports whether the 709 matrix bit is set.
func (c Colorspace) Is709() bool { return c&Rec709 != 0 }

// IsCG reports whether the computer-graphics (full) range bit is set.
func (c Colorspace) IsCG() bool { return c&RangeCG != 0 }

func (c Colorspace) String() string {
	s := "601"
	if c.Is709() {
		s = "709"
	}
	if c.IsCG() {
		return s + "-CG"
	}
	return s + "-VS"
}

// Descriptor is the immutable per-frame metadata created when a frame
// header is parsed. It never changes for the duration of a frame decode
// (invariant #4 in §3).
type Descriptor struct {
	Width, Height int

	SourceFormat SourceFormat
	OutputFormat OutputFormat
	Resolution   Resolution
	Colorspace   Colorspace

	// WhitePointDepth is 0 (unspecified/legacy), 13 (WP13 signed
	// intermediate) or 16 (unsigned 16-bit intermediate).
	WhitePointDepth int

	Signed bool

	// CompandedAlpha is true when the alpha channel has already been
	// through perceptual companding upstream and must not be companded
	// again by the Applicator.
	CompandedAlpha bool
}

// Validate checks the descriptor for internal consistency, returning an
// error describing the first problem found.
func (d Descriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("frame: invalid dimensions %dx%d", d.Width, d.Height)
	}
	if d.WhitePointDepth != 0 && d.WhitePointDepth != 13 && d.WhitePointDepth != 16 {
		return fmt.Errorf("frame: invalid white-point depth %d", d.WhitePointDepth)
	}
	if d.SourceFormat == NothingDefined {
		return fmt.Errorf("frame: source format not set")
	}
	if d.OutputFormat == OutputNothingDefined {
		return fmt.Errorf("frame: output format not set")
	}
	return nil
}

// NumChannels returns the number of channels carried in intermediate rows
// for this descriptor's source format.
func (d Descriptor) NumChannels() int {
	return d.SourceFormat.NumChannels()
}
