/*
NAME
  options.go

DESCRIPTION
  Options selects the optional dispatcher job kinds a Decode call exercises
  beyond the always-on finalize/pack path: SHARPEN, HORIZONTAL_3D/
  VERTICAL_3D, HISTOGRAM, and the uncompressed OUTPUT_UNCOMPRESSED pack
  path (§4.5, §5).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package decoder

import (
	"io"

	"github.com/ausocean/colorcore/dispatch"
)

// StereoAxis selects which of the two stereoscopic remap job kinds a
// Decode call runs, or StereoNone to skip the 3D warp level entirely.
type StereoAxis int

const (
	StereoNone StereoAxis = iota
	StereoHorizontal
	StereoVertical
)

// Options selects the optional per-frame dispatcher levels layered on top
// of the always-on finalize-then-pack pipeline.
type Options struct {
	// Sharpen enables a SHARPEN level: a 5-tap vertical unsharp-mask pass
	// over the finalized rows before warp/pack (§5 "SHARPEN").
	Sharpen         bool
	SharpenStrength float64 // 0 selects a default of 0.25.

	// Stereo, when not StereoNone, enables a HORIZONTAL_3D or VERTICAL_3D
	// level that remaps every row through Geomesh for eye StereoEye before
	// packing (§5 "HORIZONTAL_3D"/"VERTICAL_3D").
	Stereo    StereoAxis
	Geomesh   dispatch.GeomeshEngine
	StereoEye int

	// Uncompressed selects the OUTPUT_UNCOMPRESSED job kind: rows are
	// written to out as raw little-endian WP13 samples, bypassing
	// rowconv's external pixel-format packers entirely (§5
	// "OUTPUT_UNCOMPRESSED").
	Uncompressed bool

	// Histogram enables a HISTOGRAM job that renders HistogramRow's channel
	// 0 (luma for a YUV row, red for an RGB row) to HistogramWriter once
	// the row has been finalized (and
	// sharpened/warped, if those levels also ran) (§5 "HISTOGRAM").
	Histogram       bool
	HistogramMode   dispatch.HistogramMode
	HistogramRow    int
	HistogramWriter io.Writer
}
