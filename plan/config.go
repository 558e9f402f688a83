/*
NAME
  config.go

DESCRIPTION
  CFHDConfig ("cfhd-data"): the user-adjustable color configuration consumed
  by the planner, following the enum-block-then-struct convention of the
  teacher's revid/config.Config.

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

import "fmt"

// Process-path flags, a small bitfield of optional pipeline behaviors.
const (
	PathNone = 0
	// PathPrimariesUseDecodeCurve moves gain/lift application and the
	// re-encode step so that primaries are applied in decode-curve space
	// rather than linear space (§4.1 steps 4, 12e).
	PathPrimariesUseDecodeCurve = 1 << iota
	// PathHighlightRolloff enables the near-white hue-preserving blend
	// (§4.1 step 12b).
	PathHighlightRolloff
)

// CFHDConfig is the user-adjustable color configuration ("cfhd-data" in the
// trade) consumed by BuildPlan. Default values are the zero value unless
// otherwise noted.
type CFHDConfig struct {
	// WhiteBalance holds the per-channel R,G,B white-balance gains applied
	// column-wise to the matrix (§4.1 step 6). Zero values are treated as
	// 1.0 (unity).
	WhiteBalance [3]float64

	// Exposure is a scalar multiplier applied to the linear matrix
	// (§4.1 step 5). Zero is treated as 1.0.
	Exposure float64

	// Saturation controls the desaturation/full-saturation blend
	// (§4.1 step 3). 1.0 is unity; zero is treated as 1.0.
	Saturation float64

	// Contrast feeds the `(x-0.5)*k + 0.5` curve in §4.1 step 12g. 1.0 is
	// unity (k derived as Contrast); zero is treated as 1.0.
	Contrast float64

	// Gamma holds the per-channel R,G,B gamma exponents applied in
	// §4.1 step 12g. Zero is treated as 1.0 (no change).
	Gamma [3]float64

	// RGBGain and RGBLift are applied either to the linear or curved
	// matrix depending on ProcessPath's PathPrimariesUseDecodeCurve bit
	// (§4.1 step 4). A zero gain is treated as 1.0.
	RGBGain [3]float64
	RGBLift [3]float64

	// CDLSaturation is the ASC-CDL style saturation applied around
	// Rec.709 luma in §4.1 step 12i. Zero is treated as 1.0.
	CDLSaturation float64

	// LookFilePath, when non-empty, names an external 3D-LUT look file to
	// be loaded via LookFileLoader (§4.1 step 11, §6).
	LookFilePath string

	// EncodeCurve and DecodeCurve select the per-channel transfer
	// functions (§4.1 step 1). The zero Curve (CurveLinear) means "not
	// configured"; BuildPlan substitutes DefaultEncodeCurve when needed.
	EncodeCurve Curve
	DecodeCurve Curve
	curveSet    bool // internal: true once EncodeCurve/DecodeCurve have been explicitly set.

	// CameraMatrix, when non-nil, seeds the linear matrix instead of
	// identity (§4.1 step 2).
	CameraMatrix *Matrix3x4
	// CustomMatrix, when non-nil, overrides CameraMatrix as the linear
	// matrix seed.
	CustomMatrix *Matrix3x4

	// ProcessPath is a bitfield of PathXxx flags.
	ProcessPath int

	// HighlightRolloffPoint is the near-white roll-off threshold `h` used
	// in §4.1 step 12b; zero disables highlight roll-off regardless of
	// ProcessPath.
	HighlightRolloffPoint float64

	// HighlightDesaturate enables the highlight-desaturation gain check
	// in §4.1 step 9.
	HighlightDesaturate bool

	// AlphaCompandGain and AlphaCompandDC parameterize the alpha
	// companding curve in §4.2 "Alpha companding". Zero gain disables
	// companding.
	AlphaCompandGain int32
	AlphaCompandDC   int32

	// SplitCCPosition, when > 0, is the fractional x-position (0,1] at
	// which the Applicator switches from preview pass-through to full
	// correction (§4.2 "Split-screen preview").
	SplitCCPosition float64
}

// SetCurves explicitly configures the encode/decode curves, marking them as
// configured so BuildPlan does not substitute DefaultEncodeCurve.
func (c *CFHDConfig) SetCurves(encode, decode Curve) {
	c.EncodeCurve = encode
	c.DecodeCurve = decode
	c.curveSet = true
}

// Validate reports the first configuration inconsistency found. Per §7,
// callers should treat Validate failures as "substitute default curve;
// continue" rather than fatal — BuildPlan calls Validate only to decide
// what to log, never to abort.
func (c CFHDConfig) Validate() error {
	if c.Saturation < 0 {
		return fmt.Errorf("plan: negative saturation %v", c.Saturation)
	}
	for i, g := range c.WhiteBalance {
		if g < 0 {
			return fmt.Errorf("plan: negative white balance gain at channel %d: %v", i, g)
		}
	}
	return nil
}

func (c CFHDConfig) whiteBalanceOrUnity() [3]float64 {
	wb := c.WhiteBalance
	for i, g := range wb {
		if g == 0 {
			wb[i] = 1
		}
	}
	return wb
}

func (c CFHDConfig) exposureOrUnity() float64 {
	if c.Exposure == 0 {
		return 1
	}
	return c.Exposure
}

func (c CFHDConfig) saturationOrUnity() float64 {
	if c.Saturation == 0 {
		return 1
	}
	return c.Saturation
}

func (c CFHDConfig) gammaOrUnity() [3]float64 {
	g := c.Gamma
	for i, v := range g {
		if v == 0 {
			g[i] = 1
		}
	}
	return g
}

// Key is the plan cache key: the tuple (config, output format, output
// colorspace) from §3 "Plan cache key".
type Key struct {
	Config     CFHDConfig
	OutputTag  int
	Colorspace int
}
