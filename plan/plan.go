/*
NAME
  plan.go

DESCRIPTION
  The Color-Pipeline Planner (§4.1): given a frame descriptor and cfhd-data
  configuration, decides whether color correction is needed and, if so,
  materializes an immutable Plan consumed read-only by every worker thread
  for that frame (§3 invariant #4).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package plan implements the Color-Pipeline Planner: it turns a frame
// descriptor and a cfhd-data configuration into a Plan — matrices, curves,
// and either a 3D cube or three 1D LUTs — that the Applicator runs
// read-only, once per frame.
package plan

import (
	"math"
	"sync"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/internal/logging"
)

const (
	curveToLinearSize = 49152 // covers input range [-2, +6] at 8192 ticks/unit (§4.1 step 14).
	linearToCurveSize = 65536
)

// Plan is the per-frame derived data structure driving the Applicator
// (§3 "Color-correction plan"). It is never mutated once returned by
// BuildPlan (invariant #4).
type Plan struct {
	NeedsCorrection bool

	LinearMatrixFixed [3][4]int32
	CurvedMatrixFixed [3][4]int32
	LinearMatrixFloat Matrix3x4
	CurvedMatrixFloat Matrix3x4
	UseFloatMatrix    bool

	CurveToLinear     []int16
	LinearToCurve     []int16
	GammaContrastLUT  []int16
	PerChannelGammaLUT [3][]int16
	HasGammaContrast  bool

	Cube *Cube

	SaturationMultiplier float64
	CDLSaturation        float64
	HighlightDesatActive bool
	AlphaCompandGain     int32
	AlphaCompandDC       int32

	// NonUnity records which optional sub-steps are non-identity, so the
	// Applicator can skip them cheaply.
	NonUnity struct {
		Matrix        bool
		EncodeDecode  bool
		GammaContrast bool
		CDLSaturation bool
	}

	EncodeCurve Curve
	DecodeCurve Curve

	PrimariesUseDecodeCurve bool
	HighlightRolloffPoint   float64

	SplitCCPosition float64
}

// Parallelizer splits n work items across a worker pool, invoking fn once
// per contiguous chunk. github.com/ajroetker/go-highway/hwy/contrib/
// workerpool.Pool satisfies this interface, and is the intended
// implementation (§4.1 "Concurrency").
type Parallelizer interface {
	ParallelFor(n int, fn func(start, end int))
}

// sequential is the Parallelizer used when the caller supplies none: runs
// fn once across the whole range.
type sequential struct{}

func (sequential) ParallelFor(n int, fn func(start, end int)) { fn(0, n) }

// Planner builds Plans and short-circuits rebuild when the cache key is
// unchanged (§3 "Plan cache key").
type Planner struct {
	Log    logging.Logger
	Pool   Parallelizer
	Loader LookFileLoader

	mu       sync.Mutex
	lastKey  Key
	lastDesc frame.Descriptor
	lastPlan *Plan
	hasLast  bool
}

// NewPlanner returns a Planner. pool may be nil, in which case filling
// loops run sequentially; loader may be nil, in which case look-files are
// loaded via PNGCubeLoader.
func NewPlanner(log logging.Logger, pool Parallelizer, loader LookFileLoader) *Planner {
	if pool == nil {
		pool = sequential{}
	}
	if loader == nil {
		loader = PNGCubeLoader{}
	}
	return &Planner{Log: log, Pool: pool, Loader: loader}
}

// NeedsCorrection is the cheap pre-check from §4.1: returns true iff any of
// the named conditions hold, letting the caller bypass the Applicator
// entirely when false.
func NeedsCorrection(fd frame.Descriptor, cfg CFHDConfig) bool {
	if cfg.CustomMatrix != nil && *cfg.CustomMatrix != IdentityMatrix3x4() {
		return true
	}
	if cfg.CameraMatrix != nil && *cfg.CameraMatrix != IdentityMatrix3x4() {
		return true
	}
	wb := cfg.whiteBalanceOrUnity()
	if wb != [3]float64{1, 1, 1} {
		return true
	}
	gamma := cfg.gammaOrUnity()
	if gamma != [3]float64{1, 1, 1} || cfg.saturationOrUnity() != 1 || cfg.Contrast != 0 && cfg.Contrast != 1 {
		return true
	}
	if cfg.curveSet && cfg.EncodeCurve != cfg.DecodeCurve {
		return true
	}
	if cfg.LookFilePath != "" {
		return true
	}
	if cfg.ProcessPath&PathHighlightRolloff != 0 && cfg.HighlightRolloffPoint > 0 {
		return true
	}
	if fd.Resolution.ForcesHalfHorizontalDebayer() {
		return true
	}
	return false
}

// BuildPlan is the planner's main entry point, implementing §4.1 steps
// 1-14. It short-circuits to the cached plan when the (config, output
// format, colorspace) key and the whole frame descriptor are both
// unchanged from the previous call.
func (p *Planner) BuildPlan(fd frame.Descriptor, cfg CFHDConfig) (*Plan, error) {
	key := Key{Config: cfg, OutputTag: int(fd.OutputFormat), Colorspace: int(fd.Colorspace)}

	p.mu.Lock()
	if p.hasLast && p.lastKey == key && p.lastDesc == fd {
		cached := p.lastPlan
		p.mu.Unlock()
		if p.Log != nil {
			p.Log.Debug("plan cache hit")
		}
		return cached, nil
	}
	p.mu.Unlock()

	if err := cfg.Validate(); err != nil && p.Log != nil {
		p.Log.Warning("cfhd config inconsistency, substituting defaults", "error", err.Error())
	}

	pl := &Plan{
		NeedsCorrection:       NeedsCorrection(fd, cfg),
		SplitCCPosition:       cfg.SplitCCPosition,
		HighlightRolloffPoint: cfg.HighlightRolloffPoint,
		AlphaCompandGain:      cfg.AlphaCompandGain,
		AlphaCompandDC:        cfg.AlphaCompandDC,
	}

	// Step 1: resolve encode/decode curves.
	encode := cfg.EncodeCurve
	decode := cfg.DecodeCurve
	if !cfg.curveSet {
		is444 := fd.SourceFormat == frame.SourceRGB444 || fd.SourceFormat == frame.SourceRGBA4444
		encode = DefaultEncodeCurve(is444)
		decode = encode
	}
	pl.EncodeCurve = encode
	pl.DecodeCurve = decode
	pl.NonUnity.EncodeDecode = encode != decode

	// Step 2: seed linear/curved matrices.
	linear := IdentityMatrix3x4()
	if cfg.CustomMatrix != nil {
		linear = *cfg.CustomMatrix
	} else if cfg.CameraMatrix != nil {
		linear = *cfg.CameraMatrix
	}
	curved := IdentityMatrix3x4()

	// Step 3: saturation.
	linear = applySaturation(linear, cfg.saturationOrUnity())

	// Step 4: gain/lift to linear or curved matrix depending on path flag.
	gain := cfg.RGBGain
	for i, g := range gain {
		if g == 0 {
			gain[i] = 1
		}
	}
	pl.PrimariesUseDecodeCurve = cfg.ProcessPath&PathPrimariesUseDecodeCurve != 0
	if pl.PrimariesUseDecodeCurve {
		curved = applyGainLift(curved, gain, cfg.RGBLift)
	} else {
		linear = applyGainLift(linear, gain, cfg.RGBLift)
	}

	// Step 5: exposure.
	linear = applyExposure(linear, cfg.exposureOrUnity())

	// Steps 6-7: white balance, clamped to [0.4, 10.0] inside applyWhiteBalance.
	wb := cfg.whiteBalanceOrUnity()
	linear = applyWhiteBalance(linear, wb)

	// Step 8: detect fixed-point overflow.
	pl.UseFloatMatrix = exceedsFixedRange(linear) || exceedsFixedRange(curved)
	pl.LinearMatrixFloat = linear
	pl.CurvedMatrixFloat = curved
	pl.LinearMatrixFixed = toFixed1613(linear)
	pl.CurvedMatrixFixed = toFixed1613(curved)
	pl.NonUnity.Matrix = linear != IdentityMatrix3x4() || curved != IdentityMatrix3x4()

	// Step 9: decide whether a full cube build is forced.
	wbMax := wb[0]
	for _, g := range wb[1:] {
		if g > wbMax {
			wbMax = g
		}
	}
	forceCube := needsFullCube(linear, cfg.HighlightDesaturate, wbMax)
	pl.HighlightDesatActive = cfg.HighlightDesaturate && wbMax > 1.0

	// Step 10: choose cube depth.
	depth := ChooseCubeDepth(fd.OutputFormat.BitsPerChannel() >= 16)

	// Step 11: load look-file or allocate cube if forced.
	var cube *Cube
	var err error
	if cfg.LookFilePath != "" {
		cube, err = p.Loader.Load(cfg.LookFilePath)
		if err != nil {
			if p.Log != nil {
				p.Log.Warning("look-file load failed, falling back to 1D LUT path", "error", err.Error())
			}
			cube = nil
		}
	} else if forceCube {
		cube = NewCube(depth)
	}

	highlightOn := cfg.ProcessPath&PathHighlightRolloff != 0 && cfg.HighlightRolloffPoint > 0
	contrastK := contrastSlope(cfg.Contrast)
	gamma := cfg.gammaOrUnity()
	cdlSat := cfg.CDLSaturation
	if cdlSat == 0 {
		cdlSat = 1
	}
	pl.CDLSaturation = cdlSat
	pl.NonUnity.CDLSaturation = cdlSat != 1
	pl.SaturationMultiplier = cfg.saturationOrUnity()

	if cube != nil {
		// Step 12: populate the cube, parallelized across the R axis
		// (§4.1 "Concurrency").
		n := cube.side()
		p.Pool.ParallelFor(n, func(start, end int) {
			for ri := start; ri < end; ri++ {
				for gi := 0; gi < n; gi++ {
					for bi := 0; bi < n; bi++ {
						r, g, b := fillCubeEntry(ri, gi, bi, n, pl, encode, decode, linear, curved,
							gamma, contrastK, highlightOn, cfg.HighlightRolloffPoint, cdlSat, cube)
						cube.Set(ri, gi, bi, r, g, b)
					}
				}
			}
		})
		// Step 13: separability detection, only meaningful for
		// procedurally built cubes (not imported look-files, which the
		// Applicator always treats as non-separable).
		if cfg.LookFilePath == "" {
			cube.DetectSeparable()
		}
		pl.Cube = cube
	} else {
		// Step 14: fill the three 1D LUTs.
		pl.CurveToLinear = make([]int16, curveToLinearSize)
		pl.LinearToCurve = make([]int16, linearToCurveSize)
		p.Pool.ParallelFor(curveToLinearSize, func(start, end int) {
			fillCurveToLinear(pl.CurveToLinear, encode, start, end)
		})
		p.Pool.ParallelFor(linearToCurveSize, func(start, end int) {
			fillLinearToCurve(pl.LinearToCurve, decode, start, end)
		})
		if gamma != [3]float64{1, 1, 1} || contrastK != 1 {
			pl.HasGammaContrast = true
			pl.NonUnity.GammaContrast = true
			pl.GammaContrastLUT = make([]int16, linearToCurveSize)
			p.Pool.ParallelFor(linearToCurveSize, func(start, end int) {
				fillGammaContrast(pl.GammaContrastLUT, gamma[0], contrastK, start, end)
			})
			for ch := 0; ch < 3; ch++ {
				if gamma[ch] == gamma[0] {
					pl.PerChannelGammaLUT[ch] = pl.GammaContrastLUT
					continue
				}
				lut := make([]int16, linearToCurveSize)
				p.Pool.ParallelFor(linearToCurveSize, func(start, end int) {
					fillGammaContrast(lut, gamma[ch], contrastK, start, end)
				})
				pl.PerChannelGammaLUT[ch] = lut
			}
		}
	}

	p.mu.Lock()
	p.lastKey = key
	p.lastDesc = fd
	p.lastPlan = pl
	p.hasLast = true
	p.mu.Unlock()

	if p.Log != nil {
		p.Log.Info("plan built", "needsCorrection", pl.NeedsCorrection, "useFloatMatrix", pl.UseFloatMatrix, "cube", pl.Cube != nil)
	}
	return pl, nil
}

// contrastSlope derives the `k` coefficient of `(x-0.5)*k + 0.5` from the
// user contrast value (§4.1 step 12g). A contrast of 0 or 1 is unity.
func contrastSlope(contrast float64) float64 {
	if contrast == 0 {
		return 1
	}
	return contrast
}

func fillCurveToLinear(dst []int16, encode Curve, start, end int) {
	size := len(dst)
	const lo, hi = -2.0, 6.0
	span := hi - lo
	for i := start; i < end; i++ {
		x := lo + span*float64(i)/float64(size)
		dst[i] = fixedFromFloat(encode.ToLinear(x))
	}
}

func fillLinearToCurve(dst []int16, decode Curve, start, end int) {
	for i := start; i < end; i++ {
		lin := float64(i-32768) / 8192.0
		dst[i] = fixedFromFloat(decode.ToEncoded(lin))
	}
}

func fillGammaContrast(dst []int16, gamma, contrastK float64, start, end int) {
	for i := start; i < end; i++ {
		x := float64(i-32768) / 8192.0
		v := x
		if gamma != 1 && v > 0 {
			v = pow(v, gamma)
		}
		v = (v-0.5)*contrastK + 0.5
		dst[i] = fixedFromFloat(v)
	}
}

func pow(x, y float64) float64 {
	return math.Pow(x, y)
}

// fillCubeEntry computes one lattice point of the 3D cube per §4.1 step 12
// a-k.
func fillCubeEntry(ri, gi, bi, n int, pl *Plan, encode, decode Curve, linear, curved Matrix3x4,
	gamma [3]float64, contrastK float64, highlightOn bool, h float64, cdlSat float64, look *Cube) (int16, int16, int16) {

	// Lattice coordinate -> [0,1] domain value.
	rv := float64(ri) / float64(n-1)
	gv := float64(gi) / float64(n-1)
	bv := float64(bi) / float64(n-1)

	// 12a: decode through the encode curve to linear.
	r := encode.ToLinear(rv)
	g := encode.ToLinear(gv)
	b := encode.ToLinear(bv)

	// 12b: highlight roll-off.
	if highlightOn {
		r, g, b = highlightRolloff(r, g, b, h)
	}

	// 12c: blend toward pure-diagonal when a saturated pixel would go
	// below -1.0.
	r, g, b = saturatedBlend(r, g, b, linear)

	// 12d: apply linear matrix.
	r, g, b = applyMatrixPoint(linear, r, g, b)

	// 12e: optionally encode through decode curve now.
	if pl.PrimariesUseDecodeCurve {
		r, g, b = decode.ToEncoded(r), decode.ToEncoded(g), decode.ToEncoded(b)
	}

	// 12f: curved matrix.
	r, g, b = applyMatrixPoint(curved, r, g, b)

	// 12g: gamma/contrast.
	r = gammaContrastPoint(r, gamma[0], contrastK)
	g = gammaContrastPoint(g, gamma[1], contrastK)
	b = gammaContrastPoint(b, gamma[2], contrastK)

	// 12h: re-encode if not already.
	if !pl.PrimariesUseDecodeCurve {
		r, g, b = decode.ToEncoded(r), decode.ToEncoded(g), decode.ToEncoded(b)
	}

	// 12i: CDL saturation around Rec.709 luma.
	r, g, b = cdlSaturate(r, g, b, cdlSat)

	// 12j: pass through look-file if this cube IS the loaded look-file;
	// when building a procedural cube there is no separate look-file
	// pass (the cube being filled here is the one used directly).

	// 12k: scale to int16, 8192 = 1.0.
	return fixedFromFloat(r), fixedFromFloat(g), fixedFromFloat(b)
}

func highlightRolloff(r, g, b, h float64) (float64, float64, float64) {
	hh := h * h
	// Weights for R, G, B as the bright channel, per §4.1 step 12b.
	blend := func(bright, o1, o2, w1, w2 float64) float64 {
		mix := o1*w1 + o2*w2
		return bright + (mix-bright)*0.5
	}
	if g > hh && b > hh && r > h {
		r = blend(r, g, b, 0.85, 0.15)
	}
	if r > hh && b > hh && g > h {
		g = blend(g, r, b, 0.65, 0.35)
	}
	if r > hh && g > hh && b > h {
		b = blend(b, r, g, 0.2, 0.8)
	}
	return r, g, b
}

func saturatedBlend(r, g, b float64, m Matrix3x4) (float64, float64, float64) {
	diag := [3]float64{r * m[0][0], g * m[1][1], b * m[2][2]}
	full := applyMatrixPointVals(m, r, g, b)
	worst := 0.0
	sat := 0.0
	for i, v := range full {
		if v < worst {
			worst = v
		}
		chVal := [3]float64{r, g, b}[i]
		if chVal > sat {
			sat = chVal
		}
	}
	if worst >= -1.0 {
		return full[0], full[1], full[2]
	}
	neg := -worst - 1.0
	excess := sat - 0.8
	if excess < 0 {
		excess = 0
	}
	weight := clampFloat(neg*excess, 0, 1)
	return diag[0] + (full[0]-diag[0])*(1-weight),
		diag[1] + (full[1]-diag[1])*(1-weight),
		diag[2] + (full[2]-diag[2])*(1-weight)
}

func applyMatrixPointVals(m Matrix3x4, r, g, b float64) [3]float64 {
	return [3]float64{
		m[0][0]*r + m[0][1]*g + m[0][2]*b + m[0][3],
		m[1][0]*r + m[1][1]*g + m[1][2]*b + m[1][3],
		m[2][0]*r + m[2][1]*g + m[2][2]*b + m[2][3],
	}
}

func applyMatrixPoint(m Matrix3x4, r, g, b float64) (float64, float64, float64) {
	v := applyMatrixPointVals(m, r, g, b)
	return v[0], v[1], v[2]
}

func gammaContrastPoint(x, gamma, contrastK float64) float64 {
	v := x
	if gamma != 1 && v > 0 {
		v = pow(v, gamma)
	}
	return (v-0.5)*contrastK + 0.5
}

func cdlSaturate(r, g, b, sat float64) (float64, float64, float64) {
	luma := 0.2126*r + 0.7152*g + 0.0722*b
	return luma + (r-luma)*sat, luma + (g-luma)*sat, luma + (b-luma)*sat
}
