/*
NAME
  curve.go

DESCRIPTION
  Encode/decode curve descriptors and their ToLinear/ToEncoded transfer
  functions, per §4.1 step 1; the 1D LUTs built from these curves are
  filled by plan.go's fillCurveToLinear/fillLinearToCurve (§4.1 step 14).

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

import "math"

// CurveKind enumerates the encode/decode curve families recognised by the
// planner (§4.1 step 1).
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveLog
	CurveGamma
	CurveCineon
	CurveCine985
	CurveParametric
	CurveCStyle
	CurveSLog
	CurveLogC
)

// Curve is a fully resolved curve descriptor: kind plus the base/exponent
// parameter decoded from either the packed 8.8 fraction or, when Extended
// is set, a direct 16-bit base value.
type Curve struct {
	Kind CurveKind
	// Param is the base (for CurveLog) or exponent (for CurveGamma); for
	// CurveParametric, Param is shape parameter a and ParamB is b.
	Param    float64
	ParamB   float64
	Extended bool
}

// DefaultEncodeCurve returns the curve used when no encode curve is
// configured: Log base 90, or Gamma 2.2 for 4:4:4 content (§4.1 step 1).
func DefaultEncodeCurve(is444 bool) Curve {
	if is444 {
		return Curve{Kind: CurveGamma, Param: 2.2}
	}
	return Curve{Kind: CurveLog, Param: 90}
}

// decode8_8 unpacks a packed 8.8 fixed-point fraction into a float64.
func decode8_8(v uint16) float64 {
	return float64(v) / 256.0
}

// ResolveCurveParam extracts a curve's numeric parameter from either a
// packed 8.8 fraction or, when extended is set, a direct 16-bit value
// (§4.1 step 1).
func ResolveCurveParam(packed uint16, extendedValue uint16, extended bool) float64 {
	if extended {
		return float64(extendedValue)
	}
	return decode8_8(packed)
}

// ToLinear maps an encoded value x (in curve domain, typically [0,1]) to
// linear light.
func (c Curve) ToLinear(x float64) float64 {
	switch c.Kind {
	case CurveLinear:
		return x
	case CurveLog:
		base := c.Param
		if base <= 1 {
			base = 90
		}
		return (math.Pow(base, x) - 1) / (base - 1)
	case CurveGamma:
		g := c.Param
		if g <= 0 {
			g = 2.2
		}
		if x <= 0 {
			return 0
		}
		return math.Pow(x, g)
	case CurveCineon:
		return cineonToLinear(x)
	case CurveCine985:
		return cine985ToLinear(x)
	case CurveParametric:
		a, b := c.Param, c.ParamB
		if a == 0 {
			a = 1
		}
		if b == 0 {
			b = 1
		}
		return math.Pow(x, a) * b
	case CurveCStyle:
		return cStyleToLinear(x)
	case CurveSLog:
		return sLogToLinear(x)
	case CurveLogC:
		return logCToLinear(x)
	default:
		return x
	}
}

// ToEncoded maps a linear-light value x to the curve-encoded domain; the
// inverse of ToLinear.
func (c Curve) ToEncoded(x float64) float64 {
	switch c.Kind {
	case CurveLinear:
		return x
	case CurveLog:
		base := c.Param
		if base <= 1 {
			base = 90
		}
		v := x*(base-1) + 1
		if v <= 0 {
			return 0
		}
		return math.Log(v) / math.Log(base)
	case CurveGamma:
		g := c.Param
		if g <= 0 {
			g = 2.2
		}
		if x <= 0 {
			return 0
		}
		return math.Pow(x, 1/g)
	case CurveCineon:
		return linearToCineon(x)
	case CurveCine985:
		return linearToCine985(x)
	case CurveParametric:
		a, b := c.Param, c.ParamB
		if a == 0 {
			a = 1
		}
		if b == 0 {
			b = 1
		}
		v := x / b
		if v < 0 {
			v = 0
		}
		return math.Pow(v, 1/a)
	case CurveCStyle:
		return linearToCStyle(x)
	case CurveSLog:
		return linearToSLog(x)
	case CurveLogC:
		return linearToLogC(x)
	default:
		return x
	}
}

// Cineon print-density style curve, approximated per common camera-log
// conventions (white point 685, 10-bit code-value scale); no black-point
// offset is applied.
func cineonToLinear(x float64) float64 {
	cv := x * 1023
	return math.Pow(10, (cv-685)*0.002/0.6)
}

func linearToCineon(x float64) float64 {
	if x <= 0 {
		x = 1e-6
	}
	cv := 685 + math.Log10(x)*0.6/0.002
	return cv / 1023
}

func cine985ToLinear(x float64) float64 {
	cv := x * 1023
	return math.Pow(10, (cv-685)*0.002/0.985)
}

func linearToCine985(x float64) float64 {
	if x <= 0 {
		x = 1e-6
	}
	cv := 685 + math.Log10(x)*0.985/0.002
	return cv / 1023
}

func cStyleToLinear(x float64) float64 {
	// A soft-knee curve resembling typical "C-style" broadcast transfer:
	// linear below a break point, power law above it.
	const brk = 0.0812
	if x < brk {
		return x / 4.5
	}
	return math.Pow((x+0.099)/1.099, 1/0.45)
}

func linearToCStyle(x float64) float64 {
	const brk = 0.018
	if x < brk {
		return x * 4.5
	}
	return 1.099*math.Pow(x, 0.45) - 0.099
}

func sLogToLinear(x float64) float64 {
	return (math.Pow(10, (x-0.616596-0.03)/0.432699) - 0.037584)
}

func linearToSLog(x float64) float64 {
	if x < 0 {
		x = 0
	}
	return (0.432699*math.Log10(x+0.037584) + 0.616596 + 0.03)
}

func logCToLinear(x float64) float64 {
	const a, b, c, d, e, f = 5.555556, 0.052272, 0.247190, 0.385537, 5.367655, 0.092864
	cut := 0.1496582
	if x > cut {
		return (math.Pow(10, (x-d)/c) - b) / a
	}
	return (x - f) / e
}

func linearToLogC(x float64) float64 {
	const a, b, c, d, e, f = 5.555556, 0.052272, 0.247190, 0.385537, 5.367655, 0.092864
	cutLinear := 0.010591
	if x > cutLinear {
		return c*math.Log10(a*x+b) + d
	}
	return e*x + f
}

func fixedFromFloat(v float64) int16 {
	scaled := v * 8192.0
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}
