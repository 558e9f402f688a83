package plan

import (
	"testing"

	"github.com/ausocean/colorcore/frame"
)

func TestNeedsCorrectionDefault(t *testing.T) {
	fd := frame.Descriptor{Width: 1920, Height: 1080, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	if NeedsCorrection(fd, CFHDConfig{}) {
		t.Fatal("default config should not need correction")
	}
}

func TestNeedsCorrectionWhiteBalance(t *testing.T) {
	fd := frame.Descriptor{Width: 1920, Height: 1080, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	cfg := CFHDConfig{WhiteBalance: [3]float64{1.2, 1, 1}}
	if !NeedsCorrection(fd, cfg) {
		t.Fatal("non-unity white balance should need correction")
	}
}

func TestBuildPlanDefaultIsUnityPath(t *testing.T) {
	p := NewPlanner(nil, nil, nil)
	fd := frame.Descriptor{Width: 1920, Height: 1080, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	pl, err := p.BuildPlan(fd, CFHDConfig{})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if pl.NeedsCorrection {
		t.Fatal("default config should not need correction")
	}
	if pl.Cube != nil {
		t.Fatal("unity config should not force a cube")
	}
}

func TestBuildPlanCacheHit(t *testing.T) {
	p := NewPlanner(nil, nil, nil)
	fd := frame.Descriptor{Width: 1920, Height: 1080, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	cfg := CFHDConfig{Saturation: 1.5}
	first, err := p.BuildPlan(fd, cfg)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	second, err := p.BuildPlan(fd, cfg)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if first != second {
		t.Fatal("expected cached plan pointer to be reused")
	}
}

func TestBuildPlanSaturationNeedsCorrection(t *testing.T) {
	p := NewPlanner(nil, nil, nil)
	fd := frame.Descriptor{Width: 1920, Height: 1080, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	pl, err := p.BuildPlan(fd, CFHDConfig{Saturation: 0.2})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if !pl.NeedsCorrection {
		t.Fatal("low saturation should need correction")
	}
	if len(pl.CurveToLinear) != curveToLinearSize {
		t.Fatalf("CurveToLinear size = %d, want %d", len(pl.CurveToLinear), curveToLinearSize)
	}
	if len(pl.LinearToCurve) != linearToCurveSize {
		t.Fatalf("LinearToCurve size = %d, want %d", len(pl.LinearToCurve), linearToCurveSize)
	}
}

func TestChooseCubeDepthBy16Bit(t *testing.T) {
	if ChooseCubeDepth(true) != 6 {
		t.Fatal("16-bit output should choose depth 6")
	}
	if ChooseCubeDepth(false) != 5 {
		t.Fatal("non-16-bit output should choose depth 5")
	}
}

func TestCubeSeparableIdentity(t *testing.T) {
	c := NewCube(5)
	n := c.side()
	for ri := 0; ri < n; ri++ {
		for gi := 0; gi < n; gi++ {
			for bi := 0; bi < n; bi++ {
				r := fixedFromFloat(float64(ri) / float64(n-1))
				g := fixedFromFloat(float64(gi) / float64(n-1))
				b := fixedFromFloat(float64(bi) / float64(n-1))
				c.Set(ri, gi, bi, r, g, b)
			}
		}
	}
	if !c.DetectSeparable() {
		t.Fatal("identity cube should be detected as separable")
	}
}

func TestCubeNotSeparableWithCrossTalk(t *testing.T) {
	c := NewCube(5)
	n := c.side()
	for ri := 0; ri < n; ri++ {
		for gi := 0; gi < n; gi++ {
			for bi := 0; bi < n; bi++ {
				r := fixedFromFloat(float64(ri)/float64(n-1)*0.9 + float64(gi)/float64(n-1)*0.1)
				c.Set(ri, gi, bi, r, 0, 0)
			}
		}
	}
	if c.DetectSeparable() {
		t.Fatal("cross-channel cube should not be detected as separable")
	}
}
