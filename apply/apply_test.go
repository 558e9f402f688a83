package apply

import (
	"testing"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/plan"
	"github.com/ausocean/colorcore/wp13"
)

func TestRowPassthroughWhenNoCorrection(t *testing.T) {
	width := 4
	in := wp13.NewRow(width, 3, wp13.LayoutPlanar, 13)
	out := wp13.NewRow(width, 3, wp13.LayoutPlanar, 13)
	for x := 0; x < width; x++ {
		in.PlanarChannel(0)[x] = int16(x * 100)
	}
	if err := Row(nil, in, out, width); err != nil {
		t.Fatalf("Row: %v", err)
	}
	for x := 0; x < width; x++ {
		if out.PlanarChannel(0)[x] != int16(x*100) {
			t.Fatalf("passthrough mismatch at %d", x)
		}
	}
}

func TestRowAppliesSaturationMatrix(t *testing.T) {
	p := plan.NewPlanner(nil, nil, nil)
	fd := frame.Descriptor{Width: 8, Height: 1, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	pl, err := p.BuildPlan(fd, plan.CFHDConfig{Saturation: 0.2})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	width := 8
	in := wp13.NewRow(width, 3, wp13.LayoutPlanar, 13)
	out := wp13.NewRow(width, 3, wp13.LayoutPlanar, 13)
	for x := 0; x < width; x++ {
		in.PlanarChannel(0)[x] = wp13.Unity
		in.PlanarChannel(1)[x] = 0
		in.PlanarChannel(2)[x] = 0
	}
	if err := Row(pl, in, out, width); err != nil {
		t.Fatalf("Row: %v", err)
	}
	for x := 0; x < width; x++ {
		if out.PlanarChannel(0)[x] == wp13.Unity && out.PlanarChannel(1)[x] == 0 {
			t.Fatalf("expected saturation to mix channels at pixel %d", x)
		}
	}
}

func TestApplyAlphaCompandDisabledCopies(t *testing.T) {
	pl := &plan.Plan{}
	in := []int16{100, 200, 300}
	out := make([]int16, 3)
	if applyAlphaCompand(pl, in, out, 3) {
		t.Fatal("expected companding disabled")
	}
}

func TestApplyAlphaCompandEnabled(t *testing.T) {
	pl := &plan.Plan{AlphaCompandGain: 1 << 14}
	in := []int16{16 << 1, 100 << 1}
	out := make([]int16, 2)
	if !applyAlphaCompand(pl, in, out, 2) {
		t.Fatal("expected companding enabled")
	}
	if out[0] != 0 {
		t.Fatalf("expected zero at companding origin, got %d", out[0])
	}
}
