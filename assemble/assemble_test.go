package assemble

import (
	"testing"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/wp13"
)

func TestAssembleCopiesFullDepthChannels(t *testing.T) {
	fd := frame.Descriptor{Width: 4, Height: 1, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	rows := [][]int16{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	}
	row, err := Assemble(fd, rows, 16, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := row.PlanarChannel(0); got[0] != 1 || got[3] != 4 {
		t.Fatalf("channel 0 = %v", got)
	}
}

func TestAssembleUpshiftsLowBitDepth(t *testing.T) {
	fd := frame.Descriptor{Width: 2, Height: 1, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	rows := [][]int16{{1, 1}, {1, 1}, {1, 1}}
	row, err := Assemble(fd, rows, 8, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if row.PlanarChannel(0)[0] != 1<<8 {
		t.Fatalf("expected upshift by 8, got %d", row.PlanarChannel(0)[0])
	}
}

func TestAssembleRejectsShortRows(t *testing.T) {
	fd := frame.Descriptor{Width: 4, Height: 1, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	rows := [][]int16{{1, 2}, {1, 2}, {1, 2}}
	if _, err := Assemble(fd, rows, 16, nil); err == nil {
		t.Fatal("expected error for short channel row")
	}
}

func TestRGBYCbCrRoundTrip(t *testing.T) {
	width := 3
	row := wp13.NewRow(width, 3, wp13.LayoutPlanar, 16)
	r, g, b := row.PlanarChannel(0), row.PlanarChannel(1), row.PlanarChannel(2)
	r[0], g[0], b[0] = 8192, 4096, 2048
	PlanarRGB16toPlanarYUV16(row)
	PlanarYUV16toPlanarRGB16(row)
	if r[0] != 8192 || g[0] != 4096 || b[0] != 2048 {
		t.Fatalf("round trip mismatch: r=%d g=%d b=%d", r[0], g[0], b[0])
	}
}
