package rowconv

import (
	"testing"

	"github.com/ausocean/colorcore/frame"
	"github.com/ausocean/colorcore/wp13"
)

func makeTestRow(width int, vals [3]int16) wp13.Row {
	r := wp13.NewRow(width, 3, wp13.LayoutPlanar, 13)
	for x := 0; x < width; x++ {
		r.PlanarChannel(0)[x] = vals[0]
		r.PlanarChannel(1)[x] = vals[1]
		r.PlanarChannel(2)[x] = vals[2]
	}
	return r
}

func TestRGB24PackerWhite(t *testing.T) {
	p, err := NewPacker(frame.OutputRGB24, frame.Rec709|frame.RangeCG)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	width := 4
	row := makeTestRow(width, [3]int16{wp13.Unity, wp13.Unity, wp13.Unity})
	out := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row, out, width, 0); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	for i, b := range out {
		if b != 255 {
			t.Fatalf("byte %d = %d, want 255", i, b)
		}
	}
}

func TestRGB32PackerHasAlphaLane(t *testing.T) {
	p, err := NewPacker(frame.OutputRGB32, frame.Rec601)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	width := 2
	row := wp13.NewRow(width, 4, wp13.LayoutPlanar, 13)
	for x := 0; x < width; x++ {
		row.PlanarChannel(3)[x] = wp13.Unity
	}
	out := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row, out, width, 0); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if out[3] != 255 || out[7] != 255 {
		t.Fatalf("expected alpha lane = 255, got %v", out)
	}
}

func TestTenBitPackerRoundTripsBlack(t *testing.T) {
	p, err := NewPacker(frame.OutputR210, frame.Rec709)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	width := 1
	row := makeTestRow(width, [3]int16{0, 0, 0})
	out := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row, out, width, 0); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	for _, b := range out {
		if b != 0 {
			t.Fatalf("expected all-zero word for black, got %v", out)
		}
	}
}

func TestV210BytesPerRowRoundsToGroupsOfSix(t *testing.T) {
	p, err := NewPacker(frame.OutputV210, frame.Rec709)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	if got := p.BytesPerRow(7); got != 32 {
		t.Fatalf("BytesPerRow(7) = %d, want 32 (2 groups x 16 bytes)", got)
	}
}

func TestYUYVPackerProducesExpectedSize(t *testing.T) {
	p, err := NewPacker(frame.OutputYUYV, frame.Rec709)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	width := 4
	row := makeTestRow(width, [3]int16{wp13.Unity, wp13.Unity, wp13.Unity})
	out := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row, out, width, 0); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(out) != width*2 {
		t.Fatalf("len(out) = %d, want %d", len(out), width*2)
	}
}

func TestNV12PackerEmitsChromaOnOddRow(t *testing.T) {
	p, err := NewPacker(frame.OutputNV12, frame.Rec601)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	width := 4
	row0 := makeTestRow(width, [3]int16{wp13.Unity, 0, 0})
	out0 := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row0, out0, width, 0); err != nil {
		t.Fatalf("Pack row0: %v", err)
	}
	row1 := makeTestRow(width, [3]int16{wp13.Unity, 0, 0})
	out1 := make([]byte, p.BytesPerRow(width))
	if err := p.Pack(row1, out1, width, 1); err != nil {
		t.Fatalf("Pack row1: %v", err)
	}
	chromaOff := width
	if out1[chromaOff] == 0 && out1[chromaOff+1] == 0 {
		t.Fatal("expected non-zero chroma bytes after two rows")
	}
}

// TestAR10PackerLittleEndianWord exercises spec §8 scenario 3: packing
// (r,g,b) = (1023, 512, 0) must yield little-endian word 0x3FF80000, not
// the byte-reversed big-endian encoding R210/DPX0 use.
func TestAR10PackerLittleEndianWord(t *testing.T) {
	p, err := NewPacker(frame.OutputAR10, frame.Rec709)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	// x=0, y=0 selects a zero dither bias, so wp13.Unity round-trips to
	// the full 1023 and 0 round-trips to 0 exactly; 4104 is chosen so
	// (4104*1023)/8192 floors to exactly 512.
	row := makeTestRow(1, [3]int16{wp13.Unity, 4104, 0})
	out := make([]byte, p.BytesPerRow(1))
	if err := p.Pack(row, out, 1, 0); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{0x00, 0x00, 0xf8, 0x3f}
	for i, b := range want {
		if out[i] != b {
			t.Fatalf("byte %d = 0x%02x, want 0x%02x (full word %v, want %v)", i, out[i], b, out, want)
		}
	}
}

// TestPackV210GroupMatchesSpecScenario exercises spec §8 scenario 4
// directly against the word-assembly logic, independent of the RGB->YUV
// matrix: six luma samples of 64 and 4:2:2 chroma pairs of 512 must
// produce the four literal 32-bit words the spec names.
func TestPackV210GroupMatchesSpecScenario(t *testing.T) {
	out := make([]byte, 16)
	packV210Group(out, 64, 64, 64, 64, 64, 64, 512, 512, 512, 512, 512, 512)

	readLE := func(off int) uint32 {
		return uint32(out[off]) | uint32(out[off+1])<<8 | uint32(out[off+2])<<16 | uint32(out[off+3])<<24
	}
	want := []uint32{
		(512 << 20) | (64 << 10) | 512,
		(64 << 20) | (512 << 10) | 64,
		(512 << 20) | (64 << 10) | 512,
		(64 << 20) | (512 << 10) | 64,
	}
	for i, w := range want {
		if got := readLE(i * 4); got != w {
			t.Fatalf("word %d = 0x%08x, want 0x%08x", i, got, w)
		}
	}
}

func TestUnsupportedFormatErrors(t *testing.T) {
	if _, err := NewPacker(frame.OutputNothingDefined, frame.Rec709); err == nil {
		t.Fatal("expected error for undefined output format")
	}
}
