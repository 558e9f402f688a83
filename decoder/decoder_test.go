package decoder

import (
	"bytes"
	"testing"

	"github.com/ausocean/colorcore/dispatch"
	"github.com/ausocean/colorcore/frame"
)

type constSource struct {
	width, height int
	r, g, b       int16
}

func (s constSource) Row(y int) ([][]int16, error) {
	row := func(v int16) []int16 {
		out := make([]int16, s.width)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return [][]int16{row(s.r), row(s.g), row(s.b)}, nil
}

func TestDecodeUnityWhitePacksTo255(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	fd := frame.Descriptor{
		Width: 8, Height: 4,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: frame.OutputRGB24,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}
	src := constSource{width: 8, height: 4, r: 8192, g: 8192, b: 8192}

	out := make([][]byte, fd.Height)
	for i := range out {
		out[i] = make([]byte, fd.Width*3)
	}

	status, err := d.Decode(fd, src, out, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	for y, row := range out {
		for i, b := range row {
			if b != 255 {
				t.Fatalf("row %d byte %d = %d, want 255", y, i, b)
			}
		}
	}
}

func TestDecodeRejectsInvalidDescriptor(t *testing.T) {
	d := New(1, nil)
	defer d.Close()
	_, err := d.Decode(frame.Descriptor{}, constSource{}, nil, Options{})
	if err == nil {
		t.Fatal("expected error for invalid descriptor")
	}
}

func TestDecodeRejectsShortOutput(t *testing.T) {
	d := New(1, nil)
	defer d.Close()
	fd := frame.Descriptor{Width: 4, Height: 4, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	_, err := d.Decode(fd, constSource{width: 4, height: 4}, make([][]byte, 1), Options{})
	if err == nil {
		t.Fatal("expected error for short output slice")
	}
}

// identityGeomesh implements dispatch.GeomeshEngine as a pass-through copy,
// used to exercise the HORIZONTAL_3D/VERTICAL_3D levels without gocv.
type identityGeomesh struct{}

func (identityGeomesh) WarpRow(eye, y int, src, dst []int16) error {
	copy(dst, src)
	return nil
}

func TestDecodeSharpenOnFlatRowIsUnchanged(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	fd := frame.Descriptor{
		Width: 8, Height: 4,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: frame.OutputRGB24,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}
	src := constSource{width: 8, height: 4, r: 8192, g: 8192, b: 8192}
	out := make([][]byte, fd.Height)
	for i := range out {
		out[i] = make([]byte, fd.Width*3)
	}

	status, err := d.Decode(fd, src, out, Options{Sharpen: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	for y, row := range out {
		for i, b := range row {
			if b != 255 {
				t.Fatalf("row %d byte %d = %d, want 255 (flat field unsharpened)", y, i, b)
			}
		}
	}
}

func TestDecodeStereoWarpIdentity(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	fd := frame.Descriptor{
		Width: 8, Height: 4,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: frame.OutputRGB24,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}
	src := constSource{width: 8, height: 4, r: 8192, g: 8192, b: 8192}
	out := make([][]byte, fd.Height)
	for i := range out {
		out[i] = make([]byte, fd.Width*3)
	}

	opts := Options{Stereo: StereoHorizontal, Geomesh: identityGeomesh{}, StereoEye: 0}
	status, err := d.Decode(fd, src, out, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	for y, row := range out {
		for i, b := range row {
			if b != 255 {
				t.Fatalf("row %d byte %d = %d, want 255 through identity warp", y, i, b)
			}
		}
	}
}

func TestDecodeRejectsStereoWithoutGeomesh(t *testing.T) {
	d := New(1, nil)
	defer d.Close()
	fd := frame.Descriptor{Width: 4, Height: 4, SourceFormat: frame.SourceRGB444, OutputFormat: frame.OutputRGB24}
	_, err := d.Decode(fd, constSource{width: 4, height: 4}, make([][]byte, 4), Options{Stereo: StereoVertical})
	if err == nil {
		t.Fatal("expected error when Stereo is set but Geomesh is nil")
	}
}

func TestDecodeUncompressedOutput(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	fd := frame.Descriptor{
		Width: 4, Height: 2,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: frame.OutputWP13,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}
	src := constSource{width: 4, height: 2, r: 8192, g: 8192, b: 8192}
	out := make([][]byte, fd.Height)
	for i := range out {
		out[i] = make([]byte, fd.Width*3*2)
	}

	status, err := d.Decode(fd, src, out, Options{Uncompressed: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	for y, row := range out {
		for x := 0; x < fd.Width; x++ {
			for c := 0; c < 3; c++ {
				off := (x*3 + c) * 2
				got := int16(row[off]) | int16(row[off+1])<<8
				if got != 8192 {
					t.Fatalf("row %d pixel %d channel %d = %d, want 8192", y, x, c, got)
				}
			}
		}
	}
}

func TestDecodeHistogramRendersToWriter(t *testing.T) {
	d := New(2, nil)
	defer d.Close()

	fd := frame.Descriptor{
		Width: 8, Height: 4,
		SourceFormat: frame.SourceRGB444,
		OutputFormat: frame.OutputRGB24,
		Colorspace:   frame.Rec709 | frame.RangeCG,
	}
	src := constSource{width: 8, height: 4, r: 8192, g: 8192, b: 8192}
	out := make([][]byte, fd.Height)
	for i := range out {
		out[i] = make([]byte, fd.Width*3)
	}

	var buf bytes.Buffer
	opts := Options{
		Histogram:       true,
		HistogramMode:   dispatch.HistogramAmplitude,
		HistogramRow:    1,
		HistogramWriter: &buf,
	}
	status, err := d.Decode(fd, src, out, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	if buf.Len() == 0 {
		t.Fatal("expected histogram PNG bytes to be written")
	}
}
