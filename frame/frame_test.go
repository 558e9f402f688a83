package frame

import "testing"

func TestSourceFormatNumChannels(t *testing.T) {
	tests := []struct {
		f    SourceFormat
		want int
	}{
		{SourceYUV422, 3},
		{SourceRGB444, 3},
		{SourceRGBA4444, 4},
		{SourceBayer, 4},
		{NothingDefined, 0},
	}
	for _, tt := range tests {
		if got := tt.f.NumChannels(); got != tt.want {
			t.Errorf("%v.NumChannels() = %d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestOutputFormatBitsPerChannel(t *testing.T) {
	tests := []struct {
		f    OutputFormat
		want int
	}{
		{OutputRGB24, 8},
		{OutputRG48, 16},
		{OutputWP13, 13},
		{OutputRG30, 10},
		{OutputV210, 10},
		{OutputNothingDefined, 0},
	}
	for _, tt := range tests {
		if got := tt.f.BitsPerChannel(); got != tt.want {
			t.Errorf("%v.BitsPerChannel() = %d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestOutputFormatIsYUV(t *testing.T) {
	if !OutputNV12.IsYUV() {
		t.Error("NV12 should be YUV")
	}
	if OutputRGB24.IsYUV() {
		t.Error("RGB24 should not be YUV")
	}
}

func TestOutputFormatHasAlpha(t *testing.T) {
	if !OutputRGB32.HasAlpha() {
		t.Error("RGB32 should have alpha")
	}
	if OutputRGB24.HasAlpha() {
		t.Error("RGB24 should not have alpha")
	}
}

func TestColorspaceString(t *testing.T) {
	tests := []struct {
		c    Colorspace
		want string
	}{
		{Rec601 | RangeVideoSafe, "601-VS"},
		{Rec709 | RangeCG, "709-CG"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDescriptorValidate(t *testing.T) {
	base := Descriptor{
		Width: 1920, Height: 1080,
		SourceFormat: SourceRGB444,
		OutputFormat: OutputRGB24,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	bad := base
	bad.Width = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero width")
	}

	bad = base
	bad.WhitePointDepth = 12
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid white-point depth")
	}

	bad = base
	bad.SourceFormat = NothingDefined
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unset source format")
	}

	bad = base
	bad.OutputFormat = OutputNothingDefined
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unset output format")
	}
}

func TestDescriptorNumChannels(t *testing.T) {
	d := Descriptor{SourceFormat: SourceRGBA4444}
	if got := d.NumChannels(); got != 4 {
		t.Errorf("NumChannels() = %d, want 4", got)
	}
}
