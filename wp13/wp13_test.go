package wp13

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		in   int32
		want int16
	}{
		{0, 0},
		{Unity, Unity},
		{Max, Max},
		{Max + 1, Max},
		{Min, Min},
		{Min - 1, Min},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPlanarChannel(t *testing.T) {
	r := NewRow(4, 3, LayoutPlanar, 13)
	for i := range r.Data {
		r.Data[i] = int16(i)
	}
	g := r.PlanarChannel(1)
	want := []int16{4, 5, 6, 7}
	for i, v := range want {
		if g[i] != v {
			t.Errorf("PlanarChannel(1)[%d] = %d, want %d", i, g[i], v)
		}
	}
}

func TestPackedPixel(t *testing.T) {
	r := NewRow(4, 3, LayoutPacked, 13)
	for i := range r.Data {
		r.Data[i] = int16(i)
	}
	p := r.PackedPixel(1)
	want := []int16{3, 4, 5}
	for i, v := range want {
		if p[i] != v {
			t.Errorf("PackedPixel(1)[%d] = %d, want %d", i, p[i], v)
		}
	}
}

func TestColorFormatDoneFlag(t *testing.T) {
	r := Row{Flags: LayoutPacked | FlagColorFormatDone}
	if !r.ColorFormatDone() {
		t.Error("expected ColorFormatDone to be true")
	}
	if LayoutOf(r.Flags) != LayoutPacked {
		t.Errorf("LayoutOf = %v, want LayoutPacked", LayoutOf(r.Flags))
	}
}
