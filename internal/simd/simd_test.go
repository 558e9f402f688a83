package simd

import "testing"

func TestAddSat16Saturates(t *testing.T) {
	a := []int16{32000, -32000, 100}
	b := []int16{1000, -1000, 50}
	dst := make([]int16, 3)
	AddSat16(a, b, dst)

	want := []int16{32767, -32768, 150}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestSubSat16Saturates(t *testing.T) {
	a := []int16{-32000, 32000}
	b := []int16{1000, -1000}
	dst := make([]int16, 2)
	SubSat16(a, b, dst)

	want := []int16{-32768, 32767}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestClampRow(t *testing.T) {
	row := []int16{-20000, -8192, 0, 8192, 20000}
	ClampRow(row, -16384, 16383)

	want := []int16{-16384, -8192, 0, 8192, 16383}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %d, want %d", i, row[i], want[i])
		}
	}
}

func TestMulAddShift(t *testing.T) {
	a := []int32{8192, 4096, 16384}
	add := []int32{0, 0, 0}
	dst := make([]int32, 3)
	MulAddShift(a, 8192, add, 13, dst)

	want := []int32{8192, 4096, 16384}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestLanes16Positive(t *testing.T) {
	if Lanes16() <= 0 {
		t.Fatalf("Lanes16() = %d, want > 0", Lanes16())
	}
}
