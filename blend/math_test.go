package blend

import "testing"

func TestMulShift15ExactAtUnity(t *testing.T) {
	if got := mulShift15U16(maxChannel, maxChannel); got != maxChannel {
		t.Errorf("mulShift15U16(max, max) = %d, want %d", got, maxChannel)
	}
	if got := mulShift15U16(0, maxChannel); got != 0 {
		t.Errorf("mulShift15U16(0, max) = %d, want 0", got)
	}
}

func TestMulShift15Half(t *testing.T) {
	half := uint16(maxChannel / 2)
	got := mulShift15U16(half, maxChannel)
	if got != half {
		t.Errorf("mulShift15U16(half, max) = %d, want %d", got, half)
	}
}

func TestMulShift15NoOverflow(t *testing.T) {
	got := mulShift15(uint32(maxChannel), uint32(maxChannel))
	if got != maxChannel {
		t.Errorf("mulShift15(max, max) = %d, want %d", got, maxChannel)
	}
}

func TestAddClampChannel(t *testing.T) {
	tests := []struct {
		a, b uint32
		want uint16
	}{
		{0, 0, 0},
		{maxChannel, maxChannel, maxChannel},
		{maxChannel / 2, maxChannel / 2, maxChannel},
		{100, 200, 300},
	}
	for _, tt := range tests {
		if got := addClampChannel(tt.a, tt.b); got != tt.want {
			t.Errorf("addClampChannel(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func BenchmarkMulShift15(b *testing.B) {
	var result uint16
	for i := 0; i < b.N; i++ {
		result = mulShift15U16(20000, 15000)
	}
	_ = result
}
