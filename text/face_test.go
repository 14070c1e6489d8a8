package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func TestFaceCached(t *testing.T) {
	a := Face(12)
	if a == nil {
		t.Fatal("Face(12) = nil")
	}
	if b := Face(12); b != a {
		t.Error("Face(12) not cached")
	}
	if c := Face(24); c == a {
		t.Error("Face(24) returned the 12pt face")
	}
}

func TestFaceScales(t *testing.T) {
	small := Face(10).Metrics().Height
	large := Face(20).Metrics().Height
	if large <= small {
		t.Errorf("20pt height %v not larger than 10pt height %v", large, small)
	}
}

func TestNewFace(t *testing.T) {
	if _, err := NewFace(goregular.TTF, 14); err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	if _, err := NewFace([]byte("not a font"), 14); err == nil {
		t.Error("NewFace accepted garbage")
	}
}

func TestFloatToFixed(t *testing.T) {
	tests := []struct {
		in   float32
		want fixed.Int26_6
	}{
		{0, 0},
		{1, 64},
		{-1, -64},
		{0.5, 32},
		{1.01, 65},
		{-1.01, -65},
	}
	for _, tt := range tests {
		if got := FloatToFixed(tt.in); got != tt.want {
			t.Errorf("FloatToFixed(%g) = %d, want %d", tt.in, got, tt.want)
		}
		if got := fixedToFloat(FloatToFixed(tt.in)); got-tt.in > 1.0/64 || tt.in-got > 1.0/64 {
			t.Errorf("round trip of %g = %g", tt.in, got)
		}
	}
}
