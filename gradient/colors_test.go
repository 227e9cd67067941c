package gradient

import (
	"image/color"
	"testing"
)

func TestLerp_Endpoints(t *testing.T) {
	start := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	end := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if got := Lerp(start, end, 0); got != start {
		t.Errorf("Lerp(..., 0) = %v, want %v", got, start)
	}
	if got := Lerp(start, end, 1); got != end {
		t.Errorf("Lerp(..., 1) = %v, want %v", got, end)
	}
}

func TestLerp_Midpoint(t *testing.T) {
	start := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	end := color.RGBA{R: 100, G: 200, B: 50, A: 255}

	got := Lerp(start, end, 0.5)
	want := color.RGBA{R: 50, G: 100, B: 25, A: 255}
	if got != want {
		t.Errorf("Lerp(..., 0.5) = %v, want %v", got, want)
	}
}

func TestLerp_AlwaysOpaque(t *testing.T) {
	start := color.RGBA{R: 1, G: 2, B: 3, A: 0}
	end := color.RGBA{R: 4, G: 5, B: 6, A: 128}

	if got := Lerp(start, end, 0.5); got.A != 255 {
		t.Errorf("Lerp alpha = %d, want 255", got.A)
	}
}

func TestSineSmooth_Deterministic(t *testing.T) {
	for _, iteration := range []float64{0, 1.5, 33.7, 99.99} {
		first := SineSmooth(iteration)
		second := SineSmooth(iteration)
		if first != second {
			t.Errorf("SineSmooth(%v) not deterministic: %v != %v", iteration, first, second)
		}
	}
}

func TestSineSmooth_ZeroIsBlack(t *testing.T) {
	// sin(0) is zero on all channels and the fractional part is zero, so
	// no blending with the next count happens.
	got := SineSmooth(0)
	want := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	if got != want {
		t.Errorf("SineSmooth(0) = %v, want %v", got, want)
	}
}

func TestSineSmooth_NegativeHalfWaveClamps(t *testing.T) {
	// Around iteration 60 the red oscillator (freq 0.0730) is deep in its
	// negative half wave; the channel must clamp to zero, not wrap.
	got := SineSmooth(60)
	if got.R != 0 {
		t.Errorf("SineSmooth(60).R = %d, want 0", got.R)
	}
}
