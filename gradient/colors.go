package gradient

import (
	"image/color"
	"math"
)

// Lerp interpolates each channel between start and end, truncating to
// 8 bits. The result is always fully opaque.
func Lerp(start, end color.RGBA, fraction float64) color.RGBA {
	return color.RGBA{
		R: lerpUint8(start.R, end.R, fraction),
		G: lerpUint8(start.G, end.G, fraction),
		B: lerpUint8(start.B, end.B, fraction),
		A: 255,
	}
}

func lerpUint8(v1, v2 uint8, fraction float64) uint8 {
	return uint8(float64(v1) + (float64(v2)-float64(v1))*fraction)
}

// Channel frequencies of the sinusoidal palette. Chosen so the three
// channels drift out of phase and cycle through the whole color wheel.
const (
	sineFreqR = 0.0730
	sineFreqG = 0.0460
	sineFreqB = 0.0900
)

// SineSmooth is the dependency-free alternate palette: three sine
// oscillators over the continuous iteration count, blended between the
// neighboring integer counts by the count's fractional part. It predates
// the named ramps and is kept as a fallback and for parity testing.
func SineSmooth(iteration float64) color.RGBA {
	c1 := sineColor(iteration)
	c2 := sineColor(iteration + 1)
	_, fraction := math.Modf(iteration)
	return Lerp(c1, c2, fraction)
}

func sineColor(iteration float64) color.RGBA {
	return color.RGBA{
		R: sineChannel(sineFreqR * iteration),
		G: sineChannel(sineFreqG * iteration),
		B: sineChannel(sineFreqB * iteration),
		A: 255,
	}
}

// sineChannel clamps the oscillator to [0, 255]; the negative half of the
// wave renders as black instead of wrapping.
func sineChannel(angle float64) uint8 {
	v := math.Sin(angle) * 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
