package fractal

import "math"

var log2 = math.Log(2)

// Mandelbrot iterates z <- z^2 + c from z = 0 where c is the plane
// coordinate of the pixel.
type Mandelbrot struct {
	MaxIterations int
	EscapeRadius  float64
	Gradient      string
}

// NewMandelbrot returns a Mandelbrot with the default parameters and the
// given gradient.
func NewMandelbrot(gradient string) Mandelbrot {
	return Mandelbrot{
		MaxIterations: DefaultMaxIterations,
		EscapeRadius:  DefaultEscapeRadius,
		Gradient:      gradient,
	}
}

func (m Mandelbrot) Verify() error {
	if m.MaxIterations < 1 {
		return errMaxIterations
	}
	if m.EscapeRadius <= 0 {
		return errEscapeRadius
	}
	return nil
}

func (m Mandelbrot) GradientName() string { return m.Gradient }

// At runs the optimized escape-time loop, tracking the squared terms so no
// square root is needed per iteration. Escaping points get the renormalized
// continuous iteration count to remove banding; points that never escape
// keep the raw count of MaxIterations.
func (m Mandelbrot) At(re, im float64) float64 {
	var x, y, x2, y2 float64
	bailout := m.EscapeRadius * m.EscapeRadius
	maxIterations := float64(m.MaxIterations)

	iteration := 0.0
	for x2+y2 <= bailout && iteration < maxIterations {
		y = 2*x*y + im
		x = x2 - y2 + re
		x2 = x * x
		y2 = y * y
		iteration++
	}

	// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
	// Skipped when |z|^2 <= 1 (possible with escape radii below 1), where
	// the nested logarithm is undefined.
	if iteration < maxIterations {
		zn := math.Log(x2+y2) / 2
		if zn > 0 {
			nu := math.Log(zn/log2) / log2
			iteration = iteration + 1 - nu
		}
	}

	return iteration / maxIterations
}

func (Mandelbrot) fractal() {}
