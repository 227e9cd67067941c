package fractal

import (
	"errors"
	"fmt"
)

// Fractal is the closed set of renderable fractal configurations. Exactly
// three implementations exist: Mandelbrot, Julia and Newton. Each value
// carries its own tunable parameters and is cheap to copy, so callers can
// snapshot one per frame.
//
// At maps a complex-plane coordinate to a normalized iteration fraction in
// [0, 1]. It is a pure function; two calls with the same inputs return the
// same value.
type Fractal interface {
	// Verify reports whether the parameter payload is well formed. A
	// violation is a programmer error at the construction boundary, not a
	// recoverable runtime condition.
	Verify() error

	// GradientName returns the name of the color ramp this fractal is
	// rendered with. Unknown names resolve to a default ramp downstream,
	// never to an error.
	GradientName() string

	// At runs the iteration kernel for the plane coordinate (re, im) and
	// returns iterationCount / maxIterations.
	At(re, im float64) (fraction float64)

	fractal()
}

// Default parameter values shared by the UI reset path and the variant
// constructors.
const (
	DefaultMaxIterations = 100
	DefaultEscapeRadius  = 2.0

	DefaultJuliaCReal = -0.7
	DefaultJuliaCImag = 0.27015
)

var (
	errMaxIterations = errors.New("fractal: max iterations must be at least 1")
	errEscapeRadius  = errors.New("fractal: escape radius must be positive")
)

// Spec is a flat, serializable description of any Fractal. It is the wire
// and settings-file form: JSON settings files unmarshal into it and the
// coordinator hands it to workers over RPC.
type Spec struct {
	Kind          string
	MaxIterations int
	EscapeRadius  float64
	CReal         float64
	CImag         float64
	Gradient      string
}

// Build constructs the concrete variant a Spec describes. The variant is
// verified before it is returned.
func (s Spec) Build() (Fractal, error) {
	var f Fractal
	switch s.Kind {
	case "mandelbrot":
		f = Mandelbrot{
			MaxIterations: s.MaxIterations,
			EscapeRadius:  s.EscapeRadius,
			Gradient:      s.Gradient,
		}
	case "julia":
		f = Julia{
			MaxIterations: s.MaxIterations,
			EscapeRadius:  s.EscapeRadius,
			CReal:         s.CReal,
			CImag:         s.CImag,
			Gradient:      s.Gradient,
		}
	case "newton":
		f = Newton{
			MaxIterations: s.MaxIterations,
			Gradient:      s.Gradient,
		}
	default:
		return nil, fmt.Errorf("fractal: unknown kind %q", s.Kind)
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return f, nil
}
