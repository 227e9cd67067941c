package fractal

import "math"

// The fixed target of the Newton kernel is f(z) = z^3 - 1 with derivative
// f'(z) = 3z^2, so the roots are the three cube roots of unity.
var newtonRoots = [3]complex128{
	complex(1, 0),
	complex(-0.5, math.Sqrt(3)/2),
	complex(-0.5, -math.Sqrt(3)/2),
}

// newtonEpsilon is the componentwise convergence tolerance.
const newtonEpsilon = 1e-6

// Newton runs Newton's method on z^3 - 1 from the plane coordinate of the
// pixel and colors by how fast the iterate converges to any root.
type Newton struct {
	MaxIterations int
	Gradient      string
}

// NewNewton returns a Newton with the default parameters and the given
// gradient.
func NewNewton(gradient string) Newton {
	return Newton{
		MaxIterations: DefaultMaxIterations,
		Gradient:      gradient,
	}
}

func (n Newton) Verify() error {
	if n.MaxIterations < 1 {
		return errMaxIterations
	}
	return nil
}

func (n Newton) GradientName() string { return n.Gradient }

// At applies z <- z - f(z)/f'(z) until z is within newtonEpsilon of a root
// on both axes or MaxIterations is exhausted. A derivative of exactly zero
// (the critical point at the origin) is treated as non-convergence rather
// than dividing by zero. The fraction encodes convergence speed, not which
// basin was reached.
func (n Newton) At(re, im float64) float64 {
	z := complex(re, im)

	iteration := 0
	for ; iteration < n.MaxIterations; iteration++ {
		if nearRoot(z) {
			break
		}
		derivative := 3 * z * z
		if derivative == 0 {
			iteration = n.MaxIterations
			break
		}
		z -= (z*z*z - 1) / derivative
	}

	return float64(iteration) / float64(n.MaxIterations)
}

func nearRoot(z complex128) bool {
	for _, root := range newtonRoots {
		if math.Abs(real(z)-real(root)) < newtonEpsilon && math.Abs(imag(z)-imag(root)) < newtonEpsilon {
			return true
		}
	}
	return false
}

func (Newton) fractal() {}
