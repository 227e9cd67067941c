package fractal

// Julia iterates z <- z^2 + c where z starts at the plane coordinate of the
// pixel and c is a fixed constant chosen by the user.
type Julia struct {
	MaxIterations int
	EscapeRadius  float64
	CReal         float64
	CImag         float64
	Gradient      string
}

// NewJulia returns a Julia with the default parameters and the given
// gradient.
func NewJulia(gradient string) Julia {
	return Julia{
		MaxIterations: DefaultMaxIterations,
		EscapeRadius:  DefaultEscapeRadius,
		CReal:         DefaultJuliaCReal,
		CImag:         DefaultJuliaCImag,
		Gradient:      gradient,
	}
}

func (j Julia) Verify() error {
	if j.MaxIterations < 1 {
		return errMaxIterations
	}
	if j.EscapeRadius <= 0 {
		return errEscapeRadius
	}
	return nil
}

func (j Julia) GradientName() string { return j.Gradient }

// At uses the same escape test as the Mandelbrot kernel. The raw integer
// iteration count is kept; Julia sets do not band badly enough to need the
// continuous correction, and using one rule for the whole frame keeps
// colors consistent.
func (j Julia) At(re, im float64) float64 {
	x, y := re, im
	x2, y2 := x*x, y*y
	bailout := j.EscapeRadius * j.EscapeRadius
	maxIterations := float64(j.MaxIterations)

	iteration := 0.0
	for x2+y2 <= bailout && iteration < maxIterations {
		y = 2*x*y + j.CImag
		x = x2 - y2 + j.CReal
		x2 = x * x
		y2 = y * y
		iteration++
	}

	return iteration / maxIterations
}

func (Julia) fractal() {}
