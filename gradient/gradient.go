// Package gradient maps normalized iteration fractions to RGBA colors.
//
// Eight fixed, perceptually ordered ramps are exposed by name. An unknown
// name silently resolves to the default ramp; a bad gradient setting is a
// cosmetic problem, never an error.
package gradient

import (
	"image/color"

	"github.com/mazznoer/colorgrad"
)

// Default is the ramp substituted for unrecognized names.
const Default = "Magma"

var ramps = map[string]colorgrad.Gradient{
	"Magma":   colorgrad.Magma(),
	"Viridis": colorgrad.Viridis(),
	"Turbo":   colorgrad.Turbo(),
	"Sinebow": colorgrad.Sinebow(),
	"Inferno": colorgrad.Inferno(),
	"Plasma":  colorgrad.Plasma(),
	"Cividis": colorgrad.Cividis(),
	"Rainbow": colorgrad.Rainbow(),
}

// names is the fixed presentation order used by settings UIs.
var names = []string{
	"Magma", "Viridis", "Turbo", "Sinebow", "Inferno", "Plasma", "Cividis", "Rainbow",
}

// Ramp is a continuous color scale indexed by a fraction in [0, 1].
type Ramp struct {
	grad colorgrad.Gradient
}

// ByName resolves a ramp by its name, falling back to the default ramp for
// any name not in the catalog.
func ByName(name string) Ramp {
	grad, ok := ramps[name]
	if !ok {
		grad = ramps[Default]
	}
	return Ramp{grad: grad}
}

// At samples the ramp. The fraction is clamped to [0, 1] so smooth-count
// overshoot at the frame edges cannot index outside the ramp.
func (r Ramp) At(fraction float64) color.RGBA {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	cr, cg, cb := r.grad.At(fraction).RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}

// Lookup is a one-shot ByName(name).At(fraction).
func Lookup(name string, fraction float64) color.RGBA {
	return ByName(name).At(fraction)
}

// Names returns the catalog in presentation order. The returned slice is a
// copy.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
