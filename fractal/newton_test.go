package fractal

import (
	"math"
	"testing"
)

func TestNewton_ExactRootConvergesImmediately(t *testing.T) {
	n := Newton{MaxIterations: 100}

	if got := n.At(1, 0); got != 0 {
		t.Errorf("At(1, 0) = %v, want 0 (already at a root)", got)
	}
}

func TestNewton_AllRootsRecognized(t *testing.T) {
	n := Newton{MaxIterations: 100}

	roots := [][2]float64{
		{1, 0},
		{-0.5, math.Sqrt(3) / 2},
		{-0.5, -math.Sqrt(3) / 2},
	}
	for _, root := range roots {
		if got := n.At(root[0], root[1]); got != 0 {
			t.Errorf("At(%v, %v) = %v, want 0", root[0], root[1], got)
		}
	}
}

func TestNewton_NearRootConvergesQuickly(t *testing.T) {
	n := Newton{MaxIterations: 100}

	// Newton's method converges quadratically near a root; a point this
	// close needs only a handful of steps.
	got := n.At(1.1, 0.1)
	if iterations := got * float64(n.MaxIterations); iterations >= 10 {
		t.Errorf("At(1.1, 0.1) took %v iterations, want < 10", iterations)
	}
}

func TestNewton_ZeroDerivativeDoesNotConverge(t *testing.T) {
	n := Newton{MaxIterations: 100}

	// The origin is the critical point of z^3 - 1: the derivative vanishes
	// and the step is undefined, so the point gets the full budget.
	if got := n.At(0, 0); got != 1 {
		t.Errorf("At(0, 0) = %v, want 1", got)
	}
}

func TestNewton_Verify(t *testing.T) {
	tests := []struct {
		name    string
		n       Newton
		wantErr bool
	}{
		{"valid", NewNewton("Magma"), false},
		{"zero iterations", Newton{MaxIterations: 0}, true},
		{"negative iterations", Newton{MaxIterations: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.n.Verify(); (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
