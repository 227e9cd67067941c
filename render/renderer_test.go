package render

import (
	"bytes"
	"testing"

	"fractals/fractal"
	"fractals/gradient"
)

func renderFrame(t *testing.T, f fractal.Fractal, width, height int, zoom, offsetX, offsetY float64) []byte {
	t.Helper()

	r := New(0)
	defer r.Close()

	pix := make([]byte, width*height*4)
	if err := r.Render(f, pix, width, height, zoom, offsetX, offsetY); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return pix
}

func TestRenderer_Deterministic(t *testing.T) {
	f := fractal.NewMandelbrot("Magma")

	first := renderFrame(t, f, 32, 24, 0.1, -0.5, 0)
	second := renderFrame(t, f, 32, 24, 0.1, -0.5, 0)

	if !bytes.Equal(first, second) {
		t.Error("two renders of the same parameters differ")
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	f := fractal.NewJulia("Viridis")
	r := New(2)
	defer r.Close()

	pix := make([]byte, 16*16*4)
	if err := r.Render(f, pix, 16, 16, 0.05, 0, 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	once := make([]byte, len(pix))
	copy(once, pix)

	if err := r.Render(f, pix, 16, 16, 0.05, 0, 0); err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if !bytes.Equal(pix, once) {
		t.Error("re-rendering into the same buffer changed its contents")
	}
}

func TestRenderer_BufferMismatchFailsBeforeWriting(t *testing.T) {
	f := fractal.NewMandelbrot("Magma")
	r := New(1)
	defer r.Close()

	pix := make([]byte, 10*10*4-4)
	for i := range pix {
		pix[i] = 0xAB
	}

	if err := r.Render(f, pix, 10, 10, 0.01, 0, 0); err == nil {
		t.Fatal("Render() with short buffer should fail")
	}
	for i, b := range pix {
		if b != 0xAB {
			t.Fatalf("byte %d was written despite the error", i)
		}
	}
}

func TestRenderer_InvalidParameters(t *testing.T) {
	r := New(1)
	defer r.Close()
	pix := make([]byte, 4*4*4)

	tests := []struct {
		name          string
		f             fractal.Fractal
		width, height int
	}{
		{"bad fractal", fractal.Mandelbrot{MaxIterations: 0, EscapeRadius: 2}, 4, 4},
		{"zero width", fractal.NewMandelbrot("Magma"), 0, 4},
		{"negative height", fractal.NewMandelbrot("Magma"), 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Render(tt.f, pix, tt.width, tt.height, 0.01, 0, 0); err == nil {
				t.Error("Render() should fail")
			}
		})
	}
}

// A 4x4 frame at zoom 1 centered on the origin samples the integer lattice
// {-2..1}^2: the pixels at and left of center land inside the set and get
// the end-of-ramp color, while the corners blow past the escape radius
// within an iteration or two.
func TestRenderer_SmallFrameScenario(t *testing.T) {
	f := fractal.Mandelbrot{MaxIterations: 50, EscapeRadius: 2, Gradient: "Magma"}
	pix := renderFrame(t, f, 4, 4, 1, 0, 0)

	ramp := gradient.ByName("Magma")
	inSet := ramp.At(1)

	pixel := func(column, row int) [4]byte {
		i := (row*4 + column) * 4
		return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
	}
	want := [4]byte{inSet.R, inSet.G, inSet.B, inSet.A}

	// (0, 0) and (-1, 0) are both in the set.
	if got := pixel(2, 2); got != want {
		t.Errorf("center pixel = %v, want in-set color %v", got, want)
	}
	if got := pixel(1, 2); got != want {
		t.Errorf("pixel at (-1, 0) = %v, want in-set color %v", got, want)
	}

	for _, corner := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		if got := pixel(corner[0], corner[1]); got == want {
			t.Errorf("corner pixel %v got the in-set color; it should escape", corner)
		}
	}
}

func TestRenderRow_MatchesFullFrame(t *testing.T) {
	f := fractal.NewNewton("Turbo")
	ramp := gradient.ByName(f.GradientName())

	frame := renderFrame(t, f, 8, 8, 0.5, 0, 0)

	row := 3
	rowPix := make([]byte, 8*4)
	RenderRow(f, ramp, rowPix, row, 8, 8, 0.5, 0, 0)

	if !bytes.Equal(rowPix, frame[row*8*4:(row+1)*8*4]) {
		t.Error("RenderRow output differs from the same row of a full render")
	}
}

func TestRenderer_AlphaOpaque(t *testing.T) {
	f := fractal.NewMandelbrot("Sinebow")
	pix := renderFrame(t, f, 8, 8, 0.5, 0, 0)

	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, pix[i])
		}
	}
}
