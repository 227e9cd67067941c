// Package render drives a fractal kernel over every pixel of a
// caller-owned RGBA buffer.
//
// Each pixel's color is a pure function of its own coordinates and the
// read-only frame parameters, so the frame is fanned out across a worker
// pool with no synchronization between pixels. Rendering the same
// parameters twice produces byte-identical buffers.
package render

import (
	"fmt"

	"fractals/fractal"
	"fractals/gradient"
)

// Renderer renders whole frames on a reusable worker pool.
type Renderer struct {
	pool *Pool
}

// New creates a Renderer with the given worker count; zero or negative
// means GOMAXPROCS.
func New(workers int) *Renderer {
	return &Renderer{pool: NewPool(workers)}
}

// Close releases the worker pool.
func (r *Renderer) Close() { r.pool.Close() }

// Render populates pix with one frame of f under the given viewport. pix
// is borrowed for the duration of the call and must be exactly
// width*height*4 bytes of row-major RGBA; the call fails before writing
// anything if the buffer or the fractal parameters are malformed. The call
// blocks until every pixel is written.
func (r *Renderer) Render(f fractal.Fractal, pix []byte, width, height int, zoom, offsetX, offsetY float64) error {
	if err := f.Verify(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid frame dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("render: pixel buffer is %d bytes, want %d for %dx%d", len(pix), width*height*4, width, height)
	}

	// Resolve the ramp once; every row task reads it immutably.
	ramp := gradient.ByName(f.GradientName())

	work := make([]func(), height)
	for row := 0; row < height; row++ {
		row := row
		rowPix := pix[row*width*4 : (row+1)*width*4]
		work[row] = func() {
			RenderRow(f, ramp, rowPix, row, width, height, zoom, offsetX, offsetY)
		}
	}
	r.pool.ExecuteAll(work)

	return nil
}

// RenderRow renders one row of a frame into rowPix, which must be
// width*4 bytes. It is the unit of work shared by the full-frame renderer
// and the distributed render workers.
func RenderRow(f fractal.Fractal, ramp gradient.Ramp, rowPix []byte, row, width, height int, zoom, offsetX, offsetY float64) {
	for column := 0; column < width; column++ {
		re, im := fractal.PlaneCoordinate(column, row, width, height, zoom, offsetX, offsetY)
		c := ramp.At(f.At(re, im))

		i := column * 4
		rowPix[i] = c.R
		rowPix[i+1] = c.G
		rowPix[i+2] = c.B
		rowPix[i+3] = c.A
	}
}
