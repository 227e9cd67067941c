// Package task defines the units of work exchanged between the render
// coordinator and its workers. A job is one row of one frame; rows are
// independent, so any worker can take any job in any order.
package task

import (
	"fmt"

	"fractals/fractal"
)

// Job identifies a single frame row and the viewport it is rendered under.
// The fractal parameters are not part of the job; workers fetch them once
// at registration since they are fixed for a whole run.
type Job struct {
	ID    uint
	Frame int
	Row   int

	Zoom    float64
	OffsetX float64
	OffsetY float64

	// WorkerAddress is set by the coordinator when the job is handed out,
	// so jobs of a departed worker can be re-queued.
	WorkerAddress string
}

func (j *Job) String() string {
	return fmt.Sprintf("{Job ID: %d Frame: %d Row: %d Zoom: %g}", j.ID, j.Frame, j.Row, j.Zoom)
}

// Result carries one rendered row back to the coordinator. Pix holds
// width*4 row-major RGBA bytes.
type Result struct {
	ID            uint
	Frame         int
	Row           int
	Pix           []byte
	WorkerAddress string
}

// FrameSetup is the run-wide state a worker fetches once when it joins:
// the fractal parameters and the frame dimensions. Per-row viewport values
// travel with each Job instead.
type FrameSetup struct {
	Fractal fractal.Spec
	Width   int
	Height  int
}

func (r *Result) String() string {
	return fmt.Sprintf("{Result ID: %d Frame: %d Row: %d Bytes: %d}", r.ID, r.Frame, r.Row, len(r.Pix))
}
