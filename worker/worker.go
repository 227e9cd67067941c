// Package worker runs one render-farm worker: it registers with the
// coordinator, fetches the run's fractal parameters once, then renders row
// jobs with the engine until the coordinator runs out of work.
package worker

import (
	"fmt"
	"time"

	"fractals/fractal"
	"fractals/gradient"
	"fractals/misc"
	"fractals/render"
	"fractals/rpc"
	"fractals/task"

	"github.com/BrugadaSyndrome/bslogger"
)

type Worker struct {
	coordinatorAddress string
	fractal            fractal.Fractal
	jobsCompleted      int
	logger             bslogger.Logger
	myAddress          string
	ramp               gradient.Ramp
	setup              task.FrameSetup

	Client rpc.TcpClient
	Server rpc.TcpServer
}

func NewWorker(settingsFile string) *Worker {
	settings := newSettings(settingsFile)
	w := &Worker{
		coordinatorAddress: settings.CoordinatorAddress,
		logger:             bslogger.NewLogger("Worker", bslogger.Normal, nil),
	}

	// A reply server on a free port lets the coordinator roll-call us.
	port, err := misc.GetFreePort()
	misc.CheckError(err, w.logger, misc.Fatal)
	address, err := misc.GetLocalAddress()
	misc.CheckError(err, w.logger, misc.Fatal)
	w.myAddress = fmt.Sprintf("%s:%d", address, port)
	w.logger = bslogger.NewLogger(fmt.Sprintf("Worker %s", w.myAddress), bslogger.Normal, nil)

	w.Server = rpc.NewTcpServer(w, w.myAddress, w.myAddress)
	misc.CheckError(w.Server.Run(), w.logger, misc.Fatal)

	w.Client = rpc.NewTcpClient(settings.CoordinatorAddress, "WorkerClient")
	misc.CheckError(w.Client.Connect(), w.logger, misc.Fatal)

	var nothing misc.Nothing
	misc.CheckError(w.Client.Call("Coordinator.RegisterWorker", w.myAddress, &nothing), w.logger, misc.Fatal)

	misc.CheckError(w.Client.Call("Coordinator.GetFrameSetup", nothing, &w.setup), w.logger, misc.Fatal)
	w.fractal, err = w.setup.Fractal.Build()
	misc.CheckError(err, w.logger, misc.Fatal)
	w.ramp = gradient.ByName(w.fractal.GradientName())

	return w
}

// Run processes jobs until the coordinator reports that none are left,
// then signs off.
func (w *Worker) Run() {
	w.logger.Info("Processing jobs")
	startTime := time.Now()

	var nothing misc.Nothing
	for {
		var job task.Job
		if err := w.Client.Call("Coordinator.GetJob", w.myAddress, &job); err != nil {
			// The expected end of the run.
			if err.Error() == "all jobs handed out" {
				break
			}
			w.logger.Fatalf("Unable to get a job: %s", err)
		}

		rowPix := make([]byte, w.setup.Width*4)
		render.RenderRow(w.fractal, w.ramp, rowPix, job.Row, w.setup.Width, w.setup.Height, job.Zoom, job.OffsetX, job.OffsetY)

		result := task.Result{
			ID:            job.ID,
			Frame:         job.Frame,
			Row:           job.Row,
			Pix:           rowPix,
			WorkerAddress: w.myAddress,
		}
		if err := w.Client.Call("Coordinator.ReturnResult", result, &nothing); err != nil {
			w.logger.Errorf("Unable to return a result: %s", err)
			break
		}
		w.jobsCompleted++
	}

	w.logger.Infof("Done processing %d jobs in %s", w.jobsCompleted, time.Since(startTime))

	misc.CheckError(w.Client.Call("Coordinator.DeRegisterWorker", w.myAddress, &nothing), w.logger, misc.Warning)
	misc.CheckError(w.Client.Disconnect(), w.logger, misc.Warning)
	misc.CheckError(w.Server.Stop(), w.logger, misc.Warning)
}

func (w *Worker) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}
