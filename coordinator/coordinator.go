// Package coordinator runs the hub of the distributed render farm. It
// turns a zoom run (N frames, multiplicative zoom per frame) into row
// jobs, hands them to registered workers over net/rpc, reassembles the
// returned rows into frames and writes each finished frame to a PNG.
package coordinator

import (
	"errors"
	"fmt"
	gimage "image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"fractals/misc"
	"fractals/rpc"
	"fractals/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// frameTask tracks one frame being assembled from returned rows.
type frameTask struct {
	image    *gimage.RGBA
	rowsLeft int
}

type Coordinator struct {
	clients        map[string]*rpc.TcpClient
	frames         map[int]*frameTask
	jobCount       uint64
	jobsDone       chan task.Result
	jobsGenerated  atomic.Uint64
	jobsIngested   atomic.Uint64
	jobsTodo       chan task.Job
	jobsHandedOut  map[string]map[uint]task.Job
	framesComplete atomic.Int64
	logger         bslogger.Logger
	mutex          sync.Mutex
	settings       settings
	workerWait     *sync.WaitGroup

	// Jobs reclaimed from departed workers. They cannot go back on
	// jobsTodo, which may already be closed; GetJob drains this first.
	jobsPending []task.Job

	Server rpc.TcpServer
}

func NewCoordinator(settingsFile string) *Coordinator {
	settings := newSettings(settingsFile)

	c := &Coordinator{
		clients:       make(map[string]*rpc.TcpClient),
		frames:        make(map[int]*frameTask),
		jobCount:      uint64(settings.Height * settings.FrameCount),
		jobsDone:      make(chan task.Result, 1000),
		jobsTodo:      make(chan task.Job, 1000),
		jobsHandedOut: make(map[string]map[uint]task.Job),
		logger:        bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		settings:      settings,
		workerWait:    &sync.WaitGroup{},
	}
	c.logger.Debug(settings.String())

	c.Server = rpc.NewTcpServer(c, settings.ServerAddress, "CoordinatorServer")
	misc.CheckError(c.Server.Run(), c.Server.Logger, misc.Fatal)

	// Directory for this run's frames, with a copy of the settings so the
	// run can be reproduced later.
	runDir := filepath.Join(settings.SavePath, settings.RunName)
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		misc.CheckError(os.MkdirAll(runDir, os.ModePerm), c.logger, misc.Fatal)
	}
	misc.CheckError(misc.SaveJSON(filepath.Join(runDir, "settings.json"), settings), c.logger, misc.Warning)

	go c.tickers()
	go c.generateJobs()

	return c
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)

	for {
		select {
		case <-rollCall.C:
			var nothing misc.Nothing
			c.mutex.Lock()
			clients := make([]*rpc.TcpClient, 0, len(c.clients))
			for _, client := range c.clients {
				clients = append(clients, client)
			}
			c.mutex.Unlock()
			for _, client := range clients {
				var present bool
				if err := client.Call("Worker.RollCall", nothing, &present); err != nil {
					c.logger.Warningf("Worker %s missed roll call: %s", client.Name, err)
					misc.CheckError(c.DeRegisterWorker(client.Name, &nothing), c.logger, misc.Warning)
				}
			}

		case <-heartBeat.C:
			framesComplete := c.framesComplete.Load()
			c.logger.Infof("Jobs [Generated: %d] [Ingested: %d] | Frames [Completed: %d] [Todo: %d]",
				c.jobsGenerated.Load(), c.jobsIngested.Load(), framesComplete, int64(c.settings.FrameCount)-framesComplete)
		}
	}
}

// generateJobs emits one job per frame row. The zoom shrinks by ZoomFactor
// each frame, zooming in on the fixed offset point.
func (c *Coordinator) generateJobs() {
	c.logger.Info("Generating jobs")
	startTime := time.Now()

	zoom := c.settings.ZoomStart
	for frame := 0; frame < c.settings.FrameCount; frame++ {
		for row := 0; row < c.settings.Height; row++ {
			id := c.jobsGenerated.Add(1) - 1
			c.jobsTodo <- task.Job{
				ID:      uint(id),
				Frame:   frame,
				Row:     row,
				Zoom:    zoom,
				OffsetX: c.settings.OffsetX,
				OffsetY: c.settings.OffsetY,
			}
		}
		zoom *= c.settings.ZoomFactor
	}

	close(c.jobsTodo)
	c.logger.Debugf("Done generating %d jobs in %s", c.jobsGenerated.Load(), time.Since(startTime))
}

// Run ingests results until every frame is written, then waits for the
// workers to sign off and stops the server. It blocks the caller for the
// whole run.
func (c *Coordinator) Run() {
	c.logger.Info("Ingesting results")
	startTime := time.Now()
	stride := c.settings.Width * 4

	for c.jobsIngested.Load() < c.jobCount {
		result := <-c.jobsDone
		c.jobsIngested.Add(1)

		frame, ok := c.frames[result.Frame]
		if !ok {
			frame = &frameTask{
				image:    gimage.NewRGBA(gimage.Rect(0, 0, c.settings.Width, c.settings.Height)),
				rowsLeft: c.settings.Height,
			}
			c.frames[result.Frame] = frame
		}

		copy(frame.image.Pix[result.Row*stride:(result.Row+1)*stride], result.Pix)
		frame.rowsLeft--

		c.mutex.Lock()
		delete(c.jobsHandedOut[result.WorkerAddress], result.ID)
		c.mutex.Unlock()

		if frame.rowsLeft == 0 {
			c.saveFrame(result.Frame, frame)
			delete(c.frames, result.Frame)
			c.framesComplete.Add(1)
		}
	}

	close(c.jobsDone)
	c.logger.Debugf("Done ingesting %d results in %s", c.jobsIngested.Load(), time.Since(startTime))

	c.logger.Infof("Waiting for %d workers to disconnect", len(c.clients))
	c.workerWait.Wait()
	misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
	c.logger.Info("Shutting down")
}

func (c *Coordinator) saveFrame(number int, frame *frameTask) {
	path := filepath.Join(c.settings.SavePath, c.settings.RunName, fmt.Sprintf("frame_%04d.png", number))
	f, err := os.Create(path)
	if err != nil {
		c.logger.Fatalf("Unable to create frame file: %s", err)
	}
	if err := png.Encode(f, frame.image); err != nil {
		c.logger.Fatalf("Unable to encode frame: %s", err)
	}
	misc.CheckError(f.Close(), c.logger, misc.Warning)
	c.logger.Infof("Saved frame to %s", path)
}

// RegisterWorker joins a worker to the pool and opens a client back to its
// reply server for roll calls.
func (c *Coordinator) RegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	client := rpc.NewTcpClient(workerServerAddress, workerServerAddress)
	misc.CheckError(client.Connect(), c.logger, misc.Warning)

	c.mutex.Lock()
	c.clients[workerServerAddress] = &client
	c.jobsHandedOut[workerServerAddress] = make(map[uint]task.Job)
	c.mutex.Unlock()

	c.logger.Infof("Worker joined: %s", workerServerAddress)
	c.workerWait.Add(1)
	return nil
}

// DeRegisterWorker removes a worker and requeues any jobs it still held.
// A worker can be deregistered twice, once by a missed roll call and once
// by its own sign-off; the second call is a no-op.
func (c *Coordinator) DeRegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	c.mutex.Lock()
	handedOut, registered := c.jobsHandedOut[workerServerAddress]
	if !registered {
		c.mutex.Unlock()
		c.logger.Warningf("Ignoring deregistration of unknown worker: %s", workerServerAddress)
		return nil
	}
	client := c.clients[workerServerAddress]
	delete(c.jobsHandedOut, workerServerAddress)
	delete(c.clients, workerServerAddress)
	// The jobs cannot go back on jobsTodo; generateJobs may have closed
	// it already. GetJob hands these out before pulling from the channel.
	for _, job := range handedOut {
		c.jobsPending = append(c.jobsPending, job)
	}
	c.mutex.Unlock()

	if client != nil {
		misc.CheckError(client.Disconnect(), c.logger, misc.Warning)
	}

	c.logger.Infof("Worker left: %s", workerServerAddress)
	c.workerWait.Done()
	return nil
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

// GetFrameSetup hands a worker the run-wide fractal parameters and frame
// dimensions.
func (c *Coordinator) GetFrameSetup(nothing misc.Nothing, setup *task.FrameSetup) error {
	*setup = task.FrameSetup{
		Fractal: c.settings.Fractal,
		Width:   c.settings.Width,
		Height:  c.settings.Height,
	}
	return nil
}

// GetJob hands out the next row job, preferring jobs reclaimed from
// departed workers. Once every job has been generated and handed out,
// workers get an error they treat as the end of the run.
func (c *Coordinator) GetJob(workerAddress string, job *task.Job) error {
	c.mutex.Lock()
	if n := len(c.jobsPending); n > 0 {
		todo := c.jobsPending[n-1]
		c.jobsPending = c.jobsPending[:n-1]
		todo.WorkerAddress = workerAddress
		c.jobsHandedOut[workerAddress][todo.ID] = todo
		c.mutex.Unlock()
		*job = todo
		return nil
	}
	c.mutex.Unlock()

	todo, more := <-c.jobsTodo
	if !more {
		c.logger.Info("Telling worker that all jobs are handed out")
		return errors.New("all jobs handed out")
	}

	c.mutex.Lock()
	todo.WorkerAddress = workerAddress
	c.jobsHandedOut[workerAddress][todo.ID] = todo
	c.mutex.Unlock()

	*job = todo
	return nil
}

// ReturnResult queues a finished row for ingestion.
func (c *Coordinator) ReturnResult(result task.Result, nothing *misc.Nothing) error {
	c.jobsDone <- result
	return nil
}
