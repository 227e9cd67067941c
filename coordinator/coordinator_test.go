package coordinator

import (
	"sync"
	"testing"

	"fractals/misc"
	"fractals/rpc"
	"fractals/task"

	"github.com/BrugadaSyndrome/bslogger"
)

func testCoordinator(s settings) *Coordinator {
	return &Coordinator{
		clients:       make(map[string]*rpc.TcpClient),
		frames:        make(map[int]*frameTask),
		jobCount:      uint64(s.Height * s.FrameCount),
		jobsDone:      make(chan task.Result, 16),
		jobsTodo:      make(chan task.Job, 16),
		jobsHandedOut: make(map[string]map[uint]task.Job),
		logger:        bslogger.NewLogger("CoordinatorTest", bslogger.Normal, nil),
		settings:      s,
		workerWait:    &sync.WaitGroup{},
	}
}

// A worker departing after every job has been generated and handed out
// must still get its held jobs reclaimed and handed to someone else.
func TestDeRegisterWorker_RequeuesAfterGenerationDone(t *testing.T) {
	c := testCoordinator(settings{Width: 4, Height: 2, FrameCount: 1})
	close(c.jobsTodo)

	held := task.Job{ID: 7, Frame: 0, Row: 1, Zoom: 0.003, WorkerAddress: "worker-a"}
	c.jobsHandedOut["worker-a"] = map[uint]task.Job{held.ID: held}
	c.workerWait.Add(1)

	var nothing misc.Nothing
	if err := c.DeRegisterWorker("worker-a", &nothing); err != nil {
		t.Fatalf("DeRegisterWorker() error = %v", err)
	}

	c.jobsHandedOut["worker-b"] = make(map[uint]task.Job)
	var job task.Job
	if err := c.GetJob("worker-b", &job); err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if job.ID != held.ID || job.Frame != held.Frame || job.Row != held.Row {
		t.Errorf("GetJob() = %s, want the reclaimed job %s", job.String(), held.String())
	}
	if job.WorkerAddress != "worker-b" {
		t.Errorf("WorkerAddress = %q, want %q", job.WorkerAddress, "worker-b")
	}
	if _, ok := c.jobsHandedOut["worker-b"][held.ID]; !ok {
		t.Error("reclaimed job is not tracked against its new worker")
	}

	if err := c.GetJob("worker-b", &job); err == nil {
		t.Error("GetJob() with nothing left should report the end of the run")
	}
}

// A worker can be deregistered by a missed roll call and then again by its
// own sign-off; the second call must be a no-op.
func TestDeRegisterWorker_SecondCallIsNoOp(t *testing.T) {
	c := testCoordinator(settings{Width: 4, Height: 2, FrameCount: 1})
	c.jobsHandedOut["worker-a"] = make(map[uint]task.Job)
	c.workerWait.Add(1)

	var nothing misc.Nothing
	if err := c.DeRegisterWorker("worker-a", &nothing); err != nil {
		t.Fatalf("DeRegisterWorker() error = %v", err)
	}
	if err := c.DeRegisterWorker("worker-a", &nothing); err != nil {
		t.Fatalf("second DeRegisterWorker() error = %v", err)
	}

	// Returns only if Done ran exactly once.
	c.workerWait.Wait()
}

func TestGenerateJobs_SequentialIDsAndConcurrentCounterReads(t *testing.T) {
	c := testCoordinator(settings{Width: 4, Height: 4, FrameCount: 2, ZoomStart: 0.003, ZoomFactor: 0.5})

	// A heartbeat-style reader running alongside generation; the race
	// detector fails the test if the counters are not safe to read.
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				c.jobsGenerated.Load()
				c.jobsIngested.Load()
				c.framesComplete.Load()
			}
		}
	}()

	go c.generateJobs()

	var jobs []task.Job
	for job := range c.jobsTodo {
		jobs = append(jobs, job)
	}
	close(stop)

	if got := c.jobsGenerated.Load(); got != 8 {
		t.Fatalf("jobsGenerated = %d, want 8", got)
	}
	for i, job := range jobs {
		if job.ID != uint(i) {
			t.Errorf("job %d has ID %d, want %d", i, job.ID, i)
		}
	}
	if jobs[4].Zoom != 0.0015 {
		t.Errorf("second frame zoom = %v, want 0.0015", jobs[4].Zoom)
	}
}
