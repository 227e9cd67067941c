package render

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of goroutines that execute batches of independent
// work items. Frame rendering is pure arithmetic with no blocking inside a
// task, so a single shared queue is enough; there is nothing to steal.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewPool starts a pool with the given number of workers. Zero or negative
// means GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain anything already queued so a concurrent ExecuteAll
			// still completes.
			for {
				select {
				case work := <-p.queue:
					work()
				default:
					return
				}
			}
		case work := <-p.queue:
			work()
		}
	}
}

// ExecuteAll submits every item and blocks until all of them have run.
// After Close the items are executed inline on the calling goroutine, so
// the call still completes.
func (p *Pool) ExecuteAll(work []func()) {
	var batch sync.WaitGroup
	batch.Add(len(work))

	for _, fn := range work {
		fn := fn
		wrapped := func() {
			defer batch.Done()
			fn()
		}
		// Once the pool is closed nothing consumes the queue, so a
		// buffered send would strand the item. Check done first.
		select {
		case <-p.done:
			wrapped()
			continue
		default:
		}
		select {
		case p.queue <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	batch.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Close stops the workers. Items queued by a concurrent ExecuteAll are
// still drained by that call. Close is safe to call multiple times.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
