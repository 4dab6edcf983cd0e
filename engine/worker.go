// Package engine owns program definitions, the shared worker pool,
// and per-run scheduling: it resolves each program's analyzer DAG,
// dispatches ready analyzers to workers, and collects completions.
package engine

import "github.com/raidreplay/tobengine/analyzer"

// workerRequest is one unit of dispatched work: an analyzer instance
// ready to run, its context, and where to send the outcome.
type workerRequest struct {
	runnable *analyzer.Runnable
	ctx      *analyzer.Context
	notifyCh chan<- workerResponse
}

// workerResponse reports one analyzer's outcome back to its run
// coordinator.
type workerResponse struct {
	runnable *analyzer.Runnable
	err      error
}

// dispatchQueueCapacity sizes the shared dispatch channel. The
// scheduling model calls for an unbounded queue; a large buffer
// approximates that without an unbounded-growth goroutine, since
// engines are expected to be sized for their burst of analyzer work.
const dispatchQueueCapacity = 1 << 16

// WorkerPool is W long-lived goroutines pulling requests off the
// shared dispatch queue and running them to completion.
type WorkerPool struct {
	dispatch chan workerRequest
	done     chan struct{}
}

// StartWorkerPool spawns count workers reading from a fresh dispatch
// queue.
func StartWorkerPool(count int) *WorkerPool {
	p := &WorkerPool{
		dispatch: make(chan workerRequest, dispatchQueueCapacity),
		done:     make(chan struct{}),
	}
	for i := 0; i < count; i++ {
		go p.runWorker()
	}
	return p
}

func (p *WorkerPool) runWorker() {
	for req := range p.dispatch {
		err := req.runnable.Run(req.ctx)
		req.notifyCh <- workerResponse{runnable: req.runnable, err: err}
	}
}

// Stop closes the dispatch queue; workers exit once it drains.
func (p *WorkerPool) Stop() {
	close(p.dispatch)
}
