package engine

import (
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/config"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/metrics"
	"github.com/raidreplay/tobengine/types"
)

// notifyChannelDepth is the bounded size of a run's completion
// channel; workers block on send when it is full, imposing natural
// backpressure when dispatch races ahead of completion handling.
const notifyChannelDepth = 8

// ProgramRun is the unit of work executed per (program, challenge,
// level): it resolves the analyzer DAG, dispatches ready analyzers to
// the shared worker pool, and collects their results.
type ProgramRun struct {
	blocked        map[string]*analyzer.Runnable
	pending        []*analyzer.Runnable
	completed      *analyzer.CompletedMap
	analyzersToRun int

	dispatchTx chan<- workerRequest
	notifyCh   chan workerResponse

	challenge *types.Challenge
	registry  *items.Registry
	level     analyzer.Level

	collector *metrics.Collector
}

// newProgramRun instantiates every analyzer definition via impls and
// places them all into blocked, per step 1 of the scheduling
// algorithm.
func newProgramRun(def *config.ProgramDefinition, impls *analyzer.Registry, challenge *types.Challenge, registry *items.Registry, level analyzer.Level, dispatchTx chan<- workerRequest) (*ProgramRun, error) {
	run := &ProgramRun{
		blocked:    make(map[string]*analyzer.Runnable, len(def.Analyzers)),
		completed:  analyzer.NewCompletedMap(),
		dispatchTx: dispatchTx,
		notifyCh:   make(chan workerResponse, notifyChannelDepth),
		challenge:  challenge,
		registry:   registry,
		level:      level,
	}

	for logical, analyzerDef := range def.Analyzers {
		a, err := impls.Build(analyzerDef.Implementation, analyzerDef.Config)
		if err != nil {
			return nil, err
		}
		run.blocked[logical] = analyzer.NewRunnable(a, logical, analyzerDef.Dependencies)
	}
	run.analyzersToRun = len(run.blocked)

	return run, nil
}

// unblock moves every analyzer whose dependencies are all complete
// from blocked into pending.
func (r *ProgramRun) unblock() {
	for logical, runnable := range r.blocked {
		ready := true
		for _, dep := range runnable.Dependencies {
			if !r.completed.Has(dep) {
				ready = false
				break
			}
		}
		if ready {
			r.pending = append(r.pending, runnable)
			delete(r.blocked, logical)
		}
	}
}

// dispatchAllPending sends every pending analyzer to the shared
// worker queue.
func (r *ProgramRun) dispatchAllPending() error {
	for _, runnable := range r.pending {
		ctx := analyzer.NewContext(r.challenge, r.registry, r.level, r.completed)
		req := workerRequest{runnable: runnable, ctx: ctx, notifyCh: r.notifyCh}

		if !send(r.dispatchTx, req) {
			return types.FailedPrecondition("worker dispatch queue closed")
		}
	}
	r.pending = r.pending[:0]
	return nil
}

// send delivers req to ch, reporting false instead of panicking if ch
// has been closed underneath it (the engine shutting down mid-run).
func send(ch chan<- workerRequest, req workerRequest) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	ch <- req
	return true
}

// run drives the run to completion: unblock, dispatch, await, repeat
// until every analyzer has completed or one fails.
func (r *ProgramRun) run() error {
	r.unblock()
	if err := r.dispatchAllPending(); err != nil {
		return err
	}

	for r.analyzersToRun > 0 {
		resp := <-r.notifyCh
		r.collector.IncAnalyzerRun()
		if resp.err != nil {
			r.collector.IncAnalyzerFailed()
			return resp.err
		}

		r.completed.Insert(resp.runnable.LogicalName, resp.runnable)
		r.analyzersToRun--

		r.unblock()
		if err := r.dispatchAllPending(); err != nil {
			return err
		}
	}

	return nil
}
