package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/raidreplay/tobengine/adapter"
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/config"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/log"
	"github.com/raidreplay/tobengine/metrics"
	"github.com/raidreplay/tobengine/types"
)

// Engine owns the loaded programs, the shared worker pool, and the
// item registry every run shares by reference.
type Engine struct {
	logger   *log.Logger
	registry *items.Registry
	impls    *analyzer.Registry
	adapter  adapter.Adapter

	mu       sync.RWMutex
	programs map[string]*config.ProgramDefinition

	pool    *WorkerPool
	started bool

	runCounter atomic.Int64
}

// New constructs an Engine with a given implementation registry (the
// set of domain analyzers the host has registered) and the shared
// item registry every analyzer reads from.
func New(logger *log.Logger, impls *analyzer.Registry, registry *items.Registry) *Engine {
	return &Engine{
		logger:   logger,
		registry: registry,
		impls:    impls,
		programs: make(map[string]*config.ProgramDefinition),
	}
}

// SetAdapter attaches the downstream notification adapter every run
// completion is published to. Nil disables publishing.
func (e *Engine) SetAdapter(a adapter.Adapter) {
	e.adapter = a
}

// LoadFromDirectory scans dir for program definitions, rejecting
// duplicate program names, malformed files, and any analyzer
// definition whose implementation does not resolve against the
// engine's registry. A program that cannot run is rejected at load
// time rather than discovered on its first run.
func (e *Engine) LoadFromDirectory(dir string) error {
	programs, err := config.LoadProgramDirectory(dir)
	if err != nil {
		return err
	}

	if err := e.validateImplementations(programs); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.programs = programs
	return nil
}

// validateImplementations checks that every analyzer definition across
// every program names an implementation registered with the engine.
func (e *Engine) validateImplementations(programs map[string]*config.ProgramDefinition) error {
	for programName, def := range programs {
		for logical, analyzerDef := range def.Analyzers {
			if !e.impls.Has(analyzerDef.Implementation) {
				return types.Config(fmt.Sprintf("program %q: analyzer %q names unknown implementation %q", programName, logical, analyzerDef.Implementation))
			}
		}
	}
	return nil
}

// LoadedPrograms returns a snapshot of every loaded program definition,
// keyed by program name, for introspection by the CLI's list command.
func (e *Engine) LoadedPrograms() map[string]*config.ProgramDefinition {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]*config.ProgramDefinition, len(e.programs))
	for name, def := range e.programs {
		out[name] = def
	}
	return out
}

// Start creates the shared dispatch queue and spawns workerCount
// workers. A second call is undefined, per the engine's contract.
func (e *Engine) Start(workerCount int) {
	e.pool = StartWorkerPool(workerCount)
	e.started = true
}

// RunProgram looks up a loaded program, assigns it a monotonic run
// number, and spawns a background goroutine executing it. The
// goroutine logs its own outcome and does not propagate the error
// further.
func (e *Engine) RunProgram(programName string, level analyzer.Level, challenge *types.Challenge) error {
	if !e.started {
		return types.FailedPrecondition("engine not started")
	}

	e.mu.RLock()
	def, ok := e.programs[programName]
	e.mu.RUnlock()
	if !ok {
		return types.NewError(types.KindInvalidArgument, "unknown program: "+programName)
	}

	runNumber := e.runCounter.Add(1)

	run, err := newProgramRun(def, e.impls, challenge, e.registry, level, e.pool.dispatch)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(programName, challenge.UUID.String())
	run.collector = collector

	go func() {
		logger := e.logger.With(
			"program", programName,
			"run_number", runNumber,
			"challenge", challenge.UUID.String(),
		)

		start := time.Now()
		collector.IncRunStarted()
		runErr := run.run()
		duration := time.Since(start)

		if runErr != nil {
			collector.IncRunFailed()
			logger.Errorw("program run failed", "error", runErr)
		} else {
			collector.IncRunCompleted()
		}

		snapshot := collector.Snapshot()
		if runErr == nil {
			logger.Infow("program run completed",
				"analyzers_run", snapshot.AnalyzersRun,
				"analyzers_failed", snapshot.AnalyzersFailed,
			)
		}

		e.publish(programName, challenge, runNumber, level, snapshot, duration, runErr)
	}()

	return nil
}

// publish notifies the configured adapter of a run's outcome. Errors
// publishing are logged, not propagated: a downstream notification
// failure never affects the run's own result.
func (e *Engine) publish(programName string, challenge *types.Challenge, runNumber int64, level analyzer.Level, snapshot metrics.Snapshot, duration time.Duration, runErr error) {
	if e.adapter == nil {
		return
	}

	event := &adapter.ProgramRunCompletedEvent{
		EventType:       "program_run_completed",
		Program:         programName,
		Challenge:       challenge.UUID.String(),
		RunNumber:       runNumber,
		Level:           level.String(),
		Outcome:         "success",
		AnalyzersRun:    snapshot.AnalyzersRun,
		AnalyzersFailed: snapshot.AnalyzersFailed,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		DurationMs:      duration.Milliseconds(),
	}
	if runErr != nil {
		event.Outcome = "analyzer_error"
		event.ErrorMessage = runErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.adapter.Publish(ctx, event); err != nil {
		e.logger.With("program", programName, "challenge", challenge.UUID.String()).
			Errorw("failed to publish run completion event", "error", err)
	}
}
