// Package analyzer defines the pluggable-inspector contract every
// domain analyzer implements, and the read-only run context passed to
// each invocation.
package analyzer

import (
	"sync"

	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/types"
)

// Level hints at the effort/scope an analyzer should apply. The
// engine attaches no behavior to it; it exists purely for analyzers
// that want to scale their own work.
type Level int

const (
	LevelBasic Level = iota
	LevelLearner
	LevelCasual
	LevelMaxEff
)

func (l Level) String() string {
	switch l {
	case LevelBasic:
		return "basic"
	case LevelLearner:
		return "learner"
	case LevelCasual:
		return "casual"
	case LevelMaxEff:
		return "max_eff"
	default:
		return "unknown"
	}
}

// Analyzer is the contract every domain inspector implements. Name
// must be globally unique across the implementation registry; it is
// also the tag program files reference. Each implementation exports
// at most one output type.
type Analyzer interface {
	Name() string
	Analyze(ctx *Context) (any, error)
}

// Context is the read-only facade passed to Analyze. It is built fresh
// per dispatch by the program run coordinator.
type Context struct {
	Challenge *types.Challenge
	Items     *items.Registry
	Level     Level

	completed *completedMap
}

// NewContext builds a Context over the given run's shared state.
func NewContext(challenge *types.Challenge, registry *items.Registry, level Level, completed *CompletedMap) *Context {
	return &Context{Challenge: challenge, Items: registry, Level: level, completed: completed}
}

// completedMap is the run-scoped logical-name -> finished analyzer
// table, guarded by a multi-reader/single-writer lock per the
// concurrency model: the coordinator writes only between dispatches,
// analyzer bodies read concurrently from workers.
type completedMap struct {
	mu    sync.RWMutex
	items map[string]*Runnable
}

// CompletedMap is the exported handle to a run's completed-analyzer
// table; the engine package owns its lifetime, one per program run.
type CompletedMap = completedMap

func NewCompletedMap() *CompletedMap {
	return &completedMap{items: make(map[string]*Runnable)}
}

// Insert records a finished analyzer under its logical name.
func (c *completedMap) Insert(logicalName string, r *Runnable) { c.insert(logicalName, r) }

// Has reports whether logicalName has completed.
func (c *completedMap) Has(logicalName string) bool { return c.has(logicalName) }

func (c *completedMap) insert(logicalName string, r *Runnable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[logicalName] = r
}

func (c *completedMap) get(logicalName string) (*Runnable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.items[logicalName]
	return r, ok
}

func (c *completedMap) has(logicalName string) bool {
	_, ok := c.get(logicalName)
	return ok
}

// getByTag scans for a completed analyzer by its static implementation
// tag (Analyzer.Name()), as opposed to its per-program logical name.
// Dependents reference dependencies this way per the analyzer
// contract: a dependent names the analyzer *type* it wants, not the
// logical slot it was configured under.
func (c *completedMap) getByTag(tag string) (*Runnable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.items {
		if r.Analyzer.Name() == tag {
			return r, true
		}
	}
	return nil, false
}

// Runnable wraps a constructed Analyzer together with the output it
// produced once run, type-erased. The completed map retains the whole
// Runnable — not just its output — because dependents look up outputs
// by the analyzer's static implementation tag, not by logical name.
type Runnable struct {
	Analyzer       Analyzer
	LogicalName    string
	Dependencies   []string
	output         any
	err            error
}

// NewRunnable constructs an unrun analyzer instance.
func NewRunnable(a Analyzer, logicalName string, dependencies []string) *Runnable {
	return &Runnable{Analyzer: a, LogicalName: logicalName, Dependencies: dependencies}
}

// Run invokes the wrapped analyzer against ctx and records its
// outcome.
func (r *Runnable) Run(ctx *Context) error {
	out, err := r.Analyzer.Analyze(ctx)
	r.output = out
	r.err = err
	return err
}

// Output returns the analyzer's raw output. Only meaningful after Run
// has completed successfully.
func (r *Runnable) Output() any { return r.output }

// DependencyOutput looks up a dependency's output by the
// implementation-tag name and asserts its concrete type. Returns a
// dependency error if the named analyzer has not completed, or an
// incomplete-data error if its output is not of type T — mirroring the
// source engine's downcast-by-static-tag pattern without Go RTTI.
func DependencyOutput[T any](ctx *Context, name string) (T, error) {
	var zero T

	r, ok := ctx.completed.getByTag(name)
	if !ok {
		return zero, types.Dependency(name)
	}

	out, ok := r.Output().(T)
	if !ok {
		return zero, types.IncompleteData("dependency output type mismatch: " + name)
	}
	return out, nil
}
