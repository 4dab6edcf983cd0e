package analyzer

import "github.com/raidreplay/tobengine/types"

// Constructor builds an Analyzer instance from a program definition's
// opaque per-analyzer config blob.
type Constructor func(config map[string]any) (Analyzer, error)

// Registry resolves an implementation tag (the string used in program
// files) to the constructor that builds it, mirroring the teacher's
// config-string-selects-constructor dispatch used for adapters and
// ingestion policies.
type Registry struct {
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor under implementation tag name.
// Registering a name that is already present replaces the earlier
// constructor; duplicates are not reported.
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[name] = ctor
}

// Build resolves name and invokes its constructor with config.
func (r *Registry) Build(name string, config map[string]any) (Analyzer, error) {
	ctor, ok := r.constructors[name]
	if !ok {
		return nil, types.Config("unknown analyzer implementation: " + name)
	}
	return ctor(config)
}

// Has reports whether name resolves to a registered constructor,
// without invoking it. Used at program-load time to catch a typo'd or
// nonexistent implementation before any run is attempted.
func (r *Registry) Has(name string) bool {
	_, ok := r.constructors[name]
	return ok
}
