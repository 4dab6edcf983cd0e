// Package analyzers wires every built-in analyzer implementation into
// a single registry, for hosts that want the full built-in set rather
// than hand-picking constructors.
package analyzers

import (
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/analyzers/gear"
	"github.com/raidreplay/tobengine/analyzers/role"
)

// DefaultRegistry returns a Registry with every built-in analyzer
// implementation registered under its canonical tag.
func DefaultRegistry() *analyzer.Registry {
	r := analyzer.NewRegistry()
	r.Register("GearAnalyzer", gear.New)
	r.Register("TobRoleAnalyzer", role.New)
	return r
}
