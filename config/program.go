package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/raidreplay/tobengine/types"
)

// AnalyzerDefinition is one logical analyzer slot within a program
// file.
type AnalyzerDefinition struct {
	Implementation string         `toml:"implementation"`
	Dependencies   []string       `toml:"dependencies"`
	Config         map[string]any `toml:"config"`
}

// ProgramDefinition is the decoded shape of a single program file.
type ProgramDefinition struct {
	Program struct {
		Name string `toml:"name"`
	} `toml:"program"`
	Analyzers map[string]AnalyzerDefinition `toml:"analyzers"`
}

// LoadProgramFile reads and validates one program definition file.
func LoadProgramFile(path string) (*ProgramDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.KindIo, path, err)
	}

	var def ProgramDefinition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, types.WrapError(types.KindConfig, path, err)
	}

	if def.Program.Name == "" {
		return nil, types.Config(fmt.Sprintf("%s: program.name is required", path))
	}

	if err := validateDAG(def.Analyzers); err != nil {
		return nil, types.WrapError(types.KindConfig, path, err)
	}

	return &def, nil
}

// LoadProgramDirectory scans dir for *.toml program definitions,
// rejecting duplicate program names across files.
func LoadProgramDirectory(dir string) (map[string]*ProgramDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, types.WrapError(types.KindIo, dir, err)
	}

	programs := make(map[string]*ProgramDefinition)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		def, err := LoadProgramFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		if _, dup := programs[def.Program.Name]; dup {
			return nil, types.Config(fmt.Sprintf("duplicate program name: %s", def.Program.Name))
		}
		programs[def.Program.Name] = def
	}

	return programs, nil
}

// validateDAG checks that every dependency names an analyzer in the
// same program and that the dependency graph is acyclic.
func validateDAG(analyzers map[string]AnalyzerDefinition) error {
	for logical, def := range analyzers {
		for _, dep := range def.Dependencies {
			if _, ok := analyzers[dep]; !ok {
				return fmt.Errorf("analyzer %q depends on unknown analyzer %q", logical, dep)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(analyzers))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("analyzer dependency cycle detected at %q", name)
		}
		state[name] = visiting
		for _, dep := range analyzers[name].Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = visited
		return nil
	}

	for name := range analyzers {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
