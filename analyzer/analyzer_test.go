package analyzer

import (
	"errors"
	"testing"

	"github.com/raidreplay/tobengine/types"
)

type fixedAnalyzer struct {
	name   string
	output any
	err    error
}

func (f *fixedAnalyzer) Name() string { return f.name }

func (f *fixedAnalyzer) Analyze(*Context) (any, error) { return f.output, f.err }

func TestRunnable_RunRecordsOutputAndError(t *testing.T) {
	r := NewRunnable(&fixedAnalyzer{name: "GearAnalyzer", output: 42}, "gear", nil)
	ctx := NewContext(nil, nil, LevelBasic, NewCompletedMap())

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Output() != 42 {
		t.Errorf("Output() = %v, want 42", r.Output())
	}
}

func TestRunnable_RunPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	r := NewRunnable(&fixedAnalyzer{name: "GearAnalyzer", err: wantErr}, "gear", nil)
	ctx := NewContext(nil, nil, LevelBasic, NewCompletedMap())

	if err := r.Run(ctx); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestCompletedMap_HasByLogicalName(t *testing.T) {
	completed := NewCompletedMap()
	r := NewRunnable(&fixedAnalyzer{name: "GearAnalyzer"}, "gear-logical", nil)

	if completed.Has("gear-logical") {
		t.Fatal("expected gear-logical to be absent before insert")
	}
	completed.Insert("gear-logical", r)
	if !completed.Has("gear-logical") {
		t.Fatal("expected gear-logical to be present after insert")
	}
}

func TestDependencyOutput_LooksUpByStaticTagNotLogicalName(t *testing.T) {
	completed := NewCompletedMap()
	r := NewRunnable(&fixedAnalyzer{name: "GearAnalyzer"}, "some-other-logical-slot", nil)
	r.output = []string{"barrows_gloves"}
	completed.Insert("some-other-logical-slot", r)

	ctx := NewContext(nil, nil, LevelBasic, completed)

	out, err := DependencyOutput[[]string](ctx, "GearAnalyzer")
	if err != nil {
		t.Fatalf("DependencyOutput: %v", err)
	}
	if len(out) != 1 || out[0] != "barrows_gloves" {
		t.Errorf("DependencyOutput = %v, want [barrows_gloves]", out)
	}
}

func TestDependencyOutput_MissingDependency(t *testing.T) {
	ctx := NewContext(nil, nil, LevelBasic, NewCompletedMap())

	_, err := DependencyOutput[int](ctx, "RoleAnalyzer")
	if err == nil {
		t.Fatal("expected error for missing dependency")
	}
}

func TestDependencyOutput_TypeMismatch(t *testing.T) {
	completed := NewCompletedMap()
	r := NewRunnable(&fixedAnalyzer{name: "GearAnalyzer"}, "gear", nil)
	r.output = "not an int"
	completed.Insert("gear", r)

	ctx := NewContext(nil, nil, LevelBasic, completed)

	_, err := DependencyOutput[int](ctx, "GearAnalyzer")
	if err == nil {
		t.Fatal("expected type-mismatch error")
	}
	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		t.Fatalf("expected *types.Error, got %T", err)
	}
	if typedErr.Kind != types.KindIncompleteData {
		t.Errorf("Kind = %v, want KindIncompleteData", typedErr.Kind)
	}
}
