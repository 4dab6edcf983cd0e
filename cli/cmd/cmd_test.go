package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/raidreplay/tobengine/adapter"
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/config"
	"github.com/raidreplay/tobengine/log"
	"github.com/raidreplay/tobengine/types"
)

type fakeEngine struct {
	adapter  adapter.Adapter
	programs map[string]*config.ProgramDefinition
	runErr   error
	event    *adapter.ProgramRunCompletedEvent
}

func (f *fakeEngine) SetAdapter(a adapter.Adapter) { f.adapter = a }

func (f *fakeEngine) RunProgram(programName string, level analyzer.Level, challenge *types.Challenge) error {
	if f.runErr != nil {
		return f.runErr
	}
	if f.adapter != nil && f.event != nil {
		_ = f.adapter.Publish(context.Background(), f.event)
	}
	return nil
}

func (f *fakeEngine) LoadedPrograms() map[string]*config.ProgramDefinition { return f.programs }

type fakeLoader struct {
	challenge *types.Challenge
	err       error
}

func (f *fakeLoader) Load(ctx context.Context, id uuid.UUID) (*types.Challenge, error) {
	return f.challenge, f.err
}

func testApp(engine ProgramRunner, loader ChallengeLoader, out *bytes.Buffer) *cli.App {
	app := NewApp(func(c *cli.Context) (Deps, error) {
		return Deps{Engine: engine, Loader: loader, Logger: log.NewLogger().WithOutput(out)}, nil
	})
	app.Writer = out
	return app
}

func TestListProgramsCommand(t *testing.T) {
	engine := &fakeEngine{programs: map[string]*config.ProgramDefinition{
		"p": {
			Analyzers: map[string]config.AnalyzerDefinition{
				"gear": {Implementation: "GearAnalyzer"},
				"role": {Implementation: "TobRoleAnalyzer", Dependencies: []string{"gear"}},
			},
		},
	}}
	var out bytes.Buffer
	app := testApp(engine, &fakeLoader{}, &out)

	if err := app.Run([]string{"tobengine", "analyze", "list-programs"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "p\n") {
		t.Errorf("output missing program name, got %q", got)
	}
	if !strings.Contains(got, "role (TobRoleAnalyzer) <- gear") {
		t.Errorf("output missing dependency edge, got %q", got)
	}
}

func TestRunCommand_Success(t *testing.T) {
	id := uuid.New()
	challenge := types.NewChallenge(id, types.ChallengeTob, types.ModeTobRegular, types.StatusCompleted, types.StageTobMaiden, []string{"a"}, nil)
	engine := &fakeEngine{event: &adapter.ProgramRunCompletedEvent{
		Program: "p", Challenge: id.String(), Outcome: "success", AnalyzersRun: 2,
	}}
	var out bytes.Buffer
	app := testApp(engine, &fakeLoader{challenge: challenge}, &out)

	err := app.Run([]string{"tobengine", "analyze", "run", "--program", "p", "--uuid", id.String()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "outcome:   success") {
		t.Errorf("output missing outcome, got %q", out.String())
	}
}

func TestRunCommand_FailureExitsNonZero(t *testing.T) {
	id := uuid.New()
	challenge := types.NewChallenge(id, types.ChallengeTob, types.ModeTobRegular, types.StatusCompleted, types.StageTobMaiden, []string{"a"}, nil)
	engine := &fakeEngine{event: &adapter.ProgramRunCompletedEvent{
		Program: "p", Challenge: id.String(), Outcome: "analyzer_error", ErrorMessage: "boom",
	}}
	var out bytes.Buffer
	app := testApp(engine, &fakeLoader{challenge: challenge}, &out)

	err := app.Run([]string{"tobengine", "analyze", "run", "--program", "p", "--uuid", id.String()})
	if err == nil {
		t.Fatal("expected error for analyzer_error outcome")
	}
}

func TestRunCommand_InvalidUUID(t *testing.T) {
	engine := &fakeEngine{}
	var out bytes.Buffer
	app := testApp(engine, &fakeLoader{}, &out)

	err := app.Run([]string{"tobengine", "analyze", "run", "--program", "p", "--uuid", "not-a-uuid"})
	if err == nil {
		t.Fatal("expected error for invalid uuid")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]analyzer.Level{
		"basic":   analyzer.LevelBasic,
		"learner": analyzer.LevelLearner,
		"casual":  analyzer.LevelCasual,
		"max_eff": analyzer.LevelMaxEff,
	}
	for raw, want := range cases {
		got, err := parseLevel(raw)
		if err != nil {
			t.Errorf("parseLevel(%q) error: %v", raw, err)
		}
		if got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if _, err := parseLevel("godlike"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
