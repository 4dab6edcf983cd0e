// Package cmd assembles the urfave/cli command tree for the
// tobengine binary: running a program against a loaded challenge,
// listing loaded programs, and launching the interactive inspector.
package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/raidreplay/tobengine/adapter"
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/config"
	"github.com/raidreplay/tobengine/log"
	"github.com/raidreplay/tobengine/types"
)

// ProgramRunner is the subset of *engine.Engine the CLI needs,
// narrowed to an interface so commands are testable without a real
// worker pool.
type ProgramRunner interface {
	SetAdapter(a adapter.Adapter)
	RunProgram(programName string, level analyzer.Level, challenge *types.Challenge) error
	LoadedPrograms() map[string]*config.ProgramDefinition
}

// ChallengeLoader is the subset of *challenge.Loader the CLI needs.
type ChallengeLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*types.Challenge, error)
}

// Deps are the collaborators every subcommand's Action needs.
type Deps struct {
	Engine ProgramRunner
	Loader ChallengeLoader
	Logger *log.Logger
}

// Resolver builds Deps from whatever global flags (e.g. --config) the
// root app parsed. It runs once per invoked subcommand rather than
// once at app-construction time, since flag values are not available
// until the app starts parsing argv.
type Resolver func(c *cli.Context) (Deps, error)

// NewApp builds the "analyze" command tree. resolve is invoked lazily
// by each subcommand's Action, after global flags have been parsed.
func NewApp(resolve Resolver) *cli.App {
	return &cli.App{
		Name:  "tobengine",
		Usage: "Theatre of Blood replay analysis engine",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "run and inspect replay analysis programs",
				Subcommands: []*cli.Command{
					runCommand(resolve),
					listProgramsCommand(resolve),
					inspectCommand(resolve),
				},
			},
		},
	}
}

func parseUUID(c *cli.Context, flag string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.String(flag))
	if err != nil {
		return uuid.UUID{}, cli.Exit("invalid --"+flag+": "+err.Error(), 1)
	}
	return id, nil
}

func parseLevel(raw string) (analyzer.Level, error) {
	switch raw {
	case "basic":
		return analyzer.LevelBasic, nil
	case "learner":
		return analyzer.LevelLearner, nil
	case "casual":
		return analyzer.LevelCasual, nil
	case "max_eff":
		return analyzer.LevelMaxEff, nil
	default:
		return 0, cli.Exit("unknown --level: "+raw, 1)
	}
}
