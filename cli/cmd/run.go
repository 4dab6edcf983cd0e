package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/raidreplay/tobengine/adapter"
)

// runTimeout bounds how long the CLI waits for a program run's
// completion event before giving up. A run itself has no engine-side
// timeout; this only protects an operator's terminal session.
const runTimeout = 2 * time.Minute

func runCommand(resolve Resolver) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run a loaded program against a challenge and print a summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "program", Usage: "program name to run", Required: true},
			&cli.StringFlag{Name: "uuid", Usage: "challenge UUID", Required: true},
			&cli.StringFlag{Name: "level", Usage: "effort level: basic, learner, casual, max_eff", Value: "basic"},
		},
		Action: func(c *cli.Context) error {
			deps, err := resolve(c)
			if err != nil {
				return err
			}

			id, err := parseUUID(c, "uuid")
			if err != nil {
				return err
			}
			level, err := parseLevel(c.String("level"))
			if err != nil {
				return err
			}

			challenge, err := deps.Loader.Load(c.Context, id)
			if err != nil {
				return fmt.Errorf("load challenge: %w", err)
			}

			rec := newSyncAdapter()
			deps.Engine.SetAdapter(rec)

			if err := deps.Engine.RunProgram(c.String("program"), level, challenge); err != nil {
				return fmt.Errorf("run program: %w", err)
			}

			event, err := rec.await(c.Context, runTimeout)
			if err != nil {
				return err
			}

			printSummary(c.App.Writer, event)
			if event.Outcome != "success" {
				return cli.Exit(event.ErrorMessage, 1)
			}
			return nil
		},
	}
}

// syncAdapter bridges the engine's async, fire-and-forget publish
// path back to a single synchronous caller: the CLI starts a run,
// attaches itself as the run's only adapter, and blocks on await for
// the one completion event that run produces.
type syncAdapter struct {
	events chan *adapter.ProgramRunCompletedEvent
}

func newSyncAdapter() *syncAdapter {
	return &syncAdapter{events: make(chan *adapter.ProgramRunCompletedEvent, 1)}
}

func (a *syncAdapter) Publish(_ context.Context, event *adapter.ProgramRunCompletedEvent) error {
	a.events <- event
	return nil
}

func (a *syncAdapter) Close() error { return nil }

func (a *syncAdapter) await(ctx context.Context, timeout time.Duration) (*adapter.ProgramRunCompletedEvent, error) {
	select {
	case event := <-a.events:
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, errors.New("timed out waiting for program run to complete")
	}
}

func printSummary(w io.Writer, event *adapter.ProgramRunCompletedEvent) {
	fmt.Fprintf(w, "program:   %s\n", event.Program)
	fmt.Fprintf(w, "challenge: %s\n", event.Challenge)
	fmt.Fprintf(w, "level:     %s\n", event.Level)
	fmt.Fprintf(w, "outcome:   %s\n", event.Outcome)
	fmt.Fprintf(w, "analyzers: %d run, %d failed\n", event.AnalyzersRun, event.AnalyzersFailed)
	fmt.Fprintf(w, "duration:  %dms\n", event.DurationMs)
	if event.ErrorMessage != "" {
		fmt.Fprintf(w, "error:     %s\n", event.ErrorMessage)
	}
}
