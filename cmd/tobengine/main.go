// Command tobengine is the demo host binary: it wires the engine's
// external collaborators (event backend, metadata store, item
// registry, run-completion adapter) from a YAML host config, then
// either serves the HTTP admission surface or runs the CLI's analyze
// commands against the same wiring.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/raidreplay/tobengine/admission"
	tobcmd "github.com/raidreplay/tobengine/cli/cmd"
)

func main() {
	app := &cli.App{
		Name:  "tobengine",
		Usage: "Theatre of Blood replay analysis engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the host YAML config",
				Value:   "tobengine.yaml",
				EnvVars: []string{"TOBENGINE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
		},
	}

	analyzeApp := tobcmd.NewApp(resolveDeps)
	app.Commands = append(app.Commands, analyzeApp.Commands...)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveDeps bootstraps the engine's collaborators from the
// --config flag and adapts them to the cli/cmd package's narrow
// interfaces.
func resolveDeps(c *cli.Context) (tobcmd.Deps, error) {
	rt, err := bootstrap(c.Context, c.String("config"))
	if err != nil {
		return tobcmd.Deps{}, err
	}
	return tobcmd.Deps{Engine: rt.engine, Loader: rt.loader, Logger: rt.logger}, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP admission surface",
		Action: func(c *cli.Context) error {
			rt, err := bootstrap(c.Context, c.String("config"))
			if err != nil {
				return err
			}

			handler := admission.NewHandler(rt.engine, rt.loader, rt.logger)
			mux := http.NewServeMux()
			handler.Routes(mux)

			srv := &http.Server{
				Addr:    fmt.Sprintf(":%d", rt.cfg.ListenPort),
				Handler: mux,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() { serveErr <- srv.ListenAndServe() }()

			rt.logger.Infow("admission surface listening", "port", rt.cfg.ListenPort)

			select {
			case err := <-serveErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				rt.logger.Infow("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}
