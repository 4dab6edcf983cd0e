package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/raidreplay/tobengine/cli/tui"
)

func inspectCommand(resolve Resolver) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "launch the interactive replay inspector",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "uuid", Usage: "challenge UUID", Required: true},
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

			challenge, err := deps.Loader.Load(c.Context, id)
			if err != nil {
				return fmt.Errorf("load challenge: %w", err)
			}

			return tui.Run(challenge)
		},
	}
}
