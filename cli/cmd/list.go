package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

func listProgramsCommand(resolve Resolver) *cli.Command {
	return &cli.Command{
		Name:  "list-programs",
		Usage: "list loaded programs and their analyzer DAGs",
		Action: func(c *cli.Context) error {
			deps, err := resolve(c)
			if err != nil {
				return err
			}

			programs := deps.Engine.LoadedPrograms()

			names := make([]string, 0, len(programs))
			for name := range programs {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				def := programs[name]
				fmt.Fprintf(c.App.Writer, "%s\n", name)

				logical := make([]string, 0, len(def.Analyzers))
				for l := range def.Analyzers {
					logical = append(logical, l)
				}
				sort.Strings(logical)

				for _, l := range logical {
					a := def.Analyzers[l]
					if len(a.Dependencies) == 0 {
						fmt.Fprintf(c.App.Writer, "  %s (%s)\n", l, a.Implementation)
						continue
					}
					fmt.Fprintf(c.App.Writer, "  %s (%s) <- %s\n", l, a.Implementation, strings.Join(a.Dependencies, ", "))
				}
			}
			return nil
		},
	}
}
