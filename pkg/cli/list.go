package cli

import (
	"context"
	"fmt"

	"github.com/dsfetch/dsfetch/pkg/cli/config"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var registryCfg config.Registry

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show registered datasets",
		Flags:   registryCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			reg, err := registryCfg.Load()
			if err != nil {
				return err
			}

			w := c.Root().Writer
			name := color.New(color.FgCyan, color.Bold)
			for _, ds := range reg.List() {
				name.Fprint(w, ds.Name)
				if ds.Description != "" {
					fmt.Fprintf(w, "  %s", ds.Description)
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "    url:          %s\n", ds.URL)
				fmt.Fprintf(w, "    expected_dir: %s\n", ds.ExpectedDir)
				fmt.Fprintf(w, "    destination:  %s\n", ds.Destination)
			}
			return nil
		},
	}
}
