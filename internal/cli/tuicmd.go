package cli

import (
	"github.com/spf13/cobra"

	"github.com/nctl-dev/nctl/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse domains and records interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			return tui.Run(c)
		},
	}
}
