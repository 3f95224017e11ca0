package cli

import (
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search commesse by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			jobs, err := client.Search(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"results": jobs})
		},
	}
	return cmd
}
