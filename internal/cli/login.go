package cli

import (
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and print the resolved user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			user, err := client.Login(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, user)
		},
	}
	return cmd
}
