package cli

import (
	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Browse the remote files of a commessa",
	}

	cmd.AddCommand(newFilesListCmd(app))

	return cmd
}

func newFilesListCmd(app *App) *cobra.Command {
	var subpath string

	cmd := &cobra.Command{
		Use:   "list <commessa>",
		Short: "List one directory level of a commessa file tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listing, err := client.ListFiles(cmd.Context(), args[0], subpath)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listing)
		},
	}
	cmd.Flags().StringVar(&subpath, "subpath", "", "Directory below the commessa root (empty for the root)")
	return cmd
}
