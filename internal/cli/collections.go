package cli

import (
	"github.com/spf13/cobra"
)

func newCollectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage notebook collections of a commessa",
	}

	cmd.AddCommand(newCollectionsListCmd(app))
	cmd.AddCommand(newCollectionsCreateCmd(app))
	cmd.AddCommand(newCollectionsFilesCmd(app))

	return cmd
}

func newCollectionsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <commessa>",
		Short: "List the collections of a commessa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cols, err := client.ListCollections(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"collections": cols})
		},
	}
	return cmd
}

func newCollectionsCreateCmd(app *App) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "create <commessa> <name>",
		Short: "Create a collection from commessa files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.CreateCollection(cmd.Context(), args[0], args[1], files); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"success": true})
		},
	}
	cmd.Flags().StringArrayVar(&files, "file", nil, "Commessa-relative file path to include (repeatable)")
	return cmd
}

func newCollectionsFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files <commessa> <collection>",
		Short: "List the files indexed in a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, _, _, err := loadApp(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			files, err := client.ListCollectionFiles(cmd.Context(), args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"files": files})
		},
	}
	return cmd
}
