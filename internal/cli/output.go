package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// writeOut writes strict JSON output for CLI commands. Keep it machine
// readable; hints belong in dedicated fields, not trailing prose.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	return writeJSON(cmd.OutOrStdout(), v, app.Pretty)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
