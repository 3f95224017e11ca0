package cli

import (
	"fmt"
	"os"
	"strings"

	"docslm-cli/internal/api"
	"docslm-cli/internal/config"
	"docslm-cli/internal/logging"
	"docslm-cli/internal/state"
	"docslm-cli/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	ServerURL  string
	Commessa   string
	LogFile    string
	LogLevel   string
	Pretty     bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "docslm",
		Short:        "DocsLM terminal client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  docslm

  # Restore a commessa on startup
  docslm --commessa 24E0123

  # Scriptable commands
  docslm search 24E
  docslm collections list 24E0123
  docslm collections create 24E0123 "Report 2024" --file "spec.pdf" --file "docs/manual.pdf"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DOCSLM_CONFIG", ""), "Path to config file (YAML)")
	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "", "DocsLM server base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Commessa, "commessa", "", "Commessa code to restore on startup (TUI only)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Log file path (overrides config)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newCollectionsCmd(app))
	cmd.AddCommand(newFilesCmd(app))

	return cmd
}

// loadApp resolves config plus flag overrides and builds the shared
// collaborators for both the TUI and the scriptable commands.
func loadApp(app *App) (config.Config, *api.Client, state.Store, zerolog.Logger, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return config.Config{}, nil, state.Store{}, zerolog.Nop(), err
	}
	if app.ServerURL != "" {
		cfg.Server.BaseURL = app.ServerURL
	}
	if app.LogFile != "" {
		cfg.Log.File = app.LogFile
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}

	log, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, state.Store{}, zerolog.Nop(), err
	}

	client, err := api.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout(), log)
	if err != nil {
		return config.Config{}, nil, state.Store{}, zerolog.Nop(), err
	}

	return cfg, client, state.Store{Dir: cfg.StateDir}, log, nil
}

func runTUI(app *App) error {
	cfg, client, st, log, err := loadApp(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Config:        cfg,
		Gateway:       client,
		State:         st,
		Logger:        log,
		StartCommessa: app.Commessa,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
