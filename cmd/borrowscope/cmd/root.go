package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ikari-pl/borrowscope/internal/config"
	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/state"
	"github.com/ikari-pl/borrowscope/internal/tui"
)

var (
	cfgFile  string
	dataFlag string
	stateDir string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "borrowscope",
	Short: "Borrowscope - step through per-point borrow-checker analysis output",
	Long: `Borrowscope is a terminal inspector for the per-program-point output of
a borrow-checker analysis. Point it at the analysis output directory (or an
HTTP base URL serving it), pick a function and an execution path, and step
statement by statement while the abstract heap, active borrows, path
conditions and implied assertions stay synchronized with the current point.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataFlag != "" {
			cfg.Data = dataFlag
		}
		if stateDir != "" {
			cfg.StateDir = stateDir
		}
		return cfg.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cfg)

		store, err := state.OpenStore(cfg.StateDir, logger)
		if err != nil {
			return fmt.Errorf("opening settings store: %w", err)
		}
		defer store.Close()

		sel := store.Load()
		if cfg.Function != "" {
			sel = sel.WithFunction(cfg.Function)
		}
		// Config display defaults apply only on a truly cold start.
		if !store.HasToggles() {
			sel.HideUnwindEdges = cfg.HideUnwindEdges
			sel.HideStorageStmts = cfg.HideStorageStmts
		}

		client := data.NewClient(cfg.Data, logger)
		return tui.NewTUI(logger).Run(cmd.Context(), client, store, sel)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./borrowscope.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "analysis output directory or http(s) base URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for the settings database")
}

// newLogger builds the application logger. While the TUI owns the terminal,
// slog output goes to the configured log file or nowhere.
func newLogger(cfg *config.Config) *slog.Logger {
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
		}
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
