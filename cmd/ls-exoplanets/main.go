// Command ls-exoplanets is a terminal explorer for Kepler exoplanet candidates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-exoplanets/internal/config"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/logging"
	"github.com/litescript/ls-exoplanets/internal/state"
	"github.com/litescript/ls-exoplanets/internal/ui"
	"github.com/litescript/ls-exoplanets/internal/version"
)

// Global flags
var (
	configPath string
	endpoint   string
	timeout    time.Duration
	limit      int
	seed       uint64
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "ls-exoplanets",
	Short: "Explore Kepler exoplanet candidates in the terminal",
	Long: `ls-exoplanets fetches the Kepler Objects of Interest table from the
NASA Exoplanet Archive and lays the planets out as an animated spiral.

Run without arguments to start the interactive explorer.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVar(&endpoint, "endpoint", "", "Archive query URL")
	f.DurationVar(&timeout, "timeout", 0, "Archive request timeout (e.g. 30s)")
	f.IntVar(&limit, "limit", 0, "Max planets placed in the universe (0 places all)")
	f.Uint64Var(&seed, "seed", 0, "Random seed for layout and derived metrics (0 is random)")
	f.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(summaryCmd, exportCmd, cardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("limit") {
		cfg.Limit = limit
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. The TUI owns the terminal, so it
// only logs when a file is configured; headless commands log to stderr.
func newLogger(cfg config.Config, tui bool) (*logging.Logger, func(), error) {
	if cfg.Logging.File == "" {
		if tui {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(logging.ParseLevel(cfg.Logging.Level)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.New(logging.ParseLevel(cfg.Logging.Level))
	logger.SetOutput(f)
	return logger, func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newCatalog(cfg config.Config, logger *logging.Logger) *exo.Catalog {
	fetcher := exo.NewFetcher(
		exo.WithURL(cfg.Endpoint),
		exo.WithTimeout(cfg.Timeout),
		exo.WithLogger(logger),
	)
	return exo.NewCatalog(fetcher, logger)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	stateMgr := state.NewManager(state.DefaultConfig())
	logger = logger.With("session", stateMgr.SessionID())
	logger.Info("Starting ls-exoplanets %s", version.Version)

	model := ui.New(newCatalog(cfg, logger), stateMgr, logger, ui.Options{
		Context: ctx,
		FPS:     cfg.FPS,
		Stars:   cfg.Stars,
		Limit:   cfg.Limit,
		Seed:    cfg.Seed,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	snap := stateMgr.Snapshot()
	logger.Info("Session ended with %d planets discovered", snap.Session.DiscoveredCount())
	return nil
}
