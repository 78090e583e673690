// Package main is the entry point for the Finance API server and its tooling.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-ledger/api/config"
)

// rootOptions holds the persistent flags and the configuration they resolve to.
// Subcommands receive it explicitly and read the configuration after PersistentPreRunE.
type rootOptions struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "finance",
		Short:        "Personal finance ledger API",
		Long:         "finance serves the categories and transactions API and exports transaction reports.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides LOG_LEVEL")

	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(seedCmd(opts))
	cmd.AddCommand(exportCmd(opts))

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) load() error {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	if err := setupLogging(cfg.Log.Level); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

func setupLogging(level string) error {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	}))
	slog.SetDefault(logger)
	return nil
}
