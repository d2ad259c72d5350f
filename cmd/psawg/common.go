package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/psawg/internal/config"
	applog "github.com/nao1215/psawg/internal/log"
	"github.com/nao1215/psawg/internal/metrics"
	"github.com/spf13/cobra"
)

// stdoutPath is the output path that selects standard output.
const stdoutPath = "-"

// getVerboseFlag retrieves the verbose flag from the command or its parents.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		// Try to get from persistent flags (parent command)
		verbose, _ = cmd.Root().PersistentFlags().GetBool("verbose") //nolint:errcheck // fallback to false on error
	}
	return verbose
}

// getStringFlag retrieves a string flag from the command or the root's persistent flags.
func getStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		value, _ = cmd.Root().PersistentFlags().GetString(name) //nolint:errcheck // fallback to empty on error
	}
	return value
}

// loadConfig builds the configuration from defaults, the config file and
// the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getStringFlag(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.MetricsFile = getStringFlag(cmd, "metrics-file")
	return cfg, nil
}

// setupLogger creates the secure logger for a command and installs it as
// the slog default.
func setupLogger(cmd *cobra.Command, verbose bool, secrets *applog.Secrets) *slog.Logger {
	logger := applog.NewSecureLogger(cmd.ErrOrStderr(), verbose, secrets)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// openOutput opens path for writing, creating parent directories.
// "-" writes to the command's standard output.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == stdoutPath {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, file.Close, nil
}

// writeMetrics writes the recorder to the metrics file when one is configured.
func writeMetrics(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		return
	}
	logger.Debug("metrics written", "path", cfg.MetricsFile)
}

// readInputs returns the user-input tokens of the --inputs flag.
func readInputs(cmd *cobra.Command) ([]string, error) {
	inputs, err := cmd.Flags().GetStringSlice("inputs")
	if err != nil {
		return nil, err
	}
	return inputs, nil
}
