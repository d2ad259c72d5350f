package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/psawg/internal/audit"
	"github.com/nao1215/psawg/internal/config"
	"github.com/nao1215/psawg/internal/database"
	applog "github.com/nao1215/psawg/internal/log"
	"github.com/nao1215/psawg/internal/metrics"
	"github.com/nao1215/psawg/internal/model"
	"github.com/nao1215/psawg/internal/report"
	"github.com/nao1215/psawg/internal/strength"
	"github.com/spf13/cobra"
)

// maxPasswordLine is the longest password line the audit reader accepts.
const maxPasswordLine = 1024 * 1024

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <file>",
		Short: "Analyze every password in a file and write a report",
		Long: `Audit reads one password per line, evaluates each of them and writes a
report with one row per password in input order. Blank lines are skipped.

The report columns are: Password, Length, Entropy_Bits, ZXCVBN_Score,
Crack_Time_Offline_Hashing_per/sec and class.

A summary of each run is saved to the history database with every password
masked, unless --no-history is given. Use "psawg history" to review runs.

Examples:
  # Write reports/analysis.csv
  psawg audit passwords.txt

  # Print a coloured table to the terminal
  psawg audit passwords.txt -f table -o -

  # Markdown report, personal words known to the attacker
  psawg audit passwords.txt -i vaishnav,2004 -f markdown -o audit.md`,
		Args: cobra.ExactArgs(1),
		RunE: runAudit,
	}

	cmd.Flags().StringSliceP("inputs", "i", nil,
		"Personal words (names, dates, pets) the attacker is assumed to know")
	cmd.Flags().StringP("output", "o", "",
		"Report output path, \"-\" for stdout (default: reports/analysis.csv)")
	cmd.Flags().StringP("format", "f", "",
		"Report format: csv, json, markdown or table (default: csv)")
	cmd.Flags().Int("concurrency", 0,
		"Number of passwords evaluated in parallel (default: number of CPUs)")
	cmd.Flags().Bool("no-history", false, "Do not save the run to the history database")
	cmd.Flags().Bool("mask", false, "Mask passwords in the report")
	cmd.Flags().Bool("progress", false, "Print progress to stderr")

	return cmd
}

// runAudit executes the audit command.
func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyAuditFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	source := args[0]
	passwords, err := readPasswordFile(source)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd)
	if err != nil {
		return err
	}

	secrets := applog.NewSecrets(passwords...)
	secrets.Add(inputs...)
	logger := setupLogger(cmd, cfg.Verbose, secrets)
	logger.Debug("passwords loaded", "source", source, "count", len(passwords))

	evaluator, err := strength.NewEvaluator(nil, cfg.Strength)
	if err != nil {
		return fmt.Errorf("invalid strength options: %w", err)
	}

	opts := []audit.Option{
		audit.WithConcurrency(cfg.Concurrency),
		audit.WithLogger(logger),
		audit.WithSource(source),
	}
	if progress, _ := cmd.Flags().GetBool("progress"); progress { //nolint:errcheck // flag defined in NewAuditCmd
		opts = append(opts, audit.WithProgress(progressPrinter(cmd.ErrOrStderr())))
	}

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	startTime := time.Now()
	result, err := audit.NewAuditor(evaluator, opts...).Audit(ctx, passwords, inputs)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	elapsed := time.Since(startTime)

	recorder := metrics.NewRecorder()
	recorder.ObserveAudit(result, elapsed)
	defer writeMetrics(cfg, recorder, logger)

	if err := writeAuditReport(cmd, cfg, result); err != nil {
		return err
	}

	if cfg.SaveToDB {
		saveAuditReport(cmd, cfg, result, logger)
	}
	return nil
}

// applyAuditFlags overrides the configuration with the flags the user set.
func applyAuditFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		output, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.ReportFile = output
	}
	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.ReportFormat = strings.ToLower(format)
	}
	if flags.Changed("concurrency") {
		n, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = n
	}
	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return err
	}
	if noHistory {
		cfg.SaveToDB = false
	}
	return nil
}

// readPasswordFile reads one password per line. Line endings are stripped
// and blank lines are skipped; surrounding spaces are part of the password.
func readPasswordFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open password file: %w", err)
	}
	defer file.Close()

	return readPasswords(file)
}

// readPasswords reads one password per line from r.
func readPasswords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPasswordLine)

	passwords := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		passwords = append(passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read password file: %w", err)
	}
	return passwords, nil
}

// writeAuditReport writes the report in the configured format and location.
func writeAuditReport(cmd *cobra.Command, cfg *config.Config, result *model.AuditReport) error {
	mask, _ := cmd.Flags().GetBool("mask") //nolint:errcheck // flag defined in NewAuditCmd

	out, closeFn, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}

	w, err := report.New(cfg.ReportFormat, out, report.WithMask(mask))
	if err != nil {
		_ = closeFn()
		return err
	}
	if _, err := w.Write(result); err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}

	if cfg.ReportFile != "" && cfg.ReportFile != stdoutPath {
		summary := result.Summary()
		fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d passwords (%d weak, %d medium, %d strong)\n",
			summary.Total(), summary.Weak, summary.Medium, summary.Strong)
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to: %s\n", cfg.ReportFile)
	}
	return nil
}

// saveAuditReport saves the report to the history database.
// Failures are logged and do not fail the command.
func saveAuditReport(cmd *cobra.Command, cfg *config.Config, result *model.AuditReport, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "path", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveAuditReport(cmd.Context(), result); err != nil {
		logger.Warn("failed to save audit run", "run_id", result.RunID, "error", err)
		return
	}
	logger.Info("audit run saved", "run_id", result.RunID, "path", db.Path())
}

// progressPrinter returns a progress callback that rewrites one line on w.
func progressPrinter(w io.Writer) audit.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(w, "\rEvaluated %d/%d", done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
