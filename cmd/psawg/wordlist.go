package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/psawg/internal/config"
	"github.com/nao1215/psawg/internal/database"
	applog "github.com/nao1215/psawg/internal/log"
	"github.com/nao1215/psawg/internal/metadata"
	"github.com/nao1215/psawg/internal/metrics"
	"github.com/nao1215/psawg/internal/report"
	"github.com/nao1215/psawg/internal/wordlist"
	"github.com/spf13/cobra"
)

// NewWordlistCmd creates the wordlist command.
func NewWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist [word...]",
		Short: "Generate a targeted wordlist from personal metadata",
		Long: `Wordlist builds password candidates from personal metadata such as names,
birth dates, pets and places. Candidates are emitted most likely first:

  1. each word as given, lowercase, UPPERCASE and Capitalized
  2. leetspeak variants (a->4, e->3, o->0, ...)
  3. pairs of words joined with "", "_", "-" and "."
  4. every candidate above followed by a common suffix or a recent year

Candidates outside the length range are dropped and generation stops at
--max candidates.

Metadata can be given as arguments, with --meta, or extracted from
JSON/YAML files, image EXIF tags and saved HTML pages.

Only use this command for authorized security assessments.

Examples:
  # Words as arguments
  psawg wordlist vaishnav 2004 tommy

  # Metadata from a profile file and a photo
  psawg wordlist --meta-file profile.yaml --meta-exif photo.jpg -o target.txt

  # Short list on stdout
  psawg wordlist --meta vaishnav --max 100 -o -`,
		RunE: runWordlist,
	}

	cmd.Flags().StringSlice("meta", nil, "Metadata words (repeatable, comma separated)")
	cmd.Flags().StringSlice("meta-file", nil, "JSON or YAML file whose values are metadata words")
	cmd.Flags().StringSlice("meta-exif", nil, "Image whose EXIF tags are metadata words")
	cmd.Flags().StringSlice("meta-html", nil, "Saved HTML page whose title and meta tags are metadata words")
	cmd.Flags().Int("min-len", config.DefaultMinLength, "Minimum candidate length")
	cmd.Flags().Int("max-len", config.DefaultMaxLength, "Maximum candidate length")
	cmd.Flags().Int("max", config.DefaultMaxSize, "Maximum number of candidates")
	cmd.Flags().StringP("output", "o", "", "Output path, \"-\" for stdout (default: wordlist.txt)")
	cmd.Flags().Bool("no-history", false, "Do not record the run in the history database")

	return cmd
}

// runWordlist executes the wordlist command.
func runWordlist(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyWordlistFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	src, err := metadataSources(cmd, args)
	if err != nil {
		return err
	}
	tokens, err := metadata.Collect(src)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose, applog.NewSecrets(tokens...))
	if len(tokens) == 0 {
		logger.Warn("no metadata given, the wordlist will be empty")
	}
	logger.Debug("metadata collected", "tokens", tokens, "count", len(tokens))

	generator, err := wordlist.NewGenerator(cfg.Wordlist)
	if err != nil {
		return fmt.Errorf("invalid wordlist options: %w", err)
	}

	out, closeFn, err := openOutput(cmd, cfg.WordlistFile)
	if err != nil {
		return err
	}
	count, err := report.WriteWordlist(out, generator.All(tokens, cfg.MaxSize))
	if err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to write wordlist: %w", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("failed to close wordlist: %w", err)
	}

	if cfg.WordlistFile != "" && cfg.WordlistFile != stdoutPath {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d candidates from %d words\n", count, len(tokens))
		fmt.Fprintf(cmd.OutOrStdout(), "Wordlist saved to: %s\n", cfg.WordlistFile)
	}

	recorder := metrics.NewRecorder()
	recorder.ObserveWordlist(count)
	defer writeMetrics(cfg, recorder, logger)

	if cfg.SaveToDB {
		saveWordlistRun(cmd.Context(), cfg, database.WordlistRun{
			TokenCount:     len(tokens),
			CandidateCount: count,
			MaxSize:        cfg.MaxSize,
			Output:         cfg.WordlistFile,
		}, logger)
	}
	return nil
}

// applyWordlistFlags overrides the configuration with the flags the user set.
func applyWordlistFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	for name, dst := range map[string]*int{
		"min-len": &cfg.Wordlist.MinLength,
		"max-len": &cfg.Wordlist.MaxLength,
		"max":     &cfg.MaxSize,
	} {
		if !flags.Changed(name) {
			continue
		}
		n, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*dst = n
	}
	if flags.Changed("output") {
		output, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.WordlistFile = output
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

// metadataSources builds the metadata sources from the arguments and flags.
func metadataSources(cmd *cobra.Command, args []string) (metadata.Sources, error) {
	var src metadata.Sources
	flags := cmd.Flags()

	words, err := flags.GetStringSlice("meta")
	if err != nil {
		return src, err
	}
	src.Words = append(append(src.Words, args...), words...)

	if src.Files, err = flags.GetStringSlice("meta-file"); err != nil {
		return src, err
	}
	if src.Images, err = flags.GetStringSlice("meta-exif"); err != nil {
		return src, err
	}
	if src.Pages, err = flags.GetStringSlice("meta-html"); err != nil {
		return src, err
	}
	return src, nil
}

// saveWordlistRun records the run in the history database.
// Failures are logged and do not fail the command.
func saveWordlistRun(ctx context.Context, cfg *config.Config, run database.WordlistRun, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "path", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveWordlistRun(ctx, run)
	if err != nil {
		logger.Warn("failed to save wordlist run", "error", err)
		return
	}
	logger.Debug("wordlist run saved", "id", id, "path", db.Path())
}
