package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/psawg/internal/database"
	"github.com/nao1215/psawg/internal/report"
	"github.com/spf13/cobra"
)

// historyFormat selects how history is printed.
type historyFormat int

const (
	historyText historyFormat = iota
	historyJSON
	historyMarkdown
)

// NewHistoryCmd creates the history command.
// This command shows audit and wordlist runs stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show previous audit and wordlist runs",
		Long: `History lists the audit runs saved in the history database, most recent first.

Given a run ID (or a unique prefix of one), it prints the stored report of that
run. Passwords are always masked in the database, so stored reports only show
the first and last character of each password.

Examples:
  # List the 10 most recent audit runs
  psawg history -n 10

  # Show one run as Markdown
  psawg history 3f2c9a1b --markdown

  # List wordlist runs
  psawg history --wordlists

  # Delete a run
  psawg history 3f2c9a1b --delete`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolP("wordlists", "w", false, "List wordlist runs instead of audit runs")
	cmd.Flags().Bool("delete", false, "Delete the given run")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output in Markdown format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	wordlists, err := flags.GetBool("wordlists")
	if err != nil {
		return err
	}
	deleteRun, err := flags.GetBool("delete")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}

	format := historyText
	switch {
	case jsonOutput:
		format = historyJSON
	case markdownOutput:
		format = historyMarkdown
	}

	// Validate arguments before opening the database
	if deleteRun && len(args) == 0 {
		return errors.New("run ID is required with --delete")
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case deleteRun:
		return deleteAuditRun(ctx, out, db, args[0])
	case len(args) == 1:
		return showAuditRun(ctx, out, db, args[0], format)
	case wordlists:
		return listWordlistRuns(ctx, out, db, limit, format)
	default:
		return listAuditRuns(ctx, out, db, limit, format)
	}
}

// listAuditRuns prints the most recent audit runs.
func listAuditRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, limit int, format historyFormat) error {
	runs, err := db.ListAuditRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list audit runs: %w", err)
	}

	if format == historyJSON {
		return writeJSON(out, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No audit runs found in the database.")
		fmt.Fprintln(out, "\nUse 'psawg audit <file>' to audit a password list.")
		return nil
	}

	if format == historyMarkdown {
		md := markdown.NewMarkdown(out)
		md.H1("Audit History")
		md.PlainText("")
		rows := make([][]string, 0, len(runs))
		for _, run := range runs {
			rows = append(rows, []string{
				"`" + shortID(run.ID) + "`",
				run.CreatedAt.Local().Format("2006-01-02 15:04"),
				run.Source,
				strconv.Itoa(run.Summary.Weak),
				strconv.Itoa(run.Summary.Medium),
				strconv.Itoa(run.Summary.Strong),
				strconv.FormatFloat(run.AverageEntropy, 'f', 2, 64),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Run ID", "Date", "Source", "Weak", "Medium", "Strong", "Avg Entropy"},
			Rows:   rows,
		})
		return md.Build()
	}

	fmt.Fprintf(out, "Audit runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-8s  %-16s  %-24s  %s\n", "ID", "Date", "Source", "Summary")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))
	for _, run := range runs {
		fmt.Fprintf(out, "  %-8s  %-16s  %-24s  %s\n",
			shortID(run.ID),
			humanize.Time(run.CreatedAt),
			truncate(run.Source, 24),
			fmt.Sprintf("%s passwords: %d weak, %d medium, %d strong",
				humanize.Comma(int64(run.Summary.Total())),
				run.Summary.Weak, run.Summary.Medium, run.Summary.Strong),
		)
	}
	fmt.Fprintln(out, "\nUse 'psawg history <run-id>' to see the report of a run.")
	return nil
}

// showAuditRun prints the stored report of one audit run.
func showAuditRun(ctx context.Context, out io.Writer, db *database.HistoryDB, id string, format historyFormat) error {
	run, err := db.GetAuditRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get audit run: %w", err)
	}

	var w report.Writer
	switch format {
	case historyJSON:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case historyMarkdown:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewTableWriter(out)
	}

	if _, err := w.Write(run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// deleteAuditRun removes one audit run and its rows.
func deleteAuditRun(ctx context.Context, out io.Writer, db *database.HistoryDB, id string) error {
	run, err := db.GetAuditRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get audit run: %w", err)
	}
	if err := db.DeleteAuditRun(ctx, run.RunID); err != nil {
		return fmt.Errorf("failed to delete audit run: %w", err)
	}
	fmt.Fprintf(out, "Deleted audit run %s\n", run.RunID)
	return nil
}

// listWordlistRuns prints the most recent wordlist runs.
func listWordlistRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, limit int, format historyFormat) error {
	runs, err := db.ListWordlistRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list wordlist runs: %w", err)
	}

	if format == historyJSON {
		return writeJSON(out, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No wordlist runs found in the database.")
		return nil
	}

	fmt.Fprintf(out, "Wordlist runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-16s  %-8s  %-12s  %s\n", "ID", "Date", "Words", "Candidates", "Output")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))
	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-16s  %-8d  %-12s  %s\n",
			run.ID,
			humanize.Time(run.CreatedAt),
			run.TokenCount,
			humanize.Comma(int64(run.CandidateCount)),
			run.Output,
		)
	}
	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// shortID returns the first 8 characters of a run ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to n characters, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
