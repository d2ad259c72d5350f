package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/psawg/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs the audit report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeRows(md, report.Rows)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteAnalysis outputs a single analysis in Markdown format.
func (w *MarkdownWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Password Analysis")
	md.PlainText("")
	w.writeRows(md, []model.AuditRow{{Password: analysis.Password, Report: analysis.Report}})

	if len(analysis.Advice) > 0 {
		md.H2("Advice")
		md.PlainText("")
		md.BulletList(analysis.Advice...)
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Password Audit Report")
	md.PlainText("")

	source := report.Source
	if source == "" {
		source = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.RunID + "`"},
			{"Source", source},
			{"Date", report.CreatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Passwords", strconv.Itoa(len(report.Rows))},
			{"Average Entropy", formatEntropy(report.AverageEntropy()) + " bits"},
		},
	})
	md.PlainText("")
}

// writeSummary writes the class summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	summary := report.Summary()

	md.H2("Class Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Class", "Count"},
		Rows: [][]string{
			{"🔴 Weak", strconv.Itoa(summary.Weak)},
			{"🟡 Medium", strconv.Itoa(summary.Medium)},
			{"🟢 Strong", strconv.Itoa(summary.Strong)},
			{"**Total**", "**" + strconv.Itoa(summary.Total()) + "**"},
		},
	})
	md.PlainText("")

	if summary.Total() > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for the class distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.ClassSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password Strength Distribution"),
		piechart.WithShowData(true),
	)

	for _, c := range model.AllClasses() {
		if n := summary.Count(c); n > 0 {
			chart.LabelAndIntValue(c.String(), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert based on the weakest passwords found.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary model.ClassSummary) {
	switch {
	case summary.Weak > 0:
		md.Cautionf("%d weak password(s) found. Replace them with long, unrelated passphrases.", summary.Weak)
	case summary.Medium > 0:
		md.Warningf("%d password(s) are only of medium strength.", summary.Medium)
	case summary.Total() > 0:
		md.Tip("All audited passwords are strong.")
	default:
		md.Note("No passwords were audited.")
	}
	md.PlainText("")
}

// writeRows writes the per-password table.
func (w *MarkdownWriter) writeRows(md *markdown.Markdown, rows []model.AuditRow) {
	md.H2("Results")
	md.PlainText("")

	if len(rows) == 0 {
		md.PlainText("No passwords evaluated.")
		md.PlainText("")
		return
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		r := row.Report
		table[i] = []string{
			"`" + w.password(row.Password) + "`",
			strconv.Itoa(r.Length),
			formatEntropy(r.EntropyBits),
			strconv.Itoa(r.Score),
			formatGuesses(r.GuessCount),
			r.CrackTimeDisplay,
			r.Class.String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Password", "Length", "Entropy (bits)", "Score", "Guesses", "Crack Time", "Class"},
		Rows:   table,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [psawg](https://github.com/nao1215/psawg)*")
}
