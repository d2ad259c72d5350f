package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nao1215/psawg/internal/model"
)

// TableWriter outputs a terminal table with coloured class labels.
// Colours are dropped automatically when the output is not a terminal.
type TableWriter struct {
	baseWriter
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...Option) *TableWriter {
	return &TableWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs every row then a one-line class summary.
func (w *TableWriter) Write(report *model.AuditReport) (int, error) {
	cw := &countingWriter{w: w.output}
	if err := w.render(cw, report.Rows); err != nil {
		return cw.n, err
	}

	s := report.Summary()
	_, err := fmt.Fprintf(cw, "%s: %d  %s: %d  %s: %d  (total %d)\n",
		ClassLabel(model.ClassWeak), s.Weak,
		ClassLabel(model.ClassMedium), s.Medium,
		ClassLabel(model.ClassStrong), s.Strong,
		s.Total())
	return cw.n, err
}

// WriteAnalysis outputs a single-row table.
func (w *TableWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	cw := &countingWriter{w: w.output}
	err := w.render(cw, []model.AuditRow{{Password: analysis.Password, Report: analysis.Report}})
	return cw.n, err
}

func (w *TableWriter) render(out io.Writer, rows []model.AuditRow) error {
	table := tablewriter.NewWriter(out)
	table.Header("Password", "Length", "Entropy", "Score", "Guesses", "Crack Time", "Class")

	for _, row := range rows {
		r := row.Report
		if err := table.Append([]string{
			w.password(row.Password),
			strconv.Itoa(r.Length),
			formatEntropy(r.EntropyBits),
			strconv.Itoa(r.Score),
			formatGuesses(r.GuessCount),
			r.CrackTimeDisplay,
			ClassLabel(r.Class),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// ClassLabel returns the class name coloured red, yellow or green.
func ClassLabel(c model.StrengthClass) string {
	switch c {
	case model.ClassWeak:
		return color.New(color.FgRed, color.Bold).Sprint(c.String())
	case model.ClassMedium:
		return color.New(color.FgYellow).Sprint(c.String())
	case model.ClassStrong:
		return color.New(color.FgGreen).Sprint(c.String())
	default:
		return c.String()
	}
}
