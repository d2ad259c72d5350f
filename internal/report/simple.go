package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/psawg/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...Option) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs one block per audited password followed by a summary.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("PASSWORD AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	if report.Source != "" {
		fmt.Fprintf(&sb, "Source:  %s\n", report.Source)
	}
	fmt.Fprintf(&sb, "Run ID:  %s\n\n", report.RunID)

	for _, row := range report.Rows {
		w.writeReport(&sb, row.Password, row.Report)
		sb.WriteString("\n")
	}

	s := report.Summary()
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&sb, "Weak: %d  Medium: %d  Strong: %d  (total %d)\n", s.Weak, s.Medium, s.Strong, s.Total())

	return io.WriteString(w.output, sb.String())
}

// WriteAnalysis outputs one report and its advice.
func (w *SimpleWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	var sb strings.Builder

	w.writeReport(&sb, analysis.Password, analysis.Report)

	if len(analysis.Advice) > 0 {
		sb.WriteString("\n[Advice]\n")
		for _, a := range analysis.Advice {
			fmt.Fprintf(&sb, "- %s\n", a)
		}
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeReport(sb *strings.Builder, password string, r model.StrengthReport) {
	fmt.Fprintf(sb, "Password:    %s\n", w.password(password))
	fmt.Fprintf(sb, "Length:      %d\n", r.Length)
	fmt.Fprintf(sb, "Entropy:     %s bits\n", formatEntropy(r.EntropyBits))
	fmt.Fprintf(sb, "Score:       %d/4\n", r.Score)
	fmt.Fprintf(sb, "Guesses:     %s\n", formatGuesses(r.GuessCount))
	fmt.Fprintf(sb, "Crack time:  %s (%s s)\n", r.CrackTimeDisplay, formatSeconds(r.CrackTimeSeconds))
	fmt.Fprintf(sb, "Class:       %s\n", ClassLabel(r.Class))
}
