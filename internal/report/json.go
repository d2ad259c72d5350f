package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/psawg/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...Option) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output, opts)}
}

// JSONAuditReport wraps an audit report with its class summary.
type JSONAuditReport struct {
	*model.AuditReport

	Summary        model.ClassSummary `json:"summary"`
	AverageEntropy float64            `json:"average_entropy_bits"`
}

// Write outputs the audit report with a summary block.
func (w *JSONWriter) Write(report *model.AuditReport) (int, error) {
	if w.opts.mask {
		report = report.Masked()
	}
	return w.writeJSON(&JSONAuditReport{
		AuditReport:    report,
		Summary:        report.Summary(),
		AverageEntropy: report.AverageEntropy(),
	})
}

// WriteAnalysis outputs a single analysis.
func (w *JSONWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	out := *analysis
	out.Password = w.password(analysis.Password)
	return w.writeJSON(&out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.opts.indent != "" {
		data, err = json.MarshalIndent(v, "", w.opts.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
