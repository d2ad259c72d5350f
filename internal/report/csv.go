package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/nao1215/psawg/internal/model"
)

// csvHeader is the analysis CSV column set.
var csvHeader = []string{
	"Password",
	"Length",
	"Entropy_Bits",
	"ZXCVBN_Score",
	"Crack_Time_Offline_Hashing_per/sec",
	"class",
}

// CSVWriter outputs the analysis CSV: a header row then one row per password.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer, opts ...Option) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs every audit row in input order.
func (w *CSVWriter) Write(report *model.AuditReport) (int, error) {
	return w.writeRows(report.Rows)
}

// WriteAnalysis outputs a single row.
func (w *CSVWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	return w.writeRows([]model.AuditRow{{Password: analysis.Password, Report: analysis.Report}})
}

func (w *CSVWriter) writeRows(rows []model.AuditRow) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := csv.NewWriter(cw)

	if err := enc.Write(csvHeader); err != nil {
		return cw.n, err
	}
	for _, row := range rows {
		r := row.Report
		record := []string{
			w.password(row.Password),
			strconv.Itoa(r.Length),
			formatEntropy(r.EntropyBits),
			strconv.Itoa(r.Score),
			r.CrackTimeDisplay,
			r.Class.String(),
		}
		if err := enc.Write(record); err != nil {
			return cw.n, err
		}
	}
	enc.Flush()
	return cw.n, enc.Error()
}
