package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/psawg/internal/model"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer defines the interface for report output.
// Implementations write evaluation results in various formats.
type Writer interface {
	// Write outputs an audit report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AuditReport) (int, error)

	// WriteAnalysis outputs a single-password analysis.
	WriteAnalysis(analysis *model.Analysis) (int, error)
}

// New returns the Writer for format: csv, json, markdown, table or text.
func New(format string, output io.Writer, opts ...Option) (Writer, error) {
	switch format {
	case "csv":
		return NewCSVWriter(output, opts...), nil
	case "json":
		return NewJSONWriter(output, opts...), nil
	case "markdown", "md":
		return NewMarkdownWriter(output, opts...), nil
	case "table":
		return NewTableWriter(output, opts...), nil
	case "text":
		return NewSimpleWriter(output, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.AuditReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAnalysis outputs the analysis to all configured Writers.
func (m *MultiWriter) WriteAnalysis(analysis *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAnalysis(analysis)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures a report writer.
type Option func(*options)

type options struct {
	// mask replaces passwords with model.MaskPassword output.
	mask bool

	// indent is the JSON indentation string; empty means compact output.
	indent string
}

// WithMask hides passwords in the written report.
func WithMask(mask bool) Option {
	return func(o *options) {
		o.mask = mask
	}
}

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() Option {
	return func(o *options) {
		o.indent = "  "
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
	opts   options
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, opts []Option) baseWriter {
	b := baseWriter{output: output}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// password returns pw, masked if the writer was configured to.
func (b baseWriter) password(pw string) string {
	if b.opts.mask {
		return model.MaskPassword(pw)
	}
	return pw
}

// countingWriter tracks bytes written for writers built on encoders.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
