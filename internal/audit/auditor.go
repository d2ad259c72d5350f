package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/psawg/internal/model"
	"github.com/nao1215/psawg/internal/strength"
)

// ProgressFunc is called after each evaluation with the number of
// passwords done so far and the total. Calls may come from several
// goroutines but are serialized by the Auditor.
type ProgressFunc func(done, total int)

// Auditor evaluates password lists.
type Auditor struct {
	evaluator *strength.Evaluator

	// concurrency is the maximum number of evaluations in flight.
	concurrency int

	// source is recorded in every AuditReport.
	source string

	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithConcurrency sets the maximum number of concurrent evaluations.
// Values < 1 are ignored; the default is 1 (sequential).
func WithConcurrency(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the logger used for run-level messages.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// WithSource names the origin of the passwords (e.g. a file path).
func WithSource(source string) Option {
	return func(a *Auditor) {
		a.source = source
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Auditor) {
		a.progress = fn
	}
}

// NewAuditor creates an Auditor around evaluator.
func NewAuditor(evaluator *strength.Evaluator, opts ...Option) *Auditor {
	a := &Auditor{
		evaluator:   evaluator,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Audit evaluates every password with tokens as personal context and
// returns one row per password in input order. Empty input yields a report
// with no rows.
//
// The only error is ctx cancellation, in which case the rows evaluated so
// far are discarded.
func (a *Auditor) Audit(ctx context.Context, passwords []string, tokens []string) (*model.AuditReport, error) {
	report := model.NewAuditReport(a.source)

	a.logger.Info("starting audit",
		"run_id", report.RunID,
		"total", len(passwords),
		"concurrency", a.concurrency,
	)
	startTime := time.Now()

	// Pre-allocate so each goroutine writes only its own index.
	rows := make([]model.AuditRow, len(passwords))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, password := range passwords {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rows[i] = model.AuditRow{
				Password: password,
				Report:   a.evaluator.Evaluate(password, tokens),
			}

			if a.progress != nil {
				mu.Lock()
				done++
				a.progress(done, len(passwords))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Warn("audit cancelled", "run_id", report.RunID, "error", err)
		return nil, err
	}
	// Wait cancels gctx, so check the caller's context instead.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Rows = rows
	summary := report.Summary()
	a.logger.Info("audit complete",
		"run_id", report.RunID,
		"weak", summary.Weak,
		"medium", summary.Medium,
		"strong", summary.Strong,
		"elapsed", time.Since(startTime),
	)
	return report, nil
}
