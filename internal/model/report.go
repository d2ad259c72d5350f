package model

import (
	"time"

	"github.com/google/uuid"
)

// StrengthReport is the result of evaluating a single password.
// It is created once per evaluation and never modified afterwards.
type StrengthReport struct {
	// Length is the password length in runes.
	Length int `json:"length"`

	// EntropyBits is length * log2(alphabet size) over the character
	// classes present in the password. Always >= 0.
	EntropyBits float64 `json:"entropy_bits"`

	// GuessCount is the guessability scorer's estimate of the number of
	// guesses an attacker needs.
	GuessCount float64 `json:"guess_count"`

	// Score is the guessability score from 0 (trivial) to 4 (very unguessable).
	Score int `json:"score"`

	// CrackTimeSeconds is GuessCount divided by the assumed attack rate.
	CrackTimeSeconds float64 `json:"crack_time_seconds"`

	// CrackTimeDisplay is CrackTimeSeconds as a human-scale band.
	CrackTimeDisplay string `json:"crack_time_display"`

	// Class is the combined verdict.
	Class StrengthClass `json:"class"`
}

// AuditRow pairs a password with its strength report.
type AuditRow struct {
	Password string         `json:"password"`
	Report   StrengthReport `json:"report"`
}

// Analysis is the result of the analyze command: one report plus advice.
type Analysis struct {
	Password string         `json:"password"`
	Report   StrengthReport `json:"report"`

	// Advice is empty when the password is Strong.
	Advice []string `json:"advice,omitempty"`
}

// AuditReport is the ordered table produced by one audit run.
type AuditReport struct {
	// RunID identifies the run in the history database.
	RunID string `json:"run_id"`

	// Source names where the passwords came from (usually a file path).
	Source string `json:"source,omitempty"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at"`

	// Rows holds one entry per input password, in input order.
	Rows []AuditRow `json:"rows"`
}

// NewAuditReport creates an empty report with a fresh run ID.
func NewAuditReport(source string) *AuditReport {
	return &AuditReport{
		RunID:     uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now(),
		Rows:      make([]AuditRow, 0),
	}
}

// Masked returns a copy of the report with every password passed through MaskPassword.
func (r *AuditReport) Masked() *AuditReport {
	out := *r
	out.Rows = make([]AuditRow, len(r.Rows))
	for i, row := range r.Rows {
		out.Rows[i] = AuditRow{Password: MaskPassword(row.Password), Report: row.Report}
	}
	return &out
}

// ClassSummary counts audit rows per strength class.
type ClassSummary struct {
	Weak   int `json:"weak"`
	Medium int `json:"medium"`
	Strong int `json:"strong"`
}

// Total returns the number of rows counted.
func (s ClassSummary) Total() int {
	return s.Weak + s.Medium + s.Strong
}

// Count returns the number of rows with the given class.
func (s ClassSummary) Count(c StrengthClass) int {
	switch c {
	case ClassWeak:
		return s.Weak
	case ClassMedium:
		return s.Medium
	case ClassStrong:
		return s.Strong
	default:
		return 0
	}
}

// Summary counts the report rows per class.
func (r *AuditReport) Summary() ClassSummary {
	var s ClassSummary
	for _, row := range r.Rows {
		switch row.Report.Class {
		case ClassWeak:
			s.Weak++
		case ClassMedium:
			s.Medium++
		case ClassStrong:
			s.Strong++
		}
	}
	return s
}

// AverageEntropy returns the mean entropy over all rows, or 0 for an empty report.
func (r *AuditReport) AverageEntropy() float64 {
	if len(r.Rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range r.Rows {
		sum += row.Report.EntropyBits
	}
	return sum / float64(len(r.Rows))
}

// MaskPassword hides all but the first and last character of a password.
// Passwords of four runes or fewer are fully masked.
func MaskPassword(password string) string {
	runes := []rune(password)
	n := len(runes)
	if n == 0 {
		return ""
	}
	masked := make([]rune, n)
	for i := range masked {
		masked[i] = '*'
	}
	if n > 4 {
		masked[0] = runes[0]
		masked[n-1] = runes[n-1]
	}
	return string(masked)
}
