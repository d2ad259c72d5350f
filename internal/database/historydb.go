package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/psawg/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "psawg.db"

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	// ErrRunNotFound is returned when no audit run matches the given ID.
	ErrRunNotFound = errors.New("audit run not found")

	// ErrAmbiguousRunID is returned when an ID prefix matches several runs.
	ErrAmbiguousRunID = errors.New("audit run ID prefix matches more than one run")
)

// HistoryDB provides SQLite-based storage for audit and wordlist runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc&_pragma=foreign_keys(1)"
	} else {
		dsn = dbPath + "?mode=rw&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per audit command invocation
	CREATE TABLE IF NOT EXISTS audit_runs (
		id TEXT PRIMARY KEY,
		source TEXT,
		created_at TEXT NOT NULL,
		total INTEGER NOT NULL,
		weak INTEGER NOT NULL,
		medium INTEGER NOT NULL,
		strong INTEGER NOT NULL,
		avg_entropy REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_runs_created ON audit_runs(created_at);

	-- Per-password results; passwords are stored masked
	CREATE TABLE IF NOT EXISTS audit_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES audit_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		masked_password TEXT NOT NULL,
		length INTEGER NOT NULL,
		entropy_bits REAL NOT NULL,
		guess_count REAL NOT NULL,
		score INTEGER NOT NULL,
		crack_time_seconds REAL NOT NULL,
		crack_time_display TEXT NOT NULL,
		class TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_results_run ON audit_results(run_id, position);

	-- One row per wordlist command invocation
	CREATE TABLE IF NOT EXISTS wordlist_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		token_count INTEGER NOT NULL,
		candidate_count INTEGER NOT NULL,
		max_size INTEGER NOT NULL,
		output TEXT
	);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAuditReport stores an audit run and its rows in one transaction.
// Passwords are masked with model.MaskPassword before they are written.
func (hdb *HistoryDB) SaveAuditReport(ctx context.Context, report *model.AuditReport) (err error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	summary := report.Summary()
	_, err = tx.ExecContext(ctx, `
	INSERT INTO audit_runs (id, source, created_at, total, weak, medium, strong, avg_entropy)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID,
		report.Source,
		report.CreatedAt.UTC().Format(timeLayout),
		summary.Total(),
		summary.Weak,
		summary.Medium,
		summary.Strong,
		report.AverageEntropy(),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO audit_results (run_id, position, masked_password, length, entropy_bits,
		guess_count, score, crack_time_seconds, crack_time_display, class)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range report.Rows {
		r := row.Report
		if _, err = stmt.ExecContext(ctx,
			report.RunID,
			i,
			model.MaskPassword(row.Password),
			r.Length,
			r.EntropyBits,
			r.GuessCount,
			r.Score,
			r.CrackTimeSeconds,
			r.CrackTimeDisplay,
			r.Class.String(),
		); err != nil {
			return fmt.Errorf("failed to save audit result %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit run: %w", err)
	}
	return nil
}

// AuditRunMetadata contains summary information about an audit run.
// This is used for listing history without loading every result row.
type AuditRunMetadata struct {
	ID             string             `json:"id"`
	Source         string             `json:"source"`
	CreatedAt      time.Time          `json:"created_at"`
	Summary        model.ClassSummary `json:"summary"`
	AverageEntropy float64            `json:"average_entropy_bits"`
}

// ListAuditRuns returns the most recent runs first. limit <= 0 means no limit.
func (hdb *HistoryDB) ListAuditRuns(ctx context.Context, limit int) ([]AuditRunMetadata, error) {
	query := `
	SELECT id, source, created_at, weak, medium, strong, avg_entropy
	FROM audit_runs
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit runs: %w", err)
	}
	defer rows.Close()

	results := make([]AuditRunMetadata, 0)
	for rows.Next() {
		var meta AuditRunMetadata
		var source sql.NullString
		var createdAt string
		if err := rows.Scan(&meta.ID, &source, &createdAt,
			&meta.Summary.Weak, &meta.Summary.Medium, &meta.Summary.Strong, &meta.AverageEntropy); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		meta.Source = source.String
		meta.CreatedAt = parseTimestamp(createdAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetAuditRun loads a stored run with its masked rows. id may be a unique
// prefix of the run ID.
func (hdb *HistoryDB) GetAuditRun(ctx context.Context, id string) (*model.AuditReport, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty ID", ErrRunNotFound)
	}

	// Compared literally, so '%' and '_' in id are not wildcards.
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, source, created_at FROM audit_runs
	WHERE substr(id, 1, length(?)) = ?
	LIMIT 2
	`, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit run: %w", err)
	}

	var matches []model.AuditReport
	for rows.Next() {
		var r model.AuditReport
		var source sql.NullString
		var createdAt string
		if err := rows.Scan(&r.RunID, &source, &createdAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		r.Source = source.String
		r.CreatedAt = parseTimestamp(createdAt)
		matches = append(matches, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
	}

	report := &matches[0]
	report.Rows, err = hdb.auditRows(ctx, report.RunID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (hdb *HistoryDB) auditRows(ctx context.Context, runID string) ([]model.AuditRow, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT masked_password, length, entropy_bits, guess_count, score,
		crack_time_seconds, crack_time_display, class
	FROM audit_results
	WHERE run_id = ?
	ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit results: %w", err)
	}
	defer rows.Close()

	out := make([]model.AuditRow, 0)
	for rows.Next() {
		var row model.AuditRow
		var class string
		r := &row.Report
		if err := rows.Scan(&row.Password, &r.Length, &r.EntropyBits, &r.GuessCount, &r.Score,
			&r.CrackTimeSeconds, &r.CrackTimeDisplay, &class); err != nil {
			return nil, fmt.Errorf("failed to scan audit result: %w", err)
		}
		if r.Class, err = model.ParseStrengthClass(class); err != nil {
			return nil, fmt.Errorf("failed to parse stored class: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteAuditRun removes a run and its results.
func (hdb *HistoryDB) DeleteAuditRun(ctx context.Context, id string) error {
	res, err := hdb.db.ExecContext(ctx, `DELETE FROM audit_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete audit run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// WordlistRun records one wordlist generation.
type WordlistRun struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	TokenCount     int       `json:"token_count"`
	CandidateCount int       `json:"candidate_count"`
	MaxSize        int       `json:"max_size"`
	Output         string    `json:"output"`
}

// SaveWordlistRun stores a wordlist run and returns its ID. Tokens themselves
// are never stored.
func (hdb *HistoryDB) SaveWordlistRun(ctx context.Context, run WordlistRun) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := hdb.db.ExecContext(ctx, `
	INSERT INTO wordlist_runs (created_at, token_count, candidate_count, max_size, output)
	VALUES (?, ?, ?, ?, ?)
	`,
		run.CreatedAt.UTC().Format(timeLayout),
		run.TokenCount,
		run.CandidateCount,
		run.MaxSize,
		run.Output,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save wordlist run: %w", err)
	}
	return res.LastInsertId()
}

// ListWordlistRuns returns the most recent wordlist runs first. limit <= 0 means no limit.
func (hdb *HistoryDB) ListWordlistRuns(ctx context.Context, limit int) ([]WordlistRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, created_at, token_count, candidate_count, max_size, output
	FROM wordlist_runs
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list wordlist runs: %w", err)
	}
	defer rows.Close()

	out := make([]WordlistRun, 0)
	for rows.Next() {
		var run WordlistRun
		var createdAt string
		var output sql.NullString
		if err := rows.Scan(&run.ID, &createdAt, &run.TokenCount, &run.CandidateCount, &run.MaxSize, &output); err != nil {
			return nil, fmt.Errorf("failed to scan wordlist run: %w", err)
		}
		run.CreatedAt = parseTimestamp(createdAt)
		run.Output = output.String
		out = append(out, run)
	}
	return out, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,                // Format written by this package
	time.RFC3339Nano,          // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
