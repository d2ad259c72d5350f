package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/adrg/xdg"
	"github.com/nao1215/psawg/internal/strength"
	"github.com/nao1215/psawg/internal/wordlist"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "psawg"

	// DefaultMaxSize is the wordlist cap used by the wordlist command.
	DefaultMaxSize = 50000

	// DefaultMinLength drops very short candidates that no password policy accepts.
	DefaultMinLength = 6

	// DefaultMaxLength drops candidates longer than typical human-chosen passwords.
	DefaultMaxLength = 20

	// DefaultWordlistFile is where the wordlist command writes its output.
	DefaultWordlistFile = "wordlist.txt"

	// DefaultReportFile is where the audit command writes its report.
	DefaultReportFile = "reports/analysis.csv"

	// DefaultReportFormat is the audit report format.
	DefaultReportFormat = "csv"

	// DatabaseFile is the history database file name inside DBDir.
	DatabaseFile = "psawg.db"
)

// ReportFormats lists the accepted audit report formats.
var ReportFormats = []string{"csv", "json", "markdown", "table"}

// Config holds all configuration options for psawg.
// It is populated from defaults, the optional config file and CLI flags,
// in that order, and passed to commands explicitly.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .psawg in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// MetricsFile, when set, receives Prometheus metrics in text format
	// after each command.
	MetricsFile string

	// Wordlist holds the candidate generation options.
	Wordlist wordlist.Options

	// MaxSize is the wordlist cap.
	MaxSize int

	// WordlistFile is the wordlist output path.
	WordlistFile string

	// Strength holds the evaluator options.
	Strength strength.Options

	// Concurrency is the number of passwords evaluated in parallel by audit.
	Concurrency int

	// ReportFile is the audit report output path.
	ReportFile string

	// ReportFormat is one of ReportFormats.
	ReportFormat string

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to XDG data directory (~/.local/share/psawg on Linux).
	DBDir string

	// SaveToDB indicates whether audit summaries are saved to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	wl := wordlist.DefaultOptions()
	wl.MinLength = DefaultMinLength
	wl.MaxLength = DefaultMaxLength

	return &Config{
		Wordlist:     wl,
		MaxSize:      DefaultMaxSize,
		WordlistFile: DefaultWordlistFile,
		Strength:     strength.DefaultOptions(),
		Concurrency:  runtime.NumCPU(),
		ReportFile:   DefaultReportFile,
		ReportFormat: DefaultReportFormat,
		DBDir:        XDGDataDir(),
		SaveToDB:     true,
	}
}

// DatabasePath returns the history database path inside DBDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DBDir, DatabaseFile)
}

// XDGDataDir returns the XDG data directory for psawg.
// On Linux: ~/.local/share/psawg
// On macOS: ~/Library/Application Support/psawg
// On Windows: %LOCALAPPDATA%\psawg
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for psawg.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.MaxSize <= 0 {
		return ErrInvalidMaxSize
	}
	if err := c.Wordlist.Validate(); err != nil {
		return fmt.Errorf("wordlist: %w", err)
	}
	if err := c.Strength.Validate(); err != nil {
		return fmt.Errorf("strength: %w", err)
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if !slices.Contains(ReportFormats, c.ReportFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, c.ReportFormat)
	}
	if c.ReportFile == "" {
		return ErrEmptyReportFile
	}
	return nil
}
