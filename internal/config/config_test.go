package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nao1215/psawg/internal/strength"
	"github.com/nao1215/psawg/internal/wordlist"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default MaxSize is 50000", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxSize != 50000 {
			t.Errorf("expected MaxSize to be 50000, got %d", cfg.MaxSize)
		}
	})

	t.Run("default length filter is 6..20", func(t *testing.T) {
		t.Parallel()
		if cfg.Wordlist.MinLength != 6 || cfg.Wordlist.MaxLength != 20 {
			t.Errorf("expected length filter 6..20, got %d..%d", cfg.Wordlist.MinLength, cfg.Wordlist.MaxLength)
		}
	})

	t.Run("default report is reports/analysis.csv", func(t *testing.T) {
		t.Parallel()
		if cfg.ReportFile != "reports/analysis.csv" || cfg.ReportFormat != "csv" {
			t.Errorf("unexpected report defaults %q %q", cfg.ReportFile, cfg.ReportFormat)
		}
	})

	t.Run("default wordlist file is wordlist.txt", func(t *testing.T) {
		t.Parallel()
		if cfg.WordlistFile != "wordlist.txt" {
			t.Errorf("expected wordlist.txt, got %q", cfg.WordlistFile)
		}
	})

	t.Run("history is enabled under the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if cfg.DatabasePath() != filepath.Join(XDGDataDir(), "psawg.db") {
			t.Errorf("unexpected database path %q", cfg.DatabasePath())
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero max size",
			mutate:  func(c *Config) { c.MaxSize = 0 },
			wantErr: ErrInvalidMaxSize,
		},
		{
			name:    "no separators",
			mutate:  func(c *Config) { c.Wordlist.Separators = nil },
			wantErr: wordlist.ErrNoSeparators,
		},
		{
			name:    "inverted years",
			mutate:  func(c *Config) { c.Wordlist.Years = wordlist.YearRange{Start: 2030, End: 2020} },
			wantErr: wordlist.ErrInvalidYearRange,
		},
		{
			name:    "non-positive guess rate",
			mutate:  func(c *Config) { c.Strength.GuessesPerSecond = 0 },
			wantErr: strength.ErrInvalidOptions,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "unknown report format",
			mutate:  func(c *Config) { c.ReportFormat = "xml" },
			wantErr: ErrInvalidReportFormat,
		},
		{
			name:    "empty report file",
			mutate:  func(c *Config) { c.ReportFile = "" },
			wantErr: ErrEmptyReportFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfigApply tests merging of config file sections over defaults.
func TestConfigApply(t *testing.T) {
	t.Parallel()

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.Apply(nil); err != nil {
			t.Fatalf("Apply(nil) error = %v", err)
		}
		if cfg.MaxSize != DefaultMaxSize {
			t.Errorf("expected default max size, got %d", cfg.MaxSize)
		}
	})

	t.Run("non-zero values win", func(t *testing.T) {
		t.Parallel()

		history := false
		cfg := NewConfig()
		err := cfg.Apply(&File{
			Wordlist: WordlistSection{
				Separators: []string{"", "+"},
				Suffixes:   []string{"?"},
				Years:      &wordlist.YearRange{Start: 1990, End: 1995},
				Leet:       map[string][]string{"A": {"4"}},
				MaxSize:    100,
				Output:     "out.txt",
			},
			Strength: StrengthSection{
				GuessesPerSecond: 1e4,
				Thresholds:       &strength.Thresholds{WeakMaxScore: 0, MediumMinEntropy: 10, StrongMinScore: 3, StrongMinEntropy: 40},
			},
			Audit: AuditSection{
				Concurrency: 3,
				Format:      "json",
				History:     &history,
				DBDir:       "/tmp/psawg",
			},
		})
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		if !slices.Equal(cfg.Wordlist.Separators, []string{"", "+"}) {
			t.Errorf("separators = %q", cfg.Wordlist.Separators)
		}
		if !slices.Equal(cfg.Wordlist.Suffixes, []string{"?"}) {
			t.Errorf("suffixes = %q", cfg.Wordlist.Suffixes)
		}
		if cfg.Wordlist.Years.Start != 1990 || cfg.Wordlist.Years.End != 1995 {
			t.Errorf("years = %+v", cfg.Wordlist.Years)
		}
		if got := cfg.Wordlist.Leet['a']; !slices.Equal(got, []string{"4"}) {
			t.Errorf("leet[a] = %q", got)
		}
		if _, ok := cfg.Wordlist.Leet['e']; ok {
			t.Error("leet table should be replaced, not merged")
		}
		if cfg.Wordlist.MinLength != DefaultMinLength {
			t.Errorf("unset min length should keep default, got %d", cfg.Wordlist.MinLength)
		}
		if cfg.MaxSize != 100 || cfg.WordlistFile != "out.txt" {
			t.Errorf("max size / output = %d %q", cfg.MaxSize, cfg.WordlistFile)
		}
		if cfg.Strength.GuessesPerSecond != 1e4 || cfg.Strength.Thresholds.StrongMinScore != 3 {
			t.Errorf("strength = %+v", cfg.Strength)
		}
		if cfg.Strength.SymbolAlphabetSize != strength.DefaultSymbolAlphabetSize {
			t.Errorf("unset symbol size should keep default, got %d", cfg.Strength.SymbolAlphabetSize)
		}
		if cfg.Concurrency != 3 || cfg.ReportFormat != "json" || cfg.SaveToDB || cfg.DBDir != "/tmp/psawg" {
			t.Errorf("audit = %d %q %v %q", cfg.Concurrency, cfg.ReportFormat, cfg.SaveToDB, cfg.DBDir)
		}
		if cfg.ReportFile != DefaultReportFile {
			t.Errorf("unset output should keep default, got %q", cfg.ReportFile)
		}
	})

	t.Run("invalid leet table is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.Apply(&File{Wordlist: WordlistSection{Leet: map[string][]string{"ab": {"x"}}}})
		if !errors.Is(err, wordlist.ErrInvalidLeetMap) {
			t.Errorf("Apply() error = %v, want ErrInvalidLeetMap", err)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.psawg")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".psawg")
		content := `wordlist:
  separators: ["", "_"]
  suffixes: ["!", "123"]
  years:
    start: 2000
    end: 2004
  leet:
    a: ["4", "@"]
  minLength: 8
strength:
  thresholds:
    weakMaxScore: 1
    mediumMinEntropy: 30
    strongMinScore: 4
    strongMinEntropy: 70
audit:
  concurrency: 2
  format: markdown
  history: false
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !slices.Equal(f.Wordlist.Separators, []string{"", "_"}) {
			t.Errorf("separators = %q", f.Wordlist.Separators)
		}
		if f.Wordlist.Years == nil || f.Wordlist.Years.End != 2004 {
			t.Errorf("years = %+v", f.Wordlist.Years)
		}
		if f.Wordlist.MinLength != 8 {
			t.Errorf("minLength = %d", f.Wordlist.MinLength)
		}
		if f.Strength.Thresholds == nil || f.Strength.Thresholds.StrongMinEntropy != 70 {
			t.Errorf("thresholds = %+v", f.Strength.Thresholds)
		}
		if f.Audit.History == nil || *f.Audit.History {
			t.Error("expected history: false")
		}
		if f.Audit.Format != "markdown" {
			t.Errorf("format = %q", f.Audit.Format)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".psawg")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestLoad tests resolving defaults plus an explicit config file.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing path fails", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("explicit path is merged", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "psawg.yaml")
		if err := os.WriteFile(configPath, []byte("wordlist:\n  maxSize: 42\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.MaxSize != 42 {
			t.Errorf("MaxSize = %d, want 42", cfg.MaxSize)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("ConfigFilePath = %q", cfg.ConfigFilePath)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("audit: {}"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if XDGDataDir() == "" {
		t.Error("expected non-empty XDG data dir")
	}
	if XDGConfigDir() == "" {
		t.Error("expected non-empty XDG config dir")
	}
}
