package config

import (
	"fmt"

	"github.com/nao1215/psawg/internal/strength"
	"github.com/nao1215/psawg/internal/wordlist"
)

// File represents the structure of the .psawg configuration file.
// Every field is optional; zero values keep the built-in defaults.
type File struct {
	Wordlist WordlistSection `yaml:"wordlist,omitempty"`
	Strength StrengthSection `yaml:"strength,omitempty"`
	Audit    AuditSection    `yaml:"audit,omitempty"`
}

// WordlistSection overrides wordlist generation.
type WordlistSection struct {
	// Separators replaces the separator set. Quote "" to keep plain concatenation.
	Separators []string `yaml:"separators,omitempty"`

	// Suffixes replaces the suffix set.
	Suffixes []string `yaml:"suffixes,omitempty"`

	// Years replaces the year range.
	Years *wordlist.YearRange `yaml:"years,omitempty"`

	// Leet replaces the substitution table. Keys are single characters.
	Leet map[string][]string `yaml:"leet,omitempty"`

	MinLength int `yaml:"minLength,omitempty"`
	MaxLength int `yaml:"maxLength,omitempty"`
	MaxSize   int `yaml:"maxSize,omitempty"`

	// Output is the default wordlist path.
	Output string `yaml:"output,omitempty"`
}

// StrengthSection overrides the evaluator.
type StrengthSection struct {
	SymbolAlphabetSize int                  `yaml:"symbolAlphabetSize,omitempty"`
	GuessesPerSecond   float64              `yaml:"guessesPerSecond,omitempty"`
	Thresholds         *strength.Thresholds `yaml:"thresholds,omitempty"`
}

// AuditSection overrides the audit command.
type AuditSection struct {
	Concurrency int    `yaml:"concurrency,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Format      string `yaml:"format,omitempty"`

	// History disables the history database when set to false.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// Apply merges the file over c. Non-zero values in f win.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}

	wl := f.Wordlist
	if len(wl.Separators) > 0 {
		c.Wordlist.Separators = wl.Separators
	}
	if len(wl.Suffixes) > 0 {
		c.Wordlist.Suffixes = wl.Suffixes
	}
	if wl.Years != nil {
		c.Wordlist.Years = *wl.Years
	}
	if len(wl.Leet) > 0 {
		leet, err := wordlist.ParseLeetMap(wl.Leet)
		if err != nil {
			return fmt.Errorf("wordlist.leet: %w", err)
		}
		c.Wordlist.Leet = leet
	}
	if wl.MinLength > 0 {
		c.Wordlist.MinLength = wl.MinLength
	}
	if wl.MaxLength > 0 {
		c.Wordlist.MaxLength = wl.MaxLength
	}
	if wl.MaxSize > 0 {
		c.MaxSize = wl.MaxSize
	}
	if wl.Output != "" {
		c.WordlistFile = wl.Output
	}

	st := f.Strength
	if st.SymbolAlphabetSize > 0 {
		c.Strength.SymbolAlphabetSize = st.SymbolAlphabetSize
	}
	if st.GuessesPerSecond > 0 {
		c.Strength.GuessesPerSecond = st.GuessesPerSecond
	}
	if st.Thresholds != nil {
		c.Strength.Thresholds = *st.Thresholds
	}

	au := f.Audit
	if au.Concurrency > 0 {
		c.Concurrency = au.Concurrency
	}
	if au.Output != "" {
		c.ReportFile = au.Output
	}
	if au.Format != "" {
		c.ReportFormat = au.Format
	}
	if au.History != nil {
		c.SaveToDB = *au.History
	}
	if au.DBDir != "" {
		c.DBDir = au.DBDir
	}
	return nil
}
