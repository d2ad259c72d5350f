package wordlist

import (
	"fmt"
	"slices"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultYearsBack is how many years before the current one the default
	// year range starts.
	DefaultYearsBack = 10

	// DefaultYearsAhead is how many years after the current one the default
	// year range ends.
	DefaultYearsAhead = 2
)

// YearRange is an inclusive range of years appended to candidates.
type YearRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Validate checks that the range is positive and not inverted.
func (r YearRange) Validate() error {
	if r.Start <= 0 || r.End < r.Start {
		return fmt.Errorf("%w: %d-%d", ErrInvalidYearRange, r.Start, r.End)
	}
	return nil
}

// Years returns the years of the range in ascending order.
func (r YearRange) Years() []string {
	if r.End < r.Start {
		return nil
	}
	years := make([]string, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// RecentYears returns a range from yearsBack years before now to yearsAhead
// years after now.
func RecentYears(now time.Time, yearsBack, yearsAhead int) YearRange {
	y := now.Year()
	return YearRange{Start: y - yearsBack, End: y + yearsAhead}
}

// LeetMap maps a lowercase character to its leetspeak substitutes.
// The first substitute of each character is the preferred one.
type LeetMap map[rune][]string

// DefaultLeetMap returns the built-in substitution table.
func DefaultLeetMap() LeetMap {
	return LeetMap{
		'a': {"4", "@"},
		'b': {"8"},
		'e': {"3"},
		'g': {"9"},
		'i': {"1", "!"},
		'o': {"0"},
		's': {"5", "$"},
		't': {"7"},
	}
}

// ParseLeetMap converts a string-keyed table (as found in config files)
// into a LeetMap. Keys must be single characters; they are lowercased.
func ParseLeetMap(table map[string][]string) (LeetMap, error) {
	out := make(LeetMap, len(table))
	for key, subs := range table {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: key %q must be a single character", ErrInvalidLeetMap, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		out[unicode.ToLower(r)] = slices.Clone(subs)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that every entry has at least one non-empty substitute.
func (m LeetMap) Validate() error {
	for key, subs := range m {
		if len(subs) == 0 {
			return fmt.Errorf("%w: %q has no substitutes", ErrInvalidLeetMap, key)
		}
		for _, s := range subs {
			if s == "" {
				return fmt.Errorf("%w: %q has an empty substitute", ErrInvalidLeetMap, key)
			}
		}
	}
	return nil
}

// keys returns the map keys in ascending order so passes are deterministic.
func (m LeetMap) keys() []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Options configures a Generator.
type Options struct {
	// Separators join two token variants. The empty string means plain
	// concatenation. At least one entry is required.
	Separators []string

	// Suffixes are appended to every base candidate. At least one entry is required.
	Suffixes []string

	// Years are appended to every base candidate.
	Years YearRange

	// Leet is the substitution table. An empty table disables the leet stage.
	Leet LeetMap

	// MinLength drops candidates shorter than this many runes. 0 disables the check.
	MinLength int

	// MaxLength drops candidates longer than this many runes. 0 disables the check.
	MaxLength int
}

// DefaultOptions returns the built-in generation options, with the year
// range anchored on the current year.
func DefaultOptions() Options {
	return Options{
		Separators: []string{"", "_", "-", "."},
		Suffixes:   []string{"!", "@", "#", "123", "1234", "12345", "!!", "1", "01", "007"},
		Years:      RecentYears(time.Now(), DefaultYearsBack, DefaultYearsAhead),
		Leet:       DefaultLeetMap(),
	}
}

// Validate checks the options and returns the first problem found.
func (o Options) Validate() error {
	if len(o.Separators) == 0 {
		return ErrNoSeparators
	}
	if len(o.Suffixes) == 0 {
		return ErrNoSuffixes
	}
	if err := o.Years.Validate(); err != nil {
		return err
	}
	if err := o.Leet.Validate(); err != nil {
		return err
	}
	if o.MinLength < 0 || o.MaxLength < 0 || (o.MaxLength > 0 && o.MinLength > o.MaxLength) {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidLengthBounds, o.MinLength, o.MaxLength)
	}
	return nil
}

// tooLong reports whether a string of n runes exceeds MaxLength.
func (o Options) tooLong(n int) bool {
	return o.MaxLength > 0 && n > o.MaxLength
}

// pruneLong returns variants without the strings longer than MaxLength.
func (o Options) pruneLong(variants [][]string) [][]string {
	if o.MaxLength <= 0 {
		return variants
	}
	out := make([][]string, len(variants))
	for i, vs := range variants {
		out[i] = slices.DeleteFunc(slices.Clone(vs), func(v string) bool {
			return o.tooLong(utf8.RuneCountInString(v))
		})
	}
	return out
}

// fits reports whether candidate satisfies the length filter.
func (o Options) fits(candidate string) bool {
	n := utf8.RuneCountInString(candidate)
	if o.MinLength > 0 && n < o.MinLength {
		return false
	}
	if o.MaxLength > 0 && n > o.MaxLength {
		return false
	}
	return true
}
