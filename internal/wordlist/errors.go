package wordlist

import "errors"

// Generator configuration errors.
// They are returned as-is (or wrapped with %w) so callers can use errors.Is.
var (
	// ErrInvalidMaxSize is returned when the candidate cap is not positive.
	ErrInvalidMaxSize = errors.New("invalid max size: must be positive")

	// ErrNoSeparators is returned when the separator set is empty.
	// Use the empty string "" as a separator for plain concatenation.
	ErrNoSeparators = errors.New("invalid separators: at least one separator is required")

	// ErrNoSuffixes is returned when the suffix set is empty.
	ErrNoSuffixes = errors.New("invalid suffixes: at least one suffix is required")

	// ErrInvalidYearRange is returned when the year range is inverted or not positive.
	ErrInvalidYearRange = errors.New("invalid year range: start must be positive and not after end")

	// ErrInvalidLeetMap is returned when a leet map entry is malformed.
	ErrInvalidLeetMap = errors.New("invalid leet map")

	// ErrInvalidLengthBounds is returned when the length filter is negative or inverted.
	ErrInvalidLengthBounds = errors.New("invalid length bounds: must be non-negative and min <= max")
)
