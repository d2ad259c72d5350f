package model

import (
	"fmt"
	"strings"
)

// StrengthClass is the three-tier strength verdict for a password.
//
// The values are ordered: Weak < Medium < Strong. Comparisons between
// classes rely on this ordering, so new values must keep it.
type StrengthClass int

const (
	// ClassWeak marks a password that falls to a targeted or dictionary
	// attack, or whose character-class entropy is too low.
	ClassWeak StrengthClass = iota

	// ClassMedium marks a password that resists casual guessing but not a
	// determined offline attack.
	ClassMedium

	// ClassStrong marks a password with both a top guessability score and
	// a large search space.
	ClassStrong
)

// String returns the label used in reports ("Weak", "Medium", "Strong").
func (c StrengthClass) String() string {
	switch c {
	case ClassWeak:
		return "Weak"
	case ClassMedium:
		return "Medium"
	case ClassStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// ParseStrengthClass converts a label back into a StrengthClass.
// Matching is case-insensitive.
func ParseStrengthClass(s string) (StrengthClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weak":
		return ClassWeak, nil
	case "medium":
		return ClassMedium, nil
	case "strong":
		return ClassStrong, nil
	default:
		return ClassWeak, fmt.Errorf("unknown strength class %q", s)
	}
}

// MarshalText encodes the class as its label so JSON and YAML output stay readable.
func (c StrengthClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (c *StrengthClass) UnmarshalText(text []byte) error {
	parsed, err := ParseStrengthClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AllClasses returns every class from weakest to strongest.
func AllClasses() []StrengthClass {
	return []StrengthClass{ClassWeak, ClassMedium, ClassStrong}
}
