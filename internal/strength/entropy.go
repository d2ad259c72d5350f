package strength

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// Character class sizes used for the alphabet estimate.
const (
	LowercaseAlphabetSize = 26
	UppercaseAlphabetSize = 26
	DigitAlphabetSize     = 10

	// DefaultSymbolAlphabetSize approximates printable ASCII punctuation.
	DefaultSymbolAlphabetSize = 32
)

// CharacterClasses records which character classes occur in a password.
type CharacterClasses struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Classify inspects password and reports which classes are present.
// Any rune that is not a lowercase letter, uppercase letter or digit
// counts as a symbol.
func Classify(password string) CharacterClasses {
	var c CharacterClasses
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			c.Lower = true
		case unicode.IsUpper(r):
			c.Upper = true
		case unicode.IsDigit(r):
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c
}

// Count returns the number of classes present.
func (c CharacterClasses) Count() int {
	n := 0
	for _, present := range []bool{c.Lower, c.Upper, c.Digit, c.Symbol} {
		if present {
			n++
		}
	}
	return n
}

// AlphabetSize sums the sizes of the classes present.
func (c CharacterClasses) AlphabetSize(symbolSize int) int {
	size := 0
	if c.Lower {
		size += LowercaseAlphabetSize
	}
	if c.Upper {
		size += UppercaseAlphabetSize
	}
	if c.Digit {
		size += DigitAlphabetSize
	}
	if c.Symbol {
		size += symbolSize
	}
	return size
}

// Entropy returns length * log2(alphabet size) for password, where length
// is counted in runes. It returns 0 for an empty password or an alphabet
// of size <= 1.
func Entropy(password string, symbolSize int) float64 {
	alphabet := Classify(password).AlphabetSize(symbolSize)
	if alphabet <= 1 {
		return 0
	}
	return float64(utf8.RuneCountInString(password)) * math.Log2(float64(alphabet))
}
