package report

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// formatEntropy renders entropy bits with two decimals.
func formatEntropy(bits float64) string {
	return strconv.FormatFloat(bits, 'f', 2, 64)
}

// formatGuesses renders a guess count with thousands separators, switching
// to scientific notation once it no longer fits an int64 comfortably.
func formatGuesses(guesses float64) string {
	if guesses < 1e15 {
		return humanize.Comma(int64(guesses))
	}
	return fmt.Sprintf("%.2e", guesses)
}

// formatSeconds renders the raw crack-time seconds for machine-readable output.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'g', 6, 64)
}
