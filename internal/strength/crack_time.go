package strength

import (
	"fmt"
	"math"
)

// DefaultGuessesPerSecond models an offline attack against a fast hash.
const DefaultGuessesPerSecond = 1e10

// Time units for crack-time display bands.
const (
	minute  = 60.0
	hour    = 60 * minute
	day     = 24 * hour
	month   = 31 * day
	year    = 12 * month
	century = 100 * year
)

// CrackTimeSeconds converts a guess count to seconds at the given rate.
func CrackTimeSeconds(guesses, guessesPerSecond float64) float64 {
	if guessesPerSecond <= 0 {
		return math.Inf(1)
	}
	return guesses / guessesPerSecond
}

// DisplayCrackTime renders seconds as a human-scale band such as
// "3 hours" or "centuries".
func DisplayCrackTime(seconds float64) string {
	switch {
	case seconds < 1:
		return "less than a second"
	case seconds < minute:
		return plural(seconds, "second")
	case seconds < hour:
		return plural(seconds/minute, "minute")
	case seconds < day:
		return plural(seconds/hour, "hour")
	case seconds < month:
		return plural(seconds/day, "day")
	case seconds < year:
		return plural(seconds/month, "month")
	case seconds < century:
		return plural(seconds/year, "year")
	default:
		return "centuries"
	}
}

func plural(value float64, unit string) string {
	n := int64(math.Round(value))
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
