package strength

import (
	"math"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// Guessability is the output of a Scorer.
type Guessability struct {
	// GuessCount estimates the guesses needed to find the password. Always >= 1.
	GuessCount float64

	// Score rates the password from 0 (too guessable) to 4 (very unguessable).
	Score int
}

// Scorer rates how guessable a password is.
// userInputs are personal tokens the scorer should treat as known weak patterns.
// Implementations must be deterministic for identical inputs.
type Scorer interface {
	Score(password string, userInputs []string) Guessability
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(password string, userInputs []string) Guessability

// Score calls f.
func (f ScorerFunc) Score(password string, userInputs []string) Guessability {
	return f(password, userInputs)
}

// ZxcvbnScorer scores passwords with zxcvbn, which recognizes dictionary
// words, keyboard walks, dates, repeats and l33t substitutions.
type ZxcvbnScorer struct{}

// NewZxcvbnScorer returns the default Scorer.
func NewZxcvbnScorer() ZxcvbnScorer {
	return ZxcvbnScorer{}
}

// Score implements Scorer. zxcvbn reports the entropy of its best match
// sequence; the guess count is 2^entropy.
func (ZxcvbnScorer) Score(password string, userInputs []string) Guessability {
	if password == "" {
		return Guessability{GuessCount: 1, Score: 0}
	}
	result := zxcvbn.PasswordStrength(password, userInputs)
	return Guessability{
		GuessCount: math.Max(1, math.Exp2(result.Entropy)),
		Score:      clampScore(result.Score),
	}
}

// clampScore keeps scores from any Scorer inside 0..4.
func clampScore(score int) int {
	return min(max(score, 0), 4)
}

var _ Scorer = ZxcvbnScorer{}
