package strength

import (
	"fmt"
	"unicode/utf8"

	"github.com/nao1215/psawg/internal/model"
)

// Options configures an Evaluator.
type Options struct {
	// SymbolAlphabetSize is the alphabet contribution of the symbol class.
	SymbolAlphabetSize int

	// GuessesPerSecond is the assumed attack rate for crack-time estimates.
	GuessesPerSecond float64

	// Thresholds is the classification rule table.
	Thresholds Thresholds
}

// DefaultOptions returns the built-in evaluator options.
func DefaultOptions() Options {
	return Options{
		SymbolAlphabetSize: DefaultSymbolAlphabetSize,
		GuessesPerSecond:   DefaultGuessesPerSecond,
		Thresholds:         DefaultThresholds(),
	}
}

// Validate checks the options and returns the first problem found.
func (o Options) Validate() error {
	if o.SymbolAlphabetSize <= 0 {
		return fmt.Errorf("%w: symbol alphabet size must be positive", ErrInvalidOptions)
	}
	if o.GuessesPerSecond <= 0 {
		return fmt.Errorf("%w: guesses per second must be positive", ErrInvalidOptions)
	}
	return o.Thresholds.Validate()
}

// Evaluator produces StrengthReports. It holds no mutable state and is
// safe for concurrent use if its Scorer is.
type Evaluator struct {
	scorer Scorer
	opts   Options
}

// NewEvaluator validates opts and returns an Evaluator using scorer.
// A nil scorer selects zxcvbn.
func NewEvaluator(scorer Scorer, opts Options) (*Evaluator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		scorer = NewZxcvbnScorer()
	}
	return &Evaluator{scorer: scorer, opts: opts}, nil
}

// Options returns the evaluator's options.
func (e *Evaluator) Options() Options {
	return e.opts
}

// Evaluate rates password. tokens are personal metadata passed to the
// scorer as known weak patterns; they may be nil.
//
// An empty password is a valid degenerate input: it yields a zero-entropy,
// score 0, Weak report without consulting the scorer.
func (e *Evaluator) Evaluate(password string, tokens []string) model.StrengthReport {
	if password == "" {
		return model.StrengthReport{
			GuessCount:       1,
			CrackTimeDisplay: DisplayCrackTime(0),
			Class:            model.ClassWeak,
		}
	}

	entropy := Entropy(password, e.opts.SymbolAlphabetSize)
	g := e.scorer.Score(password, tokens)
	guesses := max(g.GuessCount, 1)
	score := clampScore(g.Score)
	seconds := CrackTimeSeconds(guesses, e.opts.GuessesPerSecond)

	return model.StrengthReport{
		Length:           utf8.RuneCountInString(password),
		EntropyBits:      entropy,
		GuessCount:       guesses,
		Score:            score,
		CrackTimeSeconds: seconds,
		CrackTimeDisplay: DisplayCrackTime(seconds),
		Class:            e.opts.Thresholds.Classify(score, entropy),
	}
}
