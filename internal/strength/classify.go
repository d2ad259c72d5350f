package strength

import (
	"fmt"

	"github.com/nao1215/psawg/internal/model"
)

// Thresholds is the rule table that turns (score, entropy) into a class.
//
//	score <= WeakMaxScore or entropy < MediumMinEntropy    -> Weak
//	score >= StrongMinScore and entropy >= StrongMinEntropy -> Strong
//	otherwise                                               -> Medium
//
// The score is checked first, so a weak score always wins over a large
// entropy estimate.
type Thresholds struct {
	WeakMaxScore     int     `yaml:"weakMaxScore" json:"weak_max_score"`
	MediumMinEntropy float64 `yaml:"mediumMinEntropy" json:"medium_min_entropy"`
	StrongMinScore   int     `yaml:"strongMinScore" json:"strong_min_score"`
	StrongMinEntropy float64 `yaml:"strongMinEntropy" json:"strong_min_entropy"`
}

// DefaultThresholds returns the built-in rule table:
// score <= 1 or entropy < 28 bits is Weak, score 4 with entropy >= 60 bits
// is Strong, anything else is Medium.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeakMaxScore:     1,
		MediumMinEntropy: 28,
		StrongMinScore:   4,
		StrongMinEntropy: 60,
	}
}

// Validate checks that the table is internally consistent.
func (t Thresholds) Validate() error {
	if t.WeakMaxScore < 0 || t.WeakMaxScore >= t.StrongMinScore || t.StrongMinScore > 4 {
		return fmt.Errorf("%w: need 0 <= weakMaxScore < strongMinScore <= 4 (got %d, %d)",
			ErrInvalidOptions, t.WeakMaxScore, t.StrongMinScore)
	}
	if t.MediumMinEntropy < 0 || t.StrongMinEntropy < t.MediumMinEntropy {
		return fmt.Errorf("%w: need 0 <= mediumMinEntropy <= strongMinEntropy (got %g, %g)",
			ErrInvalidOptions, t.MediumMinEntropy, t.StrongMinEntropy)
	}
	return nil
}

// Classify applies the rule table.
func (t Thresholds) Classify(score int, entropyBits float64) model.StrengthClass {
	switch {
	case score <= t.WeakMaxScore || entropyBits < t.MediumMinEntropy:
		return model.ClassWeak
	case score >= t.StrongMinScore && entropyBits >= t.StrongMinEntropy:
		return model.ClassStrong
	default:
		return model.ClassMedium
	}
}
