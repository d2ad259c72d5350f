package strength

import (
	"strings"

	"github.com/nao1215/psawg/internal/model"
)

// RecommendedLength is the length below which Advise suggests a longer password.
const RecommendedLength = 14

// Advise returns remediation hints for a password that is not Strong.
// Strong passwords get no advice.
func Advise(report model.StrengthReport, password string, tokens []string) []string {
	if report.Class == model.ClassStrong {
		return nil
	}

	advice := make([]string, 0, 5)
	if report.Length < RecommendedLength {
		advice = append(advice, "Use 14+ characters; a passphrase of unrelated words is easier to remember.")
	}
	if Classify(password).Count() < 3 {
		advice = append(advice, "Mix lowercase, uppercase, digits and symbols.")
	}
	if token, ok := containsToken(password, tokens); ok {
		advice = append(advice, "Avoid personal information such as \""+token+"\" (names, dates, places).")
	}
	if report.Score <= 2 {
		advice = append(advice, "Avoid dictionary words, keyboard patterns and predictable substitutions.")
	}
	advice = append(advice, "Use a password manager and a unique password per site.")
	return advice
}

// containsToken reports the first token (of three or more characters)
// found case-insensitively in password.
func containsToken(password string, tokens []string) (string, bool) {
	lower := strings.ToLower(password)
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if len([]rune(t)) >= 3 && strings.Contains(lower, t) {
			return t, true
		}
	}
	return "", false
}
