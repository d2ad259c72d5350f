// Package strength evaluates password strength.
//
// An Evaluator combines two independent signals:
//   - an entropy estimate computed from the character classes present in
//     the password and its length
//   - a pattern-aware guessability score from an injected Scorer
//     (zxcvbn by default)
//
// and maps them onto a Weak / Medium / Strong verdict through a fixed
// threshold table. The Scorer is an interface so the evaluator can be
// tested with a stub independent of any scoring library.
package strength
