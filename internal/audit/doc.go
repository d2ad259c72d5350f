// Package audit runs the strength evaluator over a list of passwords.
//
// The Auditor keeps input order in its output: row i always belongs to
// password i, duplicates included. Evaluations are independent, so the
// Auditor can spread them over a bounded number of goroutines (errgroup
// with SetLimit) without changing the result.
package audit
