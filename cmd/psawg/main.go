// Package main provides the entry point for the psawg CLI.
//
// psawg (Password Strength Analyzer & Wordlist Generator) evaluates
// passwords against charset entropy and pattern-based guessability, audits
// password lists, and builds targeted wordlists from personal metadata for
// authorized security assessments.
//
// Usage:
//
//	psawg analyze <password> [-i word,...]
//	psawg audit <file> [-o reports/analysis.csv]
//	psawg wordlist --meta vaishnav --meta 2004 [-o wordlist.txt]
//
// See --help for all available options.
package main

// main is the entry point for psawg.
func main() {
	Execute()
}
