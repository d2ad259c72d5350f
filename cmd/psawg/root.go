package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for psawg.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psawg",
		Short: "Password strength analyzer and targeted wordlist generator",
		Long: `psawg evaluates password strength and generates targeted wordlists.

Strength combines charset entropy with a pattern-based guessability score
(zxcvbn) and classifies each password as Weak, Medium or Strong. Wordlists
are built from personal metadata (names, dates, pets, places) through case,
leetspeak, combination and suffix transformations.

Only use the wordlist generator for authorized assessments.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to configuration file (default: .psawg in current or home directory)")
	cmd.PersistentFlags().String("metrics-file", "",
		"Write Prometheus metrics in text format to this file after the command")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewWordlistCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
