package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	applog "github.com/nao1215/psawg/internal/log"
	"github.com/nao1215/psawg/internal/metrics"
	"github.com/nao1215/psawg/internal/model"
	"github.com/nao1215/psawg/internal/report"
	"github.com/nao1215/psawg/internal/strength"
	"github.com/spf13/cobra"
)

// stdinPassword is the argument that reads the password from standard input.
const stdinPassword = "-"

// errNoPassword is returned when "-" is given and stdin is empty.
var errNoPassword = errors.New("no password read from standard input")

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <password>",
		Short: "Analyze the strength of a single password",
		Long: `Analyze evaluates one password and prints its strength report.

The report contains the length, charset entropy in bits, the guessability
score (0-4), the estimated offline crack time and the class (Weak, Medium or
Strong). Advice is printed when the password is not Strong.

Pass "-" to read the password from standard input so it does not end up in
your shell history.

Examples:
  # Analyze a password
  psawg analyze 'Tr0ub4dor&3'

  # Treat personal words as known to the attacker
  psawg analyze vaishnav2004 -i vaishnav,2004

  # Read from stdin and print JSON
  echo -n 'correct horse battery staple' | psawg analyze - --json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceP("inputs", "i", nil,
		"Personal words (names, dates, pets) the attacker is assumed to know")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output in Markdown format")
	cmd.Flags().Bool("mask", false, "Mask the password in the output")

	return cmd
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	password := args[0]
	if password == stdinPassword {
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	inputs, err := readInputs(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose, applog.NewSecrets(append([]string{password}, inputs...)...))

	evaluator, err := strength.NewEvaluator(nil, cfg.Strength)
	if err != nil {
		return fmt.Errorf("invalid strength options: %w", err)
	}

	result := evaluator.Evaluate(password, inputs)
	analysis := &model.Analysis{
		Password: password,
		Report:   result,
		Advice:   strength.Advise(result, password, inputs),
	}
	logger.Debug("password analyzed", "password", password, "class", result.Class, "score", result.Score)

	recorder := metrics.NewRecorder()
	recorder.ObserveEvaluation(result)
	defer writeMetrics(cfg, recorder, logger)

	return outputAnalysis(cmd, analysis)
}

// outputAnalysis writes the analysis in the format selected by the flags.
func outputAnalysis(cmd *cobra.Command, analysis *model.Analysis) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")         //nolint:errcheck // flag defined in NewAnalyzeCmd
	markdownOutput, _ := cmd.Flags().GetBool("markdown") //nolint:errcheck // flag defined in NewAnalyzeCmd
	mask, _ := cmd.Flags().GetBool("mask")               //nolint:errcheck // flag defined in NewAnalyzeCmd

	opts := []report.Option{report.WithMask(mask)}
	out := cmd.OutOrStdout()

	var w report.Writer
	switch {
	case jsonOutput:
		w = report.NewJSONWriter(out, append(opts, report.WithPrettyPrint())...)
	case markdownOutput:
		w = report.NewMarkdownWriter(out, opts...)
	default:
		w = report.NewSimpleWriter(out, opts...)
	}

	if _, err := w.WriteAnalysis(analysis); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	return nil
}

// readPassword reads the first line of r. The trailing newline is removed.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && errors.Is(err, io.EOF) {
		return "", errNoPassword
	}
	return line, nil
}
