package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/dictate/internal/feedback"
	"github.com/verte-zerg/dictate/internal/scoring"
)

type checkReport struct {
	Score          int                `json:"score" yaml:"score"`
	MaxScore       int                `json:"max_score" yaml:"max_score"`
	IncorrectCount int                `json:"incorrect_count" yaml:"incorrect_count"`
	Accuracy       float64            `json:"accuracy" yaml:"accuracy"`
	Tokens         []scoring.Token    `json:"tokens" yaml:"tokens"`
	Edits          scoring.EditCounts `json:"edits" yaml:"edits"`
	Hints          []scoring.Hint     `json:"hints,omitempty" yaml:"hints,omitempty"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <reference> <candidate>",
		Short: "Score one attempt against a reference sentence",
		Args:  cobra.ExactArgs(2),
		RunE:  runCheckCmd,
	}
	cmd.Flags().StringVar(&checkFormat, "format", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&checkHints, "hints", false, "include spelling hints")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	report := buildCheckReport(args[0], args[1], checkHints)
	if err := writeCheckReport(cmd.OutOrStdout(), report, checkFormat); err != nil {
		return err
	}
	return nil
}

func buildCheckReport(reference, candidate string, withHints bool) checkReport {
	res := scoring.Evaluate(reference, candidate)
	tokens := res.Tokens()
	report := checkReport{
		Score:          res.Score,
		MaxScore:       res.MaxScore,
		IncorrectCount: res.IncorrectCount,
		Accuracy:       res.Accuracy(),
		Tokens:         tokens,
		Edits:          scoring.AnalyzeEdits(res.ReferenceWords, res.CandidateWords),
	}
	if withHints {
		report.Hints = scoring.SpellingHints(tokens, scoring.DefaultHintThreshold)
	}
	return report
}

func writeCheckReport(w io.Writer, report checkReport, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return writeCheckText(w, report)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeCheckText(w io.Writer, report checkReport) error {
	res := scoring.Result{
		Score:          report.Score,
		MaxScore:       report.MaxScore,
		IncorrectCount: report.IncorrectCount,
	}
	lines := []string{
		feedback.Plain(report.Tokens),
		feedback.ScoreLine(res),
		fmt.Sprintf("WER %.2f (%d substituted, %d inserted, %d deleted)",
			report.Edits.WER, report.Edits.Substitutions, report.Edits.Insertions, report.Edits.Deletions),
	}
	lines = append(lines, feedback.HintLines(report.Hints)...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
