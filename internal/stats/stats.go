// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/dictate/internal/model"
	"github.com/verte-zerg/dictate/internal/scoring"
)

// AttemptMetrics computes accuracy (score/max) and word error rate for an attempt.
func AttemptMetrics(a model.AttemptAggregate) (accuracy, wer float64) {
	if a.MaxScore <= 0 {
		return 0, 0
	}
	accuracy = float64(a.Score) / float64(a.MaxScore)
	wer = float64(a.Substitutions+a.Insertions+a.Deletions) / float64(a.MaxScore)
	return accuracy, wer
}

// WordStatsFromTokens counts, per reference word, how often it was matched
// and how often it was missing. Output is sorted by word.
func WordStatsFromTokens(tokens []scoring.Token) []model.WordStats {
	byWord := map[string]*model.WordStats{}
	for _, tok := range tokens {
		if tok.Status == scoring.StatusIncorrect {
			continue
		}
		entry, ok := byWord[tok.Word]
		if !ok {
			entry = &model.WordStats{Word: tok.Word}
			byWord[tok.Word] = entry
		}
		if tok.Status == scoring.StatusCorrect {
			entry.Correct++
		} else {
			entry.Missed++
		}
	}
	out := make([]model.WordStats, 0, len(byWord))
	for _, entry := range byWord {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderSummary prints a summary block for attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptAggregate, runs int) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	var totalAcc, totalWER float64
	var totalScore, totalMax, perfect int
	for _, a := range attempts {
		acc, wer := AttemptMetrics(a)
		totalAcc += acc
		totalWER += wer
		totalScore += a.Score
		totalMax += a.MaxScore
		if a.MaxScore > 0 && a.Score == a.MaxScore {
			perfect++
		}
	}
	count := float64(len(attempts))
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d (%d runs)", len(attempts), runs),
		fmt.Sprintf("Words: %d/%d", totalScore, totalMax),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Avg WER: %.2f", totalWER/count),
		fmt.Sprintf("Perfect: %d", perfect),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve plots the moving averages of accuracy (percent) and word error
// rate across attempts, fitted to width columns.
func RenderCurve(w io.Writer, attempts []model.AttemptAggregate, window, width int, useColor bool) error {
	if len(attempts) == 0 {
		return nil
	}
	accs := make([]float64, len(attempts))
	wers := make([]float64, len(attempts))
	for i, a := range attempts {
		acc, wer := AttemptMetrics(a)
		accs[i] = acc * 100
		wers[i] = wer
	}
	accs = MovingAverage(accs, window)
	wers = MovingAverage(wers, window)
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%% -> %.1f%%  WER: %.2f -> %.2f\n",
		accs[0], accs[len(accs)-1], wers[0], wers[len(wers)-1]); err != nil {
		return err
	}
	title := fmt.Sprintf("Learning Curve (moving average, window %d)", window)
	series := []Series{
		{Name: "accuracy", Values: accs},
		{Name: "wer", Values: wers},
	}
	return PlotSeries(w, title, series, PlotWidthFor(width), defaultPlotHeight, useColor)
}

// RenderWordTable prints the hardest words first.
func RenderWordTable(w io.Writer, aggs []model.WordAggregate, top int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	rows := make([]model.WordAggregate, len(aggs))
	copy(rows, aggs)
	sortByAccuracy(rows)
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	if _, err := fmt.Fprintln(w, "Hardest Words (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Word", "Accuracy", "Heard", "Missed"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Word,
			fmt.Sprintf("%.2f%%", wordAccuracy(r)*100),
			fmt.Sprintf("%d", r.Correct+r.Missed),
			fmt.Sprintf("%d", r.Missed),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
