package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/dictate/internal/model"
	"github.com/verte-zerg/dictate/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts         []model.AttemptAggregate
	Runs             int
	WindowAttemptIDs []int64
	WordAggsWindow   []model.WordAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	runs := countRuns(attempts)

	windowIDs := lastAttemptIDs(attempts, cfg.Window)
	wordAggs, err := st.ListWordAggregatesForAttempts(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Attempts:         attempts,
		Runs:             runs,
		WindowAttemptIDs: windowIDs,
		WordAggsWindow:   wordAggs,
	}, nil
}

// Render writes the summary, learning curve, hardest-words table and the most
// practised words.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, width int, useColor bool) error {
	if err := RenderSummary(w, r.Attempts, r.Runs); err != nil {
		return err
	}
	if len(r.Attempts) == 0 {
		return nil
	}
	if err := RenderCurve(w, r.Attempts, cfg.Window, width, useColor); err != nil {
		return err
	}
	if err := RenderWordTable(w, r.WordAggsWindow, cfg.Top); err != nil {
		return err
	}
	return renderMostPractised(w, r.WordAggsWindow, cfg.Top)
}

func renderMostPractised(w io.Writer, aggs []model.WordAggregate, top int) error {
	if top <= 0 {
		top = len(aggs)
	}
	words := TopWordsByFrequency(aggs, top)
	if len(words) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Most Practised: %s\n", strings.Join(words, ", "))
	return err
}

// countRuns counts distinct run ids among the reported attempts.
func countRuns(attempts []model.AttemptAggregate) int {
	return len(lo.Uniq(lo.Map(attempts, func(a model.AttemptAggregate, _ int) string {
		return a.RunID
	})))
}

func attemptIDs(attempts []model.AttemptAggregate) []int64 {
	ids := make([]int64, len(attempts))
	for i, a := range attempts {
		ids[i] = a.AttemptID
	}
	return ids
}

func lastAttemptIDs(attempts []model.AttemptAggregate, window int) []int64 {
	if window <= 0 || len(attempts) <= window {
		return attemptIDs(attempts)
	}
	return attemptIDs(attempts[len(attempts)-window:])
}
