package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/dictate/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "dictate.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestAttempt(t *testing.T, st *Store, runID, set string, at time.Time, score, maxScore int, words []model.WordStats) int64 {
	t.Helper()
	stats := model.AttemptStats{
		RunID:          runID,
		StartedAt:      at.Add(-10 * time.Second),
		EndedAt:        at,
		Set:            set,
		ItemID:         1,
		Reference:      "the quick fox",
		Candidate:      "the fox",
		Score:          score,
		MaxScore:       maxScore,
		IncorrectCount: maxScore - score,
		DurationMs:     10000,
	}
	id, err := st.InsertAttempt(context.Background(), stats, words)
	if err != nil {
		t.Fatalf("insert attempt: %v", err)
	}
	return id
}

func TestInsertAndListAttempts(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	first := insertTestAttempt(t, st, "run-a", "pte", base, 2, 3, []model.WordStats{
		{Word: "the", Correct: 1},
		{Word: "quick", Missed: 1},
		{Word: "fox", Correct: 1},
	})
	second := insertTestAttempt(t, st, "run-b", "other", base.Add(time.Minute), 3, 3, nil)

	ctx := context.Background()
	all, err := st.ListAttempts(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(all) != 2 || all[0].AttemptID != first || all[1].AttemptID != second {
		t.Fatalf("unexpected attempts: %+v", all)
	}
	if all[0].Score != 2 || all[0].MaxScore != 3 || all[0].IncorrectCount != 1 || all[0].RunID != "run-a" {
		t.Fatalf("unexpected first attempt: %+v", all[0])
	}
	if !all[0].EndedAt.Equal(base) {
		t.Fatalf("expected ended_at %v, got %v", base, all[0].EndedAt)
	}

	filtered, err := st.ListAttempts(ctx, model.StatsConfig{Set: "pte"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].AttemptID != first {
		t.Fatalf("unexpected filtered attempts: %+v", filtered)
	}

	since := base.Add(30 * time.Second)
	recent, err := st.ListAttempts(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].AttemptID != second {
		t.Fatalf("unexpected recent attempts: %+v", recent)
	}
}

func TestGetWeakWordsWindow(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	insertTestAttempt(t, st, "run", "pte", base, 0, 1, []model.WordStats{{Word: "old", Missed: 1}})
	insertTestAttempt(t, st, "run", "pte", base.Add(time.Minute), 1, 2, []model.WordStats{
		{Word: "fox", Correct: 1},
		{Word: "quick", Missed: 1},
	})
	insertTestAttempt(t, st, "run", "pte", base.Add(2*time.Minute), 1, 2, []model.WordStats{
		{Word: "quick", Missed: 1},
		{Word: "fox", Correct: 1},
	})

	aggs, err := st.GetWeakWords(context.Background(), 2, "pte")
	if err != nil {
		t.Fatalf("weak words: %v", err)
	}
	got := map[string]model.WordAggregate{}
	for _, agg := range aggs {
		got[agg.Word] = agg
	}
	if _, ok := got["old"]; ok {
		t.Fatalf("expected attempts outside the window to be ignored: %+v", aggs)
	}
	if got["quick"].Missed != 2 || got["fox"].Correct != 2 {
		t.Fatalf("unexpected aggregates: %+v", aggs)
	}

	none, err := st.GetWeakWords(context.Background(), 0, "")
	if err != nil || none != nil {
		t.Fatalf("expected nil for zero window, got %v %v", none, err)
	}
}

func TestListWordAggregatesForAttempts(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	a := insertTestAttempt(t, st, "run", "pte", base, 1, 2, []model.WordStats{{Word: "a", Correct: 1}, {Word: "b", Missed: 1}})
	b := insertTestAttempt(t, st, "run", "pte", base.Add(time.Minute), 2, 2, []model.WordStats{{Word: "a", Correct: 1}, {Word: "b", Correct: 1}})

	aggs, err := st.ListWordAggregatesForAttempts(context.Background(), []int64{a, b})
	if err != nil {
		t.Fatalf("word aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 words, got %d", len(aggs))
	}
	for _, agg := range aggs {
		switch agg.Word {
		case "a":
			if agg.Correct != 2 || agg.Missed != 0 {
				t.Fatalf("unexpected a: %+v", agg)
			}
		case "b":
			if agg.Correct != 1 || agg.Missed != 1 {
				t.Fatalf("unexpected b: %+v", agg)
			}
		default:
			t.Fatalf("unexpected word %q", agg.Word)
		}
	}

	empty, err := st.ListWordAggregatesForAttempts(context.Background(), nil)
	if err != nil || empty != nil {
		t.Fatalf("expected nil for no ids, got %v %v", empty, err)
	}
}

func TestGetWeakWordsUsesLatestAttempts(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	insertTestAttempt(t, st, "run", "pte", base.Add(120*time.Millisecond), 0, 1, []model.WordStats{{Word: "later", Missed: 1}})
	insertTestAttempt(t, st, "run", "pte", base.Add(100*time.Millisecond), 0, 1, []model.WordStats{{Word: "earlier", Missed: 1}})

	aggs, err := st.GetWeakWords(context.Background(), 1, "pte")
	if err != nil {
		t.Fatalf("weak words: %v", err)
	}
	if len(aggs) != 1 || aggs[0].Word != "later" {
		t.Fatalf("expected the most recent attempt, got %+v", aggs)
	}
}

func TestListAttemptsOrdersAcrossZones(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	east := time.FixedZone("UTC+5", 5*60*60)
	later := insertTestAttempt(t, st, "run", "pte", base.Add(time.Hour), 1, 1, nil)
	earlier := insertTestAttempt(t, st, "run", "pte", base.In(east), 1, 1, nil)

	attempts, err := st.ListAttempts(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 2 || attempts[0].AttemptID != earlier || attempts[1].AttemptID != later {
		t.Fatalf("expected chronological order, got %+v", attempts)
	}
	if !attempts[0].EndedAt.Equal(base) {
		t.Fatalf("expected ended_at %v, got %v", base, attempts[0].EndedAt)
	}

	since := base.Add(30 * time.Minute).In(east)
	recent, err := st.ListAttempts(context.Background(), model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].AttemptID != later {
		t.Fatalf("unexpected attempts since %v: %+v", since, recent)
	}
}
