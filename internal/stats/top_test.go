package stats

import (
	"testing"

	"github.com/verte-zerg/dictate/internal/model"
)

func TestTopWordsByFrequency(t *testing.T) {
	aggs := []model.WordAggregate{
		{Word: "b", Correct: 3, Missed: 1},
		{Word: "a", Correct: 2, Missed: 2},
		{Word: "c", Correct: 1, Missed: 0},
	}
	top := TopWordsByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0] != "a" || top[1] != "b" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopWordsByFrequency(aggs, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
