package stats

import (
	"sort"

	"github.com/verte-zerg/dictate/internal/model"
)

// SelectWeakWords selects the lowest-accuracy words from aggregates.
// Words that were never missed are not weak.
func SelectWeakWords(aggs []model.WordAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	candidates := make([]model.WordAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Missed > 0 {
			candidates = append(candidates, agg)
		}
	}
	if len(candidates) == 0 {
		return weakSet
	}
	sortByAccuracy(candidates)
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		weakSet[candidates[i].Word] = struct{}{}
	}
	return weakSet
}

func sortByAccuracy(aggs []model.WordAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		ai := wordAccuracy(aggs[i])
		aj := wordAccuracy(aggs[j])
		if ai == aj {
			return aggs[i].Word < aggs[j].Word
		}
		return ai < aj
	})
}

func wordAccuracy(agg model.WordAggregate) float64 {
	total := agg.Correct + agg.Missed
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
