package stats

import (
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/dictate/internal/model"
)

// TopWordsByFrequency returns the top N words by how often they were heard.
func TopWordsByFrequency(aggs []model.WordAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.WordAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		ti := items[i].Correct + items[i].Missed
		tj := items[j].Correct + items[j].Missed
		if ti == tj {
			return items[i].Word < items[j].Word
		}
		return ti > tj
	})
	if n > len(items) {
		n = len(items)
	}
	return lo.Map(items[:n], func(agg model.WordAggregate, _ int) string {
		return agg.Word
	})
}
