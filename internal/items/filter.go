package items

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/dictate/internal/scoring"
)

// ShortMaxWords is the longest sentence, in words, counted as short.
const ShortMaxWords = 10

// FilterFunc returns true when an item should be kept.
type FilterFunc func(Item) bool

// FilterForLevel returns the filter for a difficulty level: "short", "long" or "all".
func FilterForLevel(level string) (FilterFunc, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "all":
		return func(Item) bool { return true }, nil
	case "short":
		return func(it Item) bool { return wordCount(it) <= ShortMaxWords }, nil
	case "long":
		return func(it Item) bool { return wordCount(it) > ShortMaxWords }, nil
	default:
		return nil, fmt.Errorf("unknown level %q (want short, long or all)", level)
	}
}

// Filter keeps the items accepted by keep.
func Filter(in []Item, keep FilterFunc) []Item {
	return lo.Filter(in, func(it Item, _ int) bool {
		return keep(it)
	})
}

func wordCount(it Item) int {
	return len(scoring.Normalize(it.Text))
}
