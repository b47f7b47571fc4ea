// Package picker chooses the next practice sentence.
package picker

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/dictate/internal/items"
	"github.com/verte-zerg/dictate/internal/scoring"
)

// Picker draws practice items at random.
type Picker struct {
	rnd  *rand.Rand
	last int
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Picker with a fixed seed.
func NewWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed)), last: -1}
}

// Pick selects an item uniformly, avoiding the previous pick when possible.
func (p *Picker) Pick(set []items.Item) items.Item {
	weights := make([]float64, len(set))
	for i := range weights {
		weights[i] = 1
	}
	return p.pick(set, weights)
}

// PickWeighted biases selection toward items containing weak words.
// Each item weighs 1 + weakCount*factor.
func (p *Picker) PickWeighted(set []items.Item, weakSet map[string]struct{}, factor float64) items.Item {
	weights := make([]float64, len(set))
	for i, it := range set {
		weakCount := 0
		for _, word := range scoring.Normalize(it.Text) {
			if _, ok := weakSet[word]; ok {
				weakCount++
			}
		}
		weights[i] = 1.0 + float64(weakCount)*factor
	}
	return p.pick(set, weights)
}

func (p *Picker) pick(set []items.Item, weights []float64) items.Item {
	if len(set) == 0 {
		return items.Item{}
	}
	if len(set) > 1 && p.last >= 0 && p.last < len(set) {
		weights[p.last] = 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := p.rnd.Float64() * total
	acc := 0.0
	idx := len(set) - 1
	for j, w := range weights {
		if w == 0 {
			continue
		}
		acc += w
		if r < acc {
			idx = j
			break
		}
	}
	for weights[idx] == 0 && idx > 0 {
		idx--
	}
	p.last = idx
	return set[idx]
}
