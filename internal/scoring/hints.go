package scoring

import "github.com/antzucaro/matchr"

// DefaultHintThreshold is the minimum Jaro-Winkler similarity for a hint.
const DefaultHintThreshold = 0.85

// Hint suggests that an incorrect word was a misspelling of a missing one.
type Hint struct {
	Typed      string  `json:"typed" yaml:"typed"`
	Expected   string  `json:"expected" yaml:"expected"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// SpellingHints pairs each incorrect token with the most similar missing
// token whose similarity is at least threshold. A missing token backs at most
// one hint. Tokens are considered in order, so earlier typos win ties.
func SpellingHints(tokens []Token, threshold float64) []Hint {
	var missing []string
	for _, tok := range tokens {
		if tok.Status == StatusMissing {
			missing = append(missing, tok.Word)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	taken := make([]bool, len(missing))
	var hints []Hint
	for _, tok := range tokens {
		if tok.Status != StatusIncorrect {
			continue
		}
		best := -1
		bestScore := 0.0
		for i, word := range missing {
			if taken[i] {
				continue
			}
			score := matchr.JaroWinkler(tok.Word, word, false)
			if score >= threshold && score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best < 0 {
			continue
		}
		taken[best] = true
		hints = append(hints, Hint{Typed: tok.Word, Expected: missing[best], Similarity: bestScore})
	}
	return hints
}
