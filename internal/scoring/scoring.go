// Package scoring compares a dictation attempt against its reference sentence.
package scoring

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Status tags a display token.
type Status string

// Token statuses.
const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusMissing   Status = "missing"
)

// Result is the outcome of scoring one attempt.
type Result struct {
	Score          int      `json:"score" yaml:"score"`
	MaxScore       int      `json:"max_score" yaml:"max_score"`
	IncorrectCount int      `json:"incorrect_count" yaml:"incorrect_count"`
	ReferenceWords []string `json:"reference_words" yaml:"reference_words"`
	CandidateWords []string `json:"candidate_words" yaml:"candidate_words"`
}

// Token is one word of the annotated answer.
type Token struct {
	Word   string `json:"word" yaml:"word"`
	Status Status `json:"status" yaml:"status"`
}

// Normalize lowercases text, drops everything that is not a letter, digit or
// whitespace and splits the rest into words.
func Normalize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}

// Evaluate scores candidate against reference. Each occurrence of a word in
// the reference can credit at most one occurrence of the same word in the
// candidate.
func Evaluate(reference, candidate string) Result {
	refWords := Normalize(reference)
	candWords := Normalize(candidate)

	available := lo.CountValues(refWords)
	matched := make(map[string]int, len(available))
	score := 0
	for _, word := range candWords {
		if matched[word] < available[word] {
			matched[word]++
			score++
		}
	}

	maxScore := len(refWords)
	return Result{
		Score:          score,
		MaxScore:       maxScore,
		IncorrectCount: max(maxScore-score, 0),
		ReferenceWords: refWords,
		CandidateWords: candWords,
	}
}

// Tokens builds the display tokens for the retained word sequences.
func (r Result) Tokens() []Token {
	return BuildDisplayTokens(r.ReferenceWords, r.CandidateWords)
}

// Accuracy returns Score/MaxScore, or 0 for an empty reference.
func (r Result) Accuracy() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore)
}

// BuildDisplayTokens merges the candidate words, tagged correct or incorrect in
// typed order, with the reference words that were never matched.
//
// A missing reference word is placed after the rightmost candidate word matched
// to an earlier reference position, past any incorrect words that follow it, or
// at the very start when no earlier match exists. Missing words sharing a slot
// keep reference order. This is a greedy heuristic, not a minimal-edit alignment.
func BuildDisplayTokens(referenceWords, candidateWords []string) []Token {
	queues := make(map[string][]int, len(referenceWords))
	for i, word := range referenceWords {
		queues[word] = append(queues[word], i)
	}

	// matchedRef[i] is the reference index matched by candidate i, or -1.
	matchedRef := make([]int, len(candidateWords))
	used := make([]bool, len(referenceWords))
	for i, word := range candidateWords {
		q := queues[word]
		if len(q) == 0 {
			matchedRef[i] = -1
			continue
		}
		matchedRef[i] = q[0]
		queues[word] = q[1:]
		used[q[0]] = true
	}

	// inserts[slot] holds missing reference indices emitted before candidate slot.
	inserts := make([][]int, len(candidateWords)+1)
	slots := insertionSlots(matchedRef, len(referenceWords))
	for m := range referenceWords {
		if used[m] {
			continue
		}
		inserts[slots[m]] = append(inserts[slots[m]], m)
	}

	tokens := make([]Token, 0, len(candidateWords)+len(referenceWords))
	for i, word := range candidateWords {
		for _, m := range inserts[i] {
			tokens = append(tokens, Token{Word: referenceWords[m], Status: StatusMissing})
		}
		status := StatusCorrect
		if matchedRef[i] < 0 {
			status = StatusIncorrect
		}
		tokens = append(tokens, Token{Word: word, Status: status})
	}
	for _, m := range inserts[len(candidateWords)] {
		tokens = append(tokens, Token{Word: referenceWords[m], Status: StatusMissing})
	}
	return tokens
}

// insertionSlots returns, for every reference index m, the candidate slot a
// missing word m is emitted before. The anchor is the rightmost candidate
// matched to a reference index below m; the slot is the first matched
// candidate after it, or the end.
func insertionSlots(matchedRef []int, refLen int) []int {
	candOf := make([]int, refLen)
	for m := range candOf {
		candOf[m] = -1
	}
	for i, ref := range matchedRef {
		if ref >= 0 {
			candOf[ref] = i
		}
	}

	// next[i] is the first matched candidate at or after i.
	next := make([]int, len(matchedRef)+1)
	next[len(matchedRef)] = len(matchedRef)
	for i := len(matchedRef) - 1; i >= 0; i-- {
		if matchedRef[i] < 0 {
			next[i] = next[i+1]
		} else {
			next[i] = i
		}
	}

	slots := make([]int, refLen)
	anchor := -1
	for m := range slots {
		if anchor >= 0 {
			slots[m] = next[anchor+1]
		}
		anchor = max(anchor, candOf[m])
	}
	return slots
}
