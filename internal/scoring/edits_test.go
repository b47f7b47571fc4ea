package scoring

import (
	"math"
	"testing"
)

func TestAnalyzeEdits(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      EditCounts
	}{
		{
			name:      "identical",
			reference: "the quick fox",
			candidate: "The quick fox.",
			want:      EditCounts{Matches: 3, ReferenceWords: 3},
		},
		{
			name:      "one substitution",
			reference: "I like big cats",
			candidate: "I like small cats",
			want:      EditCounts{Matches: 3, Substitutions: 1, ReferenceWords: 4, WER: 0.25},
		},
		{
			name:      "deletions",
			reference: "a b c d",
			candidate: "a d",
			want:      EditCounts{Matches: 2, Deletions: 2, ReferenceWords: 4, WER: 0.5},
		},
		{
			name:      "insertion",
			reference: "a b",
			candidate: "a x b",
			want:      EditCounts{Matches: 2, Insertions: 1, ReferenceWords: 2, WER: 0.5},
		},
		{
			name:      "empty reference",
			reference: "",
			candidate: "a b",
			want:      EditCounts{Insertions: 2},
		},
		{
			name:      "empty candidate",
			reference: "a b",
			candidate: "",
			want:      EditCounts{Deletions: 2, ReferenceWords: 2, WER: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AnalyzeEdits(Normalize(tc.reference), Normalize(tc.candidate))
			if got.Matches != tc.want.Matches || got.Substitutions != tc.want.Substitutions ||
				got.Insertions != tc.want.Insertions || got.Deletions != tc.want.Deletions ||
				got.ReferenceWords != tc.want.ReferenceWords {
				t.Fatalf("AnalyzeEdits(%q, %q) = %+v, want %+v", tc.reference, tc.candidate, got, tc.want)
			}
			if math.Abs(got.WER-tc.want.WER) > 1e-9 {
				t.Fatalf("expected WER %.3f, got %.3f", tc.want.WER, got.WER)
			}
		})
	}
}

func TestAnalyzeEditsDoesNotChangeScore(t *testing.T) {
	res := Evaluate("the cat sat on the mat", "the the the cat sat")
	_ = AnalyzeEdits(res.ReferenceWords, res.CandidateWords)
	if res.Score != 4 || res.IncorrectCount != 2 {
		t.Fatalf("unexpected result after edit analysis: %+v", res)
	}
}
