package scoring

// EditCounts is a word-level minimal-edit alignment summary. It is reported
// alongside Result and never changes Score or IncorrectCount.
type EditCounts struct {
	Matches        int     `json:"matches" yaml:"matches"`
	Substitutions  int     `json:"substitutions" yaml:"substitutions"`
	Insertions     int     `json:"insertions" yaml:"insertions"`
	Deletions      int     `json:"deletions" yaml:"deletions"`
	ReferenceWords int     `json:"reference_words" yaml:"reference_words"`
	WER            float64 `json:"wer" yaml:"wer"`
}

// AnalyzeEdits aligns the two word sequences with Levenshtein distance and
// counts matches, substitutions, insertions and deletions.
// WER = (S + I + D) / len(referenceWords), or 0 for an empty reference.
func AnalyzeEdits(referenceWords, candidateWords []string) EditCounts {
	n := len(referenceWords)
	m := len(candidateWords)
	if n == 0 {
		return EditCounts{Insertions: m}
	}

	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if referenceWords[i-1] == candidateWords[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = min(d[i-1][j-1], d[i-1][j], d[i][j-1]) + 1
		}
	}

	var out EditCounts
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && referenceWords[i-1] == candidateWords[j-1]:
			out.Matches++
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			out.Substitutions++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			out.Deletions++
			i--
		default:
			out.Insertions++
			j--
		}
	}
	out.ReferenceWords = n
	out.WER = float64(out.Substitutions+out.Insertions+out.Deletions) / float64(n)
	return out
}
