// Package feedback renders scored dictation attempts.
package feedback

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dictate/internal/scoring"
)

// Incorrect words are struck through; missing words are bracketed by
// displayText.
var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Strikethrough(true)
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	scoreStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type styledWord struct {
	s     string
	width int
}

// Render styles each token by status and wraps the words to width.
// A width <= 0 disables wrapping.
func Render(tokens []scoring.Token, width int) string {
	words := make([]styledWord, 0, len(tokens))
	for _, tok := range tokens {
		text := displayText(tok)
		words = append(words, styledWord{
			s:     styleFor(tok.Status).Render(text),
			width: runewidth.StringWidth(text),
		})
	}
	return wrapWords(words, width)
}

// Plain renders tokens without ANSI styling: incorrect words as ~word~ and
// missing words as [word].
func Plain(tokens []scoring.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Status {
		case scoring.StatusIncorrect:
			parts = append(parts, "~"+tok.Word+"~")
		default:
			parts = append(parts, displayText(tok))
		}
	}
	return strings.Join(parts, " ")
}

// ScoreLine summarizes a result, e.g. "Score 3/4 · 1 incorrect".
func ScoreLine(res scoring.Result) string {
	return fmt.Sprintf("Score %d/%d · %d incorrect", res.Score, res.MaxScore, res.IncorrectCount)
}

// RenderScore styles ScoreLine.
func RenderScore(res scoring.Result) string {
	return scoreStyle.Render(ScoreLine(res))
}

// HintLines formats spelling hints, one per line.
func HintLines(hints []scoring.Hint) []string {
	lines := make([]string, 0, len(hints))
	for _, h := range hints {
		lines = append(lines, fmt.Sprintf("%s → %s?", h.Typed, h.Expected))
	}
	return lines
}

// RenderHints styles HintLines. Returns "" when there are no hints.
func RenderHints(hints []scoring.Hint) string {
	lines := HintLines(hints)
	if len(lines) == 0 {
		return ""
	}
	return hintStyle.Render(strings.Join(lines, "\n"))
}

func displayText(tok scoring.Token) string {
	if tok.Status == scoring.StatusMissing {
		return "[" + tok.Word + "]"
	}
	return tok.Word
}

func styleFor(status scoring.Status) lipgloss.Style {
	switch status {
	case scoring.StatusCorrect:
		return correctStyle
	case scoring.StatusIncorrect:
		return incorrectStyle
	default:
		return missingStyle
	}
}

func wrapWords(words []styledWord, width int) string {
	var out strings.Builder
	lineWidth := 0
	for i, w := range words {
		if i > 0 {
			if width > 0 && lineWidth+1+w.width > width {
				out.WriteRune('\n')
				lineWidth = 0
			} else {
				out.WriteRune(' ')
				lineWidth++
			}
		}
		out.WriteString(w.s)
		lineWidth += w.width
	}
	return out.String()
}
