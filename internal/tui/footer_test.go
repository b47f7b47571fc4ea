package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/dictate/internal/items"
	"github.com/verte-zerg/dictate/internal/model"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		config:      model.Config{Set: "pte"},
		item:        items.Item{ID: 4, Text: "a b"},
		runAttempts: 3,
		hasLast:     true,
		lastAcc:     0.75,
		allScore:    29,
		allMax:      30,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Set pte #4", "Run 3", "Last 75.0%", "All-time 96.7%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutHistory(t *testing.T) {
	m := &Model{config: model.Config{Set: "pte"}, item: items.Item{ID: 1}}
	out := m.renderFooter()
	if strings.Contains(out, "Last") {
		t.Fatalf("expected no last segment without history: %s", out)
	}
	if !strings.Contains(out, "All-time 0.0%") {
		t.Fatalf("expected zero all-time accuracy: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
