// Package tui provides the Bubble Tea dictation interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dictate/internal/feedback"
	"github.com/verte-zerg/dictate/internal/items"
	"github.com/verte-zerg/dictate/internal/model"
	"github.com/verte-zerg/dictate/internal/picker"
	"github.com/verte-zerg/dictate/internal/scoring"
	statsPkg "github.com/verte-zerg/dictate/internal/stats"
	"github.com/verte-zerg/dictate/internal/store"
)

type phase int

const (
	phaseFlash phase = iota
	phaseTyping
	phaseReview
)

type flashDoneMsg struct {
	seq int
}

// Model implements the Bubble Tea dictation UI.
type Model struct {
	config            model.Config
	store             *store.Store
	picker            *picker.Picker
	set               []items.Item
	runID             string
	weakSet           map[string]struct{}
	weakNoticePrinted bool

	width  int
	height int

	phase     phase
	flashSeq  int
	item      items.Item
	input     textinput.Model
	startedAt time.Time
	initCmd   tea.Cmd

	result scoring.Result
	tokens []scoring.Token
	hints  []scoring.Hint

	runAttempts int
	lastAcc     float64
	hasLast     bool
	allScore    int
	allMax      int
}

var (
	sentenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a dictation TUI model.
func NewModel(cfg model.Config, st *store.Store, p *picker.Picker, set []items.Item, runID string, weakSet map[string]struct{}, weakNoticePrinted bool) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type what you remember"
	input.CharLimit = 0

	m := &Model{
		config:            cfg,
		store:             st,
		picker:            p,
		set:               set,
		runID:             runID,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
		input:             input,
	}
	m.loadFooterStats()
	m.initCmd = m.nextItem()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.contentWidth()-lipgloss.Width(m.input.Prompt)-1)
		return m, nil
	case flashDoneMsg:
		if m.phase == phaseFlash && msg.seq == m.flashSeq {
			return m, m.startTyping()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseFlash:
			cmd := m.startTyping()
			if msg.Type == tea.KeyRunes {
				var inputCmd tea.Cmd
				m.input, inputCmd = m.input.Update(msg)
				return m, tea.Batch(cmd, inputCmd)
			}
			return m, cmd
		case phaseTyping:
			if msg.Type == tea.KeyEnter {
				m.submit()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case phaseReview:
			if msg.Type == tea.KeyEnter || msg.String() == "n" {
				return m, m.nextItem()
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
		}
		return m, nil
	default:
		if m.phase == phaseTyping {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	content = lipgloss.NewStyle().Width(m.contentWidth()).Render(content)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderContent() string {
	switch m.phase {
	case phaseFlash:
		return promptStyle.Render("Memorize:") + "\n\n" + sentenceStyle.Render(m.item.Text)
	case phaseTyping:
		return promptStyle.Render("Write the sentence:") + "\n\n" + m.input.View()
	default:
		parts := []string{
			feedback.Render(m.tokens, m.contentWidth()),
			"",
			feedback.RenderScore(m.result),
		}
		if hints := feedback.RenderHints(m.hints); hints != "" {
			parts = append(parts, hints)
		}
		parts = append(parts, "", footerStyle.Render("enter: next  esc: quit"))
		return strings.Join(parts, "\n")
	}
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Set %s #%d", m.config.Set, m.item.ID)}
	segments = append(segments, fmt.Sprintf("Run %d", m.runAttempts))
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", m.lastAcc*100))
	}
	allAcc := 0.0
	if m.allMax > 0 {
		allAcc = float64(m.allScore) / float64(m.allMax)
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f%%", allAcc*100))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) nextItem() tea.Cmd {
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		m.item = m.picker.PickWeighted(m.set, m.weakSet, m.config.WeakFactor)
	} else {
		m.item = m.picker.Pick(m.set)
	}
	m.phase = phaseFlash
	m.flashSeq++
	m.input.Reset()
	m.input.Blur()
	m.result = scoring.Result{}
	m.tokens = nil
	m.hints = nil
	if m.config.Flash <= 0 {
		return nil
	}
	seq := m.flashSeq
	return tea.Tick(m.config.Flash, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m *Model) startTyping() tea.Cmd {
	m.phase = phaseTyping
	m.startedAt = time.Now()
	return m.input.Focus()
}

func (m *Model) submit() {
	endedAt := time.Now()
	res := scoring.Evaluate(m.item.Text, m.input.Value())
	m.result = res
	m.tokens = res.Tokens()
	if m.config.Hints {
		m.hints = scoring.SpellingHints(m.tokens, scoring.DefaultHintThreshold)
	}
	m.phase = phaseReview
	m.input.Blur()

	edits := scoring.AnalyzeEdits(res.ReferenceWords, res.CandidateWords)
	attempt := model.AttemptStats{
		RunID:          m.runID,
		StartedAt:      m.startedAt,
		EndedAt:        endedAt,
		Set:            m.config.Set,
		ItemID:         m.item.ID,
		Reference:      m.item.Text,
		Candidate:      m.input.Value(),
		Score:          res.Score,
		MaxScore:       res.MaxScore,
		IncorrectCount: res.IncorrectCount,
		Substitutions:  edits.Substitutions,
		Insertions:     edits.Insertions,
		Deletions:      edits.Deletions,
		DurationMs:     endedAt.Sub(m.startedAt).Milliseconds(),
	}
	ctx := context.Background()
	if _, err := m.store.InsertAttempt(ctx, attempt, statsPkg.WordStatsFromTokens(m.tokens)); err != nil {
		logErrf("failed to save attempt: %v\n", err)
	}

	m.runAttempts++
	m.lastAcc = res.Accuracy()
	m.hasLast = true
	m.allScore += res.Score
	m.allMax += res.MaxScore

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) loadFooterStats() {
	attempts, err := m.store.ListAttempts(context.Background(), model.StatsConfig{Set: m.config.Set})
	if err != nil {
		logErrf("failed to load attempt stats: %v\n", err)
		return
	}
	if len(attempts) == 0 {
		return
	}
	m.lastAcc, _ = statsPkg.AttemptMetrics(attempts[len(attempts)-1])
	m.hasLast = true
	for _, a := range attempts {
		m.allScore += a.Score
		m.allMax += a.MaxScore
	}
}

func (m *Model) refreshWeakSet() {
	aggs, err := m.store.GetWeakWords(context.Background(), m.config.WeakWindow, m.config.Set)
	if err != nil {
		logErrf("failed to load weak words: %v\n", err)
		return
	}
	m.weakSet = statsPkg.SelectWeakWords(aggs, m.config.WeakTop)
	if len(m.weakSet) == 0 && !m.weakNoticePrinted {
		logErrln("no missed words yet; picking sentences uniformly")
		m.weakNoticePrinted = true
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
