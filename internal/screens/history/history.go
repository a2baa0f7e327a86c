// Package history lists a learner's recent practice sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/store"
	"github.com/mathforge/mathforge/internal/ui/layout"
	"github.com/mathforge/mathforge/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen displays finished and abandoned sessions, newest first.
type HistoryScreen struct {
	deps     screen.Deps
	sessions []store.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{deps: deps, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		if !deps.Identity.SignedIn() {
			return historyLoadedMsg{}
		}
		records, err := deps.Events.RecentSessions(context.Background(), deps.Identity.UserID, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: Finished(records)}
	}
}

// Finished drops start events, keeping completed and abandoned sessions.
func Finished(records []store.SessionRecord) []store.SessionRecord {
	var out []store.SessionRecord
	for _, r := range records {
		if r.Action != store.ActionStart {
			out = append(out, r)
		}
	}
	return out
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.PopCmd
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	case !s.loaded:
		return layout.Centered(width, dim, "\n\nLoading history...")
	case !s.deps.Identity.SignedIn():
		return layout.Centered(width, dim.Italic(true), "\n\nSign in to keep a practice history.")
	case len(s.sessions) == 0:
		return layout.Centered(width, dim.Italic(true), "\n\nNo sessions yet. Pick a subtopic to start practising!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		status := "completed"
		if rec.Action == store.ActionAbandon {
			status = "abandoned"
		}
		line := fmt.Sprintf("%s%s  %-24s %-9s  %d/%d correct  %d/%d marks",
			prefix, rec.Timestamp.Local().Format("Jan 02 15:04"), s.subtopicTitle(rec.SubtopicID),
			status, rec.Correct, rec.Problems, rec.MarksEarned, rec.MarksAvailable)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    answered %d  hints %d  time %d:%02d",
				rec.Answered, rec.HintsUsed, rec.DurationSecs/60, rec.DurationSecs%60)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) subtopicTitle(id string) string {
	if s.deps.Catalog != nil {
		if t, ok := s.deps.Catalog.Topic(id); ok {
			return t.Title
		}
	}
	return id
}
