// Package summary shows the outcome of a completed practice session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/session"
	"github.com/mathforge/mathforge/internal/ui/components"
	"github.com/mathforge/mathforge/internal/ui/layout"
	"github.com/mathforge/mathforge/internal/ui/theme"
)

// Params configures the summary screen.
type Params struct {
	Title          string
	Summary        session.Summary
	NewlyCompleted int

	// Again builds a fresh practice screen for the same subtopic. When
	// nil the "Practice again" item is disabled.
	Again func() screen.Screen
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	params Params
	menu   components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(p Params) *SummaryScreen {
	s := &SummaryScreen{params: p}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:    "Practice again",
			Disabled: p.Again == nil,
			Action: func() tea.Cmd {
				next := p.Again()
				return router.ReplaceCmd(next)
			},
		},
		{
			Label:  "Back to topics",
			Action: func() tea.Cmd { return router.PopCmd },
		},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Session Summary" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, router.PopCmd
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.params.Summary
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title, "Session complete!"))
	b.WriteString("\n")
	if s.params.Title != "" {
		b.WriteString(layout.Centered(width, dim, s.params.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := []string{
		fmt.Sprintf("Answered: %d of %d", sum.Answered, sum.Problems),
		fmt.Sprintf("Correct: %d", sum.Correct),
		fmt.Sprintf("Accuracy: %.0f%%", sum.Accuracy()*100),
	}
	b.WriteString(layout.Centered(width, theme.Body, strings.Join(stats, "      ")))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body,
		fmt.Sprintf("Marks: %d / %d      Hints used: %d      Time: %d:%02d",
			sum.MarksEarned, sum.MarksAvailable, sum.HintsUsed, mins, secs)))
	b.WriteString("\n\n")

	switch {
	case s.params.NewlyCompleted > 0:
		b.WriteString(layout.Centered(width, theme.Correct,
			fmt.Sprintf("%d new problem(s) added to your progress", s.params.NewlyCompleted)))
	case sum.Correct > 0:
		b.WriteString(layout.Centered(width, dim, "These problems were already in your progress"))
	default:
		b.WriteString(layout.Centered(width, dim, "No correct answers this time. Try the hints next round"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
