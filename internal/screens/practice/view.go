package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/mathforge/mathforge/internal/session"
	"github.com/mathforge/mathforge/internal/ui/components"
	"github.com/mathforge/mathforge/internal/ui/layout"
	"github.com/mathforge/mathforge/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	return s.renderProblem(width)
}

func (s *PracticeScreen) renderProblem(width int) string {
	cw := layout.ContentWidth(width)
	p := s.session.Current()

	var b strings.Builder
	b.WriteString("\n")

	// Position line and bar.
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.subtopic.Title)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.session.PositionLabel())
	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	b.WriteString(left + strings.Repeat(" ", max(gap, 1)) + right)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.session.Position(), false, cw).View())
	b.WriteString("\n\n")

	// Badges.
	marks := fmt.Sprintf("%d marks", p.Marks)
	if p.Marks == 1 {
		marks = "1 mark"
	}
	b.WriteString(theme.DifficultyBadge(string(p.Difficulty)).Render(strings.ToUpper(string(p.Difficulty))))
	b.WriteString(" ")
	b.WriteString(theme.BadgeMarks.Render(marks))
	b.WriteString("\n\n")

	// Prompt.
	b.WriteString(theme.Card.Width(cw).Render(theme.Body.Bold(true).Render(p.Prompt)))
	b.WriteString("\n\n")

	// Hints.
	visible := s.session.VisibleHints()
	for i, h := range visible {
		b.WriteString(theme.Hint.Width(cw).Render(fmt.Sprintf("Hint %d: %s", i+1, h)))
		b.WriteString("\n")
	}
	if remaining := len(p.Hints) - len(visible); remaining > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d hint(s) available, press Ctrl+G", remaining)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Answer and verdict.
	b.WriteString("Answer: " + s.input.View())
	b.WriteString("\n\n")
	switch s.session.Feedback(p.ID) {
	case sess.FeedbackCorrect:
		b.WriteString(theme.Correct.Render("Correct!"))
	case sess.FeedbackIncorrect:
		b.WriteString(theme.Incorrect.Render("Not quite. Check your working and try again."))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Notice, "End this session?"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		"Only completed sessions count towards your progress."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body, "Y to end, N to keep going"))
	return b.String()
}

func renderError(width int, msg string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Incorrect, "Cannot start practice"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body, msg))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Hint, "Press any key to go back"))
	return b.String()
}
