// Package topics is the root screen: the topic forest with each learner's
// aggregated progress.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/logging"
	"github.com/mathforge/mathforge/internal/progress"
	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/screens/history"
	"github.com/mathforge/mathforge/internal/screens/practice"
	"github.com/mathforge/mathforge/internal/ui/components"
	"github.com/mathforge/mathforge/internal/ui/layout"
	"github.com/mathforge/mathforge/internal/ui/theme"
)

type progressLoadedMsg struct {
	Reports []progress.Report
	Overall float64
	Err     error
}

type row struct {
	report progress.Report
	depth  int
}

// TopicsScreen lists topics and subtopics with completion bars.
type TopicsScreen struct {
	deps     screen.Deps
	reports  []progress.Report
	overall  float64
	expanded map[string]bool
	rows     []row
	cursor   int
	scroll   int
	loaded   bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.Resumer = (*TopicsScreen)(nil)

// New creates the topics screen. Every top-level topic starts expanded.
func New(deps screen.Deps) *TopicsScreen {
	deps.Logger = logging.OrNop(deps.Logger)
	s := &TopicsScreen{deps: deps, expanded: make(map[string]bool)}
	for _, t := range deps.Catalog.Topics() {
		s.expanded[t.ID] = true
	}
	return s
}

func (s *TopicsScreen) Init() tea.Cmd { return s.load() }

// Resume reloads progress after a practice session or reset.
func (s *TopicsScreen) Resume() tea.Cmd {
	s.notice = ""
	return s.load()
}

func (s *TopicsScreen) Title() string { return "Topics" }

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open / Practice"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

// load reads the user's completion counts and recomputes every percentage
// from the catalog leaves.
func (s *TopicsScreen) load() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		counts := map[string]int{}
		if deps.Identity.SignedIn() && deps.Progress != nil {
			var err error
			counts, err = deps.Progress.CompletedCounts(context.Background(), deps.Identity.UserID)
			if err != nil {
				return progressLoadedMsg{Err: fmt.Errorf("load progress: %w", err)}
			}
		}

		forest := deps.Catalog.WithCompleted(counts)
		reports, err := progress.BuildForest(forest)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		overall, err := progress.Overall(forest)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		return progressLoadedMsg{Reports: reports, Overall: overall}
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Logger.Error("load progress", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.reports = msg.Reports
		s.overall = msg.Overall
		s.rebuild()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case "left":
			s.collapse()
		case "right", "space":
			s.expand()
		case "enter":
			return s, s.selectRow()
		case "h":
			return s, router.PushCmd(history.New(s.deps))
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

// rebuild flattens the visible part of the forest into rows, keeping the
// cursor on the same node where possible.
func (s *TopicsScreen) rebuild() {
	var current string
	if s.cursor < len(s.rows) {
		current = s.rows[s.cursor].report.ID
	}

	s.rows = s.rows[:0]
	var walk func(r progress.Report, depth int)
	walk = func(r progress.Report, depth int) {
		s.rows = append(s.rows, row{report: r, depth: depth})
		if len(r.Children) > 0 && s.expanded[r.ID] {
			for _, c := range r.Children {
				walk(c, depth+1)
			}
		}
	}
	for _, r := range s.reports {
		walk(r, 0)
	}

	s.cursor = 0
	for i, r := range s.rows {
		if r.report.ID == current {
			s.cursor = i
			break
		}
	}
}

func (s *TopicsScreen) expand() {
	if s.cursor >= len(s.rows) {
		return
	}
	r := s.rows[s.cursor].report
	if len(r.Children) > 0 && !s.expanded[r.ID] {
		s.expanded[r.ID] = true
		s.rebuild()
	}
}

func (s *TopicsScreen) collapse() {
	if s.cursor >= len(s.rows) {
		return
	}
	id := s.rows[s.cursor].report.ID
	if len(s.rows[s.cursor].report.Children) == 0 || !s.expanded[id] {
		// Collapse the parent instead and move onto it.
		id = s.deps.Catalog.Parent(id)
		if id == "" {
			return
		}
	}
	s.expanded[id] = false
	for i, r := range s.rows {
		if r.report.ID == id {
			s.cursor = i
			break
		}
	}
	s.rebuild()
}

// selectRow toggles an interior topic or starts practice on a subtopic.
func (s *TopicsScreen) selectRow() tea.Cmd {
	if s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor].report
	if len(r.Children) > 0 {
		s.expanded[r.ID] = !s.expanded[r.ID]
		s.rebuild()
		return nil
	}

	if !s.deps.Identity.SignedIn() {
		s.notice = "Sign in to practise: set MATHFORGE_AUTH_TOKEN to your MathForge token."
		return nil
	}
	if s.deps.Catalog.ProblemCount(r.ID) == 0 {
		s.notice = fmt.Sprintf("No problems for %s yet.", r.Title)
		return nil
	}
	s.notice = ""
	p := practice.New(s.deps, r.ID)
	return router.PushCmd(p)
}

func (s *TopicsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			"\n\nCould not load progress: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\nLoading topics...")
	}

	cw := layout.ContentWidth(width)
	var head strings.Builder
	head.WriteString("\n")
	head.WriteString(components.NewProgressBar("Overall progress", s.overall, true, cw).View())
	head.WriteString("\n")
	if s.notice != "" {
		head.WriteString(theme.Notice.Render(s.notice))
	}
	head.WriteString("\n")

	listHeight := height - lipgloss.Height(head.String()) - 1
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scroll; i < len(s.rows) && len(lines) < listHeight; i++ {
		lines = append(lines, s.renderRow(s.rows[i], i == s.cursor, cw))
	}

	body := head.String() + strings.Join(lines, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}

func (s *TopicsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+height {
		s.scroll = s.cursor - height + 1
	}
}

func (s *TopicsScreen) renderRow(r row, selected bool, width int) string {
	rep := r.report
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if len(rep.Children) > 0 {
		marker = "▸ "
		if s.expanded[rep.ID] {
			marker = "▾ "
		}
	}

	const labelWidth = 34
	label := []rune(indent + marker + rep.Title)
	if len(label) > labelWidth {
		label = append(label[:labelWidth-1], '…')
	}

	style := theme.Unselected
	switch {
	case selected:
		style = theme.Selected
	case r.depth == 0:
		style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	}

	cursor := "  "
	if selected {
		cursor = "› "
	}
	text := style.Width(labelWidth).Render(string(label)) +
		fmt.Sprintf(" %7s", fmt.Sprintf("%d/%d", rep.Counts.Completed, rep.Counts.Total))
	barWidth := width - lipgloss.Width(cursor+text) - 2
	bar := components.NewProgressBar("", rep.Percentage, true, barWidth).View()
	return cursor + text + "  " + bar
}
