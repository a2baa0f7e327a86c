package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mathforge/mathforge/internal/router"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/screens/practice"
	"github.com/mathforge/mathforge/internal/screens/topics"
	"github.com/mathforge/mathforge/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Deps screen.Deps

	// Subtopic, when set, opens a practice session on top of the topics
	// screen at startup.
	Subtopic string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	start  string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(topics.New(opts.Deps)),
		deps:   opts.Deps,
		start:  opts.Subtopic,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != "" {
		p := practice.New(m.deps, m.start)
		cmds = append(cmds, router.PushCmd(p))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.deps.Identity.DisplayName(), m.deps.Identity.SignedIn(), m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hp.KeyHints(), hints...)
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	return err
}
