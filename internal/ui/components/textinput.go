package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mathforge/mathforge/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with MathForge styling and an optional
// verdict mark shown after the value.
type TextInput struct {
	Model   textinput.Model
	marked  bool
	correct bool
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. It reports whether the value changed.
func (t TextInput) Update(msg tea.Msg) (TextInput, bool, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, t.Model.Value() != before, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.marked {
		if t.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Mark shows a correct or incorrect mark after the value.
func (t *TextInput) Mark(correct bool) {
	t.marked = true
	t.correct = correct
}

// Unmark hides the verdict mark.
func (t *TextInput) Unmark() {
	t.marked = false
}
