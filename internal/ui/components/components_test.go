package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestProgressBar_WidthAndClamp(t *testing.T) {
	for _, pct := range []float64{-10, 0, 33.3, 100, 250} {
		v := NewProgressBar("Overall", pct, true, 40).View()
		if w := lipgloss.Width(v); w != 40 {
			t.Errorf("pct %v: width %d, want 40", pct, w)
		}
	}
	if got := ansi.Strip(NewProgressBar("", 66.6, true, 30).View()); !strings.HasSuffix(got, "67%") {
		t.Errorf("percent label = %q, want rounded 67%%", got)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "Practice again", Disabled: true},
		{Label: "Back", Action: func() tea.Cmd { ran = "back"; return nil }},
		{Label: "Disabled tail", Disabled: true},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("selection moved onto a disabled item: %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "back" {
		t.Errorf("enter did not run the selected action")
	}
}
