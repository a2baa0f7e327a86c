package practice

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// containsText reports whether the rendered view contains want once ANSI
// styling is removed.
func containsText(view, want string) bool {
	return strings.Contains(ansi.Strip(view), want)
}
