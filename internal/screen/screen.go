package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/auth"
	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/store"
	"github.com/mathforge/mathforge/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Deps carries the collaborators screens share.
type Deps struct {
	Catalog  *catalog.Catalog
	Events   store.EventRepo
	Progress store.ProgressRepo
	Identity auth.Identity
	Logger   *zap.Logger
}
