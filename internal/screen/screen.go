package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/ui/layout"
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

// EscHandler is an optional interface for screens that intercept the esc key
// themselves (e.g. to show a confirmation) instead of the default pop.
type EscHandler interface {
	HandlesEsc() bool
}

// RefreshBadgeMsg asks the root model to re-read the review-log count shown
// in the header. Screens emit it after persisting session results.
type RefreshBadgeMsg struct{}

// PeriodChangedMsg announces a switch of the active exam period. The root
// model updates its header; the menu rebuilds its actions.
type PeriodChangedMsg struct {
	Period question.Period
}
