package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/ui/theme"
)

// OptionList is a selector over a question's answer options. Grading happens
// outside the component; Reveal colors the rows once the answer is known.
type OptionList struct {
	Options  []string
	Selected int

	revealed   bool
	correctIdx int
	chosenIdx  int
}

// NewOptionList creates a selector over the given options.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options:    options,
		correctIdx: -1,
		chosenIdx:  -1,
	}
}

// Update handles keyboard navigation. Selection freezes once revealed.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.revealed {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}

	return o, nil
}

// Value returns the full text of the currently selected option.
func (o OptionList) Value() string {
	if o.Selected < 0 || o.Selected >= len(o.Options) {
		return ""
	}
	return o.Options[o.Selected]
}

// Reveal freezes the list and colors the correct and chosen rows.
func (o *OptionList) Reveal(correctIdx int) {
	o.revealed = true
	o.correctIdx = correctIdx
	o.chosenIdx = o.Selected
}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.revealed {
			prefix = "▸ "
		}
		line := prefix + opt

		switch {
		case o.revealed && i == o.correctIdx:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case o.revealed && i == o.chosenIdx:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case o.revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
