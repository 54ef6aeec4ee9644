package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/seojin/labquiz/internal/ui/theme"
)

// Checklist is a multi-select list with an implicit "all" state: no checked
// item means everything is selected.
type Checklist struct {
	Items   []string
	Cursor  int
	checked map[int]bool
}

// NewChecklist creates a checklist with nothing checked.
func NewChecklist(items []string) Checklist {
	return Checklist{
		Items:   items,
		checked: make(map[int]bool),
	}
}

// Update handles navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space":
		c.checked[c.Cursor] = !c.checked[c.Cursor]
	case "a":
		for i := range c.Items {
			delete(c.checked, i)
		}
	}

	return c, nil
}

// Checked returns the checked item labels in list order, nil when none are
// checked (the select-all state).
func (c Checklist) Checked() []string {
	var out []string
	for i, item := range c.Items {
		if c.checked[i] {
			out = append(out, item)
		}
	}
	return out
}

// View renders the checklist rows.
func (c Checklist) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if c.checked[i] {
			box = "[x]"
		}
		line := "  " + box + " " + item
		if i == c.Cursor {
			line = "▸ " + box + " " + item
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
