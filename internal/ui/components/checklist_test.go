package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func spaceKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}

func TestChecklist_SpaceToggles(t *testing.T) {
	c := NewChecklist([]string{"혈액학", "조직학", "임상화학"})

	c, _ = c.Update(spaceKey())
	checked := c.Checked()
	if len(checked) != 1 || checked[0] != "혈액학" {
		t.Fatalf("Checked() = %v, want [혈액학]", checked)
	}

	// Toggling again unchecks, back to the select-all state.
	c, _ = c.Update(spaceKey())
	if got := c.Checked(); got != nil {
		t.Errorf("Checked() = %v, want nil after untoggle", got)
	}
}

func TestChecklist_NavigateAndToggle(t *testing.T) {
	c := NewChecklist([]string{"혈액학", "조직학", "임상화학"})

	c, _ = c.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	c, _ = c.Update(spaceKey())
	c, _ = c.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	c, _ = c.Update(spaceKey())

	checked := c.Checked()
	if len(checked) != 2 || checked[0] != "조직학" || checked[1] != "임상화학" {
		t.Fatalf("Checked() = %v, want [조직학 임상화학]", checked)
	}
}

func TestChecklist_ClearAll(t *testing.T) {
	c := NewChecklist([]string{"혈액학", "조직학"})

	c, _ = c.Update(spaceKey())
	c, _ = c.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if got := c.Checked(); got != nil {
		t.Errorf("Checked() = %v, want nil after clear", got)
	}
}
