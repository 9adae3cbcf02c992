package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRevealModel() RevealModel {
	return NewRevealModel(
		[]string{"alice", "bob", "carol"},
		map[string]string{"alice": "bob", "bob": "carol", "carol": "alice"},
	)
}

func update(t *testing.T, m RevealModel, keys ...string) RevealModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(RevealModel)
		if !ok {
			t.Fatalf("Update returned %T, want RevealModel", next)
		}
	}
	return m
}

func TestRevealFlow(t *testing.T) {
	m := testRevealModel()

	// Select bob, confirm, and view the pick.
	m = update(t, m, "down", "enter")
	if m.state != stateConfirm {
		t.Fatalf("state = %v, want confirm", m.state)
	}
	m = update(t, m, "enter")
	if m.state != stateShowPick {
		t.Fatalf("state = %v, want show pick", m.state)
	}
	if !strings.Contains(m.View(), "carol") {
		t.Error("pick view should show bob's pick")
	}

	// Closing the pick marks bob revealed and returns to the list.
	m = update(t, m, "enter")
	if m.state != statePickName {
		t.Errorf("state = %v, want pick name", m.state)
	}
	if !m.Revealed["bob"] {
		t.Error("bob should be marked revealed")
	}
}

func TestRevealConfirmEscGoesBack(t *testing.T) {
	m := update(t, testRevealModel(), "enter", "esc")
	if m.state != statePickName {
		t.Errorf("state = %v, want pick name after esc", m.state)
	}
}

func TestRevealedNameCannotReopen(t *testing.T) {
	m := testRevealModel()
	m.Revealed["alice"] = true

	m = update(t, m, "enter")
	if m.state != statePickName {
		t.Error("a revealed name must not open the confirm screen again")
	}
}

func TestRevealCursorBounds(t *testing.T) {
	m := update(t, testRevealModel(), "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.cursor)
	}

	m = update(t, m, "down", "down", "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 at bottom", m.cursor)
	}
}

func TestRevealViewListsNames(t *testing.T) {
	view := testRevealModel().View()
	for _, name := range []string{"alice", "bob", "carol"} {
		if !strings.Contains(view, name) {
			t.Errorf("list view missing %q", name)
		}
	}
}

func TestRevealQuit(t *testing.T) {
	m := testRevealModel()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
