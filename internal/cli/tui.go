package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RevealModel - Interactive assignment reveal
// =============================================================================

// revealState tracks which screen the reveal flow is showing.
type revealState int

const (
	statePickName revealState = iota // choosing who is at the keyboard
	stateConfirm                     // warning everyone else to look away
	stateShowPick                    // showing the assignment
)

// RevealModel is the bubbletea model for revealing assignments one at a time.
// Each participant selects their own name, confirms nobody else is looking,
// and sees their pick. Revealed names are marked so nobody peeks twice.
type RevealModel struct {
	Names    []string
	Pairs    map[string]string
	Revealed map[string]bool

	state  revealState
	cursor int
}

// NewRevealModel creates a reveal model over the final pairing.
func NewRevealModel(names []string, pairs map[string]string) RevealModel {
	return RevealModel{
		Names:    names,
		Pairs:    pairs,
		Revealed: make(map[string]bool, len(names)),
	}
}

func (m RevealModel) Init() tea.Cmd {
	return nil
}

func (m RevealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.state {
	case statePickName:
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.Names)-1 {
				m.cursor++
			}
		case "enter":
			if !m.Revealed[m.Names[m.cursor]] {
				m.state = stateConfirm
			}
		}

	case stateConfirm:
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = statePickName
		case "enter":
			m.state = stateShowPick
		}

	case stateShowPick:
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.Revealed[m.Names[m.cursor]] = true
			m.state = statePickName
		}
	}
	return m, nil
}

func (m RevealModel) View() string {
	switch m.state {
	case stateConfirm:
		return m.viewConfirm()
	case stateShowPick:
		return m.viewPick()
	}
	return m.viewList()
}

func (m RevealModel) viewList() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Who are you?"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ reveal  q quit"))
	b.WriteString("\n\n")

	for i, name := range m.Names {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		status := " "
		if m.Revealed[name] {
			status = StyleSuccess.Render(iconSuccess)
		}

		line := fmt.Sprintf("%s%s %s", cursor, status, name)
		switch {
		case m.Revealed[name]:
			b.WriteString(listDimStyle.Render(line))
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d revealed]", len(m.Revealed), len(m.Names))))
	return b.String()
}

func (m RevealModel) viewConfirm() string {
	var b strings.Builder
	name := m.Names[m.cursor]

	b.WriteString(StyleTitle.Render("Ready, " + name + "?"))
	b.WriteString("\n\n")
	b.WriteString(StyleWarning.Render("  Make sure nobody else can see the screen."))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("⏎ show my pick  esc back  q quit"))
	return b.String()
}

func (m RevealModel) viewPick() string {
	var b strings.Builder
	name := m.Names[m.cursor]

	b.WriteString(StyleTitle.Render(name + ", you are giving to:"))
	b.WriteString("\n\n")
	b.WriteString("  " + StyleHighlight.Render(m.Pairs[name]))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("⏎ done, hand over the keyboard"))
	return b.String()
}
