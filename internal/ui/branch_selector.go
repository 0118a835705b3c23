package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhanushreddy291/neon-circle-ci-orb/internal/store"
)

// BranchSelector lets the user pick one recorded branch when a command
// is run without a branch argument on a terminal.
type BranchSelector struct {
	branches  []store.BranchRecord
	cursor    int
	done      bool
	cancelled bool
}

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func NewBranchSelector(branches []store.BranchRecord) *BranchSelector {
	return &BranchSelector{branches: branches}
}

func (m *BranchSelector) Init() tea.Cmd {
	return nil
}

func (m *BranchSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.branches)-1 {
				m.cursor++
			}

		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *BranchSelector) View() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render("Select a branch"))
	b.WriteString("\n\n")

	for i, branch := range m.branches {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, branch.Name, subtleStyle.Render(branch.ID))
		if i == m.cursor {
			line = boldStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")

	return b.String()
}

// SelectBranch runs the selector and returns the chosen record, or nil
// when the user cancelled.
func SelectBranch(branches []store.BranchRecord) (*store.BranchRecord, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("no recorded branches to select from")
	}

	model := NewBranchSelector(branches)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running selector: %w", err)
	}

	selector := final.(*BranchSelector)
	if selector.cancelled {
		return nil, nil
	}
	chosen := selector.branches[selector.cursor]
	return &chosen, nil
}
