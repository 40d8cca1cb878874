package tui

import (
	lipgloss "charm.land/lipgloss/v2"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/songbook/internal/core/styles"
)

const (
	maxListWidth = 30
	searchHeight = 3 // search box including its border
	helpHeight   = 1
)

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return w, h
}

func (m Model) listWidth() int {
	w, _ := m.size()
	return min(maxListWidth, max(w/3, 12))
}

// listRows is the number of entries visible in the list pane.
func (m Model) listRows() int {
	_, h := m.size()
	// border (2) and title (1)
	return max(h-helpHeight-searchHeight-3, 1)
}

// View renders the screen.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	bodyHeight := h - helpHeight
	listWidth := m.listWidth()

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.browser.View(listWidth, bodyHeight-searchHeight),
		m.browser.SearchView(listWidth),
	)
	right := m.song.View(w-listWidth, bodyHeight)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = styles.StatusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}
