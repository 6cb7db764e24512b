package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the model.
func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("rainbow • %s", m.title()))
	sections := []string{title, m.themeBar(), m.viewport.View(), m.footer()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) title() string {
	if strings.TrimSpace(m.path) != "" {
		return m.path
	}
	return "preview"
}

func (m Model) themeBar() string {
	if len(m.names) == 0 {
		return mutedStyle.Render("no themes registered")
	}
	items := make([]string, 0, len(m.names))
	for i, name := range m.names {
		if i == m.cursor {
			items = append(items, selectedStyle.Render(name))
			continue
		}
		items = append(items, themeStyle.Render(name))
	}
	return strings.Join(items, " ")
}

func (m Model) footer() string {
	p := m.previews[m.Selected()]
	stats := fmt.Sprintf("%d keys, %d ranges, %3.f%%", p.keys, p.ranges, m.viewport.ScrollPercent()*100)
	help := "←/→ theme • ↑/↓ scroll • enter accept • esc cancel"
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(stats),
		helpStyle.Render(help),
	)
}
