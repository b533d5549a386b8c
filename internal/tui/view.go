package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := titleStyle.Render(" roipaint ─ region of interest painter ")
	header = lipgloss.NewStyle().Width(m.width).Render(header)

	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(lay.canvasH).Render(m.renderSidebar())
	canvas := lipgloss.NewStyle().Width(lay.canvasW).Height(lay.canvasH).Render(m.renderCanvas(lay.canvasW, lay.canvasH))
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas)

	status := dimStyle.Render(" " + m.status + " ")
	footer := lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).Render(ui)
}

// renderSidebar lists the session's annotations with a colour swatch,
// selection marker and painted area, the rename field when active, and
// the membership cache counters underneath.
func (m Model) renderSidebar() string {
	var lines []string
	lines = append(lines, titleStyle.Render("Annotations"))
	for i, a := range m.session.Annotations() {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		swatch := m.pens.style(m.pens.id(a.Colour)).Render("■")
		name := a.Description
		if !a.Visible {
			name = hiddenStyle.Render(name)
		}
		if i == m.selected && m.renaming {
			name = m.input.View()
		}
		lines = append(lines, marker+swatch+" "+name)
		lines = append(lines, dimStyle.Render(fmt.Sprintf("     area %.0f", a.Snapshot().Area())))
	}
	stats := m.cache.Stats()
	lines = append(lines,
		"",
		dimStyle.Render(fmt.Sprintf("brush %.1f  zoom %.2fx", m.radius, m.zoom)),
		dimStyle.Render(fmt.Sprintf("cache %d entries, %.0f%% hit", stats.Entries, stats.HitRate*100)),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag paint",
		"↑↓←→ pan",
		"+/- zoom",
		"[ ] radius",
		"n new",
		"d delete",
		"Tab select",
		"c colour",
		"v visible",
		"r rename",
		"s save",
		"o load",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
