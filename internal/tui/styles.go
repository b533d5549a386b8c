package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	roi "github.com/microvis/roi"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#34D399")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	hiddenStyle = lipgloss.NewStyle().Foreground(baseDimFg).Strikethrough(true)
)

// stylePen interns one lipgloss foreground style per annotation colour
// so canvas rows can be rendered as runs of equally styled cells. Pens
// are keyed by the full RGBA colour; alpha does not affect terminal
// output but keeps distinct palette entries distinct.
type stylePen struct {
	byColour map[roi.Colour]penID
	list     []lipgloss.Style
}

// penID indexes a style in a stylePen. noPen marks unpainted cells.
type penID = int16

const noPen penID = -1

func newStylePen() *stylePen {
	return &stylePen{byColour: make(map[roi.Colour]penID)}
}

func (p *stylePen) id(c roi.Colour) penID {
	if id, ok := p.byColour[c]; ok {
		return id
	}
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	p.list = append(p.list, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)))
	id := penID(len(p.list) - 1)
	p.byColour[c] = id
	return id
}

func (p *stylePen) style(id penID) lipgloss.Style {
	return p.list[id]
}
