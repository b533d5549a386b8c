package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	roi "github.com/microvis/roi"
)

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renaming = false
		m.input.Blur()
		m.status = "rename cancelled"
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if a := m.current(); a != nil && name != "" {
			a.Description = name
			m.status = "renamed to " + name
		}
		m.renaming = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.autosave()
		return m, tea.Quit
	case "n":
		a := m.addAnnotation()
		m.status = "new annotation: " + a.Description
	case "d":
		if removed := m.session.Remove(m.selected); removed != nil {
			removed.StopEdit()
			m.painting = false
			m.status = "deleted " + removed.Description
			if m.selected >= m.session.Len() {
				m.selected = m.session.Len() - 1
			}
			if m.selected < 0 {
				m.selected = 0
			}
		}
	case "tab", "j":
		if n := m.session.Len(); n > 0 {
			m.selectAnnotation((m.selected + 1) % n)
		}
	case "shift+tab", "k":
		if n := m.session.Len(); n > 0 {
			m.selectAnnotation((m.selected + n - 1) % n)
		}
	case "c":
		if a := m.current(); a != nil {
			a.Colour = m.nextColour(a.Colour)
			m.status = "colour " + a.Colour.Hex()
		}
	case "v":
		if a := m.current(); a != nil {
			a.Visible = !a.Visible
			m.status = fmt.Sprintf("%s visible: %v", a.Description, a.Visible)
		}
	case "r":
		if a := m.current(); a != nil {
			m.renaming = true
			m.input.SetValue(a.Description)
			m.input.CursorEnd()
			m.status = "renaming " + a.Description
			return m, m.input.Focus()
		}
	case "[":
		m.radius /= 1.25
		if m.radius < minRadius {
			m.radius = minRadius
		}
		m.status = fmt.Sprintf("brush radius: %.1f", m.radius)
	case "]":
		m.radius *= 1.25
		if m.radius > maxRadius {
			m.radius = maxRadius
		}
		m.status = fmt.Sprintf("brush radius: %.1f", m.radius)
	case "+", "=":
		m.zoomBy(1.2)
		m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
	case "-", "_":
		m.zoomBy(1 / 1.2)
		m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
	case "0":
		m.zoom = 1
		m.originX = 0
		m.originY = 0
		m.status = "view reset"
	case "s":
		m.saveSession()
	case "o":
		m.loadSession()
	case "h":
		m.helpVisible = !m.helpVisible
	case "up":
		m.panBy(0, -4)
	case "down":
		m.panBy(0, 4)
	case "left":
		m.panBy(-4, 0)
	case "right":
		m.panBy(4, 0)
	}
	return m, nil
}

// handleMouse routes pointer input: left press and drag paint into the
// selected annotation through the stroke machine, the wheel zooms, and
// plain motion tracks the brush cursor. The hit test mirrors the View
// layout.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cellX := msg.X - lay.canvasX
	cellY := msg.Y - lay.canvasY
	inCanvas := cellX >= 0 && cellX < lay.canvasW && cellY >= 0 && cellY < lay.canvasH
	m.hovering = inCanvas
	if inCanvas {
		// terminal mouse reports whole cells; aim at the cell centre
		m.hoverMicX = cellX*2 + 1
		m.hoverMicY = cellY*4 + 2
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !inCanvas {
				return
			}
			a := m.current()
			if a == nil {
				a = m.addAnnotation()
			}
			a.SetActiveTool(roi.PencilTool{Radius: m.radius})
			m.painting = true
			m.applyPointer(a, roi.PointerPressed)
		case tea.MouseButtonWheelUp:
			m.zoomBy(1.1)
		case tea.MouseButtonWheelDown:
			m.zoomBy(1 / 1.1)
		}
	case tea.MouseActionMotion:
		if m.painting && inCanvas {
			if a := m.current(); a != nil {
				m.applyPointer(a, roi.PointerPressed)
			}
		}
	case tea.MouseActionRelease:
		if m.painting {
			m.painting = false
			if a := m.current(); a != nil {
				m.applyPointer(a, roi.PointerReleased)
			}
		}
	}
}

func (m *Model) applyPointer(a *roi.Annotation, phase roi.PointerPhase) {
	ev := roi.PointerEvent{
		Point:    m.microToWorld(m.hoverMicX, m.hoverMicY),
		Viewport: canvasViewport,
		Phase:    phase,
	}
	changed, err := a.ApplyPointer(ev)
	if err != nil {
		m.status = "paint error: " + err.Error()
		return
	}
	if changed {
		m.status = fmt.Sprintf("painting %s, area %.0f", a.Description, a.Snapshot().Area())
	}
}

func (m *Model) nextColour(c roi.Colour) roi.Colour {
	for i, pc := range m.palette {
		if pc == c {
			return m.palette[(i+1)%len(m.palette)]
		}
	}
	return m.palette[0]
}

func (m *Model) saveSession() {
	path := m.sessionPath
	if path == "" {
		path = roi.AutosaveFilename
	}
	if err := m.session.SaveFile(path); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) loadSession() {
	if m.sessionPath == "" {
		m.status = "no session path configured"
		return
	}
	s, err := roi.LoadSessionFile(m.sessionPath)
	if err != nil {
		m.status = "load failed: " + err.Error()
		return
	}
	m.session = s
	m.selected = 0
	m.painting = false
	m.cache.Clear()
	m.status = fmt.Sprintf("loaded %d annotations", s.Len())
}

func (m *Model) autosave() {
	if m.autosaveDir == "" {
		return
	}
	if err := m.session.Autosave(m.autosaveDir); err != nil {
		m.status = "autosave failed: " + err.Error()
	}
}
