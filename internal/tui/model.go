// Package tui implements the roipaint terminal annotation painter: a
// bubbletea program that paints regions of interest with the mouse on
// a braille micro-pixel canvas, filled through membership queries and
// outlined from the annotation geometry.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	roi "github.com/microvis/roi"
)

// canvasViewport identifies the single paint canvas to the stroke
// machine, which confines every stroke to the viewport it started in.
const canvasViewport roi.ViewportID = 1

// sidebarWidth is the fixed width of the annotation panel.
const sidebarWidth = 30

const (
	minZoom = 0.05
	maxZoom = 64.0

	minRadius = 1.0
	maxRadius = 200.0
)

// Config carries the application settings the model starts with.
type Config struct {
	// BrushRadius is the initial pencil radius in world units.
	BrushRadius float64
	// SessionPath, when set, is loaded at startup and is the target of
	// the save key.
	SessionPath string
	// AutosaveDir receives an autosave on quit. Empty disables it.
	AutosaveDir string
	// Palette overrides the default annotation colour cycle.
	Palette []roi.Colour
}

type Model struct {
	width  int
	height int

	session  *roi.Session
	selected int
	cache    *roi.MembershipCache
	pens     *stylePen
	palette  []roi.Colour

	// view window: world position of the top-left micro-pixel and
	// micro-pixels per world unit
	zoom    float64
	originX float64
	originY float64

	radius   float64
	painting bool

	hovering  bool
	hoverMicX int
	hoverMicY int

	renaming bool
	input    textinput.Model

	helpVisible bool
	status      string

	sessionPath string
	autosaveDir string
}

func New(cfg Config) Model {
	m := Model{
		session:     roi.NewSession(),
		cache:       roi.NewMembershipCache(0),
		pens:        newStylePen(),
		palette:     cfg.Palette,
		zoom:        1,
		radius:      cfg.BrushRadius,
		helpVisible: true,
		status:      "roipaint ready",
		sessionPath: cfg.SessionPath,
		autosaveDir: cfg.AutosaveDir,
	}
	if m.radius <= 0 {
		m.radius = roi.DefaultPencilRadius
	}
	if len(m.palette) == 0 {
		m.palette = roi.DefaultPalette
	}
	ti := textinput.New()
	ti.Placeholder = "annotation name"
	ti.CharLimit = 64
	ti.Width = sidebarWidth - 8
	m.input = ti
	if cfg.SessionPath != "" {
		if s, err := roi.LoadSessionFile(cfg.SessionPath); err == nil {
			m.session = s
			m.status = fmt.Sprintf("loaded %d annotations from %s", s.Len(), cfg.SessionPath)
		}
	}
	if m.session.Len() == 0 {
		m.addAnnotation()
	}
	return m
}

// current returns the selected annotation, or nil when the session is
// empty.
func (m Model) current() *roi.Annotation {
	return m.session.Get(m.selected)
}

// addAnnotation appends an empty annotation with the next palette
// colour and selects it.
func (m *Model) addAnnotation() *roi.Annotation {
	colour := m.palette[m.session.Len()%len(m.palette)]
	a := roi.NewAnnotation(fmt.Sprintf("region %d", m.session.Len()+1), colour)
	m.session.Add(a)
	m.selected = m.session.Len() - 1
	return a
}

// selectAnnotation moves the selection, ending any edit on the
// annotation being left.
func (m *Model) selectAnnotation(i int) {
	if i == m.selected || i < 0 || i >= m.session.Len() {
		return
	}
	if a := m.current(); a != nil {
		a.StopEdit()
	}
	m.painting = false
	m.selected = i
	if a := m.current(); a != nil {
		m.status = "selected " + a.Description
	}
}

// layout is the frame geometry shared between View and the mouse
// handler: header, sidebar on the left, canvas filling the rest,
// two footer lines.
type frameLayout struct {
	canvasX int
	canvasY int
	canvasW int
	canvasH int
}

func (m Model) layout() frameLayout {
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)
	canvasW := contentWidth - sidebarWidth - 1
	if canvasW < 10 {
		canvasW = 10
	}
	return frameLayout{
		canvasX: sidebarWidth + 1,
		canvasY: headerHeight,
		canvasW: canvasW,
		canvasH: contentHeight,
	}
}
