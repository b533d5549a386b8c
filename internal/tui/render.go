package tui

import (
	"strings"

	roi "github.com/microvis/roi"
)

// viewTransform maps canvas micro-pixels into annotation world space:
// scale by the inverse zoom, then shift to the view origin. It is the
// Transform of every membership query the canvas issues.
func (m Model) viewTransform() roi.Matrix {
	s := 1 / m.zoom
	return roi.Translate(m.originX, m.originY).Multiply(roi.Scale(s, s))
}

// microToWorld returns the world position of a micro-pixel's centre.
func (m Model) microToWorld(mx, my int) roi.Point {
	return m.viewTransform().TransformPoint(roi.Pt(float64(mx)+0.5, float64(my)+0.5))
}

// zoomBy rescales the view around the canvas centre so the world point
// under the middle of the canvas stays put.
func (m *Model) zoomBy(factor float64) {
	lay := m.layout()
	// canvas centre in micro-pixels: half of 2w x 4h
	cx := float64(lay.canvasW)
	cy := float64(lay.canvasH * 2)
	before := m.viewTransform().TransformPoint(roi.Pt(cx, cy))
	m.zoom *= factor
	if m.zoom < minZoom {
		m.zoom = minZoom
	}
	if m.zoom > maxZoom {
		m.zoom = maxZoom
	}
	after := m.viewTransform().TransformPoint(roi.Pt(cx, cy))
	m.originX += before.X - after.X
	m.originY += before.Y - after.Y
}

// panBy shifts the view by whole micro-pixels.
func (m *Model) panBy(dxMic, dyMic int) {
	m.originX += float64(dxMic) / m.zoom
	m.originY += float64(dyMic) / m.zoom
}

// renderCanvas paints every visible annotation onto a fresh braille
// buffer: membership over the canvas micro-grid fills the region, the
// polygon rings draw the outline on top, and the brush cursor rides
// above everything. Annotations later in the session draw over earlier
// ones; the selected annotation draws last.
func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	view := m.viewTransform()
	q := roi.PixelQuery{Width: w * 2, Height: h * 4, Transform: view}
	inv := view.Invert()

	annotations := m.session.Annotations()
	order := make([]int, 0, len(annotations))
	for i := range annotations {
		if i != m.selected {
			order = append(order, i)
		}
	}
	if m.selected >= 0 && m.selected < len(annotations) {
		order = append(order, m.selected)
	}

	for _, i := range order {
		a := annotations[i]
		if !a.Visible {
			continue
		}
		pen := m.pens.id(a.Colour)
		pixels, err := m.cache.Membership(a, q, q.FullRect())
		if err != nil {
			continue
		}
		for _, p := range pixels {
			br.setPixel(p.X, p.Y, pen)
		}
		for _, pg := range a.Snapshot() {
			br.drawRing(pg.Exterior, inv, pen)
			for _, hole := range pg.Holes {
				br.drawRing(hole, inv, pen)
			}
		}
	}

	if m.hovering && !m.renaming {
		if a := m.current(); a != nil {
			centre := m.microToWorld(m.hoverMicX, m.hoverMicY)
			cursor := roi.CircleDab(centre, m.radius)
			br.drawRing(cursor.Exterior, inv, m.pens.id(a.Colour))
		}
	}

	return strings.Join(br.toLines(m.pens), "\n")
}
