package roi

import "fmt"

// TracedContour is one border chain of a mask component: the outer
// border of a foreground component, or the border of a hole enclosed
// by it. Outer borders are traced clockwise, hole borders
// anticlockwise, matching the winding the vectorizer expects.
type TracedContour struct {
	Pixels    Contour
	Hole      bool
	Component int
}

// Moore neighborhoods in both traversal senses, raster orientation.
var (
	mooreCW  = [8]Pixel{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	mooreACW = [8]Pixel{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// TraceContours finds every border chain of the mask. Foreground
// components are 8-connected; the background complements them with
// 4-connectivity, so diagonal foreground necks do not leak. Holes are
// background components that cannot reach the mask border. Contours
// come out grouped: each component's outer border first, its holes
// after it, all starting at their topmost-leftmost pixel.
func TraceContours(m *Mask) []TracedContour {
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return nil
	}

	// Label the 8-connected foreground components in row-major
	// discovery order.
	fg := make([]int, w*h)
	var fgStarts []Pixel
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.At(x, y) || fg[y*w+x] != 0 {
				continue
			}
			fgStarts = append(fgStarts, Pixel{X: x, Y: y})
			flood(w, h, Pixel{X: x, Y: y}, mooreCW[:], func(p Pixel) bool {
				return m.At(p.X, p.Y) && fg[p.Y*w+p.X] == 0
			}, func(p Pixel) {
				fg[p.Y*w+p.X] = len(fgStarts)
			})
		}
	}

	// Label the 4-connected background components and find which ones
	// reach the border.
	bg := make([]int, w*h)
	var bgStarts []Pixel
	var bgOpen []bool
	sides := []Pixel{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.At(x, y) || bg[y*w+x] != 0 {
				continue
			}
			bgStarts = append(bgStarts, Pixel{X: x, Y: y})
			bgOpen = append(bgOpen, false)
			id := len(bgStarts)
			flood(w, h, Pixel{X: x, Y: y}, sides, func(p Pixel) bool {
				return !m.At(p.X, p.Y) && bg[p.Y*w+p.X] == 0
			}, func(p Pixel) {
				bg[p.Y*w+p.X] = id
				if p.X == 0 || p.X == w-1 || p.Y == 0 || p.Y == h-1 {
					bgOpen[id-1] = true
				}
			})
		}
	}

	// Trace outers clockwise and holes anticlockwise, grouping holes
	// behind their enclosing component. The pixel left of a hole's
	// topmost-leftmost pixel is always foreground of that component.
	out := make([]TracedContour, 0, len(fgStarts))
	for comp := range fgStarts {
		id := comp + 1
		inside := func(x, y int) bool {
			return x >= 0 && x < w && y >= 0 && y < h && fg[y*w+x] == id
		}
		out = append(out, TracedContour{
			Pixels:    traceBorder(inside, fgStarts[comp], Clockwise),
			Component: comp,
		})
		for hole := range bgStarts {
			if bgOpen[hole] {
				continue
			}
			start := bgStarts[hole]
			if fg[start.Y*w+start.X-1] != id {
				continue
			}
			holeID := hole + 1
			holeInside := func(x, y int) bool {
				return x >= 0 && x < w && y >= 0 && y < h && bg[y*w+x] == holeID
			}
			out = append(out, TracedContour{
				Pixels:    traceBorder(holeInside, start, Anticlockwise),
				Hole:      true,
				Component: comp,
			})
		}
	}
	return out
}

// flood visits the region reachable from start through the given
// neighbor offsets. want filters candidates, mark claims them; mark
// must make want false or the fill will not terminate.
func flood(w, h int, start Pixel, neighbors []Pixel, want func(Pixel) bool, mark func(Pixel)) {
	mark(start)
	queue := []Pixel{start}
	for len(queue) > 0 {
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, d := range neighbors {
			n := Pixel{X: p.X + d.X, Y: p.Y + d.Y}
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h || !want(n) {
				continue
			}
			mark(n)
			queue = append(queue, n)
		}
	}
}

// borderState is one step of a Moore walk: the pixel the trace is on
// and the outside pixel it arrived around. The walk is deterministic,
// so the first repeated state closes the cycle.
type borderState struct {
	pos, back Pixel
}

// traceBorder follows the region border by the Moore neighborhood,
// starting at the region's topmost-leftmost pixel (whose left neighbor
// is guaranteed outside and seeds the backtrack). It returns one full
// period of the walk, rotated so the topmost-leftmost pixel leads.
func traceBorder(inside func(x, y int) bool, start Pixel, w Winding) Contour {
	ring := mooreCW
	if w == Anticlockwise {
		ring = mooreACW
	}

	cur := borderState{pos: start, back: Pixel{X: start.X - 1, Y: start.Y}}
	seen := map[borderState]int{cur: 0}
	walk := Contour{start}

	for {
		next, ok := mooreStep(cur, ring, inside)
		if !ok {
			// No neighbors at all: a single-pixel region.
			return walk
		}
		if first, dup := seen[next]; dup {
			return rotateTopLeftFirst(walk[first:])
		}
		seen[next] = len(walk)
		walk = append(walk, next.pos)
		cur = next
	}
}

// mooreStep scans the neighborhood ring from just past the backtrack
// position and moves to the first inside pixel, remembering the last
// outside pixel probed before it.
func mooreStep(cur borderState, ring [8]Pixel, inside func(x, y int) bool) (borderState, bool) {
	rel := Pixel{X: cur.back.X - cur.pos.X, Y: cur.back.Y - cur.pos.Y}
	idx := 0
	for i, d := range ring {
		if d == rel {
			idx = i
			break
		}
	}
	prev := cur.back
	for k := 1; k <= 8; k++ {
		d := ring[(idx+k)%8]
		n := Pixel{X: cur.pos.X + d.X, Y: cur.pos.Y + d.Y}
		if inside(n.X, n.Y) {
			return borderState{pos: n, back: prev}, true
		}
		prev = n
	}
	return borderState{}, false
}

// rotateTopLeftFirst rotates a cyclic contour so its topmost-leftmost
// pixel comes first, the start convention the corner walk expects.
func rotateTopLeftFirst(c Contour) Contour {
	min := 0
	for i, p := range c {
		if p.Y < c[min].Y || (p.Y == c[min].Y && p.X < c[min].X) {
			min = i
		}
	}
	if min == 0 {
		return c
	}
	out := make(Contour, 0, len(c))
	out = append(out, c[min:]...)
	out = append(out, c[:min]...)
	return out
}

// VectorizeMask traces the mask and corner-walks every border into
// exact pixel-corner geometry: one polygon per foreground component,
// holes included, scaled by pixelSize.
func VectorizeMask(m *Mask, pixelSize float64) (MultiPolygon, error) {
	traced := TraceContours(m)
	if len(traced) == 0 {
		return nil, nil
	}

	var out MultiPolygon
	for _, tc := range traced {
		winding := Clockwise
		if tc.Hole {
			winding = Anticlockwise
		}
		ring, err := Vectorize(tc.Pixels, pixelSize, winding)
		if err != nil {
			return nil, fmt.Errorf("vectorize component %d: %w", tc.Component, err)
		}
		if tc.Hole {
			last := &out[len(out)-1]
			last.Holes = append(last.Holes, ring)
			continue
		}
		out = append(out, Polygon{Exterior: ring})
	}
	return out, nil
}
