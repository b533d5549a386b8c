package roi

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContour rejects vectorizing a contour with no points.
	// An empty contour is a caller bug, not a zero-area polygon.
	ErrEmptyContour = errors.New("roi: empty contour")

	// ErrContourStep reports consecutive contour pixels that are not
	// 8-neighbors, which no border trace can produce.
	ErrContourStep = errors.New("roi: contour step not 8-connected")
)

// Contour is an ordered chain of 8-connected boundary pixels of one
// raster component, as produced by border tracing. The chain is
// implicitly cyclic; it may revisit pixels where the trace backtracks
// through one-pixel-wide necks.
type Contour []Pixel

// Corner identifies one of the four corner positions of a pixel cell.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// String returns the corner name.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "invalid"
}

// offset returns the corner position within a pixel's unit cell, in
// raster orientation (y down).
func (c Corner) offset() (x, y int) {
	switch c {
	case TopLeft:
		return 0, 0
	case TopRight:
		return 1, 0
	case BottomRight:
		return 1, 1
	default:
		return 0, 1
	}
}

// next returns the following corner in the 4-cycle of the given
// winding: TL, TR, BR, BL for Clockwise and TL, BL, BR, TR for
// Anticlockwise, both in raster orientation.
func (c Corner) next(w Winding) Corner {
	if w == Clockwise {
		switch c {
		case TopLeft:
			return TopRight
		case TopRight:
			return BottomRight
		case BottomRight:
			return BottomLeft
		default:
			return TopLeft
		}
	}
	switch c {
	case TopLeft:
		return BottomLeft
	case BottomLeft:
		return BottomRight
	case BottomRight:
		return TopRight
	default:
		return TopLeft
	}
}

// Winding selects the sense of a corner walk. It must match the sense
// the contour was traced in: outer borders traced clockwise are walked
// with Clockwise, hole borders traced anticlockwise with
// Anticlockwise. Both senses are visual on a y-down raster; a
// Clockwise walk therefore yields a ring with positive signed area in
// this package's shoelace convention, an Anticlockwise walk a negative
// one.
type Winding uint8

const (
	Clockwise Winding = iota
	Anticlockwise
)

// String returns the winding name.
func (w Winding) String() string {
	if w == Clockwise {
		return "clockwise"
	}
	return "anticlockwise"
}

// cornerRule is one entry of a direction table: the corner the cursor
// must reach before leaving the current pixel, and the corner it
// carries into the next pixel.
type cornerRule struct {
	target, next Corner
}

// The direction tables, keyed by the (dx, dy) step between consecutive
// contour pixels. The walk emits one vertex per corner the cursor
// passes on its way to the target, which inserts the extra corners a
// turn sharper than 45 degrees needs.
var (
	clockwiseRules = map[[2]int]cornerRule{
		{1, 0}:   {TopRight, TopRight},       // east
		{1, 1}:   {BottomRight, TopRight},    // south-east
		{0, 1}:   {BottomRight, BottomRight}, // south
		{-1, 1}:  {BottomLeft, BottomRight},  // south-west
		{-1, 0}:  {BottomLeft, BottomLeft},   // west
		{-1, -1}: {TopLeft, BottomLeft},      // north-west
		{0, -1}:  {TopLeft, TopLeft},         // north
		{1, -1}:  {TopRight, TopLeft},        // north-east
	}
	anticlockwiseRules = map[[2]int]cornerRule{
		{1, 0}:   {BottomRight, BottomRight}, // east
		{1, 1}:   {BottomRight, BottomLeft},  // south-east
		{0, 1}:   {BottomLeft, BottomLeft},   // south
		{-1, 1}:  {BottomLeft, TopLeft},      // south-west
		{-1, 0}:  {TopLeft, TopLeft},         // west
		{-1, -1}: {TopLeft, TopRight},        // north-west
		{0, -1}:  {TopRight, TopRight},       // north
		{1, -1}:  {TopRight, BottomRight},    // north-east
	}
)

// Vectorize converts a traced pixel contour into a polygon ring whose
// vertices sit on pixel corners scaled by pixelSize, so the boundary
// follows the pixel grid exactly instead of connecting pixel centers.
// Straight runs produce no intermediate vertices; diagonal steps
// produce corner cuts.
//
// The contour must have been traced in the same sense as the winding
// argument and must start at a pixel whose top-left corner lies on the
// region boundary; border traces starting at the topmost-leftmost
// pixel of a component satisfy both.
func Vectorize(contour Contour, pixelSize float64, winding Winding) (Ring, error) {
	if len(contour) == 0 {
		return nil, ErrEmptyContour
	}

	rules := clockwiseRules
	if winding == Anticlockwise {
		rules = anticlockwiseRules
	}

	var ring Ring
	emit := func(p Pixel, c Corner) {
		ox, oy := c.offset()
		ring = append(ring, Pt(float64(p.X+ox)*pixelSize, float64(p.Y+oy)*pixelSize))
	}

	// A single pixel has no steps to classify: its boundary is simply
	// all four corners in cycle order.
	if len(contour) == 1 {
		c := TopLeft
		for i := 0; i < 4; i++ {
			emit(contour[0], c)
			c = c.next(winding)
		}
		return ring, nil
	}

	cursor := TopLeft
	for i, p := range contour {
		q := contour[(i+1)%len(contour)]
		dx, dy := q.X-p.X, q.Y-p.Y
		rule, ok := rules[[2]int{dx, dy}]
		if !ok {
			return nil, fmt.Errorf("%w: step (%d,%d) at index %d", ErrContourStep, dx, dy, i)
		}
		for cursor != rule.target {
			emit(p, cursor)
			cursor = cursor.next(winding)
		}
		cursor = rule.next
	}
	// Close the walk in the first pixel's frame.
	for cursor != TopLeft {
		emit(contour[0], cursor)
		cursor = cursor.next(winding)
	}
	return ring, nil
}
