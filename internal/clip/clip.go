// Package clip wraps the Vatti polygon clipper with the float64
// ring representation used by the annotation engine.
//
// The clipper operates on 64-bit integer coordinates, so every ring
// is snapped to a fixed-point grid on the way in and divided back out
// on the way out. At a scale of 1e7 the snap error is 1e-7 world
// units, far below the precision of painted geometry, while slide
// coordinates up to 1e9 stay well inside the clipper's integer range.
package clip

import (
	"errors"

	clipper "github.com/ctessum/go.clipper"
)

// ErrFailed is returned when the underlying clipper reports failure.
// The engine only constructs simple rings, so a failure indicates an
// invariant violation upstream, not bad user input.
var ErrFailed = errors.New("clip: boolean operation failed")

// scale converts world coordinates to fixed-point clipper units.
const scale = 1e7

// Point is a 2D vertex in world coordinates.
type Point struct {
	X, Y float64
}

// Ring is a closed sequence of vertices (closing edge implicit).
type Ring []Point

// Polygon is an exterior ring plus hole rings. Exteriors are
// counterclockwise (positive signed area), holes clockwise.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// Union returns the boolean OR of the two polygon sets.
func Union(subject, other []Polygon) ([]Polygon, error) {
	return execute(clipper.CtUnion, subject, other)
}

// Difference returns the area of subject not covered by other.
func Difference(subject, other []Polygon) ([]Polygon, error) {
	return execute(clipper.CtDifference, subject, other)
}

// Intersection returns the area covered by both polygon sets.
func Intersection(subject, other []Polygon) ([]Polygon, error) {
	return execute(clipper.CtIntersection, subject, other)
}

// DifferenceArea returns the area of ring minus the polygon set
// without materializing the result geometry. The membership
// rasterizer calls this once per rectangle, so it avoids the
// tree construction and float conversion of Difference.
func DifferenceArea(ring Ring, other []Polygon) (float64, error) {
	c := clipper.NewClipper(clipper.IoNone)
	addRing(c, ring, clipper.PtSubject)
	addPolygons(c, other, clipper.PtClip)

	solution, ok := c.Execute1(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return 0, ErrFailed
	}

	// Hole contours come back with negative orientation, so the
	// signed sum is the net enclosed area.
	area := 0.0
	for _, path := range solution {
		area += clipper.Area(path)
	}
	return area / (scale * scale), nil
}

func execute(op clipper.ClipType, subject, other []Polygon) ([]Polygon, error) {
	c := clipper.NewClipper(clipper.IoNone)
	addPolygons(c, subject, clipper.PtSubject)
	addPolygons(c, other, clipper.PtClip)

	tree, ok := c.Execute2(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, ErrFailed
	}
	return fromTree(tree), nil
}

func addPolygons(c *clipper.Clipper, polys []Polygon, kind clipper.PolyType) {
	for _, pg := range polys {
		addRing(c, pg.Exterior, kind)
		for _, h := range pg.Holes {
			addRing(c, h, kind)
		}
	}
}

func addRing(c *clipper.Clipper, r Ring, kind clipper.PolyType) {
	if len(r) < 3 {
		return
	}
	path := make(clipper.Path, 0, len(r))
	for _, p := range r {
		path = append(path, &clipper.IntPoint{
			X: clipper.Round(p.X * scale),
			Y: clipper.Round(p.Y * scale),
		})
	}
	// AddPath rejects paths that collapse below three distinct
	// vertices after snapping; such rings contribute no area.
	c.AddPath(path, kind, true)
}

func fromPath(path clipper.Path) Ring {
	r := make(Ring, 0, len(path))
	for _, ip := range path {
		r = append(r, Point{X: float64(ip.X) / scale, Y: float64(ip.Y) / scale})
	}
	return r
}

// fromTree flattens a clipper PolyTree into polygons, preserving the
// outer/hole nesting. Islands inside holes become new polygons.
func fromTree(tree *clipper.PolyTree) []Polygon {
	var out []Polygon
	for _, outer := range tree.Childs() {
		out = append(out, fromNode(outer)...)
	}
	return out
}

func fromNode(n *clipper.PolyNode) []Polygon {
	pg := Polygon{Exterior: orient(fromPath(n.Contour()), true)}
	var nested []Polygon
	for _, hole := range n.Childs() {
		pg.Holes = append(pg.Holes, orient(fromPath(hole.Contour()), false))
		for _, island := range hole.Childs() {
			nested = append(nested, fromNode(island)...)
		}
	}
	return append([]Polygon{pg}, nested...)
}

// orient enforces the ring orientation invariant: exteriors
// counterclockwise, holes clockwise.
func orient(r Ring, ccw bool) Ring {
	if (signedArea(r) >= 0) == ccw {
		return r
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r
}

func signedArea(r Ring) float64 {
	if len(r) < 3 {
		return 0
	}
	area := 0.0
	j := len(r) - 1
	for i := range r {
		area += r[j].X*r[i].Y - r[i].X*r[j].Y
		j = i
	}
	return area / 2
}
