package roi

import "math"

const (
	// circleSegments is the vertex count of the polygonal disk
	// approximation used for brush dabs.
	circleSegments = 20
	// capSteps subdivides each capsule end cap into half-turn arc
	// samples of pi/10 apiece.
	capSteps = 10
)

// CircleDab returns a regular 20-gon approximating a disk of the given
// radius, vertices evenly spaced counterclockwise starting at angle
// zero. A zero radius yields a degenerate ring that boolean operations
// simply discard.
func CircleDab(center Point, radius float64) Polygon {
	ring := make(Ring, circleSegments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return Polygon{Exterior: ring}
}

// Capsule returns the stadium shape swept by a disk of the given radius
// along the segment from p0 to p1: two edges offset by the segment
// normal, joined by half-circle caps. The ring is simple, closed and
// has 22 vertices for any non-degenerate segment. Coincident endpoints
// degrade to a circle dab.
func Capsule(p0, p1 Point, radius float64) Polygon {
	dir := p1.Sub(p0)
	if dir.Length() == 0 {
		return CircleDab(p0, radius)
	}
	// Unit normal to the stroke direction. Sweeping counterclockwise
	// from n by a quarter turn reaches dir itself, so each cap arc
	// bulges away from the opposite endpoint and the ring stays simple.
	n := Pt(dir.Y, -dir.X).Normalize()
	base := n.Angle()

	ring := make(Ring, 0, 2*capSteps+2)
	ring = append(ring, p0.Add(n.Mul(radius)), p1.Add(n.Mul(radius)))
	ring = appendCap(ring, p1, radius, base)
	ring = append(ring, p1.Sub(n.Mul(radius)), p0.Sub(n.Mul(radius)))
	ring = appendCap(ring, p0, radius, base+math.Pi)
	return Polygon{Exterior: ring}
}

// appendCap samples the open half-turn arc around center starting at
// the base angle. Both arc endpoints are excluded because the flat side
// vertices already cover them.
func appendCap(ring Ring, center Point, radius, base float64) Ring {
	for i := 1; i < capSteps; i++ {
		a := base + math.Pi*float64(i)/capSteps
		ring = append(ring, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return ring
}
