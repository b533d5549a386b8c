package roi

import "encoding/json"

// Ring is a closed polygon boundary. The closing edge from the last
// point back to the first is implicit; rings never repeat their first
// point at the end.
type Ring []Point

// Area returns the signed area of the ring (shoelace formula).
// Counterclockwise rings have positive area in y-up world space.
func (r Ring) Area() float64 {
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

// Bounds returns the axis-aligned bounding box of the ring.
func (r Ring) Bounds() Bounds {
	if len(r) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: r[0], Max: r[0]}
	for _, p := range r[1:] {
		b = b.ExtendPoint(p)
	}
	return b
}

// winding computes the winding number of the ring around p.
// Nonzero means p is inside.
func (r Ring) winding(p Point) int {
	w := 0
	j := len(r) - 1
	for i := range r {
		a, b := r[j], r[i]
		if a.Y <= p.Y {
			if b.Y > p.Y && isLeft(a, b, p) > 0 {
				w++
			}
		} else {
			if b.Y <= p.Y && isLeft(a, b, p) < 0 {
				w--
			}
		}
		j = i
	}
	return w
}

// isLeft returns a positive value when p lies left of the directed
// edge a->b, negative when right, zero when collinear.
func isLeft(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// Contains reports whether p lies inside the ring (nonzero winding).
func (r Ring) Contains(p Point) bool {
	return r.winding(p) != 0
}

// Clone returns a deep copy of the ring.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Reversed returns the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Transform returns the ring with every vertex mapped through m.
func (r Ring) Transform(m Matrix) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Polygon is one simple polygon: an exterior ring and zero or more
// hole rings, each strictly inside the exterior.
//
// The JSON form is an array of rings with the exterior first,
// matching the usual GeoJSON nesting of coordinate arrays.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// MarshalJSON encodes the polygon as [exterior, hole, hole, ...].
func (pg Polygon) MarshalJSON() ([]byte, error) {
	rings := make([]Ring, 0, 1+len(pg.Holes))
	rings = append(rings, pg.Exterior)
	rings = append(rings, pg.Holes...)
	return json.Marshal(rings)
}

// UnmarshalJSON decodes an array of rings, exterior first.
func (pg *Polygon) UnmarshalJSON(data []byte) error {
	var rings []Ring
	if err := json.Unmarshal(data, &rings); err != nil {
		return err
	}
	if len(rings) == 0 {
		*pg = Polygon{}
		return nil
	}
	pg.Exterior = rings[0]
	if len(rings) > 1 {
		pg.Holes = rings[1:]
	} else {
		pg.Holes = nil
	}
	return nil
}

// Area returns the enclosed area: the exterior's unsigned area minus
// the holes' unsigned areas.
func (pg Polygon) Area() float64 {
	area := abs(pg.Exterior.Area())
	for _, h := range pg.Holes {
		area -= abs(h.Area())
	}
	return area
}

// Bounds returns the bounding box of the exterior ring.
func (pg Polygon) Bounds() Bounds {
	return pg.Exterior.Bounds()
}

// Contains reports whether p lies inside the exterior and outside
// every hole.
func (pg Polygon) Contains(p Point) bool {
	if !pg.Exterior.Contains(p) {
		return false
	}
	for _, h := range pg.Holes {
		if h.Contains(p) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the polygon.
func (pg Polygon) Clone() Polygon {
	out := Polygon{Exterior: pg.Exterior.Clone()}
	if pg.Holes != nil {
		out.Holes = make([]Ring, len(pg.Holes))
		for i, h := range pg.Holes {
			out.Holes[i] = h.Clone()
		}
	}
	return out
}

// Transform returns the polygon with every vertex mapped through m.
func (pg Polygon) Transform(m Matrix) Polygon {
	out := Polygon{Exterior: pg.Exterior.Transform(m)}
	if pg.Holes != nil {
		out.Holes = make([]Ring, len(pg.Holes))
		for i, h := range pg.Holes {
			out.Holes[i] = h.Transform(m)
		}
	}
	return out
}

// MultiPolygon is an ordered set of disjoint simple polygons treated
// as one geometric unit. It is the persistent representation of a
// painted annotation region.
type MultiPolygon []Polygon

// IsEmpty reports whether the multi-polygon covers no area at all.
func (mp MultiPolygon) IsEmpty() bool {
	return len(mp) == 0
}

// Area returns the total enclosed area.
func (mp MultiPolygon) Area() float64 {
	area := 0.0
	for _, pg := range mp {
		area += pg.Area()
	}
	return area
}

// Bounds returns the bounding box of all member polygons.
func (mp MultiPolygon) Bounds() Bounds {
	if len(mp) == 0 {
		return Bounds{}
	}
	b := mp[0].Bounds()
	for _, pg := range mp[1:] {
		b = b.Extend(pg.Bounds())
	}
	return b
}

// Contains reports whether p lies inside any member polygon.
func (mp MultiPolygon) Contains(p Point) bool {
	for _, pg := range mp {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the multi-polygon.
func (mp MultiPolygon) Clone() MultiPolygon {
	if mp == nil {
		return nil
	}
	out := make(MultiPolygon, len(mp))
	for i, pg := range mp {
		out[i] = pg.Clone()
	}
	return out
}

// Transform returns the multi-polygon with every vertex mapped
// through m.
func (mp MultiPolygon) Transform(m Matrix) MultiPolygon {
	out := make(MultiPolygon, len(mp))
	for i, pg := range mp {
		out[i] = pg.Transform(m)
	}
	return out
}

// Vertices returns the total vertex count across all rings.
func (mp MultiPolygon) Vertices() int {
	n := 0
	for _, pg := range mp {
		n += len(pg.Exterior)
		for _, h := range pg.Holes {
			n += len(h)
		}
	}
	return n
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Point
}

// ExtendPoint grows the box to include p.
func (b Bounds) ExtendPoint(p Point) Bounds {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	return b
}

// Extend grows the box to include another box.
func (b Bounds) Extend(other Bounds) Bounds {
	return b.ExtendPoint(other.Min).ExtendPoint(other.Max)
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
