package roi

import (
	"errors"
	"fmt"

	"github.com/microvis/roi/internal/clip"
)

// ErrBooleanOp reports that a polygon boolean operation failed. Inputs
// produced by the annotation tools are always valid, so hitting this
// error means geometry was corrupted somewhere upstream.
var ErrBooleanOp = errors.New("roi: boolean operation failed")

// Union returns the union of the two regions as a normalized
// multi-polygon: exteriors counterclockwise, holes clockwise.
func Union(a, b MultiPolygon) (MultiPolygon, error) {
	out, err := clip.Union(toClip(a), toClip(b))
	if err != nil {
		Logger().Warn("polygon union failed", "subjects", len(a), "clips", len(b), "error", err)
		return nil, fmt.Errorf("%w: union: %v", ErrBooleanOp, err)
	}
	return fromClip(out), nil
}

// Difference returns a minus b.
func Difference(a, b MultiPolygon) (MultiPolygon, error) {
	out, err := clip.Difference(toClip(a), toClip(b))
	if err != nil {
		Logger().Warn("polygon difference failed", "subjects", len(a), "clips", len(b), "error", err)
		return nil, fmt.Errorf("%w: difference: %v", ErrBooleanOp, err)
	}
	return fromClip(out), nil
}

// Intersection returns the region covered by both a and b.
func Intersection(a, b MultiPolygon) (MultiPolygon, error) {
	out, err := clip.Intersection(toClip(a), toClip(b))
	if err != nil {
		Logger().Warn("polygon intersection failed", "subjects", len(a), "clips", len(b), "error", err)
		return nil, fmt.Errorf("%w: intersection: %v", ErrBooleanOp, err)
	}
	return fromClip(out), nil
}

func ringToClip(r Ring) clip.Ring {
	out := make(clip.Ring, len(r))
	for i, p := range r {
		out[i] = clip.Point{X: p.X, Y: p.Y}
	}
	return out
}

func ringFromClip(r clip.Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func toClip(mp MultiPolygon) []clip.Polygon {
	if len(mp) == 0 {
		return nil
	}
	out := make([]clip.Polygon, len(mp))
	for i, pg := range mp {
		out[i].Exterior = ringToClip(pg.Exterior)
		if len(pg.Holes) > 0 {
			out[i].Holes = make([]clip.Ring, len(pg.Holes))
			for j, h := range pg.Holes {
				out[i].Holes[j] = ringToClip(h)
			}
		}
	}
	return out
}

func fromClip(polys []clip.Polygon) MultiPolygon {
	if len(polys) == 0 {
		return nil
	}
	out := make(MultiPolygon, len(polys))
	for i, pg := range polys {
		out[i].Exterior = ringFromClip(pg.Exterior)
		if len(pg.Holes) > 0 {
			out[i].Holes = make([]Ring, len(pg.Holes))
			for j, h := range pg.Holes {
				out[i].Holes[j] = ringFromClip(h)
			}
		}
	}
	return out
}
