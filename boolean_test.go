package roi

import (
	"math"
	"testing"
)

func unitSquare(x, y, size float64) Polygon {
	return Polygon{Exterior: Ring{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}}
}

func TestUnionIdempotent(t *testing.T) {
	// Unioning a region with itself must not change its area.
	region := MultiPolygon{unitSquare(0, 0, 4), unitSquare(7, 2, 3)}
	got, err := Union(region, region)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if math.Abs(got.Area()-region.Area()) > 1e-6 {
		t.Errorf("self-union area = %v, want %v", got.Area(), region.Area())
	}
	if len(got) != 2 {
		t.Errorf("self-union produced %d polygons, want 2", len(got))
	}
}

func TestUnionMergesOverlap(t *testing.T) {
	a := MultiPolygon{unitSquare(0, 0, 2)}
	b := MultiPolygon{unitSquare(1, 1, 2)}
	got, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("overlapping union produced %d polygons, want 1", len(got))
	}
	if math.Abs(got.Area()-7) > 1e-6 {
		t.Errorf("union area = %v, want 7", got.Area())
	}
}

func TestUnionKeepsDisjointComponents(t *testing.T) {
	a := MultiPolygon{unitSquare(0, 0, 1)}
	b := MultiPolygon{unitSquare(10, 10, 1)}
	got, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("disjoint union produced %d polygons, want 2", len(got))
	}
}

func TestUnionWithEmpty(t *testing.T) {
	a := MultiPolygon{unitSquare(0, 0, 2)}
	got, err := Union(a, nil)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if math.Abs(got.Area()-4) > 1e-6 {
		t.Errorf("union with empty area = %v, want 4", got.Area())
	}
	got, err = Union(nil, nil)
	if err != nil {
		t.Fatalf("Union of empties: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("union of empties = %v, want empty", got)
	}
}

func TestDifferenceProducesHole(t *testing.T) {
	outer := MultiPolygon{unitSquare(0, 0, 4)}
	inner := MultiPolygon{unitSquare(1, 1, 2)}
	got, err := Difference(outer, inner)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if len(got) != 1 || len(got[0].Holes) != 1 {
		t.Fatalf("difference = %d polygons / %d holes, want 1/1", len(got), len(got[0].Holes))
	}
	if math.Abs(got.Area()-12) > 1e-6 {
		t.Errorf("difference area = %v, want 12", got.Area())
	}
	if got.Contains(Pt(2, 2)) {
		t.Error("point inside hole reported as contained")
	}
	if !got.Contains(Pt(0.5, 0.5)) {
		t.Error("point in remaining region reported as outside")
	}
}

func TestIntersectionOverlap(t *testing.T) {
	a := MultiPolygon{unitSquare(0, 0, 3)}
	b := MultiPolygon{unitSquare(2, 2, 3)}
	got, err := Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if math.Abs(got.Area()-1) > 1e-6 {
		t.Errorf("intersection area = %v, want 1", got.Area())
	}
}

func TestBooleanOrientations(t *testing.T) {
	outer := MultiPolygon{unitSquare(0, 0, 5)}
	inner := MultiPolygon{unitSquare(2, 2, 1)}
	got, err := Difference(outer, inner)
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	for _, pg := range got {
		if pg.Exterior.Area() <= 0 {
			t.Errorf("exterior area = %v, want positive (counterclockwise)", pg.Exterior.Area())
		}
		for _, h := range pg.Holes {
			if h.Area() >= 0 {
				t.Errorf("hole area = %v, want negative (clockwise)", h.Area())
			}
		}
	}
}
