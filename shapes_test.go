package roi

import (
	"math"
	"testing"
)

// ngonArea is the exact area of a regular n-gon inscribed in a circle
// of radius r: (n/2) * r^2 * sin(2*pi/n).
func ngonArea(n int, r float64) float64 {
	return float64(n) / 2 * r * r * math.Sin(2*math.Pi/float64(n))
}

// distToSegment returns the distance from p to the segment a-b.
func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	t := p.Sub(a).Dot(ab) / ab.LengthSquared()
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

func TestCircleDab(t *testing.T) {
	center := Pt(3, -2)
	const r = 1.5
	dab := CircleDab(center, r)

	if len(dab.Exterior) != 20 {
		t.Fatalf("vertex count = %d, want 20", len(dab.Exterior))
	}
	// First vertex sits at angle zero.
	if got, want := dab.Exterior[0], Pt(center.X+r, center.Y); got.Distance(want) > 1e-12 {
		t.Errorf("vertex 0 = %v, want %v", got, want)
	}
	for i, v := range dab.Exterior {
		if d := v.Distance(center); math.Abs(d-r) > 1e-12 {
			t.Errorf("vertex %d at distance %v from center, want %v", i, d, r)
		}
	}
	if a := dab.Exterior.Area(); a <= 0 {
		t.Errorf("signed area = %v, want positive (counterclockwise)", a)
	}
	if got, want := dab.Area(), ngonArea(20, r); math.Abs(got-want) > 1e-9 {
		t.Errorf("area = %v, want %v", got, want)
	}
}

func TestCapsule(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 Point
		radius float64
	}{
		{"horizontal", Pt(0, 0), Pt(5, 0), 1},
		{"vertical", Pt(2, 1), Pt(2, 9), 2},
		{"diagonal", Pt(-3, -3), Pt(4, 2), 0.75},
		{"short", Pt(0, 0), Pt(0.1, 0), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Capsule(tt.p0, tt.p1, tt.radius)
			ring := c.Exterior

			if len(ring) != 22 {
				t.Fatalf("vertex count = %d, want 22", len(ring))
			}
			if a := ring.Area(); a <= 0 {
				t.Errorf("signed area = %v, want positive (counterclockwise)", a)
			}
			// Every vertex lies exactly one radius away from the
			// swept segment: the side points by construction, the cap
			// samples because their nearest segment point is the
			// endpoint they orbit.
			for i, v := range ring {
				d := distToSegment(v, tt.p0, tt.p1)
				if math.Abs(d-tt.radius) > 1e-9 {
					t.Errorf("vertex %d at distance %v from segment, want %v", i, d, tt.radius)
				}
			}
			// Area is the swept rectangle plus the two half caps,
			// which together form one 20-gon of the cap radius.
			want := 2*tt.radius*tt.p0.Distance(tt.p1) + ngonArea(20, tt.radius)
			if got := c.Area(); math.Abs(got-want) > 1e-9*math.Max(want, 1) {
				t.Errorf("area = %v, want %v", got, want)
			}
		})
	}
}

func TestCapsuleCoincidentEndpoints(t *testing.T) {
	p := Pt(7, 7)
	got := Capsule(p, p, 3)
	want := CircleDab(p, 3)
	if len(got.Exterior) != len(want.Exterior) {
		t.Fatalf("vertex count = %d, want %d", len(got.Exterior), len(want.Exterior))
	}
	for i := range got.Exterior {
		if got.Exterior[i] != want.Exterior[i] {
			t.Errorf("vertex %d = %v, want %v", i, got.Exterior[i], want.Exterior[i])
		}
	}
}

func TestCapsuleZeroRadius(t *testing.T) {
	// Degenerate but valid: a flat ring with zero area, no panic.
	c := Capsule(Pt(0, 0), Pt(4, 0), 0)
	if len(c.Exterior) != 22 {
		t.Fatalf("vertex count = %d, want 22", len(c.Exterior))
	}
	if a := c.Area(); a != 0 {
		t.Errorf("area = %v, want 0", a)
	}
}

func TestCapsuleUnionsCleanly(t *testing.T) {
	// Degenerate geometry must never corrupt the accumulated region:
	// unioning a zero-length and a zero-radius capsule into a real one
	// leaves its area unchanged within snapping tolerance.
	base := MultiPolygon{Capsule(Pt(0, 0), Pt(10, 0), 2)}
	add := MultiPolygon{
		Capsule(Pt(5, 0), Pt(5, 0), 1),
		Capsule(Pt(2, 0), Pt(8, 0), 0),
	}
	got, err := Union(base, add)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if math.Abs(got.Area()-base.Area()) > 1e-6 {
		t.Errorf("area after degenerate unions = %v, want %v", got.Area(), base.Area())
	}
}
