package roi

import (
	"errors"
	"testing"
)

func ringsEqual(a, b Ring) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVectorizeSquareClockwise(t *testing.T) {
	// The 2x2 block traced clockwise from its topmost-leftmost pixel.
	contour := Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	ring, err := Vectorize(contour, 1, Clockwise)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	// Exactly the four outer corners: straight runs add no vertices.
	want := Ring{Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2)}
	if !ringsEqual(ring, want) {
		t.Fatalf("ring = %v, want %v", ring, want)
	}
	if a := ring.Area(); a != 4 {
		t.Errorf("signed area = %v, want 4 (clockwise walks are positive)", a)
	}
}

func TestVectorizeSquareAnticlockwise(t *testing.T) {
	// The same block traced in the opposite sense.
	contour := Contour{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	ring, err := Vectorize(contour, 1, Anticlockwise)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	want := Ring{Pt(0, 0), Pt(0, 2), Pt(2, 2), Pt(2, 0)}
	if !ringsEqual(ring, want) {
		t.Fatalf("ring = %v, want %v", ring, want)
	}
	if a := ring.Area(); a != -4 {
		t.Errorf("signed area = %v, want -4 (anticlockwise walks are negative)", a)
	}
}

func TestVectorizeSinglePixel(t *testing.T) {
	tests := []struct {
		name    string
		winding Winding
		size    float64
		want    Ring
	}{
		{"clockwise", Clockwise, 1, Ring{Pt(3, 2), Pt(4, 2), Pt(4, 3), Pt(3, 3)}},
		{"anticlockwise", Anticlockwise, 1, Ring{Pt(3, 2), Pt(3, 3), Pt(4, 3), Pt(4, 2)}},
		{"scaled", Clockwise, 0.5, Ring{Pt(1.5, 1), Pt(2, 1), Pt(2, 1.5), Pt(1.5, 1.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring, err := Vectorize(Contour{{3, 2}}, tt.size, tt.winding)
			if err != nil {
				t.Fatalf("Vectorize: %v", err)
			}
			if !ringsEqual(ring, tt.want) {
				t.Errorf("ring = %v, want %v", ring, tt.want)
			}
		})
	}
}

func TestVectorizeBars(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		winding Winding
		want    Ring
	}{
		{
			// Two pixels in a row: the wrap pair carries the cursor
			// around the right end, the close step around the left.
			"1x2 clockwise",
			Contour{{0, 0}, {1, 0}},
			Clockwise,
			Ring{Pt(0, 0), Pt(2, 0), Pt(2, 1), Pt(0, 1)},
		},
		{
			// A three-pixel bar revisits (1,0) while backtracking;
			// the walk still produces the plain rectangle.
			"1x3 anticlockwise",
			Contour{{0, 0}, {1, 0}, {2, 0}, {1, 0}},
			Anticlockwise,
			Ring{Pt(0, 0), Pt(0, 1), Pt(3, 1), Pt(3, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring, err := Vectorize(tt.contour, 1, tt.winding)
			if err != nil {
				t.Fatalf("Vectorize: %v", err)
			}
			if !ringsEqual(ring, tt.want) {
				t.Errorf("ring = %v, want %v", ring, tt.want)
			}
		})
	}
}

func TestVectorizeDiagonalPair(t *testing.T) {
	// Two diagonally touching pixels become a hexagon with two corner
	// cuts: area 2 squares + 2 half-square triangles = 3.
	ring, err := Vectorize(Contour{{0, 0}, {1, 1}}, 1, Clockwise)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	want := Ring{Pt(0, 0), Pt(1, 0), Pt(2, 1), Pt(2, 2), Pt(1, 2), Pt(0, 1)}
	if !ringsEqual(ring, want) {
		t.Fatalf("ring = %v, want %v", ring, want)
	}
	if a := ring.Area(); a != 3 {
		t.Errorf("signed area = %v, want 3", a)
	}
}

func TestVectorizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    error
	}{
		{"empty", nil, ErrEmptyContour},
		{"gap", Contour{{0, 0}, {3, 0}}, ErrContourStep},
		{"repeat", Contour{{0, 0}, {0, 0}}, ErrContourStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Vectorize(tt.contour, 1, Clockwise)
			if !errors.Is(err, tt.want) {
				t.Errorf("Vectorize error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVectorizePixelSize(t *testing.T) {
	contour := Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	ring, err := Vectorize(contour, 2.5, Clockwise)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	want := Ring{Pt(0, 0), Pt(5, 0), Pt(5, 5), Pt(0, 5)}
	if !ringsEqual(ring, want) {
		t.Errorf("ring = %v, want %v", ring, want)
	}
}
