package roi

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	a := Pt(3, -1)
	b := Pt(1, 2)

	if got := a.Add(b); got != Pt(4, 1) {
		t.Errorf("Add = %v, want (4,1)", got)
	}
	if got := a.Sub(b); got != Pt(2, -3) {
		t.Errorf("Sub = %v, want (2,-3)", got)
	}
	if got := a.Mul(2); got != Pt(6, -2) {
		t.Errorf("Mul = %v, want (6,-2)", got)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("Dot = %v, want 1", got)
	}
	if got := a.Cross(b); got != 7 {
		t.Errorf("Cross = %v, want 7", got)
	}
}

func TestPointLength(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := p.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %v, want 25", got)
	}
	if got := Pt(1, 1).Distance(Pt(4, 5)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestPointNormalize(t *testing.T) {
	if got := Pt(3, 4).Normalize(); got != Pt(0.6, 0.8) {
		t.Errorf("Normalize(3,4) = %v, want (0.6,0.8)", got)
	}
	if got := Pt(0, 0).Normalize(); got != Pt(0, 0) {
		t.Errorf("Normalize(0,0) = %v, want zero vector", got)
	}
	if got := Pt(-7, 0.3).Normalize().Length(); math.Abs(got-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", got)
	}
}

func TestPointAngle(t *testing.T) {
	const epsilon = 1e-12

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"east", Pt(1, 0), 0},
		{"north", Pt(0, 1), math.Pi / 2},
		{"west", Pt(-1, 0), math.Pi},
		{"diagonal", Pt(1, 1), math.Pi / 4},
		{"south", Pt(0, -2), -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Angle(); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Angle(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointIsFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Pt(0, 0), true},
		{"ordinary", Pt(-12.5, 3e8), true},
		{"nan x", Pt(math.NaN(), 0), false},
		{"nan y", Pt(0, math.NaN()), false},
		{"positive inf", Pt(math.Inf(1), 0), false},
		{"negative inf", Pt(0, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointJSON(t *testing.T) {
	data, err := json.Marshal(Pt(1.5, -2))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[1.5,-2]" {
		t.Errorf("Marshal = %s, want [1.5,-2]", data)
	}

	var p Point
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p != Pt(1.5, -2) {
		t.Errorf("round-trip = %v, want (1.5,-2)", p)
	}

	if err := json.Unmarshal([]byte(`{"x":1}`), &p); err == nil {
		t.Error("expected error unmarshalling an object into a point")
	}
}
