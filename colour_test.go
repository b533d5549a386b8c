package roi

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestColourHex(t *testing.T) {
	if got := RGB(255, 128, 0).Hex(); got != "#ff8000ff" {
		t.Errorf("Hex = %q, want #ff8000ff", got)
	}
	if got := RGBA(0, 255, 0, 128).Hex(); got != "#00ff0080" {
		t.Errorf("Hex = %q, want #00ff0080", got)
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Colour
		wantErr bool
	}{
		{"rgb with hash", "#ff8000", RGB(255, 128, 0), false},
		{"rgb without hash", "ff8000", RGB(255, 128, 0), false},
		{"rgba", "#00ff0080", RGBA(0, 255, 0, 128), false},
		{"uppercase", "#FF8000", RGB(255, 128, 0), false},
		{"empty", "", Colour{}, true},
		{"too short", "#ff80", Colour{}, true},
		{"seven digits", "#1234567", Colour{}, true},
		{"bad digit", "#gg0000", Colour{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColour) {
					t.Fatalf("error = %v, want ErrInvalidColour", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColour(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColour(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColourWithAlpha(t *testing.T) {
	c := RGB(10, 20, 30).WithAlpha(99)
	if c != RGBA(10, 20, 30, 99) {
		t.Errorf("WithAlpha = %+v, want (10,20,30,99)", c)
	}
}

func TestColourNRGBA(t *testing.T) {
	n := RGBA(1, 2, 3, 4).NRGBA()
	if n.R != 1 || n.G != 2 || n.B != 3 || n.A != 4 {
		t.Errorf("NRGBA = %+v, want {1 2 3 4}", n)
	}
}

func TestColourJSON(t *testing.T) {
	data, err := json.Marshal(RGB(0, 255, 0))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"#00ff00ff"` {
		t.Errorf("Marshal = %s, want \"#00ff00ff\"", data)
	}

	var c Colour
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c != RGB(0, 255, 0) {
		t.Errorf("round-trip = %+v, want (0,255,0,255)", c)
	}

	for _, bad := range []string{`42`, `"#xyz"`, `"short"`} {
		if err := json.Unmarshal([]byte(bad), &c); !errors.Is(err, ErrInvalidColour) {
			t.Errorf("Unmarshal(%s) error = %v, want ErrInvalidColour", bad, err)
		}
	}
}

func TestDefaultPalette(t *testing.T) {
	if len(DefaultPalette) == 0 {
		t.Fatal("palette is empty")
	}
	seen := make(map[Colour]bool)
	for i, c := range DefaultPalette {
		if c.A != 255 {
			t.Errorf("palette[%d] = %+v, want opaque", i, c)
		}
		if seen[c] {
			t.Errorf("palette[%d] = %+v repeated", i, c)
		}
		seen[c] = true
	}
}
