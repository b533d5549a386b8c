package roi

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidColour is returned when parsing a malformed colour string.
var ErrInvalidColour = errors.New("roi: invalid colour")

// Colour is an 8-bit RGBA display colour for an annotation.
// It serializes to JSON as a "#RRGGBBAA" hex string.
type Colour struct {
	R, G, B, A uint8
}

// RGB creates an opaque colour from RGB components.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b, A: 255}
}

// RGBA creates a colour from RGBA components.
func RGBA(r, g, b, a uint8) Colour {
	return Colour{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the colour with its alpha replaced.
// Overlay rendering typically uses a translucent variant of the
// annotation colour.
func (c Colour) WithAlpha(a uint8) Colour {
	c.A = a
	return c
}

// NRGBA converts the colour to the standard library representation.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns the colour as a "#RRGGBBAA" hex string.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColour parses "#RRGGBB" or "#RRGGBBAA" hex strings (the
// leading '#' is optional). A missing alpha defaults to opaque.
func ParseColour(s string) (Colour, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Colour{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}

	var v [4]uint8
	v[3] = 255
	for i := 0; i*2 < len(hex); i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return Colour{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
		}
		v[i] = hi<<4 | lo
	}
	return Colour{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the colour as a hex string.
func (c Colour) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Hex() + `"`), nil
}

// UnmarshalJSON decodes a hex string colour.
func (c *Colour) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidColour, data)
	}
	parsed, err := ParseColour(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Default annotation colours, cycled when adding annotations without
// an explicit colour choice.
var DefaultPalette = []Colour{
	RGB(255, 255, 0),
	RGB(0, 255, 255),
	RGB(255, 0, 255),
	RGB(0, 255, 0),
	RGB(255, 128, 0),
	RGB(64, 128, 255),
	RGB(255, 64, 64),
}
