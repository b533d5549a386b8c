package roi

import "image"

// Mask is a binary raster: set pixels mark the inside of a region.
// Masks come from membership queries or decoded segmentation images
// and feed contour tracing.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask creates an all-clear mask with the given dimensions.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}
}

// MaskFromPixels builds a mask of the rectangle's size with the given
// pixels set. Pixels are grid coordinates; the mask origin is
// rect.From. Pixels outside the rectangle are ignored.
func MaskFromPixels(pixels []Pixel, rect PixelRect) *Mask {
	m := NewMask(rect.Width(), rect.Height())
	for _, p := range pixels {
		m.Set(p.X-rect.From.X, p.Y-rect.From.Y, true)
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At reports whether (x, y) is set. Coordinates outside the mask are
// clear, which lets border traces probe neighbors without guards.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set sets or clears (x, y). Coordinates outside the mask are ignored.
func (m *Mask) Set(x, y int, inside bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = inside
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
