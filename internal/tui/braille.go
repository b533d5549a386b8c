package tui

import (
	"math"
	"strings"

	roi "github.com/microvis/roi"
)

// brailleBuf is a canvas of braille micro-pixels: every terminal cell
// holds a 2x4 grid of dots, so a w x h cell canvas exposes a
// (2w) x (4h) pixel grid. Each cell additionally carries the pen of
// the last annotation that touched it, which decides the colour the
// whole cell renders with.
type brailleBuf struct {
	w, h int       // in cells
	mask [][]uint8 // per-cell 8-bit dot mask
	pens [][]penID // per-cell pen, noPen when untouched
}

func newBrailleBuf(w, h int) *brailleBuf {
	mask := make([][]uint8, h)
	pens := make([][]penID, h)
	for y := range mask {
		mask[y] = make([]uint8, w)
		row := make([]penID, w)
		for x := range row {
			row[x] = noPen
		}
		pens[y] = row
	}
	return &brailleBuf{w: w, h: h, mask: mask, pens: pens}
}

// setPixel sets one micro-pixel. Unicode braille numbers its dots
// column-major with the bottom row appended last, hence the irregular
// bit layout.
func (b *brailleBuf) setPixel(mx, my int, pen penID) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cx >= b.w || cy >= b.h {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.mask[cy][cx] |= bit
	b.pens[cy][cx] = pen
}

// drawLineMicro draws a Bresenham line on the micro-pixel grid.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, pen penID) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, pen)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRing projects a world-space ring onto the micro-pixel grid and
// draws its closed outline.
func (b *brailleBuf) drawRing(r roi.Ring, worldToMicro roi.Matrix, pen penID) {
	if len(r) < 2 {
		return
	}
	for i := range r {
		p0 := worldToMicro.TransformPoint(r[i])
		p1 := worldToMicro.TransformPoint(r[(i+1)%len(r)])
		b.drawLineMicro(
			int(math.Floor(p0.X)), int(math.Floor(p0.Y)),
			int(math.Floor(p1.X)), int(math.Floor(p1.Y)),
			pen,
		)
	}
}

// toLines renders the buffer into one string per cell row, colouring
// runs of cells that share a pen with that pen's style.
func (b *brailleBuf) toLines(pens *stylePen) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		x := 0
		for x < b.w {
			if b.mask[y][x] == 0 {
				sb.WriteByte(' ')
				x++
				continue
			}
			pen := b.pens[y][x]
			var run strings.Builder
			for x < b.w && b.mask[y][x] != 0 && b.pens[y][x] == pen {
				run.WriteRune(rune(0x2800 + int(b.mask[y][x])))
				x++
			}
			if pen == noPen {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(pens.style(pen).Render(run.String()))
			}
		}
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
