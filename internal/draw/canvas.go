// Package draw renders logical shapes to a terminal using half-block cells.
package draw

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
)

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Half-block glyphs. Each terminal cell holds two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cell states, indexed by (top | bottom<<1).
var cellGlyphs = [4]rune{' ', BlockUpperHalf, BlockLowerHalf, BlockFull}

// unknownCell marks a cell whose on-screen content is not known.
const unknownCell = 0xFF

// Canvas is a pixel buffer with 2x vertical resolution that maps logical
// coordinates onto a terminal area. Render only emits cells that changed
// since the previous render.
type Canvas struct {
	termWidth      int // Columns of the render area
	termHeight     int // Rows of the render area
	subPixelHeight int // termHeight * 2
	pixels         []bool
	shown          []byte // Cell state currently on screen

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offset of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells showing a
// logicalWidth x logicalHeight coordinate space.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the render area while keeping the logical size.
// A changed size forgets what is on screen.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shown = make([]byte, termHeight*termWidth)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the render area starts.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels. The screen is untouched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw records that the terminal was wiped, so the next Render
// repaints every set cell.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty records that width cells starting at the 1-based (col, row)
// of the render area were overwritten by text.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.shown[r*c.termWidth+x] = unknownCell
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// FillRect fills a logical rectangle. Any rectangle inside the canvas sets at
// least one pixel, however small.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(x0, int(math.Ceil((x+w)*c.scaleX))-1)
	y1 := max(y0, int(math.Ceil((y+h)*c.scaleY))-1)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// DrawLine draws a logical line using Bresenham's algorithm in pixel space.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx, sx := x2-x1, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y2-y1, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// DrawPolygon draws a closed outline through points, filling it when filled
// is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// fillPolygon fills using even-odd scanlines in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	scaled := c.scaledBuf[:0]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		sp := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, sp.Y)
		maxY = max(maxY, sp.Y)
		scaled = append(scaled, sp)
	}
	c.scaledBuf = scaled

	n := len(scaled)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := 0; i < n; i++ {
			a, b := scaled[i], scaled[(i+1)%n]
			if (a.Y <= scanY && b.Y > scanY) || (b.Y <= scanY && a.Y > scanY) {
				xs = append(xs, a.X+(scanY-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		slices.Sort(xs)
		c.intersectionBuf = xs

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize keeps single writes below a typical MTU for smooth SSH output.
const maxChunkSize = 1400

// Render writes every cell whose glyph differs from what is on screen.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	for row := 0; row < c.termHeight; row++ {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			var state byte
			if c.pixels[top+col] {
				state |= 1
			}
			if c.pixels[bottom+col] {
				state |= 2
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == state {
				continue
			}
			c.shown[idx] = state
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, cellGlyphs[state])
		}
	}
	return writeChunked(w, c.renderBuf.String())
}

func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder frames the render area on the sides where the terminal has
// room to spare.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, left+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, left+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	return writeChunked(w, buf.String())
}

// TerminalWidth returns the render area's column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area's row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based (col, row)
// within the render area.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(Point{X: x, Y: y})
	return px + 1, py/2 + 1
}
