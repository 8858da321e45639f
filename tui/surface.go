package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/widgets"
)

// Each terminal cell stands for a block of virtual pixels; the editor
// draws in those pixels and never knows it is on a terminal.
const (
	CellWidth  = 8
	CellHeight = 16
)

type cell struct {
	bg widgets.Color
	fg widgets.Color
	ch rune
}

// Surface rasterizes widgets.Surface calls onto a grid of terminal cells.
// A shape covers the cells whose centers it contains; shapes thinner than
// a cell still cover the one cell under their middle, so guide lines and
// short notes stay visible at any zoom.
type Surface struct {
	cols, rows int
	cells      []cell
	color      widgets.Color
}

func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize sets the grid size and clears it
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear(widgets.Black)
}

func (s *Surface) Clear(bg widgets.Color) {
	for i := range s.cells {
		s.cells[i] = cell{bg: bg, fg: widgets.White, ch: ' '}
	}
}

func (s *Surface) Cols() int { return s.cols }
func (s *Surface) Rows() int { return s.rows }

// PixelWidth and PixelHeight are the virtual pixel size of the grid
func (s *Surface) PixelWidth() int  { return s.cols * CellWidth }
func (s *Surface) PixelHeight() int { return s.rows * CellHeight }

// CellCenter maps a terminal cell to the virtual pixel at its center
func CellCenter(col, row int) (x, y float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// Cell returns the background and rune at a cell, for tests
func (s *Surface) Cell(col, row int) (widgets.Color, rune) {
	c := s.at(col, row)
	if c == nil {
		return widgets.Color{}, 0
	}
	return c.bg, c.ch
}

// span returns the cell range [lo, hi) covered by [p, p+size) on an axis
func span(p, size float64, unit int) (lo, hi int) {
	u := float64(unit)
	if size < u {
		mid := int(math.Floor((p + size/2) / u))
		return mid, mid + 1
	}
	lo = int(math.Ceil(p/u - 0.5))
	hi = int(math.Ceil((p+size)/u - 0.5))
	return lo, hi
}

func blend(dst, src widgets.Color) widgets.Color {
	if src.A >= 1 {
		return widgets.Color{R: src.R, G: src.G, B: src.B, A: 1}
	}
	a := max(src.A, 0)
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return widgets.Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 1}
}

func (s *Surface) SetColor(c widgets.Color) { s.color = c }

func (s *Surface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, c1 := span(x, w, CellWidth)
	r0, r1 := span(y, h, CellHeight)
	for row := max(r0, 0); row < min(r1, s.rows); row++ {
		for col := max(c0, 0); col < min(c1, s.cols); col++ {
			c := s.at(col, row)
			c.bg = blend(c.bg, s.color)
			c.ch = ' '
		}
	}
}

// DrawRect outlines with box-drawing runes; boxes less than two cells in
// either direction are left to their fill
func (s *Surface) DrawRect(x, y, w, h float64) {
	c0, c1 := span(x, w, CellWidth)
	r0, r1 := span(y, h, CellHeight)
	if c1-c0 < 2 || r1-r0 < 2 {
		return
	}
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			top, bottom := row == r0, row == r1-1
			left, right := col == c0, col == c1-1
			var ch rune
			switch {
			case top && left:
				ch = '┌'
			case top && right:
				ch = '┐'
			case bottom && left:
				ch = '└'
			case bottom && right:
				ch = '┘'
			case top || bottom:
				ch = '─'
			case left || right:
				ch = '│'
			default:
				continue
			}
			s.setRune(col, row, ch)
		}
	}
}

func (s *Surface) setRune(col, row int, ch rune) {
	if c := s.at(col, row); c != nil {
		c.ch = ch
		c.fg = blend(c.bg, s.color)
	}
}

func (s *Surface) FillCircle(cx, cy, r float64) {
	s.eachCellNear(cx, cy, r, func(c *cell, d float64) {
		if d <= r {
			c.bg = blend(c.bg, s.color)
			c.ch = ' '
		}
	})
}

func (s *Surface) DrawCircle(cx, cy, r float64) {
	s.DrawArc(cx, cy, r, 0, 2*math.Pi)
}

// DrawArc marks the cells the arc passes through; angles follow the
// pixel frame (clockwise from +x since y points down)
func (s *Surface) DrawArc(cx, cy, r, start, sweep float64) {
	if r <= 0 || sweep == 0 {
		return
	}
	steps := max(int(math.Abs(sweep)*r/(CellWidth/2)), 8)
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		col, row := int(math.Floor(x/CellWidth)), int(math.Floor(y/CellHeight))
		if c := s.at(col, row); c != nil && c.ch == ' ' {
			s.setRune(col, row, '·')
		}
	}
}

// eachCellNear visits cells within r of (cx, cy), always including the
// cell under the center
func (s *Surface) eachCellNear(cx, cy, r float64, fn func(c *cell, d float64)) {
	c0, c1 := int(math.Floor((cx-r)/CellWidth)), int(math.Floor((cx+r)/CellWidth))
	r0, r1 := int(math.Floor((cy-r)/CellHeight)), int(math.Floor((cy+r)/CellHeight))
	center := s.at(int(math.Floor(cx/CellWidth)), int(math.Floor(cy/CellHeight)))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c := s.at(col, row)
			if c == nil {
				continue
			}
			x, y := CellCenter(col, row)
			d := math.Hypot(x-cx, y-cy)
			if c == center {
				d = 0
			}
			fn(c, d)
		}
	}
}

// StringWidth measures in virtual pixels so menu layout matches the cells
func (s *Surface) StringWidth(str string) float64 {
	return float64(lipgloss.Width(str) * CellWidth)
}

// DrawString writes text in the current color on the row holding the
// middle of a TextHeight glyph whose baseline is y
func (s *Surface) DrawString(x, y float64, str string) {
	row := int(math.Floor((y - widgets.TextHeight/2) / CellHeight))
	col := int(math.Round(x / CellWidth))
	for _, ch := range str {
		if c := s.at(col, row); c != nil {
			c.ch, c.fg = ch, s.color
		}
		col++
	}
}

func hexColor(c widgets.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Render returns one line per row, runs of equal style rendered together
func (s *Surface) Render() string {
	lines := make([]string, s.rows)
	var run strings.Builder
	for row := range s.rows {
		var line strings.Builder
		start := 0
		flush := func(end int) {
			if end == start {
				return
			}
			first := s.cells[row*s.cols+start]
			run.Reset()
			for col := start; col < end; col++ {
				run.WriteRune(s.cells[row*s.cols+col].ch)
			}
			style := lipgloss.NewStyle().Background(hexColor(first.bg))
			if strings.TrimSpace(run.String()) != "" {
				style = style.Foreground(hexColor(first.fg))
			}
			line.WriteString(style.Render(run.String()))
			start = end
		}
		for col := 1; col <= s.cols; col++ {
			if col == s.cols {
				flush(col)
				break
			}
			a, b := s.cells[row*s.cols+col-1], s.cells[row*s.cols+col]
			if a.bg != b.bg || (a.fg != b.fg && b.ch != ' ') {
				flush(col)
			}
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}
