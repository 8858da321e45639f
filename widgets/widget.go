package widgets

import "image/color"

// Status tells the host what an event did to a widget
type Status int

const (
	StatusNotConsumed Status = iota // event not processed
	StatusNoRedraw                  // processed, nothing changed on screen
	StatusRedraw                    // processed, please redraw
)

func (s Status) String() string {
	switch s {
	case StatusNotConsumed:
		return "not-consumed"
	case StatusNoRedraw:
		return "no-redraw"
	case StatusRedraw:
		return "redraw"
	}
	return "unknown"
}

// Consumed reports whether the widget handled the event
func (s Status) Consumed() bool { return s != StatusNotConsumed }

// Widget is anything the canvas routes pointer events to. Coordinates are
// pixels with y pointing down.
type Widget interface {
	Press(x, y float64) Status
	Release(x, y float64) Status
	Move(x, y float64) Status
	Drag(x, y float64) Status
	Draw(s Surface)
	Visible() bool
}

// Color is an RGB color with a separate opacity in [0,1]
type Color struct {
	R, G, B uint8
	A       float64
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// WithAlpha returns c with opacity a
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to a non-premultiplied image/color value
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

var (
	Black = RGB(0, 0, 0)
	Gray  = RGB(127, 127, 127)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Cyan  = RGB(0, 255, 255)
)

// Surface is the drawing contract widgets and the editor render through.
// Rectangles are given by their top-left corner, circles by their center.
// Strings are drawn with their baseline at y.
type Surface interface {
	SetColor(c Color)
	FillRect(x, y, w, h float64)
	DrawRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)
	DrawCircle(cx, cy, r float64)
	// DrawArc strokes an arc; angles in radians, clockwise from +x on screen
	DrawArc(cx, cy, r, start, sweep float64)
	StringWidth(s string) float64
	DrawString(x, y float64, s string)
}
