package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go-pianoroll/widgets"
)

// Call is one recorded drawing operation
type Call struct {
	Op    string
	Args  []float64
	Text  string
	Color widgets.Color
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", a)
	}
	if c.Text != "" {
		fmt.Fprintf(&b, " %q", c.Text)
	}
	b.WriteByte(')')
	return b.String()
}

// Recorder is a Surface that keeps a log of every call. Text is measured
// at a fixed advance per rune so layouts are reproducible.
type Recorder struct {
	Calls     []Call
	CharWidth float64

	color widgets.Color
}

func NewRecorder() *Recorder {
	return &Recorder{CharWidth: 6, color: widgets.Black}
}

func (r *Recorder) add(op string, text string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args, Text: text, Color: r.color})
}

func (r *Recorder) SetColor(c widgets.Color) {
	r.color = c
	r.add("SetColor", "", float64(c.R), float64(c.G), float64(c.B), c.A)
}

func (r *Recorder) FillRect(x, y, w, h float64)    { r.add("FillRect", "", x, y, w, h) }
func (r *Recorder) DrawRect(x, y, w, h float64)    { r.add("DrawRect", "", x, y, w, h) }
func (r *Recorder) FillCircle(cx, cy, rad float64) { r.add("FillCircle", "", cx, cy, rad) }
func (r *Recorder) DrawCircle(cx, cy, rad float64) { r.add("DrawCircle", "", cx, cy, rad) }

func (r *Recorder) DrawArc(cx, cy, rad, start, sweep float64) {
	r.add("DrawArc", "", cx, cy, rad, start, sweep)
}

func (r *Recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.CharWidth
}

func (r *Recorder) DrawString(x, y float64, s string) { r.add("DrawString", s, x, y) }

// Ops returns the operation names in order, without SetColor
func (r *Recorder) Ops() []string {
	var ops []string
	for _, c := range r.Calls {
		if c.Op != "SetColor" {
			ops = append(ops, c.Op)
		}
	}
	return ops
}

// Find returns every call with the given operation name
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the text of every DrawString call
func (r *Recorder) Strings() []string {
	var out []string
	for _, c := range r.Find("DrawString") {
		out = append(out, c.Text)
	}
	return out
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
