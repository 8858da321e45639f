package gui

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"go-pianoroll/widgets"
)

const fontSize = widgets.TextHeight + 2

// LoadFace returns the Go font at the label size
func LoadFace() (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: fontSize}, nil
}

// Surface draws onto an ebiten image
type Surface struct {
	dst   *ebiten.Image
	face  *text.GoTextFace
	color color.NRGBA
}

func NewSurface(dst *ebiten.Image, face *text.GoTextFace) *Surface {
	return &Surface{dst: dst, face: face, color: widgets.Black.NRGBA()}
}

func (s *Surface) SetColor(c widgets.Color) { s.color = c.NRGBA() }

func (s *Surface) FillRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), s.color, false)
}

func (s *Surface) DrawRect(x, y, w, h float64) {
	vector.StrokeRect(s.dst, float32(x+0.5), float32(y+0.5), float32(w), float32(h), 1, s.color, false)
}

func (s *Surface) FillCircle(cx, cy, r float64) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), s.color, true)
}

func (s *Surface) DrawCircle(cx, cy, r float64) {
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), 1, s.color, true)
}

func (s *Surface) DrawArc(cx, cy, r, start, sweep float64) {
	dir := vector.Clockwise
	if sweep < 0 {
		dir = vector.CounterClockwise
	}
	var path vector.Path
	path.MoveTo(float32(cx+r*math.Cos(start)), float32(cy+r*math.Sin(start)))
	path.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(start+sweep), dir)

	strokeOp := &vector.StrokeOptions{Width: 1}
	drawOp := &vector.DrawPathOptions{AntiAlias: true}
	drawOp.ColorScale.ScaleWithColor(s.color)
	vector.StrokePath(s.dst, &path, strokeOp, drawOp)
}

func (s *Surface) StringWidth(str string) float64 {
	w, _ := text.Measure(str, s.face, 0)
	return w
}

// DrawString places the baseline at y
func (s *Surface) DrawString(x, y float64, str string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(s.color)
	text.Draw(s.dst, str, s.face, op)
}
