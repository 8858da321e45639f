package render

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"go-pianoroll/widgets"
)

// FontSize is the label font size in pixels; it matches widgets.TextHeight
const FontSize = widgets.TextHeight + 2

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("load font: %w", fontErr)
		}
	})
	return fontSource, fontErr
}

// Raster is a Surface backed by a gg software context
type Raster struct {
	dc *gg.Context
}

// NewRaster returns a white w x h canvas with the Go font loaded
func NewRaster(w, h int) (*Raster, error) {
	src, err := loadFont()
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	dc.SetFont(src.Face(FontSize))
	dc.SetLineWidth(1)
	r := &Raster{dc: dc}
	r.Clear(widgets.White)
	return r, nil
}

func (r *Raster) Width() int         { return r.dc.Width() }
func (r *Raster) Height() int        { return r.dc.Height() }
func (r *Raster) Image() image.Image { return r.dc.Image() }
func (r *Raster) Close() error       { return r.dc.Close() }
func (r *Raster) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Clear fills the whole canvas with c
func (r *Raster) Clear(c widgets.Color) {
	r.SetColor(c)
	r.dc.DrawRectangle(0, 0, float64(r.dc.Width()), float64(r.dc.Height()))
	_ = r.dc.Fill()
}

func (r *Raster) SetColor(c widgets.Color) {
	r.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, c.A)
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	_ = r.dc.Fill()
}

// DrawRect strokes along pixel centers so 1px outlines stay crisp
func (r *Raster) DrawRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x+0.5, y+0.5, w, h)
	_ = r.dc.Stroke()
}

func (r *Raster) FillCircle(cx, cy, rad float64) {
	r.dc.DrawCircle(cx, cy, rad)
	_ = r.dc.Fill()
}

func (r *Raster) DrawCircle(cx, cy, rad float64) {
	r.dc.DrawCircle(cx, cy, rad)
	_ = r.dc.Stroke()
}

func (r *Raster) DrawArc(cx, cy, rad, start, sweep float64) {
	r.dc.ClearPath()
	r.dc.DrawArc(cx, cy, rad, start, start+sweep)
	_ = r.dc.Stroke()
}

func (r *Raster) StringWidth(s string) float64 {
	w, _ := r.dc.MeasureString(s)
	return w
}

func (r *Raster) DrawString(x, y float64, s string) { r.dc.DrawString(s, x, y) }
