package viewport

import (
	"math"

	"go-pianoroll/geom"
)

// Viewport maps between pixel coordinates and world space units.
//
//	world = (pixel - offset) * scale
//	pixel = world / scale + offset
type Viewport struct {
	width, height int // must be positive until the first Resize

	// The client may call Frame or Resize first; Resize only preserves
	// the view once one of them has run.
	initialized bool

	offsetX, offsetY float64 // pixels
	scale            float64 // world units per pixel, larger when zoomed out
}

// New returns a viewport with an identity transform
func New() *Viewport {
	return &Viewport{
		width:  10,
		height: 10,
		scale:  1,
	}
}

func (v *Viewport) Width() int  { return v.width }
func (v *Viewport) Height() int { return v.height }

// Scale returns the scale factor in world units per pixel
func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the pixel offset of the world origin
func (v *Viewport) Offset() geom.Vector2D { return geom.Vec(v.offsetX, v.offsetY) }

// PixelCenter returns the pixel at the center of the window
func (v *Viewport) PixelCenter() geom.Point2D {
	return geom.Pt(float64(v.width)*0.5, float64(v.height)*0.5)
}

func (v *Viewport) PixelsToWorldX(x float64) float64 { return (x - v.offsetX) * v.scale }
func (v *Viewport) PixelsToWorldY(y float64) float64 { return (y - v.offsetY) * v.scale }

func (v *Viewport) PixelToWorld(p geom.Point2D) geom.Point2D {
	return geom.Pt(v.PixelsToWorldX(p.X), v.PixelsToWorldY(p.Y))
}

// WorldToPixel returns the pixel nearest to the world point w
func (v *Viewport) WorldToPixel(w geom.Point2D) geom.Point2D {
	p := v.WorldToPixelF(w)
	return geom.Pt(math.Round(p.X), math.Round(p.Y))
}

// WorldToPixelF is WorldToPixel without rounding, for sub-pixel drawing
func (v *Viewport) WorldToPixelF(w geom.Point2D) geom.Point2D {
	return geom.Pt(w.X/v.scale+v.offsetX, w.Y/v.scale+v.offsetY)
}

// WorldLengthToPixels converts a world distance to pixels
func (v *Viewport) WorldLengthToPixels(l float64) float64 { return l / v.scale }

func (v *Viewport) Pan(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
}

// Zoom scales the view by factor (>1 zooms in, between 0 and 1 zooms out),
// keeping the world point under (cx, cy) fixed on screen.
func (v *Viewport) Zoom(factor, cx, cy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	v.scale /= factor
	v.offsetX = cx - (cx-v.offsetX)*factor
	v.offsetY = cy - (cy-v.offsetY)*factor
}

// ZoomAtCenter zooms about the center of the window
func (v *Viewport) ZoomAtCenter(factor float64) {
	c := v.PixelCenter()
	v.Zoom(factor, c.X, c.Y)
}

// PanAndZoomFromTwoPoints applies the pan and zoom implied by two pointers
// moving from (aOld, bOld) to (aNew, bNew), as in a pinch gesture.
// All points are in pixels.
func (v *Viewport) PanAndZoomFromTwoPoints(aOld, bOld, aNew, bNew geom.Point2D) {
	m1 := geom.Average(aOld, bOld)
	m2 := geom.Average(aNew, bNew)
	translation := m2.Sub(m1)

	l1 := aOld.Sub(bOld).Length()
	l2 := aNew.Sub(bNew).Length()
	factor := 1.0
	if l1 > 0 && l2 > 0 {
		factor = l2 / l1
	}
	v.Pan(translation.X, translation.Y)
	v.Zoom(factor, m2.X, m2.Y)
}

// Frame fits rect to the window along its tighter axis and centers the
// other axis. With expand, a margin of 1/20th of the diagonal is added.
// Empty or zero-extent rectangles are ignored.
func (v *Viewport) Frame(rect geom.AlignedRectangle2D, expand bool) {
	v.initialized = true
	if rect.IsDegenerate() || v.width <= 0 || v.height <= 0 {
		return
	}
	if expand {
		d := rect.Diagonal().Length() / 20
		rect = rect.Expand(geom.Vec(d, d))
	}
	w, h := float64(v.width), float64(v.height)
	diag := rect.Diagonal()
	center := rect.Center()
	if diag.X/diag.Y >= w/h {
		v.offsetX = -rect.Min().X * w / diag.X
		v.scale = diag.X / w
		v.offsetY = h/2 - center.Y/v.scale
	} else {
		v.offsetY = -rect.Min().Y * h / diag.Y
		v.scale = diag.Y / h
		v.offsetX = w/2 - center.X/v.scale
	}
}

// Resize records new window dimensions. After the first call it keeps the
// world point at the center and the apparent size of the inscribed circle.
func (v *Viewport) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if !v.initialized {
		v.width, v.height = w, h
		v.initialized = true
		return
	}

	oldCenter := v.PixelToWorld(v.PixelCenter())
	radius := float64(min(v.width, v.height)) * 0.5 * v.scale

	v.width, v.height = w, h

	if radius > 0 {
		v.Frame(geom.NewRect(
			geom.Pt(oldCenter.X-radius, oldCenter.Y-radius),
			geom.Pt(oldCenter.X+radius, oldCenter.Y+radius),
		), false)
	}
}
