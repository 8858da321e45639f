package editor

import (
	"math"

	"go-pianoroll/geom"
	"go-pianoroll/score"
	"go-pianoroll/widgets"
)

var (
	background = widgets.RGB(102, 102, 102) // 0.4 gray
	guideGray  = widgets.RGB(153, 153, 153) // 0.6 gray
)

const (
	datatipMargin  = 5
	datatipOffsetX = 15
	flashRatio     = 3.5
)

// Draw renders the grid in world units, then the menus and the datatip in
// pixels
func (c *Canvas) Draw(s widgets.Surface) {
	s.SetColor(background)
	s.FillRect(0, 0, float64(c.vp.Width()), float64(c.vp.Height()))

	c.drawScore(s)

	if c.playMenu.Visible() {
		c.playMenu.Draw(s)
	}
	if c.notesMenu.Visible() {
		c.notesMenu.Draw(s)
	}
	if c.controlMenu.Visible() {
		c.controlMenu.Draw(s)
	}
	if !c.anyMenuVisible() {
		c.drawDatatip(s)
	}
}

// fillWorld fills a rectangle given in world units
func (c *Canvas) fillWorld(s widgets.Surface, x, y, w, h float64) {
	p := c.vp.WorldToPixelF(geom.Pt(x, y))
	s.FillRect(p.X, p.Y, c.vp.WorldLengthToPixels(w), c.vp.WorldLengthToPixels(h))
}

func (c *Canvas) drawScore(s widgets.Surface) {
	numBeats := float64(c.score.NumBeats())
	highlight := c.opts.HighlightMajorScale

	for y := range score.NumPitches {
		fy := float64(y)
		pitch := y + score.LowestPitch
		if pitch == c.cursorPitch {
			s.SetColor(widgets.Cyan)
			c.fillWorld(s, 0, -fy-0.8, numBeats, 0.6)
		}
		switch {
		case pitch == score.MiddleC:
			s.SetColor(widgets.White)
			c.fillWorld(s, 0, -fy-0.7, numBeats, 0.4)
		case highlight && score.PitchClass(pitch) == 0:
			s.SetColor(widgets.White)
			c.fillWorld(s, 0, -fy-0.6, numBeats, 0.2)
		case highlight && score.Emphasized(pitch):
			s.SetColor(guideGray)
			c.fillWorld(s, 0, -fy-0.6, numBeats, 0.2)
		case score.InMajorScale(pitch) || !highlight:
			s.SetColor(guideGray)
			c.fillWorld(s, 0, -fy-0.55, numBeats, 0.1)
		}
	}

	playhead := c.player.Beat()
	for x := range c.score.NumBeats() {
		fx := float64(x)
		if x == c.cursorBeat {
			s.SetColor(widgets.Cyan)
			c.fillWorld(s, fx+0.2, -score.NumPitches, 0.6, score.NumPitches)
		}
		switch {
		case x == playhead:
			s.SetColor(widgets.Red)
			c.fillWorld(s, fx+0.45, -score.NumPitches, 0.1, score.NumPitches)
		case x%4 == 0:
			s.SetColor(guideGray)
			c.fillWorld(s, fx+0.45, -score.NumPitches, 0.1, score.NumPitches)
		}
	}

	c.score.Notes(func(n score.Note) {
		col := widgets.Black
		if n.Duration == score.Half {
			col = widgets.White
		}
		s.SetColor(col)
		x := float64(n.Beat)
		y := float64(n.Pitch - score.LowestPitch)
		w := n.Duration.Width()
		c.fillWorld(s, x+0.3, -y-0.7, w, 0.4)
		if n.Flash {
			c.fillWorld(s, x+0.3, -score.NumPitches-y/flashRatio-0.5, w, y/flashRatio+0.5)
		}
	})
}

// drawDatatip shows the pitch name next to the pointer
func (c *Canvas) drawDatatip(s widgets.Surface) {
	if c.cursorPitch < 0 || c.cursorBeat < 0 {
		return
	}
	name := score.PitchName(c.cursorPitch)
	x0 := c.mouseX + datatipOffsetX
	y0 := c.mouseY - widgets.TextHeight - 2*datatipMargin
	h := float64(widgets.TextHeight + 2*datatipMargin)
	w := math.Round(s.StringWidth(name) + 2*datatipMargin)

	s.SetColor(widgets.Black.WithAlpha(widgets.MenuAlpha))
	s.FillRect(x0, y0, w, h)
	s.SetColor(widgets.White)
	s.DrawRect(x0, y0, w, h)
	s.DrawString(c.mouseX+datatipOffsetX+datatipMargin, c.mouseY-datatipMargin, name)
}
