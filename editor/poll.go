package editor

import "go-pianoroll/geom"

// PointerState is one sample of polled input, for hosts that read the
// mouse every frame instead of receiving events
type PointerState struct {
	X, Y float64
	Down [3]bool // indexed by Button
	Mods Modifiers
}

// Poll turns consecutive PointerStates into Press, Drag, Move, Release and
// KeyCtrl calls
type Poll struct {
	last    PointerState
	started bool
}

func (p *Poll) Apply(c *Canvas, s PointerState) bool {
	if !p.started {
		p.started = true
		p.last = PointerState{X: s.X, Y: s.Y}
	}
	last := p.last
	p.last = s
	redraw := false

	if s.Mods.Ctrl != last.Mods.Ctrl && c.KeyCtrl(s.Mods.Ctrl) {
		redraw = true
	}

	held := false
	for b := range s.Down {
		held = held || (last.Down[b] && s.Down[b])
	}
	if s.X != last.X || s.Y != last.Y {
		if held {
			redraw = c.Drag(s.X, s.Y, s.Mods) || redraw
		} else {
			redraw = c.Move(s.X, s.Y, s.Mods) || redraw
		}
	}

	for b := range s.Down {
		if last.Down[b] && !s.Down[b] {
			redraw = c.Release(s.X, s.Y, Button(b), s.Mods) || redraw
		}
	}
	for b := range s.Down {
		if !last.Down[b] && s.Down[b] {
			redraw = c.Press(s.X, s.Y, Button(b), s.Mods) || redraw
		}
	}
	return redraw
}

// Pinch turns consecutive two-finger touch samples into viewport pans
// and zooms. Any other touch count ends the gesture.
type Pinch struct {
	last   [2]geom.Point2D
	active bool
}

func (p *Pinch) Apply(c *Canvas, touches []geom.Point2D) bool {
	if len(touches) != 2 {
		p.active = false
		return false
	}
	cur := [2]geom.Point2D{touches[0], touches[1]}
	last, active := p.last, p.active
	p.last, p.active = cur, true
	if !active || last == cur {
		return false
	}
	c.Viewport().PanAndZoomFromTwoPoints(last[0], last[1], cur[0], cur[1])
	return true
}
