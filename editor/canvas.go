// Package editor is the piano-roll canvas: it owns the score, the camera
// and the three radial menus, interprets pointer and key events, and draws
// everything onto a widgets.Surface. Hosts (terminal, window) translate
// their input into Press/Release/Move/Drag calls and redraw whenever a call
// returns true or the player signals a step.
package editor

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go-pianoroll/debug"
	"go-pianoroll/score"
	"go-pianoroll/sequencer"
	"go-pianoroll/viewport"
	"go-pianoroll/widgets"
)

// Canvas is not safe for concurrent use; call it from the host's event
// loop. The player goroutine only touches the score, which has its own lock.
type Canvas struct {
	score  *score.Score
	vp     *viewport.Viewport
	player *sequencer.Player
	sink   sequencer.NoteSink

	playMenu    *widgets.RadialMenu
	controlMenu *widgets.RadialMenu
	notesMenu   *widgets.RadialMenu

	opts Options
	rng  *rand.Rand

	mouseX, mouseY float64
	ctrlDown       bool

	cursorBeat  int // -1 for none
	cursorPitch int // MIDI, -1 for none
	stepBeat    int // where the next keyboard note goes

	transposeAcc float64
	tempoClick   atomic.Bool
	canceled     bool // a menu was dismissed mid-gesture; ignore drags until release
}

// New creates a canvas framed on s. Notes go to sink, which may be
// midi.Discard{} when sound is off.
func New(s *score.Score, sink sequencer.NoteSink, opts Options) *Canvas {
	if s == nil {
		s = score.New()
	}
	if opts.Scale.Name == "" {
		opts.Scale = score.Chromatic
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	c := &Canvas{
		score:       s,
		vp:          viewport.New(),
		sink:        sink,
		playMenu:    newPlayMenu(),
		controlMenu: newControlMenu(),
		notesMenu:   newNotesMenu(),
		opts:        opts,
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		cursorBeat:  -1,
		cursorPitch: -1,
	}
	c.player = sequencer.NewPlayer(s, sink)
	c.player.SetClick(c.tempoClick.Load)
	c.player.SetLoop(opts.Loop)
	c.player.SetOutput(opts.Channel, opts.Velocity)
	if opts.IntervalMs > 0 {
		c.player.SetIntervalMs(opts.IntervalMs)
	}
	c.vp.Frame(s.Bounds(), false)
	return c
}

func (c *Canvas) Score() *score.Score              { return c.score }
func (c *Canvas) Viewport() *viewport.Viewport     { return c.vp }
func (c *Canvas) Player() *sequencer.Player        { return c.player }
func (c *Canvas) Options() Options                 { return c.opts }
func (c *Canvas) PlayMenu() *widgets.RadialMenu    { return c.playMenu }
func (c *Canvas) ControlMenu() *widgets.RadialMenu { return c.controlMenu }
func (c *Canvas) NotesMenu() *widgets.RadialMenu   { return c.notesMenu }

// Cursor returns the beat and MIDI pitch under the pointer, -1 for none
func (c *Canvas) Cursor() (beat, pitch int) { return c.cursorBeat, c.cursorPitch }

// Updates receives a value after every playback step
func (c *Canvas) Updates() <-chan struct{} { return c.player.UpdateChan }

// Close stops playback for good and silences the pointer note
func (c *Canvas) Close() {
	c.player.Close()
	c.stopNote(c.cursorPitch)
}

func (c *Canvas) anyMenuVisible() bool {
	return c.playMenu.Visible() || c.controlMenu.Visible() || c.notesMenu.Visible()
}

// CancelMenus hides any open menu without running its command. The rest
// of the gesture is ignored.
func (c *Canvas) CancelMenus() bool {
	if !c.anyMenuVisible() {
		return false
	}
	for _, menu := range []*widgets.RadialMenu{c.playMenu, c.controlMenu, c.notesMenu} {
		menu.SetVisible(false)
	}
	c.canceled = true
	c.syncClick()
	return true
}

// syncClick tells the player whether the tempo is being adjusted
func (c *Canvas) syncClick() {
	c.tempoClick.Store(c.controlMenu.Visible() && c.controlMenu.SelectedID() == ControlTempo)
}

func (c *Canvas) track(x, y float64, m Modifiers) (dx, dy float64) {
	dx, dy = x-c.mouseX, y-c.mouseY
	c.mouseX, c.mouseY = x, y
	if c.ctrlDown && !m.Ctrl && c.opts.Rollover == RolloverPlayIfCtrl {
		// ctrl let go between pointer events
		c.stopNote(c.cursorPitch)
	}
	c.ctrlDown = m.Ctrl
	return dx, dy
}

// Press handles a button going down at pixel (x, y)
func (c *Canvas) Press(x, y float64, b Button, m Modifiers) bool {
	c.track(x, y, m)
	c.canceled = false
	left := b == ButtonLeft

	if c.playMenu.Visible() || (left && m.Ctrl) {
		status := c.playMenu.Press(x, y)
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if c.controlMenu.Visible() || (left && m.Shift) {
		status := c.controlMenu.Press(x, y)
		c.transposeAcc = 0
		c.syncClick()
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if left {
		c.stepBeat = max(c.score.BeatAt(c.vp, x), 0)
		return c.paint(x, y, score.Quarter, c.opts.DragMode)
	}
	if b == ButtonRight || c.notesMenu.Visible() {
		return c.notesMenu.Press(x, y) == widgets.StatusRedraw
	}
	return false
}

// Release handles a button going up and runs the chosen menu command
func (c *Canvas) Release(x, y float64, b Button, m Modifiers) bool {
	c.track(x, y, m)
	c.canceled = false

	if c.playMenu.Visible() {
		status := c.playMenu.Release(x, y)
		c.runPlayCommand(c.playMenu.SelectedID())
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if c.controlMenu.Visible() {
		status := c.controlMenu.Release(x, y)
		c.syncClick()
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if c.notesMenu.Visible() {
		status := c.notesMenu.Release(x, y)
		d := score.Duration(c.notesMenu.SelectedID())
		redraw := status == widgets.StatusRedraw
		if d != score.Empty {
			cx, cy := c.notesMenu.Center()
			if c.paint(cx, cy, d, DrawNotes) {
				redraw = true
			}
		}
		return redraw
	}
	return false
}

func (c *Canvas) runPlayCommand(id int) {
	switch id {
	case PlayMenuPlay:
		c.SetPlaying(true)
	case PlayMenuStop:
		c.SetPlaying(false)
	case PlayMenuDraw:
		c.opts.DragMode = DrawNotes
	case PlayMenuErase:
		c.opts.DragMode = EraseNotes
	}
}

// Move handles pointer motion with no button held
func (c *Canvas) Move(x, y float64, m Modifiers) bool {
	c.track(x, y, m)

	for _, menu := range []*widgets.RadialMenu{c.playMenu, c.controlMenu, c.notesMenu} {
		if menu.Visible() {
			status := menu.Move(x, y)
			if status.Consumed() {
				return status == widgets.StatusRedraw
			}
		}
	}
	return c.rollover(x, y)
}

// rollover tracks the cell under the pointer and auditions a new pitch
func (c *Canvas) rollover(x, y float64) bool {
	redraw := false
	if beat := c.score.BeatAt(c.vp, x); beat != c.cursorBeat {
		c.cursorBeat = beat
		redraw = true
	}
	if pitch := c.score.PitchAt(c.vp, y); pitch != c.cursorPitch {
		c.stopNote(c.cursorPitch)
		c.cursorPitch = pitch
		if c.cursorBeat >= 0 && c.auditioning() {
			c.playNote(pitch)
		}
		redraw = true
	}
	return redraw
}

func (c *Canvas) auditioning() bool {
	switch c.opts.Rollover {
	case RolloverPlay:
		return true
	case RolloverPlayIfCtrl:
		return c.ctrlDown
	}
	return false
}

// Drag handles pointer motion with a button held
func (c *Canvas) Drag(x, y float64, m Modifiers) bool {
	dx, dy := c.track(x, y, m)
	if c.canceled {
		return false
	}

	if c.playMenu.Visible() {
		status := c.playMenu.Drag(x, y)
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if c.notesMenu.Visible() {
		status := c.notesMenu.Drag(x, y)
		if status.Consumed() {
			return status == widgets.StatusRedraw
		}
	}
	if c.controlMenu.Visible() {
		if c.controlMenu.InMenuingMode() {
			status := c.controlMenu.Drag(x, y)
			c.syncClick()
			return status == widgets.StatusRedraw
		}
		c.adjust(c.controlMenu.SelectedID(), dx, dy)
		return true
	}
	return c.paint(x, y, score.Quarter, c.opts.DragMode)
}

// adjust applies a control drag of (dx, dy) pixels to the chosen parameter
func (c *Canvas) adjust(id int, dx, dy float64) {
	switch id {
	case ControlPan:
		c.vp.Pan(dx, dy)
	case ControlZoom:
		c.vp.ZoomAtCenter(math.Pow(zoomPerPixel, dx-dy))
	case ControlTempo:
		switch {
		case dy > 0:
			c.player.SetIntervalMs(c.player.IntervalMs() + tempoStepMs)
		case dy < 0:
			c.player.SetIntervalMs(c.player.IntervalMs() - tempoStepMs)
		}
	case ControlTotalDuration:
		if n := int(math.Round(dx)); n != 0 {
			c.SetNumBeats(c.score.NumBeats() + n)
		}
	case ControlTranspose:
		c.transposeAcc -= dy
		if steps := int(c.transposeAcc / transposePixels); steps != 0 {
			c.transposeAcc -= float64(steps * transposePixels)
			c.transpose(steps)
			debug.Log("editor", "transpose %+d", steps)
		}
	}
}

// paint moves the cursor to the cell at (x, y) and draws or erases it
func (c *Canvas) paint(x, y float64, d score.Duration, mode DragMode) bool {
	redraw := false
	beat, pitch := c.score.BeatAt(c.vp, x), c.score.PitchAt(c.vp, y)
	if beat != c.cursorBeat || pitch != c.cursorPitch {
		c.cursorBeat, c.cursorPitch = beat, pitch
		redraw = true
	}
	if beat < 0 || pitch < 0 {
		return redraw
	}
	if mode == EraseNotes {
		return c.score.Erase(beat, pitch) || redraw
	}
	return c.score.Paint(beat, pitch, d, c.opts.Scale) || redraw
}

// KeyCtrl reports the ctrl key going down or up
func (c *Canvas) KeyCtrl(down bool) bool {
	c.ctrlDown = down
	if !down {
		c.stopNote(c.cursorPitch)
		return false
	}
	if c.cursorBeat >= 0 && c.opts.Rollover == RolloverPlayIfCtrl {
		c.playNote(c.cursorPitch)
	}
	return false
}

func (c *Canvas) playNote(pitch int) {
	if pitch >= 0 {
		c.sink.NoteOn(c.opts.Channel, uint8(pitch), c.opts.Velocity)
	}
}

func (c *Canvas) stopNote(pitch int) {
	if pitch >= 0 {
		c.sink.NoteOff(c.opts.Channel, uint8(pitch))
	}
}

// Resize follows a window size change; with auto-frame the whole score is
// framed again
func (c *Canvas) Resize(w, h int) bool {
	if w == c.vp.Width() && h == c.vp.Height() {
		return false
	}
	c.vp.Resize(w, h)
	if c.opts.AutoFrame {
		c.vp.Frame(c.score.Bounds(), false)
	}
	return true
}
