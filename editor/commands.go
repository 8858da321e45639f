package editor

import (
	"fmt"

	"go-pianoroll/debug"
	"go-pianoroll/score"
	"go-pianoroll/widgets"
)

// Every command reports whether the canvas needs a redraw.

func (c *Canvas) Clear() bool {
	c.score.Clear()
	c.player.Silence()
	return true
}

// transpose shifts every note by semitones; notes sounding at their old
// pitch are released
func (c *Canvas) transpose(semitones int) bool {
	if !c.score.Transpose(semitones) {
		return false
	}
	c.player.Silence()
	return true
}

// FrameAll fits the whole score in the window
func (c *Canvas) FrameAll() bool {
	c.vp.Frame(c.score.Bounds(), false)
	return true
}

// Generate adds random notes in the current scale
func (c *Canvas) Generate() bool {
	c.score.Generate(c.rng, c.opts.Scale)
	debug.Log("editor", "generated in %s, %d notes", c.opts.Scale.Name, c.score.Count())
	return true
}

// SetScale restricts painting and generation to sc
func (c *Canvas) SetScale(sc score.Scale) bool {
	c.opts.Scale = sc
	return false
}

func (c *Canvas) SetHighlightMajorScale(on bool) bool {
	changed := c.opts.HighlightMajorScale != on
	c.opts.HighlightMajorScale = on
	return changed
}

func (c *Canvas) SetAutoFrame(on bool) bool {
	c.opts.AutoFrame = on
	if on {
		return c.FrameAll()
	}
	return false
}

func (c *Canvas) SetLoop(on bool) bool {
	c.player.SetLoop(on)
	c.opts.Loop = on
	return false
}

func (c *Canvas) SetDragMode(m DragMode) bool {
	c.opts.DragMode = m
	return false
}

// SetRollover changes auditioning; a sounding pointer note is stopped
func (c *Canvas) SetRollover(m RolloverMode) bool {
	if m != c.opts.Rollover {
		c.stopNote(c.cursorPitch)
	}
	c.opts.Rollover = m
	return false
}

// SetPlaying starts playback from beat 0 or pauses it
func (c *Canvas) SetPlaying(on bool) bool {
	if on {
		c.player.Start()
	} else {
		c.player.Pause()
	}
	return true
}

func (c *Canvas) Playing() bool { return c.player.Playing() }

// SetNumBeats changes the length of the piece, keeping existing notes
func (c *Canvas) SetNumBeats(n int) bool {
	if !c.score.SetNumBeats(n) {
		return false
	}
	c.player.Silence()
	if c.opts.AutoFrame {
		c.vp.Frame(c.score.Bounds(), false)
	}
	c.stepBeat = min(c.stepBeat, c.score.NumBeats()-1)
	return true
}

// TempoLabel shows the time between beats
func (c *Canvas) TempoLabel() string {
	return fmt.Sprintf("Tempo : %d ms", c.player.IntervalMs())
}

// Save writes the score to path, adding the .beatz extension when missing
func (c *Canvas) Save(path string) (string, error) {
	saved, err := c.score.Save(path)
	if err != nil {
		return "", err
	}
	debug.Log("editor", "saved %s", saved)
	return saved, nil
}

// Load replaces the score with the file at path; on error nothing changes
func (c *Canvas) Load(path string) error {
	if err := c.score.Load(path); err != nil {
		return err
	}
	c.player.Silence()
	debug.Log("editor", "loaded %s", path)
	return nil
}

// SaveTo stores the score in lib under an optional name
func (c *Canvas) SaveTo(lib *score.Library, name string) (string, error) {
	return lib.Save(c.score, name)
}

// LoadFrom loads filename from lib, or the newest save when empty
func (c *Canvas) LoadFrom(lib *score.Library, filename string) (string, error) {
	path, err := lib.Load(c.score, filename)
	if err != nil {
		return "", err
	}
	c.player.Silence()
	return path, nil
}

// StepInput records a key from a MIDI keyboard: a key press is auditioned
// and painted as a quarter note at the step position, which then advances
func (c *Canvas) StepInput(pitch int, on bool) bool {
	if !on {
		c.stopNote(pitch)
		return false
	}
	c.playNote(pitch)
	beat := c.stepBeat
	painted := c.score.Paint(beat, pitch, score.Quarter, c.opts.Scale)
	c.stepBeat = (beat + 1) % c.score.NumBeats()
	return painted
}

// StepBeat is where the next keyboard note goes
func (c *Canvas) StepBeat() int { return c.stepBeat }

const (
	panStep  = 32
	zoomStep = 1.25
)

// HandleKey runs the command bound to key. Keys are named the way
// bubbletea names them ("space", "left", "+").
func (c *Canvas) HandleKey(key string) bool {
	switch key {
	case " ", "space":
		return c.SetPlaying(!c.Playing())
	case "c":
		return c.Clear()
	case "f":
		return c.FrameAll()
	case "g":
		return c.Generate()
	case "s":
		return c.SetScale(score.NextScale(c.opts.Scale))
	case "h":
		return c.SetHighlightMajorScale(!c.opts.HighlightMajorScale)
	case "a":
		return c.SetAutoFrame(!c.opts.AutoFrame)
	case "l":
		return c.SetLoop(!c.opts.Loop)
	case "d":
		return c.SetDragMode(DrawNotes)
	case "e":
		return c.SetDragMode(EraseNotes)
	case "r":
		return c.SetRollover(c.opts.Rollover.next())
	case "+", "=":
		c.player.SetIntervalMs(c.player.IntervalMs() - tempoStepMs)
	case "-", "_":
		c.player.SetIntervalMs(c.player.IntervalMs() + tempoStepMs)
	case "t":
		c.transpose(1)
		return true
	case "T":
		c.transpose(-1)
		return true
	case "]":
		return c.SetNumBeats(c.score.NumBeats() + 4)
	case "[":
		return c.SetNumBeats(c.score.NumBeats() - 4)
	case "esc":
		return c.CancelMenus()
	case "left":
		c.vp.Pan(panStep, 0)
		return true
	case "right":
		c.vp.Pan(-panStep, 0)
		return true
	case "up":
		c.vp.Pan(0, panStep)
		return true
	case "down":
		c.vp.Pan(0, -panStep)
		return true
	case "z":
		c.vp.ZoomAtCenter(zoomStep)
		return true
	case "x":
		c.vp.ZoomAtCenter(1 / zoomStep)
		return true
	}
	return false
}

// KeyHelp lists the bindings HandleKey understands plus the pointer gestures
func KeyHelp() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "Pointer", Keys: []widgets.KeyBinding{
			{Key: "drag", Desc: "draw / erase"},
			{Key: "ctrl+drag", Desc: "play menu"},
			{Key: "shift+drag", Desc: "control menu"},
			{Key: "right drag", Desc: "note length"},
			{Key: "esc", Desc: "cancel menu"},
		}},
		{Title: "Play", Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "play / stop"},
			{Key: "+ / -", Desc: "faster / slower"},
			{Key: "l", Desc: "loop"},
		}},
		{Title: "Edit", Keys: []widgets.KeyBinding{
			{Key: "d / e", Desc: "draw / erase"},
			{Key: "t / T", Desc: "transpose"},
			{Key: "[ / ]", Desc: "length -/+"},
			{Key: "g / c", Desc: "generate / clear"},
			{Key: "s", Desc: "scale"},
		}},
		{Title: "View", Keys: []widgets.KeyBinding{
			{Key: "arrows", Desc: "pan"},
			{Key: "z / x", Desc: "zoom in/out"},
			{Key: "f / a", Desc: "frame / auto"},
			{Key: "h / r", Desc: "highlight / rollover"},
		}},
	}
}
