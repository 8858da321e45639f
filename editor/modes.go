package editor

import (
	"fmt"
	"strings"

	"go-pianoroll/score"
	"go-pianoroll/sequencer"
)

// DragMode is what a left drag over the grid does
type DragMode int

const (
	DrawNotes DragMode = iota
	EraseNotes
)

func (m DragMode) String() string {
	if m == EraseNotes {
		return "erase"
	}
	return "draw"
}

// RolloverMode controls auditioning the pitch under the pointer
type RolloverMode int

const (
	RolloverOff RolloverMode = iota
	RolloverPlay
	RolloverPlayIfCtrl
)

func (m RolloverMode) String() string {
	switch m {
	case RolloverPlay:
		return "play"
	case RolloverPlayIfCtrl:
		return "ctrl"
	}
	return "off"
}

// ParseRollover accepts the names String returns
func ParseRollover(s string) (RolloverMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "":
		return RolloverOff, nil
	case "play":
		return RolloverPlay, nil
	case "ctrl":
		return RolloverPlayIfCtrl, nil
	}
	return RolloverOff, fmt.Errorf("unknown rollover mode %q", s)
}

func (m RolloverMode) next() RolloverMode { return (m + 1) % 3 }

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers are the keys held while a pointer event happens
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// Options configure a Canvas
type Options struct {
	DragMode            DragMode
	Rollover            RolloverMode
	Scale               score.Scale
	HighlightMajorScale bool
	AutoFrame           bool
	Loop                bool
	IntervalMs          int
	Channel             uint8
	Velocity            uint8
	Seed                uint64 // for Generate; 0 picks one from the clock
}

func DefaultOptions() Options {
	return Options{
		DragMode:            DrawNotes,
		Rollover:            RolloverOff,
		Scale:               score.Chromatic,
		HighlightMajorScale: true,
		AutoFrame:           true,
		Loop:                true,
		IntervalMs:          int(sequencer.DefaultInterval.Milliseconds()),
		Velocity:            sequencer.DefaultVelocity,
	}
}
