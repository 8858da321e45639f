package midi

import (
	"fmt"
	"sync"

	"go-pianoroll/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// NoteEvent is a key going down (On) or up on a MIDI keyboard
type NoteEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
	On       bool
}

// Keyboard listens to a MIDI input port (input only)
type Keyboard struct {
	name     string
	stopFunc func()
	mu       sync.Mutex
	closed   bool
	events   chan NoteEvent
}

// OpenKeyboard listens on the first input port whose name contains name
func OpenKeyboard(name string) (*Keyboard, error) {
	port, err := findIn(name, ScanTimeout)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", name, err)
	}
	kb := newKeyboard(port.String())
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		kb.handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", port.String(), err)
	}
	kb.stopFunc = stop
	debug.Log("midi", "keyboard opened: %s", port.String())
	return kb, nil
}

func newKeyboard(name string) *Keyboard {
	return &Keyboard{name: name, events: make(chan NoteEvent, 32)}
}

func (kb *Keyboard) Name() string { return kb.name }

// Events delivers key presses and releases; it is closed by Close
func (kb *Keyboard) Events() <-chan NoteEvent { return kb.events }

// handle runs on the driver's goroutine; a full channel drops the event
func (kb *Keyboard) handle(msg gomidi.Message) {
	var channel, note, velocity uint8
	var ev NoteEvent
	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		ev = NoteEvent{Channel: channel, Note: note, Velocity: velocity, On: true}
	case msg.GetNoteEnd(&channel, &note):
		ev = NoteEvent{Channel: channel, Note: note}
	default:
		return
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.closed {
		return
	}
	select {
	case kb.events <- ev:
	default:
		debug.Log("midi", "keyboard event dropped: %+v", ev)
	}
}

func (kb *Keyboard) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if !kb.closed {
		kb.closed = true
		close(kb.events)
	}
	return nil
}
