package midi

import (
	"fmt"
	"sync"
	"time"

	"go-pianoroll/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ccAllNotesOff is the channel mode message that silences a channel
const ccAllNotesOff = 123

// Output sends notes to a MIDI output port, usually a synth
type Output struct {
	mu     sync.Mutex
	name   string
	port   drivers.Out
	send   func(gomidi.Message) error
	used   [16]bool
	closed bool
}

// OpenOutput opens the first output port whose name contains name
// (any port when name is empty)
func OpenOutput(name string) (*Output, error) {
	port, err := findOut(name, ScanTimeout)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", name, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}
	debug.Log("midi", "output opened: %s", port.String())
	o := newOutput(port.String(), send)
	o.port = port
	return o, nil
}

func newOutput(name string, send func(gomidi.Message) error) *Output {
	return &Output{name: name, send: send}
}

func (o *Output) Name() string { return o.name }

func (o *Output) NoteOn(channel, pitch, velocity uint8) {
	o.write(channel, gomidi.NoteOn(channel&0x0f, pitch&0x7f, velocity&0x7f))
}

func (o *Output) NoteOff(channel, pitch uint8) {
	o.write(channel, gomidi.NoteOff(channel&0x0f, pitch&0x7f))
}

func (o *Output) write(channel uint8, msg gomidi.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.used[channel&0x0f] = true
	if err := o.send(msg); err != nil {
		debug.LogEvery(50, "midi", "send to %s failed: %v", o.name, err)
	}
}

// Close silences every channel that was played on and closes the port
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	for ch, used := range o.used {
		if used {
			_ = o.send(gomidi.ControlChange(uint8(ch), ccAllNotesOff, 0))
		}
	}
	o.closed = true
	if o.port != nil {
		// let the all-notes-off messages drain before the port goes away
		time.Sleep(10 * time.Millisecond)
		if err := o.port.Close(); err != nil {
			return fmt.Errorf("close output %q: %w", o.name, err)
		}
	}
	return nil
}

// Discard is a sink that drops every note, used when sound is off or no
// port is available
type Discard struct{}

func (Discard) NoteOn(channel, pitch, velocity uint8) {}
func (Discard) NoteOff(channel, pitch uint8)          {}

// NoteSink is the subset of sequencer.NoteSink the outputs implement
type NoteSink interface {
	NoteOn(channel, pitch, velocity uint8)
	NoteOff(channel, pitch uint8)
}

// Switch forwards notes to a sink that can be replaced at runtime, e.g.
// when the configured port is plugged in after start-up
type Switch struct {
	mu   sync.RWMutex
	sink NoteSink
}

func NewSwitch(sink NoteSink) *Switch {
	if sink == nil {
		sink = Discard{}
	}
	return &Switch{sink: sink}
}

// Set replaces the target and returns the previous one
func (s *Switch) Set(sink NoteSink) NoteSink {
	if sink == nil {
		sink = Discard{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.sink
	s.sink = sink
	return old
}

func (s *Switch) Current() NoteSink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sink
}

func (s *Switch) NoteOn(channel, pitch, velocity uint8) {
	s.Current().NoteOn(channel, pitch, velocity)
}

func (s *Switch) NoteOff(channel, pitch uint8) {
	s.Current().NoteOff(channel, pitch)
}
