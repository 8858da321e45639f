package sequencer

import (
	"slices"
	"sync"
	"time"

	"go-pianoroll/debug"
	"go-pianoroll/score"
)

// NoteSink receives the notes the player and the editor trigger
type NoteSink interface {
	NoteOn(channel, pitch, velocity uint8)
	NoteOff(channel, pitch uint8)
}

const (
	DefaultInterval = 150 * time.Millisecond
	MinInterval     = 10 * time.Millisecond
	DefaultVelocity = 127

	// tempo click, sent while the tempo is being adjusted
	ClickChannel  = 15
	ClickNote     = 28
	ClickVelocity = 100
)

// heldNote is a note the player turned on and still owes a note-off
type heldNote struct {
	channel, pitch uint8
}

// Player steps through the score one beat per interval on its own
// goroutine. Stopping only pauses it; Close ends the goroutine.
type Player struct {
	score *score.Score
	sink  NoteSink

	mu       sync.Mutex
	beat     int
	started  bool
	paused   bool
	closed   bool
	loop     bool
	interval time.Duration
	channel  uint8
	velocity uint8
	click    func() bool
	held     []heldNote

	wake     chan struct{}
	stopChan chan struct{}
	done     chan struct{}

	// UpdateChan receives a value after every step; signals coalesce
	UpdateChan chan struct{}
}

func NewPlayer(s *score.Score, sink NoteSink) *Player {
	return &Player{
		score:      s,
		sink:       sink,
		loop:       true,
		interval:   DefaultInterval,
		velocity:   DefaultVelocity,
		wake:       make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		UpdateChan: make(chan struct{}, 1),
	}
}

// Start rewinds to beat 0 and plays, launching the goroutine on first use
func (p *Player) Start() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.releaseLocked()
	p.beat = 0
	p.paused = false
	if !p.started {
		p.started = true
		go p.run()
	}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
	debug.Log("player", "start interval=%v", p.Interval())
}

// Pause suspends stepping and releases sounding notes; the current beat
// is kept
func (p *Player) Pause() {
	p.mu.Lock()
	p.paused = true
	p.releaseLocked()
	p.mu.Unlock()
	debug.Log("player", "pause at beat %d", p.Beat())
}

// Playing reports whether the goroutine is stepping
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && !p.paused && !p.closed
}

// Close stops the goroutine and waits for it to exit
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	started := p.started
	close(p.stopChan)
	p.mu.Unlock()

	if started {
		<-p.done
	}
	p.Silence()
}

// Silence sends note-off for every note the player has sounding. The
// editor calls it after edits that move or remove notes under the
// playhead.
func (p *Player) Silence() {
	p.mu.Lock()
	p.releaseLocked()
	p.mu.Unlock()
}

// Sounding returns the number of notes waiting for a note-off
func (p *Player) Sounding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.held)
}

func (p *Player) releaseLocked() {
	for _, n := range p.held {
		p.sink.NoteOff(n.channel, n.pitch)
	}
	p.held = p.held[:0]
}

func (p *Player) holdLocked(channel, pitch, velocity uint8) {
	p.sink.NoteOn(channel, pitch, velocity)
	if n := (heldNote{channel, pitch}); !slices.Contains(p.held, n) {
		p.held = append(p.held, n)
	}
}

// Beat returns the beat under the playhead
func (p *Player) Beat() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.beat
}

func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval sets the time between beats, at least MinInterval
func (p *Player) SetInterval(d time.Duration) {
	d = max(d, MinInterval)
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

func (p *Player) IntervalMs() int { return int(p.Interval() / time.Millisecond) }

func (p *Player) SetIntervalMs(ms int) { p.SetInterval(time.Duration(ms) * time.Millisecond) }

func (p *Player) Loop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

// SetLoop controls whether playback wraps around or pauses at the end
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	p.loop = loop
	p.mu.Unlock()
}

// SetOutput sets the channel and velocity of triggered notes
func (p *Player) SetOutput(channel, velocity uint8) {
	p.mu.Lock()
	p.channel, p.velocity = channel&0x0f, min(velocity, 127)
	p.mu.Unlock()
}

// SetClick installs a hook asked on every step whether to send the tempo
// click. It runs on the player goroutine and must not call back into p.
func (p *Player) SetClick(fn func() bool) {
	p.mu.Lock()
	p.click = fn
	p.mu.Unlock()
}

// Step advances one beat: note-off for whatever the last step turned on,
// whatever the grid holds now, then note-on for the new beat. It is safe
// to call while the goroutine runs.
func (p *Player) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked()
	ch, vel := p.channel, p.velocity
	next, wrapped := p.score.Advance(p.beat, nil, func(pitch int) {
		p.holdLocked(ch, uint8(pitch), vel)
	})
	p.beat = next
	if p.click != nil && p.click() {
		p.holdLocked(ClickChannel, ClickNote, ClickVelocity)
	}
	if wrapped && !p.loop && p.started {
		p.paused = true
		debug.Log("player", "end of score, pausing")
	}

	select {
	case p.UpdateChan <- struct{}{}:
	default:
	}
}

func (p *Player) run() {
	defer close(p.done)
	for {
		if !p.waitWhilePaused() {
			return
		}
		p.Step()

		timer := time.NewTimer(p.Interval())
		select {
		case <-p.stopChan:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// waitWhilePaused blocks until playing or closed; false means closed
func (p *Player) waitWhilePaused() bool {
	for {
		p.mu.Lock()
		paused, closed := p.paused, p.closed
		p.mu.Unlock()
		if closed {
			return false
		}
		if !paused {
			return true
		}
		select {
		case <-p.stopChan:
			return false
		case <-p.wake:
		}
	}
}
