package score

import (
	"math/rand/v2"
	"sync"

	"go-pianoroll/geom"
)

// A grand piano keyboard: A0 (MIDI 21) to C8 (MIDI 108)
const (
	NumPitches       = 88
	LowestPitch      = 21
	LowestPitchClass = 9 // A
	MiddleC          = 60
	PitchesPerOctave = 12

	DefaultBeats = 128
)

// Duration is the code stored in a cell; zero means empty
type Duration int

const (
	Empty     Duration = 0
	Sixteenth Duration = 25
	Eighth    Duration = 50
	Quarter   Duration = 100
	Half      Duration = 200
	Whole     Duration = 400
)

func (d Duration) String() string {
	switch d {
	case Empty:
		return "empty"
	case Sixteenth:
		return "16th"
	case Eighth:
		return "8th"
	case Quarter:
		return "quarter"
	case Half:
		return "half"
	case Whole:
		return "whole"
	}
	return "custom"
}

// Width is the drawn length of a note in beats
func (d Duration) Width() float64 {
	switch d {
	case Whole:
		return 1.2
	case Half:
		return 0.8
	case Eighth:
		return 0.2
	case Sixteenth:
		return 0.1
	}
	return 0.4
}

// Note is one occupied cell
type Note struct {
	Beat     int
	Pitch    int // MIDI note number
	Duration Duration
	Flash    bool // triggered by playback since the last draw
}

// Score is the beat x pitch grid shared by the editor and the player.
// Every method takes the score lock.
type Score struct {
	mu       sync.Mutex
	numBeats int
	cells    [][]Duration // [beat][pitch index]
	flash    [][]bool
}

func New() *Score {
	s := &Score{}
	s.resize(DefaultBeats)
	return s
}

func (s *Score) resize(n int) {
	cells := make([][]Duration, n)
	flash := make([][]bool, n)
	for x := range cells {
		cells[x] = make([]Duration, NumPitches)
		flash[x] = make([]bool, NumPitches)
		if x < len(s.cells) {
			copy(cells[x], s.cells[x])
			copy(flash[x], s.flash[x])
		}
	}
	s.numBeats = n
	s.cells = cells
	s.flash = flash
}

func (s *Score) NumBeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numBeats
}

// SetNumBeats changes the length of the piece, keeping the notes that still
// fit. n is clamped to at least one beat.
func (s *Score) SetNumBeats(n int) bool {
	n = max(n, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == s.numBeats {
		return false
	}
	s.resize(n)
	return true
}

// Bounds is the world rectangle covered by the grid
func (s *Score) Bounds() geom.AlignedRectangle2D {
	return geom.NewRect(geom.Pt(0, -NumPitches), geom.Pt(float64(s.NumBeats()), 0))
}

func (s *Score) index(beat, pitch int) (int, bool) {
	i := pitch - LowestPitch
	if beat < 0 || beat >= s.numBeats || i < 0 || i >= NumPitches {
		return 0, false
	}
	return i, true
}

// At returns the duration code at (beat, MIDI pitch), Empty when out of range
func (s *Score) At(beat, pitch int) Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(beat, pitch)
	if !ok {
		return Empty
	}
	return s.cells[beat][i]
}

func (s *Score) Occupied(beat, pitch int) bool { return s.At(beat, pitch) != Empty }

// Set stores d at (beat, pitch) and reports whether the cell changed
func (s *Score) Set(beat, pitch int, d Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(beat, pitch)
	if !ok || s.cells[beat][i] == d {
		return false
	}
	s.cells[beat][i] = d
	return true
}

// Paint places a note on an empty cell whose pitch the scale allows
func (s *Score) Paint(beat, pitch int, d Duration, sc Scale) bool {
	if d == Empty || !sc.Allows(pitch) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(beat, pitch)
	if !ok || s.cells[beat][i] != Empty {
		return false
	}
	s.cells[beat][i] = d
	return true
}

func (s *Score) Erase(beat, pitch int) bool { return s.Set(beat, pitch, Empty) }

func (s *Score) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for x := range s.cells {
		clear(s.cells[x])
		clear(s.flash[x])
	}
}

// Count returns the number of notes in the grid
func (s *Score) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for x := range s.cells {
		for _, d := range s.cells[x] {
			if d != Empty {
				n++
			}
		}
	}
	return n
}

// Transpose shifts every note by semitones. Notes pushed off the keyboard
// are dropped.
func (s *Score) Transpose(semitones int) bool {
	if semitones == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for x := range s.cells {
		col := make([]Duration, NumPitches)
		for i, d := range s.cells[x] {
			if d == Empty {
				continue
			}
			changed = true
			if j := i + semitones; j >= 0 && j < NumPitches {
				col[j] = d
			}
		}
		s.cells[x] = col
		clear(s.flash[x])
	}
	return changed
}

// Notes calls fn for every note in beat then pitch order. Flash flags are
// one-shot: they are reported once and cleared.
func (s *Score) Notes(fn func(Note)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for x := range s.cells {
		for i, d := range s.cells[x] {
			if d == Empty {
				continue
			}
			fn(Note{Beat: x, Pitch: i + LowestPitch, Duration: d, Flash: s.flash[x][i]})
			s.flash[x][i] = false
		}
	}
}

// Advance moves the playhead off beat and onto the next one, wrapping to 0.
// off is called for each note of the old beat and on for each note of the
// new one, which are flagged to flash; both run under the score lock. off
// may be nil.
func (s *Score) Advance(beat int, off, on func(pitch int)) (next int, wrapped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if off != nil && beat >= 0 && beat < s.numBeats {
		for i, d := range s.cells[beat] {
			if d != Empty {
				off(i + LowestPitch)
			}
		}
	}
	next = beat + 1
	if next >= s.numBeats || next < 0 {
		next, wrapped = 0, true
	}
	for i, d := range s.cells[next] {
		if d != Empty {
			s.flash[next][i] = true
			on(i + LowestPitch)
		}
	}
	return next, wrapped
}

// NotesAt returns the pitches occupied at beat
func (s *Score) NotesAt(beat int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if beat < 0 || beat >= s.numBeats {
		return nil
	}
	var pitches []int
	for i, d := range s.cells[beat] {
		if d != Empty {
			pitches = append(pitches, i+LowestPitch)
		}
	}
	return pitches
}

// Generate sprinkles random notes from middle C up, restricted to sc
func (s *Score) Generate(rng *rand.Rand, sc Scale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for x := range s.cells {
		for p := MiddleC; p < LowestPitch+NumPitches; p++ {
			if rng.Float64() <= 0.95 || !sc.Allows(p) {
				continue
			}
			s.cells[x][p-LowestPitch] = randomDuration(rng.Float64())
		}
	}
}

func randomDuration(v float64) Duration {
	switch {
	case v <= 0.2:
		return Sixteenth
	case v <= 0.4:
		return Eighth
	case v <= 0.8:
		return Quarter
	case v <= 0.9:
		return Half
	}
	return Whole
}

// PixelMapper converts pixels to world units; *viewport.Viewport is one
type PixelMapper interface {
	PixelsToWorldX(x float64) float64
	PixelsToWorldY(y float64) float64
}

// BeatAt returns the beat under pixel column x, or -1
func (s *Score) BeatAt(m PixelMapper, x float64) int {
	wx := m.PixelsToWorldX(x)
	if wx < 0 {
		return -1
	}
	beat := int(wx)
	if beat >= s.NumBeats() {
		return -1
	}
	return beat
}

// PitchAt returns the MIDI pitch under pixel row y, or -1
func (s *Score) PitchAt(m PixelMapper, y float64) int {
	wy := -m.PixelsToWorldY(y)
	if wy < 0 {
		return -1
	}
	i := int(wy)
	if i >= NumPitches {
		return -1
	}
	return i + LowestPitch
}
