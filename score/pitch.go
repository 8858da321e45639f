package score

import "strings"

var pitchClassNames = [PitchesPerOctave]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// C major, and the degrees drawn heavier when the scale is highlighted
var (
	majorScale = [PitchesPerOctave]bool{0: true, 2: true, 4: true, 5: true, 7: true, 9: true, 11: true}
	emphasized = [PitchesPerOctave]bool{0: true, 4: true, 5: true, 7: true}
)

// PitchClass returns 0 (C) to 11 (B) for a MIDI pitch
func PitchClass(pitch int) int {
	pc := (pitch - LowestPitch + LowestPitchClass) % PitchesPerOctave
	if pc < 0 {
		pc += PitchesPerOctave
	}
	return pc
}

// PitchName returns the pitch class name, e.g. "F#"
func PitchName(pitch int) string { return pitchClassNames[PitchClass(pitch)] }

func InMajorScale(pitch int) bool { return majorScale[PitchClass(pitch)] }

func Emphasized(pitch int) bool { return emphasized[PitchClass(pitch)] }

// Scale is the set of pitch classes notes may be painted on
type Scale struct {
	Name    string
	classes [PitchesPerOctave]bool
}

func newScale(name string, names ...string) Scale {
	sc := Scale{Name: name}
	for _, n := range names {
		for pc, pn := range pitchClassNames {
			if pn == n {
				sc.classes[pc] = true
			}
		}
	}
	return sc
}

var (
	CMajor      = newScale("C Major", "C", "D", "E", "F", "G", "A", "B")
	Pentatonic  = newScale("Pentatonic", "C", "D", "E", "G", "A")
	CLydian     = newScale("C Lydian", "C", "D", "E", "F#", "G", "A", "B")
	CMixolydian = newScale("C Mixolydian", "C", "D", "E", "F", "G", "A", "A#")
	Chromatic   = newScale("Chromatic", pitchClassNames[:]...)
)

// Scales lists the selectable scales in menu order
var Scales = []Scale{CMajor, Pentatonic, CLydian, CMixolydian, Chromatic}

// Allows reports whether pitch belongs to the scale
func (sc Scale) Allows(pitch int) bool { return sc.classes[PitchClass(pitch)] }

// ScaleByName finds a scale ignoring case and spaces, e.g. "c-major" or "lydian"
func ScaleByName(name string) (Scale, bool) {
	key := normalize(name)
	for _, sc := range Scales {
		n := normalize(sc.Name)
		if n == key || strings.TrimPrefix(n, "c") == key {
			return sc, true
		}
	}
	return Scale{}, false
}

// NextScale returns the scale after sc in Scales, wrapping around
func NextScale(sc Scale) Scale {
	for i, s := range Scales {
		if s.Name == sc.Name {
			return Scales[(i+1)%len(Scales)]
		}
	}
	return Scales[0]
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
