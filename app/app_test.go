package app

import (
	"path/filepath"
	"testing"

	"go-pianoroll/config"
	"go-pianoroll/editor"
	"go-pianoroll/midi"
	"go-pianoroll/score"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Enabled = false
	cfg.Editor.ScoreDir = t.TempDir()
	cfg.UI.Width, cfg.UI.Height = 640, 480
	return cfg
}

func TestOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Editor.Rollover = "ctrl"
	cfg.Editor.Scale = "pentatonic"
	cfg.Editor.IntervalMs = 90
	cfg.Output.Channel = 3
	cfg.Output.Velocity = 80

	opts, err := Options(cfg)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Rollover != editor.RolloverPlayIfCtrl || opts.Scale.Name != score.Pentatonic.Name {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.IntervalMs != 90 || opts.Channel != 3 || opts.Velocity != 80 {
		t.Fatalf("opts = %+v", opts)
	}

	cfg.Editor.Scale = "blues"
	if _, err := Options(cfg); err == nil {
		t.Fatalf("unknown scale accepted")
	}
}

func TestNewLoadsScoreArgument(t *testing.T) {
	s := score.New()
	s.Set(7, 65, score.Whole)
	path, err := s.Save(filepath.Join(t.TempDir(), "start"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg := testConfig(t)
	cfg.Args = []string{path}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Canvas.Score().At(7, 65) != score.Whole {
		t.Fatalf("score argument not loaded")
	}
	if a.Library.Dir != cfg.Editor.ScoreDir {
		t.Fatalf("library in %s", a.Library.Dir)
	}
	if vp := a.Canvas.Viewport(); vp.Width() != 640 || vp.Height() != 480 {
		t.Fatalf("canvas %dx%d", vp.Width(), vp.Height())
	}
	if a.OutputName() != "" || a.Keys() != nil {
		t.Fatalf("sound and keyboard should be off")
	}
}

func TestNewLoadsSaveByName(t *testing.T) {
	cfg := testConfig(t)
	lib := score.NewLibrary(cfg.Editor.ScoreDir)
	s := score.New()
	s.Set(3, 70, score.Half)
	if _, err := lib.Save(s, "night theme"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg.Args = []string{"night"}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if a.Canvas.Score().At(3, 70) != score.Half {
		t.Fatalf("save not loaded by name")
	}
}

func TestNewFailsOnMissingScore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Args = []string{filepath.Join(t.TempDir(), "nope.beatz")}
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected an error")
	}
}

type fakePort struct {
	name   string
	closed bool
	notes  int
}

func (p *fakePort) NoteOn(ch, pitch, vel uint8) { p.notes++ }
func (p *fakePort) NoteOff(ch, pitch uint8)     {}
func (p *fakePort) Name() string                { return p.name }
func (p *fakePort) Close() error                { p.closed = true; return nil }

func TestPortsChangedFollowsHotPlug(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Enabled = true
	cfg.Output.PortName = "synth"

	opened := map[string]*fakePort{}
	a := &App{
		Config: cfg,
		Sink:   midi.NewSwitch(nil),
		open: func(name string) (port, error) {
			p := &fakePort{name: name}
			opened[name] = p
			return p, nil
		},
	}
	var notified []string
	notify := func(name string) { notified = append(notified, name) }

	a.portsChanged(midi.Ports{Out: []string{"Midi Through"}}, notify)
	if len(notified) != 0 {
		t.Fatalf("connected to a port that does not match: %v", notified)
	}

	a.portsChanged(midi.Ports{Out: []string{"Midi Through", "FluidSynth"}}, notify)
	a.portsChanged(midi.Ports{Out: []string{"Midi Through", "FluidSynth"}}, notify)
	if len(notified) != 1 || notified[0] != "FluidSynth" || a.OutputName() != "FluidSynth" {
		t.Fatalf("notified = %v, output = %q", notified, a.OutputName())
	}
	a.Sink.NoteOn(0, 60, 100)
	if opened["FluidSynth"].notes != 1 {
		t.Fatalf("notes not routed to the new port")
	}

	a.portsChanged(midi.Ports{}, notify)
	if len(notified) != 2 || notified[1] != "" {
		t.Fatalf("notified = %v", notified)
	}
	if !opened["FluidSynth"].closed {
		t.Fatalf("old port left open")
	}
	if _, ok := a.Sink.Current().(midi.Discard); !ok {
		t.Fatalf("sink should be silent after unplug")
	}
}
