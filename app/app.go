// Package app builds the editor, the MIDI connections and the score
// library from a config, for the terminal and window hosts alike. The
// hosts' main packages register the MIDI driver.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gogpu/gg"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/editor"
	"go-pianoroll/midi"
	"go-pianoroll/score"
	"go-pianoroll/theme"
)

const watchInterval = 2 * time.Second

// port is an open synth output
type port interface {
	midi.NoteSink
	Name() string
	Close() error
}

type App struct {
	Config   *config.Config
	Theme    *theme.Theme
	Canvas   *editor.Canvas
	Library  *score.Library
	Sink     *midi.Switch
	Keyboard *midi.Keyboard // nil when disabled or not found

	open func(name string) (port, error)

	mu     sync.Mutex
	output port
}

// Options maps the editor and output sections of cfg onto editor options
func Options(cfg *config.Config) (editor.Options, error) {
	opts := editor.DefaultOptions()
	rollover, err := editor.ParseRollover(cfg.Editor.Rollover)
	if err != nil {
		return opts, err
	}
	sc, ok := score.ScaleByName(cfg.Editor.Scale)
	if !ok {
		return opts, fmt.Errorf("unknown scale %q", cfg.Editor.Scale)
	}
	opts.Rollover = rollover
	opts.Scale = sc
	opts.IntervalMs = cfg.Editor.IntervalMs
	opts.Loop = cfg.Editor.Loop
	opts.AutoFrame = cfg.Editor.AutoFrame
	opts.HighlightMajorScale = cfg.Editor.HighlightMajorScale
	opts.Channel = uint8(cfg.Output.Channel)
	opts.Velocity = uint8(cfg.Output.Velocity)
	return opts, nil
}

func openOutput(name string) (port, error) {
	return midi.OpenOutput(name)
}

// New opens everything cfg asks for. A missing synth or keyboard is
// logged and left out; sound is optional.
func New(cfg *config.Config) (*App, error) {
	if cfg.Debug.Enabled {
		if err := debug.Enable(cfg.Debug.LogFile); err != nil {
			return nil, err
		}
		gg.SetLogger(debug.Logger())
	}

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		return nil, err
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	dir := cfg.Editor.ScoreDir
	if dir == "" {
		if dir, err = score.DefaultLibraryDir(); err != nil {
			return nil, fmt.Errorf("score library: %w", err)
		}
	}
	lib := score.NewLibrary(dir)

	s := score.New()
	s.SetNumBeats(cfg.Editor.Beats)
	if len(cfg.Args) > 0 {
		if err := loadScore(s, lib, cfg.Args[0]); err != nil {
			return nil, err
		}
	}

	a := &App{
		Config:  cfg,
		Theme:   theme.New(palette),
		Library: lib,
		Sink:    midi.NewSwitch(nil),
		open:    openOutput,
	}
	if cfg.Output.Enabled {
		if _, err := a.connect(cfg.Output.PortName); err != nil {
			debug.Error("app", err, "no synth output, sound off")
		}
	}
	if cfg.Keyboard.Enabled {
		kb, err := midi.OpenKeyboard(cfg.Keyboard.PortName)
		if err != nil {
			debug.Error("app", err, "no keyboard")
		} else {
			a.Keyboard = kb
		}
	}

	a.Canvas = editor.New(s, a.Sink, opts)
	a.Canvas.Resize(cfg.UI.Width, cfg.UI.Height)
	return a, nil
}

// loadScore reads arg as a file, or else as the name of a library save
func loadScore(s *score.Score, lib *score.Library, arg string) error {
	if _, err := os.Stat(arg); err == nil {
		return s.Load(arg)
	}
	found, err := lib.Find(arg)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("no score file or save named %q", arg)
	}
	path, err := lib.Load(s, found[0].Filename)
	if err != nil {
		return err
	}
	debug.Log("app", "loaded save %s", path)
	return nil
}

// connect switches the synth to the port matching name
func (a *App) connect(name string) (string, error) {
	out, err := a.open(name)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	old := a.output
	a.output = out
	a.mu.Unlock()

	a.Sink.Set(out)
	if old != nil {
		old.Close()
	}
	return out.Name(), nil
}

func (a *App) disconnect() {
	a.mu.Lock()
	old := a.output
	a.output = nil
	a.mu.Unlock()

	a.Sink.Set(nil)
	if old != nil {
		old.Close()
	}
}

// OutputName is the synth notes go to, empty when sound is off
func (a *App) OutputName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.output == nil {
		return ""
	}
	return a.output.Name()
}

// Keys returns the keyboard note events, nil without a keyboard
func (a *App) Keys() <-chan midi.NoteEvent {
	if a.Keyboard == nil {
		return nil
	}
	return a.Keyboard.Events()
}

// WatchOutputs follows synth hot-plug until ctx is done, calling notify
// with the new output name (empty when it went away)
func (a *App) WatchOutputs(ctx context.Context, notify func(name string)) {
	if !a.Config.Output.Enabled {
		return
	}
	midi.Watch(ctx, watchInterval, func(p midi.Ports) {
		a.portsChanged(p, notify)
	})
}

func (a *App) portsChanged(p midi.Ports, notify func(name string)) {
	want := a.Config.Output.PortName
	current := a.OutputName()
	i := midi.MatchPort(p.Out, want)
	if i < 0 {
		if current != "" {
			debug.Log("app", "output %s went away", current)
			a.disconnect()
			notify("")
		}
		return
	}
	if p.Out[i] == current {
		return
	}
	name, err := a.connect(p.Out[i])
	if err != nil {
		debug.Error("app", err, "reconnect failed")
		return
	}
	debug.Log("app", "output now %s", name)
	notify(name)
}

// Close stops playback and releases the MIDI ports
func (a *App) Close() {
	if a.Canvas != nil {
		a.Canvas.Close()
	}
	if a.Keyboard != nil {
		a.Keyboard.Close()
	}
	a.disconnect()
	debug.Disable()
}
