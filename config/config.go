package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go-pianoroll/score"
)

// Rollover modes, see editor.ParseRollover
var RolloverModes = []string{"off", "play", "ctrl"}

// OutputConfig selects the synth the notes are sent to
type OutputConfig struct {
	Enabled  bool   `json:"enabled"`
	PortName string `json:"portName,omitempty"` // substring; empty picks the first port
	Channel  int    `json:"channel"`            // 0-15
	Velocity int    `json:"velocity"`
}

// KeyboardConfig is the optional MIDI keyboard used for step input
type KeyboardConfig struct {
	Enabled  bool   `json:"enabled"`
	PortName string `json:"portName,omitempty"`
}

// EditorConfig stores the editing and playback preferences
type EditorConfig struct {
	IntervalMs          int    `json:"intervalMs"`
	Beats               int    `json:"beats"`
	Rollover            string `json:"rollover"`
	Scale               string `json:"scale"`
	Loop                bool   `json:"loop"`
	AutoFrame           bool   `json:"autoFrame"`
	HighlightMajorScale bool   `json:"highlightMajorScale"`
	ScoreDir            string `json:"scoreDir,omitempty"`
}

// UIConfig stores window and color preferences
type UIConfig struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Palette string `json:"palette,omitempty"` // .gpl path; empty uses the built-in one
}

type DebugConfig struct {
	Enabled bool   `json:"enabled"`
	LogFile string `json:"logFile,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output   OutputConfig   `json:"output"`
	Keyboard KeyboardConfig `json:"keyboard"`
	Editor   EditorConfig   `json:"editor"`
	UI       UIConfig       `json:"ui"`
	Debug    DebugConfig    `json:"debug"`

	// Args holds the positional arguments left after flag parsing
	Args []string `json:"-"`
	// Snapshot, when set, is a PNG path to render the score to instead of
	// starting a host
	Snapshot string `json:"-"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Enabled:  true,
			Velocity: 127,
		},
		Editor: EditorConfig{
			IntervalMs: 150,
			Beats:      score.DefaultBeats,
			Rollover:   "play",
			Scale:      score.Chromatic.Name,
			Loop:       true,
			AutoFrame:  true,
		},
		UI: UIConfig{
			Width:  1024,
			Height: 768,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults; a missing file
// yields the defaults
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

const (
	envPort      = "PIANOROLL_PORT"
	envSound     = "PIANOROLL_SOUND"
	envChannel   = "PIANOROLL_CHANNEL"
	envVelocity  = "PIANOROLL_VELOCITY"
	envKeyboard  = "PIANOROLL_KEYBOARD"
	envInterval  = "PIANOROLL_INTERVAL_MS"
	envBeats     = "PIANOROLL_BEATS"
	envRollover  = "PIANOROLL_ROLLOVER"
	envScale     = "PIANOROLL_SCALE"
	envLoop      = "PIANOROLL_LOOP"
	envAutoFrame = "PIANOROLL_AUTOFRAME"
	envHighlight = "PIANOROLL_HIGHLIGHT"
	envWidth     = "PIANOROLL_WIDTH"
	envHeight    = "PIANOROLL_HEIGHT"
	envPalette   = "PIANOROLL_PALETTE"
	envDebug     = "PIANOROLL_DEBUG"
	envLogFile   = "PIANOROLL_LOG_FILE"
)

// LoadArgs applies environment variables and then CLI flags on top of
// base. base is not modified.
func LoadArgs(base *Config, name string, args, environ []string) (*Config, error) {
	env := parseEnv(environ)
	b := *base

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	usage := new(strings.Builder)
	fs.SetOutput(usage)

	port := fs.String("port", envOrDefault(env, envPort, b.Output.PortName), "MIDI output port (substring match)")
	sound := fs.Bool("sound", envOrBool(env, envSound, b.Output.Enabled), "send notes to the MIDI output")
	channel := fs.Int("channel", envOrInt(env, envChannel, b.Output.Channel), "MIDI channel 0-15")
	velocity := fs.Int("velocity", envOrInt(env, envVelocity, b.Output.Velocity), "note velocity 1-127")
	keyboard := fs.String("keyboard", envOrDefault(env, envKeyboard, b.Keyboard.PortName), "MIDI keyboard input port for step input")
	interval := fs.Int("interval", envOrInt(env, envInterval, b.Editor.IntervalMs), "milliseconds per beat")
	beats := fs.Int("beats", envOrInt(env, envBeats, b.Editor.Beats), "length of a new score in beats")
	rollover := fs.String("rollover", envOrDefault(env, envRollover, b.Editor.Rollover), "rollover audition: off, play or ctrl")
	scale := fs.String("scale", envOrDefault(env, envScale, b.Editor.Scale), "scale allowed when painting")
	loop := fs.Bool("loop", envOrBool(env, envLoop, b.Editor.Loop), "loop playback")
	autoFrame := fs.Bool("autoframe", envOrBool(env, envAutoFrame, b.Editor.AutoFrame), "frame the score on resize")
	highlight := fs.Bool("highlight", envOrBool(env, envHighlight, b.Editor.HighlightMajorScale), "highlight the major scale rows")
	width := fs.Int("width", envOrInt(env, envWidth, b.UI.Width), "window width in pixels")
	height := fs.Int("height", envOrInt(env, envHeight, b.UI.Height), "window height in pixels")
	palette := fs.String("palette", envOrDefault(env, envPalette, b.UI.Palette), "GIMP palette for the terminal chrome")
	debugOn := fs.Bool("debug", envOrBool(env, envDebug, b.Debug.Enabled), "write a debug log")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, b.Debug.LogFile), "path to the debug log")
	snapshot := fs.String("snapshot", "", "render the score to a PNG file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w\n%s", err, usage.String())
	}

	b.Output = OutputConfig{Enabled: *sound, PortName: *port, Channel: *channel, Velocity: *velocity}
	b.Keyboard.PortName = *keyboard
	b.Keyboard.Enabled = b.Keyboard.Enabled || *keyboard != ""
	b.Editor.IntervalMs = *interval
	b.Editor.Beats = *beats
	b.Editor.Rollover = *rollover
	b.Editor.Scale = *scale
	b.Editor.Loop = *loop
	b.Editor.AutoFrame = *autoFrame
	b.Editor.HighlightMajorScale = *highlight
	b.UI.Width, b.UI.Height = *width, *height
	b.UI.Palette = *palette
	b.Debug = DebugConfig{Enabled: *debugOn || *logFile != "", LogFile: *logFile}
	b.Args = append([]string(nil), fs.Args()...)
	b.Snapshot = *snapshot

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	switch {
	case c.Output.Channel < 0 || c.Output.Channel > 15:
		return fmt.Errorf("channel must be 0-15 (got %d)", c.Output.Channel)
	case c.Output.Velocity < 1 || c.Output.Velocity > 127:
		return fmt.Errorf("velocity must be 1-127 (got %d)", c.Output.Velocity)
	case c.Editor.IntervalMs < 10:
		return fmt.Errorf("interval must be >= 10 ms (got %d)", c.Editor.IntervalMs)
	case c.Editor.Beats < 1:
		return fmt.Errorf("beats must be >= 1 (got %d)", c.Editor.Beats)
	case c.UI.Width < 0 || c.UI.Height < 0:
		return fmt.Errorf("window size must be >= 0 (got %dx%d)", c.UI.Width, c.UI.Height)
	case !slices.Contains(RolloverModes, c.Editor.Rollover):
		return fmt.Errorf("rollover must be one of %s (got %q)", strings.Join(RolloverModes, ", "), c.Editor.Rollover)
	}
	if _, ok := score.ScaleByName(c.Editor.Scale); !ok {
		return fmt.Errorf("unknown scale %q", c.Editor.Scale)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}
