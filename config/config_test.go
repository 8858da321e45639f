package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Editor.IntervalMs != 150 || cfg.Editor.Beats != 128 || !cfg.Output.Enabled {
		t.Fatalf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestSaveThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Output.PortName = "fluid"
	cfg.Editor.Scale = "C Major"
	cfg.Args = []string{"ignored"}
	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Output.PortName != "fluid" || got.Editor.Scale != "C Major" || got.Args != nil {
		t.Fatalf("loaded %+v", got)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"editor": {"intervalMs": 90}}`), 0644)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Editor.IntervalMs != 90 || cfg.Output.Velocity != 127 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadFileBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"editor": `), 0644)
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	base := DefaultConfig()
	base.Output.PortName = "from-file"

	cfg, err := LoadArgs(base, "test", nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Output.PortName != "from-file" {
		t.Fatalf("file value lost: %q", cfg.Output.PortName)
	}

	env := []string{"PIANOROLL_PORT=from-env", "PIANOROLL_INTERVAL_MS=80", "PIANOROLL_LOOP=false", "junk"}
	cfg, err = LoadArgs(base, "test", nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Output.PortName != "from-env" || cfg.Editor.IntervalMs != 80 || cfg.Editor.Loop {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}

	cfg, err = LoadArgs(base, "test", []string{"-port", "from-flag", "-rollover", "ctrl", "song.beatz"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Output.PortName != "from-flag" || cfg.Editor.Rollover != "ctrl" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if len(cfg.Args) != 1 || cfg.Args[0] != "song.beatz" {
		t.Fatalf("args = %v", cfg.Args)
	}
	if base.Output.PortName != "from-file" {
		t.Fatalf("base was modified")
	}
}

func TestLoadArgsBadEnvFallsBack(t *testing.T) {
	cfg, err := LoadArgs(DefaultConfig(), "test", nil, []string{"PIANOROLL_CHANNEL=x", "PIANOROLL_DEBUG=maybe"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Output.Channel != 0 || cfg.Debug.Enabled {
		t.Fatalf("unparsable env should be ignored: %+v", cfg)
	}
}

func TestLoadArgsEnablesFromValues(t *testing.T) {
	cfg, err := LoadArgs(DefaultConfig(), "test", []string{"-keyboard", "keystation", "-log-file", "/tmp/x.log"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if !cfg.Keyboard.Enabled || !cfg.Debug.Enabled {
		t.Fatalf("keyboard/debug should be enabled: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"channel", []string{"-channel", "16"}, "channel"},
		{"velocity", []string{"-velocity", "0"}, "velocity"},
		{"interval", []string{"-interval", "5"}, "interval"},
		{"beats", []string{"-beats", "0"}, "beats"},
		{"size", []string{"-width", "-1"}, "window size"},
		{"rollover", []string{"-rollover", "always"}, "rollover"},
		{"scale", []string{"-scale", "dorian"}, "scale"},
		{"flag", []string{"-nope"}, "not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadArgs(DefaultConfig(), "test", tt.args, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScaleNamesAccepted(t *testing.T) {
	for _, name := range []string{"pentatonic", "C Lydian", "mixolydian", "chromatic"} {
		if _, err := LoadArgs(DefaultConfig(), "test", []string{"-scale", name}, nil); err != nil {
			t.Errorf("scale %q rejected: %v", name, err)
		}
	}
}

func TestLoadArgsHelpListsFlags(t *testing.T) {
	_, err := LoadArgs(DefaultConfig(), "test", []string{"-h"}, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want ErrHelp", err)
	}
	if !strings.Contains(err.Error(), "-snapshot") {
		t.Fatalf("usage missing from %q", err)
	}
}

func TestLoadArgsSnapshotAndScore(t *testing.T) {
	cfg, err := LoadArgs(DefaultConfig(), "test", []string{"-snapshot", "out.png", "tune.beatz"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Snapshot != "out.png" || len(cfg.Args) != 1 || cfg.Args[0] != "tune.beatz" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
