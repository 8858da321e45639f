package theme

import (
	"os"
	"strings"
	"path/filepath"
	"testing"
)

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	if got := p.Lookup(-1); got != (RGB{0, 0, 0}) {
		t.Fatalf("Lookup(-1) = %v", got)
	}
	if got := p.Lookup(0.5); got != (RGB{100, 50, 25}) {
		t.Fatalf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(2); got != (RGB{200, 100, 50}) {
		t.Fatalf("Lookup(2) = %v", got)
	}
	single := &Palette{Colors: []RGB{{1, 2, 3}}}
	if got := single.Lookup(0.5); got != (RGB{1, 2, 3}) {
		t.Fatalf("single color Lookup = %v", got)
	}
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: Test\nColumns: 2\n# comment\n255 0 0 red\n0 300 0\nnot a color\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	if p.Name != "Test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if p.Index(1) != (RGB{0, 255, 0}) {
		t.Fatalf("out-of-range component not clamped: %v", p.Index(1))
	}
	if p.Index(-3) != p.Colors[0] || p.Index(9) != p.Colors[1] {
		t.Fatalf("Index does not clamp")
	}
}

func TestParseGPLSkipsJunk(t *testing.T) {
	p, err := ParseGPL(strings.NewReader("Name:   Spaced  \n  10 20 30   teal-ish\n1 2\n#4 5 6\n"))
	if err != nil {
		t.Fatalf("ParseGPL: %v", err)
	}
	if p.Name != "Spaced" || len(p.Colors) != 1 || p.Colors[0] != (RGB{10, 20, 30}) {
		t.Fatalf("palette = %+v", p)
	}
}

func TestLoadGPLErrors(t *testing.T) {
	if _, err := LoadGPL(filepath.Join(t.TempDir(), "missing.gpl")); err == nil {
		t.Fatalf("missing file should fail")
	}
	path := filepath.Join(t.TempDir(), "empty.gpl")
	os.WriteFile(path, []byte("GIMP Palette\n"), 0644)
	if _, err := LoadGPL(path); err == nil {
		t.Fatalf("palette without colors should fail")
	}
}

func TestThemeRoles(t *testing.T) {
	th := New(nil)
	if th.Palette.Name != "Plasma" {
		t.Fatalf("default palette = %s", th.Palette.Name)
	}
	if got := th.BG(); got != "#0d0887" {
		t.Fatalf("BG = %s", got)
	}
	if got := th.Success(); got != "#f0f921" {
		t.Fatalf("Success = %s", got)
	}
	p, err := LoadOrDefault("")
	if err != nil || p.Name != "Plasma" {
		t.Fatalf("LoadOrDefault(\"\") = %v, %v", p, err)
	}
}
