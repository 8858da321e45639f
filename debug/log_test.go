package debug

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledDiscards(t *testing.T) {
	Disable()
	Log("test", "hello %d", 1)
	if Enabled() {
		t.Fatalf("should be disabled")
	}
}

func TestLogWritesCategory(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("player", "step %d", 7)
	Error("score", errors.New("boom"), "load failed")
	out := buf.String()
	if !strings.Contains(out, "step 7") || !strings.Contains(out, "cat=player") {
		t.Fatalf("log output missing message: %s", out)
	}
	if !strings.Contains(out, "err=boom") {
		t.Fatalf("log output missing error: %s", out)
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for range 9 {
		LogEvery(3, "drag", "moved")
	}
	if n := strings.Count(buf.String(), "moved (every 3"); n != 3 {
		t.Fatalf("logged %d times, want 3:\n%s", n, buf.String())
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	Log("test", "to file")
	Disable()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("file log = %s", data)
	}
}
