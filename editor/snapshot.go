package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"go-pianoroll/debug"
	"go-pianoroll/render"
)

// Snapshot draws the canvas at its current size into a PNG file
func (c *Canvas) Snapshot(path string) error {
	r, err := render.NewRaster(max(c.vp.Width(), 1), max(c.vp.Height(), 1))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer r.Close()

	c.Draw(r)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	if err := r.SavePNG(path); err != nil {
		return err
	}
	debug.Log("editor", "snapshot %s", path)
	return nil
}
