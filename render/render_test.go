package render

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"go-pianoroll/widgets"
)

func TestRecorderLogsCallsWithColor(t *testing.T) {
	r := NewRecorder()
	r.SetColor(widgets.Red)
	r.FillRect(1, 2, 3, 4)
	r.SetColor(widgets.White.WithAlpha(0.5))
	r.DrawCircle(10, 10, 5)
	r.DrawString(3, 7, "abc")

	ops := r.Ops()
	want := []string{"FillRect", "DrawCircle", "DrawString"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
	if c := r.Find("FillRect")[0]; c.Color != widgets.Red {
		t.Fatalf("FillRect color = %+v", c.Color)
	}
	if c := r.Find("DrawCircle")[0]; c.Color.A != 0.5 {
		t.Fatalf("DrawCircle alpha = %v", c.Color.A)
	}
	if got := r.Find("DrawString")[0].String(); got != `DrawString(3 7 "abc")` {
		t.Fatalf("String() = %s", got)
	}
	if r.StringWidth("héllo") != 30 {
		t.Fatalf("width should count runes, got %v", r.StringWidth("héllo"))
	}
	r.Reset()
	if len(r.Calls) != 0 {
		t.Fatalf("reset left %d calls", len(r.Calls))
	}
}

func TestRasterDrawsAndEncodes(t *testing.T) {
	r, err := NewRaster(64, 48)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()

	r.SetColor(widgets.Black)
	r.FillRect(10, 10, 20, 20)
	r.FillCircle(50, 24, 6)
	r.DrawArc(50, 24, 10, 0, 3.14)
	if w := r.StringWidth("Tempo"); w <= 0 {
		t.Fatalf("StringWidth = %v, want > 0", w)
	}
	r.DrawString(2, 44, "Play")

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	cr, _, _, _ := img.At(20, 20).RGBA()
	if cr > 0x1000 {
		t.Fatalf("filled rect pixel should be dark, red = %#x", cr)
	}
	cr, _, _, _ = img.At(2, 2).RGBA()
	if cr < 0xf000 {
		t.Fatalf("background pixel should be white, red = %#x", cr)
	}
}

func TestRasterSavePNG(t *testing.T) {
	r, err := NewRaster(8, 8)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()
	path := filepath.Join(t.TempDir(), "out.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := r.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
}
