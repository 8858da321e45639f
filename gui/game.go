// Package gui hosts the piano roll in an ebiten window
package gui

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"go-pianoroll/debug"
	"go-pianoroll/editor"
	"go-pianoroll/geom"
	"go-pianoroll/midi"
	"go-pianoroll/score"
	"go-pianoroll/widgets"
)

const (
	wheelZoom     = 1.1
	statusTimeout = 4 * time.Second
)

type Game struct {
	Canvas  *editor.Canvas
	Library *score.Library
	Keys    <-chan midi.NoteEvent // may be nil

	face    *text.GoTextFace
	poll    editor.Poll
	pinch   editor.Pinch
	touches []geom.Point2D
	ids     []ebiten.TouchID
	width   int
	height  int
	chars   []rune
	status  string
	until   time.Time
}

func NewGame(c *editor.Canvas, lib *score.Library, keys <-chan midi.NoteEvent) (*Game, error) {
	face, err := LoadFace()
	if err != nil {
		return nil, err
	}
	return &Game{Canvas: c, Library: lib, Keys: keys, face: face}, nil
}

// Run opens the window and blocks until it is closed
func Run(g *Game, title string, w, h int) error {
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (g *Game) Update() error {
	if g.width > 0 && g.height > 0 {
		g.Canvas.Resize(g.width, g.height)
	}

	x, y := ebiten.CursorPosition()
	mods := editor.Modifiers{
		Ctrl:  pressed(ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight, ebiten.KeyMeta),
		Shift: pressed(ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
	}
	st := editor.PointerState{X: float64(x), Y: float64(y), Mods: mods}
	st.Down[editor.ButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	st.Down[editor.ButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	st.Down[editor.ButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	g.poll.Apply(g.Canvas, st)
	g.pinch.Apply(g.Canvas, g.readTouches())

	if _, dy := ebiten.Wheel(); dy > 0 {
		g.Canvas.Viewport().Zoom(wheelZoom, st.X, st.Y)
	} else if dy < 0 {
		g.Canvas.Viewport().Zoom(1/wheelZoom, st.X, st.Y)
	}

	if err := g.keys(mods.Ctrl); err != nil {
		return err
	}

	g.drainKeys()
	return nil
}

// readTouches returns the touch positions ordered by id
func (g *Game) readTouches() []geom.Point2D {
	g.ids = ebiten.AppendTouchIDs(g.ids[:0])
	slices.Sort(g.ids)
	g.touches = g.touches[:0]
	for _, id := range g.ids {
		x, y := ebiten.TouchPosition(id)
		g.touches = append(g.touches, geom.Pt(float64(x), float64(y)))
	}
	return g.touches
}

// drainKeys step-inputs every pending keyboard note without blocking
func (g *Game) drainKeys() {
	for g.Keys != nil {
		select {
		case ev, ok := <-g.Keys:
			if !ok {
				g.Keys = nil
				return
			}
			g.Canvas.StepInput(int(ev.Note), ev.On)
		default:
			return
		}
	}
}

var specialKeys = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
}

func (g *Game) keys(ctrl bool) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.Canvas.CancelMenus() {
			return nil
		}
		g.Canvas.SetPlaying(false)
		return ebiten.Termination
	}
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			path, err := g.Canvas.SaveTo(g.Library, "")
			g.report("saved", path, err)
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			g.loadLatest()
		case inpututil.IsKeyJustPressed(ebiten.KeyP):
			path := filepath.Join(g.Library.Dir, time.Now().Format("2006-01-02_15-04-05")+".png")
			g.report("wrote", path, g.Canvas.Snapshot(path))
		}
		return nil
	}

	for k, name := range specialKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.Canvas.HandleKey(name)
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.Canvas.HandleKey(string(r))
	}
	return nil
}

func (g *Game) loadLatest() {
	latest, err := g.Library.Latest()
	if err == nil {
		_, err = g.Canvas.LoadFrom(g.Library, latest.Filename)
	}
	g.report("loaded", latest.Filename, err)
	if err == nil {
		g.status += ", saved " + g.Library.Age(latest)
	}
}

func (g *Game) report(what, path string, err error) {
	if err != nil {
		debug.Error("gui", err, what)
		g.status = err.Error()
	} else {
		g.status = what + " " + filepath.Base(path)
	}
	g.until = time.Now().Add(statusTimeout)
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := NewSurface(screen, g.face)
	g.Canvas.Draw(s)

	line := g.Canvas.TempoLabel()
	if g.status != "" && time.Now().Before(g.until) {
		line = g.status
	}
	s.SetColor(widgets.White)
	s.DrawString(8, float64(g.height)-8, line)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
