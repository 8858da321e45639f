// Package tui hosts the piano roll in a terminal. Each cell is a block of
// CellWidth x CellHeight virtual pixels, so the editor's pixel coordinates,
// menus and gestures work unchanged.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/debug"
	"go-pianoroll/editor"
	"go-pianoroll/midi"
	"go-pianoroll/score"
	"go-pianoroll/theme"
	"go-pianoroll/widgets"
)

// rows under the canvas: status line and hint line
const chromeRows = 2

const wheelZoom = 1.1

type Model struct {
	Canvas  *editor.Canvas
	Theme   *theme.Theme
	Library *score.Library
	Keys    <-chan midi.NoteEvent // step input, may be nil

	surface  *Surface
	width    int
	height   int
	held     tea.MouseButton
	output   string
	status   string
	failed   bool
	showHelp bool
	quitting bool
}

// UpdateMsg is sent after every playback step
type UpdateMsg struct{}

// KeyboardMsg is a note from the MIDI keyboard
type KeyboardMsg midi.NoteEvent

// OutputMsg reports that the synth output changed, e.g. after hot-plug
type OutputMsg struct {
	Name string
}

func NewModel(c *editor.Canvas, th *theme.Theme, lib *score.Library) Model {
	if th == nil {
		th = theme.New(nil)
	}
	return Model{
		Canvas:  c,
		Theme:   th,
		Library: lib,
		surface: NewSurface(0, 0),
		held:    tea.MouseButtonNone,
	}
}

func ListenForUpdates(c *editor.Canvas) tea.Cmd {
	return func() tea.Msg {
		<-c.Updates()
		return UpdateMsg{}
	}
}

func ListenForKeys(keys <-chan midi.NoteEvent) tea.Cmd {
	if keys == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-keys
		if !ok {
			return nil
		}
		return KeyboardMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Canvas),
		ListenForKeys(m.Keys),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.Resize(msg.Width, max(msg.Height-chromeRows, 0))
		m.Canvas.Resize(m.surface.PixelWidth(), m.surface.PixelHeight())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Canvas.SetPlaying(false)
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "esc":
			m.showHelp = false
			m.Canvas.CancelMenus()
		case "ctrl+s":
			m.save()
		case "ctrl+o":
			m.load()
		case "w":
			m.snapshot()
		default:
			m.Canvas.HandleKey(msg.String())
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Canvas)

	case KeyboardMsg:
		m.Canvas.StepInput(int(msg.Note), msg.On)
		return m, ListenForKeys(m.Keys)

	case OutputMsg:
		m.output = msg.Name
		if msg.Name != "" {
			m.setStatus("output: " + msg.Name)
		}
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := CellCenter(msg.X, msg.Y)
	// terminals tend to swallow shift+click, so alt opens the control menu too
	mods := editor.Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift || msg.Alt}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.Canvas.Viewport().Zoom(wheelZoom, x, y)
			return
		case tea.MouseButtonWheelDown:
			m.Canvas.Viewport().Zoom(1/wheelZoom, x, y)
			return
		}
		m.held = msg.Button
		m.Canvas.Press(x, y, button(msg.Button), mods)
	case tea.MouseActionRelease:
		if m.held == tea.MouseButtonNone {
			return
		}
		m.Canvas.Release(x, y, button(m.held), mods)
		m.held = tea.MouseButtonNone
	case tea.MouseActionMotion:
		if m.held != tea.MouseButtonNone {
			m.Canvas.Drag(x, y, mods)
		} else {
			m.Canvas.Move(x, y, mods)
		}
	}
}

func button(b tea.MouseButton) editor.Button {
	switch b {
	case tea.MouseButtonRight:
		return editor.ButtonRight
	case tea.MouseButtonMiddle:
		return editor.ButtonMiddle
	}
	return editor.ButtonLeft
}

func (m *Model) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *Model) setError(err error) {
	debug.Error("tui", err, "command failed")
	m.status, m.failed = err.Error(), true
}

func (m *Model) save() {
	if m.Library == nil {
		return
	}
	path, err := m.Canvas.SaveTo(m.Library, "")
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("saved " + filepath.Base(path))
}

func (m *Model) load() {
	if m.Library == nil {
		return
	}
	latest, err := m.Library.Latest()
	if err != nil {
		m.setError(err)
		return
	}
	if _, err := m.Canvas.LoadFrom(m.Library, latest.Filename); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("loaded %s, saved %s", latest.Filename, m.Library.Age(latest)))
}

func (m *Model) snapshot() {
	if m.Library == nil {
		return
	}
	path := filepath.Join(m.Library.Dir, time.Now().Format("2006-01-02_15-04-05")+".png")
	if err := m.Canvas.Snapshot(path); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("wrote " + filepath.Base(path))
}

// HostKeys are the bindings the terminal adds to the editor's
var HostKeys = widgets.KeySection{Title: "Terminal", Keys: []widgets.KeyBinding{
	{Key: "alt+drag", Desc: "control menu"},
	{Key: "wheel", Desc: "zoom at pointer"},
	{Key: "ctrl+s / ctrl+o", Desc: "save / load latest"},
	{Key: "w", Desc: "write png"},
	{Key: "?", Desc: "help"},
	{Key: "q", Desc: "quit"},
}}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.showHelp {
		sections := append(editor.KeyHelp(), HostKeys)
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(max(m.height-chromeRows, 0)).
			Padding(1, 2).
			Render(widgets.RenderKeyHelp(sections, m.Theme.Accent()))
	} else {
		m.surface.Clear(widgets.Black)
		m.Canvas.Draw(m.surface)
		body = m.surface.Render()
	}

	var out strings.Builder
	out.WriteString(body)
	out.WriteString("\n")
	out.WriteString(m.statusLine())
	out.WriteString("\n")
	out.WriteString(m.hintLine())
	return out.String()
}

func (m Model) statusLine() string {
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	playStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	opts := m.Canvas.Options()
	sym := m.Theme.Symbols
	play := sym.Paused
	if m.Canvas.Playing() {
		play = sym.Playing
		playStyle = playStyle.Foreground(m.Theme.Success())
	}
	mode, swatch := sym.Draw, widgets.White
	if opts.DragMode == editor.EraseNotes {
		mode, swatch = sym.Erase, widgets.Red
	}
	output := m.output
	if output == "" {
		output = "no output"
	}

	beats := m.Canvas.Score().NumBeats()
	head := headerStyle.Render(fmt.Sprintf("go-pianoroll  beat %03d/%d  %s  ",
		m.Canvas.Player().Beat(), beats, m.Canvas.TempoLabel()))
	tail := headerStyle.Render(fmt.Sprintf(" %c %s  %s  rollover:%s  %s",
		mode, opts.DragMode, opts.Scale.Name, opts.Rollover, output))
	return playStyle.Render(string(play)) + " " + head + widgets.RenderSwatch(swatch) + tail
}

func (m Model) hintLine() string {
	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(m.Theme.FG())
		if m.failed {
			style = style.Foreground(m.Theme.Warning())
		}
		return style.Render(m.status)
	}
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	return dimStyle.Render("?:help  space:play  ctrl+drag:play menu  alt+drag:controls  right drag:lengths  q:quit")
}
