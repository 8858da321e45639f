package editor

import (
	"go-pianoroll/score"
	"go-pianoroll/widgets"
)

// Play menu ids
const (
	PlayMenuPlay = iota
	PlayMenuStop
	PlayMenuDraw
	PlayMenuErase
)

// Control menu ids; -1 is the neutral center
const (
	ControlNone = -1
	ControlZoom = iota - 1
	ControlPan
	ControlTempo
	ControlTotalDuration
	ControlTranspose
)

const (
	zoomPerPixel    = 1.005
	tempoStepMs     = 10
	transposePixels = 8
)

// newPlayMenu is opened by ctrl + left press
func newPlayMenu() *widgets.RadialMenu {
	m := widgets.NewRadialMenu()
	m.SetSector(widgets.CentralItem, "", PlayMenuStop)
	m.SetSector(1, "Stop Music", PlayMenuStop)
	m.SetSector(3, "Draw Notes", PlayMenuDraw)
	m.SetSector(5, "Play Music", PlayMenuPlay)
	m.SetSector(7, "Erase Notes", PlayMenuErase)
	return m
}

// newControlMenu is opened by shift + left press
func newControlMenu() *widgets.RadialMenu {
	m := widgets.NewControlMenu()
	m.SetSector(widgets.CentralItem, "", ControlNone)
	m.SetSector(1, "Tempo", ControlTempo)
	m.SetSector(2, "Pan", ControlPan)
	m.SetSector(3, "Zoom", ControlZoom)
	m.SetSector(5, "Total Duration", ControlTotalDuration)
	m.SetSector(7, "Transpose", ControlTranspose)
	return m
}

// newNotesMenu is opened by right press. Ids are duration codes; the
// center is Empty, which paints nothing.
func newNotesMenu() *widgets.RadialMenu {
	m := widgets.NewRadialMenu()
	m.SetSector(widgets.CentralItem, "", int(score.Empty))
	m.SetSector(1, "8th", int(score.Eighth))
	m.SetSector(3, "Whole", int(score.Whole))
	m.SetSector(5, "16th", int(score.Sixteenth))
	m.SetSector(7, "Half", int(score.Half))
	return m
}
