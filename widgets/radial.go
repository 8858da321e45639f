package widgets

import "math"

// menuKind distinguishes the radial menu variants
type menuKind int

const (
	kindPlain   menuKind = iota
	kindControl          // hands drags over to the host once the pointer leaves the pie
)

// CentralItem is the index of the neutral sector in the middle of the ring
const CentralItem = 0

const numItems = 8

// Layout constants, in pixels
const (
	NeutralRadius      = 10
	TextHeight         = 10
	MarginAroundText   = 4
	MarginBetweenItems = 5
	MenuAlpha          = 0.6

	controlPieRadius = NeutralRadius * 6
)

var (
	fg  = Black
	fg2 = Gray
	bg  = White
)

type sector struct {
	label   string
	enabled bool
	id      int
}

// RadialMenu is a pie menu with a central item (index 0) and up to eight
// items around it numbered clockwise from North (1) to North-West (8).
// Items with an empty label are neither drawn nor selectable.
type RadialMenu struct {
	kind     menuKind
	items    [numItems + 1]sector
	selected int

	x0, y0  float64 // menu center
	visible bool

	menuing bool // kindControl only
}

// NewRadialMenu returns a hidden menu whose items all carry their own
// index as id.
func NewRadialMenu() *RadialMenu {
	m := &RadialMenu{kind: kindPlain}
	for i := range m.items {
		m.items[i] = sector{enabled: true, id: i}
	}
	return m
}

// NewControlMenu returns a menu that leaves menuing mode when the pointer is
// dragged outside its pie, after which drags are left for the host to apply.
func NewControlMenu() *RadialMenu {
	m := NewRadialMenu()
	m.kind = kindControl
	return m
}

// InMenuingMode reports whether drags still pick items. Always true for a
// plain menu.
func (m *RadialMenu) InMenuingMode() bool {
	return m.kind != kindControl || m.menuing
}

func validIndex(i int) bool { return i >= 0 && i <= numItems }

func (m *RadialMenu) SetSector(index int, label string, id int) {
	if validIndex(index) {
		m.items[index].label = label
		m.items[index].id = id
	}
}

func (m *RadialMenu) SetLabel(index int, label string) {
	if validIndex(index) {
		m.items[index].label = label
	}
}

func (m *RadialMenu) Label(index int) string {
	if validIndex(index) {
		return m.items[index].label
	}
	return ""
}

// SetEnabledByID enables or disables every item carrying id
func (m *RadialMenu) SetEnabledByID(enabled bool, id int) {
	for i := range m.items {
		if m.items[i].id == id {
			m.items[i].enabled = enabled
		}
	}
}

// ID returns the id of item index, or -1 if there is no such item
func (m *RadialMenu) ID(index int) int {
	if validIndex(index) {
		return m.items[index].id
	}
	return -1
}

// Selection returns the selected item index in [0,8]
func (m *RadialMenu) Selection() int { return m.selected }

func (m *RadialMenu) SelectedID() int { return m.ID(m.selected) }

func (m *RadialMenu) Center() (x, y float64) { return m.x0, m.y0 }

func (m *RadialMenu) Visible() bool { return m.visible }

func (m *RadialMenu) SetVisible(v bool) { m.visible = v }

// Hilited reports whether item index shares its id with the selection
func (m *RadialMenu) Hilited(index int) bool {
	return validIndex(index) && m.items[index].id == m.items[m.selected].id
}

func (m *RadialMenu) selectable(i int) bool {
	return m.items[i].label != "" && m.items[i].enabled
}

func (m *RadialMenu) Press(x, y float64) Status {
	if m.kind == kindControl {
		m.menuing = true
	}
	m.x0, m.y0 = x, y
	m.selected = CentralItem
	m.visible = true
	return StatusRedraw
}

func (m *RadialMenu) Release(x, y float64) Status {
	if !m.visible {
		return StatusNotConsumed
	}
	m.visible = false
	return StatusRedraw
}

// Move makes the center follow the pointer
func (m *RadialMenu) Move(x, y float64) Status {
	if !m.visible {
		return StatusNotConsumed
	}
	m.x0, m.y0 = x, y
	return StatusRedraw
}

func (m *RadialMenu) Drag(x, y float64) Status {
	if !m.visible {
		return StatusNotConsumed
	}
	if m.kind != kindControl {
		return m.dragSelect(x, y)
	}
	if !m.menuing {
		return StatusNotConsumed
	}
	status := m.dragSelect(x, y)
	dx, dy := x-m.x0, y-m.y0
	if dx*dx+dy*dy > controlPieRadius*controlPieRadius {
		m.menuing = false
		return StatusRedraw
	}
	return status
}

func (m *RadialMenu) dragSelect(x, y float64) Status {
	item := m.itemAt(x-m.x0, y-m.y0)
	if item == m.selected {
		return StatusNoRedraw
	}
	m.selected = item
	return StatusRedraw
}

// itemAt resolves a pointer offset from the center to an item index
func (m *RadialMenu) itemAt(dx, dy float64) int {
	if math.Hypot(dx, dy) <= NeutralRadius {
		return CentralItem
	}

	// Relative to the line between items 8 and 1, increasing clockwise
	// since y points down.
	theta := math.Atan2(dy, dx) + 5*math.Pi/8
	if theta < 0 {
		theta += 2 * math.Pi
	} else if theta >= 2*math.Pi {
		theta -= 2 * math.Pi
	}

	item := 1 + int(theta/(math.Pi/4))
	if item > numItems {
		item = numItems
	}
	if m.selectable(item) {
		return item
	}

	best, bestDiff := CentralItem, math.Inf(1)
	for i := 1; i <= numItems; i++ {
		if !m.selectable(i) {
			continue
		}
		diff := math.Abs(float64(i-1)*math.Pi/4 + math.Pi/8 - theta)
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// Draw renders a visible menu. Once a control menu has handed over to
// the host, only the hilited items stay drawn, leaving the grid visible
// while the parameter is dragged.
func (m *RadialMenu) Draw(s Surface) {
	if !m.visible {
		return
	}
	if m.kind == kindControl {
		m.drawItems(s, !m.menuing, controlPieRadius)
		return
	}
	m.drawItems(s, false, 0)
}

// drawItems renders the menu. A positive pieRadius draws a gray disc
// behind the items.
func (m *RadialMenu) drawItems(s Surface, onlyHilited bool, pieRadius float64) {
	if pieRadius > 0 {
		s.SetColor(fg2.WithAlpha(MenuAlpha))
		s.FillCircle(m.x0, m.y0, pieRadius)
	}

	fill, line := m.itemColors(CentralItem)
	s.SetColor(fill)
	s.FillCircle(m.x0, m.y0, NeutralRadius)
	s.SetColor(line)
	s.DrawCircle(m.x0, m.y0, NeutralRadius)

	// Items 1 and 3 sit at distance r from the center, separated by one
	// item 2 diagonally:
	//   r  = 2 * (itemHeight + margin)
	//   r' = r / sqrt(2)
	itemHeight := float64(TextHeight + 2*MarginAroundText)
	radius := 2 * (itemHeight + MarginBetweenItems)
	radiusPrime := radius / math.Sqrt2

	for i := 1; i <= numItems; i++ {
		if !m.selectable(i) {
			continue
		}
		if onlyHilited && !m.Hilited(i) {
			continue
		}
		x, y := m.itemCenter(i, radius, radiusPrime)

		label := m.items[i].label
		textWidth := s.StringWidth(label)
		width := textWidth + 2*MarginAroundText

		// side by side items share a width so the menu is symmetric
		if i != 1 && i != 5 {
			if other := m.items[numItems+2-i].label; other != "" {
				if ow := s.StringWidth(other); ow > textWidth {
					width = ow + 2*MarginAroundText
				}
			}
		}
		x = m.clampItemX(i, x, width)

		fill, line := m.itemColors(i)
		s.SetColor(fill)
		s.FillRect(x-width/2, y-itemHeight/2, width, itemHeight)
		s.SetColor(line)
		s.DrawRect(x-width/2, y-itemHeight/2, width, itemHeight)
		s.DrawString(math.Round(x-textWidth/2), math.Round(y+TextHeight/2), label)
	}
}

func (m *RadialMenu) itemCenter(i int, radius, radiusPrime float64) (x, y float64) {
	r := radiusPrime
	if i%2 == 1 {
		r = radius
	}
	theta := float64(i-1)*math.Pi/4 - math.Pi/2
	x = m.x0 + r*math.Cos(theta)
	y = m.y0 + r*math.Sin(theta)

	// pull lone North / South items in toward the center
	switch {
	case i == 1 && m.items[2].label == "" && m.items[8].label == "":
		y = m.y0 - radius/2
	case i == 5 && m.items[4].label == "" && m.items[6].label == "":
		y = m.y0 + radius/2
	}
	return x, y
}

// clampItemX keeps side items clear of the vertical axis and the neutral zone
func (m *RadialMenu) clampItemX(i int, x, width float64) float64 {
	switch i {
	case 2, 4:
		if x-width/2 <= m.x0+MarginBetweenItems {
			x = m.x0 + MarginBetweenItems + width/2
		}
	case 3:
		if x-width/2 <= m.x0+NeutralRadius+MarginBetweenItems {
			x = m.x0 + NeutralRadius + MarginBetweenItems + width/2
		}
	case 6, 8:
		if x+width/2 >= m.x0-MarginBetweenItems {
			x = m.x0 - MarginBetweenItems - width/2
		}
	case 7:
		if x+width/2 >= m.x0-NeutralRadius-MarginBetweenItems {
			x = m.x0 - NeutralRadius - MarginBetweenItems - width/2
		}
	}
	return x
}

// itemColors returns the translucent fill and opaque outline of item i
func (m *RadialMenu) itemColors(i int) (fill, line Color) {
	if m.Hilited(i) {
		return fg.WithAlpha(MenuAlpha), bg
	}
	return bg.WithAlpha(MenuAlpha), fg
}
