package widgets_test

import (
	"math"
	"testing"

	"go-pianoroll/render"
	"go-pianoroll/widgets"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// fourWay labels the cardinal items A..D with distinct ids
func fourWay() *widgets.RadialMenu {
	m := widgets.NewRadialMenu()
	m.SetSector(1, "A", 10)
	m.SetSector(3, "B", 30)
	m.SetSector(5, "C", 50)
	m.SetSector(7, "D", 70)
	return m
}

func allEight() *widgets.RadialMenu {
	m := widgets.NewRadialMenu()
	for i, l := range []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"} {
		m.SetSector(i+1, l, i+1)
	}
	return m
}

// at returns the pixel at distance r from (cx, cy) in direction of the
// given compass bearing in radians, clockwise from North.
func at(cx, cy, bearing, r float64) (float64, float64) {
	return cx + r*math.Sin(bearing), cy - r*math.Cos(bearing)
}

func TestSelectNorthAndReleaseReturnsID(t *testing.T) {
	m := fourWay()
	if s := m.Press(100, 100); s != widgets.StatusRedraw {
		t.Fatalf("Press = %v", s)
	}
	if !m.Visible() || m.Selection() != widgets.CentralItem {
		t.Fatalf("press should show the menu with the center selected")
	}
	if s := m.Drag(100, 50); s != widgets.StatusRedraw {
		t.Fatalf("Drag = %v, want redraw", s)
	}
	if m.Selection() != 1 {
		t.Fatalf("selection = %d, want 1", m.Selection())
	}
	if s := m.Release(100, 50); s != widgets.StatusRedraw {
		t.Fatalf("Release = %v", s)
	}
	if m.Visible() {
		t.Fatalf("menu should hide on release")
	}
	if m.SelectedID() != 10 {
		t.Fatalf("selected id = %d, want 10", m.SelectedID())
	}
}

func TestDragDirections(t *testing.T) {
	tests := []struct {
		name    string
		bearing float64
		want    int
	}{
		{"north", 0, 1},
		{"north-east", math.Pi / 4, 2},
		{"east", math.Pi / 2, 3},
		{"south-east", 3 * math.Pi / 4, 4},
		{"south", math.Pi, 5},
		{"south-west", 5 * math.Pi / 4, 6},
		{"west", 3 * math.Pi / 2, 7},
		{"north-west", 7 * math.Pi / 4, 8},
		{"just west of north", -0.3, 1},
		{"just east of north", 0.3, 1},
	}
	for _, tt := range tests {
		m := allEight()
		m.Press(200, 200)
		x, y := at(200, 200, tt.bearing, 40)
		m.Drag(x, y)
		if m.Selection() != tt.want {
			t.Errorf("%s: selection = %d, want %d", tt.name, m.Selection(), tt.want)
		}
	}
}

func TestNeutralZone(t *testing.T) {
	m := allEight()
	m.Press(50, 50)
	m.Drag(50, 20)
	if m.Selection() != 1 {
		t.Fatalf("selection = %d, want 1", m.Selection())
	}
	// exactly on the neutral radius counts as the center
	if s := m.Drag(60, 50); s != widgets.StatusRedraw || m.Selection() != widgets.CentralItem {
		t.Fatalf("drag back to r=10: status %v selection %d", s, m.Selection())
	}
	if s := m.Drag(55, 52); s != widgets.StatusNoRedraw {
		t.Fatalf("staying in the center should not redraw, got %v", s)
	}
}

func TestSameSelectionDoesNotRedraw(t *testing.T) {
	m := fourWay()
	m.Press(0, 0)
	m.Drag(0, -40)
	if s := m.Drag(2, -60); s != widgets.StatusNoRedraw {
		t.Fatalf("status = %v, want no-redraw", s)
	}
}

func TestBoundaryIsDeterministic(t *testing.T) {
	m := allEight()
	m.Press(100, 100)
	// the line between items 1 and 2
	x, y := at(100, 100, math.Pi/8, 50)
	m.Drag(x, y)
	first := m.Selection()
	if first != 1 && first != 2 {
		t.Fatalf("boundary resolved to %d, want 1 or 2", first)
	}
	for range 20 {
		m.Drag(100, 150) // away
		m.Drag(x, y)
		if m.Selection() != first {
			t.Fatalf("boundary resolved to %d after %d", m.Selection(), first)
		}
		if s := m.Drag(x, y); s != widgets.StatusNoRedraw {
			t.Fatalf("identical drag should not redraw, got %v", s)
		}
	}
}

func TestDisabledItemFallsBackToNearest(t *testing.T) {
	tests := []struct {
		name    string
		bearing float64
		want    int
	}{
		{"north of east", math.Pi/2 - 0.2, 2},
		{"south of east", math.Pi/2 + 0.2, 4},
		{"due east ties to lowest", math.Pi / 2, 2},
	}
	for _, tt := range tests {
		m := allEight()
		m.SetEnabledByID(false, 3)
		m.Press(100, 100)
		x, y := at(100, 100, tt.bearing, 40)
		m.Drag(x, y)
		if m.Selection() != tt.want {
			t.Errorf("%s: selection = %d, want %d", tt.name, m.Selection(), tt.want)
		}
	}
}

func TestUnlabeledItemFallsBackToNearest(t *testing.T) {
	m := fourWay()
	m.Press(100, 100)
	// north-east slice is empty; slightly nearer to east
	x, y := at(100, 100, math.Pi/4+0.1, 40)
	m.Drag(x, y)
	if m.Selection() != 3 {
		t.Fatalf("selection = %d, want 3", m.Selection())
	}
	// wraps across North: north-west of north resolves to 1, not 7
	x, y = at(100, 100, -math.Pi/4+0.1, 40)
	m.Drag(x, y)
	if m.Selection() != 1 {
		t.Fatalf("selection = %d, want 1", m.Selection())
	}
}

func TestNoSelectableItemsStaysCentral(t *testing.T) {
	m := widgets.NewRadialMenu()
	m.Press(10, 10)
	if s := m.Drag(200, 10); s != widgets.StatusNoRedraw {
		t.Fatalf("status = %v", s)
	}
	if m.Selection() != widgets.CentralItem {
		t.Fatalf("selection = %d, want center", m.Selection())
	}
}

func TestHiddenMenuIgnoresEvents(t *testing.T) {
	m := fourWay()
	for name, ev := range map[string]func(float64, float64) widgets.Status{
		"drag":    m.Drag,
		"move":    m.Move,
		"release": m.Release,
	} {
		if s := ev(5, 5); s != widgets.StatusNotConsumed {
			t.Fatalf("%s on hidden menu = %v", name, s)
		}
	}
	if x, y := m.Center(); x != 0 || y != 0 {
		t.Fatalf("hidden move changed the center to %v,%v", x, y)
	}
	rec := render.NewRecorder()
	m.Draw(rec)
	if len(rec.Calls) != 0 {
		t.Fatalf("hidden menu drew %d calls", len(rec.Calls))
	}
}

func TestMoveFollowsPointer(t *testing.T) {
	m := fourWay()
	m.Press(10, 10)
	if s := m.Move(30, 40); s != widgets.StatusRedraw {
		t.Fatalf("Move = %v", s)
	}
	if x, y := m.Center(); x != 30 || y != 40 {
		t.Fatalf("center = %v,%v", x, y)
	}
}

func TestOutOfRangeIndicesIgnored(t *testing.T) {
	m := fourWay()
	m.SetSector(9, "X", 1)
	m.SetSector(-1, "X", 1)
	m.SetLabel(42, "X")
	if m.ID(9) != -1 || m.ID(-1) != -1 {
		t.Fatalf("ID out of range should be -1")
	}
	if m.Label(9) != "" || m.Hilited(12) {
		t.Fatalf("out of range item should not exist")
	}
	if m.ID(0) != 0 || m.ID(1) != 10 {
		t.Fatalf("ids changed: %d %d", m.ID(0), m.ID(1))
	}
}

func TestGroupHilite(t *testing.T) {
	m := widgets.NewRadialMenu()
	m.SetSector(1, "Up", 42)
	m.SetSector(5, "Also up", 42)
	m.SetSector(3, "Right", 3)
	m.Press(100, 100)
	m.Drag(100, 40)

	if !m.Hilited(1) || !m.Hilited(5) {
		t.Fatalf("items sharing an id should hilite together")
	}
	if m.Hilited(3) || m.Hilited(widgets.CentralItem) {
		t.Fatalf("other items should not hilite")
	}

	rec := render.NewRecorder()
	m.Draw(rec)
	fills := rec.Find("FillRect")
	if len(fills) != 3 {
		t.Fatalf("want 3 item fills, got %d", len(fills))
	}
	dark := widgets.Black.WithAlpha(widgets.MenuAlpha)
	light := widgets.White.WithAlpha(widgets.MenuAlpha)
	// drawn in index order: 1, 3, 5
	if fills[0].Color != dark || fills[1].Color != light || fills[2].Color != dark {
		t.Fatalf("fill colors = %+v %+v %+v", fills[0].Color, fills[1].Color, fills[2].Color)
	}
}

func TestDisabledByIDDisablesGroup(t *testing.T) {
	m := widgets.NewRadialMenu()
	m.SetSector(1, "A", 7)
	m.SetSector(2, "B", 7)
	m.SetSector(5, "C", 5)
	m.SetEnabledByID(false, 7)
	m.Press(0, 0)
	m.Drag(0, -50)
	if m.Selection() != 5 {
		t.Fatalf("selection = %d, want 5", m.Selection())
	}
	rec := render.NewRecorder()
	m.Draw(rec)
	if got := rec.Strings(); len(got) != 1 || got[0] != "C" {
		t.Fatalf("drawn labels = %v", got)
	}
}

func TestDrawLayout(t *testing.T) {
	m := fourWay()
	m.Press(100, 100)
	rec := render.NewRecorder()
	m.Draw(rec)

	want := []string{
		"FillCircle", "DrawCircle",
		"FillRect", "DrawRect", "DrawString",
		"FillRect", "DrawRect", "DrawString",
		"FillRect", "DrawRect", "DrawString",
		"FillRect", "DrawRect", "DrawString",
	}
	ops := rec.Ops()
	if len(ops) != len(want) {
		t.Fatalf("ops = %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %s, want %s (all: %v)", i, ops[i], want[i], ops)
		}
	}

	// center is selected, so it is dark with a white outline
	circles := rec.Find("FillCircle")
	if c := circles[0]; c.Color != widgets.Black.WithAlpha(widgets.MenuAlpha) ||
		!near(c.Args[0], 100) || !near(c.Args[1], 100) || c.Args[2] != widgets.NeutralRadius {
		t.Fatalf("central fill = %v %+v", c, c.Color)
	}
	if c := rec.Find("DrawCircle")[0]; c.Color != widgets.White {
		t.Fatalf("central outline color = %+v", c.Color)
	}

	// item height 18, radius 46; 1 and 5 pulled in to 23 since their
	// neighbours are empty. Labels are 6px wide, items 14px.
	rects := rec.Find("FillRect")
	wantRects := [][4]float64{
		{93, 68, 14, 18},  // A
		{139, 91, 14, 18}, // B
		{93, 114, 14, 18}, // C
		{47, 91, 14, 18},  // D
	}
	for i, w := range wantRects {
		got := rects[i].Args
		for j := range w {
			if !near(got[j], w[j]) {
				t.Fatalf("item %d rect = %v, want %v", i, got, w)
			}
		}
	}

	texts := rec.Find("DrawString")
	wantText := []struct {
		s    string
		x, y float64
	}{
		{"A", 97, 82},
		{"B", 143, 105},
		{"C", 97, 128},
		{"D", 51, 105},
	}
	for i, w := range wantText {
		got := texts[i]
		if got.Text != w.s || got.Args[0] != w.x || got.Args[1] != w.y {
			t.Fatalf("label %d = %v, want %q at %v,%v", i, got, w.s, w.x, w.y)
		}
		if got.Color != widgets.Black {
			t.Fatalf("unhilited label %q color = %+v", w.s, got.Color)
		}
	}
}

func TestDrawMirrorWidth(t *testing.T) {
	m := widgets.NewRadialMenu()
	m.SetSector(2, "Tempo", 2)
	m.SetSector(8, "Pan", 8)
	m.Press(0, 0)
	rec := render.NewRecorder()
	m.Draw(rec)

	rects := rec.Find("DrawRect")
	if len(rects) != 2 {
		t.Fatalf("want 2 items, got %d", len(rects))
	}
	for _, r := range rects {
		if r.Args[2] != 5*6+2*widgets.MarginAroundText {
			t.Fatalf("width = %v, want the wider label's width", r.Args[2])
		}
	}
}

func TestDrawClampsSideItems(t *testing.T) {
	m := widgets.NewRadialMenu()
	m.SetSector(2, "A rather long label", 2)
	m.SetSector(3, "Another long label", 3)
	m.SetSector(7, "Left side long", 7)
	m.Press(100, 100)
	rec := render.NewRecorder()
	m.Draw(rec)

	rects := rec.Find("FillRect")
	if len(rects) != 3 {
		t.Fatalf("want 3 items, got %d", len(rects))
	}
	if !near(rects[0].Args[0], 100+widgets.MarginBetweenItems) {
		t.Fatalf("item 2 left edge = %v", rects[0].Args[0])
	}
	if !near(rects[1].Args[0], 100+widgets.NeutralRadius+widgets.MarginBetweenItems) {
		t.Fatalf("item 3 left edge = %v", rects[1].Args[0])
	}
	right := rects[2].Args[0] + rects[2].Args[2]
	if !near(right, 100-widgets.NeutralRadius-widgets.MarginBetweenItems) {
		t.Fatalf("item 7 right edge = %v", right)
	}
}

func controlMenu() *widgets.RadialMenu {
	m := widgets.NewControlMenu()
	m.SetSector(0, "", -1)
	m.SetSector(1, "Tempo", 2)
	m.SetSector(2, "Pan", 1)
	m.SetSector(3, "Zoom", 0)
	m.SetSector(5, "Total Duration", 3)
	m.SetSector(7, "Transpose", 4)
	return m
}

func TestControlMenuHandoff(t *testing.T) {
	m := controlMenu()
	m.Press(100, 100)
	if !m.InMenuingMode() {
		t.Fatalf("press should enter menuing mode")
	}
	if s := m.Drag(100, 80); s != widgets.StatusRedraw || m.Selection() != 1 {
		t.Fatalf("drag north: %v selection %d", s, m.Selection())
	}
	// exactly on the pie edge still menus
	if s := m.Drag(100, 40); s != widgets.StatusNoRedraw || !m.InMenuingMode() {
		t.Fatalf("drag to r=60: %v menuing %v", s, m.InMenuingMode())
	}
	if s := m.Drag(100, 39); s != widgets.StatusRedraw || m.InMenuingMode() {
		t.Fatalf("leaving the pie: %v menuing %v", s, m.InMenuingMode())
	}
	if !m.Visible() {
		t.Fatalf("handoff must not hide the menu")
	}
	if m.SelectedID() != 2 {
		t.Fatalf("selected id = %d, want tempo", m.SelectedID())
	}
	// now the host owns the drags, even back inside the pie
	if s := m.Drag(100, 100); s != widgets.StatusNotConsumed {
		t.Fatalf("drag after handoff = %v", s)
	}
	if m.SelectedID() != 2 {
		t.Fatalf("selection changed after handoff")
	}
	if s := m.Release(0, 0); s != widgets.StatusRedraw || m.Visible() {
		t.Fatalf("release = %v", s)
	}
	m.Press(10, 10)
	if !m.InMenuingMode() || m.Selection() != widgets.CentralItem {
		t.Fatalf("press should re-enter menuing mode")
	}
}

func TestControlMenuJumpStraightOut(t *testing.T) {
	m := controlMenu()
	m.Press(0, 0)
	// a single far drag both selects and hands off
	if s := m.Drag(80, 0); s != widgets.StatusRedraw {
		t.Fatalf("status = %v", s)
	}
	if m.InMenuingMode() || m.SelectedID() != 0 {
		t.Fatalf("menuing %v id %d, want zoom after handoff", m.InMenuingMode(), m.SelectedID())
	}
}

func TestControlMenuHiddenDrag(t *testing.T) {
	m := controlMenu()
	if s := m.Drag(1, 1); s != widgets.StatusNotConsumed {
		t.Fatalf("status = %v", s)
	}
}

func TestControlMenuDraw(t *testing.T) {
	m := controlMenu()
	m.Press(100, 100)
	rec := render.NewRecorder()
	m.Draw(rec)

	pie := rec.Find("FillCircle")[0]
	if pie.Args[2] != 60 || pie.Color != widgets.Gray.WithAlpha(widgets.MenuAlpha) {
		t.Fatalf("pie = %v %+v", pie, pie.Color)
	}
	if n := len(rec.Find("FillRect")); n != 5 {
		t.Fatalf("menuing draw shows %d items, want 5", n)
	}

	m.Drag(100, 20)
	rec.Reset()
	m.Draw(rec)
	if got := rec.Strings(); len(got) != 1 || got[0] != "Tempo" {
		t.Fatalf("after handoff only the chosen item is drawn, got %v", got)
	}
}

func TestPlainMenuAlwaysMenuing(t *testing.T) {
	m := fourWay()
	if !m.InMenuingMode() {
		t.Fatalf("plain menu should report menuing mode")
	}
	m.Press(0, 0)
	if s := m.Drag(0, -500); s != widgets.StatusRedraw || m.Selection() != 1 {
		t.Fatalf("far drag on a plain menu keeps selecting, got %v %d", s, m.Selection())
	}
}

func TestStatus(t *testing.T) {
	if widgets.StatusNotConsumed.Consumed() || !widgets.StatusNoRedraw.Consumed() {
		t.Fatalf("Consumed mismatch")
	}
	if widgets.StatusRedraw.String() != "redraw" {
		t.Fatalf("String = %q", widgets.StatusRedraw.String())
	}
	var _ widgets.Widget = widgets.NewRadialMenu()
}
