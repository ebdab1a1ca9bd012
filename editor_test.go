package meshy

import (
	"errors"
	"math"
	"testing"
)

func TestEditor2x2CurvedHandlesCollapse(t *testing.T) {
	ed := newTestEditor(t, 2, 2, Size{Width: 400, Height: 300})
	ed.SetMode(ModeCurved)
	snap := ed.Snapshot()
	if len(snap.CurvedPoints) != 4 {
		t.Fatalf("%d curved points, want 4", len(snap.CurvedPoints))
	}
	for i, cp := range snap.CurvedPoints {
		diff(t, flatPoint(cp.Position), cp)
		if p, _ := ed.Point(i); p.AllowedEdges() != 0 || p.AllowedAxes() != 0 {
			t.Errorf("corner %d: edges %v axes %b, want none", i, p.AllowedEdges().Edges(), p.AllowedAxes())
		}
	}
}

func TestEditorLeftEdgeDrag(t *testing.T) {
	ed := newTestEditor(t, 3, 3, Size{Width: 400, Height: 300})
	const left = 3 // (0, 0.5)

	p, _ := ed.Point(left)
	diff(t, Vec2{0, 0.5}, p.Position())
	if p.AllowedAxes() != AxisSetOf(AxisVertical) {
		t.Fatalf("axes = %b, want vertical only", p.AllowedAxes())
	}

	if err := ed.DragPoint(left, Vec2{X: 10, Y: 5}); err != nil {
		t.Fatalf("DragPoint: %v", err)
	}
	p, _ = ed.Point(left)
	if p.Position().X != 0 {
		t.Errorf("x = %v, want exactly 0", p.Position().X)
	}
	assertNear(t, "y", p.Position().Y, 0.5+5.0/300)

	if err := ed.DragHandle(left, EdgeLeading, Vec2{X: 10, Y: 5}); err != nil {
		t.Fatalf("DragHandle: %v", err)
	}
	p, _ = ed.Point(left)
	diff(t, Vec2{X: 50, Y: 5}, p.Handle(EdgeLeading), approx)

	if err := ed.EndDrag(left); err != nil {
		t.Errorf("EndDrag: %v", err)
	}
	if err := ed.EndHandleDrag(left, EdgeLeading); err != nil {
		t.Errorf("EndHandleDrag: %v", err)
	}
}

func TestEditorSetColor(t *testing.T) {
	ed := newTestEditor(t, 3, 4, Size{Width: 400, Height: 300})
	before := ed.Snapshot()
	orange := Color{R: 1, G: 0.5, A: 1}

	if err := ed.SetColor(3, orange); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	after := ed.Snapshot()
	diff(t, orange, after.Colors[3])
	diff(t, before.Points[3], after.Points[3])
	for i := range before.Colors {
		if i != 3 && before.Colors[i] != after.Colors[i] {
			t.Errorf("color %d changed", i)
		}
	}
}

func TestEditorNotificationsSynchronous(t *testing.T) {
	ed := newTestEditor(t, 3, 3, Size{Width: 400, Height: 300})
	var events []string
	ed.OnLocationChange(func(u LocationUpdate) { events = append(events, "location") })
	ed.OnColorChange(func(u ColorUpdate) { events = append(events, "color") })
	ed.OnSnapshot(func(s MeshSnapshot) { events = append(events, "snapshot") })

	if err := ed.DragPoint(4, Vec2{X: 4, Y: 4}); err != nil {
		t.Fatal(err)
	}
	diff(t, []string{"location", "snapshot"}, events)

	events = nil
	if err := ed.SetColor(4, ColorWhite); err != nil {
		t.Fatal(err)
	}
	diff(t, []string{"color", "snapshot"}, events)

	events = nil
	ed.SetMode(ModeCurved)
	diff(t, []string{"snapshot"}, events)
}

func TestEditorDisallowedHandleNoEmission(t *testing.T) {
	ed := newTestEditor(t, 3, 3, Size{Width: 400, Height: 300})
	var n int
	ed.OnLocationChange(func(LocationUpdate) { n++ })

	// Index 0 is a corner; index 1 is on the top side and only has a
	// bottom handle.
	if err := ed.SetHandleOffset(0, EdgeBottom, Vec2{X: 5, Y: 5}); err != nil {
		t.Errorf("SetHandleOffset: %v", err)
	}
	if err := ed.DragHandle(1, EdgeTop, Vec2{X: 5, Y: 5}); err != nil {
		t.Errorf("DragHandle: %v", err)
	}
	if err := ed.DragPoint(0, Vec2{X: 5, Y: 5}); err != nil {
		t.Errorf("DragPoint: %v", err)
	}
	if n != 0 {
		t.Errorf("%d location updates for ignored edits, want 0", n)
	}

	if err := ed.SetHandleOffset(1, EdgeBottom, Vec2{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("%d location updates, want 1", n)
	}
	ed.SetMode(ModeCurved)
	cp := ed.Snapshot().CurvedPoints[1]
	diff(t, Vec2{X: 0.5 + 5.0/400, Y: 5.0 / 300}, cp.Bottom, approx)
	diff(t, cp.Position, cp.Top)
}

func TestEditorSetPosition(t *testing.T) {
	ed := newTestEditor(t, 3, 3, Size{Width: 400, Height: 300})
	if err := ed.SetPosition(4, Vec2{0.2, 0.9}); err != nil {
		t.Fatal(err)
	}
	p, _ := ed.Point(4)
	diff(t, Vec2{0.2, 0.9}, p.Position())

	// Clamped by default.
	ed.SetPosition(4, Vec2{-1, 2})
	p, _ = ed.Point(4)
	diff(t, Vec2{0, 1}, p.Position())

	// Top side point keeps y = 0.
	ed.SetPosition(1, Vec2{0.7, 0.4})
	p, _ = ed.Point(1)
	diff(t, Vec2{0.7, 0}, p.Position())
}

func TestEditorSetPositionUnclamped(t *testing.T) {
	clamp := false
	ed, err := New(Config{GridWidth: 3, GridHeight: 3, ClampPositions: &clamp})
	if err != nil {
		t.Fatal(err)
	}
	ed.SetViewExtent(100, 100)
	ed.SetPosition(4, Vec2{1.5, -0.25})
	p, _ := ed.Point(4)
	diff(t, Vec2{1.5, -0.25}, p.Position())
}

func TestEditorActivate(t *testing.T) {
	ed := newTestEditor(t, 2, 2, Size{Width: 100, Height: 100})
	var got []ActivateEvent
	ed.OnActivate(func(ev ActivateEvent) { got = append(got, ev) })

	ed.Activate(2)
	p, _ := ed.Point(2)
	if !p.PickerOpen() {
		t.Error("PickerOpen = false after Activate")
	}
	ed.Activate(2)
	diff(t, []ActivateEvent{{Index: 2, Open: true}, {Index: 2, Open: false}}, got)
}

func TestEditorViewExtentWriteOnce(t *testing.T) {
	ed, err := New(Config{GridWidth: 3, GridHeight: 3})
	if err != nil {
		t.Fatal(err)
	}
	if ed.Configured() || ed.Len() != 0 {
		t.Fatal("editor configured before any view extent")
	}
	if err := ed.SetViewExtent(400, 300); err != nil {
		t.Fatal(err)
	}
	if !ed.Configured() || ed.Len() != 9 {
		t.Fatalf("configured = %v, len = %d", ed.Configured(), ed.Len())
	}
	ed.DragPoint(4, Vec2{X: 40, Y: 0})
	ed.EndDrag(4)
	before := ed.Points()

	if err := ed.SetViewExtent(800, 600); err != nil {
		t.Errorf("second SetViewExtent: %v", err)
	}
	extent, ok := ed.ViewExtent()
	if !ok || extent != (Size{Width: 400, Height: 300}) {
		t.Errorf("extent = %v, %v; want 400x300", extent, ok)
	}
	after := ed.Points()
	for i := range before {
		if before[i].Position() != after[i].Position() || before[i].Handles() != after[i].Handles() {
			t.Errorf("point %d changed on resize", i)
		}
	}
}

func TestEditorInvalidViewExtent(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative", -5, 100},
		{"infinite", math.Inf(1), 100},
		{"nan", math.NaN(), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, err := New(Config{})
			if err != nil {
				t.Fatal(err)
			}
			if err := ed.SetViewExtent(tt.w, tt.h); !errors.Is(err, ErrInvalidViewExtent) {
				t.Errorf("err = %v, want ErrInvalidViewExtent", err)
			}
			if ed.Configured() {
				t.Error("invalid extent configured the editor")
			}
			// A valid extent still works afterwards.
			if err := ed.SetViewExtent(10, 10); err != nil {
				t.Errorf("valid extent after invalid: %v", err)
			}
		})
	}
}

func TestEditorNotConfigured(t *testing.T) {
	ed, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	errs := []error{
		ed.SetPosition(0, Vec2{}),
		ed.SetHandleOffset(0, EdgeTop, Vec2{}),
		ed.SetColor(0, ColorWhite),
		ed.Activate(0),
		ed.DragPoint(0, Vec2{}),
		ed.EndDrag(0),
		ed.DragHandle(0, EdgeTop, Vec2{}),
		ed.EndHandleDrag(0, EdgeTop),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("op %d: err = %v, want ErrNotConfigured", i, err)
		}
	}
	if _, err := ed.Point(0); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Point: err = %v, want ErrNotConfigured", err)
	}
	if n := ed.Snapshot().Len(); n != 0 {
		t.Errorf("snapshot len = %d before configuration, want 0", n)
	}
}

func TestEditorIndexOutOfRange(t *testing.T) {
	ed := newTestEditor(t, 3, 3, Size{Width: 100, Height: 100})
	for _, i := range []int{-1, 9, 100} {
		if err := ed.SetColor(i, ColorWhite); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetColor(%d): err = %v, want ErrIndexOutOfRange", i, err)
		}
		if err := ed.DragPoint(i, Vec2{X: 1}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("DragPoint(%d): err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestEditorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"narrow grid", Config{GridWidth: 1, GridHeight: 3}},
		{"short grid", Config{GridWidth: 3, GridHeight: 1}},
		{"negative grid", Config{GridWidth: -3}},
		{"unknown color", Config{Palette: []string{"red", "notacolor"}}},
		{"bad hex", Config{Palette: []string{"#zzzzzz"}}},
		{"negative handle length", Config{HandleLength: -1}},
		{"too many subdivisions", Config{Subdivisions: maxSubdivisions + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestEditorDefaultHandles(t *testing.T) {
	ed, err := New(Config{GridWidth: 3, GridHeight: 3, HandleLength: 10.3, DeviceScale: 2})
	if err != nil {
		t.Fatal(err)
	}
	ed.SetViewExtent(400, 300)
	p, _ := ed.Point(4)
	want := HandleSet{
		EdgeTop:      {X: 0, Y: -10.5},
		EdgeLeading:  {X: 10.5, Y: 0},
		EdgeBottom:   {X: 0, Y: 10.5},
		EdgeTrailing: {X: -10.5, Y: 0},
	}
	diff(t, want, p.Handles(), approx)
}

func TestEditorPaletteSeeded(t *testing.T) {
	a, _ := New(Config{Seed: 99})
	b, _ := New(Config{Seed: 99})
	diff(t, a.Palette(), b.Palette())

	a.SetViewExtent(100, 100)
	snap := a.Snapshot()
	pal := a.Palette()
	dims := a.Dimensions()
	for row := 0; row < dims.Height; row++ {
		for col := 0; col < dims.Width; col++ {
			if got := snap.Colors[dims.Index(col, row)]; got != pal[row%len(pal)] {
				t.Errorf("(%d, %d) color %v, want row color %v", col, row, got, pal[row%len(pal)])
			}
		}
	}
}

func TestEditorPointsAreCopies(t *testing.T) {
	ed := newTestEditor(t, 2, 2, Size{Width: 100, Height: 100})
	pts := ed.Points()
	pts[0].position = Vec2{0.5, 0.5}
	p, _ := ed.Point(0)
	diff(t, Vec2{}, p.Position())
}

func TestEditorModeToggleKeepsPoints(t *testing.T) {
	ed := newTestEditor(t, 3, 4, Size{Width: 400, Height: 300})
	ed.SetMode(ModeCurved)
	ed.DragHandle(4, EdgeBottom, Vec2{X: 7, Y: 9})
	ed.DragPoint(4, Vec2{X: -13, Y: 5})
	before := ed.Points()

	ed.SetMode(ModeSimple)
	ed.SetMode(ModeCurved)
	after := ed.Points()
	for i := range before {
		if before[i].Position() != after[i].Position() || before[i].Handles() != after[i].Handles() {
			t.Errorf("point %d changed across a mode round trip", i)
		}
	}
}
