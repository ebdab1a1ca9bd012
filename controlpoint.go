package meshy

// UninitializedIndex is the index carried by an update that was never bound
// to a point. The aggregator drops such updates.
const UninitializedIndex = -1

// CurvedPoint is a control point in absolute unit space: its position and the
// four curve control points derived from its handles.
type CurvedPoint struct {
	Position Vec2
	Top      Vec2
	Leading  Vec2
	Bottom   Vec2
	Trailing Vec2
}

// Control returns the absolute control point for edge e.
func (c CurvedPoint) Control(e Edge) Vec2 {
	switch e {
	case EdgeTop:
		return c.Top
	case EdgeLeading:
		return c.Leading
	case EdgeBottom:
		return c.Bottom
	case EdgeTrailing:
		return c.Trailing
	}
	return c.Position
}

// flatPoint returns a CurvedPoint whose control points coincide with p.
func flatPoint(p Vec2) CurvedPoint {
	return CurvedPoint{Position: p, Top: p, Leading: p, Bottom: p, Trailing: p}
}

// LocationUpdate reports a new derived curve point for the point at Index.
type LocationUpdate struct {
	Index int
	Point CurvedPoint
}

// ColorUpdate reports a new color for the point at Index.
type ColorUpdate struct {
	Index int
	Color Color
}

// ActivateEvent reports a tap on the point at Index. Open is the new state of
// the point's color picker flag.
type ActivateEvent struct {
	Index int
	Open  bool
}

// ControlPoint is one grid vertex: its unit-space position, its screen-space
// handle offsets, its color and the constraints derived from where it sits on
// the grid.
//
// ControlPoints are value records owned by the editor; the accessors below
// are read-only views. Mutations go through the Editor, which applies them
// here and forwards the resulting update to the aggregator.
type ControlPoint struct {
	index    int
	position Vec2
	handles  HandleSet
	color    Color
	extent   Size

	allowedEdges EdgeSet
	allowedAxes  AxisSet

	curved     bool
	pickerOpen bool

	// Gesture state. The value at gesture start is captured once and every
	// drag step is applied to it, not to the current value.
	dragging       bool
	dragStart      Vec2
	handleDragging EdgeSet
	handleStart    HandleSet
}

// newControlPoint builds a point and resolves its constraints, zeroing every
// handle on a disallowed edge.
func newControlPoint(index int, position Vec2, handles HandleSet, c Color, extent Size) ControlPoint {
	cp := ControlPoint{
		index:    index,
		position: position,
		handles:  handles,
		color:    c,
		extent:   extent,
	}
	cp.resolveConstraints()
	return cp
}

// Index returns the point's row-major index. It never changes.
func (cp *ControlPoint) Index() int { return cp.index }

// Position returns the unit-space position.
func (cp *ControlPoint) Position() Vec2 { return cp.position }

// Handles returns the screen-space handle offsets.
func (cp *ControlPoint) Handles() HandleSet { return cp.handles }

// Handle returns the screen-space offset of the handle on edge e.
func (cp *ControlPoint) Handle(e Edge) Vec2 { return cp.handles[e] }

// Color returns the point's color.
func (cp *ControlPoint) Color() Color { return cp.color }

// AllowedEdges returns the edges whose handles may be non-zero.
func (cp *ControlPoint) AllowedEdges() EdgeSet { return cp.allowedEdges }

// AllowedAxes returns the axes the point may be dragged along.
func (cp *ControlPoint) AllowedAxes() AxisSet { return cp.allowedAxes }

// VisibleEdges returns the handles an editing surface should offer: the
// allowed edges in curved mode, none in simple mode.
func (cp *ControlPoint) VisibleEdges() EdgeSet {
	if !cp.curved {
		return 0
	}
	return cp.allowedEdges
}

// Curved reports whether the point is being edited in curved mode.
func (cp *ControlPoint) Curved() bool { return cp.curved }

// PickerOpen reports whether the point's color selection is open.
func (cp *ControlPoint) PickerOpen() bool { return cp.pickerOpen }

// Dragging reports whether a position drag gesture is in progress.
func (cp *ControlPoint) Dragging() bool { return cp.dragging }

// Location returns the derived absolute curve point.
func (cp *ControlPoint) Location() CurvedPoint {
	p := cp.position
	return CurvedPoint{
		Position: p,
		Top:      p.Add(ToUnit(cp.handles[EdgeTop], cp.extent, false)),
		Leading:  p.Add(ToUnit(cp.handles[EdgeLeading], cp.extent, false)),
		Bottom:   p.Add(ToUnit(cp.handles[EdgeBottom], cp.extent, false)),
		Trailing: p.Add(ToUnit(cp.handles[EdgeTrailing], cp.extent, false)),
	}
}

// resolveConstraints recomputes the allowed edges and axes from the current
// position and zeroes the handles of disallowed edges.
func (cp *ControlPoint) resolveConstraints() {
	cp.allowedEdges, cp.allowedAxes = ResolveConstraints(cp.position)
	for _, e := range Edges {
		if !cp.allowedEdges.Has(e) {
			cp.handles[e] = Vec2{}
		}
	}
}

func (cp *ControlPoint) locationUpdate() LocationUpdate {
	return LocationUpdate{Index: cp.index, Point: cp.Location()}
}

// keepPinnedAxes restores the current coordinate for every axis the point may
// not move along.
func (cp *ControlPoint) keepPinnedAxes(p, from Vec2) Vec2 {
	if !cp.allowedAxes.Has(AxisHorizontal) {
		p.X = from.X
	}
	if !cp.allowedAxes.Has(AxisVertical) {
		p.Y = from.Y
	}
	return p
}

// setPosition moves the point to p, keeping its coordinate on every pinned
// axis so it stays on its boundary.
func (cp *ControlPoint) setPosition(p Vec2, clamp bool) LocationUpdate {
	p = cp.keepPinnedAxes(p, cp.position)
	if clamp {
		p = Vec2{X: clamp01(p.X), Y: clamp01(p.Y)}
	}
	cp.position = p
	return cp.locationUpdate()
}

// dragTo applies the cumulative gesture translation (screen pixels) to the
// position captured at gesture start. Points without a movable axis ignore
// drags and report false.
func (cp *ControlPoint) dragTo(translation Vec2, clamp bool) (LocationUpdate, bool) {
	if cp.allowedAxes == 0 {
		return LocationUpdate{Index: UninitializedIndex}, false
	}
	if !cp.dragging {
		cp.dragging = true
		cp.dragStart = cp.position
	}
	start := ToScreen(cp.dragStart, cp.extent, false)
	next := ToUnit(start.Add(cp.allowedAxes.Constrain(translation)), cp.extent, clamp)
	cp.position = cp.keepPinnedAxes(next, cp.dragStart)
	return cp.locationUpdate(), true
}

// endDrag returns the position gesture to idle.
func (cp *ControlPoint) endDrag() {
	cp.dragging = false
	cp.dragStart = Vec2{}
}

// setHandle replaces the offset of the handle on edge e. Disallowed edges
// stay at zero and report false.
func (cp *ControlPoint) setHandle(e Edge, offset Vec2) (LocationUpdate, bool) {
	if !cp.allowedEdges.Has(e) {
		return LocationUpdate{Index: UninitializedIndex}, false
	}
	cp.handles[e] = offset
	return cp.locationUpdate(), true
}

// dragHandle applies the cumulative gesture translation to the handle offset
// captured at gesture start. Handles move freely on both axes, even on a
// boundary point.
func (cp *ControlPoint) dragHandle(e Edge, translation Vec2) (LocationUpdate, bool) {
	if !cp.allowedEdges.Has(e) {
		return LocationUpdate{Index: UninitializedIndex}, false
	}
	if !cp.handleDragging.Has(e) {
		cp.handleDragging |= EdgeSetOf(e)
		cp.handleStart[e] = cp.handles[e]
	}
	cp.handles[e] = cp.handleStart[e].Add(translation)
	return cp.locationUpdate(), true
}

// endHandleDrag returns the gesture on edge e to idle.
func (cp *ControlPoint) endHandleDrag(e Edge) {
	cp.handleDragging &^= EdgeSetOf(e)
	cp.handleStart[e] = Vec2{}
}

func (cp *ControlPoint) setColor(c Color) ColorUpdate {
	cp.color = c
	return ColorUpdate{Index: cp.index, Color: c}
}

// activate toggles the color picker flag.
func (cp *ControlPoint) activate() ActivateEvent {
	cp.pickerOpen = !cp.pickerOpen
	return ActivateEvent{Index: cp.index, Open: cp.pickerOpen}
}

func (cp *ControlPoint) setCurved(curved bool) {
	cp.curved = curved
}
