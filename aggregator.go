package meshy

import "slices"

// MeshSnapshot is the renderer-facing projection of the mesh. It is rebuilt,
// never mutated, so a snapshot handed out earlier stays valid after later
// edits.
type MeshSnapshot struct {
	Mode   Mode
	Width  int // control point columns
	Height int // control point rows

	// Points holds positions in simple mode; CurvedPoints holds full curve
	// points in curved mode. The other slice is nil.
	Points       []Vec2
	CurvedPoints []CurvedPoint
	Colors       []Color
}

// Len returns the number of points in the snapshot.
func (s MeshSnapshot) Len() int {
	if s.Mode == ModeCurved {
		return len(s.CurvedPoints)
	}
	return len(s.Points)
}

// Position returns the position of point i in either mode.
func (s MeshSnapshot) Position(i int) Vec2 {
	if s.Mode == ModeCurved {
		return s.CurvedPoints[i].Position
	}
	return s.Points[i]
}

// Curved returns point i as a curve point. In simple mode the control
// points coincide with the position, which yields straight cell edges.
func (s MeshSnapshot) Curved(i int) CurvedPoint {
	if s.Mode == ModeCurved {
		return s.CurvedPoints[i]
	}
	return flatPoint(s.Points[i])
}

// clone copies the slices of s. Nil slices stay nil.
func (s MeshSnapshot) clone() MeshSnapshot {
	s.Points = slices.Clone(s.Points)
	s.CurvedPoints = slices.Clone(s.CurvedPoints)
	s.Colors = slices.Clone(s.Colors)
	return s
}

// materialize builds a snapshot from the canonical arrays. It copies what it
// keeps and has no side effects.
func materialize(mode Mode, width, height int, curved []CurvedPoint, colors []Color) MeshSnapshot {
	snap := MeshSnapshot{
		Mode:   mode,
		Width:  width,
		Height: height,
		Colors: append([]Color(nil), colors...),
	}
	if mode == ModeCurved {
		snap.CurvedPoints = append([]CurvedPoint(nil), curved...)
		return snap
	}
	snap.Points = make([]Vec2, len(curved))
	for i := range curved {
		snap.Points[i] = curved[i].Position
	}
	return snap
}

// --- Handler registry ---

type locationHandler struct {
	id uint32
	fn func(LocationUpdate)
}

type colorHandler struct {
	id uint32
	fn func(ColorUpdate)
}

type snapshotHandler struct {
	id uint32
	fn func(MeshSnapshot)
}

type activateHandler struct {
	id uint32
	fn func(ActivateEvent)
}

type handlerRegistry struct {
	location []locationHandler
	color    []colorHandler
	snapshot []snapshotHandler
	activate []activateHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventLocation:
		h.reg.location = removeHandler(h.reg.location, h.id, func(x locationHandler) uint32 { return x.id })
	case EventColor:
		h.reg.color = removeHandler(h.reg.color, h.id, func(x colorHandler) uint32 { return x.id })
	case EventSnapshot:
		h.reg.snapshot = removeHandler(h.reg.snapshot, h.id, func(x snapshotHandler) uint32 { return x.id })
	case EventActivate:
		h.reg.activate = removeHandler(h.reg.activate, h.id, func(x activateHandler) uint32 { return x.id })
	}
}

// removeHandler returns s without the handler id. It never writes to s, so a
// dispatch loop ranging over s when a callback removes itself keeps its view.
func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			out := make([]T, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// --- Aggregator ---

// Aggregator owns the control point arena and the canonical derived arrays
// (one curve point and one color per index), and is the only producer of
// MeshSnapshot values.
type Aggregator struct {
	width, height int

	points []ControlPoint
	curved []CurvedPoint
	colors []Color
	mode   Mode

	snapshot      MeshSnapshot
	snapshotDirty bool

	handlers handlerRegistry
}

func newAggregator(dims GridDimensions) *Aggregator {
	return &Aggregator{
		width:         dims.Width,
		height:        dims.Height,
		snapshotDirty: true,
	}
}

// seed takes ownership of the arena and derives the canonical arrays from
// each point's initial state.
func (a *Aggregator) seed(points []ControlPoint) {
	a.points = points
	a.curved = make([]CurvedPoint, len(points))
	a.colors = make([]Color, len(points))
	for i := range points {
		points[i].setCurved(a.mode == ModeCurved)
		a.curved[i] = points[i].Location()
		a.colors[i] = points[i].color
	}
	a.changed()
}

// point returns the arena slot for i, or nil if i does not exist.
func (a *Aggregator) point(i int) *ControlPoint {
	if i < 0 || i >= len(a.points) {
		return nil
	}
	return &a.points[i]
}

// applyLocation records a new curve point. Updates that do not address an
// existing index are dropped.
func (a *Aggregator) applyLocation(u LocationUpdate) {
	if u.Index < 0 || u.Index >= len(a.curved) {
		Logger().Debug("meshy: dropped location update", "index", u.Index)
		return
	}
	a.curved[u.Index] = u.Point
	a.snapshotDirty = true
	for _, h := range a.handlers.location {
		h.fn(u)
	}
	a.changed()
}

// applyColor records a new color. Updates that do not address an existing
// index are dropped.
func (a *Aggregator) applyColor(u ColorUpdate) {
	if u.Index < 0 || u.Index >= len(a.colors) {
		Logger().Debug("meshy: dropped color update", "index", u.Index)
		return
	}
	a.colors[u.Index] = u.Color
	a.snapshotDirty = true
	for _, h := range a.handlers.color {
		h.fn(u)
	}
	a.changed()
}

func (a *Aggregator) applyActivate(ev ActivateEvent) {
	for _, h := range a.handlers.activate {
		h.fn(ev)
	}
}

// setMode switches the snapshot shape. Stored points are not touched.
func (a *Aggregator) setMode(m Mode) {
	if m == a.mode {
		return
	}
	a.mode = m
	for i := range a.points {
		a.points[i].setCurved(m == ModeCurved)
	}
	a.changed()
}

// changed invalidates the cached snapshot and pushes a fresh one to
// snapshot subscribers. Without subscribers the rebuild is deferred to the
// next Snapshot call.
func (a *Aggregator) changed() {
	a.snapshotDirty = true
	if len(a.handlers.snapshot) == 0 {
		return
	}
	snap := a.cached()
	for _, h := range a.handlers.snapshot {
		h.fn(snap.clone())
	}
}

// cached returns the shared snapshot, rebuilding it if anything changed
// since the last call. Callers must not let it escape.
func (a *Aggregator) cached() MeshSnapshot {
	if a.snapshotDirty {
		a.snapshot = materialize(a.mode, a.width, a.height, a.curved, a.colors)
		a.snapshotDirty = false
	}
	return a.snapshot
}

// Snapshot returns a copy of the current snapshot. The caller owns its
// slices.
func (a *Aggregator) Snapshot() MeshSnapshot {
	return a.cached().clone()
}

// OnLocationChange registers a callback fired after a point's position or
// handles change.
func (a *Aggregator) OnLocationChange(fn func(LocationUpdate)) CallbackHandle {
	a.handlers.nextID++
	id := a.handlers.nextID
	a.handlers.location = append(a.handlers.location, locationHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &a.handlers, event: EventLocation}
}

// OnColorChange registers a callback fired after a point's color changes.
func (a *Aggregator) OnColorChange(fn func(ColorUpdate)) CallbackHandle {
	a.handlers.nextID++
	id := a.handlers.nextID
	a.handlers.color = append(a.handlers.color, colorHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &a.handlers, event: EventColor}
}

// OnSnapshot registers a callback fired with the rebuilt snapshot after
// every change to points, colors or mode.
func (a *Aggregator) OnSnapshot(fn func(MeshSnapshot)) CallbackHandle {
	a.handlers.nextID++
	id := a.handlers.nextID
	a.handlers.snapshot = append(a.handlers.snapshot, snapshotHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &a.handlers, event: EventSnapshot}
}

// OnActivate registers a callback fired when a point is tapped.
func (a *Aggregator) OnActivate(fn func(ActivateEvent)) CallbackHandle {
	a.handlers.nextID++
	id := a.handlers.nextID
	a.handlers.activate = append(a.handlers.activate, activateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &a.handlers, event: EventActivate}
}
