package meshy

import (
	"fmt"
	"math/rand/v2"
)

// extentState is the view extent lifecycle: unconfigured until the first
// valid SetViewExtent, configured (and immutable) afterwards.
type extentState uint8

const (
	extentUnconfigured extentState = iota
	extentConfigured
)

// Editor is the mesh editing engine. It owns the grid dimensions, the
// shuffled palette and the control points, and routes every edit through
// the aggregator so snapshots and subscribers stay in step with the points.
//
// An Editor is not safe for concurrent use. All operations, including the
// callbacks they fire, complete before returning.
type Editor struct {
	dims         GridDimensions
	palette      []Color
	handleLength float64
	deviceScale  float64
	clamp        bool

	rawPoints []Vec2
	rawColors []Color

	state  extentState
	extent Size

	agg *Aggregator
}

// New creates an editor from cfg. Unset config fields take their defaults;
// grids smaller than 2x2 and unknown palette colors are rejected with
// ErrInvalidConfiguration.
func New(cfg Config) (*Editor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.palette()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	palette = ShufflePalette(palette, rand.New(rand.NewPCG(seed, seed)))

	dims := cfg.Dimensions()
	points, colors, err := GenerateGrid(dims, palette)
	if err != nil {
		return nil, err
	}

	return &Editor{
		dims:         dims,
		palette:      palette,
		handleLength: cfg.HandleLength,
		deviceScale:  cfg.DeviceScale,
		clamp:        *cfg.ClampPositions,
		rawPoints:    points,
		rawColors:    colors,
		agg:          newAggregator(dims),
	}, nil
}

// Dimensions returns the grid dimensions.
func (e *Editor) Dimensions() GridDimensions { return e.dims }

// Palette returns a copy of the shuffled palette.
func (e *Editor) Palette() []Color {
	return append([]Color(nil), e.palette...)
}

// ViewExtent returns the view extent and whether it has been set.
func (e *Editor) ViewExtent() (Size, bool) {
	return e.extent, e.state == extentConfigured
}

// Configured reports whether the control points exist.
func (e *Editor) Configured() bool { return e.state == extentConfigured }

// Len returns the number of control points, zero before the view extent is
// set.
func (e *Editor) Len() int { return len(e.agg.points) }

// SetViewExtent sets the pixel size of the editing surface. The first valid
// call creates the control points; later calls leave the existing geometry
// alone, so resizing the surface does not reflow edits.
func (e *Editor) SetViewExtent(width, height float64) error {
	size := Size{Width: width, Height: height}
	if !size.Valid() {
		return fmt.Errorf("meshy: view extent %gx%g: %w", width, height, ErrInvalidViewExtent)
	}
	if e.state == extentConfigured {
		if size != e.extent {
			Logger().Debug("meshy: ignoring view extent change",
				"width", width, "height", height,
				"current_width", e.extent.Width, "current_height", e.extent.Height)
		}
		return nil
	}
	e.extent = size
	e.state = extentConfigured
	e.createControlPoints()
	return nil
}

// handleDirections are the pixel directions of the initial handles, indexed
// by Edge.
var handleDirections = HandleSet{
	EdgeTop:      {X: 0, Y: -1},
	EdgeLeading:  {X: 1, Y: 0},
	EdgeBottom:   {X: 0, Y: 1},
	EdgeTrailing: {X: -1, Y: 0},
}

// defaultHandles returns the initial handle offsets: handleLength pixels
// along each edge direction, snapped to the device pixel grid.
func (e *Editor) defaultHandles() HandleSet {
	var hs HandleSet
	for _, edge := range Edges {
		unit := ToUnit(handleDirections[edge].Mul(e.handleLength), e.extent, false)
		hs[edge] = Quantize(ToScreen(unit, e.extent, false), e.deviceScale)
	}
	return hs
}

func (e *Editor) createControlPoints() {
	handles := e.defaultHandles()
	points := make([]ControlPoint, len(e.rawPoints))
	for i, p := range e.rawPoints {
		points[i] = newControlPoint(i, p, handles, e.rawColors[i], e.extent)
	}
	e.agg.seed(points)
	Logger().Info("meshy: control points created",
		"count", len(points), "grid_width", e.dims.Width, "grid_height", e.dims.Height,
		"extent_width", e.extent.Width, "extent_height", e.extent.Height)
}

// Mode returns the current snapshot mode.
func (e *Editor) Mode() Mode { return e.agg.mode }

// SetMode switches between simple and curved snapshots. Every control point
// is told the new mode so handle visibility follows it. Stored positions and
// handles are not modified.
func (e *Editor) SetMode(m Mode) {
	e.agg.setMode(m)
}

// Snapshot returns the current renderer input.
func (e *Editor) Snapshot() MeshSnapshot {
	return e.agg.Snapshot()
}

// point resolves index i for a mutation.
func (e *Editor) point(i int) (*ControlPoint, error) {
	if e.state != extentConfigured {
		return nil, ErrNotConfigured
	}
	cp := e.agg.point(i)
	if cp == nil {
		return nil, fmt.Errorf("meshy: index %d of %d: %w", i, len(e.agg.points), ErrIndexOutOfRange)
	}
	return cp, nil
}

// Point returns a copy of the control point at index i.
func (e *Editor) Point(i int) (ControlPoint, error) {
	cp, err := e.point(i)
	if err != nil {
		return ControlPoint{}, err
	}
	return *cp, nil
}

// Points returns a copy of every control point in index order.
func (e *Editor) Points() []ControlPoint {
	return append([]ControlPoint(nil), e.agg.points...)
}

// SetPosition moves point i to the unit-space position p. Coordinates on
// axes the point is pinned to are kept.
func (e *Editor) SetPosition(i int, p Vec2) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	e.agg.applyLocation(cp.setPosition(p, e.clamp))
	return nil
}

// SetHandleOffset sets the screen-space offset of point i's handle on edge.
// Edges the point may not carry a handle on are left at zero.
func (e *Editor) SetHandleOffset(i int, edge Edge, offset Vec2) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	if u, ok := cp.setHandle(edge, offset); ok {
		e.agg.applyLocation(u)
	}
	return nil
}

// SetColor replaces point i's color.
func (e *Editor) SetColor(i int, c Color) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	e.agg.applyColor(cp.setColor(c))
	return nil
}

// Activate records a tap on point i, toggling its color picker flag.
func (e *Editor) Activate(i int) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	e.agg.applyActivate(cp.activate())
	return nil
}

// DragPoint moves point i by the gesture translation (screen pixels,
// cumulative since the gesture began). The first call of a gesture captures
// the start position; EndDrag finishes the gesture.
func (e *Editor) DragPoint(i int, translation Vec2) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	if u, ok := cp.dragTo(translation, e.clamp); ok {
		e.agg.applyLocation(u)
	}
	return nil
}

// EndDrag finishes the position gesture on point i.
func (e *Editor) EndDrag(i int) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	cp.endDrag()
	return nil
}

// DragHandle moves point i's handle on edge by the gesture translation
// (screen pixels, cumulative since the gesture began). Handles are never
// axis-restricted.
func (e *Editor) DragHandle(i int, edge Edge, translation Vec2) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	if u, ok := cp.dragHandle(edge, translation); ok {
		e.agg.applyLocation(u)
	}
	return nil
}

// EndHandleDrag finishes the handle gesture on point i's edge.
func (e *Editor) EndHandleDrag(i int, edge Edge) error {
	cp, err := e.point(i)
	if err != nil {
		return err
	}
	cp.endHandleDrag(edge)
	return nil
}

// OnLocationChange registers a callback fired after any point's position or
// handles change.
func (e *Editor) OnLocationChange(fn func(LocationUpdate)) CallbackHandle {
	return e.agg.OnLocationChange(fn)
}

// OnColorChange registers a callback fired after any point's color changes.
func (e *Editor) OnColorChange(fn func(ColorUpdate)) CallbackHandle {
	return e.agg.OnColorChange(fn)
}

// OnSnapshot registers a callback fired with every rebuilt snapshot.
func (e *Editor) OnSnapshot(fn func(MeshSnapshot)) CallbackHandle {
	return e.agg.OnSnapshot(fn)
}

// OnActivate registers a callback fired when a point is tapped.
func (e *Editor) OnActivate(fn func(ActivateEvent)) CallbackHandle {
	return e.agg.OnActivate(fn)
}
