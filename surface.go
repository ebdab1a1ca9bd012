package meshy

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"honnef.co/go/curve"
)

const (
	defaultDragDeadZone = 4.0  // pixels
	defaultPointSize    = 20.0 // pixels, side of a point's square
	defaultHandleSize   = 20.0 // pixels, diameter of a handle knob
	defaultHitPadding   = 12.0 // pixels added around points and handles for hit testing
)

var handleFill = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// hitCircle is a circular hit area in surface pixels.
type hitCircle struct {
	center Vec2
	radius float64
}

// contains reports whether (x, y) lies inside or on the circle.
func (c hitCircle) contains(x, y float64) bool {
	dx := x - c.center.X
	dy := y - c.center.Y
	return dx*dx+dy*dy <= c.radius*c.radius
}

type targetKind uint8

const (
	targetNone targetKind = iota
	targetPoint
	targetHandle
)

// surfaceTarget is what a pointer press landed on.
type surfaceTarget struct {
	kind  targetKind
	index int
	edge  Edge
}

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   surfaceTarget
	dragging bool
}

// Surface turns pointer input over the editing area into editor operations:
// dragging a point or handle, and tapping a point to activate it. It also
// draws the point and handle overlay on top of the rendered mesh.
//
// Coordinates passed in and drawn out are window pixels; Origin is the
// top-left of the editing area inside the window.
type Surface struct {
	editor *Editor

	Origin       Vec2
	PointSize    float64
	HandleSize   float64
	HitPadding   float64
	DragDeadZone float64

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	pointer     pointerState
	touchActive bool
	touchIDs    []ebiten.TouchID

	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	script          *Script
}

// NewSurface creates an input surface driving e.
func NewSurface(e *Editor) *Surface {
	return &Surface{
		editor:        e,
		PointSize:     defaultPointSize,
		HandleSize:    defaultHandleSize,
		HitPadding:    defaultHitPadding,
		DragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
}

// Editor returns the editor the surface drives.
func (s *Surface) Editor() *Editor { return s.editor }

// Update processes one frame of input. Queued synthetic events take
// precedence over real input, one per frame.
func (s *Surface) Update() {
	if s.script != nil {
		s.script.step(s)
	}
	if s.processInjectedInput() {
		return
	}
	s.processRealInput()
}

// processRealInput feeds the first active touch or, without touches, the
// mouse through the pointer state machine.
func (s *Surface) processRealInput() {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(s.touchIDs[0])
		s.touchActive = true
		s.processPointer(float64(tx), float64(ty), true)
		return
	}
	if s.touchActive {
		s.touchActive = false
		s.processPointer(s.pointer.lastX, s.pointer.lastY, false)
		return
	}
	mx, my := ebiten.CursorPosition()
	s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// local converts window pixels to surface pixels.
func (s *Surface) local(x, y float64) Vec2 {
	inv := curve.Translate(curve.Vec2(s.Origin)).Invert()
	return transformPoint(inv, Vec2{X: x, Y: y})
}

// hitTest returns the topmost point or visible handle under window pixel
// (x, y). Later points are drawn above earlier ones, and a point's body
// above its own handles.
func (s *Surface) hitTest(x, y float64) surfaceTarget {
	extent, ok := s.editor.ViewExtent()
	if !ok {
		return surfaceTarget{kind: targetNone}
	}
	p := s.local(x, y)
	half := s.PointSize/2 + s.HitPadding
	radius := s.HandleSize/2 + s.HitPadding

	points := s.editor.agg.points
	for i := len(points) - 1; i >= 0; i-- {
		cp := &points[i]
		center := ToScreen(cp.position, extent, false)
		body := Rect{X: center.X - half, Y: center.Y - half, Width: 2 * half, Height: 2 * half}
		if body.Contains(p.X, p.Y) {
			return surfaceTarget{kind: targetPoint, index: i}
		}
		visible := cp.VisibleEdges()
		for _, e := range Edges {
			if !visible.Has(e) {
				continue
			}
			knob := hitCircle{center: center.Add(cp.handles[e]), radius: radius}
			if knob.contains(p.X, p.Y) {
				return surfaceTarget{kind: targetHandle, index: i, edge: e}
			}
		}
	}
	return surfaceTarget{kind: targetNone}
}

// processPointer runs the single-pointer state machine.
func (s *Surface) processPointer(x, y float64, pressed bool) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.target = s.hitTest(x, y)
		ps.dragging = false

	case !pressed && ps.down:
		if ps.dragging {
			s.endGesture(ps.target)
		} else if ps.target.kind == targetPoint && s.hitTest(x, y) == ps.target {
			s.report(s.editor.Activate(ps.target.index))
		}
		ps.down = false
		ps.target = surfaceTarget{}
		ps.dragging = false

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging && ps.target.kind != targetNone {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.DragDeadZone {
					ps.dragging = true
				}
			}
			if ps.dragging {
				s.drag(ps.target, Vec2{X: x - ps.startX, Y: y - ps.startY})
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// drag forwards the cumulative translation of the current gesture.
func (s *Surface) drag(t surfaceTarget, translation Vec2) {
	switch t.kind {
	case targetPoint:
		s.report(s.editor.DragPoint(t.index, translation))
	case targetHandle:
		s.report(s.editor.DragHandle(t.index, t.edge, translation))
	}
}

func (s *Surface) endGesture(t surfaceTarget) {
	switch t.kind {
	case targetPoint:
		s.report(s.editor.EndDrag(t.index))
	case targetHandle:
		s.report(s.editor.EndHandleDrag(t.index, t.edge))
	}
}

func (s *Surface) report(err error) {
	if err != nil {
		Logger().Debug("meshy: surface edit rejected", "error", err)
	}
}

// Draw overlays the control points, and in curved mode their handles, on
// dst. Queued screenshots are captured afterwards.
func (s *Surface) Draw(dst *ebiten.Image) {
	if extent, ok := s.editor.ViewExtent(); ok {
		points := s.editor.agg.points
		for i := range points {
			s.drawPoint(dst, &points[i], extent)
		}
	}
	s.flushScreenshots(dst)
}

func (s *Surface) drawPoint(dst *ebiten.Image, cp *ControlPoint, extent Size) {
	center := s.Origin.Add(ToScreen(cp.position, extent, false))
	cx, cy := float32(center.X), float32(center.Y)

	visible := cp.VisibleEdges()
	r := float32(s.HandleSize / 2)
	for _, e := range Edges {
		if !visible.Has(e) {
			continue
		}
		h := center.Add(cp.handles[e])
		hx, hy := float32(h.X), float32(h.Y)
		vector.StrokeLine(dst, cx, cy, hx, hy, 1, color.White, true)
		vector.DrawFilledCircle(dst, hx, hy, r, handleFill, true)
		vector.StrokeCircle(dst, hx, hy, r, 1, color.White, true)
	}

	size := float32(s.PointSize)
	x, y := cx-size/2, cy-size/2
	vector.DrawFilledRect(dst, x, y, size, size, cp.color, true)
	vector.StrokeRect(dst, x, y, size, size, 1, color.White, true)
}
