package meshy

import "math"

// Vec2 is a 2D vector used for unit-space positions, screen-space points and
// screen-space handle offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Size is a pixel extent. The editing surface's size is the view extent that
// all unit/screen conversions are relative to.
type Size struct {
	Width, Height float64
}

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Edge identifies one of the four curve handles of a control point.
type Edge uint8

const (
	EdgeTop      Edge = iota // handle pointing up, toward the previous row
	EdgeLeading              // handle pointing right, toward the next column
	EdgeBottom               // handle pointing down, toward the next row
	EdgeTrailing             // handle pointing left, toward the previous column
)

// Edges lists every edge in declaration order.
var Edges = [4]Edge{EdgeTop, EdgeLeading, EdgeBottom, EdgeTrailing}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeading:
		return "leading"
	case EdgeBottom:
		return "bottom"
	case EdgeTrailing:
		return "trailing"
	}
	return "unknown"
}

// EdgeSet is a bitmask of edges.
type EdgeSet uint8

// AllEdges contains every edge.
const AllEdges = EdgeSet(1<<EdgeTop | 1<<EdgeLeading | 1<<EdgeBottom | 1<<EdgeTrailing)

// EdgeSetOf builds a set from the given edges.
func EdgeSetOf(edges ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range edges {
		s |= 1 << e
	}
	return s
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	return s&(1<<e) != 0
}

// Edges returns the members of the set in declaration order.
func (s EdgeSet) Edges() []Edge {
	var out []Edge
	for _, e := range Edges {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Axis identifies a movement direction in screen space.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	}
	return "unknown"
}

// AxisSet is a bitmask of axes.
type AxisSet uint8

// BothAxes contains the horizontal and the vertical axis.
const BothAxes = AxisSet(1<<AxisHorizontal | 1<<AxisVertical)

// AxisSetOf builds a set from the given axes.
func AxisSetOf(axes ...Axis) AxisSet {
	var s AxisSet
	for _, a := range axes {
		s |= 1 << a
	}
	return s
}

// Has reports whether a is in the set.
func (s AxisSet) Has(a Axis) bool {
	return s&(1<<a) != 0
}

// Constrain zeroes every component of d whose axis is not in the set.
func (s AxisSet) Constrain(d Vec2) Vec2 {
	if !s.Has(AxisHorizontal) {
		d.X = 0
	}
	if !s.Has(AxisVertical) {
		d.Y = 0
	}
	return d
}

// HandleSet holds one screen-space offset per edge, relative to the owning
// point's position. Index it with an Edge.
type HandleSet [4]Vec2

// Mode selects how the mesh snapshot is materialized.
type Mode uint8

const (
	ModeSimple Mode = iota // positions only
	ModeCurved             // positions plus absolute curve control points
)

func (m Mode) String() string {
	if m == ModeCurved {
		return "curved"
	}
	return "simple"
}

// EventType identifies a kind of change notification.
type EventType uint8

const (
	EventLocation EventType = iota // a point's position or handles changed
	EventColor                     // a point's color changed
	EventSnapshot                  // the materialized snapshot changed
	EventActivate                  // a point was tapped
)
