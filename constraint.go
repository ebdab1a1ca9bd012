package meshy

// ResolveConstraints classifies p by its boundary membership and returns the
// handles it may carry and the axes it may move along. p is clamped to
// [0, 1]² first.
//
// Corners are pinned and carry no handles. A point on a side edge may only
// slide along that edge, and only the handle on the opposite side (the one
// pointing into the mesh) is usable. Interior points are unconstrained.
func ResolveConstraints(p Vec2) (EdgeSet, AxisSet) {
	x := clamp01(p.X)
	y := clamp01(p.Y)

	onVertical := x == 0 || x == 1
	onHorizontal := y == 0 || y == 1

	switch {
	case onVertical && onHorizontal:
		return 0, 0
	case x == 0:
		return EdgeSetOf(EdgeLeading), AxisSetOf(AxisVertical)
	case x == 1:
		return EdgeSetOf(EdgeTrailing), AxisSetOf(AxisVertical)
	case y == 0:
		return EdgeSetOf(EdgeBottom), AxisSetOf(AxisHorizontal)
	case y == 1:
		return EdgeSetOf(EdgeTop), AxisSetOf(AxisHorizontal)
	}
	return AllEdges, BothAxes
}
