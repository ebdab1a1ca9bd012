// Package meshy is the editing engine behind an interactive gradient mesh
// editor for [Ebitengine].
//
// A mesh is a row-major grid of control points. Each point has a position in
// unit space ([0, 1]²), four curve handles stored as screen-space pixel
// offsets, and a color. A renderer interpolates the colors across the surface
// the points warp.
//
// # Quick start
//
//	ed, err := meshy.New(meshy.Config{GridWidth: 3, GridHeight: 4})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// Points are created once the editing surface has a size.
//	if err := ed.SetViewExtent(640, 480); err != nil {
//		log.Fatal(err)
//	}
//	ed.SetMode(meshy.ModeCurved)
//	snap := ed.Snapshot()
//
// # Constraints
//
// Where a point sits on the grid decides what it may do. Corners are pinned
// and have no handles. Points on a side slide along that side and carry the
// single handle pointing into the mesh. Interior points move freely and carry
// all four handles. See [ResolveConstraints].
//
// # Edits and notifications
//
// Every edit goes through the [Editor] and completes synchronously: the
// canonical point and color arrays are updated, then subscribers registered
// with [Editor.OnLocationChange], [Editor.OnColorChange] and
// [Editor.OnSnapshot] are called in registration order, and only then does
// the edit return.
//
// Drags are gestures. [Editor.DragPoint] and [Editor.DragHandle] take the
// translation accumulated since the gesture began, applied to the value
// captured on the gesture's first call, so long drags do not accumulate
// rounding error. [Editor.EndDrag] and [Editor.EndHandleDrag] end the
// gesture.
//
// # Rendering and input
//
// [Renderer] draws a [MeshSnapshot] as Coons patches with ebiten's
// DrawTriangles. [Surface] maps mouse and touch input onto editor gestures
// and draws the point and handle overlay. Both are optional; any consumer of
// snapshots and producer of drag deltas can drive the Editor directly.
//
// [Ebitengine]: https://ebitengine.org
package meshy
