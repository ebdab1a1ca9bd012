package meshy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"honnef.co/go/curve"
)

// cellPatch is one grid cell as a Coons patch: four boundary curves in unit
// space plus the colors of its corners.
//
//	p00 --top--> p10
//	 |            |
//	left        right
//	 v            v
//	p01 -bottom> p11
type cellPatch struct {
	top, bottom curve.CubicBez // left to right
	left, right curve.CubicBez // top to bottom
	c00, c10    Color
	c01, c11    Color
}

// newCellPatch builds the patch whose top-left corner is the point at
// (col, row). Horizontal boundaries leave a point through its leading
// control and enter the next through its trailing control; vertical
// boundaries use bottom then top.
func newCellPatch(snap MeshSnapshot, col, row int) cellPatch {
	i00 := row*snap.Width + col
	i10 := i00 + 1
	i01 := i00 + snap.Width
	i11 := i01 + 1

	c := cellPatch{
		c00: snap.Colors[i00],
		c10: snap.Colors[i10],
		c01: snap.Colors[i01],
		c11: snap.Colors[i11],
	}
	if snap.Mode != ModeCurved {
		p00, p10 := snap.Points[i00], snap.Points[i10]
		p01, p11 := snap.Points[i01], snap.Points[i11]
		c.top, c.bottom = straight(p00, p10), straight(p01, p11)
		c.left, c.right = straight(p00, p01), straight(p10, p11)
		return c
	}

	p00, p10 := snap.CurvedPoints[i00], snap.CurvedPoints[i10]
	p01, p11 := snap.CurvedPoints[i01], snap.CurvedPoints[i11]
	c.top = bezier(p00.Position, p00.Leading, p10.Trailing, p10.Position)
	c.bottom = bezier(p01.Position, p01.Leading, p11.Trailing, p11.Position)
	c.left = bezier(p00.Position, p00.Bottom, p01.Top, p01.Position)
	c.right = bezier(p10.Position, p10.Bottom, p11.Top, p11.Position)
	return c
}

func bezier(p0, p1, p2, p3 Vec2) curve.CubicBez {
	return curve.CubicBez{
		P0: curve.Point(p0),
		P1: curve.Point(p1),
		P2: curve.Point(p2),
		P3: curve.Point(p3),
	}
}

// straight returns the cubic tracing a to b at constant speed, so simple
// mode cells interpolate bilinearly.
func straight(a, b Vec2) curve.CubicBez {
	d := b.Sub(a)
	return bezier(a, a.Add(d.Mul(1.0 / 3)), a.Add(d.Mul(2.0 / 3)), b)
}

// at evaluates the bilinearly blended Coons surface at (u, v) ∈ [0, 1]².
func (c *cellPatch) at(u, v float64) Vec2 {
	ct := Vec2(c.top.Eval(u))
	cb := Vec2(c.bottom.Eval(u))
	dl := Vec2(c.left.Eval(v))
	dr := Vec2(c.right.Eval(v))

	p00, p10 := Vec2(c.top.P0), Vec2(c.top.P3)
	p01, p11 := Vec2(c.bottom.P0), Vec2(c.bottom.P3)

	ruledU := ct.Mul(1 - v).Add(cb.Mul(v))
	ruledV := dl.Mul(1 - u).Add(dr.Mul(u))
	corners := p00.Mul((1 - u) * (1 - v)).
		Add(p10.Mul(u * (1 - v))).
		Add(p01.Mul((1 - u) * v)).
		Add(p11.Mul(u * v))
	return ruledU.Add(ruledV).Sub(corners)
}

// colorAt returns the blended corner color at (u, v).
func (c *cellPatch) colorAt(u, v float64) Color {
	return bilinearColor(c.c00, c.c10, c.c01, c.c11, u, v)
}

// appendCell tessellates c into a (subdiv+1)² vertex lattice, mapped through
// m, and appends it with its two-triangles-per-quad indices.
func appendCell(verts []ebiten.Vertex, inds []uint16, c *cellPatch, subdiv int, m curve.Affine) ([]ebiten.Vertex, []uint16) {
	base := len(verts)
	n := subdiv + 1
	step := 1 / float64(subdiv)

	for r := 0; r < n; r++ {
		v := float64(r) * step
		for col := 0; col < n; col++ {
			u := float64(col) * step
			p := transformPoint(m, c.at(u, v))
			clr := c.colorAt(u, v)
			a := clamp01(clr.A)
			verts = append(verts, ebiten.Vertex{
				DstX:   float32(p.X),
				DstY:   float32(p.Y),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(clamp01(clr.R) * a),
				ColorG: float32(clamp01(clr.G) * a),
				ColorB: float32(clamp01(clr.B) * a),
				ColorA: float32(a),
			})
		}
	}

	for r := 0; r < subdiv; r++ {
		for col := 0; col < subdiv; col++ {
			tl := uint16(base + r*n + col)
			tr := tl + 1
			bl := uint16(base + (r+1)*n + col)
			br := bl + 1
			inds = append(inds, tl, bl, tr, tr, bl, br)
		}
	}
	return verts, inds
}

// tessellate converts every cell of snap into triangles. Vertices are mapped
// from unit space through m. flush receives each batch; a new batch starts
// whenever the next cell would overflow 16-bit indices. The returned slices
// are the (emptied) buffers for reuse.
func tessellate(snap MeshSnapshot, m curve.Affine, subdiv int, verts []ebiten.Vertex, inds []uint16,
	flush func([]ebiten.Vertex, []uint16)) ([]ebiten.Vertex, []uint16) {
	if snap.Width < 2 || snap.Height < 2 || snap.Len() != snap.Width*snap.Height ||
		len(snap.Colors) != snap.Len() {
		return verts[:0], inds[:0]
	}
	subdiv = max(1, subdiv)
	perCell := (subdiv + 1) * (subdiv + 1)

	verts, inds = verts[:0], inds[:0]
	for row := 0; row < snap.Height-1; row++ {
		for col := 0; col < snap.Width-1; col++ {
			if len(verts)+perCell > math.MaxUint16 {
				flush(verts, inds)
				verts, inds = verts[:0], inds[:0]
			}
			c := newCellPatch(snap, col, row)
			verts, inds = appendCell(verts, inds, &c, subdiv, m)
		}
	}
	if len(verts) > 0 {
		flush(verts, inds)
	}
	return verts[:0], inds[:0]
}
