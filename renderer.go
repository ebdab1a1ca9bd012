package meshy

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whiteImage backs untextured triangles. Sampling the center texel of a 3x3
// image keeps linear filtering from bleeding in transparent border pixels.
// No sync.Once: ebiten drawing is single-threaded.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func ensureWhiteImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Renderer draws mesh snapshots as color-interpolated Coons patches.
type Renderer struct {
	// Subdivisions is the number of quads per cell side.
	Subdivisions int

	// Origin is the top-left of the editing surface in destination pixels.
	Origin Vec2

	verts []ebiten.Vertex
	inds  []uint16
	op    ebiten.DrawTrianglesOptions
}

// NewRenderer creates a renderer with the given per-cell subdivision. Values
// below 1 select the default.
func NewRenderer(subdivisions int) *Renderer {
	if subdivisions < 1 {
		subdivisions = defaultSubdivisions
	}
	r := &Renderer{Subdivisions: subdivisions}
	r.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.op.AntiAlias = true
	return r
}

// Draw renders snap onto dst, scaled to extent and offset by Origin.
// Snapshots without a complete grid are skipped.
func (r *Renderer) Draw(dst *ebiten.Image, snap MeshSnapshot, extent Size) {
	if !extent.Valid() || snap.Len() == 0 {
		return
	}
	src := ensureWhiteImage()
	m := surfaceTransform(r.Origin, extent)
	r.verts, r.inds = tessellate(snap, m, r.Subdivisions, r.verts, r.inds,
		func(v []ebiten.Vertex, i []uint16) {
			dst.DrawTriangles(v, i, src, &r.op)
		})
}
