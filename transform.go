package meshy

import (
	"math"

	"honnef.co/go/curve"
)

// ToScreen maps a unit-space point into the pixel space of size. With clamp
// set, the result is clipped into [0, size.Width] x [0, size.Height].
func ToScreen(p Vec2, size Size, clamp bool) Vec2 {
	px := p.X * size.Width
	py := p.Y * size.Height
	if clamp {
		return Vec2{X: max(0, min(size.Width, px)), Y: max(0, min(size.Height, py))}
	}
	return Vec2{X: px, Y: py}
}

// ToUnit is the inverse of ToScreen. With clamp set, the result is clipped
// into [0, 1]². size must be valid; see Size.Valid.
func ToUnit(p Vec2, size Size, clamp bool) Vec2 {
	px := p.X / size.Width
	py := p.Y / size.Height
	if clamp {
		return Vec2{X: clamp01(px), Y: clamp01(py)}
	}
	return Vec2{X: px, Y: py}
}

// Quantize snaps a screen-space point to the device pixel grid for the given
// scale factor (2 on a typical high-density display). A non-positive scale is
// treated as 1.
func Quantize(p Vec2, scale float64) Vec2 {
	if scale <= 0 {
		scale = 1
	}
	return Vec2{
		X: math.Round(p.X*scale) / scale,
		Y: math.Round(p.Y*scale) / scale,
	}
}

// surfaceTransform maps unit space onto a surface of the given extent whose
// top-left corner sits at origin in window pixels.
func surfaceTransform(origin Vec2, extent Size) curve.Affine {
	return curve.Translate(curve.Vec2(origin)).Mul(curve.Scale(extent.Width, extent.Height))
}

// transformPoint applies m to p.
func transformPoint(m curve.Affine, p Vec2) Vec2 {
	return Vec2(curve.Point(p).Transform(m))
}
