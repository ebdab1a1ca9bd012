package meshy

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to image/color or to
// vertex buffers.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts to a premultiplied 8-bit color.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// ColorFrom converts any color.Color into a straight-alpha Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseColor resolves a CSS color name ("indigo") or a hex triplet
// ("#4b0082") into a Color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		cf, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("meshy: color %q: %w", s, ErrInvalidConfiguration)
		}
		return Color{R: cf.R, G: cf.G, B: cf.B, A: 1}, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("meshy: unknown color name %q: %w", s, ErrInvalidConfiguration)
	}
	return ColorFrom(named), nil
}

// Hex returns the color as "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// blendColors interpolates between a and b in CIE L*a*b*, which keeps the
// midpoint of saturated pairs (red/blue, green/pink) from going muddy.
// Alpha is interpolated linearly.
func blendColors(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	m := a.colorful().BlendLab(b.colorful(), t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: a.A + (b.A-a.A)*t}
}

// bilinearColor blends the four corner colors of a cell at (u, v).
func bilinearColor(c00, c10, c01, c11 Color, u, v float64) Color {
	top := blendColors(c00, c10, u)
	bottom := blendColors(c01, c11, u)
	return blendColors(top, bottom, v)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
