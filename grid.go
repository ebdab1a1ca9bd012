package meshy

import (
	"fmt"
	"math/rand/v2"
)

// GridDimensions is the number of control point columns (Width) and rows
// (Height) in the mesh. Both must be at least 2.
type GridDimensions struct {
	Width, Height int
}

// Len returns the number of control points in the grid.
func (d GridDimensions) Len() int {
	return d.Width * d.Height
}

// Validate rejects grids that cannot be spaced across [0, 1].
func (d GridDimensions) Validate() error {
	if d.Width < 2 || d.Height < 2 {
		return fmt.Errorf("meshy: grid %dx%d (both dimensions must be >= 2): %w",
			d.Width, d.Height, ErrInvalidConfiguration)
	}
	return nil
}

// Index returns the row-major index of (col, row).
func (d GridDimensions) Index(col, row int) int {
	return row*d.Width + col
}

// defaultPaletteNames mirrors the stock palette of the editor: one color per
// row, cycled when the grid has more rows than colors.
var defaultPaletteNames = []string{
	"red", "green", "blue",
	"cyan", "pink", "yellow",
	"purple", "orange", "indigo",
}

// DefaultPalette returns the built-in nine-color palette in its unshuffled
// order.
func DefaultPalette() []Color {
	out := make([]Color, len(defaultPaletteNames))
	for i, name := range defaultPaletteNames {
		c, err := ParseColor(name)
		if err != nil {
			panic(err) // the table above only holds CSS names
		}
		out[i] = c
	}
	return out
}

// ShufflePalette returns a shuffled copy of palette. The input is not
// modified, and a fixed rng source yields a fixed order.
func ShufflePalette(palette []Color, rng *rand.Rand) []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// GenerateGrid lays out dims.Width*dims.Height unit-space positions in
// row-major order and assigns every point the palette color of its row.
// Rows beyond the palette length wrap around.
func GenerateGrid(dims GridDimensions, palette []Color) ([]Vec2, []Color, error) {
	if err := dims.Validate(); err != nil {
		return nil, nil, err
	}
	if len(palette) == 0 {
		return nil, nil, fmt.Errorf("meshy: empty palette: %w", ErrInvalidConfiguration)
	}

	dx := 1 / float64(dims.Width-1)
	dy := 1 / float64(dims.Height-1)

	points := make([]Vec2, 0, dims.Len())
	colors := make([]Color, 0, dims.Len())
	for row := 0; row < dims.Height; row++ {
		for col := 0; col < dims.Width; col++ {
			points = append(points, Vec2{X: float64(col) * dx, Y: float64(row) * dy})
			colors = append(colors, palette[row%len(palette)])
		}
	}
	// Pin the far edges exactly; col*dx can land a ulp short of 1.
	for row := 0; row < dims.Height; row++ {
		points[dims.Index(dims.Width-1, row)].X = 1
	}
	for col := 0; col < dims.Width; col++ {
		points[dims.Index(col, dims.Height-1)].Y = 1
	}
	return points, colors, nil
}
