package meshy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultGridWidth    = 3
	defaultGridHeight   = 4
	defaultHandleLength = 40.0 // pixels
	defaultSubdivisions = 16
	maxSubdivisions     = 64
)

// Config holds the editor settings. The zero value of every field means
// "use the default", so a partially filled YAML file is valid.
type Config struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`

	// Palette lists CSS color names or "#rrggbb" values, one per row.
	// Empty means DefaultPalette.
	Palette []string `yaml:"palette"`

	// HandleLength is the initial distance in pixels between a point and
	// each of its handles.
	HandleLength float64 `yaml:"handle_length"`

	// DeviceScale is the device pixel ratio initial handle offsets are
	// snapped to.
	DeviceScale float64 `yaml:"device_scale"`

	// ClampPositions keeps moved points inside [0, 1]². Pointer so an
	// explicit false differs from unset.
	ClampPositions *bool `yaml:"clamp_positions"`

	// Seed fixes the palette shuffle. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`

	// Subdivisions is the renderer's per-cell tessellation density.
	Subdivisions int `yaml:"subdivisions"`
}

// DefaultConfig returns a 3x4 grid with the built-in palette.
func DefaultConfig() Config {
	clamp := true
	return Config{
		GridWidth:      defaultGridWidth,
		GridHeight:     defaultGridHeight,
		HandleLength:   defaultHandleLength,
		DeviceScale:    1,
		ClampPositions: &clamp,
		Subdivisions:   defaultSubdivisions,
	}
}

// withDefaults fills every unset field from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GridWidth == 0 {
		c.GridWidth = d.GridWidth
	}
	if c.GridHeight == 0 {
		c.GridHeight = d.GridHeight
	}
	if c.HandleLength == 0 {
		c.HandleLength = d.HandleLength
	}
	if c.DeviceScale == 0 {
		c.DeviceScale = d.DeviceScale
	}
	if c.ClampPositions == nil {
		c.ClampPositions = d.ClampPositions
	}
	if c.Subdivisions == 0 {
		c.Subdivisions = d.Subdivisions
	}
	return c
}

// Dimensions returns the grid dimensions, defaults applied.
func (c Config) Dimensions() GridDimensions {
	c = c.withDefaults()
	return GridDimensions{Width: c.GridWidth, Height: c.GridHeight}
}

// Validate reports the first unusable setting, defaults applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if err := c.Dimensions().Validate(); err != nil {
		return err
	}
	if c.HandleLength < 0 {
		return fmt.Errorf("meshy: negative handle_length %g: %w", c.HandleLength, ErrInvalidConfiguration)
	}
	if c.DeviceScale < 0 {
		return fmt.Errorf("meshy: negative device_scale %g: %w", c.DeviceScale, ErrInvalidConfiguration)
	}
	if c.Subdivisions < 1 || c.Subdivisions > maxSubdivisions {
		return fmt.Errorf("meshy: subdivisions %d out of [1, %d]: %w",
			c.Subdivisions, maxSubdivisions, ErrInvalidConfiguration)
	}
	_, err := c.palette()
	return err
}

// palette resolves the configured color names.
func (c Config) palette() ([]Color, error) {
	if len(c.Palette) == 0 {
		return DefaultPalette(), nil
	}
	out := make([]Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// ParseConfig decodes a YAML document into a Config. Unset fields keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("meshy: parse config: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("meshy: read config: %w", err)
	}
	return ParseConfig(data)
}
