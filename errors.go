package meshy

import "errors"

var (
	// ErrInvalidConfiguration is returned for grid dimensions below 2x2, an
	// empty palette, an unknown palette color or other unusable settings.
	ErrInvalidConfiguration = errors.New("meshy: invalid configuration")

	// ErrInvalidViewExtent is returned when a view extent has a zero,
	// negative or non-finite dimension.
	ErrInvalidViewExtent = errors.New("meshy: invalid view extent")

	// ErrIndexOutOfRange is returned when a point index does not exist.
	ErrIndexOutOfRange = errors.New("meshy: point index out of range")

	// ErrNotConfigured is returned by point operations called before the
	// first valid view extent created the control points.
	ErrNotConfigured = errors.New("meshy: view extent not set")
)
