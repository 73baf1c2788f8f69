package fractal

import "errors"

var (
	// ErrInvalidViewport is returned when a viewport has inverted or equal
	// bounds, non-finite bounds, or a pixel dimension that is not positive.
	// Scanner-based renders return it before any point is tested.
	ErrInvalidViewport = errors.New("fractal: invalid viewport")

	// ErrInvalidOption is returned when a render option is out of range,
	// e.g. zero sweeps or a non-positive escape radius.
	ErrInvalidOption = errors.New("fractal: invalid render option")
)
