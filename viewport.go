package fractal

import (
	"fmt"
	"math"
)

// Viewport is a rectangle of the complex plane sampled on a pixel grid.
//
// Column x of the grid sits at ReMin + x*StepRe() and row y (counted from
// the bottom) at ImMin + y*StepIm().
type Viewport struct {
	ReMin, ImMin float64
	ReMax, ImMax float64
	Width        int
	Height       int
}

// NewViewport creates a validated viewport.
func NewViewport(reMin, imMin, reMax, imMax float64, width, height int) (Viewport, error) {
	v := Viewport{
		ReMin: reMin, ImMin: imMin,
		ReMax: reMax, ImMax: imMax,
		Width: width, Height: height,
	}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// DefaultView is the explorer's initial view, [-3, 3] on both axes.
func DefaultView(width, height int) Viewport {
	return Viewport{ReMin: -3, ImMin: -3, ReMax: 3, ImMax: 3, Width: width, Height: height}
}

// Validate reports ErrInvalidViewport unless the bounds are finite and
// ordered and both pixel dimensions are positive. Callers must put min/max
// in order themselves; Validate never swaps them.
func (v Viewport) Validate() error {
	for _, b := range [...]float64{v.ReMin, v.ImMin, v.ReMax, v.ImMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: non-finite bound in %s", ErrInvalidViewport, v)
		}
	}
	if !(v.ReMin < v.ReMax) || !(v.ImMin < v.ImMax) {
		return fmt.Errorf("%w: bounds not ordered in %s", ErrInvalidViewport, v)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: pixel size %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	return nil
}

// StepRe is the real-axis grid pitch.
func (v Viewport) StepRe() float64 {
	return (v.ReMax - v.ReMin) / float64(v.Width)
}

// StepIm is the imaginary-axis grid pitch.
func (v Viewport) StepIm() float64 {
	return (v.ImMax - v.ImMin) / float64(v.Height)
}

// ToPixel maps a plane point to pixel coordinates with the origin at the
// top-left corner. Grid points map back to their own column and row.
// The result may lie outside [0, Width) x [0, Height).
func (v Viewport) ToPixel(re, im float64) (x, y int) {
	x = int(math.Floor((re-v.ReMin)/v.StepRe() + 0.5))
	y = v.Height - 1 - int(math.Floor((im-v.ImMin)/v.StepIm()+0.5))
	return x, y
}

// PointAt maps pixel coordinates (origin top-left) to the grid point of
// that pixel. It is the inverse of ToPixel on grid points.
func (v Viewport) PointAt(x, y int) complex128 {
	re := v.ReMin + float64(x)*v.StepRe()
	im := v.ImMin + float64(v.Height-1-y)*v.StepIm()
	return complex(re, im)
}

// Zoom returns the viewport spanned by two opposite corners, keeping the
// pixel size. The corners may be given in any order; a box with zero width
// or height is rejected with ErrInvalidViewport.
func (v Viewport) Zoom(a, b complex128) (Viewport, error) {
	return NewViewport(
		math.Min(real(a), real(b)), math.Min(imag(a), imag(b)),
		math.Max(real(a), real(b)), math.Max(imag(a), imag(b)),
		v.Width, v.Height,
	)
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("[%g%+gi, %g%+gi] %dx%d", v.ReMin, v.ImMin, v.ReMax, v.ImMax, v.Width, v.Height)
}
