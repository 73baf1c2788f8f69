package fractal

import (
	"context"
	"fmt"
)

// Scanner enumerates the sample grid of a viewport in interlaced sweeps.
//
// Sweep s visits columns s, s+Sweeps, s+2*Sweeps, and so on, so the sweeps
// partition the columns and partial results are spread evenly across the
// canvas. Within a column it visits rows 0, Resolution, 2*Resolution, ...
// from the bottom edge up. Sweeps and Resolution are independent.
type Scanner struct {
	Sweeps     int
	Resolution int

	// Progress, if set, is called after each sweep with (sweep+1, Sweeps).
	Progress ProgressFunc
}

// Columns returns the column indices visited by sweep s for a grid of the
// given width. It is empty when Sweeps is not positive.
func (s Scanner) Columns(sweep, width int) []int {
	if s.Sweeps < 1 {
		return nil
	}
	var cols []int
	for x := sweep; x < width; x += s.Sweeps {
		cols = append(cols, x)
	}
	return cols
}

// Scan validates vp and calls visit for every sample point. The context is
// checked before each point and at the end of each sweep; on cancellation
// Scan returns an error wrapping ctx.Err(). A visit that is cut short by the
// context is reported the same way.
func (s Scanner) Scan(ctx context.Context, vp Viewport, visit func(re, im float64)) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	if s.Sweeps < 1 || s.Resolution < 1 {
		return fmt.Errorf("%w: scanner %d sweeps, resolution %d", ErrInvalidOption, s.Sweeps, s.Resolution)
	}

	done := ctx.Done()
	stepRe, stepIm := vp.StepRe(), vp.StepIm()
	for sweep := 0; sweep < s.Sweeps; sweep++ {
		for _, x := range s.Columns(sweep, vp.Width) {
			re := vp.ReMin + float64(x)*stepRe
			for y := 0; y < vp.Height; y += s.Resolution {
				if interrupted(done) {
					return fmt.Errorf("fractal: scan interrupted at sweep %d: %w", sweep, ctx.Err())
				}
				visit(re, vp.ImMin+float64(y)*stepIm)
			}
		}
		if interrupted(done) {
			return fmt.Errorf("fractal: scan interrupted at sweep %d: %w", sweep, ctx.Err())
		}
		if s.Progress != nil {
			s.Progress(sweep+1, s.Sweeps)
		}
	}
	return nil
}

// scanner builds the Scanner described by resolved render options.
func (o *renderOptions) scanner() Scanner {
	return Scanner{Sweeps: o.sweeps, Resolution: o.resolution, Progress: o.progress}
}
