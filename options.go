package fractal

import (
	"fmt"
	"math"
)

// RenderOption configures a render call.
// Use functional options to override the per-strategy defaults.
//
// Example:
//
//	err := fractal.RenderMandelbrot(ctx, vp, sink,
//	    fractal.WithMaxIterations(200),
//	    fractal.WithSweeps(4),
//	    fractal.WithColor(fractal.Magenta),
//	)
type RenderOption func(*renderOptions)

// ProgressFunc is invoked after each completed sweep (or inverse-iteration
// phase) with the number of completed and total units of work. A host UI can
// repaint from it.
type ProgressFunc func(done, total int)

// renderOptions holds the resolved configuration of one render call.
type renderOptions struct {
	maxIterations int
	escapeRadius  float64
	sweeps        int
	resolution    int
	color         ColorRGB
	periodBudget  int
	transient     int
	plotSteps     int
	rng           RandSource
	progress      ProgressFunc
}

// Inverse iteration defaults.
const (
	DefaultTransient = 10000
	DefaultPlotSteps = 25000
)

// defaultOptions returns the options shared by all strategies. sweeps is the
// call-site default interlace factor.
func defaultOptions(sweeps int) renderOptions {
	return renderOptions{
		maxIterations: DefaultMaxIterations,
		escapeRadius:  DefaultEscapeRadius,
		sweeps:        sweeps,
		resolution:    1,
		color:         Magenta,
		periodBudget:  DefaultColoredPeriodBudget,
		transient:     DefaultTransient,
		plotSteps:     DefaultPlotSteps,
	}
}

// resolveOptions applies opts over the defaults and validates the result.
func resolveOptions(sweeps int, opts []RenderOption) (renderOptions, error) {
	o := defaultOptions(sweeps)
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return renderOptions{}, err
	}
	return o, nil
}

// CheckOptions reports the ErrInvalidOption a render would return for opts,
// without rendering. Callers that accept options from untrusted input use it
// to reject a request up front.
func CheckOptions(opts ...RenderOption) error {
	_, err := resolveOptions(1, opts)
	return err
}

func (o *renderOptions) validate() error {
	switch {
	case o.maxIterations < 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidOption, o.maxIterations)
	case !(o.escapeRadius > 0) || math.IsInf(o.escapeRadius, 0):
		return fmt.Errorf("%w: escape radius %g", ErrInvalidOption, o.escapeRadius)
	case o.sweeps < 1:
		return fmt.Errorf("%w: sweeps %d", ErrInvalidOption, o.sweeps)
	case o.resolution < 1:
		return fmt.Errorf("%w: resolution %d", ErrInvalidOption, o.resolution)
	case o.periodBudget < 0:
		return fmt.Errorf("%w: period budget %d", ErrInvalidOption, o.periodBudget)
	case o.transient < 0 || o.plotSteps < 0:
		return fmt.Errorf("%w: inverse iteration steps %d/%d", ErrInvalidOption, o.transient, o.plotSteps)
	}
	return nil
}

// WithMaxIterations sets the iteration cap of the membership/escape test.
// Zero is allowed and classifies every point as a member.
func WithMaxIterations(n int) RenderOption {
	return func(o *renderOptions) {
		o.maxIterations = n
	}
}

// WithEscapeRadius sets the escape radius. It must be positive and finite.
func WithEscapeRadius(r float64) RenderOption {
	return func(o *renderOptions) {
		o.escapeRadius = r
	}
}

// WithSweeps sets the interlace factor: sweep s starts s columns in and
// advances n columns at a time.
func WithSweeps(n int) RenderOption {
	return func(o *renderOptions) {
		o.sweeps = n
	}
}

// WithResolution sets the row stride within each scanned column. 1 samples
// every row; larger values trade vertical detail for speed. The column
// layout is set by WithSweeps alone.
func WithResolution(n int) RenderOption {
	return func(o *renderOptions) {
		o.resolution = n
	}
}

// WithColor sets the fixed color of the plain Mandelbrot, filled Julia and
// inverse-iteration strategies.
func WithColor(c ColorRGB) RenderOption {
	return func(o *renderOptions) {
		o.color = c
	}
}

// WithPeriodBudget sets the per-point period detection budget of
// RenderMandelbrotPeriodColored.
func WithPeriodBudget(n int) RenderOption {
	return func(o *renderOptions) {
		o.periodBudget = n
	}
}

// WithTransient sets how many inverse steps are discarded before plotting.
func WithTransient(n int) RenderOption {
	return func(o *renderOptions) {
		o.transient = n
	}
}

// WithPlotSteps sets how many inverse-iteration points are plotted.
func WithPlotSteps(n int) RenderOption {
	return func(o *renderOptions) {
		o.plotSteps = n
	}
}

// WithRand sets the random source of inverse iteration. Tests pass a
// deterministic source; by default every call seeds a fresh generator.
func WithRand(r RandSource) RenderOption {
	return func(o *renderOptions) {
		o.rng = r
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) RenderOption {
	return func(o *renderOptions) {
		o.progress = fn
	}
}
