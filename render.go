package fractal

import (
	"context"
	"errors"
	"time"
)

// Default interlace factors per strategy.
const (
	mandelbrotSweeps       = 4
	mandelbrotPeriodSweeps = 1
	juliaFilledSweeps      = 4
	juliaEscapeSweeps      = 1
)

// RenderMandelbrot plots every member of the Mandelbrot set inside vp in a
// fixed color (WithColor, default Magenta). Non-members are not plotted.
//
// Defaults: 100 iterations, escape radius 2, 4 sweeps, resolution 1.
func RenderMandelbrot(ctx context.Context, vp Viewport, sink Sink, opts ...RenderOption) error {
	return scanRender(ctx, "mandelbrot", vp, sink, mandelbrotSweeps, opts,
		func(done <-chan struct{}, o *renderOptions, s Sink) func(re, im float64) {
			return func(re, im float64) {
				res, ok := iterate(done, 0, complex(re, im), o.maxIterations, o.escapeRadius)
				if ok && !res.Escaped {
					s.Plot(re, im, o.color)
				}
			}
		})
}

// RenderMandelbrotPeriodColored plots every member of the Mandelbrot set
// inside vp colored by PeriodColor of its detected period. The period budget
// (WithPeriodBudget, default 1000) is independent of the membership cap.
//
// Defaults: 100 iterations, escape radius 2, 1 sweep, resolution 1.
func RenderMandelbrotPeriodColored(ctx context.Context, vp Viewport, sink Sink, opts ...RenderOption) error {
	return scanRender(ctx, "mandelbrot-period", vp, sink, mandelbrotPeriodSweeps, opts,
		func(done <-chan struct{}, o *renderOptions, s Sink) func(re, im float64) {
			return func(re, im float64) {
				c := complex(re, im)
				res, ok := iterate(done, 0, c, o.maxIterations, o.escapeRadius)
				if !ok || res.Escaped {
					return
				}
				if p, ok := detectPeriod(done, c, o.periodBudget); ok {
					s.Plot(re, im, PeriodColor(p))
				}
			}
		})
}

// RenderJuliaFilled plots every point of vp whose orbit under z² + c stays
// bounded, in a fixed color.
//
// Defaults: 100 iterations, escape radius 2, 4 sweeps, resolution 1.
func RenderJuliaFilled(ctx context.Context, vp Viewport, c complex128, sink Sink, opts ...RenderOption) error {
	return scanRender(ctx, "julia-filled", vp, sink, juliaFilledSweeps, opts,
		func(done <-chan struct{}, o *renderOptions, s Sink) func(re, im float64) {
			return func(re, im float64) {
				res, ok := iterate(done, complex(re, im), c, o.maxIterations, o.escapeRadius)
				if ok && !res.Escaped {
					s.Plot(re, im, o.color)
				}
			}
		})
}

// RenderJuliaEscapeColored plots every point of vp whose orbit under z² + c
// escapes, colored by EscapeColor of its escape time. Bounded points are
// not plotted.
//
// Defaults: 100 iterations, escape radius 2, 1 sweep, resolution 1.
func RenderJuliaEscapeColored(ctx context.Context, vp Viewport, c complex128, sink Sink, opts ...RenderOption) error {
	return scanRender(ctx, "julia-escape", vp, sink, juliaEscapeSweeps, opts,
		func(done <-chan struct{}, o *renderOptions, s Sink) func(re, im float64) {
			return func(re, im float64) {
				res, ok := iterate(done, complex(re, im), c, o.maxIterations, o.escapeRadius)
				if ok && res.Escaped {
					s.Plot(re, im, EscapeColor(res.Iterations))
				}
			}
		})
}

// scanRender is the shared driver of the scanner-based strategies.
func scanRender(
	ctx context.Context,
	name string,
	vp Viewport,
	sink Sink,
	sweeps int,
	opts []RenderOption,
	visitor func(done <-chan struct{}, o *renderOptions, s Sink) func(re, im float64),
) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	o, err := resolveOptions(sweeps, opts)
	if err != nil {
		return err
	}

	log := Logger().With("strategy", name)
	log.Debug("fractal: render start", "viewport", vp.String(),
		"max_iterations", o.maxIterations, "sweeps", o.sweeps, "resolution", o.resolution)

	start := time.Now()
	counter := &countingSink{Sink: sink}
	err = o.scanner().Scan(ctx, vp, visitor(ctx.Done(), &o, counter))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("fractal: render aborted", "plotted", counter.n, "err", err)
		}
		return err
	}
	log.Debug("fractal: render done", "plotted", counter.n, "elapsed", time.Since(start))
	return nil
}
