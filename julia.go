package fractal

import (
	"context"
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"time"
)

// RandSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// seedSpan is the side of the square the inverse-iteration seed is drawn
// from. It is far larger than any useful view so the transient pulls the
// orbit onto the Julia set from outside.
const seedSpan = 1000

// checkEvery is how many inverse steps run between context checks.
const checkEvery = 1024

// InverseStep returns one of the two square roots of z - c, each with
// probability 0.5, using one draw from rng per call.
func InverseStep(z, c complex128, rng RandSource) complex128 {
	root := cmplx.Sqrt(z - c)
	if rng.Float64() < 0.5 {
		return root
	}
	return -root
}

// newRand seeds a fresh generator so that repeated renders differ.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RenderJuliaInverseIteration approximates the Julia set boundary of c with
// the inverse iteration method: a random seed in [0, 1000)² is pulled onto
// the set by WithTransient steps of InverseStep (default 10000), then
// WithPlotSteps points (default 25000) are plotted in a fixed color.
//
// The result is a Monte Carlo point cloud and differs between calls unless a
// deterministic source is supplied with WithRand.
func RenderJuliaInverseIteration(ctx context.Context, c complex128, sink Sink, opts ...RenderOption) error {
	o, err := resolveOptions(1, opts)
	if err != nil {
		return err
	}
	rng := o.rng
	if rng == nil {
		rng = newRand()
	}

	log := Logger().With("strategy", "julia-inverse")
	log.Debug("fractal: render start", "c", c, "transient", o.transient, "plot_steps", o.plotSteps)
	start := time.Now()

	z := complex(seedSpan*rng.Float64(), seedSpan*rng.Float64())
	for i := 0; i < o.transient; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				log.Warn("fractal: render aborted", "phase", "transient", "err", err)
				return fmt.Errorf("fractal: inverse iteration interrupted: %w", err)
			}
		}
		z = InverseStep(z, c, rng)
	}
	if o.progress != nil {
		o.progress(1, 2)
	}

	for i := 0; i < o.plotSteps; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				log.Warn("fractal: render aborted", "phase", "plot", "plotted", i, "err", err)
				return fmt.Errorf("fractal: inverse iteration interrupted: %w", err)
			}
		}
		sink.Plot(real(z), imag(z), o.color)
		z = InverseStep(z, c, rng)
	}
	if o.progress != nil {
		o.progress(2, 2)
	}

	log.Debug("fractal: render done", "plotted", o.plotSteps, "elapsed", time.Since(start))
	return nil
}
