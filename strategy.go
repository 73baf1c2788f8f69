package fractal

import (
	"context"
	"fmt"
)

// Strategy names one of the render strategies.
type Strategy int

const (
	StrategyMandelbrot Strategy = iota
	StrategyMandelbrotPeriod
	StrategyJuliaInverse
	StrategyJuliaFilled
	StrategyJuliaEscape
)

var strategyNames = [...]string{
	StrategyMandelbrot:       "mandelbrot",
	StrategyMandelbrotPeriod: "mandelbrot-period",
	StrategyJuliaInverse:     "julia",
	StrategyJuliaFilled:      "julia-filled",
	StrategyJuliaEscape:      "julia-escape",
}

// String returns the strategy name used on the command line and the wire.
func (s Strategy) String() string {
	if s >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOption, name)
}

// Julia reports whether the strategy takes a parameter c.
func (s Strategy) Julia() bool {
	return s == StrategyJuliaInverse || s == StrategyJuliaFilled || s == StrategyJuliaEscape
}

// Render runs strategy s. c is ignored by the Mandelbrot strategies and vp
// is ignored by inverse iteration, which plots wherever the orbit goes.
func Render(ctx context.Context, s Strategy, vp Viewport, c complex128, sink Sink, opts ...RenderOption) error {
	switch s {
	case StrategyMandelbrot:
		return RenderMandelbrot(ctx, vp, sink, opts...)
	case StrategyMandelbrotPeriod:
		return RenderMandelbrotPeriodColored(ctx, vp, sink, opts...)
	case StrategyJuliaInverse:
		return RenderJuliaInverseIteration(ctx, c, sink, opts...)
	case StrategyJuliaFilled:
		return RenderJuliaFilled(ctx, vp, c, sink, opts...)
	case StrategyJuliaEscape:
		return RenderJuliaEscapeColored(ctx, vp, c, sink, opts...)
	default:
		return fmt.Errorf("%w: unknown strategy %v", ErrInvalidOption, s)
	}
}
