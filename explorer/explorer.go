// Package explorer holds the state of the interactive Mandelbrot/Julia
// explorer and turns control panel commands into renders on two canvases.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gogpu/fractal"
)

var (
	// ErrIterationsRange is returned when the iteration slider leaves [0, 500].
	ErrIterationsRange = errors.New("explorer: iterations out of range")

	// ErrUnknownCommand is returned for a command Do does not know.
	ErrUnknownCommand = errors.New("explorer: unknown command")

	// ErrInvalidPoint is returned when a command operand is NaN or infinite.
	ErrInvalidPoint = errors.New("explorer: invalid point")
)

// Canvas is a drawing surface bound to a viewport. *fractal.Pixmap
// satisfies it.
type Canvas interface {
	fractal.Sink
	Clear(c fractal.ColorRGB)
	Viewport() fractal.Viewport
	SetViewport(v fractal.Viewport) error
}

// Explorer owns the explorer state and its two canvases. Commands are
// serialized; a render holds the explorer until it returns.
type Explorer struct {
	mu         sync.Mutex
	state      State
	mandelbrot Canvas
	julia      Canvas
	background fractal.ColorRGB
	color      fractal.ColorRGB
	extra      []fractal.RenderOption
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithBackground sets the color canvases are cleared to. Default White.
func WithBackground(c fractal.ColorRGB) Option {
	return func(e *Explorer) {
		e.background = c
	}
}

// WithColor sets the fixed drawing color. Default Magenta.
func WithColor(c fractal.ColorRGB) Option {
	return func(e *Explorer) {
		e.color = c
	}
}

// WithIterations sets the initial slider value.
func WithIterations(n int) Option {
	return func(e *Explorer) {
		e.state.Iterations = n
	}
}

// WithRenderOptions appends engine options to every render, after the
// explorer's own, so they take precedence.
func WithRenderOptions(opts ...fractal.RenderOption) Option {
	return func(e *Explorer) {
		e.extra = append(e.extra, opts...)
	}
}

// New creates an explorer drawing on the given canvases. The canvases are
// rebound to the default [-3, 3] view and cleared; nothing is rendered
// until the first command.
func New(mandelbrot, julia Canvas, opts ...Option) (*Explorer, error) {
	e := &Explorer{
		state:      NewState(),
		mandelbrot: mandelbrot,
		julia:      julia,
		background: fractal.White,
		color:      fractal.Magenta,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := checkIterations(e.state.Iterations); err != nil {
		return nil, err
	}

	var err error
	if e.state.Mandelbrot, err = e.resetView(mandelbrot); err != nil {
		return nil, fmt.Errorf("explorer: mandelbrot canvas: %w", err)
	}
	if e.state.Julia, err = e.resetView(julia); err != nil {
		return nil, fmt.Errorf("explorer: julia canvas: %w", err)
	}
	return e, nil
}

// State returns a snapshot of the current state.
func (e *Explorer) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetIterations moves the iteration slider. Values outside [0, 500] are
// rejected with ErrIterationsRange and leave the state unchanged.
func (e *Explorer) SetIterations(n int) error {
	if err := checkIterations(n); err != nil {
		return err
	}
	e.mu.Lock()
	e.state.Iterations = n
	e.mu.Unlock()
	return nil
}

func checkIterations(n int) error {
	if n < MinIterations || n > MaxIterations {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrIterationsRange, n, MinIterations, MaxIterations)
	}
	return nil
}

// Do runs one control panel command. Plot and zoom commands clear the
// affected canvas and render it before returning; a cancelled ctx stops
// the render and leaves the canvas partially drawn.
func (e *Explorer) Do(ctx context.Context, cmd Command, args Args) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := fractal.Logger().With("command", cmd.String())
	log.Debug("explorer: command")

	var err error
	switch cmd {
	case PlotMandelbrot:
		e.state.MandelbrotMode = MandelbrotPlain
		err = e.redrawMandelbrot(ctx)
	case PlotPeriodMandelbrot:
		e.state.MandelbrotMode = MandelbrotPeriod
		err = e.redrawMandelbrot(ctx)
	case PlotJulia:
		e.state.JuliaMode = JuliaInverse
		err = e.redrawJulia(ctx)
	case PlotFilledJulia:
		e.state.JuliaMode = JuliaFilled
		err = e.redrawJulia(ctx)
	case PlotJuliaEscape:
		e.state.JuliaMode = JuliaEscape
		err = e.redrawJulia(ctx)

	case ZoomMandelbrot:
		if err = e.zoom(e.mandelbrot, &e.state.Mandelbrot, args); err == nil {
			err = e.redrawMandelbrot(ctx)
		}
	case ZoomOutMandelbrot:
		if e.state.Mandelbrot, err = e.resetView(e.mandelbrot); err == nil {
			err = e.redrawMandelbrot(ctx)
		}
	case ZoomJulia:
		if err = e.zoom(e.julia, &e.state.Julia, args); err == nil {
			err = e.redrawJulia(ctx)
		}
	case ZoomOutJulia:
		if e.state.Julia, err = e.resetView(e.julia); err == nil {
			err = e.redrawJulia(ctx)
		}

	case PickC, SetC:
		p := args.Point
		if cmd == PickC && args.Pixel != nil {
			vp := e.state.Mandelbrot
			if !args.Pixel.In(image.Rect(0, 0, vp.Width, vp.Height)) {
				return fmt.Errorf("%w: pixel %v outside %dx%d canvas", ErrInvalidPoint, *args.Pixel, vp.Width, vp.Height)
			}
			p = vp.PointAt(args.Pixel.X, args.Pixel.Y)
		}
		if !finite(p) {
			return fmt.Errorf("%w: %v", ErrInvalidPoint, p)
		}
		e.state.C = p
		log.Info("explorer: parameter set", "c", e.state.CCaption())
	case GetPeriod:
		e.state.Period = fractal.ComputePeriod(e.state.C, DefaultPeriodBudget)
		e.state.HasPeriod = true
		log.Info("explorer: period", "c", e.state.C, "period", int(e.state.Period))
	case Clear:
		e.mandelbrot.Clear(e.background)
		e.julia.Clear(e.background)
		e.state.Period, e.state.HasPeriod = fractal.NoPeriod, false

	default:
		return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
	if err != nil {
		return fmt.Errorf("explorer: %s: %w", cmd, err)
	}
	return nil
}

// zoom rebinds canvas to the box spanned by the corners in args.
func (e *Explorer) zoom(canvas Canvas, view *fractal.Viewport, args Args) error {
	if !finite(args.Corner1) || !finite(args.Corner2) {
		return fmt.Errorf("%w: zoom box %v, %v", ErrInvalidPoint, args.Corner1, args.Corner2)
	}
	next, err := view.Zoom(args.Corner1, args.Corner2)
	if err != nil {
		return err
	}
	if err := canvas.SetViewport(next); err != nil {
		return err
	}
	*view = canvas.Viewport()
	return nil
}

// resetView rebinds canvas to the default view at its own pixel size.
func (e *Explorer) resetView(canvas Canvas) (fractal.Viewport, error) {
	cur := canvas.Viewport()
	if err := canvas.SetViewport(fractal.DefaultView(cur.Width, cur.Height)); err != nil {
		return fractal.Viewport{}, err
	}
	canvas.Clear(e.background)
	return canvas.Viewport(), nil
}

func (e *Explorer) renderOptions() []fractal.RenderOption {
	opts := []fractal.RenderOption{
		fractal.WithMaxIterations(e.state.Iterations),
		fractal.WithColor(e.color),
	}
	return append(opts, e.extra...)
}

func (e *Explorer) redrawMandelbrot(ctx context.Context) error {
	e.mandelbrot.Clear(e.background)
	vp := e.state.Mandelbrot
	switch e.state.MandelbrotMode {
	case MandelbrotPeriod:
		return fractal.RenderMandelbrotPeriodColored(ctx, vp, e.mandelbrot, e.renderOptions()...)
	default:
		return fractal.RenderMandelbrot(ctx, vp, e.mandelbrot, e.renderOptions()...)
	}
}

func (e *Explorer) redrawJulia(ctx context.Context) error {
	e.julia.Clear(e.background)
	vp, c := e.state.Julia, e.state.C
	switch e.state.JuliaMode {
	case JuliaFilled:
		return fractal.RenderJuliaFilled(ctx, vp, c, e.julia, e.renderOptions()...)
	case JuliaEscape:
		return fractal.RenderJuliaEscapeColored(ctx, vp, c, e.julia, e.renderOptions()...)
	default:
		return fractal.RenderJuliaInverseIteration(ctx, c, e.julia, e.renderOptions()...)
	}
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}
