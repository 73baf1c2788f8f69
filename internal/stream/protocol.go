// Package stream serves renders over a websocket.
//
// A client opens a connection, sends one JSON Request and receives a
// sequence of JSON Frames: "batch" frames carrying plotted points,
// "progress" frames after each sweep, and a final "done" frame. Closing the
// connection cancels the render.
//
// Batch frames can be much larger than the default 32 KiB read limit of
// most websocket clients; raise it before reading.
package stream

import (
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/fractal"
)

// Frame types.
const (
	FrameBatch    = "batch"
	FrameProgress = "progress"
	FrameDone     = "done"
)

// View is the wire form of fractal.Viewport.
type View struct {
	ReMin  float64 `json:"re_min"`
	ImMin  float64 `json:"im_min"`
	ReMax  float64 `json:"re_max"`
	ImMax  float64 `json:"im_max"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// Viewport converts the view.
func (v View) Viewport() fractal.Viewport {
	return fractal.Viewport{
		ReMin: v.ReMin, ImMin: v.ImMin,
		ReMax: v.ReMax, ImMax: v.ImMax,
		Width: v.Width, Height: v.Height,
	}
}

// Request asks for one render. Optional fields left out keep the server's
// defaults.
type Request struct {
	Strategy string     `json:"strategy"`
	View     View       `json:"view"`
	C        [2]float64 `json:"c"`

	MaxIterations *int    `json:"max_iterations,omitempty"`
	Sweeps        *int    `json:"sweeps,omitempty"`
	Resolution    *int    `json:"resolution,omitempty"`
	PlotSteps     *int    `json:"plot_steps,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
}

// Point is one plotted point. X and Y are its pixel in the request view.
type Point struct {
	Re    float64 `json:"re"`
	Im    float64 `json:"im"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Color string  `json:"color"`
}

// Frame is a server message.
type Frame struct {
	Type    string  `json:"type"`
	Points  []Point `json:"points,omitempty"`
	Done    int     `json:"done,omitempty"`
	Total   int     `json:"total,omitempty"`
	Plotted int     `json:"plotted,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// job is a validated request.
type job struct {
	strategy fractal.Strategy
	view     fractal.Viewport
	c        complex128
	opts     []fractal.RenderOption
}

// resolve validates r against the limits and base render options of o and
// turns its optional fields into render options.
func (r Request) resolve(o Options) (job, error) {
	s, err := fractal.ParseStrategy(r.Strategy)
	if err != nil {
		return job{}, err
	}
	vp := r.View.Viewport()
	if err := vp.Validate(); err != nil {
		return job{}, err
	}
	if o.MaxPixels > 0 && vp.Width*vp.Height > o.MaxPixels {
		return job{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", fractal.ErrInvalidViewport, vp.Width, vp.Height, o.MaxPixels)
	}
	if r.MaxIterations != nil && o.MaxIterations > 0 && *r.MaxIterations > o.MaxIterations {
		return job{}, fmt.Errorf("%w: max_iterations %d exceeds %d", fractal.ErrInvalidOption, *r.MaxIterations, o.MaxIterations)
	}
	if r.PlotSteps != nil && o.MaxPlotSteps > 0 && *r.PlotSteps > o.MaxPlotSteps {
		return job{}, fmt.Errorf("%w: plot_steps %d exceeds %d", fractal.ErrInvalidOption, *r.PlotSteps, o.MaxPlotSteps)
	}

	var opts []fractal.RenderOption
	if r.MaxIterations != nil {
		opts = append(opts, fractal.WithMaxIterations(*r.MaxIterations))
	}
	if r.Sweeps != nil {
		opts = append(opts, fractal.WithSweeps(*r.Sweeps))
	}
	if r.Resolution != nil {
		opts = append(opts, fractal.WithResolution(*r.Resolution))
	}
	if r.PlotSteps != nil {
		opts = append(opts, fractal.WithPlotSteps(*r.PlotSteps))
	}
	if r.Seed != nil {
		opts = append(opts, fractal.WithRand(rand.New(rand.NewPCG(*r.Seed, *r.Seed))))
	}
	if err := fractal.CheckOptions(append(o.Render[:len(o.Render):len(o.Render)], opts...)...); err != nil {
		return job{}, err
	}
	return job{strategy: s, view: vp, c: complex(r.C[0], r.C[1]), opts: opts}, nil
}
