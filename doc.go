// Package fractal computes Mandelbrot and Julia set renders.
//
// # Overview
//
// fractal is the computation engine of an interactive Mandelbrot/Julia
// explorer. It knows nothing about windows or widgets: a render walks a
// region of the complex plane and hands (re, im, color) triples to a Sink
// supplied by the caller.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	vp := fractal.DefaultView(650, 650)
//	pm, _ := fractal.NewPixmap(vp)
//	pm.Clear(fractal.White)
//
//	if err := fractal.RenderMandelbrot(ctx, vp, pm); err != nil {
//	    log.Fatal(err)
//	}
//	pm.SavePNG("mandelbrot.png")
//
// # Strategies
//
//   - RenderMandelbrot: members of the Mandelbrot set in one color
//   - RenderMandelbrotPeriodColored: members colored by orbit period
//   - RenderJuliaInverseIteration: Monte Carlo Julia boundary
//   - RenderJuliaFilled: bounded orbits of z² + c in one color
//   - RenderJuliaEscapeColored: escaping orbits colored by escape time
//
// The scanner-based strategies visit the grid in interlaced sweeps (see
// Scanner) so that a sink flushed between sweeps fills in evenly. Render
// dispatches on a Strategy value, as parsed from a command line or a wire
// request by ParseStrategy.
//
// # Sinks
//
// Pixmap is a ready-made Sink that maps plane points to the pixels of its
// Viewport. It is also a draw.Image, so overlays can be drawn onto it before
// SavePNG. Any func(re, im float64, c ColorRGB) can be used through SinkFunc.
//
// # Precision
//
// All arithmetic is complex128. Deep zooms hit the limits of float64.
//
// # Concurrency
//
// A render is synchronous and single-threaded. The context passed to every
// render is checked before each scan row and periodically inside long
// orbits, so even a huge iteration cap stops promptly. The engine keeps no
// state between calls.
package fractal
