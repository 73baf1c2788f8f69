package fractal

// Sink receives plotted points. Coordinates are in the complex plane; the
// sink owns the translation to pixels and the drawing itself.
//
// The engine calls Plot from the goroutine that issued the render and never
// concurrently, but two renders must not share a sink without external
// synchronization.
type Sink interface {
	Plot(re, im float64, c ColorRGB)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(re, im float64, c ColorRGB)

// Plot calls fn(re, im, c).
func (fn SinkFunc) Plot(re, im float64, c ColorRGB) {
	fn(re, im, c)
}

// countingSink counts the points forwarded to the wrapped sink.
type countingSink struct {
	Sink
	n int
}

func (s *countingSink) Plot(re, im float64, c ColorRGB) {
	s.n++
	s.Sink.Plot(re, im, c)
}
