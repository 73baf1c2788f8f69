package stream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gogpu/fractal"
)

// Defaults of Options.
const (
	DefaultBatchSize     = 4096
	DefaultMaxPixels     = 4096 * 4096
	DefaultMaxIterations = 1 << 16
	DefaultMaxPlotSteps  = 1 << 20
)

// requestTimeout bounds the wait for the client's request.
const requestTimeout = 10 * time.Second

// Options configures a Handler.
type Options struct {
	// OriginPatterns lists extra origins allowed to connect. Same-origin
	// requests and non-browser clients are always accepted.
	OriginPatterns []string

	// BatchSize is the maximum number of points per batch frame.
	BatchSize int

	// MaxPixels caps Width*Height of a requested view.
	MaxPixels int

	// MaxIterations caps a request's max_iterations.
	MaxIterations int

	// MaxPlotSteps caps a request's plot_steps.
	MaxPlotSteps int

	// Render options applied to every render before the request's own.
	Render []fractal.RenderOption

	// Logger defaults to fractal.Logger() at request time.
	Logger *slog.Logger
}

// Handler upgrades requests to websockets and streams one render per
// connection.
type Handler struct {
	opts Options
}

var _ http.Handler = (*Handler)(nil)

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.MaxPlotSteps <= 0 {
		opts.MaxPlotSteps = DefaultMaxPlotSteps
	}
	return &Handler{opts: opts}
}

func (h *Handler) logger() *slog.Logger {
	if h.opts.Logger != nil {
		return h.opts.Logger
	}
	return fractal.Logger()
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger().With("remote", r.RemoteAddr)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		log.Warn("stream: accept failed", "err", err)
		return
	}
	defer func() {
		_ = conn.CloseNow()
	}()

	var req Request
	readCtx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	err = wsjson.Read(readCtx, conn, &req)
	cancel()
	if err != nil {
		log.Warn("stream: read request", "err", err)
		return
	}

	// From here on the only inbound traffic is control frames; a close or
	// a dropped connection cancels ctx.
	ctx := conn.CloseRead(r.Context())

	j, err := req.resolve(h.opts)
	if err != nil {
		log.Info("stream: rejected request", "strategy", req.Strategy, "err", err)
		_ = wsjson.Write(ctx, conn, Frame{Type: FrameDone, Error: err.Error()})
		_ = conn.Close(websocket.StatusPolicyViolation, "invalid request")
		return
	}

	log = log.With("strategy", j.strategy.String())
	start := time.Now()
	plotted, err := h.stream(ctx, conn, j)

	var werr *writeError
	switch {
	case errors.As(err, &werr):
		log.Info("stream: client gone", "plotted", plotted, "err", werr.err)
		return
	case err != nil && ctx.Err() != nil:
		log.Info("stream: render cancelled", "plotted", plotted)
		return
	}

	done := Frame{Type: FrameDone, Plotted: plotted}
	if err != nil {
		done.Error = err.Error()
		log.Warn("stream: render failed", "err", err)
	}
	if err := wsjson.Write(ctx, conn, done); err != nil {
		log.Info("stream: write done", "err", err)
		return
	}
	log.Debug("stream: render sent", "plotted", plotted, "elapsed", time.Since(start))
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// stream runs j and forwards its points. It returns the number of points
// sent.
func (h *Handler) stream(ctx context.Context, conn *websocket.Conn, j job) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := &batcher{
		ctx:    ctx,
		cancel: cancel,
		conn:   conn,
		view:   j.view,
		buf:    make([]Point, 0, h.opts.BatchSize),
	}

	opts := make([]fractal.RenderOption, 0, len(h.opts.Render)+len(j.opts)+1)
	opts = append(opts, h.opts.Render...)
	opts = append(opts, j.opts...)
	opts = append(opts, fractal.WithProgress(b.progress))

	err := fractal.Render(ctx, j.strategy, j.view, j.c, b, opts...)
	if b.err != nil {
		return b.sent, b.err
	}
	if err != nil {
		return b.sent, err
	}
	b.flush()
	return b.sent, b.err
}

// writeError marks a failed write to the client.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return "stream: write: " + e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// batcher is the Sink of a streamed render. The first failed write cancels
// the render.
type batcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *websocket.Conn
	view   fractal.Viewport
	buf    []Point
	sent   int
	err    error
}

func (b *batcher) Plot(re, im float64, c fractal.ColorRGB) {
	if b.err != nil {
		return
	}
	x, y := b.view.ToPixel(re, im)
	b.buf = append(b.buf, Point{Re: re, Im: im, X: x, Y: y, Color: c.Hex()})
	if len(b.buf) == cap(b.buf) {
		b.flush()
	}
}

func (b *batcher) flush() {
	if b.err != nil || len(b.buf) == 0 {
		return
	}
	b.write(Frame{Type: FrameBatch, Points: b.buf})
	if b.err == nil {
		b.sent += len(b.buf)
	}
	b.buf = b.buf[:0]
}

func (b *batcher) progress(done, total int) {
	b.flush()
	if b.err == nil {
		b.write(Frame{Type: FrameProgress, Done: done, Total: total})
	}
}

func (b *batcher) write(f Frame) {
	if err := wsjson.Write(b.ctx, b.conn, f); err != nil {
		b.err = &writeError{err: err}
		b.cancel()
	}
}
