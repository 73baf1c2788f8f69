package stream

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gogpu/fractal"
)

func intp(n int) *int { return &n }

func startServer(t *testing.T, opts Options) (*httptest.Server, <-chan struct{}) {
	t.Helper()
	h := NewHandler(opts)
	finished := make(chan struct{}, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
		finished <- struct{}{}
	}))
	t.Cleanup(srv.Close)
	return srv, finished
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, srv.URL, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	conn.SetReadLimit(-1)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

// roundTrip sends req and collects frames up to and including "done".
func roundTrip(t *testing.T, srv *httptest.Server, req Request) (batches [][]Point, progress []Frame, done Frame) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	if err := wsjson.Write(ctx, conn, req); err != nil {
		t.Fatalf("write request: %v", err)
	}
	for {
		var f Frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		switch f.Type {
		case FrameBatch:
			batches = append(batches, f.Points)
		case FrameProgress:
			progress = append(progress, f)
		case FrameDone:
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return batches, progress, f
		default:
			t.Fatalf("unexpected frame type %q", f.Type)
		}
	}
}

func TestHandler_StreamsMandelbrot(t *testing.T) {
	srv, _ := startServer(t, Options{BatchSize: 100})
	view := View{ReMin: -2, ImMin: -1.5, ReMax: 1, ImMax: 1.5, Width: 40, Height: 40}

	batches, progress, done := roundTrip(t, srv, Request{
		Strategy:      "mandelbrot",
		View:          view,
		MaxIterations: intp(50),
	})
	if done.Error != "" {
		t.Fatalf("done.Error = %q", done.Error)
	}

	want := 0
	err := fractal.RenderMandelbrot(context.Background(), view.Viewport(),
		fractal.SinkFunc(func(float64, float64, fractal.ColorRGB) { want++ }),
		fractal.WithMaxIterations(50))
	if err != nil {
		t.Fatalf("RenderMandelbrot() error: %v", err)
	}

	got := 0
	for _, b := range batches {
		if len(b) == 0 || len(b) > 100 {
			t.Errorf("batch of %d points, want 1..100", len(b))
		}
		for _, p := range b {
			if p.Color != fractal.Magenta.Hex() {
				t.Fatalf("point color %q, want magenta", p.Color)
			}
			if x, y := view.Viewport().ToPixel(p.Re, p.Im); x != p.X || y != p.Y {
				t.Fatalf("point pixel (%d, %d), want (%d, %d)", p.X, p.Y, x, y)
			}
		}
		got += len(b)
	}
	if got != want || done.Plotted != want {
		t.Errorf("streamed %d points (done says %d), want %d", got, done.Plotted, want)
	}

	if len(progress) != 4 {
		t.Fatalf("got %d progress frames, want 4", len(progress))
	}
	if last := progress[3]; last.Done != 4 || last.Total != 4 {
		t.Errorf("last progress = %d/%d, want 4/4", last.Done, last.Total)
	}
}

// reject sends req and returns the done frame and the close status that
// follows it.
func reject(t *testing.T, srv *httptest.Server, req Request) (Frame, websocket.StatusCode) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	if err := wsjson.Write(ctx, conn, req); err != nil {
		t.Fatalf("write request: %v", err)
	}
	var done Frame
	if err := wsjson.Read(ctx, conn, &done); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var next Frame
	err := wsjson.Read(ctx, conn, &next)
	if err == nil {
		t.Fatalf("unexpected %q frame after %q", next.Type, done.Type)
	}
	return done, websocket.CloseStatus(err)
}

func TestHandler_RejectsBadRequests(t *testing.T) {
	srv, _ := startServer(t, Options{MaxPixels: 100, MaxIterations: 1000, MaxPlotSteps: 500})
	good := View{ReMin: -1, ImMin: -1, ReMax: 1, ImMax: 1, Width: 10, Height: 10}

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown strategy", Request{Strategy: "buddhabrot", View: good}},
		{"inverted view", Request{Strategy: "mandelbrot", View: View{ReMin: 1, ImMin: -1, ReMax: -1, ImMax: 1, Width: 10, Height: 10}}},
		{"too many pixels", Request{Strategy: "mandelbrot", View: View{ReMin: -1, ImMin: -1, ReMax: 1, ImMax: 1, Width: 20, Height: 20}}},
		{"zero sweeps", Request{Strategy: "mandelbrot", View: good, Sweeps: intp(0)}},
		{"negative resolution", Request{Strategy: "julia-filled", View: good, Resolution: intp(-1)}},
		{"too many iterations", Request{Strategy: "mandelbrot", View: good, MaxIterations: intp(1001)}},
		{"huge iterations", Request{Strategy: "julia-escape", View: good, MaxIterations: intp(math.MaxInt)}},
		{"too many plot steps", Request{Strategy: "julia", View: good, PlotSteps: intp(501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, status := reject(t, srv, tt.req)
			if done.Type != FrameDone || done.Error == "" {
				t.Errorf("first frame = %+v, want a done frame with an error", done)
			}
			if done.Plotted != 0 {
				t.Errorf("rejected request plotted %d points", done.Plotted)
			}
			if status != websocket.StatusPolicyViolation {
				t.Errorf("close status = %v, want %v", status, websocket.StatusPolicyViolation)
			}
		})
	}
}

func TestHandler_AcceptsRequestsAtTheLimits(t *testing.T) {
	srv, _ := startServer(t, Options{MaxIterations: 40, MaxPlotSteps: 200})
	view := View{ReMin: -2, ImMin: -2, ReMax: 2, ImMax: 2, Width: 16, Height: 16}
	seed := uint64(1)

	for _, req := range []Request{
		{Strategy: "mandelbrot", View: view, MaxIterations: intp(40)},
		{Strategy: "julia", View: view, C: [2]float64{-1, 0}, PlotSteps: intp(200), Seed: &seed},
	} {
		_, _, done := roundTrip(t, srv, req)
		if done.Error != "" {
			t.Errorf("%s: done.Error = %q", req.Strategy, done.Error)
		}
	}
}

func TestHandler_SeedIsReproducible(t *testing.T) {
	srv, _ := startServer(t, Options{})
	seed := uint64(7)
	req := Request{
		Strategy:  "julia",
		View:      View{ReMin: -2, ImMin: -2, ReMax: 2, ImMax: 2, Width: 64, Height: 64},
		C:         [2]float64{-0.12, 0.75},
		PlotSteps: intp(300),
		Seed:      &seed,
	}

	a, _, doneA := roundTrip(t, srv, req)
	b, _, doneB := roundTrip(t, srv, req)
	if doneA.Plotted != 300 || doneB.Plotted != 300 {
		t.Fatalf("plotted %d and %d points, want 300", doneA.Plotted, doneB.Plotted)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("equal seeds streamed different points")
	}
}

func TestHandler_CloseCancelsRender(t *testing.T) {
	srv, finished := startServer(t, Options{BatchSize: 64})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	err := wsjson.Write(ctx, conn, Request{
		Strategy:  "julia",
		View:      View{ReMin: -2, ImMin: -2, ReMax: 2, ImMax: 2, Width: 64, Height: 64},
		PlotSteps: intp(1 << 30),
	})
	if err != nil {
		t.Fatalf("write request: %v", err)
	}

	var f Frame
	if err := wsjson.Read(ctx, conn, &f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if f.Type != FrameBatch {
		t.Fatalf("first frame %q, want batch", f.Type)
	}
	_ = conn.CloseNow()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("handler still rendering after the client went away")
	}
}
