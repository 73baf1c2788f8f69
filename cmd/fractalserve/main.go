// Command fractalserve streams fractal renders to websocket clients.
//
// Connect to ws://ADDR/ws, send a JSON request such as
//
//	{"strategy": "julia-escape", "c": [-0.8, 0.156],
//	 "view": {"re_min": -2, "im_min": -2, "re_max": 2, "im_max": 2, "width": 400, "height": 400}}
//
// and read batch, progress and done frames until the server closes the
// connection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/stream"
)

type args struct {
	Config  string `arg:"-c,--config" help:"TOML config file"`
	Addr    string `arg:"-a,--addr" help:"listen address (default from config)"`
	Verbose bool   `arg:"-v,--verbose" help:"log at debug level"`
}

func (args) Description() string {
	return "fractalserve streams Mandelbrot and Julia renders over websockets"
}

func main() {
	var a args
	arg.MustParse(&a)

	if err := run(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(a args) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	if a.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(log)

	addr := cfg.Server.Addr
	if a.Addr != "" {
		addr = a.Addr
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", stream.NewHandler(stream.Options{
		OriginPatterns: cfg.Server.OriginPatterns,
		BatchSize:      cfg.Server.BatchSize,
		MaxPixels:      cfg.Server.MaxPixels,
		MaxIterations:  cfg.Server.MaxIterations,
		MaxPlotSteps:   cfg.Server.MaxPlotSteps,
		Render:         cfg.Render.Options(),
		Logger:         log,
	}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "url", "ws://"+addr+"/ws")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
