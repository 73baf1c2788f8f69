// Command fractal renders Mandelbrot and Julia sets to PNG files.
//
//	fractal render mandelbrot -o mandelbrot.png
//	fractal render julia-escape --re=-0.8 --im=0.156 --label
//	fractal period --re=-1 --im=0
//	fractal explore pick-c:-0.12,0.75 plot-filled-julia zoom-mandelbrot:-2,-1.25,0.5,1.25
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alexflint/go-arg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/explorer"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/label"
)

type renderCmd struct {
	Strategy string    `arg:"positional,required" help:"mandelbrot, mandelbrot-period, julia, julia-filled or julia-escape"`
	Output   string    `arg:"-o,--output" default:"fractal.png" help:"output PNG file"`
	View     []float64 `arg:"--view" help:"plane rectangle: re_min im_min re_max im_max (default [-3, 3] on both axes)"`
	Re       float64   `arg:"--re" help:"real part of the Julia parameter c"`
	Im       float64   `arg:"--im" help:"imaginary part of the Julia parameter c"`
	Width    int       `arg:"--width" help:"image width in pixels (default from config)"`
	Height   int       `arg:"--height" help:"image height in pixels (default from config)"`
	Iter     int       `arg:"--iter" help:"iteration cap (default from config)"`
	Scale    int       `arg:"--scale" default:"1" help:"enlarge the output by an integer factor"`
	Label    bool      `arg:"--label" help:"stamp the parameters onto the image"`
}

type periodCmd struct {
	Re     float64 `arg:"--re" help:"real part of c"`
	Im     float64 `arg:"--im" help:"imaginary part of c"`
	Budget int     `arg:"--budget" default:"100000" help:"iteration budget of the period search"`
}

type exploreCmd struct {
	Commands []string `arg:"positional" help:"explorer commands, e.g. pick-c:-0.75,0.1, pick-pixel:300,200 or zoom-julia:-1,-1,1,1"`
	Output   string   `arg:"-o,--output" default:"explore" help:"prefix of the two output PNG files"`
}

type args struct {
	Config  string      `arg:"-c,--config" help:"TOML config file"`
	Verbose bool        `arg:"-v,--verbose" help:"log at debug level"`
	Render  *renderCmd  `arg:"subcommand:render" help:"render one strategy to a PNG"`
	Period  *periodCmd  `arg:"subcommand:period" help:"print the orbit period of c"`
	Explore *exploreCmd `arg:"subcommand:explore" help:"run explorer commands and save both canvases"`
}

func (args) Description() string {
	return "fractal computes Mandelbrot and Julia set renders"
}

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	cfg, err := config.Load(a.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	if a.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case a.Render != nil:
		err = runRender(ctx, cfg, a.Render)
	case a.Period != nil:
		err = runPeriod(a.Period)
	case a.Explore != nil:
		err = runExplore(ctx, cfg, a.Explore, os.Stdout)
	}
	if err != nil {
		log.Error("fractal failed", "err", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

func runRender(ctx context.Context, cfg config.Config, cmd *renderCmd) error {
	strategy, err := fractal.ParseStrategy(cmd.Strategy)
	if err != nil {
		return err
	}

	w, h := cfg.Explorer.Width, cfg.Explorer.Height
	if cmd.Width > 0 {
		w = cmd.Width
	}
	if cmd.Height > 0 {
		h = cmd.Height
	}
	vp := fractal.DefaultView(w, h)
	if len(cmd.View) > 0 {
		if len(cmd.View) != 4 {
			return fmt.Errorf("--view takes 4 values, got %d", len(cmd.View))
		}
		if vp, err = fractal.NewViewport(cmd.View[0], cmd.View[1], cmd.View[2], cmd.View[3], w, h); err != nil {
			return err
		}
	}

	bg, fg, err := cfg.Explorer.Colors()
	if err != nil {
		return err
	}
	pm, err := fractal.NewPixmap(vp)
	if err != nil {
		return err
	}
	pm.Clear(bg)

	opts := append(cfg.Render.Options(), fractal.WithColor(fg), fractal.WithProgress(logProgress(strategy)))
	if cmd.Iter > 0 {
		opts = append(opts, fractal.WithMaxIterations(cmd.Iter))
	}

	c := complex(cmd.Re, cmd.Im)
	plotted := 0
	counter := fractal.SinkFunc(func(re, im float64, col fractal.ColorRGB) {
		plotted++
		pm.Plot(re, im, col)
	})

	start := time.Now()
	if err := fractal.Render(ctx, strategy, vp, c, counter, opts...); err != nil {
		return err
	}
	elapsed := time.Since(start)

	img := pm.Scaled(cmd.Scale)
	if cmd.Label {
		lines := []string{strategy.String(), vp.String()}
		if strategy.Julia() {
			lines = append(lines, explorer.State{C: c}.CCaption())
		}
		label.Draw(img, lines, fractal.RGB(0, 0, 0), bg)
	}
	if err := savePNG(cmd.Output, img); err != nil {
		return err
	}

	pr := message.NewPrinter(language.English)
	pr.Printf("%s: %d of %d pixels plotted in %v -> %s\n",
		strategy, plotted, vp.Width*vp.Height, elapsed.Round(time.Millisecond), cmd.Output)
	return nil
}

func runPeriod(cmd *periodCmd) error {
	st := explorer.State{C: complex(cmd.Re, cmd.Im)}
	st.Period, st.HasPeriod = fractal.ComputePeriod(st.C, cmd.Budget), true
	fmt.Printf("%s\n%s\n", st.CCaption(), st.PeriodCaption())
	return nil
}

func logProgress(s fractal.Strategy) fractal.ProgressFunc {
	return func(done, total int) {
		fractal.Logger().Debug("progress", "strategy", s.String(), "done", done, "total", total)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
