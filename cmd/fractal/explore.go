package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/explorer"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/label"
)

// Pseudo-commands: iterations moves the slider, pick-pixel is pick-c by
// clicking a pixel of the Mandelbrot canvas.
const (
	iterationsStep = "iterations"
	pickPixelStep  = "pick-pixel"
)

// step is one parsed explorer command line argument.
type step struct {
	cmd        explorer.Command
	args       explorer.Args
	iterations int
	slider     bool
}

// parseStep parses "name" or "name:v1,v2,...". pick-c and set-c take
// re,im; pick-pixel takes x,y; zoom commands take re1,im1,re2,im2;
// iterations takes n.
func parseStep(s string) (step, error) {
	name, rest, _ := strings.Cut(s, ":")
	var vals []float64
	if rest != "" {
		for _, f := range strings.Split(rest, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return step{}, fmt.Errorf("%s: %w", s, err)
			}
			vals = append(vals, v)
		}
	}

	if name == iterationsStep {
		if len(vals) != 1 {
			return step{}, fmt.Errorf("%s: want iterations:n", s)
		}
		return step{iterations: int(vals[0]), slider: true}, nil
	}
	if name == pickPixelStep {
		if len(vals) != 2 {
			return step{}, fmt.Errorf("%s: want pick-pixel:x,y", s)
		}
		px := image.Pt(int(vals[0]), int(vals[1]))
		return step{cmd: explorer.PickC, args: explorer.Args{Pixel: &px}}, nil
	}

	cmd, err := explorer.ParseCommand(name)
	if err != nil {
		return step{}, err
	}
	st := step{cmd: cmd}
	switch cmd {
	case explorer.PickC, explorer.SetC:
		if len(vals) != 2 {
			return step{}, fmt.Errorf("%s: want %s:re,im", s, name)
		}
		st.args.Point = complex(vals[0], vals[1])
	case explorer.ZoomMandelbrot, explorer.ZoomJulia:
		if len(vals) != 4 {
			return step{}, fmt.Errorf("%s: want %s:re1,im1,re2,im2", s, name)
		}
		st.args.Corner1 = complex(vals[0], vals[1])
		st.args.Corner2 = complex(vals[2], vals[3])
	default:
		if len(vals) != 0 {
			return step{}, fmt.Errorf("%s: %s takes no values", s, name)
		}
	}
	return st, nil
}

// runExplore replays the steps on a fresh explorer and saves both canvases,
// printing the Mandelbrot path and then the Julia path to w.
func runExplore(ctx context.Context, cfg config.Config, cmd *exploreCmd, w io.Writer) error {
	steps := make([]step, 0, len(cmd.Commands))
	for _, s := range cmd.Commands {
		st, err := parseStep(s)
		if err != nil {
			return err
		}
		steps = append(steps, st)
	}

	bg, fg, err := cfg.Explorer.Colors()
	if err != nil {
		return err
	}
	view := fractal.DefaultView(cfg.Explorer.Width, cfg.Explorer.Height)
	mb, err := fractal.NewPixmap(view)
	if err != nil {
		return err
	}
	js, err := fractal.NewPixmap(view)
	if err != nil {
		return err
	}

	e, err := explorer.New(mb, js,
		explorer.WithBackground(bg),
		explorer.WithColor(fg),
		explorer.WithIterations(cfg.Explorer.Iterations),
		explorer.WithRenderOptions(cfg.Render.ExplorerOptions()...),
	)
	if err != nil {
		return err
	}

	// Opening the explorer draws both sets.
	for _, c := range []explorer.Command{explorer.PlotMandelbrot, explorer.PlotJulia} {
		if err := e.Do(ctx, c, explorer.Args{}); err != nil {
			return err
		}
	}
	for _, st := range steps {
		if st.slider {
			err = e.SetIterations(st.iterations)
		} else {
			err = e.Do(ctx, st.cmd, st.args)
		}
		if err != nil {
			return err
		}
	}

	state := e.State()
	black := fractal.RGB(0, 0, 0)
	label.Draw(mb, []string{state.CCaption(), state.PeriodCaption()}, black, bg)
	label.Draw(js, []string{state.JuliaMode.String() + " julia", state.CCaption()}, black, bg)

	outputs := []struct {
		name string
		pm   *fractal.Pixmap
	}{
		{"mandelbrot", mb},
		{"julia", js},
	}
	for _, out := range outputs {
		path := fmt.Sprintf("%s-%s.png", cmd.Output, out.name)
		if err := out.pm.SavePNG(path); err != nil {
			return err
		}
		fmt.Fprintln(w, path)
	}
	return nil
}
