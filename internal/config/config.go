// Package config loads explorer, render and server settings from built-in
// defaults, an optional TOML file and FRACTAL_* environment variables, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/explorer"
	"github.com/gogpu/fractal/internal/stream"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates sections: FRACTAL_RENDER__MAX_ITERATIONS=300.
const EnvPrefix = "FRACTAL_"

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full configuration.
type Config struct {
	Explorer Explorer `koanf:"explorer"`
	Render   Render   `koanf:"render"`
	Server   Server   `koanf:"server"`
	LogLevel string   `koanf:"log_level"`
}

// Explorer holds the canvas settings.
type Explorer struct {
	Width      int    `koanf:"width"`
	Height     int    `koanf:"height"`
	Iterations int    `koanf:"iterations"`
	Background string `koanf:"background"`
	Color      string `koanf:"color"`
}

// Render holds engine options. Zero Sweeps keeps each strategy's default.
type Render struct {
	MaxIterations int     `koanf:"max_iterations"`
	EscapeRadius  float64 `koanf:"escape_radius"`
	Sweeps        int     `koanf:"sweeps"`
	Resolution    int     `koanf:"resolution"`
	PeriodBudget  int     `koanf:"period_budget"`
	Transient     int     `koanf:"transient"`
	PlotSteps     int     `koanf:"plot_steps"`
}

// Server holds the streaming server settings.
type Server struct {
	Addr           string   `koanf:"addr"`
	OriginPatterns []string `koanf:"origin_patterns"`
	BatchSize      int      `koanf:"batch_size"`
	MaxPixels      int      `koanf:"max_pixels"`
	MaxIterations  int      `koanf:"max_iterations"`
	MaxPlotSteps   int      `koanf:"max_plot_steps"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Explorer: Explorer{
			Width:      explorer.DefaultSize,
			Height:     explorer.DefaultSize,
			Iterations: explorer.DefaultIterations,
			Background: fractal.White.Hex(),
			Color:      fractal.Magenta.Hex(),
		},
		Render: Render{
			MaxIterations: fractal.DefaultMaxIterations,
			EscapeRadius:  fractal.DefaultEscapeRadius,
			Resolution:    1,
			PeriodBudget:  fractal.DefaultColoredPeriodBudget,
			Transient:     fractal.DefaultTransient,
			PlotSteps:     fractal.DefaultPlotSteps,
		},
		Server: Server{
			Addr:          "localhost:8650",
			BatchSize:     stream.DefaultBatchSize,
			MaxPixels:     stream.DefaultMaxPixels,
			MaxIterations: stream.DefaultMaxIterations,
			MaxPlotSteps:  stream.DefaultMaxPlotSteps,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps FRACTAL_RENDER__MAX_ITERATIONS to render.max_iterations.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks ranges the engine would reject later with a less useful
// message.
func (c Config) Validate() error {
	if c.Explorer.Width <= 0 || c.Explorer.Height <= 0 {
		return fmt.Errorf("%w: explorer size %dx%d", ErrInvalid, c.Explorer.Width, c.Explorer.Height)
	}
	if c.Explorer.Iterations < explorer.MinIterations || c.Explorer.Iterations > explorer.MaxIterations {
		return fmt.Errorf("%w: explorer.iterations %d", ErrInvalid, c.Explorer.Iterations)
	}
	if _, _, err := c.Explorer.Colors(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Server.BatchSize < 1 {
		return fmt.Errorf("%w: server.batch_size %d", ErrInvalid, c.Server.BatchSize)
	}
	if c.Server.MaxIterations < 1 || c.Server.MaxPlotSteps < 1 {
		return fmt.Errorf("%w: server limits %d iterations, %d plot steps",
			ErrInvalid, c.Server.MaxIterations, c.Server.MaxPlotSteps)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Colors parses the background and drawing colors.
func (e Explorer) Colors() (background, color fractal.ColorRGB, err error) {
	if background, err = fractal.ParseColor(e.Background); err != nil {
		return
	}
	color, err = fractal.ParseColor(e.Color)
	return
}

// Options converts the render section to engine options.
func (r Render) Options() []fractal.RenderOption {
	return append([]fractal.RenderOption{fractal.WithMaxIterations(r.MaxIterations)}, r.ExplorerOptions()...)
}

// ExplorerOptions is Options without the iteration cap, which the explorer
// takes from its slider.
func (r Render) ExplorerOptions() []fractal.RenderOption {
	opts := []fractal.RenderOption{
		fractal.WithEscapeRadius(r.EscapeRadius),
		fractal.WithResolution(r.Resolution),
		fractal.WithPeriodBudget(r.PeriodBudget),
		fractal.WithTransient(r.Transient),
		fractal.WithPlotSteps(r.PlotSteps),
	}
	if r.Sweeps > 0 {
		opts = append(opts, fractal.WithSweeps(r.Sweeps))
	}
	return opts
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
