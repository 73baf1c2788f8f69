package fractal

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorRGB is an opaque 8-bit color produced by the color mapping functions.
type ColorRGB struct {
	R, G, B uint8
}

// Verify at compile time that ColorRGB implements color.Color.
var _ color.Color = ColorRGB{}

// RGB creates a color from 8-bit channel values.
func RGB(r, g, b uint8) ColorRGB {
	return ColorRGB{R: r, G: g, B: b}
}

// RGBA implements the color.Color interface. The alpha channel is always opaque.
func (c ColorRGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Color converts ColorRGB to a color.NRGBA.
func (c ColorRGB) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor converts a standard color.Color to ColorRGB, dropping alpha.
// Fully transparent colors convert to black.
func FromColor(c color.Color) ColorRGB {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ColorRGB{}
	}
	r, g, b := cf.RGB255()
	return ColorRGB{R: r, G: g, B: b}
}

// Hex returns the "#rrggbb" representation of the color.
func (c ColorRGB) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c ColorRGB) String() string {
	return c.Hex()
}

// ParseHex parses "#rgb" or "#rrggbb"; the leading '#' is optional.
func ParseHex(s string) (ColorRGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return ColorRGB{}, fmt.Errorf("fractal: parse color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return ColorRGB{R: r, G: g, B: b}, nil
}

// Lerp interpolates channel-wise between c (t=0) and other (t=1),
// rounding to the nearest integer. t is clamped to [0, 1].
func (c ColorRGB) Lerp(other ColorRGB, t float64) ColorRGB {
	t = clamp01(t)
	return ColorRGB{
		R: lerpChannel(c.R, other.R, t),
		G: lerpChannel(c.G, other.G, t),
		B: lerpChannel(c.B, other.B, t),
	}
}

func (c ColorRGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// lerpChannel computes round((1-t)*a + t*b).
func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(clamp255(math.Round((1-t)*float64(a) + t*float64(b))))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
