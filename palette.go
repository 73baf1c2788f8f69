package fractal

import (
	"math"
	"strings"
)

// Explorer palette. Plain renders default to Magenta.
var (
	Purple      = RGB(41, 20, 57)
	Magenta     = RGB(142, 69, 102)
	Orange      = RGB(255, 159, 64)
	Blue        = RGB(39, 81, 128)
	White       = RGB(243, 240, 220)
	Red         = RGB(188, 79, 63)
	DeeperWhite = RGB(227, 226, 185)
)

// paletteNames maps the names accepted by ParseColor.
var paletteNames = map[string]ColorRGB{
	"purple":       Purple,
	"magenta":      Magenta,
	"orange":       Orange,
	"blue":         Blue,
	"white":        White,
	"red":          Red,
	"deeper-white": DeeperWhite,
}

// ParseColor accepts a palette name ("magenta", "deeper-white", ...) in any
// case, or a hex color as understood by ParseHex.
func ParseColor(s string) (ColorRGB, error) {
	if c, ok := paletteNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return ParseHex(s)
}

// Gradient endpoints.
var (
	// Sentinel is returned for NoPeriod and for an escape count of -1.
	Sentinel = RGB(0, 0, 255)

	periodLow  = RGB(255, 0, 0)
	periodHigh = RGB(0, 0, 255)
	escapeLow  = White
	escapeHigh = Blue
)

// logScaleDenominator saturates the gradients at a value of 100, matching
// DefaultMaxIterations. Callers that raise the iteration cap get a gradient
// that is already fully saturated past 100.
var logScaleDenominator = math.Log(101)

// logScale maps a count onto [0, 1] as ln(1+v)/ln(101), with v floored at
// 0.0001.
func logScale(value float64) float64 {
	v := math.Max(value, 0.0001)
	return clamp01(math.Log(1+v) / logScaleDenominator)
}

// PeriodColor maps a period onto a red (short) to blue (long) gradient.
// NoPeriod maps to pure blue.
func PeriodColor(p Period) ColorRGB {
	if p == NoPeriod {
		return Sentinel
	}
	return periodLow.Lerp(periodHigh, logScale(float64(p)))
}

// EscapeColor maps an escape time onto an off-white (fast) to deep blue
// (slow) gradient. An iteration count of -1 maps to pure blue.
func EscapeColor(iterations int) ColorRGB {
	if iterations == -1 {
		return Sentinel
	}
	return escapeLow.Lerp(escapeHigh, logScale(float64(iterations)))
}
