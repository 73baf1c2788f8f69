package explorer

import (
	"fmt"
	"math"

	"github.com/gogpu/fractal"
)

// Window size and slider defaults of the explorer.
const (
	DefaultSize          = 650
	DefaultIterations    = 200
	MinIterations        = 0
	MaxIterations        = 500
	DefaultPeriodBudget  = fractal.DefaultPeriodBudget
	captionDecimalPlaces = 1e4
)

// MandelbrotMode selects how the Mandelbrot canvas is drawn.
type MandelbrotMode int

const (
	// MandelbrotPlain draws members in a single color.
	MandelbrotPlain MandelbrotMode = iota
	// MandelbrotPeriod colors members by orbit period.
	MandelbrotPeriod
)

// String returns the mode name.
func (m MandelbrotMode) String() string {
	switch m {
	case MandelbrotPlain:
		return "plain"
	case MandelbrotPeriod:
		return "period"
	default:
		return fmt.Sprintf("MandelbrotMode(%d)", int(m))
	}
}

// JuliaMode selects how the Julia canvas is drawn.
type JuliaMode int

const (
	// JuliaInverse draws the boundary by inverse iteration.
	JuliaInverse JuliaMode = iota
	// JuliaFilled draws bounded orbits in a single color.
	JuliaFilled
	// JuliaEscape colors escaping orbits by escape time.
	JuliaEscape
)

// String returns the mode name.
func (m JuliaMode) String() string {
	switch m {
	case JuliaInverse:
		return "inverse"
	case JuliaFilled:
		return "filled"
	case JuliaEscape:
		return "escape"
	default:
		return fmt.Sprintf("JuliaMode(%d)", int(m))
	}
}

// State is everything the explorer remembers between commands.
type State struct {
	// C is the Julia parameter.
	C complex128

	Mandelbrot fractal.Viewport
	Julia      fractal.Viewport

	// Iterations is the slider value passed as the iteration cap.
	Iterations int

	MandelbrotMode MandelbrotMode
	JuliaMode      JuliaMode

	// Period is the last computed period of C. HasPeriod is false until
	// GetPeriod runs and again after Clear.
	Period    fractal.Period
	HasPeriod bool
}

// NewState returns the state of a freshly opened explorer.
func NewState() State {
	return State{
		Mandelbrot:     fractal.DefaultView(DefaultSize, DefaultSize),
		Julia:          fractal.DefaultView(DefaultSize, DefaultSize),
		Iterations:     DefaultIterations,
		MandelbrotMode: MandelbrotPlain,
		JuliaMode:      JuliaInverse,
		Period:         fractal.NoPeriod,
	}
}

// CCaption formats C the way the control panel shows it, rounded to four
// decimal places: "c = -0.75 + (0.1)i".
func (s State) CCaption() string {
	return fmt.Sprintf("c = %g + (%g)i", round4(real(s.C)), round4(imag(s.C)))
}

// PeriodCaption returns "Current Period: n", or "" when no period is known.
func (s State) PeriodCaption() string {
	if !s.HasPeriod {
		return ""
	}
	return fmt.Sprintf("Current Period: %d", s.Period)
}

func round4(x float64) float64 {
	r := math.Round(x*captionDecimalPlaces) / captionDecimalPlaces
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}
