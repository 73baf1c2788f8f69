package explorer

import (
	"fmt"
	"image"
)

// Command is a control panel action.
type Command int

const (
	PlotMandelbrot Command = iota
	PlotPeriodMandelbrot
	PlotJulia
	PlotFilledJulia
	PlotJuliaEscape
	ZoomMandelbrot
	ZoomOutMandelbrot
	ZoomJulia
	ZoomOutJulia
	PickC
	SetC
	GetPeriod
	Clear
)

var commandNames = [...]string{
	PlotMandelbrot:       "plot-mandelbrot",
	PlotPeriodMandelbrot: "plot-period-mandelbrot",
	PlotJulia:            "plot-julia",
	PlotFilledJulia:      "plot-filled-julia",
	PlotJuliaEscape:      "plot-julia-escape",
	ZoomMandelbrot:       "zoom-mandelbrot",
	ZoomOutMandelbrot:    "zoom-out-mandelbrot",
	ZoomJulia:            "zoom-julia",
	ZoomOutJulia:         "zoom-out-julia",
	PickC:                "pick-c",
	SetC:                 "set-c",
	GetPeriod:            "get-period",
	Clear:                "clear",
}

// String returns the command name.
func (c Command) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(name string) (Command, error) {
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Args carries the operands of a command.
//
// Zoom commands use Corner1 and Corner2, two opposite corners of the zoom
// box in any order. PickC uses Point, a plane point on the Mandelbrot
// canvas, or Pixel when it is set: a click at that pixel of the canvas,
// origin top-left. SetC uses Point as the new parameter.
type Args struct {
	Corner1, Corner2 complex128
	Point            complex128
	Pixel            *image.Point
}
