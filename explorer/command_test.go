package explorer

import (
	"errors"
	"testing"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{PlotMandelbrot, "plot-mandelbrot"},
		{PlotJuliaEscape, "plot-julia-escape"},
		{ZoomOutJulia, "zoom-out-julia"},
		{Clear, "clear"},
		{Command(-1), "Command(-1)"},
		{Command(42), "Command(42)"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("Command(%d).String() = %q, want %q", int(tt.cmd), got, tt.want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	for c := PlotMandelbrot; c <= Clear; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v", c.String(), got, err, c)
		}
	}
	if _, err := ParseCommand("explode"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("ParseCommand(explode) = %v, want ErrUnknownCommand", err)
	}
}

func TestState_Captions(t *testing.T) {
	tests := []struct {
		c    complex128
		want string
	}{
		{0, "c = 0 + (0)i"},
		{complex(-0.75, 0.1), "c = -0.75 + (0.1)i"},
		{complex(0.123456, -0.98766), "c = 0.1235 + (-0.9877)i"},
		{complex(-0.00001, 0), "c = 0 + (0)i"},
	}
	for _, tt := range tests {
		s := State{C: tt.c}
		if got := s.CCaption(); got != tt.want {
			t.Errorf("CCaption(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestModes_String(t *testing.T) {
	if MandelbrotPeriod.String() != "period" || JuliaEscape.String() != "escape" {
		t.Error("unexpected mode names")
	}
	if got := JuliaMode(7).String(); got != "JuliaMode(7)" {
		t.Errorf("JuliaMode(7).String() = %q", got)
	}
}
