package fractal

import (
	"math"
	"testing"
)

func TestIterate(t *testing.T) {
	tests := []struct {
		name          string
		z0, c         complex128
		maxIterations int
		want          OrbitResult
	}{
		{"origin is a fixed point", 0, 0, 100, OrbitResult{Escaped: false, Iterations: 100}},
		{"origin with one iteration", 0, 0, 1, OrbitResult{Escaped: false, Iterations: 1}},
		{"c=3 escapes after one step", 0, 3, 100, OrbitResult{Escaped: true, Iterations: 1}},
		{"radius reached exactly counts as escaped", 0, -2, 100, OrbitResult{Escaped: true, Iterations: 1}},
		{"seed outside radius escapes immediately", 3, 0, 100, OrbitResult{Escaped: true, Iterations: 0}},
		{"period-2 orbit of c=-1 stays bounded", 0, -1, 100, OrbitResult{Escaped: false, Iterations: 100}},
		{"c=i stays bounded", 0, 1i, 100, OrbitResult{Escaped: false, Iterations: 100}},
		{"zero budget never escapes", 0, 5 + 5i, 0, OrbitResult{Escaped: false, Iterations: 0}},
		{"julia seed 1.5 with c=0 escapes", 1.5, 0, 100, OrbitResult{Escaped: true, Iterations: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Iterate(tt.z0, tt.c, tt.maxIterations, DefaultEscapeRadius)
			if got != tt.want {
				t.Errorf("Iterate(%v, %v, %d) = %+v, want %+v", tt.z0, tt.c, tt.maxIterations, got, tt.want)
			}
		})
	}
}

func TestInMandelbrot(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 1000} {
		if !InMandelbrot(0, n, DefaultEscapeRadius) {
			t.Errorf("InMandelbrot(0, %d) = false, want true", n)
		}
	}

	outside := []complex128{3, -3, 3i, 5 + 5i, 1}
	for _, c := range outside {
		res := Iterate(0, c, DefaultMaxIterations, DefaultEscapeRadius)
		if InMandelbrot(c, DefaultMaxIterations, DefaultEscapeRadius) {
			t.Errorf("InMandelbrot(%v) = true, want false", c)
		}
		if res.Iterations >= DefaultMaxIterations {
			t.Errorf("Iterate(0, %v).Iterations = %d, want < %d", c, res.Iterations, DefaultMaxIterations)
		}
	}

	inside := []complex128{-1, 1i, -1i, 0.25, -0.5 + 0.5i}
	for _, c := range inside {
		if !InMandelbrot(c, DefaultMaxIterations, DefaultEscapeRadius) {
			t.Errorf("InMandelbrot(%v) = false, want true", c)
		}
	}
}

func TestInMandelbrot_Idempotent(t *testing.T) {
	points := []complex128{0, -0.75 + 0.1i, 0.3 + 0.5i, -1.75, 2}
	for _, c := range points {
		first := InMandelbrot(c, 250, DefaultEscapeRadius)
		second := InMandelbrot(c, 250, DefaultEscapeRadius)
		if first != second {
			t.Errorf("InMandelbrot(%v) not idempotent: %v then %v", c, first, second)
		}
	}
}

func TestIsBoundaryPoint(t *testing.T) {
	tests := []struct {
		name          string
		z0, c         complex128
		maxIterations int
		wantBoundary  bool
		wantIter      int
	}{
		{"diverging seed", 3, 0, 100, false, 0},
		{"fixed point is stable", 0, 0, 100, false, 0},
		{"super-attracted orbit settles", 0.1, 0, 100, false, 3},
		{"unit circle is chaotic for c=0", complex(math.Cos(1), math.Sin(1)), 0, 30, true, 30},
		{"zero budget is boundary", 0, 0, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotBoundary, gotIter := IsBoundaryPoint(tt.z0, tt.c, tt.maxIterations, DefaultEscapeRadius, DefaultEpsilon)
			if gotBoundary != tt.wantBoundary || gotIter != tt.wantIter {
				t.Errorf("IsBoundaryPoint(%v, %v) = (%v, %d), want (%v, %d)",
					tt.z0, tt.c, gotBoundary, gotIter, tt.wantBoundary, tt.wantIter)
			}
		})
	}
}

func TestDetectPeriod(t *testing.T) {
	tests := []struct {
		name   string
		c      complex128
		budget int
		want   Period
	}{
		{"origin has period 1", 0, 2, 1},
		{"origin with default budget", 0, DefaultPeriodBudget, 1},
		{"c=-1 has period 2", -1, 100, 2},
		{"c=i has period 2", 1i, 100, 2},
		{"non-member", 5 + 5i, 1000, NoPeriod},
		{"c=-2 fails the membership test", -2, 1000, NoPeriod},
		{"budget too small to see a repeat", 0, 1, NoPeriod},
		{"zero budget", -1, 0, NoPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPeriod(tt.c, tt.budget); got != tt.want {
				t.Errorf("DetectPeriod(%v, %d) = %d, want %d", tt.c, tt.budget, got, tt.want)
			}
		})
	}
}

func TestComputePeriod(t *testing.T) {
	if got := ComputePeriod(0, DefaultPeriodBudget); got != 1 {
		t.Errorf("ComputePeriod(0) = %d, want 1", got)
	}
	if got := ComputePeriod(5+5i, DefaultPeriodBudget); got != NoPeriod {
		t.Errorf("ComputePeriod(5+5i) = %d, want NoPeriod", got)
	}
}

func BenchmarkIterate(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Iterate(0, -0.75+0.1i, 1000, DefaultEscapeRadius)
	}
}

func BenchmarkDetectPeriod(b *testing.B) {
	for b.Loop() {
		_ = DetectPeriod(-0.1+0.1i, DefaultColoredPeriodBudget)
	}
}
