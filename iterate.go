package fractal

import "math/cmplx"

// Defaults shared by the render strategies and the explorer.
const (
	// DefaultMaxIterations is the iteration cap used for membership tests.
	DefaultMaxIterations = 100

	// DefaultEscapeRadius is the modulus at which an orbit counts as escaped.
	DefaultEscapeRadius = 2.0

	// DefaultEpsilon is the step size below which an orbit counts as settled
	// in IsBoundaryPoint.
	DefaultEpsilon = 1e-5

	// DefaultPeriodBudget is the iteration budget of an explicit period query.
	DefaultPeriodBudget = 100000

	// DefaultColoredPeriodBudget is the per-pixel period budget of the
	// period-colored Mandelbrot render. It is much smaller than
	// DefaultPeriodBudget because it runs once per member point.
	DefaultColoredPeriodBudget = 1000
)

// Period is the detected cycle length of an orbit, or NoPeriod.
type Period int

// NoPeriod means the point failed the membership test or no exact
// recurrence was found within the iteration budget.
const NoPeriod Period = -1

// OrbitResult is the outcome of iterating a point under z² + c.
//
// Escaped is false when the iteration cap was reached, which is used as a
// proxy for set membership rather than a proof of it.
type OrbitResult struct {
	Escaped    bool
	Iterations int
}

// f is the quadratic map z² + c.
func f(z, c complex128) complex128 {
	return z*z + c
}

// Iterate applies z ← z² + c starting from z0 until |z| ≥ escapeRadius or
// maxIterations steps have been taken.
//
// The Mandelbrot membership test is Iterate(0, c, ...); the filled Julia
// test for a fixed parameter c is Iterate(z, c, ...).
func Iterate(z0, c complex128, maxIterations int, escapeRadius float64) OrbitResult {
	res, _ := iterate(nil, z0, c, maxIterations, escapeRadius)
	return res
}

// orbitCheckEvery is how many orbit steps run between cancellation checks
// inside a single point.
const orbitCheckEvery = 4096

// iterate is Iterate with cancellation: once done is closed it stops within
// orbitCheckEvery steps and reports false. A nil done never fires.
func iterate(done <-chan struct{}, z0, c complex128, maxIterations int, escapeRadius float64) (OrbitResult, bool) {
	z := z0
	n := 0
	for n < maxIterations && cmplx.Abs(z) < escapeRadius {
		if n%orbitCheckEvery == orbitCheckEvery-1 && interrupted(done) {
			return OrbitResult{Iterations: n}, false
		}
		z = f(z, c)
		n++
	}
	return OrbitResult{Escaped: n < maxIterations, Iterations: n}, true
}

// interrupted polls done without blocking.
func interrupted(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}

// IsBoundaryPoint classifies z0 as lying on the Julia set boundary of c.
//
// The orbit is not on the boundary if it diverges (|z| > escapeRadius) or
// settles (two consecutive iterates closer than epsilon). An orbit that does
// neither within maxIterations is reported as boundary. The returned count is
// the number of iterations completed before the decision.
func IsBoundaryPoint(z0, c complex128, maxIterations int, escapeRadius, epsilon float64) (bool, int) {
	z := z0
	for n := 0; n < maxIterations; n++ {
		if cmplx.Abs(z) > escapeRadius {
			return false, n
		}
		next := f(z, c)
		if cmplx.Abs(next-z) < epsilon {
			return false, n
		}
		z = next
	}
	return true, maxIterations
}

// InMandelbrot reports whether the orbit of 0 under z² + c stays within
// escapeRadius for maxIterations steps.
func InMandelbrot(c complex128, maxIterations int, escapeRadius float64) bool {
	return !Iterate(0, c, maxIterations, escapeRadius).Escaped
}

// DetectPeriod returns the cycle length of the orbit of 0 under z² + c.
//
// c is first re-tested for membership with DefaultMaxIterations and
// DefaultEscapeRadius; that cost is not part of budget. The orbit is then
// iterated up to budget times, remembering the first index at which every
// value was seen. The first exact repeat yields the period.
//
// Recurrence uses exact floating-point equality. Super-attracting cycles that
// land on representable values (the origin, for instance) are found; generic
// attracting cycles usually never repeat bit-for-bit and report NoPeriod.
func DetectPeriod(c complex128, budget int) Period {
	p, _ := detectPeriod(nil, c, budget)
	return p
}

// detectPeriod is DetectPeriod with cancellation, checked as in iterate.
func detectPeriod(done <-chan struct{}, c complex128, budget int) (Period, bool) {
	if !InMandelbrot(c, DefaultMaxIterations, DefaultEscapeRadius) {
		return NoPeriod, true
	}

	var z complex128
	seen := make(map[complex128]int)
	for i := 0; i < budget; i++ {
		if i%orbitCheckEvery == orbitCheckEvery-1 && interrupted(done) {
			return NoPeriod, false
		}
		z = f(z, c)
		if first, ok := seen[z]; ok {
			return Period(i - first), true
		}
		seen[z] = i
	}
	return NoPeriod, true
}

// ComputePeriod is the explicit "get period" query. It is DetectPeriod with
// a caller-chosen budget; pass DefaultPeriodBudget for the usual behavior.
func ComputePeriod(c complex128, budget int) Period {
	p := DetectPeriod(c, budget)
	Logger().Debug("fractal: period computed", "c", c, "budget", budget, "period", int(p))
	return p
}
