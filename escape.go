package mandelbrot

// IterationLimit is the escape iteration limit. It is chosen so that every
// escape index fits a single byte, which is what both the grayscale pixel
// packing and the GPU texture format rely on.
const IterationLimit = 256

// bailout is the squared escape radius. Once |z|^2 reaches it the orbit is
// guaranteed to diverge.
const bailout = 4.0

// EscapeResult is the outcome of the escape-time evaluation for one point.
type EscapeResult struct {
	// Iterations is the 0-based index of the iteration at which the orbit
	// escaped. Meaningless when Escaped is false.
	Iterations uint8

	// Escaped reports whether the orbit left the bailout radius within the
	// iteration limit. Points that never escape are treated as members of
	// the set.
	Escaped bool
}

// EscapeTime iterates z <- z^2 + c starting from z = 0 and reports when |z|^2
// first reaches the bailout radius. The test runs before each step, so the
// returned index counts the steps taken before divergence was detected.
//
// limit must be in [1, IterationLimit]; renderers obtain a validated limit
// from NewSettings.
func EscapeTime(c ComplexPoint, limit uint32) EscapeResult {
	var z ComplexPoint
	for i := uint32(0); i < limit; i++ {
		if z.MagnitudeSquared() >= bailout {
			return EscapeResult{Iterations: uint8(i), Escaped: true}
		}
		z = z.Square().Add(c)
	}
	return EscapeResult{}
}
