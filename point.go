package mandelbrot

// ComplexPoint represents a point of the complex plane.
//
// All fractal math in this package is float32. Single precision matches the
// GPU kernel exactly, which keeps the CPU and GPU backends comparable down
// to the last iteration count.
type ComplexPoint struct {
	Re, Im float32
}

// Cpx is a convenience function to create a ComplexPoint.
func Cpx(re, im float32) ComplexPoint {
	return ComplexPoint{Re: re, Im: im}
}

// Add returns the sum of two complex points.
func (p ComplexPoint) Add(q ComplexPoint) ComplexPoint {
	return ComplexPoint{Re: p.Re + q.Re, Im: p.Im + q.Im}
}

// Sub returns the difference of two complex points.
func (p ComplexPoint) Sub(q ComplexPoint) ComplexPoint {
	return ComplexPoint{Re: p.Re - q.Re, Im: p.Im - q.Im}
}

// Square returns the complex square p*p.
func (p ComplexPoint) Square() ComplexPoint {
	return ComplexPoint{
		Re: p.Re*p.Re - p.Im*p.Im,
		Im: 2 * p.Re * p.Im,
	}
}

// MagnitudeSquared returns |p|^2. The escape-time kernel compares this
// against the bailout radius squared to avoid a square root per iteration.
func (p ComplexPoint) MagnitudeSquared() float32 {
	return p.Re*p.Re + p.Im*p.Im
}
