package mandelbrot

import "github.com/chewxy/math32"

const (
	// minZoomStep and maxZoomStep bound the zoom control. The quartic zoom
	// curve below makes steps past 60 numerically useless in float32.
	minZoomStep = 1
	maxZoomStep = 60

	// baseViewHeight is the vertical plane extent at zoom step 1. It frames
	// the whole set with a little margin.
	baseViewHeight = 2.3

	// panScale converts screen-pixel pan deltas to plane units before the
	// zoom correction is applied.
	panScale = 1.0 / 100.0
)

// Camera tracks the point of interest and magnification for a sequence of
// frames. It converts user-facing navigation (zoom steps, pixel pans) into
// the ViewWindow a renderer consumes.
//
// The zero value is not useful; use NewCamera.
type Camera struct {
	// Center is the plane coordinate at the middle of the frame.
	Center ComplexPoint

	// ZoomStep is the navigation zoom position, clamped to
	// [minZoomStep, maxZoomStep].
	ZoomStep float32
}

// NewCamera returns a camera framing the full set: centered slightly left
// of the origin at the lowest zoom.
func NewCamera() Camera {
	return Camera{Center: ComplexPoint{Re: -0.5}, ZoomStep: 1}
}

// zoom maps the step position to a magnification factor. The quartic curve
// keeps early steps gentle and later steps fast; at step 1 it is exactly 1.
func (c Camera) zoom() float32 {
	return math32.Pow(c.ZoomStep, 4)*0.01 + 0.99
}

// Zoom moves the zoom position by delta steps, clamping to the valid range.
func (c *Camera) Zoom(delta float32) {
	s := c.ZoomStep + delta
	if s < minZoomStep {
		s = minZoomStep
	}
	if s > maxZoomStep {
		s = maxZoomStep
	}
	c.ZoomStep = s
}

// Pan moves the center by a screen-space pixel delta. Dragging right moves
// the view left, and the vertical axis is inverted because pixel rows grow
// downward while the imaginary axis grows upward. The pan distance shrinks
// with the zoom factor so a drag covers the same on-screen distance at any
// magnification.
func (c *Camera) Pan(dx, dy float32) {
	scale := panScale / c.zoom()
	c.Center.Re -= dx * scale
	c.Center.Im += dy * scale
}

// Window returns the view window centered on the camera position at the
// given output resolution. The horizontal extent follows the resolution's
// aspect ratio so pixels stay square on the plane.
func (c Camera) Window(res Resolution) ViewWindow {
	h := baseViewHeight / c.zoom()
	w := res.Aspect() * h
	return ViewWindow{
		UpperLeft: ComplexPoint{Re: c.Center.Re - w/2, Im: c.Center.Im + h/2},
		Width:     w,
		Height:    h,
	}
}
