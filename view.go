package mandelbrot

import "fmt"

// ViewWindow is an axis-aligned rectangle of the complex plane selected for
// rendering. Width and Height are positive extents; because the imaginary
// axis points up while pixel rows grow downward, the window covers the
// vertical range [UpperLeft.Im - Height, UpperLeft.Im].
type ViewWindow struct {
	// UpperLeft is the plane coordinate mapped to pixel (0, 0).
	UpperLeft ComplexPoint

	// Width is the horizontal extent along the real axis.
	Width float32

	// Height is the vertical extent along the imaginary axis.
	Height float32
}

// Resolution is the output size in pixels. Both dimensions must be at
// least 1.
type Resolution struct {
	Width, Height uint32
}

// PixelCount returns the number of pixels in a frame at this resolution.
func (r Resolution) PixelCount() uint64 {
	return uint64(r.Width) * uint64(r.Height)
}

// Aspect returns the width/height ratio.
func (r Resolution) Aspect() float32 {
	return float32(r.Width) / float32(r.Height)
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// At maps the pixel at (col, row) to its complex plane coordinate. Column 0
// and row 0 map exactly to UpperLeft; the real part grows with the column
// and the imaginary part shrinks with the row.
func (v ViewWindow) At(res Resolution, col, row uint32) ComplexPoint {
	return ComplexPoint{
		Re: v.UpperLeft.Re + float32(col)*v.Width/float32(res.Width),
		Im: v.UpperLeft.Im - float32(row)*v.Height/float32(res.Height),
	}
}

// CheckFrame panics when the resolution has a zero dimension or the pixel
// buffer cannot hold one value per pixel. Both indicate a caller bug rather
// than a runtime condition, so backends fail loudly instead of returning an
// error.
func CheckFrame(res Resolution, pix PixelBuffer) {
	if res.Width == 0 || res.Height == 0 {
		panic(fmt.Sprintf("mandelbrot: zero resolution %v", res))
	}
	if uint64(len(pix)) != res.PixelCount() {
		panic(fmt.Sprintf("mandelbrot: pixel buffer length %d does not match resolution %v", len(pix), res))
	}
}
