package mandelbrot

import "context"

// Renderer produces Mandelbrot frames. The CPU and GPU backends both
// implement it; callers pick a backend for its capabilities and can swap
// renderers between frames without touching the rest of the pipeline.
type Renderer interface {
	// Render fills pix with one frame of the view at the given resolution.
	// len(pix) must equal res.PixelCount(); a mismatch is a caller bug and
	// panics. A returned error means the frame is incomplete but the
	// renderer remains usable for the next one.
	Render(ctx context.Context, view ViewWindow, res Resolution, pix PixelBuffer) error

	// Name identifies the backend, e.g. for logging or display.
	Name() string

	// Close releases backend resources. The renderer must not be used
	// afterwards.
	Close()
}
