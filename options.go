package mandelbrot

import "errors"

// ErrLimitTooLarge is returned when an iteration limit above IterationLimit
// is requested. Larger limits would overflow the single-byte escape index.
var ErrLimitTooLarge = errors.New("mandelbrot: iteration limit exceeds 256")

// Option configures a renderer during construction.
//
// Example:
//
//	// CPU renderer with a fixed worker count:
//	r, err := cpu.New(mandelbrot.WithWorkers(2))
//
//	// GPU renderer with a reduced iteration limit:
//	r, err := wgpu.New(mandelbrot.WithIterationLimit(64))
type Option func(*Settings)

// Settings is the resolved renderer configuration. Backends pass their
// constructor options through NewSettings and read the result; callers use
// the With* options instead of filling this in directly.
type Settings struct {
	// Limit is the escape iteration limit, in [1, IterationLimit].
	Limit uint32

	// Workers is the CPU worker count. 0 selects GOMAXPROCS. Ignored by
	// the GPU backend.
	Workers int
}

// NewSettings applies options over the defaults and validates the result.
func NewSettings(opts ...Option) (Settings, error) {
	s := Settings{Limit: IterationLimit}
	for _, o := range opts {
		o(&s)
	}
	if s.Limit == 0 {
		s.Limit = IterationLimit
	}
	if s.Limit > IterationLimit {
		return Settings{}, ErrLimitTooLarge
	}
	return s, nil
}

// WithIterationLimit sets the escape iteration limit. 0 keeps the default;
// values above IterationLimit fail validation.
func WithIterationLimit(limit uint32) Option {
	return func(s *Settings) {
		s.Limit = limit
	}
}

// WithWorkers sets the CPU worker count. Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Settings) {
		s.Workers = n
	}
}
