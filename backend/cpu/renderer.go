// Package cpu renders Mandelbrot frames on the host processor.
//
// A frame is split into horizontal row bands; each band writes a disjoint
// sub-range of the shared pixel buffer, so no synchronization is needed
// beyond joining the bands. All bands but the last run on a worker pool,
// the last one runs on the calling goroutine. Output is deterministic:
// the same inputs produce bit-identical buffers at any worker count.
package cpu

import (
	"context"
	"errors"

	"github.com/TheMrAI/mandelbrot"
	"github.com/TheMrAI/mandelbrot/internal/parallel"
)

// ErrClosed is returned by Render after Close. A closed pool drops queued
// bands, which would otherwise leave the frame partially rendered.
var ErrClosed = errors.New("cpu: renderer is closed")

// minBandRows is the lower bound on rows per band. Thinner bands spend more
// time on scheduling than on iterating.
const minBandRows = 50

// Renderer is the CPU backend. It owns a worker pool sized at construction
// and is safe for use from one goroutine at a time.
type Renderer struct {
	limit uint32
	pool  *parallel.WorkerPool
}

var _ mandelbrot.Renderer = (*Renderer)(nil)

// New creates a CPU renderer. The worker count defaults to GOMAXPROCS and
// can be fixed with mandelbrot.WithWorkers.
func New(opts ...mandelbrot.Option) (*Renderer, error) {
	s, err := mandelbrot.NewSettings(opts...)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		limit: s.Limit,
		pool:  parallel.NewWorkerPool(s.Workers),
	}
	mandelbrot.Logger().Debug("cpu renderer created",
		"workers", r.pool.Workers(),
		"limit", r.limit)
	return r, nil
}

// Name identifies the backend.
func (r *Renderer) Name() string { return "cpu" }

// Close shuts down the worker pool.
func (r *Renderer) Close() { r.pool.Close() }

// Render fills pix with one frame. Bands check the context before starting,
// so cancellation aborts the frame between bands; Render still joins every
// in-flight band before returning. After Close it returns ErrClosed.
func (r *Renderer) Render(ctx context.Context, view mandelbrot.ViewWindow, res mandelbrot.Resolution, pix mandelbrot.PixelBuffer) error {
	mandelbrot.CheckFrame(res, pix)

	if !r.pool.IsRunning() {
		return ErrClosed
	}

	bands := splitBands(res.Height, uint32(r.pool.Workers()))

	work := make([]func(), 0, len(bands)-1)
	for _, b := range bands[:len(bands)-1] {
		band := b
		work = append(work, func() {
			if ctx.Err() != nil {
				return
			}
			r.renderBand(view, res, band, pix)
		})
	}

	// The pool chews through the leading bands while the calling goroutine
	// renders the final one.
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.pool.ExecuteAll(work)
	}()

	if ctx.Err() == nil {
		r.renderBand(view, res, bands[len(bands)-1], pix)
	}
	<-done

	return ctx.Err()
}

// band is a contiguous run of rows [start, end) rendered by one worker.
type band struct {
	start, end uint32
}

// splitBands partitions height rows into bands of max(height/workers,
// minBandRows) rows. A shorter final band catches any remainder, so every
// row is covered exactly once.
func splitBands(height, workers uint32) []band {
	rows := height / workers
	if rows < minBandRows {
		rows = minBandRows
	}

	bands := make([]band, 0, height/rows+1)
	for start := uint32(0); start < height; start += rows {
		end := start + rows
		if end > height {
			end = height
		}
		bands = append(bands, band{start: start, end: end})
	}
	return bands
}

func (r *Renderer) renderBand(view mandelbrot.ViewWindow, res mandelbrot.Resolution, b band, pix mandelbrot.PixelBuffer) {
	for row := b.start; row < b.end; row++ {
		base := uint64(row) * uint64(res.Width)
		for col := uint32(0); col < res.Width; col++ {
			c := view.At(res, col, row)
			pix[base+uint64(col)] = mandelbrot.PackEscape(mandelbrot.EscapeTime(c, r.limit))
		}
	}
}
