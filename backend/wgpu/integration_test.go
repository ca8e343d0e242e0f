package wgpu

import (
	"context"
	"testing"

	"github.com/TheMrAI/mandelbrot"
	"github.com/TheMrAI/mandelbrot/backend/cpu"
)

// newTestRenderer skips the test when no GPU is available.
func newTestRenderer(t *testing.T, opts ...mandelbrot.Option) *Renderer {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Skipf("no usable GPU: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

var testView = mandelbrot.ViewWindow{
	UpperLeft: mandelbrot.Cpx(-2.0, 1.5),
	Width:     3.0,
	Height:    3.0,
}

func TestRenderer_EndToEnd(t *testing.T) {
	r := newTestRenderer(t)

	res := mandelbrot.Resolution{Width: 100, Height: 100}
	pix := mandelbrot.NewPixelBuffer(res)
	if err := r.Render(context.Background(), testView, res, pix); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Center pixel maps to (-0.5, 0), inside the set.
	if got := pix[50*100+50]; got != 0 {
		t.Errorf("center pixel = %#08x, want 0", got)
	}

	// Corner pixel maps to (-2.0, 1.5), escaping after one step.
	if got := pix[0]; got != 0x010101 {
		t.Errorf("corner pixel = %#08x, want 0x010101", got)
	}

	for i, p := range pix {
		if p&0xFF000000 != 0 {
			t.Fatalf("pixel %d = %#08x has non-zero top byte", i, p)
		}
	}
}

func TestRenderer_MatchesCPU(t *testing.T) {
	gpuR := newTestRenderer(t)

	cpuR, err := cpu.New()
	if err != nil {
		t.Fatalf("cpu.New() error = %v", err)
	}
	defer cpuR.Close()

	// 100 pixels wide keeps the copy pitch unaligned, exercising the
	// row-padding strip path.
	res := mandelbrot.Resolution{Width: 100, Height: 80}

	gpuPix := mandelbrot.NewPixelBuffer(res)
	if err := gpuR.Render(context.Background(), testView, res, gpuPix); err != nil {
		t.Fatalf("gpu Render() error = %v", err)
	}

	cpuPix := mandelbrot.NewPixelBuffer(res)
	if err := cpuR.Render(context.Background(), testView, res, cpuPix); err != nil {
		t.Fatalf("cpu Render() error = %v", err)
	}

	// Both kernels are float32, but rounding inside the GPU's fused
	// operations can move a pixel right at an iteration boundary by one
	// count. Anything larger is a real defect.
	mismatches := 0
	for i := range cpuPix {
		c := int(cpuPix[i] & 0xFF)
		g := int(gpuPix[i] & 0xFF)
		d := c - g
		if d < 0 {
			d = -d
		}
		if d > 1 {
			t.Fatalf("pixel %d: cpu %#08x vs gpu %#08x", i, cpuPix[i], gpuPix[i])
		}
		if d != 0 {
			mismatches++
		}
	}
	if mismatches > len(cpuPix)/100 {
		t.Errorf("%d of %d pixels off by one, want under 1%%", mismatches, len(cpuPix))
	}
}

func TestRenderer_ResolutionChangeRebuildsResources(t *testing.T) {
	r := newTestRenderer(t)

	for _, res := range []mandelbrot.Resolution{
		{Width: 64, Height: 64},
		{Width: 128, Height: 96},
		{Width: 64, Height: 64},
	} {
		pix := mandelbrot.NewPixelBuffer(res)
		if err := r.Render(context.Background(), testView, res, pix); err != nil {
			t.Fatalf("Render(%v) error = %v", res, err)
		}
	}
}

func TestRenderer_RenderAfterCloseFails(t *testing.T) {
	r := newTestRenderer(t)
	r.Close()

	res := mandelbrot.Resolution{Width: 16, Height: 16}
	pix := mandelbrot.NewPixelBuffer(res)
	if err := r.Render(context.Background(), testView, res, pix); err == nil {
		t.Error("Render after Close should fail")
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	r := newTestRenderer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := mandelbrot.Resolution{Width: 16, Height: 16}
	pix := mandelbrot.NewPixelBuffer(res)
	if err := r.Render(ctx, testView, res, pix); err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
