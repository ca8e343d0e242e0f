// Package mandelbrot renders the Mandelbrot set with interchangeable CPU
// and GPU backends.
//
// # Overview
//
// The root package holds the shared data model: complex plane coordinates,
// the view window and resolution, the escape-time kernel, grayscale pixel
// packing, and a camera for navigating between frames. Rendering itself is
// done by backend packages implementing the Renderer interface:
//
//   - backend/cpu renders in parallel row bands on a worker pool.
//   - backend/wgpu runs a compute shader through GoGPU's wgpu HAL.
//
// Both backends produce bit-comparable grayscale frames: each pixel carries
// its escape iteration count as 0x00RRGGBB, with points inside the set
// rendered black.
//
// # Quick Start
//
//	r, err := cpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	cam := mandelbrot.NewCamera()
//	res := mandelbrot.Resolution{Width: 800, Height: 600}
//	pix := mandelbrot.NewPixelBuffer(res)
//	if err := r.Render(context.Background(), cam.Window(res), res, pix); err != nil {
//	    log.Fatal(err)
//	}
//
// The GPU backend has the same shape; construction fails when no usable
// adapter exists, which is the caller's cue to fall back to the CPU:
//
//	r, err := wgpu.New()
//	if err != nil {
//	    r, err = cpu.New()
//	}
package mandelbrot
