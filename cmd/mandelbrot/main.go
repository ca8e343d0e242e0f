// Command mandelbrot renders one frame of the Mandelbrot set to a PNG file.
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/TheMrAI/mandelbrot"
	"github.com/TheMrAI/mandelbrot/backend/cpu"
	"github.com/TheMrAI/mandelbrot/backend/wgpu"
)

func main() {
	var (
		width       = flag.Uint("width", 800, "image width in pixels")
		height      = flag.Uint("height", 600, "image height in pixels")
		output      = flag.String("output", "mandelbrot.png", "output file")
		backend     = flag.String("backend", "cpu", "render backend: cpu or gpu (gpu falls back to cpu)")
		centerRe    = flag.Float64("re", -0.5, "view center, real part")
		centerIm    = flag.Float64("im", 0, "view center, imaginary part")
		zoom        = flag.Float64("zoom", 1, "zoom step in [1, 60]")
		limit       = flag.Uint("limit", mandelbrot.IterationLimit, "escape iteration limit, at most 256")
		workers     = flag.Int("workers", 0, "cpu worker count, 0 = GOMAXPROCS")
		supersample = flag.Uint("supersample", 1, "render at N times the resolution and downscale")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	r := openRenderer(*backend, *limit, *workers)
	defer r.Close()

	cam := mandelbrot.NewCamera()
	cam.Center = mandelbrot.Cpx(float32(*centerRe), float32(*centerIm))
	cam.ZoomStep = 1
	cam.Zoom(float32(*zoom) - 1)

	scale := *supersample
	if scale < 1 {
		scale = 1
	}
	res := mandelbrot.Resolution{
		Width:  uint32(*width) * uint32(scale),
		Height: uint32(*height) * uint32(scale),
	}

	pix := mandelbrot.NewPixelBuffer(res)
	if err := r.Render(context.Background(), cam.Window(res), res, pix); err != nil {
		log.Fatalf("render failed: %v", err)
	}

	img := toImage(res, pix)
	if scale > 1 {
		img = downscale(img, int(*width), int(*height))
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("failed to save: %v", err)
	}

	log.Printf("saved %s (%dx%d, %s backend)\n", *output, *width, *height, r.Name())
}

// openRenderer builds the requested backend. A GPU device failure is
// reported and the CPU backend takes over.
func openRenderer(backend string, limit uint, workers int) mandelbrot.Renderer {
	opts := []mandelbrot.Option{
		mandelbrot.WithIterationLimit(uint32(limit)),
		mandelbrot.WithWorkers(workers),
	}

	if backend == "gpu" {
		r, err := wgpu.New(opts...)
		if err == nil {
			return r
		}
		log.Printf("gpu unavailable (%v), falling back to cpu", err)
	} else if backend != "cpu" {
		log.Fatalf("unknown backend %q", backend)
	}

	r, err := cpu.New(opts...)
	if err != nil {
		log.Fatalf("cpu renderer: %v", err)
	}
	return r
}

// toImage expands packed 0RGB pixels into an NRGBA image.
func toImage(res mandelbrot.Resolution, pix mandelbrot.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(res.Width), int(res.Height)))
	for i, p := range pix {
		o := i * 4
		img.Pix[o] = uint8(p >> 16)
		img.Pix[o+1] = uint8(p >> 8)
		img.Pix[o+2] = uint8(p)
		img.Pix[o+3] = 0xFF
	}
	return img
}

// downscale resamples the supersampled frame to the requested size.
func downscale(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
