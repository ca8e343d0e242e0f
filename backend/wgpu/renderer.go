package wgpu

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/TheMrAI/mandelbrot"
)

//go:embed mandelbrot.wgsl
var kernelSource string

// kernelWorkgroupDim is the workgroup edge length; must match
// @workgroup_size in mandelbrot.wgsl.
const kernelWorkgroupDim = 8

// frameTimeout is the maximum time to wait for the GPU to finish a frame.
const frameTimeout = 5 * time.Second

// Renderer is the GPU backend. It owns a standalone Vulkan device and a
// compute pipeline compiled once at construction; textures and the staging
// buffer are rebuilt only when the requested resolution changes.
//
// Per-frame failures (encode, submit, timeout, readback) are returned as
// errors and leave the renderer usable for the next frame.
type Renderer struct {
	mu sync.Mutex

	dev      *deviceHandle
	pipeline *pipelineResources
	frame    *frameResources
}

var _ mandelbrot.Renderer = (*Renderer)(nil)

// New opens a GPU device and compiles the escape-time kernel. Device
// acquisition failure is fatal: the returned error is the caller's cue to
// fall back to the CPU backend.
func New(opts ...mandelbrot.Option) (*Renderer, error) {
	s, err := mandelbrot.NewSettings(opts...)
	if err != nil {
		return nil, err
	}

	dev, err := openDevice()
	if err != nil {
		return nil, err
	}

	pipeline, err := newPipelineResources(dev.device, s.Limit)
	if err != nil {
		dev.Close()
		return nil, err
	}

	mandelbrot.Logger().Info("gpu renderer initialized",
		"adapter", dev.adapterName,
		"limit", s.Limit)

	return &Renderer{dev: dev, pipeline: pipeline}, nil
}

// Name identifies the backend.
func (r *Renderer) Name() string { return "gpu" }

// Close destroys all cached resources, the device, and the instance.
// Safe to call multiple times.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dev == nil {
		return
	}
	if r.frame != nil {
		r.frame.destroy(r.dev.device)
		r.frame = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy(r.dev.device)
		r.pipeline = nil
	}
	r.dev.Close()
	r.dev = nil
}

// Render dispatches the kernel over the frame, waits for completion on a
// fence, and repacks the texture readback into pix.
func (r *Renderer) Render(ctx context.Context, view mandelbrot.ViewWindow, res mandelbrot.Resolution, pix mandelbrot.PixelBuffer) error {
	mandelbrot.CheckFrame(res, pix)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dev == nil {
		return fmt.Errorf("wgpu: renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.ensureFrameResources(res); err != nil {
		return err
	}

	r.dev.queue.WriteBuffer(r.pipeline.uniform, 0, frameUniform{view: view, res: res}.toBytes())

	cmdBuf, err := r.encodeFrame(res)
	if err != nil {
		return err
	}
	defer r.dev.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return err
	}

	return r.readbackFrame(res, pix)
}

// ensureFrameResources rebuilds the size-dependent resources when the
// resolution changes. The previous set is destroyed first; on failure the
// renderer holds no frame resources and the next Render retries.
func (r *Renderer) ensureFrameResources(res mandelbrot.Resolution) error {
	if r.frame != nil && r.frame.res == res {
		return nil
	}
	if r.frame != nil {
		r.frame.destroy(r.dev.device)
		r.frame = nil
	}

	frame, err := newFrameResources(r.dev.device, r.pipeline, res)
	if err != nil {
		return err
	}
	r.frame = frame

	mandelbrot.Logger().Debug("gpu frame resources rebuilt",
		"resolution", res.String(),
		"staging_bytes", frame.stagingSize)
	return nil
}

// encodeFrame records the compute dispatch and the texture-to-staging copy
// into one command buffer.
func (r *Renderer) encodeFrame(res mandelbrot.Resolution) (hal.CommandBuffer, error) {
	encoder, err := r.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "mandelbrot_frame",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("mandelbrot_frame"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{
		Label: "mandelbrot_escape",
	})
	pass.SetPipeline(r.pipeline.pipeline)
	pass.SetBindGroup(0, r.frame.bindGroup, nil)
	pass.Dispatch(workgroups(res.Width), workgroups(res.Height), 1)
	pass.End()

	// On Vulkan the texture sits in the storage-image layout after the
	// dispatch; the copy needs TRANSFER_SRC. Transition there and back so
	// the next frame's dispatch sees the layout it expects.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.frame.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageStorageBinding,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(r.frame.texture, r.frame.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  r.frame.alignedBytesPerRow,
			RowsPerImage: res.Height,
		},
		TextureBase: hal.ImageCopyTexture{Texture: r.frame.texture, MipLevel: 0},
		Size: hal.Extent3D{
			Width:              res.Width,
			Height:             res.Height,
			DepthOrArrayLayers: 1,
		},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.frame.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageStorageBinding,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	return cmdBuf, nil
}

// submitAndWait submits the command buffer and blocks on a fence until the
// GPU finishes or the timeout expires. A fire-and-forget submit would race
// the readback against the dispatch.
func (r *Renderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := r.dev.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer r.dev.device.DestroyFence(fence)

	if err := r.dev.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}

	ok, err := r.dev.device.Wait(fence, 1, frameTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: GPU timeout after %v", frameTimeout)
	}
	return nil
}

// readbackFrame copies the staging buffer to the CPU, strips per-row copy
// padding, and repacks the RGBA bytes into packed pixels.
func (r *Renderer) readbackFrame(res mandelbrot.Resolution, pix mandelbrot.PixelBuffer) error {
	if err := r.dev.queue.ReadBuffer(r.frame.staging, 0, r.frame.readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}

	bytesPerRow := res.Width * 4
	if r.frame.alignedBytesPerRow == bytesPerRow {
		mandelbrot.RepackRGBA(r.frame.readback, pix)
		return nil
	}

	// Strip the per-row alignment padding row by row, repacking each row
	// into its destination slice directly.
	for row := uint32(0); row < res.Height; row++ {
		src := r.frame.readback[uint64(row)*uint64(r.frame.alignedBytesPerRow):]
		dst := pix[uint64(row)*uint64(res.Width) : uint64(row+1)*uint64(res.Width)]
		mandelbrot.RepackRGBA(src[:bytesPerRow], dst)
	}
	return nil
}

// workgroups returns the dispatch count covering n invocations at the
// kernel's workgroup edge length.
func workgroups(n uint32) uint32 {
	return (n + kernelWorkgroupDim - 1) / kernelWorkgroupDim
}
