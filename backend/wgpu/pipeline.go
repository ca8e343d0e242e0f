package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/TheMrAI/mandelbrot"
)

// frameUniformSize is the byte size of the per-frame shader parameters:
// six consecutive f32 values.
const frameUniformSize = 24

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// frameUniform is the per-frame kernel input. The byte layout matches the
// WGSL Params struct: upper_left, view_size, resolution as three vec2<f32>.
type frameUniform struct {
	view mandelbrot.ViewWindow
	res  mandelbrot.Resolution
}

// toBytes serializes the uniform little-endian, the byte order the GPU
// reads regardless of host architecture.
func (u frameUniform) toBytes() []byte {
	buf := make([]byte, frameUniformSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], math.Float32bits(u.view.UpperLeft.Re))
	le.PutUint32(buf[4:8], math.Float32bits(u.view.UpperLeft.Im))
	le.PutUint32(buf[8:12], math.Float32bits(u.view.Width))
	le.PutUint32(buf[12:16], math.Float32bits(u.view.Height))
	le.PutUint32(buf[16:20], math.Float32bits(float32(u.res.Width)))
	le.PutUint32(buf[20:24], math.Float32bits(float32(u.res.Height)))
	return buf
}

// pipelineResources holds everything that survives across frames of any
// size: the compiled kernel, its layouts, and the uniform buffer. Built
// once at renderer construction.
type pipelineResources struct {
	shader   hal.ShaderModule
	bgLayout hal.BindGroupLayout
	layout   hal.PipelineLayout
	pipeline hal.ComputePipeline
	uniform  hal.Buffer
}

// newPipelineResources compiles the kernel and builds the compute pipeline.
func newPipelineResources(device hal.Device, limit uint32) (*pipelineResources, error) {
	r := &pipelineResources{}

	shader, err := compileShader(device, "mandelbrot_kernel", shaderWithLimit(kernelSource, limit))
	if err != nil {
		return nil, err
	}
	r.shader = shader

	bgLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "mandelbrot_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				StorageTexture: &gputypes.StorageTextureBindingLayout{
					Access:        gputypes.StorageTextureAccessWriteOnly,
					Format:        gputypes.TextureFormatRGBA8Unorm,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		r.destroy(device)
		return nil, fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	r.bgLayout = bgLayout

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "mandelbrot_pl",
		BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
	})
	if err != nil {
		r.destroy(device)
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	r.layout = layout

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "mandelbrot_kernel",
		Layout: layout,
		Compute: hal.ComputeState{
			Module:     shader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		r.destroy(device)
		return nil, fmt.Errorf("wgpu: create compute pipeline: %w", err)
	}
	r.pipeline = pipeline

	uniform, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mandelbrot_params",
		Size:  frameUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.destroy(device)
		return nil, fmt.Errorf("wgpu: create uniform buffer: %w", err)
	}
	r.uniform = uniform

	return r, nil
}

// destroy releases all pipeline resources. Each is nil-checked so partial
// construction cleans up correctly.
func (r *pipelineResources) destroy(device hal.Device) {
	if r.uniform != nil {
		device.DestroyBuffer(r.uniform)
		r.uniform = nil
	}
	if r.pipeline != nil {
		device.DestroyComputePipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.layout != nil {
		device.DestroyPipelineLayout(r.layout)
		r.layout = nil
	}
	if r.bgLayout != nil {
		device.DestroyBindGroupLayout(r.bgLayout)
		r.bgLayout = nil
	}
	if r.shader != nil {
		device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// frameResources holds the size-dependent GPU state: the storage texture
// the kernel writes, the staging buffer for readback, and the bind group
// tying them to the pipeline. Rebuilt only when the resolution changes.
type frameResources struct {
	res mandelbrot.Resolution

	texture hal.Texture
	view    hal.TextureView

	staging     hal.Buffer
	stagingSize uint64

	bindGroup hal.BindGroup

	// alignedBytesPerRow is bytesPerRow rounded up to copyPitchAlignment;
	// the gap per row is stripped during repack.
	alignedBytesPerRow uint32

	// readback is scratch space reused across frames at this resolution.
	readback []byte
}

// alignBytesPerRow rounds a tight row pitch up to the copy alignment.
func alignBytesPerRow(bytesPerRow uint32) uint32 {
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// newFrameResources builds the texture, staging buffer, and bind group for
// one resolution.
func newFrameResources(device hal.Device, p *pipelineResources, res mandelbrot.Resolution) (*frameResources, error) {
	f := &frameResources{res: res}

	texture, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "mandelbrot_target",
		Size: hal.Extent3D{
			Width:              res.Width,
			Height:             res.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageStorageBinding | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create target texture: %w", err)
	}
	f.texture = texture

	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: "mandelbrot_target_view",
	})
	if err != nil {
		f.destroy(device)
		return nil, fmt.Errorf("wgpu: create target texture view: %w", err)
	}
	f.view = view

	f.alignedBytesPerRow = alignBytesPerRow(res.Width * 4)
	f.stagingSize = uint64(f.alignedBytesPerRow) * uint64(res.Height)
	f.readback = make([]byte, f.stagingSize)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mandelbrot_staging",
		Size:  f.stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		f.destroy(device)
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	f.staging = staging

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "mandelbrot_bind",
		Layout: p.bgLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.uniform.NativeHandle(), Offset: 0, Size: frameUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
		},
	})
	if err != nil {
		f.destroy(device)
		return nil, fmt.Errorf("wgpu: create bind group: %w", err)
	}
	f.bindGroup = bindGroup

	return f, nil
}

// destroy releases all frame resources. Safe on partially built structs.
func (f *frameResources) destroy(device hal.Device) {
	if f.bindGroup != nil {
		device.DestroyBindGroup(f.bindGroup)
		f.bindGroup = nil
	}
	if f.staging != nil {
		device.DestroyBuffer(f.staging)
		f.staging = nil
	}
	if f.view != nil {
		device.DestroyTextureView(f.view)
		f.view = nil
	}
	if f.texture != nil {
		device.DestroyTexture(f.texture)
		f.texture = nil
	}
}
