// Package wgpu renders Mandelbrot frames on the GPU using gogpu/wgpu.
//
// The escape-time kernel is a WGSL compute shader compiled to SPIR-V with
// naga at construction time. Each frame uploads a six-float uniform (view
// window and resolution), dispatches one invocation per pixel, copies the
// rgba8unorm storage texture to a staging buffer, and waits on a fence
// before reading the pixels back.
//
// Construction fails when no Vulkan adapter is available; callers are
// expected to fall back to the CPU backend in that case.
package wgpu
