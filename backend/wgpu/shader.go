package wgpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// shaderWithLimit returns the kernel source with the iteration limit
// substituted. The limit is a compile-time constant in the shader; baking
// it in keeps the per-frame uniform at the six floats the kernel needs.
func shaderWithLimit(src string, limit uint32) string {
	if limit == 256 {
		return src
	}
	return strings.Replace(src,
		"LIMIT: u32 = 256u",
		fmt.Sprintf("LIMIT: u32 = %du", limit), 1)
}

// compileShader compiles WGSL to SPIR-V and creates a HAL shader module.
func compileShader(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
}
