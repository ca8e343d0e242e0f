package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var (
	// ErrNoBackend is returned when the Vulkan HAL backend is not compiled
	// in or failed to register.
	ErrNoBackend = errors.New("wgpu: vulkan backend not available")

	// ErrNoAdapter is returned when no GPU adapter is exposed by the
	// instance.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")
)

// deviceHandle owns the HAL instance, device, and queue for one renderer.
type deviceHandle struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
}

// openDevice creates a standalone Vulkan device, preferring discrete then
// integrated adapters. Any failure here is fatal for the renderer
// constructor; the caller is expected to fall back to the CPU backend.
func openDevice() (*deviceHandle, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	selected := &adapters[0]
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		found := false
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				selected = &adapters[i]
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	return &deviceHandle{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}, nil
}

// Close destroys the device and instance. Safe to call once.
func (d *deviceHandle) Close() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
