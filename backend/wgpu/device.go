package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/ribbon"
)

// Device wraps a HAL device and queue. It either owns the underlying
// resources (created by Open) or borrows them from an external provider
// (created by FromProvider); only owned resources are destroyed on Close.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool
}

// Open enumerates GPU adapters through the Vulkan HAL backend and opens
// a device on the first discrete or integrated GPU, falling back to the
// first adapter of any type. Returns an error if the Vulkan backend is
// unavailable or no adapters are found.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	ribbon.Logger().Info("wgpu: GPU device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// FromProvider borrows a HAL device and queue from an external provider.
// The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue. Close on the returned Device does
// not destroy the borrowed resources.
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return &Device{device: device, queue: queue}, nil
}

// FromGPUContext borrows HAL handles from a gpucontext.DeviceProvider,
// the device sharing contract used by gogpu applications. The provider's
// concrete type must additionally expose HalDevice/HalQueue; providers
// that do not cannot share their device and an error is returned.
func FromGPUContext(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, fmt.Errorf("wgpu: nil DeviceProvider")
	}
	return FromProvider(provider)
}

// HalDevice returns the underlying hal.Device, so this Device itself
// satisfies the provider contract accepted by FromProvider.
func (d *Device) HalDevice() any { return d.device }

// HalQueue returns the underlying hal.Queue.
func (d *Device) HalQueue() any { return d.queue }

// Close destroys the device and instance if this Device owns them.
// Safe to call multiple times.
func (d *Device) Close() {
	if !d.owned {
		d.device = nil
		d.queue = nil
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
	d.owned = false
}
