package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/bzm3r/vectorshapes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (a gogpu.App, a windowing layer, a test harness) implements
// DeviceHandle and passes it in; this package receives the device, it never
// creates one. Sharing the host's device keeps shape rendering on the same
// queue as the rest of the application's GPU work.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so any provider in
// the gpucontext ecosystem plugs in directly.
type DeviceHandle = gpucontext.DeviceProvider

// NewSubmitter builds the best submitter the handle supports: a GPU
// submitter when the handle exposes HAL device access, otherwise the
// software submitter. The fallback is logged at Warn level.
func NewSubmitter(handle DeviceHandle, images *Images) (Submitter, error) {
	device, queue, err := halFrom(handle)
	if err != nil {
		shapes.Logger().Warn("falling back to CPU rendering", "err", err)
		return NewSoftwareSubmitter(images), nil
	}
	return NewGPUSubmitter(device, queue, images)
}

// NewGPUSubmitterFromHandle unwraps the handle's HAL device and queue and
// builds a GPU submitter on them. Fails if the handle has no GPU behind it;
// use NewSubmitter for automatic software fallback.
func NewGPUSubmitterFromHandle(handle DeviceHandle, images *Images) (*GPUSubmitter, error) {
	device, queue, err := halFrom(handle)
	if err != nil {
		return nil, err
	}
	return NewGPUSubmitter(device, queue, images)
}

// halFrom extracts the HAL device and queue behind a handle. Providers
// expose them through untyped HalDevice/HalQueue accessors so gpucontext
// does not depend on a concrete backend.
func halFrom(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("render: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("render: handle HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("render: handle HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// NullDeviceHandle is a DeviceHandle with no device behind it. Feeding it
// to NewSubmitter selects CPU-only rendering.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
