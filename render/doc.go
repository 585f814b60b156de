// Package render turns the records collected by the shapes package into
// pixels. It owns render targets, cameras, the off-screen canvas compositor
// and the per-kind shader pipelines, and submits batches either through a
// wgpu device provided by the host or through the built-in software
// rasterizer.
//
// The package never creates a GPU device. Hosts pass a DeviceHandle
// (gpucontext.DeviceProvider) and the renderer shares the host's device and
// queue. Without a device, NewSoftwareSubmitter renders the same batches on
// the CPU.
package render
