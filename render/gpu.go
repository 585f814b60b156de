package render

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"honnef.co/go/safeish"

	"github.com/bzm3r/vectorshapes"
)

// gpuWaitTimeout bounds the completion wait after each submission.
const gpuWaitTimeout = 5 * time.Second

// Submitter consumes one target's batches for a frame. The GPU submitter
// encodes instanced draws on the host's device; the software submitter
// rasterizes the same records on the CPU.
type Submitter interface {
	// Submit clears the target and draws the batch into it, kinds in Kind
	// order, records within a kind in draw order.
	Submit(batch *shapes.Bucket, target RenderTarget, cam Camera, clear shapes.RGBA) error
}

type pipelineKey struct {
	kind   shapes.Kind
	format gputypes.TextureFormat
	depth  bool
}

// depthTarget is implemented by render targets owning a depth buffer.
type depthTarget interface {
	DepthView() hal.TextureView
}

// GPUSubmitter renders shape batches through gogpu/wgpu. One pipeline per
// (shape kind, target format) pair is created lazily and cached; every
// record slice is uploaded as an instance buffer and drawn as a 4-vertex
// triangle strip per instance.
type GPUSubmitter struct {
	device hal.Device
	queue  hal.Queue
	images *Images

	shaders       map[shapes.Kind]hal.ShaderModule
	pipelines     map[pipelineKey]hal.RenderPipeline
	cameraLayout  hal.BindGroupLayout
	imageLayout   hal.BindGroupLayout
	plainLayout   hal.PipelineLayout
	sampledLayout hal.PipelineLayout
	sampler       hal.Sampler

	// imageBinds caches sampling bind groups per image handle.
	imageBinds map[shapes.ImageHandle]hal.BindGroup
}

// NewGPUSubmitter creates a submitter on the host's device and queue. The
// images registry resolves quad image handles to canvas textures.
func NewGPUSubmitter(device hal.Device, queue hal.Queue, images *Images) (*GPUSubmitter, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("render: nil device or queue")
	}
	s := &GPUSubmitter{
		device:     device,
		queue:      queue,
		images:     images,
		shaders:    make(map[shapes.Kind]hal.ShaderModule),
		pipelines:  make(map[pipelineKey]hal.RenderPipeline),
		imageBinds: make(map[shapes.ImageHandle]hal.BindGroup),
	}
	if err := s.createLayouts(); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *GPUSubmitter) createLayouts() error {
	cameraLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shape_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}
	s.cameraLayout = cameraLayout

	imageLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shape_image_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create image layout: %w", err)
	}
	s.imageLayout = imageLayout

	plainLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shape_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	s.plainLayout = plainLayout

	sampledLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shape_sampled_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.cameraLayout, s.imageLayout},
	})
	if err != nil {
		return fmt.Errorf("create sampled pipeline layout: %w", err)
	}
	s.sampledLayout = sampledLayout

	sampler, err := s.device.CreateSampler(&hal.SamplerDescriptor{
		Label:     "shape_image_sampler",
		MagFilter: gputypes.FilterModeLinear,
		MinFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	s.sampler = sampler
	return nil
}

// pipelineFor returns the cached pipeline for a kind, target format and
// depth-attachment presence, creating it on first use.
func (s *GPUSubmitter) pipelineFor(spec PipelineSpec, format gputypes.TextureFormat, depth bool) (hal.RenderPipeline, error) {
	key := pipelineKey{kind: spec.Kind, format: format, depth: depth}
	if p, ok := s.pipelines[key]; ok {
		return p, nil
	}

	shader, ok := s.shaders[spec.Kind]
	if !ok {
		var err error
		shader, err = s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  spec.Label + "_shader",
			Source: hal.ShaderSource{WGSL: spec.Source},
		})
		if err != nil {
			return nil, fmt.Errorf("compile %s shader: %w", spec.Label, err)
		}
		s.shaders[spec.Kind] = shader
	}

	layout := s.plainLayout
	if spec.Sampled {
		layout = s.sampledLayout
	}

	// Depth writes stay disabled: blending is governed by draw order, the
	// depth buffer exists for hosts that mix these passes with depth-tested
	// content.
	var depthState *hal.DepthStencilState
	if depth {
		depthState = &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		}
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  spec.Label + "_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    spec.Buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthState,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", spec.Label, err)
	}
	s.pipelines[key] = pipeline
	return pipeline, nil
}

// Submit implements Submitter.
func (s *GPUSubmitter) Submit(batch *shapes.Bucket, target RenderTarget, cam Camera, clear shapes.RGBA) error {
	view := target.View()
	if view == nil {
		return fmt.Errorf("render: target has no GPU view")
	}
	format := target.Format()

	var depthView hal.TextureView
	if dt, ok := target.(depthTarget); ok {
		depthView = dt.DepthView()
	}

	uniformBuf, err := s.createAndUpload("shape_camera_uniform",
		cam.uniformBytes(float32(target.Width()), float32(target.Height())),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer s.device.DestroyBuffer(uniformBuf)

	cameraBind, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "shape_camera_bind",
		Layout: s.cameraLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: cameraUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group: %w", err)
	}
	defer s.device.DestroyBindGroup(cameraBind)

	// Upload every non-empty kind's records up front so the render pass
	// only records state changes and draws.
	type kindDraw struct {
		spec      PipelineSpec
		pipeline  hal.RenderPipeline
		buf       hal.Buffer
		instances uint32
	}
	var draws []kindDraw
	defer func() {
		for _, d := range draws {
			s.device.DestroyBuffer(d.buf)
		}
	}()
	var quadRecords []shapes.QuadData
	for _, spec := range PipelineSpecs() {
		data, count := recordBytes(batch, spec.Kind)
		if count == 0 {
			continue
		}
		pipeline, err := s.pipelineFor(spec, format, depthView != nil)
		if err != nil {
			return err
		}
		buf, err := s.createAndUpload(spec.Label+"_instances", data,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		draws = append(draws, kindDraw{spec: spec, pipeline: pipeline, buf: buf, instances: uint32(count)})
		if spec.Kind == shapes.KindQuad {
			quadRecords = batch.Quads
		}
	}

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "shape_submit",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("shape_submit"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rpDesc := &hal.RenderPassDescriptor{
		Label: "shape_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: float64(clear.A)},
			},
		},
	}
	if depthView != nil {
		rpDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		}
	}
	rp := encoder.BeginRenderPass(rpDesc)
	for _, d := range draws {
		rp.SetPipeline(d.pipeline)
		rp.SetBindGroup(0, cameraBind, nil)
		rp.SetVertexBuffer(0, d.buf, 0)
		if d.spec.Kind == shapes.KindQuad {
			s.drawQuadRuns(rp, quadRecords)
			continue
		}
		rp.Draw(verticesPerInstance, d.instances, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	index, err := s.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	// The buffers and the command buffer are released on return, so the
	// submission must be complete before then.
	deadline := time.Now().Add(gpuWaitTimeout)
	for s.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("wait for GPU: submission %d not complete after %v", index, gpuWaitTimeout)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

// drawQuadRuns issues one draw per run of consecutive quads sampling the
// same image, rebinding the texture between runs. Handles that do not
// resolve to a GPU texture are skipped.
func (s *GPUSubmitter) drawQuadRuns(rp hal.RenderPassEncoder, quads []shapes.QuadData) {
	for start := 0; start < len(quads); {
		img := shapes.ImageHandle(quads[start].Image)
		end := start + 1
		for end < len(quads) && shapes.ImageHandle(quads[end].Image) == img {
			end++
		}
		if bind := s.imageBind(img); bind != nil {
			rp.SetBindGroup(1, bind, nil)
			rp.Draw(verticesPerInstance, uint32(end-start), 0, uint32(start))
		}
		start = end
	}
}

// imageBind returns the cached sampling bind group for an image handle.
func (s *GPUSubmitter) imageBind(h shapes.ImageHandle) hal.BindGroup {
	if bind, ok := s.imageBinds[h]; ok {
		return bind
	}
	target, err := s.images.Resolve(h)
	if err != nil {
		return nil
	}
	tt, ok := target.(*TextureTarget)
	if !ok {
		return nil
	}
	bind, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "shape_image_bind",
		Layout: s.imageLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: tt.View().NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: s.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil
	}
	s.imageBinds[h] = bind
	return bind
}

// InvalidateImage drops the cached bind group for a handle, for hosts that
// destroy or replace a canvas texture.
func (s *GPUSubmitter) InvalidateImage(h shapes.ImageHandle) {
	if bind, ok := s.imageBinds[h]; ok {
		s.device.DestroyBindGroup(bind)
		delete(s.imageBinds, h)
	}
}

func (s *GPUSubmitter) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := s.queue.WriteBuffer(buf, 0, data); err != nil {
		s.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

// Destroy releases all GPU resources. Safe to call more than once.
func (s *GPUSubmitter) Destroy() {
	for h, bind := range s.imageBinds {
		s.device.DestroyBindGroup(bind)
		delete(s.imageBinds, h)
	}
	for key, p := range s.pipelines {
		s.device.DestroyRenderPipeline(p)
		delete(s.pipelines, key)
	}
	for k, sh := range s.shaders {
		s.device.DestroyShaderModule(sh)
		delete(s.shaders, k)
	}
	if s.sampler != nil {
		s.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
	if s.sampledLayout != nil {
		s.device.DestroyPipelineLayout(s.sampledLayout)
		s.sampledLayout = nil
	}
	if s.plainLayout != nil {
		s.device.DestroyPipelineLayout(s.plainLayout)
		s.plainLayout = nil
	}
	if s.imageLayout != nil {
		s.device.DestroyBindGroupLayout(s.imageLayout)
		s.imageLayout = nil
	}
	if s.cameraLayout != nil {
		s.device.DestroyBindGroupLayout(s.cameraLayout)
		s.cameraLayout = nil
	}
}

var _ Submitter = (*GPUSubmitter)(nil)

// recordBytes reinterprets a kind's record slice as raw bytes for upload.
func recordBytes(b *shapes.Bucket, k shapes.Kind) ([]byte, int) {
	switch k {
	case shapes.KindLine:
		return safeish.SliceCast[[]byte](b.Lines), len(b.Lines)
	case shapes.KindRect:
		return safeish.SliceCast[[]byte](b.Rects), len(b.Rects)
	case shapes.KindTriangle:
		return safeish.SliceCast[[]byte](b.Triangles), len(b.Triangles)
	case shapes.KindNgon:
		return safeish.SliceCast[[]byte](b.Ngons), len(b.Ngons)
	case shapes.KindDisc:
		return safeish.SliceCast[[]byte](b.Discs), len(b.Discs)
	case shapes.KindQuadBezier:
		return safeish.SliceCast[[]byte](b.QuadBeziers), len(b.QuadBeziers)
	case shapes.KindCubicBezier:
		return safeish.SliceCast[[]byte](b.CubicBeziers), len(b.CubicBeziers)
	case shapes.KindQuad:
		return safeish.SliceCast[[]byte](b.Quads), len(b.Quads)
	default:
		return nil, 0
	}
}
