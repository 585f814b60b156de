package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderTarget is a destination shapes can be rendered into:
//
//   - PixmapTarget: CPU-backed *image.RGBA for software rendering
//   - TextureTarget: off-screen GPU texture, used for canvases
//   - SurfaceTarget: window surface view owned by the host
//
// Targets support CPU access (Pixels), GPU access (View), or both; the
// submitter picks whichever it needs.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// View returns the GPU texture view for this target, or nil for
	// CPU-only targets.
	View() hal.TextureView

	// Pixels returns direct access to pixel data, or nil for GPU-only
	// targets. For RGBA formats each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row, or 0 for GPU-only
	// targets.
	Stride() int
}

// PixmapTarget is a CPU-backed render target over an *image.RGBA. It is the
// target the software submitter renders into, and the software form of a
// canvas texture.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Bounds().Dy() }

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// View returns nil as this is a CPU-only target.
func (t *PixmapTarget) View() hal.TextureView { return nil }

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int { return t.img.Stride }

// Image returns the underlying *image.RGBA, sharing memory with the target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

var _ RenderTarget = (*PixmapTarget)(nil)

// depthFormat is the depth buffer format for all GPU targets that carry one.
const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// TextureTarget is an off-screen GPU texture render target with an owned
// depth buffer. Canvases render into one and expose it for sampling, which
// is how painter.Image composes a canvas's output into another target.
type TextureTarget struct {
	device    hal.Device
	tex       hal.Texture
	view      hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView

	width  int
	height int
	format gputypes.TextureFormat
}

// NewTextureTarget creates an off-screen texture target on the given device.
// The color texture is both a render attachment and sampleable; a matching
// depth buffer is allocated alongside it.
func NewTextureTarget(device hal.Device, width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	size := hal.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shape_canvas",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create canvas texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "shape_canvas_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create canvas view: %w", err)
	}

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shape_canvas_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create canvas depth texture: %w", err)
	}

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "shape_canvas_depth_view",
	})
	if err != nil {
		device.DestroyTexture(depthTex)
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create canvas depth view: %w", err)
	}

	return &TextureTarget{
		device:    device,
		tex:       tex,
		view:      view,
		depthTex:  depthTex,
		depthView: depthView,
		width:     width,
		height:    height,
		format:    format,
	}, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat { return t.format }

// View returns the GPU texture view.
func (t *TextureTarget) View() hal.TextureView { return t.view }

// Texture returns the underlying texture, for sampling bind groups.
func (t *TextureTarget) Texture() hal.Texture { return t.tex }

// DepthView returns the view of the owned depth buffer.
func (t *TextureTarget) DepthView() hal.TextureView { return t.depthView }

// Pixels returns nil as this is a GPU-only target.
func (t *TextureTarget) Pixels() []byte { return nil }

// Stride returns 0 as this is a GPU-only target.
func (t *TextureTarget) Stride() int { return 0 }

// Destroy releases the color and depth textures and their views. Safe to
// call more than once.
func (t *TextureTarget) Destroy() {
	if t.depthView != nil {
		t.device.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		t.device.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

var _ RenderTarget = (*TextureTarget)(nil)

// SurfaceTarget wraps a window surface view owned by the host application,
// letting the renderer draw the main pass straight to the display.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   hal.TextureView
}

// NewSurfaceTarget creates a render target from the host's current surface
// view. The view is valid for one frame; hosts recreate the target (or swap
// the view) each frame.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view hal.TextureView) *SurfaceTarget {
	return &SurfaceTarget{width: width, height: height, format: format, view: view}
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int { return t.width }

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int { return t.height }

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.format }

// View returns the current frame's texture view.
func (t *SurfaceTarget) View() hal.TextureView { return t.view }

// Pixels returns nil as surfaces do not support CPU access.
func (t *SurfaceTarget) Pixels() []byte { return nil }

// Stride returns 0 as surfaces do not support CPU access.
func (t *SurfaceTarget) Stride() int { return 0 }

var _ RenderTarget = (*SurfaceTarget)(nil)
