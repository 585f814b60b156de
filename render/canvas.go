package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

// ErrUnknownImage is returned when an image handle does not resolve to a
// registered target or texture.
var ErrUnknownImage = errors.New("render: unknown image handle")

// CanvasMode controls when a canvas's texture is re-rendered.
type CanvasMode uint8

const (
	// Continuous re-renders the canvas every frame.
	Continuous CanvasMode = iota
	// Persistent renders the canvas once, then keeps the texture until an
	// explicit redraw request.
	Persistent
	// OnDemand renders the canvas only on explicit redraw requests. Until
	// the first request, the texture holds the clear color.
	OnDemand
)

func (m CanvasMode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Persistent:
		return "persistent"
	case OnDemand:
		return "ondemand"
	default:
		return fmt.Sprintf("canvasmode(%d)", uint8(m))
	}
}

// CanvasConfig describes a canvas at spawn time.
type CanvasConfig struct {
	Width  int
	Height int
	Mode   CanvasMode

	// ClearColor fills the canvas at the start of every render.
	ClearColor shapes.RGBA

	// RenderLayers is the layer mask of the canvas's camera. Zero means
	// layer 0 (mask 1).
	RenderLayers uint32
}

// DefaultCanvasConfig returns a transparent continuous canvas of the given
// size, rendering layer 0.
func DefaultCanvasConfig(width, height int) CanvasConfig {
	return CanvasConfig{Width: width, Height: height, Mode: Continuous, ClearColor: shapes.Transparent, RenderLayers: 1}
}

// Canvas is the component carried by canvas entities: an off-screen render
// target plus the redraw state machine. Shapes drawn with the canvas as
// their target render into its texture instead of the main pass; the
// texture is sampled through Image, so canvases compose into any other
// target, including each other.
type Canvas struct {
	Width      int
	Height     int
	Mode       CanvasMode
	ClearColor shapes.RGBA

	// Camera renders the canvas pass. Each canvas owns exactly one; it
	// starts as a centered orthographic projection over the canvas size,
	// scoped to the config's layer mask.
	Camera Camera

	// Image samples this canvas's rendered output.
	Image shapes.ImageHandle

	// dirty requests a render for the non-continuous modes. Persistent
	// canvases spawn dirty so they render their first frame; on-demand
	// canvases spawn clean and render nothing until Redraw.
	dirty bool
}

// NeedsRender reports whether the canvas should be rendered this frame.
func (c Canvas) NeedsRender() bool {
	return c.Mode == Continuous || c.dirty
}

// Images maps image handles to the targets or textures behind them. Canvas
// textures register here at spawn; hosts can also register loaded textures
// for painter.Image draws.
type Images struct {
	next    shapes.ImageHandle
	targets map[shapes.ImageHandle]RenderTarget
}

// NewImages creates an empty image registry.
func NewImages() *Images {
	return &Images{next: 1, targets: make(map[shapes.ImageHandle]RenderTarget)}
}

// Register adds a target and returns its handle.
func (r *Images) Register(t RenderTarget) shapes.ImageHandle {
	h := r.next
	r.next++
	r.targets[h] = t
	return h
}

// Resolve returns the target behind a handle.
func (r *Images) Resolve(h shapes.ImageHandle) (RenderTarget, error) {
	t, ok := r.targets[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownImage, h)
	}
	return t, nil
}

// Release drops a handle. The caller owns destroying the target.
func (r *Images) Release(h shapes.ImageHandle) {
	delete(r.targets, h)
}

// SpawnCanvas creates a canvas entity: it allocates the backing target with
// alloc, registers it for sampling and attaches the Canvas component. The
// returned entity is both the painter's draw target (Config.Canvas) and the
// owner of the texture, and the Canvas component's Image handle samples it.
func SpawnCanvas(w *scenegraph.World, images *Images, cfg CanvasConfig, alloc TargetAllocator) (scenegraph.Entity, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return scenegraph.Entity{}, fmt.Errorf("render: canvas size %dx%d", cfg.Width, cfg.Height)
	}
	target, err := alloc(cfg.Width, cfg.Height)
	if err != nil {
		return scenegraph.Entity{}, fmt.Errorf("allocate canvas target: %w", err)
	}

	camera := OrthographicCamera(float32(cfg.Width), float32(cfg.Height))
	if cfg.RenderLayers != 0 {
		camera.RenderLayers = cfg.RenderLayers
	}

	e := w.Spawn()
	canvas := Canvas{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Mode:       cfg.Mode,
		ClearColor: cfg.ClearColor,
		Camera:     camera,
		Image:      images.Register(target),
		dirty:      cfg.Mode == Persistent,
	}
	if err := scenegraph.Attach(w, e, canvas); err != nil {
		images.Release(canvas.Image)
		w.Despawn(e)
		return scenegraph.Entity{}, err
	}
	return e, nil
}

// TargetAllocator creates the backing target for a canvas: a TextureTarget
// on the GPU path, a PixmapTarget on the software path.
type TargetAllocator func(width, height int) (RenderTarget, error)

// PixmapAllocator allocates CPU-backed canvas targets.
func PixmapAllocator(width, height int) (RenderTarget, error) {
	return NewPixmapTarget(width, height), nil
}

// TextureAllocator returns an allocator creating GPU canvas textures in the
// given format on the device.
func TextureAllocator(device hal.Device, format gputypes.TextureFormat) TargetAllocator {
	return func(width, height int) (RenderTarget, error) {
		return NewTextureTarget(device, width, height, format)
	}
}

// DestroyCanvas releases the canvas's image handle and despawns the entity.
// Frames that already queued draws for it drop them at submission.
func DestroyCanvas(w *scenegraph.World, images *Images, e scenegraph.Entity) {
	if c, ok := scenegraph.Get[Canvas](w, e); ok {
		if t, err := images.Resolve(c.Image); err == nil {
			if tt, ok := t.(*TextureTarget); ok {
				tt.Destroy()
			}
		}
		images.Release(c.Image)
	}
	w.Despawn(e)
}

// Redraw requests a render of a Persistent or OnDemand canvas on the next
// frame. Continuous canvases render every frame regardless.
func Redraw(w *scenegraph.World, e scenegraph.Entity) error {
	c, ok := scenegraph.Get[Canvas](w, e)
	if !ok {
		return scenegraph.ErrDeadEntity
	}
	c.dirty = true
	return scenegraph.Attach(w, e, c)
}

// SetCanvasMode changes the canvas's redraw mode. Changing the mode never
// triggers a render by itself; a pending redraw request is kept.
func SetCanvasMode(w *scenegraph.World, e scenegraph.Entity, mode CanvasMode) error {
	c, ok := scenegraph.Get[Canvas](w, e)
	if !ok {
		return scenegraph.ErrDeadEntity
	}
	c.Mode = mode
	return scenegraph.Attach(w, e, c)
}

// SetCanvasCamera replaces the canvas's camera, for hosts that want a
// different projection or layer mask than the spawn-time default.
func SetCanvasCamera(w *scenegraph.World, e scenegraph.Entity, cam Camera) error {
	c, ok := scenegraph.Get[Canvas](w, e)
	if !ok {
		return scenegraph.ErrDeadEntity
	}
	c.Camera = cam
	return scenegraph.Attach(w, e, c)
}

// CanvasImage returns the handle sampling the canvas's rendered output.
func CanvasImage(w *scenegraph.World, e scenegraph.Entity) (shapes.ImageHandle, error) {
	c, ok := scenegraph.Get[Canvas](w, e)
	if !ok {
		return 0, scenegraph.ErrDeadEntity
	}
	return c.Image, nil
}
