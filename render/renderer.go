package render

import (
	"fmt"

	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

// Renderer drives one frame end to end: it extracts persistent shape
// entities into the frame, renders every canvas that needs it, renders the
// main pass and resets the frame for the next collect phase.
//
// The submitter decides where the work runs; the renderer is the same for
// the GPU and software paths.
type Renderer struct {
	world     *scenegraph.World
	frame     *shapes.Frame
	images    *Images
	submitter Submitter
}

// NewRenderer creates a renderer over the given world, frame and submitter.
func NewRenderer(world *scenegraph.World, frame *shapes.Frame, images *Images, submitter Submitter) *Renderer {
	return &Renderer{world: world, frame: frame, images: images, submitter: submitter}
}

// Frame returns the frame the renderer drains. Painters targeting this
// renderer draw into it.
func (r *Renderer) Frame() *shapes.Frame {
	return r.frame
}

// RenderFrame renders one frame into the main target. Canvas passes run
// first, in spawn order, so a canvas sampled by a main-pass quad shows this
// frame's content. The frame is reset afterwards whether or not submission
// succeeded; records never survive into a later frame.
func (r *Renderer) RenderFrame(target RenderTarget, cam Camera, clear shapes.RGBA) error {
	Extract(r.world, r.frame, cam)
	r.frame.Seal()
	defer r.frame.Reset()

	if err := r.renderCanvases(); err != nil {
		return err
	}
	if err := r.submitter.Submit(r.frame.Main(), target, cam, clear); err != nil {
		return fmt.Errorf("render main pass: %w", err)
	}
	return nil
}

// renderCanvases runs every canvas pass due this frame: continuous canvases
// every frame, persistent and on-demand canvases only while a redraw is
// pending. A due canvas renders even with an empty batch, so it still
// clears. Frame batches aimed at entities that are no longer live canvases
// are dropped.
func (r *Renderer) renderCanvases() error {
	live := make(map[scenegraph.Entity]bool)

	var firstErr error
	scenegraph.Each(r.world, func(e scenegraph.Entity, c Canvas) {
		live[e] = true
		if firstErr != nil || !c.NeedsRender() {
			return
		}
		if err := r.renderCanvas(e, c); err != nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return firstErr
	}

	for _, e := range r.frame.CanvasTargets() {
		if !live[e] {
			shapes.Logger().Warn("dropping draws for stale canvas target",
				"entity", e.ID, "records", r.frame.Canvas(e).Len())
		}
	}
	return nil
}

func (r *Renderer) renderCanvas(e scenegraph.Entity, c Canvas) error {
	target, err := r.images.Resolve(c.Image)
	if err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}

	var empty shapes.Bucket
	batch := &empty
	if b, ok := r.canvasBatch(e); ok {
		batch = b
	}

	if err := r.submitter.Submit(batch, target, c.Camera, c.ClearColor); err != nil {
		return fmt.Errorf("render canvas pass: %w", err)
	}

	if c.dirty {
		c.dirty = false
		if err := scenegraph.Attach(r.world, e, c); err != nil {
			return err
		}
	}
	return nil
}

// canvasBatch returns the frame bucket for a canvas entity without creating
// one, so an undrawn canvas does not enter the frame's target list.
func (r *Renderer) canvasBatch(e scenegraph.Entity) (*shapes.Bucket, bool) {
	for _, t := range r.frame.CanvasTargets() {
		if t == e {
			return r.frame.Canvas(e), true
		}
	}
	return nil, false
}
