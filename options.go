package shapes

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

// PainterOption configures a Painter at construction time.
type PainterOption func(*painterOptions)

type painterOptions struct {
	config Config
}

func defaultPainterOptions() painterOptions {
	return painterOptions{config: DefaultConfig()}
}

// WithConfig seeds the painter with a full paint configuration. It becomes
// both the active config and the one Reset returns to.
func WithConfig(cfg Config) PainterOption {
	return func(o *painterOptions) {
		o.config = cfg
	}
}

// WithColor sets the painter's starting color.
func WithColor(c RGBA) PainterOption {
	return func(o *painterOptions) {
		o.config.Color = c
	}
}

// WithThickness sets the painter's starting stroke thickness.
func WithThickness(t float32) PainterOption {
	return func(o *painterOptions) {
		o.config.Thickness = t
	}
}

// WithTransform sets the painter's starting transform.
func WithTransform(m mgl32.Mat4) PainterOption {
	return func(o *painterOptions) {
		o.config.Transform = m
	}
}

// WithCanvas directs the painter's draws at the given canvas entity from the
// start. Reset keeps the redirection; use ClearCanvas to drop it.
func WithCanvas(e scenegraph.Entity) PainterOption {
	return func(o *painterOptions) {
		o.config.Canvas = e
	}
}

// WithPipeline selects the painter's starting pipeline.
func WithPipeline(t PipelineType) PainterOption {
	return func(o *painterOptions) {
		o.config.Pipeline = t
	}
}

// WithRenderLayers sets the painter's starting layer mask.
func WithRenderLayers(mask uint32) PainterOption {
	return func(o *painterOptions) {
		o.config.RenderLayers = mask
	}
}
