package shapes

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

// PipelineType selects which shader pipeline family a shape is drawn with.
type PipelineType uint8

const (
	// Shape2D draws in the 2D pipeline (alpha-blended, no depth write).
	Shape2D PipelineType = iota
	// Shape3D draws in the 3D pipeline (depth-tested).
	Shape3D
)

// Config is the paint configuration active at the moment a shape is drawn:
// the transform, color, thickness and style the encoder snapshots into each
// instance record, plus the routing state (target canvas, render layers,
// pipeline).
//
// Mutating a Config performs no GPU work; it only changes what subsequent
// draw calls encode.
type Config struct {
	// Transform is the current model transform. Translate/Rotate/Scale
	// compose onto it in local space (right-multiplication).
	Transform mgl32.Mat4

	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Cap           Cap

	// Hollow draws closed shapes (discs, rects, ngons) as outlines.
	Hollow bool

	// CornerRadii are the per-corner radii used by rectangle draws, in the
	// order top-left, top-right, bottom-right, bottom-left.
	CornerRadii mgl32.Vec4

	// Roundness rounds the corners of regular polygon draws.
	Roundness float32

	// Canvas redirects draw calls to the batch queue of the given canvas
	// entity instead of the main framebuffer. The zero Entity targets the
	// main framebuffer.
	Canvas scenegraph.Entity

	// RenderLayers is the layer mask the shape belongs to; cameras only
	// render shapes whose mask intersects their own.
	RenderLayers uint32

	// Pipeline selects the 2D or 3D shader pipeline.
	Pipeline PipelineType
}

// DefaultConfig returns the canonical default paint configuration: identity
// transform, white fill, thickness 1 in world units, centered round-capped
// strokes, layer 0, 2D pipeline, main framebuffer target.
func DefaultConfig() Config {
	return Config{
		Transform:     mgl32.Ident4(),
		Color:         White,
		Thickness:     1,
		ThicknessType: ThicknessWorld,
		Alignment:     AlignmentCenter,
		Cap:           CapRound,
		RenderLayers:  1,
		Pipeline:      Shape2D,
	}
}

// WithoutTransform returns a copy of the config with an identity transform.
// Child-shape scopes use it so children do not inherit the parent's
// placement twice: the parent entity's transform already carries it.
func (c Config) WithoutTransform() Config {
	c.Transform = mgl32.Ident4()
	return c
}

// Translate composes a translation onto the transform in local space.
func (c *Config) Translate(x, y, z float32) {
	c.Transform = c.Transform.Mul4(mgl32.Translate3D(x, y, z))
}

// Scale composes a scale onto the transform in local space.
func (c *Config) Scale(x, y, z float32) {
	c.Transform = c.Transform.Mul4(mgl32.Scale3D(x, y, z))
}

// Rotate composes a quaternion rotation onto the transform in local space.
func (c *Config) Rotate(q mgl32.Quat) {
	c.Transform = c.Transform.Mul4(q.Mat4())
}

// RotateX composes a rotation about the local X axis, in radians.
func (c *Config) RotateX(rad float32) {
	c.Transform = c.Transform.Mul4(mgl32.HomogRotate3DX(rad))
}

// RotateY composes a rotation about the local Y axis, in radians.
func (c *Config) RotateY(rad float32) {
	c.Transform = c.Transform.Mul4(mgl32.HomogRotate3DY(rad))
}

// RotateZ composes a rotation about the local Z axis, in radians.
func (c *Config) RotateZ(rad float32) {
	c.Transform = c.Transform.Mul4(mgl32.HomogRotate3DZ(rad))
}

// SetTransform replaces the transform entirely.
func (c *Config) SetTransform(m mgl32.Mat4) {
	c.Transform = m
}

// flags packs the config's style fields into the record flag word.
func (c *Config) flags() Flags {
	return styleFlags(c.ThicknessType, c.Alignment, c.Cap, c.Hollow)
}
