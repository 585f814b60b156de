package shapes

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

// Painter is the immediate-mode drawing API. It owns one paint
// configuration and a save/restore stack, and routes every draw call's
// encoded record into the current Frame, keyed by (shape kind, target).
//
// All painter mutation happens synchronously on the frame's update pass;
// draw calls are pure in-memory appends and perform no GPU work.
type Painter struct {
	cfg   Config
	base  Config
	stack []Config
	frame *Frame
}

// NewPainter creates a painter writing into frame.
func NewPainter(frame *Frame, opts ...PainterOption) *Painter {
	options := defaultPainterOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Painter{
		cfg:   options.config,
		base:  options.config,
		stack: make([]Config, 0, 8),
		frame: frame,
	}
}

// Config returns the active paint configuration for in-place mutation.
// Implements Spawner.
func (p *Painter) Config() *Config {
	return &p.cfg
}

// Frame returns the frame the painter writes into.
func (p *Painter) Frame() *Frame {
	return p.frame
}

// SetFrame points the painter at a new frame, for hosts that rotate frames.
func (p *Painter) SetFrame(f *Frame) {
	p.frame = f
}

// Save pushes a copy of the current configuration onto the stack.
func (p *Painter) Save() {
	p.stack = append(p.stack, p.cfg)
}

// Restore pops the most recently saved configuration and makes it current.
//
// Restore without a matching Save panics: an unbalanced stack is a
// programming error in the caller, not recoverable input.
func (p *Painter) Restore() {
	if len(p.stack) == 0 {
		panic("shapes: Painter.Restore without matching Save")
	}
	p.cfg = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Reset replaces the current configuration with the one the painter was
// constructed with, including any canvas target set through options. The
// save stack is unaffected.
func (p *Painter) Reset() {
	p.cfg = p.base
}

// SaveCount returns the current save stack depth.
func (p *Painter) SaveCount() int {
	return len(p.stack)
}

// Spawn appends the component's encoded record to the batch for the current
// (kind, target). Implements Spawner. Fails with ErrFrameSealed once
// submission has started consuming the frame.
func (p *Painter) Spawn(sc ShapeComponent) error {
	if p.frame.Sealed() {
		return ErrFrameSealed
	}
	sc.appendTo(p.bucket(), p.cfg.Transform)
	return nil
}

func (p *Painter) bucket() *Bucket {
	if p.cfg.Canvas.IsValid() {
		return p.frame.Canvas(p.cfg.Canvas)
	}
	return p.frame.Main()
}

// SetColor sets the current draw color.
func (p *Painter) SetColor(c RGBA) { p.cfg.Color = c }

// SetThickness sets the current stroke thickness.
func (p *Painter) SetThickness(t float32) { p.cfg.Thickness = t }

// SetThicknessType sets the space thickness is measured in.
func (p *Painter) SetThicknessType(t ThicknessType) { p.cfg.ThicknessType = t }

// SetAlignment sets the stroke alignment.
func (p *Painter) SetAlignment(a Alignment) { p.cfg.Alignment = a }

// SetCap sets the stroke cap style.
func (p *Painter) SetCap(c Cap) { p.cfg.Cap = c }

// SetHollow toggles outline drawing for closed shapes.
func (p *Painter) SetHollow(hollow bool) { p.cfg.Hollow = hollow }

// SetRoundness sets the corner rounding for regular polygons.
func (p *Painter) SetRoundness(r float32) { p.cfg.Roundness = r }

// SetCornerRadii sets the per-corner radii used by rectangle draws.
func (p *Painter) SetCornerRadii(radii mgl32.Vec4) { p.cfg.CornerRadii = radii }

// SetRenderLayers sets the layer mask for subsequent draws.
func (p *Painter) SetRenderLayers(mask uint32) { p.cfg.RenderLayers = mask }

// SetPipeline selects the 2D or 3D shader pipeline.
func (p *Painter) SetPipeline(t PipelineType) { p.cfg.Pipeline = t }

// SetCanvas redirects subsequent draw calls to the given canvas entity.
// Pair with Save/Restore to scope the redirection.
func (p *Painter) SetCanvas(e scenegraph.Entity) { p.cfg.Canvas = e }

// ClearCanvas restores the main framebuffer as the draw target.
func (p *Painter) ClearCanvas() { p.cfg.Canvas = scenegraph.Entity{} }

// Translate composes a translation onto the transform in local space.
func (p *Painter) Translate(x, y, z float32) { p.cfg.Translate(x, y, z) }

// Scale composes a scale onto the transform in local space.
func (p *Painter) Scale(x, y, z float32) { p.cfg.Scale(x, y, z) }

// Rotate composes a quaternion rotation onto the transform in local space.
func (p *Painter) Rotate(q mgl32.Quat) { p.cfg.Rotate(q) }

// RotateX composes a rotation about the local X axis, in radians.
func (p *Painter) RotateX(rad float32) { p.cfg.RotateX(rad) }

// RotateY composes a rotation about the local Y axis, in radians.
func (p *Painter) RotateY(rad float32) { p.cfg.RotateY(rad) }

// RotateZ composes a rotation about the local Z axis, in radians.
func (p *Painter) RotateZ(rad float32) { p.cfg.RotateZ(rad) }

// SetTransform replaces the transform entirely.
func (p *Painter) SetTransform(m mgl32.Mat4) { p.cfg.SetTransform(m) }

// Line draws a line segment from start to end.
func (p *Painter) Line(start, end mgl32.Vec3) error { return DrawLine(p, start, end) }

// Rect draws a rectangle of the given full size centered on the origin.
func (p *Painter) Rect(size mgl32.Vec2) error { return DrawRect(p, size) }

// RoundedRect draws a rectangle with one radius on all four corners.
func (p *Painter) RoundedRect(size mgl32.Vec2, radius float32) error {
	return DrawRoundedRect(p, size, radius)
}

// Triangle draws an arbitrary triangle.
func (p *Painter) Triangle(a, b, c mgl32.Vec3) error { return DrawTriangle(p, a, b, c) }

// Ngon draws a regular polygon.
func (p *Painter) Ngon(sides, radius float32) error { return DrawNgon(p, sides, radius) }

// Circle draws a full disc (or ring, when hollow).
func (p *Painter) Circle(radius float32) error { return DrawCircle(p, radius) }

// Arc draws a circular arc between the given angles.
func (p *Painter) Arc(radius, startAngle, endAngle float32) error {
	return DrawArc(p, radius, startAngle, endAngle)
}

// QuadBezier draws a quadratic bezier curve.
func (p *Painter) QuadBezier(start, control, end mgl32.Vec3) error {
	return DrawQuadBezier(p, start, control, end)
}

// CubicBezier draws a cubic bezier curve.
func (p *Painter) CubicBezier(start, control1, control2, end mgl32.Vec3) error {
	return DrawCubicBezier(p, start, control1, control2, end)
}

// Image draws a textured quad sampling the given image handle.
func (p *Painter) Image(image ImageHandle, size mgl32.Vec2) error {
	return DrawImage(p, image, size)
}
