package shapes

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

// ShapeComponent is the closed set of shape types the painter understands:
// Line, Rect, Triangle, Ngon, Disc, QuadBezier, CubicBezier and Quad. Each
// snapshots its style from a Config at construction and knows how to encode
// itself into the matching instance record.
type ShapeComponent interface {
	// Kind returns the shape kind.
	Kind() Kind

	// appendTo encodes the component with the given transform and appends
	// the record to the bucket. Unexported: the record set is a wire-format
	// contract with the shaders, not an extension point.
	appendTo(b *Bucket, tf mgl32.Mat4)
}

// Spawner is anything that can accept a drawn shape: the immediate-mode
// Painter (records go to the current frame) or Commands and ChildCommands
// (shapes become persistent entities). The Draw* free functions give every
// Spawner the full set of shape-kind draw calls.
type Spawner interface {
	// Config returns the spawner's active paint configuration for
	// in-place mutation.
	Config() *Config

	// Spawn accepts a constructed shape component.
	Spawn(ShapeComponent) error
}

// DrawLine draws a line segment from start to end.
func DrawLine(s Spawner, start, end mgl32.Vec3) error {
	c, err := NewLine(s.Config(), start, end)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawRect draws a rectangle of the given full size, centered on the local
// origin, using the config's corner radii and hollow setting.
func DrawRect(s Spawner, size mgl32.Vec2) error {
	c, err := NewRect(s.Config(), size)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawRoundedRect draws a rectangle with the same radius on all four
// corners, overriding the config's per-corner radii for this draw only.
func DrawRoundedRect(s Spawner, size mgl32.Vec2, radius float32) error {
	cfg := *s.Config()
	cfg.CornerRadii = mgl32.Vec4{radius, radius, radius, radius}
	c, err := NewRect(&cfg, size)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawTriangle draws an arbitrary triangle from three local-space points.
func DrawTriangle(s Spawner, a, b, c mgl32.Vec3) error {
	t, err := NewTriangle(s.Config(), a, b, c)
	if err != nil {
		return err
	}
	return s.Spawn(t)
}

// DrawNgon draws a regular polygon with the given side count and radius.
func DrawNgon(s Spawner, sides, radius float32) error {
	c, err := NewNgon(s.Config(), sides, radius)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawCircle draws a full disc (or ring, when the config is hollow).
func DrawCircle(s Spawner, radius float32) error {
	c, err := NewDisc(s.Config(), radius)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawArc draws a circular arc between the given angles (radians,
// counterclockwise from local +X).
func DrawArc(s Spawner, radius, startAngle, endAngle float32) error {
	c, err := NewArc(s.Config(), radius, startAngle, endAngle)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawQuadBezier draws a quadratic bezier curve.
func DrawQuadBezier(s Spawner, start, control, end mgl32.Vec3) error {
	c, err := NewQuadBezier(s.Config(), start, control, end)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawCubicBezier draws a cubic bezier curve.
func DrawCubicBezier(s Spawner, start, control1, control2, end mgl32.Vec3) error {
	c, err := NewCubicBezier(s.Config(), start, control1, control2, end)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// DrawImage draws a textured quad sampling the given image. Passing a
// canvas's image handle composes that canvas's rendered output.
func DrawImage(s Spawner, image ImageHandle, size mgl32.Vec2) error {
	c, err := NewQuad(s.Config(), image, size)
	if err != nil {
		return err
	}
	return s.Spawn(c)
}

// AppendRecord encodes the component with the given world transform and
// appends its record to the bucket. Extraction uses it to re-encode
// persistent entities each frame without going through a painter.
func AppendRecord(b *Bucket, sc ShapeComponent, tf mgl32.Mat4) {
	sc.appendTo(b, tf)
}

// attachComponent stores the component on the entity under its concrete
// type, so extraction can iterate each kind's store directly.
func attachComponent(w *scenegraph.World, e scenegraph.Entity, sc ShapeComponent) error {
	switch c := sc.(type) {
	case Line:
		return scenegraph.Attach(w, e, c)
	case Rect:
		return scenegraph.Attach(w, e, c)
	case Triangle:
		return scenegraph.Attach(w, e, c)
	case Ngon:
		return scenegraph.Attach(w, e, c)
	case Disc:
		return scenegraph.Attach(w, e, c)
	case QuadBezier:
		return scenegraph.Attach(w, e, c)
	case CubicBezier:
		return scenegraph.Attach(w, e, c)
	case Quad:
		return scenegraph.Attach(w, e, c)
	default:
		return scenegraph.Attach(w, e, sc)
	}
}
