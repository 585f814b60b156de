// Package shapes provides an immediate-mode vector-shape painter that turns
// lines, curves, discs, rectangles, polygons and textured quads into packed,
// GPU-ready instance records, batched per shape kind and per render target.
//
// # Overview
//
// A Painter holds the current draw configuration (transform, color,
// thickness, style, target canvas) and a save/restore stack. Every draw call
// encodes one fixed-layout instance record and appends it to the current
// Frame, keyed by (shape kind, target). The render package consumes the
// Frame once per frame: canvases first, main target last, one instanced draw
// call per non-empty batch.
//
//	world := scenegraph.NewWorld()
//	frame := shapes.NewFrame()
//	p := shapes.NewPainter(frame)
//
//	p.SetColor(shapes.Crimson)
//	p.SetThickness(2)
//	p.Translate(0, 10, 0)
//	p.Circle(48)
//
// Shapes can also be spawned as persistent entities through Commands; they
// are re-encoded from the scene graph every frame for as long as they exist.
//
// # Numeric policy
//
// Draw calls reject non-finite geometry: any NaN or Inf parameter fails the
// call with ErrInvalidGeometry and nothing is enqueued. The policy is
// uniform across all shape kinds.
//
// # Record layout
//
// Instance records are wire-format structs: their byte layout is fixed,
// tightly packed, and mirrored one-to-one by the vertex-attribute layouts
// the render package hands to the GPU. Field order and the packed flags bit
// ranges (see Flags) must not change without changing the shaders.
package shapes
