package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/bzm3r/vectorshapes"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

//go:embed shaders/rect.wgsl
var rectShaderSource string

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

//go:embed shaders/ngon.wgsl
var ngonShaderSource string

//go:embed shaders/disc.wgsl
var discShaderSource string

//go:embed shaders/quad_bezier.wgsl
var quadBezierShaderSource string

//go:embed shaders/cubic_bezier.wgsl
var cubicBezierShaderSource string

//go:embed shaders/quad.wgsl
var quadShaderSource string

// PipelineSpec describes one shape kind's render pipeline: the WGSL source
// and the instance vertex layout matching the kind's record. Every pipeline
// draws a 4-vertex triangle strip per instance; the vertex shader expands
// the strip into the shape's bounding quad and the fragment shader
// evaluates the shape's signed distance field.
type PipelineSpec struct {
	Kind   shapes.Kind
	Label  string
	Source string

	// Buffers is the instance-stepped vertex layout for the kind's record.
	Buffers []gputypes.VertexBufferLayout

	// Sampled marks pipelines binding an image (group 1) in addition to
	// the camera uniform (group 0).
	Sampled bool
}

// verticesPerInstance is the strip length each instance draws.
const verticesPerInstance = 4

// PipelineSpecs returns the specs for all shape kinds, in Kind order. This
// order is also the cross-kind draw order within a target.
func PipelineSpecs() []PipelineSpec {
	return []PipelineSpec{
		{Kind: shapes.KindLine, Label: "shape_line", Source: lineShaderSource, Buffers: shapes.LineVertexLayout()},
		{Kind: shapes.KindRect, Label: "shape_rect", Source: rectShaderSource, Buffers: shapes.RectVertexLayout()},
		{Kind: shapes.KindTriangle, Label: "shape_triangle", Source: triangleShaderSource, Buffers: shapes.TriangleVertexLayout()},
		{Kind: shapes.KindNgon, Label: "shape_ngon", Source: ngonShaderSource, Buffers: shapes.NgonVertexLayout()},
		{Kind: shapes.KindDisc, Label: "shape_disc", Source: discShaderSource, Buffers: shapes.DiscVertexLayout()},
		{Kind: shapes.KindQuadBezier, Label: "shape_quad_bezier", Source: quadBezierShaderSource, Buffers: shapes.QuadBezierVertexLayout()},
		{Kind: shapes.KindCubicBezier, Label: "shape_cubic_bezier", Source: cubicBezierShaderSource, Buffers: shapes.CubicBezierVertexLayout()},
		{Kind: shapes.KindQuad, Label: "shape_quad", Source: quadShaderSource, Buffers: shapes.QuadVertexLayout(), Sampled: true},
	}
}

// CompileSPIRV compiles WGSL to SPIR-V words for backends that cannot
// ingest WGSL directly.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
