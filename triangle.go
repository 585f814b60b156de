package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Triangle is a persistent arbitrary-triangle shape component.
type Triangle struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Hollow        bool

	A, B, C mgl32.Vec3
}

// NewTriangle builds a triangle component from the paint configuration.
func NewTriangle(cfg *Config, a, b, c mgl32.Vec3) (Triangle, error) {
	if !finiteVec3(a) || !finiteVec3(b) || !finiteVec3(c) {
		return Triangle{}, ErrInvalidGeometry
	}
	return Triangle{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Hollow:        cfg.Hollow,
		A:             a,
		B:             b,
		C:             c,
	}, nil
}

// Kind implements ShapeComponent.
func (t Triangle) Kind() Kind { return KindTriangle }

// Data encodes the component into its instance record.
func (t Triangle) Data(tf mgl32.Mat4) TriangleData {
	return TriangleData{
		Transform: [16]float32(tf),
		Color:     t.Color.Array(),
		Thickness: t.Thickness,
		Flags:     styleFlags(t.ThicknessType, t.Alignment, CapNone, t.Hollow),
		A:         vec3Array(t.A),
		B:         vec3Array(t.B),
		C:         vec3Array(t.C),
	}
}

func (t Triangle) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Triangles = append(b.Triangles, t.Data(tf))
}

// TriangleData is the GPU instance record for a triangle. 124 bytes.
type TriangleData struct {
	Transform [16]float32 // offset 0
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80
	Flags     Flags       // offset 84
	A         [3]float32  // offset 88
	B         [3]float32  // offset 100
	C         [3]float32  // offset 112
}

// TriangleDataStride is the byte stride of one TriangleData record.
const TriangleDataStride = 124

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d TriangleData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// TriangleVertexLayout returns the instance-stepped vertex layout matching
// TriangleData's byte layout exactly.
func TriangleVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: TriangleDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 7},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 100, ShaderLocation: 8},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 112, ShaderLocation: 9},
			),
		},
	}
}
