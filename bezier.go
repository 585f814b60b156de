package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// QuadBezier is a persistent quadratic bezier curve shape component.
type QuadBezier struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Cap           Cap

	Start   mgl32.Vec3
	Control mgl32.Vec3
	End     mgl32.Vec3
}

// NewQuadBezier builds a quadratic bezier component from the paint
// configuration.
func NewQuadBezier(cfg *Config, start, control, end mgl32.Vec3) (QuadBezier, error) {
	if !finiteVec3(start) || !finiteVec3(control) || !finiteVec3(end) {
		return QuadBezier{}, ErrInvalidGeometry
	}
	return QuadBezier{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Cap:           cfg.Cap,
		Start:         start,
		Control:       control,
		End:           end,
	}, nil
}

// Kind implements ShapeComponent.
func (q QuadBezier) Kind() Kind { return KindQuadBezier }

// Data encodes the component into its instance record.
func (q QuadBezier) Data(tf mgl32.Mat4) QuadBezierData {
	return QuadBezierData{
		Transform: [16]float32(tf),
		Color:     q.Color.Array(),
		Thickness: q.Thickness,
		Flags:     styleFlags(q.ThicknessType, q.Alignment, q.Cap, false),
		Start:     vec3Array(q.Start),
		Control:   vec3Array(q.Control),
		End:       vec3Array(q.End),
	}
}

func (q QuadBezier) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.QuadBeziers = append(b.QuadBeziers, q.Data(tf))
}

// QuadBezierData is the GPU instance record for a quadratic bezier.
// 124 bytes.
type QuadBezierData struct {
	Transform [16]float32 // offset 0
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80
	Flags     Flags       // offset 84
	Start     [3]float32  // offset 88
	Control   [3]float32  // offset 100
	End       [3]float32  // offset 112
}

// QuadBezierDataStride is the byte stride of one QuadBezierData record.
const QuadBezierDataStride = 124

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d QuadBezierData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// QuadBezierVertexLayout returns the instance-stepped vertex layout matching
// QuadBezierData's byte layout exactly.
func QuadBezierVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: QuadBezierDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 7},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 100, ShaderLocation: 8},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 112, ShaderLocation: 9},
			),
		},
	}
}

// CubicBezier is a persistent cubic bezier curve shape component.
type CubicBezier struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Cap           Cap

	Start    mgl32.Vec3
	Control1 mgl32.Vec3
	Control2 mgl32.Vec3
	End      mgl32.Vec3
}

// NewCubicBezier builds a cubic bezier component from the paint
// configuration.
func NewCubicBezier(cfg *Config, start, control1, control2, end mgl32.Vec3) (CubicBezier, error) {
	if !finiteVec3(start) || !finiteVec3(control1) || !finiteVec3(control2) || !finiteVec3(end) {
		return CubicBezier{}, ErrInvalidGeometry
	}
	return CubicBezier{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Cap:           cfg.Cap,
		Start:         start,
		Control1:      control1,
		Control2:      control2,
		End:           end,
	}, nil
}

// Kind implements ShapeComponent.
func (c CubicBezier) Kind() Kind { return KindCubicBezier }

// Data encodes the component into its instance record.
func (c CubicBezier) Data(tf mgl32.Mat4) CubicBezierData {
	return CubicBezierData{
		Transform: [16]float32(tf),
		Color:     c.Color.Array(),
		Thickness: c.Thickness,
		Flags:     styleFlags(c.ThicknessType, c.Alignment, c.Cap, false),
		Start:     vec3Array(c.Start),
		Control1:  vec3Array(c.Control1),
		Control2:  vec3Array(c.Control2),
		End:       vec3Array(c.End),
	}
}

func (c CubicBezier) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.CubicBeziers = append(b.CubicBeziers, c.Data(tf))
}

// CubicBezierData is the GPU instance record for a cubic bezier. 136 bytes.
type CubicBezierData struct {
	Transform [16]float32 // offset 0
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80
	Flags     Flags       // offset 84
	Start     [3]float32  // offset 88
	Control1  [3]float32  // offset 100
	Control2  [3]float32  // offset 112
	End       [3]float32  // offset 124
}

// CubicBezierDataStride is the byte stride of one CubicBezierData record.
const CubicBezierDataStride = 136

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d CubicBezierData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// CubicBezierVertexLayout returns the instance-stepped vertex layout
// matching CubicBezierData's byte layout exactly.
func CubicBezierVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: CubicBezierDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 7},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 100, ShaderLocation: 8},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 112, ShaderLocation: 9},
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 124, ShaderLocation: 10},
			),
		},
	}
}
