package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Line is a persistent line-segment shape component. Its fields snapshot the
// paint configuration at creation; attach it to an entity and it is
// re-encoded from the entity's world transform every frame.
type Line struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Cap           Cap

	// Start and End are in local space relative to the shape's transform.
	Start mgl32.Vec3
	End   mgl32.Vec3
}

// NewLine builds a line component from the paint configuration.
// Returns ErrInvalidGeometry for non-finite endpoints.
func NewLine(cfg *Config, start, end mgl32.Vec3) (Line, error) {
	if !finiteVec3(start) || !finiteVec3(end) {
		return Line{}, ErrInvalidGeometry
	}
	return Line{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Cap:           cfg.Cap,
		Start:         start,
		End:           end,
	}, nil
}

// Kind implements ShapeComponent.
func (l Line) Kind() Kind { return KindLine }

// Data encodes the component into its instance record using the given
// transform (paint transform composed with the entity's world transform).
func (l Line) Data(tf mgl32.Mat4) LineData {
	return LineData{
		Transform: [16]float32(tf),
		Color:     l.Color.Array(),
		Thickness: l.Thickness,
		Flags:     styleFlags(l.ThicknessType, l.Alignment, l.Cap, false),
		Start:     vec3Array(l.Start),
		End:       vec3Array(l.End),
	}
}

func (l Line) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Lines = append(b.Lines, l.Data(tf))
}

// LineData is the GPU instance record for a line. 112 bytes, tightly packed,
// layout mirrored by LineVertexLayout and the line shader.
type LineData struct {
	Transform [16]float32 // offset 0: column-major model matrix
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80
	Flags     Flags       // offset 84
	Start     [3]float32  // offset 88
	End       [3]float32  // offset 100
}

// LineDataStride is the byte stride of one LineData record.
const LineDataStride = 112

// Transform decodes the record's transform back into a matrix, bit-for-bit.
func (d LineData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// LineVertexLayout returns the instance-stepped vertex layout matching
// LineData's byte layout exactly.
func LineVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: LineDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 7},   // start
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x3, Offset: 100, ShaderLocation: 8}, // end
			),
		},
	}
}

// commonAttributes is the record prefix every shape kind shares: four
// transform columns, color, thickness and the packed flags word.
func commonAttributes() []gputypes.VertexAttribute {
	return []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 3},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 4}, // color
		{Format: gputypes.VertexFormatFloat32, Offset: 80, ShaderLocation: 5},   // thickness
		{Format: gputypes.VertexFormatUint32, Offset: 84, ShaderLocation: 6},    // flags
	}
}
