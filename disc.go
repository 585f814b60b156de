package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Disc is a persistent circle/arc shape component. A full disc spans angles
// 0 to 2π; any other span draws an arc, with the configured cap style at
// the open ends.
type Disc struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Cap           Cap
	Hollow        bool

	Radius     float32
	StartAngle float32
	EndAngle   float32
}

// NewDisc builds a full-circle component from the paint configuration.
func NewDisc(cfg *Config, radius float32) (Disc, error) {
	return NewArc(cfg, radius, 0, 2*math.Pi)
}

// NewArc builds an arc component from the paint configuration.
// Angles are radians, measured counterclockwise from local +X.
func NewArc(cfg *Config, radius, startAngle, endAngle float32) (Disc, error) {
	if !finite(radius, startAngle, endAngle) {
		return Disc{}, ErrInvalidGeometry
	}
	return Disc{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Cap:           cfg.Cap,
		Hollow:        cfg.Hollow,
		Radius:        radius,
		StartAngle:    startAngle,
		EndAngle:      endAngle,
	}, nil
}

// Kind implements ShapeComponent.
func (d Disc) Kind() Kind { return KindDisc }

// Data encodes the component into its instance record.
func (d Disc) Data(tf mgl32.Mat4) DiscData {
	return DiscData{
		Transform:  [16]float32(tf),
		Color:      d.Color.Array(),
		Thickness:  d.Thickness,
		Flags:      styleFlags(d.ThicknessType, d.Alignment, d.Cap, d.Hollow),
		Radius:     d.Radius,
		StartAngle: d.StartAngle,
		EndAngle:   d.EndAngle,
	}
}

func (d Disc) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Discs = append(b.Discs, d.Data(tf))
}

// DiscData is the GPU instance record for a disc or arc. 100 bytes.
type DiscData struct {
	Transform  [16]float32 // offset 0
	Color      [4]float32  // offset 64
	Thickness  float32     // offset 80
	Flags      Flags       // offset 84
	Radius     float32     // offset 88
	StartAngle float32     // offset 92
	EndAngle   float32     // offset 96
}

// DiscDataStride is the byte stride of one DiscData record.
const DiscDataStride = 100

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d DiscData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// DiscVertexLayout returns the instance-stepped vertex layout matching
// DiscData's byte layout exactly.
func DiscVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: DiscDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 88, ShaderLocation: 7}, // radius
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 92, ShaderLocation: 8}, // start angle
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 96, ShaderLocation: 9}, // end angle
			),
		},
	}
}
