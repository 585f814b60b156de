package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Ngon is a persistent regular-polygon shape component.
type Ngon struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Hollow        bool

	// Sides is the vertex count. Fractional values morph between polygon
	// orders in the shader, so it is carried as a float.
	Sides     float32
	Radius    float32
	Roundness float32
}

// NewNgon builds a regular polygon component from the paint configuration.
// Sides below 3 are degenerate and rejected along with non-finite values.
func NewNgon(cfg *Config, sides, radius float32) (Ngon, error) {
	if !finite(sides, radius, cfg.Roundness) || sides < 3 {
		return Ngon{}, ErrInvalidGeometry
	}
	return Ngon{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Hollow:        cfg.Hollow,
		Sides:         sides,
		Radius:        radius,
		Roundness:     cfg.Roundness,
	}, nil
}

// Kind implements ShapeComponent.
func (n Ngon) Kind() Kind { return KindNgon }

// Data encodes the component into its instance record.
func (n Ngon) Data(tf mgl32.Mat4) NgonData {
	return NgonData{
		Transform: [16]float32(tf),
		Color:     n.Color.Array(),
		Thickness: n.Thickness,
		Flags:     styleFlags(n.ThicknessType, n.Alignment, CapNone, n.Hollow),
		Sides:     n.Sides,
		Radius:    n.Radius,
		Roundness: n.Roundness,
	}
}

func (n Ngon) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Ngons = append(b.Ngons, n.Data(tf))
}

// NgonData is the GPU instance record for a regular polygon. 100 bytes.
type NgonData struct {
	Transform [16]float32 // offset 0
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80
	Flags     Flags       // offset 84
	Sides     float32     // offset 88
	Radius    float32     // offset 92
	Roundness float32     // offset 96
}

// NgonDataStride is the byte stride of one NgonData record.
const NgonDataStride = 100

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d NgonData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// NgonVertexLayout returns the instance-stepped vertex layout matching
// NgonData's byte layout exactly.
func NgonVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: NgonDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 88, ShaderLocation: 7}, // sides
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 92, ShaderLocation: 8}, // radius
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32, Offset: 96, ShaderLocation: 9}, // roundness
			),
		},
	}
}
