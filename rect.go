package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Rect is a persistent rectangle shape component, optionally hollow and with
// per-corner rounding.
type Rect struct {
	Color         RGBA
	Thickness     float32
	ThicknessType ThicknessType
	Alignment     Alignment
	Hollow        bool

	// Size is the full extent along local X and Y.
	Size mgl32.Vec2
	// CornerRadii orders radii top-left, top-right, bottom-right,
	// bottom-left.
	CornerRadii mgl32.Vec4
}

// NewRect builds a rectangle component from the paint configuration.
func NewRect(cfg *Config, size mgl32.Vec2) (Rect, error) {
	if !finiteVec2(size) || !finiteVec4(cfg.CornerRadii) {
		return Rect{}, ErrInvalidGeometry
	}
	return Rect{
		Color:         cfg.Color,
		Thickness:     cfg.Thickness,
		ThicknessType: cfg.ThicknessType,
		Alignment:     cfg.Alignment,
		Hollow:        cfg.Hollow,
		Size:          size,
		CornerRadii:   cfg.CornerRadii,
	}, nil
}

// Kind implements ShapeComponent.
func (r Rect) Kind() Kind { return KindRect }

// Data encodes the component into its instance record.
func (r Rect) Data(tf mgl32.Mat4) RectData {
	return RectData{
		Transform:   [16]float32(tf),
		Color:       r.Color.Array(),
		Thickness:   r.Thickness,
		Flags:       styleFlags(r.ThicknessType, r.Alignment, CapNone, r.Hollow),
		Size:        vec2Array(r.Size),
		CornerRadii: vec4Array(r.CornerRadii),
	}
}

func (r Rect) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Rects = append(b.Rects, r.Data(tf))
}

// RectData is the GPU instance record for a rectangle. 112 bytes.
type RectData struct {
	Transform   [16]float32 // offset 0
	Color       [4]float32  // offset 64
	Thickness   float32     // offset 80
	Flags       Flags       // offset 84
	Size        [2]float32  // offset 88
	CornerRadii [4]float32  // offset 96
}

// RectDataStride is the byte stride of one RectData record.
const RectDataStride = 112

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d RectData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// RectVertexLayout returns the instance-stepped vertex layout matching
// RectData's byte layout exactly.
func RectVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: RectDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x2, Offset: 88, ShaderLocation: 7}, // size
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x4, Offset: 96, ShaderLocation: 8}, // corner radii
			),
		},
	}
}
