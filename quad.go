package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// ImageHandle identifies a sampleable image registered with the render
// package: a loaded texture or a canvas's rendered output. The zero handle
// is invalid.
type ImageHandle uint32

// Quad is a persistent textured-quad shape component. Drawing a canvas's
// ImageHandle composes that canvas's rendered output into the target, which
// is how canvases nest inside each other.
type Quad struct {
	Color RGBA

	Size mgl32.Vec2
	// UV is the sampled sub-rectangle as (min U, min V, max U, max V).
	UV    mgl32.Vec4
	Image ImageHandle
}

// NewQuad builds a textured quad component from the paint configuration.
// The config color tints the sampled texture.
func NewQuad(cfg *Config, image ImageHandle, size mgl32.Vec2) (Quad, error) {
	if !finiteVec2(size) {
		return Quad{}, ErrInvalidGeometry
	}
	if image == 0 {
		return Quad{}, ErrInvalidGeometry
	}
	return Quad{
		Color: cfg.Color,
		Size:  size,
		UV:    mgl32.Vec4{0, 0, 1, 1},
		Image: image,
	}, nil
}

// Kind implements ShapeComponent.
func (q Quad) Kind() Kind { return KindQuad }

// Data encodes the component into its instance record.
func (q Quad) Data(tf mgl32.Mat4) QuadData {
	return QuadData{
		Transform: [16]float32(tf),
		Color:     q.Color.Array(),
		Thickness: 0,
		Flags:     0,
		Size:      vec2Array(q.Size),
		UV:        vec4Array(q.UV),
		Image:     uint32(q.Image),
	}
}

func (q Quad) appendTo(b *Bucket, tf mgl32.Mat4) {
	b.Quads = append(b.Quads, q.Data(tf))
}

// QuadData is the GPU instance record for a textured quad. 116 bytes.
// The Image field selects the bound texture; batches are re-bound per image
// at submission.
type QuadData struct {
	Transform [16]float32 // offset 0
	Color     [4]float32  // offset 64
	Thickness float32     // offset 80: unused, keeps the common prefix
	Flags     Flags       // offset 84
	Size      [2]float32  // offset 88
	UV        [4]float32  // offset 96
	Image     uint32      // offset 112
}

// QuadDataStride is the byte stride of one QuadData record.
const QuadDataStride = 116

// Transform4 decodes the record's transform back into a matrix, bit-for-bit.
func (d QuadData) Transform4() mgl32.Mat4 {
	return mgl32.Mat4(d.Transform)
}

// QuadVertexLayout returns the instance-stepped vertex layout matching
// QuadData's byte layout exactly.
func QuadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: QuadDataStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: append(commonAttributes(),
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x2, Offset: 88, ShaderLocation: 7}, // size
				gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x4, Offset: 96, ShaderLocation: 8}, // uv
				gputypes.VertexAttribute{Format: gputypes.VertexFormatUint32, Offset: 112, ShaderLocation: 9},   // image
			),
		},
	}
}
