package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraUniformSize is the byte size of the camera uniform buffer:
// view-projection (mat4x4<f32>) + viewport (vec2<f32>) + padding = 80 bytes.
const cameraUniformSize = 80

// Camera supplies the view-projection transform and the layer mask for one
// render pass. Shapes whose RenderLayers mask does not intersect the
// camera's are skipped at extraction.
type Camera struct {
	ViewProjection mgl32.Mat4

	// RenderLayers is the mask of layers this camera renders.
	RenderLayers uint32
}

// DefaultCamera returns an identity camera rendering layer 0.
func DefaultCamera() Camera {
	return Camera{ViewProjection: mgl32.Ident4(), RenderLayers: 1}
}

// OrthographicCamera returns a camera with a centered orthographic
// projection spanning width x height world units, Y up, rendering layer 0.
func OrthographicCamera(width, height float32) Camera {
	return Camera{
		ViewProjection: mgl32.Ortho(-width/2, width/2, -height/2, height/2, -1000, 1000),
		RenderLayers:   1,
	}
}

// Sees reports whether the camera renders shapes with the given layer mask.
func (c Camera) Sees(mask uint32) bool {
	return c.RenderLayers&mask != 0
}

// uniformBytes encodes the camera into the shader uniform layout.
func (c Camera) uniformBytes(viewportW, viewportH float32) []byte {
	buf := make([]byte, cameraUniformSize)
	for i, v := range c.ViewProjection {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(viewportW))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(viewportH))
	// Bytes 72..79 are padding and stay zero.
	return buf
}
