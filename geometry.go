package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// finite reports whether every value is a finite number. Draw constructors
// use it to enforce the package's reject policy for NaN/Inf geometry.
func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func finiteVec2(v mgl32.Vec2) bool {
	return finite(v.X(), v.Y())
}

func finiteVec3(v mgl32.Vec3) bool {
	return finite(v.X(), v.Y(), v.Z())
}

func finiteVec4(v mgl32.Vec4) bool {
	return finite(v.X(), v.Y(), v.Z(), v.W())
}

func vec3Array(v mgl32.Vec3) [3]float32 {
	return [3]float32{v.X(), v.Y(), v.Z()}
}

func vec2Array(v mgl32.Vec2) [2]float32 {
	return [2]float32{v.X(), v.Y()}
}

func vec4Array(v mgl32.Vec4) [4]float32 {
	return [4]float32{v.X(), v.Y(), v.Z(), v.W()}
}
