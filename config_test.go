package shapes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Transform != mgl32.Ident4() {
		t.Errorf("Transform = %v, want identity", cfg.Transform)
	}
	if cfg.Color != White {
		t.Errorf("Color = %v, want White", cfg.Color)
	}
	if cfg.Thickness != 1 {
		t.Errorf("Thickness = %v, want 1", cfg.Thickness)
	}
	if cfg.ThicknessType != ThicknessWorld {
		t.Errorf("ThicknessType = %v, want ThicknessWorld", cfg.ThicknessType)
	}
	if cfg.Alignment != AlignmentCenter {
		t.Errorf("Alignment = %v, want AlignmentCenter", cfg.Alignment)
	}
	if cfg.Cap != CapRound {
		t.Errorf("Cap = %v, want CapRound", cfg.Cap)
	}
	if cfg.Hollow {
		t.Error("Hollow = true, want false")
	}
	if cfg.Canvas.IsValid() {
		t.Error("Canvas is set, want main framebuffer")
	}
	if cfg.RenderLayers != 1 {
		t.Errorf("RenderLayers = %v, want 1", cfg.RenderLayers)
	}
	if cfg.Pipeline != Shape2D {
		t.Errorf("Pipeline = %v, want Shape2D", cfg.Pipeline)
	}
}

func TestConfigTransformComposesLocally(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Translate(1, 2, 3)
	cfg.Scale(2, 2, 2)

	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	if cfg.Transform != want {
		t.Errorf("Transform = %v, want translate then scale in local space %v", cfg.Transform, want)
	}
}

func TestConfigRotateMatchesQuat(t *testing.T) {
	a := DefaultConfig()
	a.RotateZ(1.25)

	b := DefaultConfig()
	b.Rotate(mgl32.QuatRotate(1.25, mgl32.Vec3{0, 0, 1}))

	for i := range a.Transform {
		if diff := a.Transform[i] - b.Transform[i]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("RotateZ and quaternion rotate disagree at element %d: %v vs %v",
				i, a.Transform[i], b.Transform[i])
		}
	}
}

func TestConfigWithoutTransform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Translate(5, 0, 0)
	cfg.Color = Crimson
	cfg.Thickness = 4

	child := cfg.WithoutTransform()
	if child.Transform != mgl32.Ident4() {
		t.Errorf("child Transform = %v, want identity", child.Transform)
	}
	if child.Color != Crimson || child.Thickness != 4 {
		t.Error("WithoutTransform must keep style fields")
	}
	if cfg.Transform == mgl32.Ident4() {
		t.Error("WithoutTransform must not mutate the receiver")
	}
}
