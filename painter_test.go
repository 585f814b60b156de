package shapes

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

func TestPainterRoutesByKind(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)

	if err := p.Line(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}); err != nil {
		t.Fatalf("Line: %v", err)
	}
	if err := p.Rect(mgl32.Vec2{2, 1}); err != nil {
		t.Fatalf("Rect: %v", err)
	}
	if err := p.Circle(0.5); err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if err := p.Line(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 0}); err != nil {
		t.Fatalf("Line: %v", err)
	}

	main := frame.Main()
	if got := main.KindLen(KindLine); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
	if got := main.KindLen(KindRect); got != 1 {
		t.Errorf("rects = %d, want 1", got)
	}
	if got := main.KindLen(KindDisc); got != 1 {
		t.Errorf("discs = %d, want 1", got)
	}
	if got := main.Len(); got != 4 {
		t.Errorf("total = %d, want 4", got)
	}
}

func TestPainterPreservesOrderWithinKind(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)

	for i := 0; i < 5; i++ {
		p.SetThickness(float32(i))
		if err := p.Line(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}); err != nil {
			t.Fatalf("Line %d: %v", i, err)
		}
	}

	lines := frame.Main().Lines
	for i, rec := range lines {
		if rec.Thickness != float32(i) {
			t.Errorf("line %d thickness = %v, want %v", i, rec.Thickness, float32(i))
		}
	}
}

func TestPainterSnapshotsConfig(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)

	p.SetColor(Crimson)
	p.SetThickness(3)
	p.SetThicknessType(ThicknessPixels)
	p.SetCap(CapSquare)
	p.Translate(10, 0, 0)
	if err := p.Line(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}); err != nil {
		t.Fatalf("Line: %v", err)
	}

	// Later mutation must not affect the already-encoded record.
	p.SetColor(Blue)
	p.SetThickness(9)

	rec := frame.Main().Lines[0]
	if rec.Color != Crimson.Array() {
		t.Errorf("color = %v, want %v", rec.Color, Crimson.Array())
	}
	if rec.Thickness != 3 {
		t.Errorf("thickness = %v, want 3", rec.Thickness)
	}
	if rec.Flags.ThicknessType() != ThicknessPixels {
		t.Errorf("thickness type = %v, want ThicknessPixels", rec.Flags.ThicknessType())
	}
	if rec.Flags.Cap() != CapSquare {
		t.Errorf("cap = %v, want CapSquare", rec.Flags.Cap())
	}
	if got, want := rec.Transform4(), mgl32.Translate3D(10, 0, 0); got != want {
		t.Errorf("transform = %v, want %v", got, want)
	}
}

func TestPainterSaveRestoreRoundTrip(t *testing.T) {
	p := NewPainter(NewFrame())
	p.SetColor(Green)
	p.SetThickness(2)
	before := *p.Config()

	p.Save()
	p.SetColor(Red)
	p.SetThickness(7)
	p.SetHollow(true)
	p.Translate(1, 2, 3)
	p.Restore()

	if *p.Config() != before {
		t.Errorf("config after Save/mutate/Restore = %+v, want %+v", *p.Config(), before)
	}
	if p.SaveCount() != 0 {
		t.Errorf("SaveCount = %d, want 0", p.SaveCount())
	}
}

func TestPainterRestoreWithoutSavePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Restore on an empty stack must panic")
		}
	}()
	NewPainter(NewFrame()).Restore()
}

func TestPainterReset(t *testing.T) {
	p := NewPainter(NewFrame(), WithColor(Crimson), WithThickness(5))
	p.SetColor(Blue)
	p.SetThickness(1)
	p.Translate(4, 4, 4)
	p.Reset()

	cfg := p.Config()
	if cfg.Color != Crimson || cfg.Thickness != 5 {
		t.Errorf("Reset must return to construction config, got %+v", cfg)
	}
	if cfg.Transform != mgl32.Ident4() {
		t.Errorf("Reset transform = %v, want identity", cfg.Transform)
	}
}

func TestPainterResetKeepsConstructionCanvas(t *testing.T) {
	w := scenegraph.NewWorld()
	canvas := w.Spawn()

	p := NewPainter(NewFrame(), WithCanvas(canvas))
	p.ClearCanvas()
	p.Reset()
	if got := p.Config().Canvas; got != canvas {
		t.Errorf("Reset canvas = %v, want the construction-time target", got)
	}

	p.Reset()
	if p.Config().Canvas != canvas {
		t.Error("repeated Reset dropped the construction-time target")
	}
}

func TestPainterCanvasScoping(t *testing.T) {
	w := scenegraph.NewWorld()
	canvas := w.Spawn()

	frame := NewFrame()
	p := NewPainter(frame)

	if err := p.Circle(1); err != nil {
		t.Fatalf("Circle: %v", err)
	}

	p.Save()
	p.SetCanvas(canvas)
	if err := p.Circle(2); err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if err := p.Rect(mgl32.Vec2{1, 1}); err != nil {
		t.Fatalf("Rect: %v", err)
	}
	p.Restore()

	if err := p.Circle(3); err != nil {
		t.Fatalf("Circle: %v", err)
	}

	if got := frame.Main().KindLen(KindDisc); got != 2 {
		t.Errorf("main discs = %d, want 2", got)
	}
	cb := frame.Canvas(canvas)
	if got := cb.KindLen(KindDisc); got != 1 {
		t.Errorf("canvas discs = %d, want 1", got)
	}
	if got := cb.KindLen(KindRect); got != 1 {
		t.Errorf("canvas rects = %d, want 1", got)
	}

	targets := frame.CanvasTargets()
	if len(targets) != 1 || targets[0] != canvas {
		t.Errorf("CanvasTargets = %v, want [%v]", targets, canvas)
	}
}

func TestPainterRejectsNonFiniteGeometry(t *testing.T) {
	p := NewPainter(NewFrame())
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		draw func() error
	}{
		{"nan line", func() error { return p.Line(mgl32.Vec3{nan, 0, 0}, mgl32.Vec3{1, 0, 0}) }},
		{"inf rect", func() error { return p.Rect(mgl32.Vec2{inf, 1}) }},
		{"nan circle", func() error { return p.Circle(nan) }},
		{"inf arc", func() error { return p.Arc(1, 0, inf) }},
		{"nan bezier", func() error { return p.QuadBezier(mgl32.Vec3{}, mgl32.Vec3{nan, 0, 0}, mgl32.Vec3{1, 0, 0}) }},
		{"two-sided ngon", func() error { return p.Ngon(2, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draw(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("err = %v, want ErrInvalidGeometry", err)
			}
		})
	}

	if got := p.Frame().Main().Len(); got != 0 {
		t.Errorf("rejected draws appended %d records, want 0", got)
	}
}

func TestPainterSealedFrame(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)
	frame.Seal()

	if err := p.Circle(1); !errors.Is(err, ErrFrameSealed) {
		t.Errorf("err = %v, want ErrFrameSealed", err)
	}

	frame.Reset()
	if err := p.Circle(1); err != nil {
		t.Errorf("draw after Reset: %v", err)
	}
}

func TestPainterArcEncodesAngles(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)

	if err := p.Arc(2, 0.5, 2.5); err != nil {
		t.Fatalf("Arc: %v", err)
	}
	rec := frame.Main().Discs[0]
	if rec.Radius != 2 || rec.StartAngle != 0.5 || rec.EndAngle != 2.5 {
		t.Errorf("arc record = %+v, want radius 2 angles 0.5..2.5", rec)
	}

	if err := p.Circle(1); err != nil {
		t.Fatalf("Circle: %v", err)
	}
	full := frame.Main().Discs[1]
	if full.StartAngle != 0 || full.EndAngle != float32(2*math.Pi) {
		t.Errorf("circle angles = %v..%v, want full turn", full.StartAngle, full.EndAngle)
	}
}

func TestPainterImageRequiresHandle(t *testing.T) {
	p := NewPainter(NewFrame())
	if err := p.Image(0, mgl32.Vec2{1, 1}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry for the zero handle", err)
	}
	if err := p.Image(7, mgl32.Vec2{1, 1}); err != nil {
		t.Fatalf("Image: %v", err)
	}
	rec := p.Frame().Main().Quads[0]
	if rec.Image != 7 {
		t.Errorf("image = %d, want 7", rec.Image)
	}
	if rec.UV != [4]float32{0, 0, 1, 1} {
		t.Errorf("uv = %v, want full texture", rec.UV)
	}
}

func TestPainterRoundedRect(t *testing.T) {
	frame := NewFrame()
	p := NewPainter(frame)
	p.SetCornerRadii(mgl32.Vec4{1, 2, 3, 4})

	if err := p.RoundedRect(mgl32.Vec2{10, 10}, 5); err != nil {
		t.Fatalf("RoundedRect: %v", err)
	}
	rec := frame.Main().Rects[0]
	if rec.CornerRadii != [4]float32{5, 5, 5, 5} {
		t.Errorf("radii = %v, want uniform 5", rec.CornerRadii)
	}

	// The uniform radius applies to that draw only.
	if err := p.Rect(mgl32.Vec2{10, 10}); err != nil {
		t.Fatalf("Rect: %v", err)
	}
	if got := frame.Main().Rects[1].CornerRadii; got != [4]float32{1, 2, 3, 4} {
		t.Errorf("config radii = %v, want 1 2 3 4", got)
	}
}
