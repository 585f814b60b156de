package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

func TestExtractEncodesWorldTransform(t *testing.T) {
	w := scenegraph.NewWorld()
	cmds := shapes.NewCommands(w, shapes.WithTransform(mgl32.Translate3D(3, 4, 0)))
	if err := cmds.Spawn(mustDisc(t, cmds.Config(), 5)); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	frame := shapes.NewFrame()
	Extract(w, frame, DefaultCamera())

	discs := frame.Main().Discs
	if len(discs) != 1 {
		t.Fatalf("extracted %d discs, want 1", len(discs))
	}
	if got, want := discs[0].Transform4(), mgl32.Translate3D(3, 4, 0); got != want {
		t.Errorf("record transform = %v, want %v", got, want)
	}
	if discs[0].Radius != 5 {
		t.Errorf("radius = %v, want 5", discs[0].Radius)
	}
}

func TestExtractComposesParentTransform(t *testing.T) {
	w := scenegraph.NewWorld()
	cmds := shapes.NewCommands(w, shapes.WithTransform(mgl32.Translate3D(10, 0, 0)))
	parent, err := cmds.SpawnShape(mustDisc(t, cmds.Config(), 1))
	if err != nil {
		t.Fatalf("SpawnShape: %v", err)
	}
	err = parent.WithChildren(func(cc *shapes.ChildCommands) {
		cc.Config().Translate(0, 5, 0)
		if err := cc.Spawn(mustDisc(t, cc.Config(), 2)); err != nil {
			t.Errorf("child Spawn: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("WithChildren: %v", err)
	}

	frame := shapes.NewFrame()
	Extract(w, frame, DefaultCamera())

	discs := frame.Main().Discs
	if len(discs) != 2 {
		t.Fatalf("extracted %d discs, want parent and child", len(discs))
	}
	// Spawn order: parent first.
	if got, want := discs[1].Transform4(), mgl32.Translate3D(10, 5, 0); got != want {
		t.Errorf("child world transform = %v, want %v", got, want)
	}
}

func TestExtractSkipsUnseenLayers(t *testing.T) {
	w := scenegraph.NewWorld()

	seen := shapes.NewCommands(w, shapes.WithRenderLayers(0b01))
	if err := seen.Spawn(mustDisc(t, seen.Config(), 1)); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	hidden := shapes.NewCommands(w, shapes.WithRenderLayers(0b10))
	if err := hidden.Spawn(mustDisc(t, hidden.Config(), 2)); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	frame := shapes.NewFrame()
	cam := DefaultCamera() // layer mask 0b01
	Extract(w, frame, cam)

	discs := frame.Main().Discs
	if len(discs) != 1 {
		t.Fatalf("extracted %d discs, want 1", len(discs))
	}
	if discs[0].Radius != 1 {
		t.Errorf("extracted the hidden shape, radius = %v", discs[0].Radius)
	}
}

func TestExtractRoutesToCanvasBucket(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()
	canvas := mustSpawnCanvas(t, w, images, DefaultCanvasConfig(16, 16))

	cmds := shapes.NewCommands(w, shapes.WithCanvas(canvas))
	if err := cmds.Spawn(mustDisc(t, cmds.Config(), 3)); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	frame := shapes.NewFrame()
	Extract(w, frame, DefaultCamera())

	if got := frame.Main().Len(); got != 0 {
		t.Errorf("main bucket holds %d records, want 0", got)
	}
	if got := frame.Canvas(canvas).Len(); got != 1 {
		t.Errorf("canvas bucket holds %d records, want 1", got)
	}
}

func TestExtractMasksCanvasShapesAgainstCanvasCamera(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()
	cfg := DefaultCanvasConfig(16, 16)
	cfg.RenderLayers = 0b10
	canvas := mustSpawnCanvas(t, w, images, cfg)

	// Layer 1 shape: invisible to the main camera (layer 0) but seen by
	// the canvas's camera.
	cmds := shapes.NewCommands(w, shapes.WithCanvas(canvas), shapes.WithRenderLayers(0b10))
	if err := cmds.Spawn(mustDisc(t, cmds.Config(), 3)); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	frame := shapes.NewFrame()
	Extract(w, frame, DefaultCamera())

	if got := frame.Canvas(canvas).Len(); got != 1 {
		t.Errorf("canvas bucket holds %d records, want 1", got)
	}
}

func TestExtractEveryFrame(t *testing.T) {
	w := scenegraph.NewWorld()
	cmds := shapes.NewCommands(w)
	entity, err := cmds.SpawnShape(mustDisc(t, cmds.Config(), 1))
	if err != nil {
		t.Fatalf("SpawnShape: %v", err)
	}

	frame := shapes.NewFrame()
	Extract(w, frame, DefaultCamera())
	frame.Reset()
	Extract(w, frame, DefaultCamera())
	if got := frame.Main().Len(); got != 1 {
		t.Fatalf("second frame holds %d records, want 1", got)
	}

	entity.Despawn()
	frame.Reset()
	Extract(w, frame, DefaultCamera())
	if got := frame.Main().Len(); got != 0 {
		t.Errorf("despawned shape still extracted, %d records", got)
	}
}

func mustDisc(t *testing.T, cfg *shapes.Config, radius float32) shapes.Disc {
	t.Helper()
	d, err := shapes.NewDisc(cfg, radius)
	if err != nil {
		t.Fatalf("NewDisc: %v", err)
	}
	return d
}
