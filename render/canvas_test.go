package render

import (
	"errors"
	"testing"

	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

func mustSpawnCanvas(t *testing.T, w *scenegraph.World, images *Images, cfg CanvasConfig) scenegraph.Entity {
	t.Helper()
	e, err := SpawnCanvas(w, images, cfg, PixmapAllocator)
	if err != nil {
		t.Fatalf("SpawnCanvas: %v", err)
	}
	return e
}

func canvasOf(t *testing.T, w *scenegraph.World, e scenegraph.Entity) Canvas {
	t.Helper()
	c, ok := scenegraph.Get[Canvas](w, e)
	if !ok {
		t.Fatalf("entity %v has no Canvas component", e)
	}
	return c
}

func TestSpawnCanvasValidation(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	for _, size := range [][2]int{{0, 64}, {64, 0}, {-1, 64}} {
		cfg := DefaultCanvasConfig(size[0], size[1])
		if _, err := SpawnCanvas(w, images, cfg, PixmapAllocator); err == nil {
			t.Errorf("size %dx%d: want error", size[0], size[1])
		}
	}
}

func TestSpawnCanvasRegistersImage(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	e := mustSpawnCanvas(t, w, images, DefaultCanvasConfig(32, 16))
	h, err := CanvasImage(w, e)
	if err != nil {
		t.Fatalf("CanvasImage: %v", err)
	}
	if h == 0 {
		t.Fatal("canvas image handle is zero")
	}

	target, err := images.Resolve(h)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if target.Width() != 32 || target.Height() != 16 {
		t.Errorf("target size = %dx%d, want 32x16", target.Width(), target.Height())
	}
}

func TestCanvasModeInitialDirty(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	tests := []struct {
		mode CanvasMode
		want bool
	}{
		{Continuous, true},
		{Persistent, true}, // dirty at spawn, renders its first frame
		{OnDemand, false},  // clean until an explicit redraw
	}
	for _, tt := range tests {
		cfg := DefaultCanvasConfig(8, 8)
		cfg.Mode = tt.mode
		e := mustSpawnCanvas(t, w, images, cfg)
		if got := canvasOf(t, w, e).NeedsRender(); got != tt.want {
			t.Errorf("%v: NeedsRender at spawn = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestRedrawSetsDirty(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	cfg := DefaultCanvasConfig(8, 8)
	cfg.Mode = OnDemand
	e := mustSpawnCanvas(t, w, images, cfg)

	if canvasOf(t, w, e).NeedsRender() {
		t.Fatal("on-demand canvas dirty before Redraw")
	}
	if err := Redraw(w, e); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if !canvasOf(t, w, e).NeedsRender() {
		t.Fatal("on-demand canvas clean after Redraw")
	}
}

func TestRedrawDeadEntity(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()
	e := mustSpawnCanvas(t, w, images, DefaultCanvasConfig(8, 8))
	DestroyCanvas(w, images, e)

	if err := Redraw(w, e); !errors.Is(err, scenegraph.ErrDeadEntity) {
		t.Fatalf("Redraw on dead entity = %v, want ErrDeadEntity", err)
	}
}

func TestSetCanvasModeKeepsPendingRedraw(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	cfg := DefaultCanvasConfig(8, 8)
	cfg.Mode = OnDemand
	e := mustSpawnCanvas(t, w, images, cfg)

	if err := Redraw(w, e); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if err := SetCanvasMode(w, e, Persistent); err != nil {
		t.Fatalf("SetCanvasMode: %v", err)
	}
	c := canvasOf(t, w, e)
	if c.Mode != Persistent {
		t.Errorf("Mode = %v, want Persistent", c.Mode)
	}
	if !c.NeedsRender() {
		t.Error("pending redraw lost across mode change")
	}
}

func TestSetCanvasModeDoesNotTriggerRender(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	cfg := DefaultCanvasConfig(8, 8)
	cfg.Mode = OnDemand
	e := mustSpawnCanvas(t, w, images, cfg)

	if err := SetCanvasMode(w, e, Persistent); err != nil {
		t.Fatalf("SetCanvasMode: %v", err)
	}
	if canvasOf(t, w, e).NeedsRender() {
		t.Error("mode change alone requested a render")
	}
}

func TestDestroyCanvasReleasesImage(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()
	e := mustSpawnCanvas(t, w, images, DefaultCanvasConfig(8, 8))
	h, _ := CanvasImage(w, e)

	DestroyCanvas(w, images, e)

	if w.Alive(e) {
		t.Error("canvas entity alive after DestroyCanvas")
	}
	if _, err := images.Resolve(h); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("Resolve after destroy = %v, want ErrUnknownImage", err)
	}
}

func TestImagesRegistry(t *testing.T) {
	images := NewImages()

	a := images.Register(NewPixmapTarget(4, 4))
	b := images.Register(NewPixmapTarget(8, 8))
	if a == b {
		t.Fatal("registry handed out duplicate handles")
	}
	if a == 0 || b == 0 {
		t.Fatal("registry handed out the zero handle")
	}

	got, err := images.Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Width() != 8 {
		t.Errorf("resolved wrong target, width = %d", got.Width())
	}

	images.Release(a)
	if _, err := images.Resolve(a); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("Resolve released handle = %v, want ErrUnknownImage", err)
	}
	if _, err := images.Resolve(b); err != nil {
		t.Errorf("Release removed the wrong handle: %v", err)
	}
}

func TestCanvasModeString(t *testing.T) {
	if got := Continuous.String(); got != "continuous" {
		t.Errorf("Continuous.String() = %q", got)
	}
	if got := CanvasMode(9).String(); got != "canvasmode(9)" {
		t.Errorf("CanvasMode(9).String() = %q", got)
	}
}

func TestCanvasOwnsScopedCamera(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()

	cfg := DefaultCanvasConfig(32, 16)
	cfg.RenderLayers = 0b100
	e := mustSpawnCanvas(t, w, images, cfg)

	c := canvasOf(t, w, e)
	if c.Camera.RenderLayers != 0b100 {
		t.Errorf("camera layers = %b, want 100", c.Camera.RenderLayers)
	}
	if got, want := c.Camera.ViewProjection, OrthographicCamera(32, 16).ViewProjection; got != want {
		t.Errorf("camera projection = %v, want canvas-sized orthographic", got)
	}
}

func TestSetCanvasCamera(t *testing.T) {
	w := scenegraph.NewWorld()
	images := NewImages()
	e := mustSpawnCanvas(t, w, images, DefaultCanvasConfig(8, 8))

	cam := OrthographicCamera(100, 100)
	cam.RenderLayers = 0b11
	if err := SetCanvasCamera(w, e, cam); err != nil {
		t.Fatalf("SetCanvasCamera: %v", err)
	}
	if got := canvasOf(t, w, e).Camera; got != cam {
		t.Errorf("camera = %+v, want %+v", got, cam)
	}

	DestroyCanvas(w, images, e)
	if err := SetCanvasCamera(w, e, cam); !errors.Is(err, scenegraph.ErrDeadEntity) {
		t.Errorf("SetCanvasCamera on dead entity = %v, want ErrDeadEntity", err)
	}
}

func TestDefaultCanvasConfig(t *testing.T) {
	cfg := DefaultCanvasConfig(100, 50)
	if cfg.Mode != Continuous {
		t.Errorf("Mode = %v, want Continuous", cfg.Mode)
	}
	if cfg.ClearColor != shapes.Transparent {
		t.Errorf("ClearColor = %v, want transparent", cfg.ClearColor)
	}
}
