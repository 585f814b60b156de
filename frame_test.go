package shapes

import (
	"testing"

	"github.com/bzm3r/vectorshapes/scenegraph"
)

func TestFrameCanvasFirstDrawOrder(t *testing.T) {
	w := scenegraph.NewWorld()
	a, b, c := w.Spawn(), w.Spawn(), w.Spawn()

	frame := NewFrame()
	frame.Canvas(b)
	frame.Canvas(a)
	frame.Canvas(b) // repeat must not reorder
	frame.Canvas(c)

	got := frame.CanvasTargets()
	want := []scenegraph.Entity{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("targets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("target %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFrameCanvasReturnsSameBucket(t *testing.T) {
	w := scenegraph.NewWorld()
	e := w.Spawn()

	frame := NewFrame()
	if frame.Canvas(e) != frame.Canvas(e) {
		t.Error("Canvas must return a stable bucket per entity")
	}
	if frame.Canvas(e) == frame.Main() {
		t.Error("canvas bucket must be distinct from the main bucket")
	}
}

func TestFrameResetDropsCanvases(t *testing.T) {
	w := scenegraph.NewWorld()
	e := w.Spawn()

	frame := NewFrame()
	p := NewPainter(frame)
	p.SetCanvas(e)
	if err := p.Circle(1); err != nil {
		t.Fatalf("Circle: %v", err)
	}
	p.ClearCanvas()
	if err := p.Circle(1); err != nil {
		t.Fatalf("Circle: %v", err)
	}

	frame.Seal()
	frame.Reset()

	if frame.Sealed() {
		t.Error("Reset must reopen the frame")
	}
	if got := frame.Main().Len(); got != 0 {
		t.Errorf("main bucket has %d records after Reset, want 0", got)
	}
	if got := frame.CanvasTargets(); len(got) != 0 {
		t.Errorf("canvas targets after Reset = %v, want none", got)
	}
}
