package scenegraph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type tag struct{ n int }

func TestSpawnAliveDespawn(t *testing.T) {
	w := NewWorld()

	e := w.Spawn()
	if !w.Alive(e) {
		t.Fatal("freshly spawned entity is not alive")
	}
	if !e.IsValid() {
		t.Fatal("spawned entity handle is the zero sentinel")
	}

	w.Despawn(e)
	if w.Alive(e) {
		t.Fatal("despawned entity still alive")
	}
}

func TestStaleHandleDoesNotAliasReusedSlot(t *testing.T) {
	w := NewWorld()

	old := w.Spawn()
	w.Despawn(old)

	// The slot is reused, but with a bumped version.
	fresh := w.Spawn()
	if fresh.ID != old.ID {
		t.Fatalf("expected slot reuse, got ID %d (was %d)", fresh.ID, old.ID)
	}
	if w.Alive(old) {
		t.Fatal("stale handle reports alive after slot reuse")
	}
	if !w.Alive(fresh) {
		t.Fatal("fresh handle not alive")
	}

	if err := Attach(w, fresh, tag{n: 1}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if _, ok := Get[tag](w, old); ok {
		t.Fatal("stale handle can read the fresh entity's component")
	}
}

func TestComponentAttachGetDetach(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	if _, ok := Get[tag](w, e); ok {
		t.Fatal("Get on empty entity returned a component")
	}
	if err := Attach(w, e, tag{n: 7}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	got, ok := Get[tag](w, e)
	if !ok || got.n != 7 {
		t.Fatalf("Get = %+v, %v; want {7}, true", got, ok)
	}

	// Replace.
	if err := Attach(w, e, tag{n: 9}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	got, _ = Get[tag](w, e)
	if got.n != 9 {
		t.Fatalf("after replace, Get = %+v; want {9}", got)
	}

	Detach[tag](w, e)
	if _, ok := Get[tag](w, e); ok {
		t.Fatal("component survived Detach")
	}
}

func TestAttachDeadEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	w.Despawn(e)

	if err := Attach(w, e, tag{}); err != ErrDeadEntity {
		t.Fatalf("Attach on dead entity: err = %v, want ErrDeadEntity", err)
	}
}

func TestEachIteratesInSpawnOrder(t *testing.T) {
	w := NewWorld()
	want := []int{0, 1, 2, 3}
	for _, n := range want {
		e := w.Spawn()
		if err := Attach(w, e, tag{n: n}); err != nil {
			t.Fatalf("Attach: %v", err)
		}
	}
	// An entity without the component must be skipped.
	w.Spawn()

	var got []int
	Each(w, func(_ Entity, c tag) {
		got = append(got, c.n)
	})
	if len(got) != len(want) {
		t.Fatalf("Each visited %d entities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", got, want)
		}
	}
}

func TestDespawnCascadesToDescendants(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	child := w.Spawn()
	grandchild := w.Spawn()
	if err := w.SetParent(child, root); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if err := w.SetParent(grandchild, child); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	w.Despawn(root)
	for _, e := range []Entity{root, child, grandchild} {
		if w.Alive(e) {
			t.Fatalf("entity %v survived recursive despawn", e)
		}
	}
}

func TestReparentRemovesFromOldParent(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()

	if err := w.SetParent(c, a); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if err := w.SetParent(c, b); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	if n := len(w.Children(a)); n != 0 {
		t.Fatalf("old parent still has %d children", n)
	}
	if kids := w.Children(b); len(kids) != 1 || kids[0] != c {
		t.Fatalf("new parent children = %v, want [%v]", kids, c)
	}
	if w.Parent(c) != b {
		t.Fatalf("Parent(c) = %v, want %v", w.Parent(c), b)
	}
}

func TestWorldTransformComposition(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	child := w.Spawn()
	if err := w.SetParent(child, parent); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	pt := mgl32.Translate3D(10, 0, 0)
	ct := mgl32.Translate3D(0, 5, 0)
	if err := Attach(w, parent, Transform{Matrix: pt}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := Attach(w, child, Transform{Matrix: ct}); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	got := w.WorldTransform(child)
	want := pt.Mul4(ct)
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("WorldTransform = %v, want %v", got, want)
		}
	}

	// Origin of the child ends up at (10, 5, 0).
	p := got.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p.X() != 10 || p.Y() != 5 {
		t.Fatalf("child origin = (%v, %v), want (10, 5)", p.X(), p.Y())
	}
}

func TestWorldTransformWithoutComponentIsIdentity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	got := w.WorldTransform(e)
	if got != mgl32.Ident4() {
		t.Fatalf("WorldTransform = %v, want identity", got)
	}
}
