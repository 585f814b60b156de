package scenegraph

import "testing"

func TestWithChildrenAttachesAtomically(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()

	var spawned []Entity
	err := w.WithChildren(parent, func(b *ChildBuilder) {
		for i := 0; i < 3; i++ {
			e := b.Spawn()
			spawned = append(spawned, e)

			// Mid-scope, no linkage is visible to world queries.
			if got := len(b.World().Children(parent)); got != 0 {
				t.Fatalf("after %d spawns, parent already has %d children", i+1, got)
			}
			if b.World().Parent(e).IsValid() {
				t.Fatal("child has a parent before scope close")
			}
		}
	})
	if err != nil {
		t.Fatalf("WithChildren: %v", err)
	}

	kids := w.Children(parent)
	if len(kids) != 3 {
		t.Fatalf("parent has %d children, want 3", len(kids))
	}
	for i, e := range spawned {
		if kids[i] != e {
			t.Fatalf("child %d = %v, want %v (attach order)", i, kids[i], e)
		}
		if w.Parent(e) != parent {
			t.Fatalf("Parent(%v) = %v, want %v", e, w.Parent(e), parent)
		}
	}
}

func TestWithChildrenDeadParent(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	w.Despawn(parent)

	called := false
	err := w.WithChildren(parent, func(*ChildBuilder) { called = true })
	if err != ErrDeadEntity {
		t.Fatalf("err = %v, want ErrDeadEntity", err)
	}
	if called {
		t.Fatal("build closure ran for a dead parent")
	}
}

func TestWithChildrenEmptyScope(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	if err := w.WithChildren(parent, func(*ChildBuilder) {}); err != nil {
		t.Fatalf("WithChildren: %v", err)
	}
	if n := len(w.Children(parent)); n != 0 {
		t.Fatalf("empty scope produced %d children", n)
	}
}

func TestChildBuilderParent(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	_ = w.WithChildren(parent, func(b *ChildBuilder) {
		if b.Parent() != parent {
			t.Fatalf("Parent() = %v, want %v", b.Parent(), parent)
		}
	})
}
