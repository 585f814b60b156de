// Package scenegraph provides the minimal entity/component scene graph the
// shape painter and canvas compositor are written against: versioned entity
// handles, typed component storage, parent/child linkage and local-to-world
// transform composition.
//
// The package is intentionally narrow. Hosts with their own entity system can
// ignore it and satisfy the painter with their own world, but everything in
// this module is usable standalone on top of it.
package scenegraph

import (
	"errors"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDeadEntity is returned when an operation references a despawned or
// never-spawned entity.
var ErrDeadEntity = errors.New("scenegraph: entity is not alive")

// Entity is a generational handle to an entity in a World.
// A stale handle (despawned entity, or a slot reused since) never aliases a
// live one: the version is bumped on despawn.
//
// The zero Entity is never live and can be used as a "no entity" sentinel.
type Entity struct {
	ID      uint32
	Version uint32
}

// IsValid reports whether the handle refers to any entity at all.
// It does not check liveness; use World.Alive for that.
func (e Entity) IsValid() bool {
	return e.ID != 0
}

type entityMeta struct {
	version uint32
	alive   bool
	parent  Entity
	children []Entity
}

type componentStore interface {
	remove(id uint32)
}

type typedStore[T any] struct {
	items map[uint32]T
}

func (s *typedStore[T]) remove(id uint32) {
	delete(s.items, id)
}

// World owns entities, their components and the parent/child graph.
//
// World is not safe for concurrent mutation; all painter and compositor state
// belongs to a single logical pass per frame.
type World struct {
	meta   []entityMeta // indexed by Entity.ID; slot 0 is reserved
	free   []uint32
	stores map[reflect.Type]componentStore
	order  []Entity // spawn order of live entities, for deterministic iteration
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		meta:   make([]entityMeta, 1), // reserve ID 0
		stores: make(map[reflect.Type]componentStore),
	}
}

// Spawn creates a new empty entity.
func (w *World) Spawn() Entity {
	var id uint32
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.meta = append(w.meta, entityMeta{})
		id = uint32(len(w.meta) - 1)
	}
	m := &w.meta[id]
	m.alive = true
	m.parent = Entity{}
	m.children = nil
	e := Entity{ID: id, Version: m.version}
	w.order = append(w.order, e)
	return e
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e Entity) bool {
	if e.ID == 0 || int(e.ID) >= len(w.meta) {
		return false
	}
	m := &w.meta[e.ID]
	return m.alive && m.version == e.Version
}

// Despawn destroys the entity, all of its components, and all of its
// descendants. Despawning a dead entity is a no-op.
func (w *World) Despawn(e Entity) {
	if !w.Alive(e) {
		return
	}
	m := &w.meta[e.ID]

	// Children go first so their handles are dead before the parent's slot
	// can be reused.
	for _, child := range m.children {
		w.Despawn(child)
	}

	if m.parent.IsValid() && w.Alive(m.parent) {
		w.removeChild(m.parent, e)
	}

	for _, s := range w.stores {
		s.remove(e.ID)
	}

	m.alive = false
	m.version++
	m.parent = Entity{}
	m.children = nil
	w.free = append(w.free, e.ID)

	for i, o := range w.order {
		if o == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Attach adds or replaces a component of type T on the entity.
func Attach[T any](w *World, e Entity, c T) error {
	if !w.Alive(e) {
		return ErrDeadEntity
	}
	s := storeFor[T](w)
	s.items[e.ID] = c
	return nil
}

// Get returns the entity's component of type T, if present.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.Alive(e) {
		return zero, false
	}
	s, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	c, ok := s.(*typedStore[T]).items[e.ID]
	return c, ok
}

// Detach removes the entity's component of type T, if present.
func Detach[T any](w *World, e Entity) {
	if !w.Alive(e) {
		return
	}
	if s, ok := w.stores[reflect.TypeFor[T]()]; ok {
		s.remove(e.ID)
	}
}

// Each calls fn for every live entity carrying a component of type T,
// in spawn order.
func Each[T any](w *World, fn func(Entity, T)) {
	s, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	items := s.(*typedStore[T]).items
	for _, e := range w.order {
		if c, ok := items[e.ID]; ok {
			fn(e, c)
		}
	}
}

func storeFor[T any](w *World) *typedStore[T] {
	t := reflect.TypeFor[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*typedStore[T])
	}
	s := &typedStore[T]{items: make(map[uint32]T)}
	w.stores[t] = s
	return s
}

// SetParent links child under parent, detaching it from any previous parent.
func (w *World) SetParent(child, parent Entity) error {
	return w.PushChildren(parent, []Entity{child})
}

// PushChildren appends the given children to the parent's child list as one
// operation. Either all children are linked or, if the parent or any child is
// dead, none are. This is the commit point for ChildBuilder scopes.
func (w *World) PushChildren(parent Entity, children []Entity) error {
	if !w.Alive(parent) {
		return ErrDeadEntity
	}
	for _, c := range children {
		if !w.Alive(c) {
			return ErrDeadEntity
		}
	}
	pm := &w.meta[parent.ID]
	for _, c := range children {
		cm := &w.meta[c.ID]
		if cm.parent.IsValid() && w.Alive(cm.parent) {
			w.removeChild(cm.parent, c)
		}
		cm.parent = parent
		pm.children = append(pm.children, c)
	}
	return nil
}

func (w *World) removeChild(parent, child Entity) {
	pm := &w.meta[parent.ID]
	for i, c := range pm.children {
		if c == child {
			pm.children = append(pm.children[:i], pm.children[i+1:]...)
			return
		}
	}
}

// Parent returns the entity's parent, or the zero Entity if it has none.
func (w *World) Parent(e Entity) Entity {
	if !w.Alive(e) {
		return Entity{}
	}
	return w.meta[e.ID].parent
}

// Children returns a copy of the entity's child list in attach order.
func (w *World) Children(e Entity) []Entity {
	if !w.Alive(e) {
		return nil
	}
	src := w.meta[e.ID].children
	out := make([]Entity, len(src))
	copy(out, src)
	return out
}

// Transform is the local-space transform component.
type Transform struct {
	Matrix mgl32.Mat4
}

// IdentityTransform returns a Transform with the identity matrix.
func IdentityTransform() Transform {
	return Transform{Matrix: mgl32.Ident4()}
}

// WorldTransform composes the entity's local transform with all ancestor
// transforms (root-most first). Entities without a Transform component
// contribute identity.
func (w *World) WorldTransform(e Entity) mgl32.Mat4 {
	if !w.Alive(e) {
		return mgl32.Ident4()
	}
	local := mgl32.Ident4()
	if t, ok := Get[Transform](w, e); ok {
		local = t.Matrix
	}
	parent := w.meta[e.ID].parent
	if !parent.IsValid() || !w.Alive(parent) {
		return local
	}
	return w.WorldTransform(parent).Mul4(local)
}
