package scenegraph

// ChildBuilder accumulates entities spawned inside a WithChildren scope.
// Spawned children are not linked to the parent until the scope closes, so a
// query against the world mid-scope never observes a partially attached set.
type ChildBuilder struct {
	world   *World
	parent  Entity
	pending []Entity
}

// WithChildren runs build with a ChildBuilder for parent, then links every
// entity spawned through the builder to the parent in one atomic operation.
func (w *World) WithChildren(parent Entity, build func(*ChildBuilder)) error {
	if !w.Alive(parent) {
		return ErrDeadEntity
	}
	b := &ChildBuilder{world: w, parent: parent}
	build(b)
	return w.PushChildren(parent, b.pending)
}

// Spawn creates a new entity and records it for attachment at scope close.
func (b *ChildBuilder) Spawn() Entity {
	e := b.world.Spawn()
	b.pending = append(b.pending, e)
	return e
}

// Parent returns the entity the scope's children will be attached to.
func (b *ChildBuilder) Parent() Entity {
	return b.parent
}

// World returns the underlying world, for component attachment on spawned
// children.
func (b *ChildBuilder) World() *World {
	return b.world
}
