package shapes

import (
	"github.com/bzm3r/vectorshapes/scenegraph"
)

// ShapeMeta carries the per-entity rendering metadata for a persistent
// shape: which target it draws into, its layer mask and pipeline. The shape
// geometry and style live on the concrete component (Line, Rect, ...).
type ShapeMeta struct {
	Canvas       scenegraph.Entity
	RenderLayers uint32
	Pipeline     PipelineType
}

// Commands spawns persistent shape entities into a world. Unlike the
// immediate-mode Painter, shapes spawned here survive across frames and are
// re-encoded by extraction every frame until despawned.
//
// Commands implements Spawner, so the Draw* free functions work on it too.
type Commands struct {
	world *scenegraph.World
	cfg   Config
}

// NewCommands creates a command spawner for the given world.
func NewCommands(w *scenegraph.World, opts ...PainterOption) *Commands {
	options := defaultPainterOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Commands{world: w, cfg: options.config}
}

// Config returns the active paint configuration for in-place mutation.
// Implements Spawner.
func (c *Commands) Config() *Config {
	return &c.cfg
}

// World returns the world the commands spawn into.
func (c *Commands) World() *scenegraph.World {
	return c.world
}

// Spawn creates a persistent entity for the component. Implements Spawner.
// Use SpawnShape to keep the entity handle.
func (c *Commands) Spawn(sc ShapeComponent) error {
	_, err := c.SpawnShape(sc)
	return err
}

// SpawnShape creates a persistent entity for the component and returns a
// handle for further composition (reparenting, children, despawn).
func (c *Commands) SpawnShape(sc ShapeComponent) (ShapeEntity, error) {
	e := c.world.Spawn()
	if err := scenegraph.Attach(c.world, e, scenegraph.Transform{Matrix: c.cfg.Transform}); err != nil {
		return ShapeEntity{}, err
	}
	meta := ShapeMeta{
		Canvas:       c.cfg.Canvas,
		RenderLayers: c.cfg.RenderLayers,
		Pipeline:     c.cfg.Pipeline,
	}
	if err := scenegraph.Attach(c.world, e, meta); err != nil {
		return ShapeEntity{}, err
	}
	if err := attachComponent(c.world, e, sc); err != nil {
		return ShapeEntity{}, err
	}
	return ShapeEntity{world: c.world, entity: e, cfg: c.cfg}, nil
}

// ShapeEntity is the handle returned when spawning a persistent shape. It
// remembers the configuration the shape was spawned with so children can
// inherit style without inheriting the parent's transform twice.
type ShapeEntity struct {
	world  *scenegraph.World
	entity scenegraph.Entity
	cfg    Config
}

// Entity returns the underlying entity handle.
func (s ShapeEntity) Entity() scenegraph.Entity {
	return s.entity
}

// Despawn removes the shape and its children from the world.
func (s ShapeEntity) Despawn() {
	s.world.Despawn(s.entity)
}

// WithChildren spawns child shapes under this entity. The child spawner
// inherits the parent's style but not its transform: child transforms are
// local, composed with the parent's world transform at extraction. All
// children become visible to queries atomically, after build returns.
func (s ShapeEntity) WithChildren(build func(*ChildCommands)) error {
	var buildErr error
	err := s.world.WithChildren(s.entity, func(cb *scenegraph.ChildBuilder) {
		cc := &ChildCommands{builder: cb, cfg: s.cfg.WithoutTransform()}
		build(cc)
		buildErr = cc.err
	})
	if err != nil {
		return err
	}
	return buildErr
}

// ChildCommands spawns persistent shapes as children of a parent shape
// entity. It implements Spawner; the configuration starts as the parent's
// style with an identity transform.
type ChildCommands struct {
	builder *scenegraph.ChildBuilder
	cfg     Config
	err     error
}

// Config returns the active paint configuration for in-place mutation.
// Implements Spawner.
func (c *ChildCommands) Config() *Config {
	return &c.cfg
}

// Spawn creates a child entity for the component. Implements Spawner.
func (c *ChildCommands) Spawn(sc ShapeComponent) error {
	_, err := c.SpawnShape(sc)
	return err
}

// SpawnShape creates a child entity for the component and returns its
// handle. The handle's WithChildren nests another level under it.
func (c *ChildCommands) SpawnShape(sc ShapeComponent) (ShapeEntity, error) {
	w := c.builder.World()
	e := c.builder.Spawn()
	if err := scenegraph.Attach(w, e, scenegraph.Transform{Matrix: c.cfg.Transform}); err != nil {
		c.err = err
		return ShapeEntity{}, err
	}
	meta := ShapeMeta{
		Canvas:       c.cfg.Canvas,
		RenderLayers: c.cfg.RenderLayers,
		Pipeline:     c.cfg.Pipeline,
	}
	if err := scenegraph.Attach(w, e, meta); err != nil {
		c.err = err
		return ShapeEntity{}, err
	}
	if err := attachComponent(w, e, sc); err != nil {
		c.err = err
		return ShapeEntity{}, err
	}
	return ShapeEntity{world: w, entity: e, cfg: c.cfg}, nil
}
