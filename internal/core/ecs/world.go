package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and the command buffer that carries every structural change.
type World struct {
	pool     *EntityPool
	registry *Registry
	commands *CommandBuffer
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		commands: NewCommandBuffer(),
	}
}

func (w *World) Pool() *EntityPool        { return w.pool }
func (w *World) Registry() *Registry      { return w.registry }
func (w *World) Commands() *CommandBuffer { return w.commands }

// CreateEntity allocates an id immediately. Only use it outside a tick
// (initial setup); inside a tick record a Spawn command instead.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.Len()
}

// Apply flushes the command buffer. Called by SyncSystem at phase boundaries.
func (w *World) Apply() int {
	return w.commands.Apply(w)
}
