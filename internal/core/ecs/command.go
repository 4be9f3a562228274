package ecs

import "sync"

// Command is one deferred structural mutation. Execute runs only inside
// CommandBuffer.Apply and reports whether the world actually changed.
type Command interface {
	Target() EntityID
	Execute(w *World) bool
}

type addCommand[T any] struct {
	store *Store[T]
	id    EntityID
	value T
}

func (c addCommand[T]) Target() EntityID { return c.id }

func (c addCommand[T]) Execute(w *World) bool {
	if !w.pool.Alive(c.id) {
		return false
	}
	return c.store.Set(c.id, c.value)
}

type removeCommand[T any] struct {
	store *Store[T]
	id    EntityID
}

func (c removeCommand[T]) Target() EntityID { return c.id }

func (c removeCommand[T]) Execute(w *World) bool {
	if !w.pool.Alive(c.id) {
		return false
	}
	return c.store.Remove(c.id)
}

type destroyCommand struct {
	id EntityID
}

func (c destroyCommand) Target() EntityID { return c.id }

func (c destroyCommand) Execute(w *World) bool {
	if !w.pool.Alive(c.id) {
		return false
	}
	w.registry.RemoveAll(c.id)
	return w.pool.Destroy(c.id)
}

type spawnCommand struct {
	init func(w *World, id EntityID)
}

// Target is zero: the id does not exist until the command executes.
func (c spawnCommand) Target() EntityID { return 0 }

func (c spawnCommand) Execute(w *World) bool {
	id := w.pool.Create()
	if c.init != nil {
		c.init(w, id)
	}
	return true
}

// Add attaches v to id at the next apply. Adding a component the entity
// already holds overwrites it and does not count as a change.
func Add[T any](store *Store[T], id EntityID, v T) Command {
	return addCommand[T]{store: store, id: id, value: v}
}

// Remove detaches T from id at the next apply.
func Remove[T any](store *Store[T], id EntityID) Command {
	return removeCommand[T]{store: store, id: id}
}

// Destroy frees id and all of its components at the next apply.
func Destroy(id EntityID) Command {
	return destroyCommand{id: id}
}

// Spawn creates an entity at the next apply and hands it to init, which may
// populate stores directly since it runs inside the apply. Commands init
// records are applied at the following apply.
func Spawn(init func(w *World, id EntityID)) Command {
	return spawnCommand{init: init}
}

// CommandBuffer is the deferred mutation queue shared by all systems of a
// tick. Record may be called from any number of goroutines; Apply must only
// be called by the single sync point that owns the phase boundary.
type CommandBuffer struct {
	mu       sync.Mutex
	commands []Command
	spare    []Command
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{
		commands: make([]Command, 0, 128),
		spare:    make([]Command, 0, 128),
	}
}

// Record appends cmds as one contiguous run. Two commands passed in the same
// call always execute back to back in the same apply.
func (b *CommandBuffer) Record(cmds ...Command) {
	if len(cmds) == 0 {
		return
	}
	b.mu.Lock()
	b.commands = append(b.commands, cmds...)
	b.mu.Unlock()
}

// Len reports how many commands are queued.
func (b *CommandBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commands)
}

// Pending returns a copy of the queued commands in recorded order.
func (b *CommandBuffer) Pending() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Command, len(b.commands))
	copy(out, b.commands)
	return out
}

// Apply executes every queued command against w in recorded order and
// clears the queue. The queue is swapped out before anything executes, so a
// Record made during the apply (including from a Spawn init) lands in the
// next batch instead of interleaving with this one. Returns the number of
// commands that changed the world.
func (b *CommandBuffer) Apply(w *World) int {
	b.mu.Lock()
	batch := b.commands
	b.commands = b.spare[:0]
	b.mu.Unlock()

	changed := 0
	for i, cmd := range batch {
		if cmd.Execute(w) {
			changed++
		}
		batch[i] = nil
	}

	b.mu.Lock()
	b.spare = batch[:0]
	b.mu.Unlock()
	return changed
}
