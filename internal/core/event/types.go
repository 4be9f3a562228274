package event

import "github.com/l1jgo/cubecollect/internal/core/ecs"

// TriggerEvent is one overlap reported by physics for the current tick.
// A and B are unordered.
type TriggerEvent struct {
	A, B ecs.EntityID
}

// EntityCollected is emitted when a tagged entity is scored and queued for
// destruction.
type EntityCollected struct {
	Entity ecs.EntityID
	Score  int64
	Tick   uint64
}

// SpawnKind identifies what a spawn produced.
type SpawnKind int

const (
	SpawnMover SpawnKind = iota
	SpawnCollectible
	SpawnCube
)

// EntitySpawned is emitted when a spawn command is recorded.
type EntitySpawned struct {
	Kind SpawnKind
	Tick uint64
}
