package component

// Move marks the player-controlled mover. Speed scales input acceleration.
type Move struct {
	Speed float32
}

// Rotation marks a self-rotating entity. Speed is degrees per second, applied
// to each of the X, Y, Z axes in turn.
type Rotation struct {
	Speed float32
}

// DeleteTag marks an entity as collected and queued for destruction.
type DeleteTag struct{}
