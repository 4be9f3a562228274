package world

import "sync/atomic"

// Scoreboard counts collected entities. Increase is safe from any goroutine.
type Scoreboard struct {
	score atomic.Int64
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// Increase adds one point and returns the new total.
func (s *Scoreboard) Increase() int64 {
	return s.score.Add(1)
}

func (s *Scoreboard) Score() int64 {
	return s.score.Load()
}
