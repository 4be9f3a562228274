package system

import (
	"context"
	"sync"
	"time"

	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"go.uber.org/zap"
)

// CollectionJournal stores collection records. persist.RunRepo implements it.
type CollectionJournal interface {
	AppendCollections(ctx context.Context, entries []event.EntityCollected) error
}

// JournalSystem buffers EntityCollected events and writes them to the
// journal every interval ticks. A failed write keeps the batch for the next
// flush. Phase 9 (Persist).
type JournalSystem struct {
	journal   CollectionJournal
	bus       *event.Bus
	log       *zap.Logger
	interval  int
	tickCount int

	mu      sync.Mutex
	pending []event.EntityCollected
}

func NewJournalSystem(journal CollectionJournal, bus *event.Bus, intervalTicks int, log *zap.Logger) *JournalSystem {
	if intervalTicks <= 0 {
		intervalTicks = 1
	}
	s := &JournalSystem{
		journal:  journal,
		bus:      bus,
		log:      log,
		interval: intervalTicks,
		pending:  make([]event.EntityCollected, 0, 64),
	}
	event.Subscribe(bus, s.onCollected)
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) onCollected(ev event.EntityCollected) {
	s.mu.Lock()
	s.pending = append(s.pending, ev)
	s.mu.Unlock()
}

func (s *JournalSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		s.log.Error("journal flush failed", zap.Error(err))
	}
}

// Shutdown delivers the events still waiting in the bus back buffer, which
// holds everything the last completed tick emitted, then flushes. Call it
// only after the runner has stopped ticking.
func (s *JournalSystem) Shutdown(ctx context.Context) error {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	return s.Flush(ctx)
}

// Flush writes everything buffered so far.
func (s *JournalSystem) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make([]event.EntityCollected, 0, cap(batch))
	s.mu.Unlock()
	if len(batch) == 0 {
		return nil
	}
	if err := s.journal.AppendCollections(ctx, batch); err != nil {
		s.mu.Lock()
		s.pending = append(batch, s.pending...)
		s.mu.Unlock()
		return err
	}
	s.log.Debug("journal flushed", zap.Int("entries", len(batch)))
	return nil
}

// Pending returns the number of buffered records.
func (s *JournalSystem) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
