package system

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner executes systems in phase order each tick. Systems that share a
// phase run concurrently; the next phase starts only after all of them
// return, so a phase boundary is also a memory barrier.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Ticks returns how many full ticks have completed.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs one full schedule. It returns only after the last phase is done,
// so tick N+1 can never overlap tick N.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for start := 0; start < len(r.systems); {
		end := start + 1
		for end < len(r.systems) && r.systems[end].Phase() == r.systems[start].Phase() {
			end++
		}
		runGroup(r.systems[start:end], dt)
		start = end
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	group := make([]System, 0, 4)
	for _, s := range r.systems {
		if s.Phase() == phase {
			group = append(group, s)
		}
	}
	runGroup(group, dt)
}

// runGroup runs one phase. A panic in a concurrently run system is carried
// back and re-raised on the caller's goroutine once the whole phase is done.
func runGroup(group []System, dt time.Duration) {
	if len(group) == 1 {
		group[0].Update(dt)
		return
	}
	var g errgroup.Group
	for _, s := range group {
		s := s
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("system %T panicked in phase %s: %v", s, s.Phase(), r)
				}
			}()
			s.Update(dt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
