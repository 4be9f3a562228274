package system

import (
	"time"

	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/scripting"
	"go.uber.org/zap"
)

// InputSource supplies the two movement axes once per tick. Device polling
// lives behind this interface; the Lua input script is the default source.
type InputSource interface {
	Axis(tick uint64, dt float32) (horizontal, vertical float32)
}

var _ InputSource = (*scripting.Engine)(nil)

// InputState is the axis pair sampled for the current tick. Written in the
// input phase, read by MovementSystem in the update phase.
type InputState struct {
	Horizontal float32
	Vertical   float32
}

// InputSystem samples the input source into InputState. Phase 0 (Input).
type InputSystem struct {
	source InputSource
	state  *InputState
	tick   uint64
	log    *zap.Logger
}

func NewInputSystem(source InputSource, state *InputState, log *zap.Logger) *InputSystem {
	if source == nil || state == nil {
		panic("input system: nil input source or state")
	}
	return &InputSystem{source: source, state: state, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	h, v := s.source.Axis(s.tick, seconds(dt))
	s.state.Horizontal = clampAxis(h)
	s.state.Vertical = clampAxis(v)
	s.tick++
}

func clampAxis(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

func seconds(dt time.Duration) float32 {
	return float32(dt.Seconds())
}
