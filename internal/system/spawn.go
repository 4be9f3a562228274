package system

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
	"go.uber.org/zap"
)

// ScoreReader exposes the running score.
type ScoreReader interface {
	Score() int64
}

// SpawnConfig bounds cube spawning. CubesPerTick caps the work done in one
// tick; larger waves are spread over later ticks by the caller.
type SpawnConfig struct {
	InsaneMode   bool
	MaxScore     int64 // enables insane mode once reached; 0 disables the threshold
	CubesPerTick int
	CubeSpeed    float32
	CubeRadius   float32
	RotateSpeed  float32
	Area         float32 // cubes appear in [-Area, Area] on X and Z
}

// SpawnSystem floods the arena with rising cubes while insane mode is on.
// Spawns are recorded as commands and appear at the cleanup apply. It runs
// after the score phase has finished, so the MaxScore check always sees the
// full score of the current tick. Phase 6 (Spawn).
type SpawnSystem struct {
	world  *world.State
	score  ScoreReader
	bus    *event.Bus
	cfg    SpawnConfig
	insane atomic.Bool
	rng    *rand.Rand
	tick   uint64
	log    *zap.Logger
}

func NewSpawnSystem(ws *world.State, score ScoreReader, bus *event.Bus, cfg SpawnConfig, seed int64, log *zap.Logger) *SpawnSystem {
	s := &SpawnSystem{
		world: ws,
		score: score,
		bus:   bus,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		log:   log,
	}
	s.insane.Store(cfg.InsaneMode)
	return s
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

// SetInsane toggles cube spawning from outside the tick.
func (s *SpawnSystem) SetInsane(on bool) { s.insane.Store(on) }

func (s *SpawnSystem) Insane() bool { return s.insane.Load() }

func (s *SpawnSystem) Update(_ time.Duration) {
	s.tick++
	if !s.insane.Load() && s.cfg.MaxScore > 0 && s.score != nil && s.score.Score() >= s.cfg.MaxScore {
		s.insane.Store(true)
		s.log.Info("insane mode on", zap.Int64("score", s.score.Score()))
	}
	if !s.insane.Load() {
		return
	}
	s.SpawnBatch()
}

// SpawnBatch records at most CubesPerTick cube spawns and returns how many
// were recorded.
func (s *SpawnSystem) SpawnBatch() int {
	n := s.cfg.CubesPerTick
	for i := 0; i < n; i++ {
		spec := world.CollectibleSpec{
			Position: mgl32.Vec3{
				(s.rng.Float32()*2 - 1) * s.cfg.Area,
				0,
				(s.rng.Float32()*2 - 1) * s.cfg.Area,
			},
			RotateSpeed: s.cfg.RotateSpeed,
			Radius:      s.cfg.CubeRadius,
			Velocity:    mgl32.Vec3{0, s.cfg.CubeSpeed, 0},
		}
		s.world.Commands().Record(s.world.CollectibleCommand(spec))
		if s.bus != nil {
			event.Emit(s.bus, event.EntitySpawned{Kind: event.SpawnCube, Tick: s.tick})
		}
	}
	return max(n, 0)
}
