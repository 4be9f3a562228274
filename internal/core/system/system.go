package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput       Phase = iota // 0: dispatch last tick's events, sample input
	PhaseUpdate                   // 1: movement, rotation
	PhasePhysics                  // 2: external physics step, trigger pairs
	PhaseCollect                  // 3: trigger resolution into the command buffer
	PhaseCollectSync              // 4: apply collection mutations
	PhaseScore                    // 5: score + destroy
	PhaseSpawn                    // 6: bounded spawning, sees this tick's score
	PhaseCleanup                  // 7: apply destroys and spawns
	PhaseOutput                   // 8: camera, score display
	PhasePersist                  // 9: journal flush
)

var phaseNames = [...]string{
	"input", "update", "physics", "collect", "collect-sync",
	"score", "spawn", "cleanup", "output", "persist",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
