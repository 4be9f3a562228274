package data

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/world"
	"gopkg.in/yaml.v3"
)

// Vec3 is a position as written in layout files: [x, y, z].
type Vec3 [3]float32

func (v Vec3) mgl() mgl32.Vec3 { return mgl32.Vec3(v) }

// MoverEntry is the player ball.
type MoverEntry struct {
	Position  Vec3    `yaml:"position"`
	MoveSpeed float32 `yaml:"move_speed"`
	Radius    float32 `yaml:"radius"`
}

// CollectibleEntry is one hand-placed pickup.
type CollectibleEntry struct {
	Position    Vec3    `yaml:"position"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	Radius      float32 `yaml:"radius"`
}

// RingEntry places Count pickups evenly on a circle around Center.
type RingEntry struct {
	Center      Vec3    `yaml:"center"`
	Count       int     `yaml:"count"`
	Radius      float32 `yaml:"radius"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	PickRadius  float32 `yaml:"pick_radius"`
}

// SpawnLayout is the authoring-side description of a level.
type SpawnLayout struct {
	Mover        MoverEntry         `yaml:"mover"`
	Collectibles []CollectibleEntry `yaml:"collectibles"`
	Rings        []RingEntry        `yaml:"rings"`
}

// LoadSpawnLayout loads a level layout YAML file.
func LoadSpawnLayout(path string) (*SpawnLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn layout: %w", err)
	}
	return ParseSpawnLayout(raw)
}

// ParseSpawnLayout parses layout YAML and fills defaults.
func ParseSpawnLayout(raw []byte) (*SpawnLayout, error) {
	l := &SpawnLayout{
		Mover: MoverEntry{Position: Vec3{0, 0.5, 0}, MoveSpeed: 10, Radius: 0.5},
	}
	if err := yaml.Unmarshal(raw, l); err != nil {
		return nil, fmt.Errorf("parse spawn layout: %w", err)
	}
	for i, r := range l.Rings {
		if r.Count < 0 {
			return nil, fmt.Errorf("parse spawn layout: ring %d has negative count", i)
		}
	}
	return l, nil
}

// Count returns the number of collectibles the layout produces.
func (l *SpawnLayout) Count() int {
	n := len(l.Collectibles)
	for _, r := range l.Rings {
		n += r.Count
	}
	return n
}

// Spawn creates the layout's entities in ws and returns the mover. Setup
// only; the world must not be ticking.
func (l *SpawnLayout) Spawn(ws *world.State) world.SpawnResult {
	res := world.SpawnResult{
		Mover: ws.SpawnMover(world.MoverSpec{
			Position: l.Mover.Position.mgl(),
			Speed:    l.Mover.MoveSpeed,
			Radius:   l.Mover.Radius,
		}),
	}
	for _, c := range l.Collectibles {
		ws.SpawnCollectible(world.CollectibleSpec{
			Position:    c.Position.mgl(),
			RotateSpeed: c.RotateSpeed,
			Radius:      withDefault(c.Radius, 0.5),
		})
		res.Collectibles++
	}
	for _, r := range l.Rings {
		for i := 0; i < r.Count; i++ {
			a := 2 * math.Pi * float64(i) / float64(r.Count)
			pos := r.Center.mgl().Add(mgl32.Vec3{
				r.Radius * float32(math.Cos(a)),
				0,
				r.Radius * float32(math.Sin(a)),
			})
			ws.SpawnCollectible(world.CollectibleSpec{
				Position:    pos,
				RotateSpeed: r.RotateSpeed,
				Radius:      withDefault(r.PickRadius, 0.5),
			})
			res.Collectibles++
		}
	}
	return res
}

func withDefault(v, def float32) float32 {
	if v <= 0 {
		return def
	}
	return v
}
