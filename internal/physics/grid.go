package physics

import (
	"math"

	"github.com/l1jgo/cubecollect/internal/core/ecs"
)

// grid is a uniform spatial hash over the colliders of one step. Cell size
// is at least the largest collider diameter, so any overlapping pair shares
// a cell or sits in neighbouring cells (3x3x3 neighbourhood).
type grid struct {
	cellSize float32
	cells    map[cellKey][]int
}

type cellKey struct {
	cx, cy, cz int32
}

func newGrid(cellSize float32) *grid {
	return &grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, 256),
	}
}

func (g *grid) coord(v float32) int32 {
	return int32(math.Floor(float64(v / g.cellSize)))
}

func (g *grid) key(x, y, z float32) cellKey {
	return cellKey{cx: g.coord(x), cy: g.coord(y), cz: g.coord(z)}
}

func (g *grid) reset(cellSize float32) {
	g.cellSize = cellSize
	for k := range g.cells {
		delete(g.cells, k)
	}
}

// add places body index i in the cell containing its centre.
func (g *grid) add(i int, x, y, z float32) {
	k := g.key(x, y, z)
	g.cells[k] = append(g.cells[k], i)
}

// nearby calls fn for every body index in the 3x3x3 block around (x,y,z).
// Caller does the exact distance test.
func (g *grid) nearby(x, y, z float32, fn func(int)) {
	c := g.key(x, y, z)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				for _, i := range g.cells[cellKey{c.cx + dx, c.cy + dy, c.cz + dz}] {
					fn(i)
				}
			}
		}
	}
}

// body is the per-step snapshot of one collider.
type body struct {
	id      ecs.EntityID
	x, y, z float32
	radius  float32
}
