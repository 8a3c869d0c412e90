// Package spatialidx provides a uniform 3D spatial grid used to accelerate
// nearest-point and neighbor-candidate queries over the dot clouds and atom
// sets the surface generator works with.
//
// MATHEMATICIAN: Reduces O(n*m) nearest-point search to O(n) expected by
// bucketing points into cells of a fixed size and only scanning the cells
// around a query point.
package spatialidx

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// Entry is one indexed point stored in a Grid. Index lets callers recover
// which atom, dot, or probe a grid hit refers to without storing the whole
// value twice.
type Entry struct {
	Index int
	Point geom.Vec3
}

type cellKey struct {
	X, Y, Z int
}

// Grid buckets points into cubic cells of side cellSize. Queries only
// examine the cells near a point rather than the whole point set.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]Entry
	n        int
}

// NewGrid builds an empty grid. cellSize should be at least the largest
// radius of interest for queries run against the grid (e.g. the probe
// diameter when indexing atoms, or the trim search radius when indexing
// dots).
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1.0
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]Entry),
	}
}

func (g *Grid) keyOf(p geom.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
		Z: int(math.Floor(p.Z / g.cellSize)),
	}
}

// Insert adds a point under the given index.
func (g *Grid) Insert(index int, p geom.Vec3) {
	k := g.keyOf(p)
	g.cells[k] = append(g.cells[k], Entry{Index: index, Point: p})
	g.n++
}

// Len returns the number of points inserted.
func (g *Grid) Len() int {
	return g.n
}

// Neighbors returns every entry in the 3x3x3 block of cells centered on the
// cell containing p. Candidates may lie farther than cellSize from p; callers
// that need an exact radius or exact nearest point must filter themselves, or
// use Nearest below.
func (g *Grid) Neighbors(p geom.Vec3) []Entry {
	center := g.keyOf(p)
	out := make([]Entry, 0, 32)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				k := cellKey{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				out = append(out, g.cells[k]...)
			}
		}
	}
	return out
}

// Nearest returns the accepted entry closest to query by Euclidean distance,
// expanding the search box ring by ring until the best candidate found is
// provably closer than anything a wider box could contain. accept may be nil
// to accept every entry. Returns ok=false if the grid holds no accepted
// entry, or if none has been found once the search has gone past
// maxEmptyRingSearch rings and reaches an empty ring.
//
// This is an exact search, not an approximate one: the ring expansion only
// stops once no unscanned cell could possibly hold a closer point than the
// best candidate found so far.
func (g *Grid) Nearest(query geom.Vec3, accept func(Entry) bool) (best Entry, ok bool) {
	if g.n == 0 {
		return Entry{}, false
	}
	center := g.keyOf(query)
	bestDist := math.Inf(1)

	for radius := 0; ; radius++ {
		any := false
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				for dz := -radius; dz <= radius; dz++ {
					// Only scan the shell, not cells already covered by a
					// smaller radius.
					if radius > 0 && abs(dx) != radius && abs(dy) != radius && abs(dz) != radius {
						continue
					}
					k := cellKey{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
					entries, exists := g.cells[k]
					if !exists {
						continue
					}
					any = true
					for _, e := range entries {
						if accept != nil && !accept(e) {
							continue
						}
						d := query.DistanceSquared(e.Point)
						if d < bestDist {
							bestDist = d
							best = e
							ok = true
						}
					}
				}
			}
		}

		// A point in a ring at distance `radius` cells away is at least
		// (radius-1)*cellSize from query (its own cell may abut query's
		// cell). Once the best candidate found is within that guaranteed
		// floor for the NEXT ring, no further ring can improve on it.
		nextFloor := float64(radius) * g.cellSize
		if ok && nextFloor*nextFloor >= bestDist {
			return best, true
		}
		if !any && radius > 0 && !ok && radius > maxEmptyRingSearch {
			return Entry{}, false
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// maxEmptyRingSearch bounds how far out, in rings, Nearest searches without
// a hit: past this radius the first empty ring makes it give up; it
// exists only to keep a pathological sparse grid from spinning forever.
const maxEmptyRingSearch = 4096
