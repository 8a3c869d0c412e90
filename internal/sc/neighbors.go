package sc

import (
	"fmt"
	"sort"
)

// neighborResult is the per-atom output of neighbour computation: same-
// molecule neighbours (NeighborGraph) and opposite-molecule buriers, plus
// whether the atom is accessible purely by virtue of having no same-
// molecule neighbour at all.
type neighborResult struct {
	neighbors  []int
	buriedBy   []int
	accessible bool
}

// computeNeighborsForAtom builds §4.2's neighbour and burier lists for atom
// i against the frozen atoms slice. It is pure with respect to atoms: it
// never mutates the slice, which is what lets it run across a worker pool
// during the parallel neighbour-graph phase.
func computeNeighborsForAtom(atoms []Atom, i int, rp float64) (neighborResult, error) {
	a1 := atoms[i]
	var neighbors, buriedBy []int

	for j, a2 := range atoms {
		if j == i {
			continue
		}
		d2 := a1.DistanceSquared(a2)
		bridge := a1.Radius + a2.Radius + 2*rp
		if a1.Molecule == a2.Molecule {
			if d2 <= 1e-4 {
				return neighborResult{}, errCoincident(a1.Natom, a2.Natom, coincidentMessage(a1, a2))
			}
			if d2 < bridge*bridge {
				neighbors = append(neighbors, j)
			}
		} else if d2 < bridge*bridge {
			buriedBy = append(buriedBy, j)
		}
	}

	center := a1.Coor
	sort.SliceStable(neighbors, func(x, y int) bool {
		return atoms[neighbors[x]].Coor.DistanceSquared(center) < atoms[neighbors[y]].Coor.DistanceSquared(center)
	})

	return neighborResult{
		neighbors:  neighbors,
		buriedBy:   buriedBy,
		accessible: len(neighbors) == 0,
	}, nil
}

func coincidentMessage(a, b Atom) string {
	return fmt.Sprintf("%s == %s", formatAtomIdentity(a), formatAtomIdentity(b))
}

func formatAtomIdentity(a Atom) string {
	return fmt.Sprintf("%d:%s:%s @ (%.3f, %.3f, %.3f)", a.Natom, a.Residue, a.AtomName, a.Coor.X, a.Coor.Y, a.Coor.Z)
}

// computeNeighborsAll fills in NeighborIndices, BuriedByIndices and the
// accessible-by-isolation flag for every atom, fanning out across
// atoms when parallel is true. It never skips an atom for Attention
// reasons: the attention classifier has already run and every atom's
// bridge-distance neighbours are needed regardless of Far/Buried status,
// since a Far atom's neighbours still matter to its Buried same-molecule
// partners' frames.
func (e *Engine) computeNeighborsAll() error {
	results, err := forEachIndex(e.settings.EnableParallel, len(e.atoms), func(i int) (neighborResult, error) {
		return computeNeighborsForAtom(e.atoms, i, e.settings.Rp)
	})
	if err != nil {
		return err
	}
	for i, r := range results {
		e.atoms[i].NeighborIndices = r.neighbors
		e.atoms[i].BuriedByIndices = r.buriedBy
		if r.accessible {
			e.atoms[i].Accessible = true
		}
	}
	return nil
}
