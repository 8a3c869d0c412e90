package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// contactDotsForAtom builds the convex contact cap for atom i, per §4.3.
// Degenerate local frames (far/containment discriminants non-positive, or an
// improperly oriented north/south/equator triad) are not escalated to
// errors here: this function backs both the serial and parallel passes, and
// the reference implementation's parallel path treats every one of these as
// a benign skip of that atom's cap, so both paths agree in this package.
func contactDotsForAtom(atoms []Atom, i int, settings Settings) ([]Dot, error) {
	a := atoms[i]
	if a.Attention == AttentionFar {
		return nil, nil
	}
	if a.Attention == AttentionConsider && len(a.BuriedByIndices) == 0 {
		return nil, nil
	}
	if !a.Accessible {
		return nil, nil
	}
	if len(a.NeighborIndices) == 0 {
		// An isolated atom has no neighbour to frame its cap against, so its
		// whole sphere is sampled from +Z to -Z.
		return sampleContactCap(atoms, i, geom.New(0, 0, 1), geom.New(0, 0, -1), geom.New(1, 0, 0), settings)
	}

	first := atoms[a.NeighborIndices[0]]
	rp := settings.Rp
	Ri := a.Radius + rp
	Rj := first.Radius + rp

	ring := computeRing(a.Coor, first.Coor, a.Radius, first.Radius, Ri, Rj)
	if !ring.FarOK || !ring.ContainOK {
		return nil, nil
	}

	south := a.Coor.Sub(first.Coor).Normalize()
	north := south.Scale(-1)
	equator := perpendicular(north)
	if north.Cross(south).Dot(equator) > 0 {
		return nil, nil
	}

	return sampleContactCap(atoms, i, north, south, equator, settings)
}

// perpendicular returns an arbitrary unit vector perpendicular to v, using
// the same component-swap construction the reference sampler uses to build
// an in-plane basis without a preferred direction singularity.
func perpendicular(v geom.Vec3) geom.Vec3 {
	cand := geom.New(v.Y*v.Y+v.Z*v.Z, v.X*v.X+v.Z*v.Z, v.X*v.X+v.Y*v.Y).Normalize()
	if absf(cand.Dot(v)) > 0.99 {
		cand = geom.New(1, 0, 0)
	}
	return v.Cross(cand).Normalize()
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// sampleContactCap discretises the visible portion of atom i's expanded
// sphere into Contact dots, rejecting points occluded by any same-molecule
// neighbour beyond the first (the first neighbour only ever defines the
// local frame and is never itself a valid occluder for this atom's own
// cap).
func sampleContactCap(atoms []Atom, i int, north, south, equator geom.Vec3, settings Settings) ([]Dot, error) {
	a := atoms[i]
	rp := settings.Rp
	expanded := a.Radius + rp

	latitudes, _, err := sampleArc(geom.Vec3{}, 1, equator, north, south, a.Density)
	if err != nil {
		return nil, err
	}

	var dots []Dot
	for _, lat := range latitudes {
		dt := lat.Dot(south)
		cenOffset := south.Scale(dt)
		rad2 := 1 - dt*dt
		if rad2 <= 0 {
			continue
		}
		circlePoints, perSample, err := sampleCircle(geom.Vec3{}, sqrtClamp(rad2), south, a.Density)
		if err != nil {
			return nil, err
		}
		for _, cp := range circlePoints {
			unit := cenOffset.Add(cp)
			point := a.Coor.Add(unit.Scale(a.Radius))
			pcen := a.Coor.Add(unit.Scale(expanded))

			if isOccluded(atoms, a, pcen, rp) {
				continue
			}

			area := perSample * distancePointToLine(geom.Vec3{}, south, unit)
			var outnml geom.Vec3
			if rp <= 0 {
				outnml = unit
			} else {
				outnml = pcen.Sub(point).Scale(1 / rp)
			}
			dots = append(dots, Dot{
				Coor:      point,
				OutNml:    outnml,
				Area:      area,
				Buried:    isBuried(atoms, a.Molecule, pcen, rp),
				Kind:      DotContact,
				AtomIndex: i,
				Pcen:      pcen,
			})
		}
	}
	return dots, nil
}

func sqrtClamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

// isOccluded reports whether pcen falls inside any same-molecule neighbour
// of a other than the first (the first defines the local frame and is
// excluded from the collision test, matching the reference sampler).
func isOccluded(atoms []Atom, a Atom, pcen geom.Vec3, rp float64) bool {
	if len(a.NeighborIndices) < 2 {
		return false
	}
	for _, ni := range a.NeighborIndices[1:] {
		n := atoms[ni]
		expanded := n.Radius + rp
		if pcen.DistanceSquared(n.Coor) <= expanded*expanded {
			return true
		}
	}
	return false
}

// isBuried is the authoritative full rescan against every atom of the
// opposite molecule: pcen is buried if it falls within or on any opposite
// atom's probe-expanded sphere.
func isBuried(atoms []Atom, molecule int, pcen geom.Vec3, rp float64) bool {
	other := otherMolecule(molecule)
	for _, b := range atoms {
		if b.Molecule != other {
			continue
		}
		expanded := b.Radius + rp
		if pcen.DistanceSquared(b.Coor) <= expanded*expanded {
			return true
		}
	}
	return false
}
