package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// emitReentrantSurface discretises the toroidal re-entrant belt that a
// probe rolling around the (i, j) contact would sweep, per §4.5. It is
// called once per same-molecule neighbour pair sharing a valid ring
// construction, from within the same serial pass that places probes
// (see buildProbesForAtom's doc comment for why).
func emitReentrantSurface(atoms []Atom, i, j int, unitAxis, midplaneCenter geom.Vec3, ringRadius float64, hasPointCusp bool, settings Settings) ([]Dot, error) {
	a, b := atoms[i], atoms[j]
	rp := settings.Rp
	density := (a.Density + b.Density) / 2
	Ri := a.Radius + rp
	Rj := b.Radius + rp

	rollI := ringRadius * a.Radius / Ri
	rollJ := ringRadius * b.Radius / Rj
	beltRadius := math.Max(ringRadius-rp, 0)
	meanRadius := (rollI + 2*beltRadius + rollJ) / 4
	eccentricity := meanRadius / ringRadius
	effectiveDensity := eccentricity * eccentricity * density

	subs, ts, err := sampleCircle(midplaneCenter, ringRadius, unitAxis, effectiveDensity)
	if err != nil {
		return nil, err
	}

	var dots []Dot
	for _, ringPoint := range subs {
		if tooCloseToOtherNeighbor(atoms, a, j, ringPoint, rp) {
			continue
		}

		vecPI := a.Coor.Sub(ringPoint).Scale(1 / Ri)
		vecPJ := b.Coor.Sub(ringPoint).Scale(1 / Rj)
		toroidAxis := vecPI.Cross(vecPJ).Normalize()

		cuspTerm2 := rp*rp - ringRadius*ringRadius
		hasCusp := cuspTerm2 > 0 && hasPointCusp

		var arcEndI, arcEndJ geom.Vec3
		if hasCusp {
			cuspTerm := math.Sqrt(cuspTerm2)
			qij := midplaneCenter.Sub(unitAxis.Scale(cuspTerm))
			arcEndI = qij.Sub(ringPoint).Scale(1 / rp)
			// A genuine point cusp is where the i-side and j-side arcs meet
			// at a single shared point, so both ends coincide.
			arcEndJ = arcEndI
		} else {
			pq := vecPI.Add(vecPJ).Normalize()
			arcEndI = pq
			arcEndJ = pq
		}

		// A dot product at or beyond the unit bound means this ring point's
		// arc geometry is degenerate; the reference generator abandons the
		// rest of the belt rather than skipping just this point, since the
		// same (i, j) geometry that produced one degenerate point is liable
		// to produce the same failure for the remaining ring points too.
		dotI := arcEndI.Dot(vecPI)
		dotJ := arcEndJ.Dot(vecPJ)
		if dotI <= -1 || dotI >= 1 || dotJ <= -1 || dotJ >= 1 {
			return dots, nil
		}

		if a.Attention != AttentionFar {
			pts, ps, err := sampleArc(ringPoint, rp, toroidAxis, vecPI, arcEndI, density)
			if err != nil {
				return nil, err
			}
			dots = append(dots, reentrantDots(pts, ps, ts, midplaneCenter, unitAxis, ringRadius, ringPoint, i, atoms, rp)...)
		}
		if b.Attention != AttentionFar {
			pts, ps, err := sampleArc(ringPoint, rp, toroidAxis, arcEndJ, vecPJ, density)
			if err != nil {
				return nil, err
			}
			dots = append(dots, reentrantDots(pts, ps, ts, midplaneCenter, unitAxis, ringRadius, ringPoint, j, atoms, rp)...)
		}
	}

	return dots, nil
}

// reentrantDots converts one side's sampled arc points into Reentrant dots
// owned by ownerIndex, computing area, outward normal and burial for each.
func reentrantDots(points []geom.Vec3, perSample, circumferentialStep float64, midplaneCenter, unitAxis geom.Vec3, ringRadius float64, ringPoint geom.Vec3, ownerIndex int, atoms []Atom, rp float64) []Dot {
	owner := atoms[ownerIndex]
	dots := make([]Dot, 0, len(points))
	for _, p := range points {
		area := perSample * circumferentialStep * distancePointToLine(midplaneCenter, unitAxis, p) / ringRadius
		var outnml geom.Vec3
		if rp <= 0 {
			outnml = p.Sub(owner.Coor)
		} else {
			outnml = ringPoint.Sub(p).Scale(1 / rp)
		}
		dots = append(dots, Dot{
			Coor:      p,
			OutNml:    outnml,
			Area:      area,
			Buried:    isBuried(atoms, owner.Molecule, ringPoint, rp),
			Kind:      DotReentrant,
			AtomIndex: ownerIndex,
			Pcen:      ringPoint,
		})
	}
	return dots
}

// tooCloseToOtherNeighbor rejects a candidate ring point if it falls inside
// the probe-expanded sphere of any same-molecule neighbour of a other than
// excludeIndex (the (i,j) pair's other member, which the belt is built
// between and so can never itself occlude it).
func tooCloseToOtherNeighbor(atoms []Atom, a Atom, excludeIndex int, point geom.Vec3, rp float64) bool {
	for _, ni := range a.NeighborIndices {
		if ni == excludeIndex {
			continue
		}
		n := atoms[ni]
		expanded := n.Radius + rp
		if point.DistanceSquared(n.Coor) < expanded*expanded {
			return true
		}
	}
	return false
}
