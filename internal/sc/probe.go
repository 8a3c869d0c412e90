package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// probePhaseResult is one atom's contribution to the serial probe-placement
// phase: the Connolly probes it anchors and the Reentrant dots its toroidal
// belts emit. Probe placement and toroidal emission are fused into a single
// serial pass, matching the reference generator's actual control flow
// (build_probes calls the toroidal emitter synchronously) rather than
// spec's phase numbering, which lists them as separate steps for
// exposition; contact sampling depends on the Accessible flags this phase
// sets, so it must run to completion first regardless.
type probePhaseResult struct {
	probes []Probe
	dots   []Dot
}

// buildProbesForAtom runs atom i's share of probe-triplet construction
// against every same-molecule neighbour j with a higher ordinal (so each
// unordered pair is visited exactly once, from the lower-numbered atom).
func buildProbesForAtom(atoms []Atom, i int, settings Settings) (probePhaseResult, []int, error) {
	a := atoms[i]
	rp := settings.Rp
	var result probePhaseResult
	var accessible []int

	for _, j := range a.NeighborIndices {
		b := atoms[j]
		if b.Natom <= a.Natom {
			continue
		}

		Ri := a.Radius + rp
		Rj := b.Radius + rp
		ring := computeRing(a.Coor, b.Coor, a.Radius, b.Radius, Ri, Rj)
		if !ring.FarOK || !ring.ContainOK {
			continue
		}

		if len(a.NeighborIndices) <= 1 {
			accessible = append(accessible, i, j)
			break
		}

		triplets, madeProbe, err := buildProbeTriplets(atoms, i, j, ring.U, ring.M, ring.RingRadius, settings)
		if err != nil {
			return probePhaseResult{}, nil, err
		}
		result.probes = append(result.probes, triplets...)
		if madeProbe {
			accessible = append(accessible, i)
		}

		distIJ := a.Distance(b)
		asymmetry := (Ri*Ri - Rj*Rj) / distIJ
		hasPointCusp := math.Abs(asymmetry) < distIJ

		if a.Attention != AttentionFar || (b.Attention != AttentionFar && rp > 0) {
			belt, err := emitReentrantSurface(atoms, i, j, ring.U, ring.M, ring.RingRadius, hasPointCusp, settings)
			if err != nil {
				return probePhaseResult{}, nil, err
			}
			if len(belt) > 0 {
				accessible = append(accessible, i, j)
			}
			result.dots = append(result.dots, belt...)
		}
	}

	return result, accessible, nil
}

// buildProbeTriplets completes the (i, j) pair into every valid Connolly
// triple (i, j, k) over same-molecule neighbours k of i with a higher
// ordinal than j, placing a probe tangent to all three where geometry
// allows.
//
// A degenerate wedge angle (sinWedge <= 0, meaning k's axis from the
// atom i is antiparallel or coincident with the i-j axis) is
// handled two different ways depending on which side of the ring k's
// projection lands: if k's sphere doesn't reach the midplane center,
// the loop simply continues to the next k; if it does reach past it,
// every remaining k for this (i, j) pair is abandoned outright, because
// a population of coplanar-ish neighbours beyond this point can no longer
// be resolved into a consistent torus axis. This asymmetry is preserved
// verbatim from the reference generator.
func buildProbeTriplets(atoms []Atom, i, j int, unitAxis, midplaneCenter geom.Vec3, ringRadius float64, settings Settings) ([]Probe, bool, error) {
	a, b := atoms[i], atoms[j]
	rp := settings.Rp
	Ri := a.Radius + rp
	Rj := b.Radius + rp
	madeProbe := false
	var probes []Probe

	for _, k := range a.NeighborIndices {
		c := atoms[k]
		if c.Natom <= b.Natom {
			continue
		}
		Rk := c.Radius + rp
		if b.Distance(c) >= Rj+Rk {
			continue
		}
		if a.Distance(c) >= Ri+Rk {
			continue
		}
		if a.Attention == AttentionFar && b.Attention == AttentionFar && c.Attention == AttentionFar {
			continue
		}

		unitAxisIK := c.Coor.Sub(a.Coor).Normalize()
		wedgeAngle := math.Acos(clampUnit(unitAxis.Dot(unitAxisIK)))
		sinWedge := math.Sin(wedgeAngle)

		if sinWedge <= 0 {
			dtijk2 := midplaneCenter.DistanceSquared(c.Coor)
			rkp2 := Rk*Rk - ringRadius*ringRadius
			if dtijk2 < rkp2 {
				return probes, madeProbe, nil
			}
			continue
		}

		axisNormal := unitAxis.Cross(unitAxisIK).Scale(1 / sinWedge)
		perpTangent := axisNormal.Cross(unitAxis)

		distIK := a.Distance(c)
		asymmetryIK := (Ri*Ri - Rk*Rk) / distIK
		midpointIK := a.Coor.Add(c.Coor).Scale(0.5).Add(unitAxisIK.Scale(asymmetryIK * 0.5))

		diff := midpointIK.Sub(midplaneCenter)
		componentwise := geom.New(unitAxisIK.X*diff.X, unitAxisIK.Y*diff.Y, unitAxisIK.Z*diff.Z)
		componentSum := componentwise.X + componentwise.Y + componentwise.Z

		torusCenter := midplaneCenter.Add(perpTangent.Scale(componentSum / sinWedge))
		height2 := Ri*Ri - torusCenter.DistanceSquared(a.Coor)
		if height2 <= 0 {
			continue
		}
		height := math.Sqrt(height2)

		for is0 := 1; is0 <= 2; is0++ {
			sign := float64(3 - 2*is0)
			probeCenter := torusCenter.Add(axisNormal.Scale(height * sign))

			if checkAtomCollision(atoms, probeCenter, i, j, k, a.NeighborIndices, rp) {
				continue
			}

			var atomIndices [3]int
			if sign > 0 {
				atomIndices = [3]int{i, j, k}
			} else {
				atomIndices = [3]int{j, i, k}
			}
			probes = append(probes, Probe{
				AtomIndices: atomIndices,
				Height:      height,
				Point:       probeCenter,
				Alt:         axisNormal.Scale(sign),
			})
			madeProbe = true
		}
	}

	return probes, madeProbe, nil
}

// checkAtomCollision reports whether probeCenter falls within the
// probe-expanded sphere of any neighbour of atomI other than atomJ and
// atomK (identified by atom-store index, which is safe here since a given
// atom's neighbour list cannot contain duplicates).
func checkAtomCollision(atoms []Atom, probeCenter geom.Vec3, atomI, atomJ, atomK int, neighborIndices []int, rp float64) bool {
	for _, ni := range neighborIndices {
		if ni == atomJ || ni == atomK {
			continue
		}
		n := atoms[ni]
		expanded := n.Radius + rp
		if probeCenter.DistanceSquared(n.Coor) <= expanded*expanded {
			return true
		}
	}
	return false
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
