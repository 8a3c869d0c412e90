package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// concaveDotsForProbe discretises the spherical-triangle patch of probe p's
// surface that faces its three owning atoms, per §4.6. lowProbes are the
// indices (into probes) of every probe whose height is less than the probe
// radius — these are the only probes close enough to each other to need the
// low-probe collision-avoidance check below.
func concaveDotsForProbe(atoms []Atom, probes []Probe, probeIdx int, lowProbes []int, settings Settings) ([]Dot, error) {
	p := probes[probeIdx]
	rp := settings.Rp
	owners := [3]Atom{atoms[p.AtomIndices[0]], atoms[p.AtomIndices[1]], atoms[p.AtomIndices[2]]}
	if owners[0].Attention == AttentionConsider && owners[1].Attention == AttentionConsider && owners[2].Attention == AttentionConsider {
		return nil, nil
	}

	var vp [3]geom.Vec3
	for k, a := range owners {
		vp[k] = a.Coor.Sub(p.Point).Normalize()
	}
	w0 := vp[0].Cross(vp[1]).Normalize()
	w1 := vp[1].Cross(vp[2]).Normalize()
	w2 := vp[2].Cross(vp[0]).Normalize()
	wedgeNormals := [3]geom.Vec3{w0, w1, w2}

	mm := 0
	best := p.Alt.Dot(vp[0])
	for k := 1; k < 3; k++ {
		if d := p.Alt.Dot(vp[k]); d > best {
			best = d
			mm = k
		}
	}
	southDir := p.Alt.Scale(-1)
	arcAxis := vp[mm].Cross(southDir).Normalize()

	density := (owners[0].Density + owners[1].Density + owners[2].Density) / 3

	lats, cs, err := sampleArc(geom.Vec3{}, rp, arcAxis, vp[mm], southDir, density)
	if err != nil {
		return nil, err
	}

	isLow := p.Height < rp
	var dots []Dot
	for _, ilat := range lats {
		dt := ilat.Dot(southDir)
		cen := southDir.Scale(dt)
		rad2 := rp*rp - dt*dt
		if rad2 <= 0 {
			continue
		}
		circlePoints, ps, err := sampleCircle(cen, math.Sqrt(rad2), southDir, density)
		if err != nil {
			return nil, err
		}
		area := ps * cs

		for _, localPoint := range circlePoints {
			if insideAnyWedge(localPoint, wedgeNormals) {
				continue
			}

			worldPoint := localPoint.Add(p.Point)

			if isLow && tooCloseToOtherLowProbe(probes, probeIdx, lowProbes, worldPoint, rp) {
				continue
			}

			mc := 0
			bestGap := worldPoint.Distance(owners[0].Coor) - owners[0].Radius
			for k := 1; k < 3; k++ {
				if gap := worldPoint.Distance(owners[k].Coor) - owners[k].Radius; gap < bestGap {
					bestGap = gap
					mc = k
				}
			}
			atomIndex := p.AtomIndices[mc]
			owner := owners[mc]

			var outnml geom.Vec3
			if rp <= 0 {
				outnml = worldPoint.Sub(owner.Coor)
			} else {
				outnml = p.Point.Sub(worldPoint).Scale(1 / rp)
			}

			dots = append(dots, Dot{
				Coor:      worldPoint,
				OutNml:    outnml,
				Area:      area,
				Buried:    isBuried(atoms, owner.Molecule, p.Point, rp),
				Kind:      DotCavity,
				AtomIndex: atomIndex,
				Pcen:      p.Point,
			})
		}
	}
	return dots, nil
}

// insideAnyWedge reports whether localPoint (relative to the probe center)
// lies on the outward side of any of the triangle's three wedge planes,
// meaning it is outside the spherical triangle facing the three owning
// atoms and must be rejected.
func insideAnyWedge(localPoint geom.Vec3, wedgeNormals [3]geom.Vec3) bool {
	for _, w := range wedgeNormals {
		if localPoint.Dot(w) >= 0 {
			return true
		}
	}
	return false
}

// tooCloseToOtherLowProbe rejects worldPoint if it falls within rp of the
// center of another low probe (height < rp) that is itself within 2*rp of
// this probe, preventing double coverage where two shallow probes'
// spherical caps overlap.
func tooCloseToOtherLowProbe(probes []Probe, probeIdx int, lowProbes []int, worldPoint geom.Vec3, rp float64) bool {
	self := probes[probeIdx]
	for _, other := range lowProbes {
		if other == probeIdx {
			continue
		}
		op := probes[other]
		if self.Point.DistanceSquared(op.Point) >= (2 * rp) * (2 * rp) {
			continue
		}
		if worldPoint.DistanceSquared(op.Point) < rp*rp {
			return true
		}
	}
	return false
}
