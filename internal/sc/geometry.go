package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// ringConstruction is the Lawrence & Colman / Connolly midplane-and-ring
// geometry shared by contact-cap framing, toroidal belt placement, and
// probe-triplet construction: given two expanded atom spheres, it finds the
// circle where their expanded surfaces would intersect.
type ringConstruction struct {
	// U is the unit axis from center i to center j.
	U geom.Vec3
	// M is the midplane center: the centres' midpoint shifted along U by
	// alpha/2, i.e. away from the larger expanded sphere's centre.
	M geom.Vec3
	// RingRadius is the radius of the intersection ring, valid only when
	// both FarOK and ContainOK.
	RingRadius float64
	// FarOK is false when the two expanded spheres are too far apart to
	// intersect (far-term discriminant <= 0).
	FarOK bool
	// ContainOK is false when one raw (unexpanded) sphere lies entirely
	// inside the other, d <= |ri - rj| (containment-term discriminant <= 0).
	// Only meaningful when FarOK.
	ContainOK bool
}

// computeRing builds the ring construction between atom i (expanded radius
// Ri, raw radius ri) and atom j (expanded radius Rj, raw radius rj).
// Degenerate cases (FarOK/ContainOK false) are not errors: callers decide
// whether to skip the pair or escalate.
func computeRing(ci, cj geom.Vec3, ri, rj, Ri, Rj float64) ringConstruction {
	d := ci.Distance(cj)
	u := cj.Sub(ci).Scale(1.0 / d)
	alpha := (Ri*Ri - Rj*Rj) / d
	m := ci.Add(cj).Scale(0.5).Add(u.Scale(alpha * 0.5))

	rc := ringConstruction{U: u, M: m}

	farTerm2 := (Ri+Rj)*(Ri+Rj) - d*d
	if farTerm2 <= 0 {
		return rc
	}
	rc.FarOK = true

	containTerm2 := d*d - (ri-rj)*(ri-rj)
	if containTerm2 <= 0 {
		return rc
	}
	rc.ContainOK = true

	farTerm := math.Sqrt(farTerm2)
	containTerm := math.Sqrt(containTerm2)
	rc.RingRadius = 0.5 * farTerm * containTerm / d
	return rc
}
