package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// maxSubdivisions bounds the number of samples a single arc/circle sweep may
// produce before TooManySubdivisions is raised; it exists to catch
// unrealistic density settings rather than to model any physical limit.
const maxSubdivisions = 100000

// sampleArcSegment lays down samples at the midpoints of equal angular steps
// of size delta = 1/(sqrt(density)*rad) along the arc [0, angle) in the
// plane spanned by x and y, centered at cen with radius rad. It returns the
// per-sample arc length (total arc length / sample count), which callers
// combine with a circumferential step to get a dot's area.
//
// When rad <= 0 it returns no samples and zero area, matching a degenerate
// atom or belt radius rather than treating it as an error.
func sampleArcSegment(cen geom.Vec3, rad float64, x, y geom.Vec3, angle, density float64) ([]geom.Vec3, float64, error) {
	if rad <= 0 {
		return nil, 0, nil
	}
	delta := 1.0 / (math.Sqrt(density) * rad)

	points := make([]geom.Vec3, 0, 64)
	a := -delta / 2.0
	for i := 0; i < maxSubdivisions; i++ {
		a += delta
		if a > angle {
			break
		}
		c := rad * math.Cos(a)
		s := rad * math.Sin(a)
		points = append(points, cen.Add(x.Scale(c)).Add(y.Scale(s)))
	}
	if a+delta < angle {
		return nil, 0, errTooManySubdivisions()
	}

	var perSample float64
	if len(points) > 0 {
		perSample = rad * angle / float64(len(points))
	}
	return points, perSample, nil
}

// sampleArc samples the arc from direction x to direction v (both measured
// from cen, implicitly unit vectors on the circle of radius rad) about axis,
// using the angle in [0, 2π) through which x turns about axis (right-handed,
// toward axis × x) to reach v; that angle exceeds π when v lies on the
// other side.
func sampleArc(cen geom.Vec3, rad float64, axis, x, v geom.Vec3, density float64) ([]geom.Vec3, float64, error) {
	y := axis.Cross(x)
	dt1 := v.Dot(x)
	dt2 := v.Dot(y)
	angle := math.Atan2(dt2, dt1)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return sampleArcSegment(cen, rad, x, y, angle, density)
}

// sampleCircle samples the full circle of radius rad centered at cen, in the
// plane perpendicular to axis, building an arbitrary orthonormal in-plane
// basis the same way the contact/concave samplers do.
func sampleCircle(cen geom.Vec3, rad float64, axis geom.Vec3, density float64) ([]geom.Vec3, float64, error) {
	v1 := geom.New(
		axis.Y*axis.Y+axis.Z*axis.Z,
		axis.X*axis.X+axis.Z*axis.Z,
		axis.X*axis.X+axis.Y*axis.Y,
	).Normalize()
	if math.Abs(v1.Dot(axis)) > 0.99 {
		v1 = geom.New(1, 0, 0)
	}
	v2 := axis.Cross(v1).Normalize()
	x := axis.Cross(v2).Normalize()
	y := axis.Cross(x)
	return sampleArcSegment(cen, rad, x, y, 2*math.Pi, density)
}

// distancePointToLine returns the perpendicular distance from pnt to the
// line through cen with direction axis (assumed unit length).
func distancePointToLine(cen, axis, pnt geom.Vec3) float64 {
	v := pnt.Sub(cen)
	dt := v.Dot(axis)
	d2 := v.MagnitudeSquared() - dt*dt
	if d2 < 0 {
		d2 = 0
	}
	return math.Sqrt(d2)
}
