package sc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/geom"
)

func TestSampleArcSegmentCoversFullCircleAtTargetDensity(t *testing.T) {
	points, perSample, err := sampleArcSegment(geom.Zero, 2.0, geom.New(1, 0, 0), geom.New(0, 1, 0), 2*math.Pi, 15.0)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	// Each sample should sit on the circle of radius 2 centered at the origin.
	for _, p := range points {
		require.InDelta(t, 2.0, p.Magnitude(), 1e-9)
	}

	totalArcLength := perSample * float64(len(points))
	require.InDelta(t, 2*math.Pi*2.0, totalArcLength, 0.2)
}

func TestSampleArcSegmentDegenerateRadiusIsEmpty(t *testing.T) {
	points, area, err := sampleArcSegment(geom.Zero, 0, geom.New(1, 0, 0), geom.New(0, 1, 0), math.Pi, 15.0)
	require.NoError(t, err)
	require.Empty(t, points)
	require.Zero(t, area)
}

func TestSampleArcSegmentTooManySubdivisionsErrors(t *testing.T) {
	// An unrealistically huge density drives the angular step toward zero,
	// so the loop cannot reach the target angle within the cap.
	_, _, err := sampleArcSegment(geom.Zero, 1.0, geom.New(1, 0, 0), geom.New(0, 1, 0), math.Pi, 1e12)
	require.Error(t, err)

	var scErr *Error
	require.ErrorAs(t, err, &scErr)
	require.Equal(t, KindTooManySubdivisions, scErr.Kind)
}

func TestSampleArcRotatesFromXTowardV(t *testing.T) {
	axis := geom.New(0, 0, 1)
	x := geom.New(1, 0, 0)
	v := geom.New(0, 1, 0) // 90 degrees around +z from x

	points, _, err := sampleArc(geom.Zero, 1.0, axis, x, v, 15.0)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	last := points[len(points)-1]
	require.InDelta(t, 0.0, last.Z, 1e-9)
	require.Greater(t, last.Y, 0.0)
}

func TestSampleCircleProducesFullRingOnPlane(t *testing.T) {
	axis := geom.New(0, 0, 1)
	points, _, err := sampleCircle(geom.New(1, 2, 3), 1.5, axis, 15.0)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	for _, p := range points {
		require.InDelta(t, 3.0, p.Z, 1e-9)
		require.InDelta(t, 1.5, p.Sub(geom.New(1, 2, 3)).Magnitude(), 1e-9)
	}
}

func TestDistancePointToLine(t *testing.T) {
	cen := geom.Zero
	axis := geom.New(0, 0, 1)
	pnt := geom.New(3, 4, 10)
	require.InDelta(t, 5.0, distancePointToLine(cen, axis, pnt), 1e-9)
}

func TestComputeRingMatchesHandComputedRadius(t *testing.T) {
	// Two unit spheres (radius 1, no probe expansion) centered 1.6 apart:
	// by symmetry the midplane sits exactly halfway, and the ring radius is
	// sqrt(1 - 0.8^2).
	ci := geom.New(0, 0, 0)
	cj := geom.New(1.6, 0, 0)
	ring := computeRing(ci, cj, 1.0, 1.0, 1.0, 1.0)

	require.True(t, ring.FarOK)
	require.True(t, ring.ContainOK)
	require.InDelta(t, 0.8, ring.M.X, 1e-9)
	want := math.Sqrt(1 - 0.8*0.8)
	require.InDelta(t, want, ring.RingRadius, 1e-9)
}

func TestComputeRingTooFarIsNotOK(t *testing.T) {
	ci := geom.New(0, 0, 0)
	cj := geom.New(100, 0, 0)
	ring := computeRing(ci, cj, 1.0, 1.0, 1.0, 1.0)
	require.False(t, ring.FarOK)
}

func TestComputeRingContainedIsNotOK(t *testing.T) {
	// A tiny sphere fully inside a much larger one: the containment
	// discriminant (d^2 - (ri-rj)^2) goes non-positive.
	ci := geom.New(0, 0, 0)
	cj := geom.New(0.1, 0, 0)
	ring := computeRing(ci, cj, 5.0, 0.2, 5.0, 0.2)
	require.True(t, ring.FarOK)
	require.False(t, ring.ContainOK)
}
