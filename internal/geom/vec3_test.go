package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/geom"
)

func TestVec3Arithmetic(t *testing.T) {
	a := geom.New(1, 2, 3)
	b := geom.New(4, -1, 0.5)

	require.Equal(t, geom.New(5, 1, 3.5), a.Add(b))
	require.Equal(t, geom.New(-3, 3, 2.5), a.Sub(b))
	require.Equal(t, geom.New(2, 4, 6), a.Scale(2))
	require.InDelta(t, 1*4+2*-1+3*0.5, a.Dot(b), 1e-12)
}

func TestVec3Cross(t *testing.T) {
	x := geom.New(1, 0, 0)
	y := geom.New(0, 1, 0)
	require.Equal(t, geom.New(0, 0, 1), x.Cross(y))
	require.Equal(t, geom.New(0, 0, -1), y.Cross(x))
}

func TestVec3Normalize(t *testing.T) {
	v := geom.New(3, 0, 4)
	n := v.Normalize()
	require.InDelta(t, 1.0, n.Magnitude(), 1e-12)
	require.InDelta(t, 0.6, n.X, 1e-12)
	require.InDelta(t, 0.8, n.Z, 1e-12)

	require.Equal(t, geom.Zero, geom.Zero.Normalize())
}

func TestVec3Distance(t *testing.T) {
	a := geom.New(0, 0, 0)
	b := geom.New(3, 4, 0)
	require.InDelta(t, 25.0, a.DistanceSquared(b), 1e-12)
	require.InDelta(t, 5.0, a.Distance(b), 1e-12)
}
