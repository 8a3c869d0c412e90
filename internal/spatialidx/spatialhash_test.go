package spatialidx_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/geom"
	"github.com/asymmetrica/shapesc/internal/spatialidx"
)

func TestGridNeighborsFindsSameAndAdjacentCell(t *testing.T) {
	g := spatialidx.NewGrid(2.0)
	g.Insert(0, geom.New(0, 0, 0))
	g.Insert(1, geom.New(1.9, 0, 0))
	g.Insert(2, geom.New(100, 100, 100))

	hits := g.Neighbors(geom.New(0, 0, 0))
	indices := map[int]bool{}
	for _, e := range hits {
		indices[e.Index] = true
	}
	require.True(t, indices[0])
	require.True(t, indices[1])
	require.False(t, indices[2])
}

func TestGridNearestExactOverBruteForce(t *testing.T) {
	g := spatialidx.NewGrid(1.5)
	points := []geom.Vec3{
		geom.New(0, 0, 0),
		geom.New(5, 0, 0),
		geom.New(-3, 2, 1),
		geom.New(10, 10, 10),
		geom.New(0.2, 0.1, -0.1),
		geom.New(4.9, -0.3, 0.2),
	}
	for i, p := range points {
		g.Insert(i, p)
	}

	query := geom.New(4.8, 0, 0)
	best, ok := g.Nearest(query, nil)
	require.True(t, ok)

	bruteIdx := -1
	bruteDist := math.Inf(1)
	for i, p := range points {
		d := query.DistanceSquared(p)
		if d < bruteDist {
			bruteDist = d
			bruteIdx = i
		}
	}
	require.Equal(t, bruteIdx, best.Index)
}

func TestGridNearestRespectsAcceptPredicate(t *testing.T) {
	g := spatialidx.NewGrid(1.0)
	g.Insert(0, geom.New(0, 0, 0))
	g.Insert(1, geom.New(0.5, 0, 0))

	best, ok := g.Nearest(geom.New(0, 0, 0), func(e spatialidx.Entry) bool {
		return e.Index == 1
	})
	require.True(t, ok)
	require.Equal(t, 1, best.Index)
}

func TestGridNearestEmptyGrid(t *testing.T) {
	g := spatialidx.NewGrid(1.0)
	_, ok := g.Nearest(geom.New(0, 0, 0), nil)
	require.False(t, ok)
}
