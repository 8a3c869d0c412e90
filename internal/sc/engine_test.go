package sc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/geom"
	"github.com/asymmetrica/shapesc/internal/logging"
	"github.com/asymmetrica/shapesc/internal/sc"
)

func newTestResolver() *sc.Engine {
	return sc.NewEngine(sc.DefaultSettings(), nil, logging.NewNopLogger())
}

func TestCalcWithNoAtomsReturnsNoAtoms(t *testing.T) {
	e := newTestResolver()
	err := e.Calc()
	require.Error(t, err)

	var scErr *sc.Error
	require.ErrorAs(t, err, &scErr)
	require.Equal(t, sc.KindNoAtoms, scErr.Kind)
}

func TestAddAtomMissingRadiusIsRejected(t *testing.T) {
	e := newTestResolver()
	err := e.AddAtom(0, geom.New(0, 0, 0), "ZZ1", "XYZ", 0)
	require.Error(t, err)

	var scErr *sc.Error
	require.True(t, errors.Is(err, &sc.Error{Kind: sc.KindMissingRadius}))
	require.ErrorAs(t, err, &scErr)
}

func TestAddAtomResolvesKnownRadius(t *testing.T) {
	e := newTestResolver()
	err := e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0)
	require.NoError(t, err)
}

func TestTwoFarApartAtomsYieldZeroScore(t *testing.T) {
	e := newTestResolver()
	require.NoError(t, e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0))
	require.NoError(t, e.AddAtom(1, geom.New(100, 0, 0), "CA", "ALA", 0))

	require.NoError(t, e.Calc())
	results := e.Results()
	require.True(t, results.Valid)
	require.Zero(t, results.Sc)
	require.Zero(t, results.Combined.NTrimmedDots)
}

// twoOpposingSpheres builds a minimal two-molecule interface: a single atom
// on each side, close enough to bury part of each other's surface.
func twoOpposingSpheres(t *testing.T) *sc.Engine {
	t.Helper()
	e := newTestResolver()
	require.NoError(t, e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0))
	require.NoError(t, e.AddAtom(1, geom.New(3.2, 0, 0), "CA", "ALA", 0))
	return e
}

func TestTwoOpposingSpheresProduceBuriedContactDots(t *testing.T) {
	e := twoOpposingSpheres(t)
	require.NoError(t, e.Calc())

	results := e.Results()
	require.True(t, results.Valid)
	require.NotZero(t, results.Combined.NTrimmedDots, "a close single-atom interface should leave trimmed dots on both sides")
	require.GreaterOrEqual(t, results.Sc, -1.0)
	require.LessOrEqual(t, results.Sc, 1.0)
}

// TestTrimmedDotsHaveAnOppositeBuriedDotWithinPeripheralBand checks §8's
// trimming law directly: every dot retained after peripheral trim must have
// a buried dot of the OTHER molecule within peripheral_band, since that
// proximity is exactly what trimPeripheral is supposed to require.
func TestTrimmedDotsHaveAnOppositeBuriedDotWithinPeripheralBand(t *testing.T) {
	e := twoOpposingSpheres(t)
	require.NoError(t, e.Calc())

	settings := sc.DefaultSettings()
	band := settings.PeripheralBand

	for m := 0; m < 2; m++ {
		other := 1 - m
		var buriedOpposite []sc.Dot
		for _, d := range e.Dots(other) {
			if d.Buried {
				buriedOpposite = append(buriedOpposite, d)
			}
		}

		trimmed := e.TrimmedDots(m)
		require.NotEmpty(t, trimmed, "molecule %d should retain trimmed dots", m)

		for _, d := range trimmed {
			best := math.Inf(1)
			for _, q := range buriedOpposite {
				if dist := d.Pcen.Distance(q.Pcen); dist < best {
					best = dist
				}
			}
			require.LessOrEqual(t, best, band,
				"trimmed dot on molecule %d at %v has no opposite buried dot within peripheral_band", m, d.Pcen)
		}
	}
}

func TestSerialAndParallelProduceIdenticalResults(t *testing.T) {
	build := func(parallel bool) sc.Results {
		settings := sc.DefaultSettings()
		settings.EnableParallel = parallel
		e := sc.NewEngine(settings, nil, logging.NewNopLogger())
		require.NoError(t, e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0))
		require.NoError(t, e.AddAtom(0, geom.New(1.5, 0, 0), "CB", "ALA", 0))
		require.NoError(t, e.AddAtom(1, geom.New(3.3, 0.2, 0), "CA", "VAL", 0))
		require.NoError(t, e.AddAtom(1, geom.New(4.6, 0.4, 0), "CB", "VAL", 0))
		require.NoError(t, e.Calc())
		return e.Results()
	}

	serial := build(false)
	parallel := build(true)

	require.InDelta(t, serial.Sc, parallel.Sc, 1e-9)
	require.Equal(t, serial.Combined.NTrimmedDots, parallel.Combined.NTrimmedDots)
	require.Equal(t, serial.Dots, parallel.Dots)
}

func TestResetReturnsEngineToEmptyState(t *testing.T) {
	e := newTestResolver()
	require.NoError(t, e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0))
	require.NoError(t, e.AddAtom(1, geom.New(3.2, 0, 0), "CA", "ALA", 0))
	require.NoError(t, e.Calc())
	require.True(t, e.Results().Valid)

	e.Reset()
	err := e.Calc()
	require.Error(t, err)
	var scErr *sc.Error
	require.ErrorAs(t, err, &scErr)
	require.Equal(t, sc.KindNoAtoms, scErr.Kind)
}

func TestAtomTypeRadiusModeRejectsNonPositiveRadius(t *testing.T) {
	settings := sc.DefaultSettings()
	settings.UseAtomTypeRadius = true
	e := sc.NewEngine(settings, nil, logging.NewNopLogger())

	err := e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 0)
	require.Error(t, err)

	require.NoError(t, e.AddAtom(0, geom.New(0, 0, 0), "CA", "ALA", 1.7))
}
