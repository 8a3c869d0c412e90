package pdbio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/pdbio"
)

func TestReadChainsSplitsByChain(t *testing.T) {
	mol1, mol2, err := pdbio.ReadChains("../../testdata/test_dimer.pdb", "A", "B")
	require.NoError(t, err)
	require.Len(t, mol1, 9)
	require.Len(t, mol2, 9)

	first := mol1[0]
	require.Equal(t, "N", first.Atom)
	require.Equal(t, "ALA", first.Residue)
	require.Equal(t, "A", first.Chain)
	require.InDelta(t, 10.000, first.Coor.X, 1e-9)
	require.InDelta(t, 5.000, first.Coor.Y, 1e-9)
	require.InDelta(t, 0.000, first.Coor.Z, 1e-9)
}

func TestReadChainsUnknownChainIsEmpty(t *testing.T) {
	mol1, mol2, err := pdbio.ReadChains("../../testdata/test_dimer.pdb", "A", "Z")
	require.NoError(t, err)
	require.NotEmpty(t, mol1)
	require.Empty(t, mol2)
}

func TestReadChainsMissingFile(t *testing.T) {
	_, _, err := pdbio.ReadChains("../../testdata/does_not_exist.pdb", "A", "B")
	require.Error(t, err)
}

func TestParseAtomLineFiltersHydrogensAndAltLocs(t *testing.T) {
	mol1, _, err := pdbio.ReadChains("../../testdata/hydrogens_and_altloc.pdb", "A", "B")
	require.NoError(t, err)

	for _, rec := range mol1 {
		require.NotEqual(t, "H", rec.Atom)
		require.False(t, len(rec.Atom) > 0 && rec.Atom[0] == 'H')
	}
	// Only the altLoc 'A' copy of the duplicated CB should survive.
	count := 0
	for _, rec := range mol1 {
		if rec.Atom == "CB" {
			count++
		}
	}
	require.Equal(t, 1, count)
}
