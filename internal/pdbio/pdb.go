// Package pdbio reads PDB coordinate files and hands the engine two flat
// atom lists, one per chain of interest.
//
// BIOCHEMIST: Only standard ATOM records are trusted; ligands, ions, waters
// and hydrogens are dropped since the Sc surface is built from heavy-atom
// van der Waals spheres.
package pdbio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/asymmetrica/shapesc/internal/geom"
)

// Record is one heavy atom read from a PDB file: its coordinate, atom name,
// residue name and chain identifier. It is the tuple the engine's AddAtom
// contract is built on.
type Record struct {
	Coor    geom.Vec3
	Atom    string
	Residue string
	Chain   string
}

// ReadChains scans path for ATOM records and splits them into the two named
// chains. Records for any other chain are ignored. HETATM records, hydrogens,
// and alternate locations other than ' ' and 'A' are skipped, mirroring the
// filtering a Connolly surface program applies before building spheres.
func ReadChains(path, chain1, chain2 string) (mol1, mol2 []Record, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pdbio: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		rec, ok := parseAtomLine(line)
		if !ok {
			continue
		}
		switch rec.Chain {
		case chain1:
			mol1 = append(mol1, rec)
		case chain2:
			mol2 = append(mol2, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("pdbio: read %s: %w", path, err)
	}
	return mol1, mol2, nil
}

// parseAtomLine decodes a single fixed-column ATOM line, applying the
// heavy-atom / primary-conformer filter. It returns ok=false for lines that
// are malformed or filtered out, never an error: a skippable line is not a
// parse failure.
//
// Columns (1-indexed, inclusive): name 13-16, altLoc 17, resName 18-20,
// chainID 22, x 31-38, y 39-46, z 47-54, element 77-78.
func parseAtomLine(line string) (Record, bool) {
	if len(line) < 54 {
		return Record{}, false
	}

	altLoc := byte(' ')
	if len(line) >= 17 {
		altLoc = line[16]
	}
	if altLoc != ' ' && altLoc != 'A' {
		return Record{}, false
	}

	atomName := strings.TrimSpace(line[12:16])
	element := ""
	if len(line) >= 78 {
		element = strings.TrimSpace(line[76:78])
	}
	if isHydrogen(atomName, element) {
		return Record{}, false
	}

	resName := "UNK"
	if len(line) >= 20 {
		resName = strings.TrimSpace(line[17:20])
	}
	chainID := " "
	if len(line) >= 22 {
		chainID = strings.TrimSpace(line[21:22])
	}

	x, errX := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if errX != nil || errY != nil || errZ != nil {
		return Record{}, false
	}

	return Record{
		Coor:    geom.New(x, y, z),
		Atom:    atomName,
		Residue: resName,
		Chain:   chainID,
	}, true
}

// isHydrogen reports whether an atom is a hydrogen by element symbol or by
// the PDB atom-name convention (a leading H, or a digit followed by H as in
// 1HB2).
func isHydrogen(atomName, element string) bool {
	if strings.EqualFold(element, "H") {
		return true
	}
	if strings.HasPrefix(atomName, "H") {
		return true
	}
	for i, r := range atomName {
		if r == 'H' && i > 0 && atomName[i-1] >= '0' && atomName[i-1] <= '9' {
			return true
		}
	}
	return false
}
