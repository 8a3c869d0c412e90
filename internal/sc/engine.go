package sc

import (
	"math"

	"github.com/asymmetrica/shapesc/internal/geom"
	"github.com/asymmetrica/shapesc/internal/logging"
	"github.com/asymmetrica/shapesc/internal/radii"
)

// state is the Engine's lifecycle: Empty -> (AddAtom)* -> Loaded -> (Calc)
// -> Computed -> (Reset) -> Empty.
type state int

const (
	stateEmpty state = iota
	stateLoaded
	stateComputed
)

// Engine computes the Connolly solvent-excluded surface and Lawrence &
// Colman shape-complementarity statistic for two atom sets.
//
// BIOCHEMIST: One Engine corresponds to one pairwise interface calculation;
// reuse it across calculations by calling Reset rather than building a new
// one, so the radius table only loads once.
type Engine struct {
	settings Settings
	radii    *radii.Resolver
	log      logging.Logger

	state state
	atoms []Atom

	probes      []Probe
	dots        [2][]Dot
	trimmedDots [2][]Dot
	radmax      float64

	results Results
}

// NewEngine builds an Engine with the given Settings. If resolver is nil,
// radii.NewDefaultResolver (the embedded table unless an environment
// override names another file) is loaded on first use. If log is nil,
// logging.Default() is used.
func NewEngine(settings Settings, resolver *radii.Resolver, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Default()
	}
	return &Engine{
		settings: settings,
		radii:    resolver,
		log:      log.Named("sc"),
		state:    stateEmpty,
	}
}

// AddAtom loads one atom of the given molecule (0 or 1). atomTypeRadius is
// only consulted when Settings.UseAtomTypeRadius is set; pass 0 otherwise.
// A radius that cannot be resolved either way is a MissingRadius error and
// the atom is not added.
func (e *Engine) AddAtom(molecule int, coor geom.Vec3, atomName, residue string, atomTypeRadius float64) error {
	radius, err := e.assignRadius(atomName, residue, atomTypeRadius)
	if err != nil {
		return err
	}

	a := Atom{
		Natom:          len(e.atoms) + 1,
		Molecule:       molecule,
		Radius:         radius,
		AtomTypeRadius: atomTypeRadius,
		Density:        e.settings.DotDensity,
		Attention:      AttentionBuried,
		AtomName:       atomName,
		Residue:        residue,
		Coor:           coor,
	}
	e.atoms = append(e.atoms, a)
	e.state = stateLoaded
	return nil
}

func (e *Engine) assignRadius(atomName, residue string, atomTypeRadius float64) (float64, error) {
	if e.settings.UseAtomTypeRadius {
		if atomTypeRadius > 0 {
			return atomTypeRadius, nil
		}
		return 0, errMissingRadius(residue, atomName)
	}

	if e.radii == nil {
		r, err := radii.NewDefaultResolver()
		if err != nil {
			return 0, errIO("loading default radius table", err)
		}
		e.radii = r
	}

	if r, ok := e.radii.Resolve(residue, atomName); ok {
		return r, nil
	}
	return 0, errMissingRadius(residue, atomName)
}

// Reset clears every loaded atom and computed result, returning the Engine
// to the Empty state.
func (e *Engine) Reset() {
	e.atoms = nil
	e.probes = nil
	e.dots = [2][]Dot{}
	e.trimmedDots = [2][]Dot{}
	e.radmax = 0
	e.results = Results{}
	e.state = stateEmpty
}

// Results returns the most recently computed Results. Its Valid field is
// false until Calc has completed successfully at least once since the last
// Reset.
func (e *Engine) Results() Results { return e.results }

// Dots returns the full (untrimmed) dot set for the given molecule (0 or 1)
// from the most recent Calc.
func (e *Engine) Dots(molecule int) []Dot { return e.dots[molecule] }

// TrimmedDots returns the dots of the given molecule (0 or 1) that survived
// §4.7's peripheral trim and therefore fed the Sc score, from the most
// recent Calc.
func (e *Engine) TrimmedDots(molecule int) []Dot { return e.trimmedDots[molecule] }

// Calc runs the full surface-generation and scoring pipeline over every
// atom loaded so far. It is safe to call once the Engine holds at least one
// atom in each molecule; an empty atom set is a NoAtoms error.
func (e *Engine) Calc() error {
	if len(e.atoms) == 0 {
		return errNoAtoms()
	}

	e.assignAttentionNumbers()
	e.computeRadmax()

	if err := e.computeNeighborsAll(); err != nil {
		return err
	}

	if err := e.runProbePhase(); err != nil {
		return err
	}

	if err := e.runContactPhase(); err != nil {
		return err
	}

	if e.settings.Rp > 0 {
		if err := e.runConcavePhase(); err != nil {
			return err
		}
	}

	results, trimmed := trimAndScore(e.dots, e.settings)
	e.trimmedDots = trimmed
	results.NAtoms = len(e.atoms)
	results.Surfaces[0].NAtoms = countMolecule(e.atoms, 0)
	results.Surfaces[1].NAtoms = countMolecule(e.atoms, 1)
	results.Surfaces[0].NBuriedAtoms = countAttention(e.atoms, 0, AttentionBuried)
	results.Surfaces[1].NBuriedAtoms = countAttention(e.atoms, 1, AttentionBuried)
	results.Surfaces[0].NBlockedAtoms = countAttention(e.atoms, 0, AttentionFar)
	results.Surfaces[1].NBlockedAtoms = countAttention(e.atoms, 1, AttentionFar)
	e.results = results
	e.state = stateComputed

	e.log.Info("calc complete",
		logging.Float64("sc", results.Sc),
		logging.Int("n_atoms", results.NAtoms),
		logging.Int("n_dots", results.Combined.NTrimmedDots),
	)
	return nil
}

// assignAttentionNumbers classifies every atom Far or Buried (see
// Attention's doc comment for why Consider is never produced here) by an
// O(n^2) scan against the opposite molecule's atoms, per §4.1.
func (e *Engine) assignAttentionNumbers() {
	sep2 := e.settings.SeparationCutoff * e.settings.SeparationCutoff
	for i := range e.atoms {
		a := e.atoms[i]
		minDist2 := math.Inf(1)
		for _, b := range e.atoms {
			if b.Molecule == a.Molecule {
				continue
			}
			if d2 := a.DistanceSquared(b); d2 < minDist2 {
				minDist2 = d2
			}
		}
		if minDist2 >= sep2 {
			e.atoms[i].Attention = AttentionFar
		} else {
			e.atoms[i].Attention = AttentionBuried
		}
	}
}

func (e *Engine) computeRadmax() {
	var radmax float64
	for _, a := range e.atoms {
		if a.Radius > radmax {
			radmax = a.Radius
		}
	}
	e.radmax = radmax
}

// runProbePhase is the serial probe-placement-and-toroidal-emission pass;
// see probePhaseResult's doc comment for why it is not split across
// workers.
func (e *Engine) runProbePhase() error {
	for i := range e.atoms {
		result, accessible, err := buildProbesForAtom(e.atoms, i, e.settings)
		if err != nil {
			return err
		}
		e.probes = append(e.probes, result.probes...)
		for _, m := range accessible {
			e.atoms[m].Accessible = true
		}
		for _, d := range result.dots {
			owner := e.atoms[d.AtomIndex].Molecule
			e.dots[owner] = append(e.dots[owner], d)
		}
	}
	return nil
}

func (e *Engine) runContactPhase() error {
	results, err := forEachIndex(e.settings.EnableParallel, len(e.atoms), func(i int) ([]Dot, error) {
		return contactDotsForAtom(e.atoms, i, e.settings)
	})
	if err != nil {
		return err
	}
	for i, dots := range results {
		e.dots[e.atoms[i].Molecule] = append(e.dots[e.atoms[i].Molecule], dots...)
	}
	return nil
}

func (e *Engine) runConcavePhase() error {
	var lowProbes []int
	for i, p := range e.probes {
		if p.Height < e.settings.Rp {
			lowProbes = append(lowProbes, i)
		}
	}

	results, err := forEachIndex(e.settings.EnableParallel, len(e.probes), func(i int) ([]Dot, error) {
		return concaveDotsForProbe(e.atoms, e.probes, i, lowProbes, e.settings)
	})
	if err != nil {
		return err
	}
	for _, dots := range results {
		for _, d := range dots {
			owner := e.atoms[d.AtomIndex].Molecule
			e.dots[owner] = append(e.dots[owner], d)
		}
	}
	return nil
}

func countMolecule(atoms []Atom, molecule int) int {
	n := 0
	for _, a := range atoms {
		if a.Molecule == molecule {
			n++
		}
	}
	return n
}

func countAttention(atoms []Atom, molecule int, att Attention) int {
	n := 0
	for _, a := range atoms {
		if a.Molecule == molecule && a.Attention == att {
			n++
		}
	}
	return n
}
