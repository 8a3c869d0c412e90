package sc

// Lawrence & Colman (1993) constants the default Settings are built from.
const (
	// GaussianW is the Gaussian weight w applied to per-dot separation when
	// scoring, in Å⁻².
	GaussianW = 0.5
	// PeriphBand is the peripheral exclusion band, in Å.
	PeriphBand = 1.5
	// DotDensity is the target areal sampling density, in dots/Å².
	DotDensity = 15.0
)

// Settings are the tunable parameters of a surface calculation.
type Settings struct {
	// Rp is the probe sphere radius, in Å.
	Rp float64
	// DotDensity is the target dots/Å² used when sampling arcs and circles.
	DotDensity float64
	// PeripheralBand is the trim distance applied after the burial filter.
	PeripheralBand float64
	// SeparationCutoff is the attention-classification distance threshold.
	SeparationCutoff float64
	// GaussianW is the Gaussian weight used when scoring paired dots.
	GaussianW float64
	// UseAtomTypeRadius prefers a caller-supplied radius over a table
	// lookup when true.
	UseAtomTypeRadius bool
	// EnableParallel toggles data parallelism within phases.
	EnableParallel bool
}

// DefaultSettings returns the documented default configuration.
func DefaultSettings() Settings {
	return Settings{
		Rp:                1.7,
		DotDensity:        DotDensity,
		PeripheralBand:    PeriphBand,
		SeparationCutoff:  8.0,
		GaussianW:         GaussianW,
		UseAtomTypeRadius: false,
		EnableParallel:    true,
	}
}
