package sc

import (
	"math"
	"sort"

	"github.com/asymmetrica/shapesc/internal/spatialidx"
)

// trimAndScore implements §4.7 steps 2-4: trim each molecule's buried dots
// down to its interface patch, pair each trimmed dot with the nearest
// trimmed dot of the opposite molecule, and aggregate the per-side medians
// into the combined Sc statistic.
//
// The per-side median is taken independently for each molecule and only
// then averaged; a single median over the pooled set would let a
// numerically larger molecule's dot count dominate the statistic, which is
// not how Lawrence & Colman define Sc.
func trimAndScore(allDots [2][]Dot, settings Settings) (Results, [2][]Dot) {
	var buried [2][]Dot
	for m := 0; m < 2; m++ {
		for _, d := range allDots[m] {
			if d.Buried {
				buried[m] = append(buried[m], d)
			}
		}
	}

	var trimmed [2][]Dot
	for m := 0; m < 2; m++ {
		other := otherMolecule(m)
		trimmed[m] = trimPeripheral(buried[m], buried[other], settings.PeripheralBand)
	}

	var results Results
	results.Valid = true
	results.Dots = countDotKinds(allDots)

	var sideMedianS, sideMedianD [2]float64
	var combinedTrimmedArea float64

	for m := 0; m < 2; m++ {
		other := otherMolecule(m)
		ss, ds, trimmedArea := scoreSide(trimmed[m], trimmed[other], settings.GaussianW)
		sideMedianS[m] = median(ss)
		sideMedianD[m] = median(ds)
		combinedTrimmedArea += trimmedArea

		results.Surfaces[m] = SurfaceStats{
			NAllDots:     len(allDots[m]),
			NTrimmedDots: len(trimmed[m]),
			TrimmedArea:  trimmedArea,
			SMedian:      sideMedianS[m],
			SMean:        mean(ss),
			DMedian:      sideMedianD[m],
			DMean:        mean(ds),
		}
	}

	results.Sc = (sideMedianS[0] + sideMedianS[1]) / 2
	results.Distance = (sideMedianD[0] + sideMedianD[1]) / 2
	results.Area = combinedTrimmedArea
	results.Combined = SurfaceStats{
		NAllDots:     len(allDots[0]) + len(allDots[1]),
		NTrimmedDots: len(trimmed[0]) + len(trimmed[1]),
		TrimmedArea:  combinedTrimmedArea,
		SMedian:      results.Sc,
		DMedian:      results.Distance,
	}

	return results, trimmed
}

// trimPeripheral keeps a buried dot only if it has a buried dot of the
// OPPOSITE molecule within peripheralBand, per §4.7 step 2: the interface
// patch is whatever is close enough to the other side's buried surface to
// matter, not merely "buried" in isolation. A side with no buried dots of
// its own, or facing an opposite side with none, trims to nothing.
func trimPeripheral(buriedSide, buriedOpposite []Dot, peripheralBand float64) []Dot {
	if len(buriedSide) == 0 || len(buriedOpposite) == 0 {
		return nil
	}

	grid := spatialidx.NewGrid(math.Max(peripheralBand, 1.0))
	for i, d := range buriedOpposite {
		grid.Insert(i, d.Pcen)
	}

	var out []Dot
	for _, d := range buriedSide {
		nearest, ok := grid.Nearest(d.Pcen, nil)
		if ok && d.Pcen.Distance(buriedOpposite[nearest.Index].Pcen) <= peripheralBand {
			out = append(out, d)
		}
	}
	return out
}

// scoreSide pairs every dot in side with its nearest dot in opposite (an
// exact search via spatialidx.Grid.Nearest) and returns the per-pair
// shape-correlation and distance values, plus the total trimmed area of
// side.
func scoreSide(side, opposite []Dot, gaussianW float64) (sValues, dValues []float64, trimmedArea float64) {
	if len(opposite) == 0 {
		return nil, nil, sumArea(side)
	}

	grid := spatialidx.NewGrid(4.0)
	for i, d := range opposite {
		grid.Insert(i, d.Pcen)
	}

	sValues = make([]float64, 0, len(side))
	dValues = make([]float64, 0, len(side))
	for _, d := range side {
		trimmedArea += d.Area
		entry, ok := grid.Nearest(d.Pcen, nil)
		if !ok {
			continue
		}
		q := opposite[entry.Index]
		dist := d.Pcen.Distance(q.Pcen)
		s := d.OutNml.Dot(q.OutNml.Scale(-1)) * math.Exp(-gaussianW*dist*dist)
		sValues = append(sValues, s)
		dValues = append(dValues, dist)
	}
	return sValues, dValues, trimmedArea
}

func sumArea(dots []Dot) float64 {
	var total float64
	for _, d := range dots {
		total += d.Area
	}
	return total
}

func countDotKinds(allDots [2][]Dot) DotStats {
	var stats DotStats
	for _, side := range allDots {
		for _, d := range side {
			switch d.Kind {
			case DotContact:
				stats.Convex++
			case DotReentrant:
				stats.Toroidal++
			case DotCavity:
				stats.Concave++
			}
		}
	}
	return stats
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
