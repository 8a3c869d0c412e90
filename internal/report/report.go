// Package report formats a completed Sc calculation for the CLI, either as
// the fixed six-line human summary or as a stable JSON object.
package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the CLI-facing summary of one Calc run.
type Report struct {
	Version        string  `json:"version"`
	Sc             float64 `json:"sc"`
	MedianDistance float64 `json:"median_distance"`
	TrimmedArea    float64 `json:"trimmed_area"`
	AtomsMol1      int     `json:"atoms_mol1"`
	AtomsMol2      int     `json:"atoms_mol2"`
	ElapsedMs      int64   `json:"elapsed_ms"`
}

// WriteJSON encodes r as an indented JSON object.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes r as the fixed six-line human-readable summary: a
// version banner followed by the five lines spec.md §6 fixes verbatim.
func (r Report) WriteText(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("shapesc %s", r.Version),
		fmt.Sprintf("SC: %.3f", r.Sc),
		fmt.Sprintf("Median distance: %.3f", r.MedianDistance),
		fmt.Sprintf("Trimmed area: %.3f", r.TrimmedArea),
		fmt.Sprintf("Atoms: %d + %d", r.AtomsMol1, r.AtomsMol2),
		fmt.Sprintf("Elapsed: %d ms", r.ElapsedMs),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
