package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asymmetrica/shapesc/internal/report"
)

func TestWriteJSONUsesDocumentedFieldNames(t *testing.T) {
	r := report.Report{
		Version:        "1.0.0",
		Sc:             0.72,
		MedianDistance: 1.1,
		TrimmedArea:    123.4,
		AtomsMol1:      10,
		AtomsMol2:      12,
		ElapsedMs:      42,
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	for _, key := range []string{"version", "sc", "median_distance", "trimmed_area", "atoms_mol1", "atoms_mol2", "elapsed_ms"} {
		require.Contains(t, decoded, key)
	}
}

func TestWriteTextProducesSixLines(t *testing.T) {
	r := report.Report{Version: "1.0.0", Sc: 0.5, MedianDistance: 1.0, TrimmedArea: 50, AtomsMol1: 5, AtomsMol2: 6, ElapsedMs: 7}

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 6)
}
