package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_WritesReports(t *testing.T) {
	// GIVEN a two-day run asking for every output file
	dir := t.TempDir()
	textPath := filepath.Join(dir, "report.txt")
	csvPath := filepath.Join(dir, "report.csv")
	jsonPath := filepath.Join(dir, "result.json")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"run", "--days", "2", "--trace", "decisions", "--log", "error",
		"--report-text", textPath, "--report-csv", csvPath, "--output-json", jsonPath,
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		reportText, reportCSV, reportPDF, outputJSON = "", "", "", ""
	})

	// WHEN the run command executes
	require.NoError(t, rootCmd.Execute())

	// THEN the text report goes to stdout followed by the trace summary
	assert.Contains(t, stdout.String(), "OPERATIONS SUMMARY")
	assert.Contains(t, stdout.String(), "Trace: ")

	// AND the text file matches what was printed
	text, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), string(text))

	// AND the CSV file starts with the header row
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Concept", "Value"}, records[0])

	// AND the JSON result carries both days
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var res struct {
		Days []json.RawMessage `json:"days"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Len(t, res.Days, 2)
}
