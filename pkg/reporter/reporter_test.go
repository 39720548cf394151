package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesift/sitesift/internal/models"
)

func sampleResults() *models.ResultSet {
	rs := models.NewResultSet()
	rs.Set("https://showcase.example/sites/1",
		models.VisitResult{Link: "https://studio.example/work", Status: models.StatusFound})
	rs.Set("https://showcase.example/sites/2",
		models.VisitResult{Status: models.StatusNotFound})
	rs.Set("https://showcase.example/sites/3",
		models.VisitResult{Link: "https://www.studio.example", Status: models.StatusFound})
	rs.Set("https://showcase.example/sites/4",
		models.VisitResult{Status: models.StatusFetchFailed})
	rs.Set("https://showcase.example/sites/5",
		models.VisitResult{Link: "https://other.example", Status: models.StatusFound})
	return rs
}

func TestGenerateJSON(t *testing.T) {
	out, err := New().GenerateJSON(sampleResults())
	require.NoError(t, err)

	// Parses back to the expected mapping
	var decoded map[string]*string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 5)
	require.NotNil(t, decoded["https://showcase.example/sites/1"])
	assert.Equal(t, "https://studio.example/work", *decoded["https://showcase.example/sites/1"])
	assert.Nil(t, decoded["https://showcase.example/sites/2"])
	assert.Nil(t, decoded["https://showcase.example/sites/4"])

	// Human-readable indentation
	assert.Contains(t, out, "\n  \"")
}

func TestWriteJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, New().WriteJSON(sampleResults(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]*string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 5)
}

func TestDomainSummary(t *testing.T) {
	summary := New().DomainSummary(sampleResults())

	// studio.example appears twice (www and bare host collapse to one
	// registrable domain); misses and failures are excluded.
	require.Len(t, summary, 2)
	assert.Equal(t, DomainCount{Domain: "studio.example", Count: 2}, summary[0])
	assert.Equal(t, DomainCount{Domain: "other.example", Count: 1}, summary[1])
}

func TestDomainSummaryEmpty(t *testing.T) {
	assert.Empty(t, New().DomainSummary(models.NewResultSet()))
}
