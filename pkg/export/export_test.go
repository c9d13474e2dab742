package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	exporter := NewCSVExporter()

	data, err := exporter.Render(Table{
		Headers: []string{"Name", "Risk"},
		Rows: [][]string{
			{"Aisha Kumar", "HIGH"},
			{"Arjun Mehta"},
		},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Risk"}, records[0])
	assert.Equal(t, []string{"Aisha Kumar", "HIGH"}, records[1])
	assert.Equal(t, []string{"Arjun Mehta", ""}, records[2], "short rows are padded to the header width")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	exporter := NewPDFExporter()

	data, err := exporter.Render(Table{
		Headers: []string{"Name", "Risk"},
		Rows:    [][]string{{"Aisha Kumar", "HIGH"}},
	}, "Student Risk Roster")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
