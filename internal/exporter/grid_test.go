package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrumloader/internal/dataprocessing"
	"spectrumloader/internal/shared/testutil"
	"spectrumloader/pkg/contracts/domain"
)

func steelGrid(t *testing.T, id domain.TableID) *Grid {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	parser := dataprocessing.NewParser(testutil.SteelScenario(), dataprocessing.Options{Logger: logger})
	table, err := parser.Get(id)
	require.NoError(t, err)
	grid, err := ToGrid(table)
	require.NoError(t, err)
	return grid
}

func TestToGrid_Line(t *testing.T) {
	g := steelGrid(t, domain.TableLine)

	assert.Equal(t, "line", g.Name())
	assert.Equal(t, []string{
		"id", "symbol", "wavelength", "nickname",
		"database_intensity", "database_ionization_degree", "is_active",
	}, g.Header)
	require.Len(t, g.Rows, 4)
	assert.Equal(t, []Cell{10, "Fe", 259.94, "Fe 259.94", 1200.0, 2, false}, g.Rows[0])
	assert.Equal(t, []Cell{13, "Cr", 267.72, "Cr 267.72", nil, nil, false}, g.Rows[3])
}

func TestToGrid_Frames(t *testing.T) {
	intensity := steelGrid(t, domain.TableIntensity)
	assert.Equal(t, []string{"probe_name", "parallel_name", "10", "11", "12", "13"}, intensity.Header)
	assert.Equal(t, [][]Cell{
		{"S1", "1", 5000.0, 320.0, 4100.0, nil},
		{"S1", "2", 5100.0, 310.0, nil, nil},
		{"S2", "1", nil, 330.0, 4200.0, 80.0},
	}, intensity.Rows)

	active := steelGrid(t, domain.TableActive)
	assert.Equal(t, []Cell{"S1", "2", false, true, nil, nil}, active.Rows[1])
}

func TestToGrid_Concentration(t *testing.T) {
	g := steelGrid(t, domain.TableConcentration)

	assert.Equal(t, []string{"probe_name", "Fe", "Mn", "Cr"}, g.Header)
	assert.Equal(t, [][]Cell{
		{"S1", 97.1, 0.8, nil},
		{"S2", nil, 1.2, 0.3},
	}, g.Rows)
}

func TestToGrid_SmallTables(t *testing.T) {
	tests := []struct {
		id     domain.TableID
		header []string
		rows   [][]Cell
	}{
		{domain.TableFilename, []string{"filename"}, [][]Cell{{"steel_run"}}},
		{domain.TableFilepath, []string{"filepath"}, [][]Cell{{"/data/steel_run.pkl"}}},
		{domain.TableIndex, []string{"probe_name", "parallel_name"}, [][]Cell{{"S1", "1"}, {"S1", "2"}, {"S2", "1"}}},
		{domain.TableSkipped, []string{"position", "probe_name", "reason"}, [][]Cell{{1, "Blank", "no parallel measurements"}}},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			g := steelGrid(t, tt.id)
			assert.Equal(t, tt.id, g.Table)
			assert.Equal(t, tt.header, g.Header)
			assert.Equal(t, tt.rows, g.Rows)
		})
	}
}

func TestToGrid_Unsupported(t *testing.T) {
	_, err := ToGrid(nil)
	assert.Error(t, err)
}
