package report

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/saleslens-dev/saleslens/internal/analytics"
)

func sampleSummaryEmpty() analytics.Summary {
	return analytics.Summary{TotalRevenue: decimal.Zero}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportXLSX(path, sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Regions", "Top Products", "Top Customers", "Daily", "Low Performers"},
		f.GetSheetList())

	region, err := f.GetCellValue("Regions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "East", region)

	product, err := f.GetCellValue("Top Products", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product)
}

func TestExportXLSX_EmptySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportXLSX(path, sampleSummaryEmpty()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Daily", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)
}
