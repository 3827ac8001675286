package commands_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslens-dev/saleslens/internal/commands"
	"github.com/saleslens-dev/saleslens/internal/config"
	"github.com/saleslens-dev/saleslens/internal/runlog"
)

const salesData = `TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
T1|2024-01-01|P101|Hammer|2|25.00|C1|East
T2|2024-01-01|P102|Teddy|1|15.00|C2|West
T3|2024-01-02|P101|Hammer|1|25.00|C3|East
T4|bad-date|P101|Hammer|1|25.00|C4|East
`

func runSaleslens(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSalesData(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sales_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(salesData), 0o644))
	return path
}

func TestRun_NoFetch(t *testing.T) {
	dir := t.TempDir()
	input := writeSalesData(t, dir)
	outDir := filepath.Join(dir, "out")

	out, err := runSaleslens(t, "run",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--input", input,
		"--out-dir", outDir,
		"--no-fetch")
	require.NoError(t, err, "run failed: %s", out)

	assert.Contains(t, out, "3 accepted")
	assert.Contains(t, out, "1 rejected")

	enriched, err := os.ReadFile(filepath.Join(outDir, "enriched_sales_data.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(enriched)), "\n")
	require.Len(t, lines, 4, "header + 3 records")
	assert.True(t, strings.HasSuffix(lines[1], "||||false"), "unmatched record: %s", lines[1])

	reportData, err := os.ReadFile(filepath.Join(outDir, "sales_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(reportData), "Total Revenue: 90.00")
	assert.Contains(t, string(reportData), "catalog unavailable")

	entries, err := runlog.Read(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Read)
	assert.Equal(t, 3, entries[0].Accepted)
	assert.Equal(t, 0, entries[0].Matched)
}

func TestRun_WithCatalogAndRegionFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"id":101,"title":"Hammer","category":"Tools","brand":"Acme","rating":4.5}]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := writeSalesData(t, dir)
	outDir := filepath.Join(dir, "out")

	cfg := config.Default()
	cfg.Catalog.BaseURL = srv.URL
	cfgPath := filepath.Join(dir, "saleslens.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runSaleslens(t, "run",
		"--config", cfgPath,
		"--input", input,
		"--out-dir", outDir,
		"--region", "east")
	require.NoError(t, err, "run failed: %s", out)

	enriched, err := os.ReadFile(filepath.Join(outDir, "enriched_sales_data.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(enriched)), "\n")
	require.Len(t, lines, 3, "header + 2 East records")
	for _, line := range lines[1:] {
		assert.Contains(t, line, "|East|")
		assert.True(t, strings.HasSuffix(line, "|Tools|Acme|4.5|true"), "matched record: %s", line)
	}

	reportData, err := os.ReadFile(filepath.Join(outDir, "sales_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(reportData), "Total Revenue: 75.00")
	assert.NotContains(t, string(reportData), "West")
}

func TestRun_CatalogDownStillCompletes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := writeSalesData(t, dir)
	outDir := filepath.Join(dir, "out")

	cfg := config.Default()
	cfg.Catalog.BaseURL = srv.URL
	cfgPath := filepath.Join(dir, "saleslens.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runSaleslens(t, "run",
		"--config", cfgPath,
		"--input", input,
		"--out-dir", outDir)
	require.NoError(t, err, "run must complete despite catalog failure: %s", out)

	_, err = os.Stat(filepath.Join(outDir, "enriched_sales_data.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "sales_report.txt"))
	assert.NoError(t, err)
}

func TestRun_XLSXExport(t *testing.T) {
	dir := t.TempDir()
	input := writeSalesData(t, dir)
	outDir := filepath.Join(dir, "out")

	out, err := runSaleslens(t, "run",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--input", input,
		"--out-dir", outDir,
		"--no-fetch",
		"--xlsx")
	require.NoError(t, err, "run failed: %s", out)

	_, err = os.Stat(filepath.Join(outDir, "sales_report.xlsx"))
	assert.NoError(t, err)
}

func TestRun_InvalidAmountRange(t *testing.T) {
	dir := t.TempDir()
	input := writeSalesData(t, dir)

	_, err := runSaleslens(t, "run",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--input", input,
		"--out-dir", filepath.Join(dir, "out"),
		"--no-fetch",
		"--min-amount", "100",
		"--max-amount", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount range")
}

func TestRun_MissingInputFile(t *testing.T) {
	dir := t.TempDir()

	_, err := runSaleslens(t, "run",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--input", filepath.Join(dir, "nope.txt"),
		"--out-dir", filepath.Join(dir, "out"),
		"--no-fetch")
	require.Error(t, err)
}
