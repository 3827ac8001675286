package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/saleslens-dev/saleslens/internal/analytics"
	"github.com/saleslens-dev/saleslens/internal/catalog"
	"github.com/saleslens-dev/saleslens/internal/config"
	"github.com/saleslens-dev/saleslens/internal/filter"
	"github.com/saleslens-dev/saleslens/internal/logger"
	"github.com/saleslens-dev/saleslens/internal/pipeline"
	"github.com/saleslens-dev/saleslens/internal/report"
	"github.com/saleslens-dev/saleslens/internal/runlog"
	"github.com/saleslens-dev/saleslens/internal/salesfile"
)

const (
	enrichedFileName = "enriched_sales_data.txt"
	reportFileName   = "sales_report.txt"
	workbookFileName = "sales_report.xlsx"
)

type runOptions struct {
	configPath string
	input      string
	outDir     string
	region     string
	minAmount  string
	maxAmount  string
	topN       int
	noFetch    bool
	xlsx       bool
	verbose    bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analytics and enrichment pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "saleslens.yaml", "path to saleslens.yaml")
	cmd.Flags().StringVar(&opts.input, "input", "", "sales data file (overrides config)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "output directory (overrides config)")
	cmd.Flags().StringVar(&opts.region, "region", "", "keep only this region (case-insensitive)")
	cmd.Flags().StringVar(&opts.minAmount, "min-amount", "", "minimum transaction amount, inclusive")
	cmd.Flags().StringVar(&opts.maxAmount, "max-amount", "", "maximum transaction amount, inclusive")
	cmd.Flags().IntVar(&opts.topN, "top", 0, "top-N list length (overrides config)")
	cmd.Flags().BoolVar(&opts.noFetch, "no-fetch", false, "skip the catalog fetch")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also export an XLSX workbook")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log per-record rejections")

	return cmd
}

func runPipeline(cmd *cobra.Command, opts runOptions) error {
	log := logger.New()
	if opts.verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	input := cfg.Input.Path
	if opts.input != "" {
		input = opts.input
	}
	outDir := cfg.Output.Dir
	if opts.outDir != "" {
		outDir = opts.outDir
	}

	criteria, err := buildCriteria(opts)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening sales data: %w", err)
	}
	lines, err := salesfile.ReadLines(f)
	f.Close()
	if err != nil {
		return err
	}

	var fetcher pipeline.CatalogFetcher
	if !opts.noFetch {
		httpClient := &http.Client{Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second}
		fetcher = catalog.NewClient(httpClient, cfg.Catalog.BaseURL)
	}

	analyticsOpts := analytics.Options{
		TopN:       cfg.Analytics.TopN,
		LowRevenue: decimal.NewFromFloat(cfg.Analytics.LowRevenue),
	}
	if opts.topN > 0 {
		analyticsOpts.TopN = opts.topN
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Params{
		Lines:     lines,
		Criteria:  criteria,
		Analytics: analyticsOpts,
		Fetcher:   fetcher,
		Log:       log,
	})
	if err != nil {
		return err
	}

	if err := writeOutputs(outDir, res, opts.xlsx); err != nil {
		return err
	}

	entry := runlog.Entry{
		Timestamp: time.Now().UTC(),
		RunID:     runlog.NewRunID(),
		InputFile: filepath.Base(input),
		Read:      len(lines),
		Accepted:  len(res.Accepted),
		Rejected:  len(res.Rejected),
		Filtered:  len(res.Filtered),
		Matched:   res.Enrichment.Matched,
	}
	if err := runlog.Append(outDir, []runlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Run %s complete: %d read, %d accepted, %d rejected, %d after filters, %d enriched (%d matched)\n",
		entry.RunID, entry.Read, entry.Accepted, entry.Rejected, entry.Filtered,
		res.Enrichment.Attempted, res.Enrichment.Matched)
	fmt.Fprintf(cmd.OutOrStdout(), "Outputs written to %s\n", outDir)
	return nil
}

// loadConfig falls back to defaults when the config file is absent; flags
// can still override every default that matters for a run.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func buildCriteria(opts runOptions) (filter.Criteria, error) {
	c := filter.Criteria{Region: opts.region}

	if opts.minAmount != "" {
		d, err := decimal.NewFromString(opts.minAmount)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("parsing --min-amount %q: %w", opts.minAmount, err)
		}
		c.MinAmount = &d
	}
	if opts.maxAmount != "" {
		d, err := decimal.NewFromString(opts.maxAmount)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("parsing --max-amount %q: %w", opts.maxAmount, err)
		}
		c.MaxAmount = &d
	}

	if err := c.Validate(); err != nil {
		return filter.Criteria{}, err
	}
	return c, nil
}

func writeOutputs(outDir string, res pipeline.Result, xlsx bool) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	enrichedPath := filepath.Join(outDir, enrichedFileName)
	ef, err := os.Create(enrichedPath)
	if err != nil {
		return fmt.Errorf("creating enriched file: %w", err)
	}
	if err := salesfile.WriteEnriched(ef, res.Enriched); err != nil {
		ef.Close()
		return err
	}
	if err := ef.Close(); err != nil {
		return fmt.Errorf("closing enriched file: %w", err)
	}

	reportPath := filepath.Join(outDir, reportFileName)
	rf, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := report.Render(rf, res.Analytics, res.Enrichment, res.CatalogAvailable); err != nil {
		rf.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := rf.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}

	if xlsx {
		if err := report.ExportXLSX(filepath.Join(outDir, workbookFileName), res.Analytics); err != nil {
			return err
		}
	}
	return nil
}
