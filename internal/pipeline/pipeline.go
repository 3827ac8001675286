// Package pipeline wires parse, validate, filter, analytics and enrichment
// together. It is the single point where the filtered set is constructed;
// every downstream stage receives that exact slice by argument, so the
// report numbers and the enriched dataset always describe the same records.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/saleslens-dev/saleslens/internal/analytics"
	"github.com/saleslens-dev/saleslens/internal/catalog"
	"github.com/saleslens-dev/saleslens/internal/enrich"
	"github.com/saleslens-dev/saleslens/internal/filter"
	"github.com/saleslens-dev/saleslens/internal/model"
	"github.com/saleslens-dev/saleslens/internal/salesfile"
	"github.com/saleslens-dev/saleslens/internal/validate"
)

// CatalogFetcher is the external collaborator boundary for product
// metadata. A failed fetch downgrades enrichment; it never aborts the run.
type CatalogFetcher interface {
	Fetch(ctx context.Context) (catalog.Catalog, error)
}

// Params configures one pipeline run.
type Params struct {
	Lines     []string // data lines, header already stripped
	Criteria  filter.Criteria
	Analytics analytics.Options
	Fetcher   CatalogFetcher // nil skips the catalog fetch entirely
	Log       zerolog.Logger
}

// Result is the complete output of one run.
type Result struct {
	Accepted   []model.Transaction
	Rejected   []model.RejectedRecord
	Filtered   []model.Transaction
	Analytics  analytics.Summary
	Enriched   []model.EnrichedTransaction
	Enrichment enrich.Summary

	// CatalogAvailable is false when the fetch failed or was skipped.
	CatalogAvailable bool
}

// Run executes the full pipeline over the given lines. The only error it
// can return is malformed filter criteria, surfaced before any filtering;
// per-record and catalog failures degrade the result instead.
func Run(ctx context.Context, params Params) (Result, error) {
	if err := params.Criteria.Validate(); err != nil {
		return Result{}, fmt.Errorf("filter criteria: %w", err)
	}

	candidates, rejected := salesfile.ParseLines(params.Lines)
	accepted, invalid := validate.Classify(candidates)
	rejected = append(rejected, invalid...)

	for _, r := range rejected {
		params.Log.Debug().Str("reason", r.Reason).Str("line", r.Line).Msg("record rejected")
	}
	params.Log.Info().
		Int("read", len(params.Lines)).
		Int("accepted", len(accepted)).
		Int("rejected", len(rejected)).
		Msg("validated sales records")

	filtered, err := filter.Apply(accepted, params.Criteria)
	if err != nil {
		// Criteria were validated above; Apply cannot fail here.
		return Result{}, err
	}
	if !params.Criteria.IsZero() {
		params.Log.Info().Int("filtered", len(filtered)).Msg("applied filters")
	}

	cat := fetchCatalog(ctx, params)

	enriched, esum := enrich.Merge(filtered, cat)
	params.Log.Info().
		Int("attempted", esum.Attempted).
		Int("matched", esum.Matched).
		Bool("catalog", cat.Available()).
		Msg("enriched transactions")

	return Result{
		Accepted:         accepted,
		Rejected:         rejected,
		Filtered:         filtered,
		Analytics:        analytics.Summarize(filtered, params.Analytics),
		Enriched:         enriched,
		Enrichment:       esum,
		CatalogAvailable: cat.Available(),
	}, nil
}

func fetchCatalog(ctx context.Context, params Params) catalog.Catalog {
	if params.Fetcher == nil {
		return catalog.Unavailable()
	}
	cat, err := params.Fetcher.Fetch(ctx)
	if err != nil {
		params.Log.Warn().Err(err).Msg("catalog fetch failed, enrichment degraded")
		return catalog.Unavailable()
	}
	params.Log.Info().Int("products", cat.Len()).Msg("fetched product catalog")
	return cat
}
