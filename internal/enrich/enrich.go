// Package enrich merges the filtered transaction set with the product
// catalog. Enrichment is total: every input transaction produces exactly
// one output row, matched or not, in input order.
package enrich

import (
	"github.com/saleslens-dev/saleslens/internal/catalog"
	"github.com/saleslens-dev/saleslens/internal/model"
)

// Summary reports how much of the filtered set the catalog covered.
type Summary struct {
	Attempted int
	Matched   int
}

// Merge annotates each filtered transaction with its catalog entry. An
// unavailable catalog, or a missing product id, degrades that record to
// matched=false with empty enrichment fields; it never blocks the run.
func Merge(filtered []model.Transaction, cat catalog.Catalog) ([]model.EnrichedTransaction, Summary) {
	enriched := make([]model.EnrichedTransaction, 0, len(filtered))
	sum := Summary{Attempted: len(filtered)}

	for _, t := range filtered {
		row := model.EnrichedTransaction{Transaction: t}
		if entry, ok := cat.Lookup(t.ProductID); ok {
			row.Category = entry.Category
			row.Brand = entry.Brand
			row.Rating = entry.Rating
			row.Matched = true
			sum.Matched++
		}
		enriched = append(enriched, row)
	}

	return enriched, sum
}
