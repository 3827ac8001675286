// Package catalog fetches external product metadata and exposes it as an
// explicit result type: either a populated mapping or an "unavailable"
// marker. A failed fetch is an expected outcome, not an exception; the
// pipeline degrades enrichment instead of aborting.
package catalog

import (
	"strconv"
	"strings"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// Catalog is the product-id to metadata mapping, or the unavailable marker
// when the upstream fetch failed.
type Catalog struct {
	available bool
	entries   map[string]model.CatalogEntry
}

// Unavailable returns the marker used when the catalog could not be fetched.
func Unavailable() Catalog {
	return Catalog{}
}

// FromEntries builds a Catalog from a list of entries. Entries without a
// product id are skipped; on duplicate product ids the first entry wins.
func FromEntries(entries []model.CatalogEntry) Catalog {
	m := make(map[string]model.CatalogEntry, len(entries))
	for _, e := range entries {
		if e.ProductID == "" {
			continue
		}
		k := key(e.ProductID)
		if _, ok := m[k]; ok {
			continue
		}
		m[k] = e
	}
	return Catalog{available: true, entries: m}
}

// Available reports whether the catalog was fetched successfully.
// An empty but available catalog still enriches (everything unmatched).
func (c Catalog) Available() bool { return c.available }

// Len returns the number of distinct catalog entries.
func (c Catalog) Len() int { return len(c.entries) }

// Lookup finds the entry for a transaction's product id. Sales product ids
// like "P101" join against numeric catalog ids on the digit part, so both
// "P101" and "101" resolve to the same entry.
func (c Catalog) Lookup(productID string) (model.CatalogEntry, bool) {
	if !c.available {
		return model.CatalogEntry{}, false
	}
	e, ok := c.entries[key(productID)]
	return e, ok
}

// key normalizes a product id to its join key: the numeric part when the
// id contains digits, otherwise the id itself.
func key(productID string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, productID)

	if n, err := strconv.Atoi(digits); err == nil {
		return strconv.Itoa(n)
	}
	return productID
}
