package model

import "github.com/shopspring/decimal"

// CatalogEntry is external product metadata keyed by product ID.
// Optional fields may be empty; an empty Brand or Category is valid.
type CatalogEntry struct {
	ProductID string
	Title     string
	Category  string
	Brand     string
	Rating    decimal.Decimal
}

// EnrichedTransaction is a Transaction annotated with catalog metadata.
// Matched is true iff a catalog entry was found for the product ID;
// when false, Category/Brand are empty and Rating is zero.
type EnrichedTransaction struct {
	Transaction
	Category string
	Brand    string
	Rating   decimal.Decimal
	Matched  bool
}
