package enrich

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslens-dev/saleslens/internal/catalog"
	"github.com/saleslens-dev/saleslens/internal/model"
)

func widgetTxn() model.Transaction {
	return model.Transaction{
		ID:          "T1",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductID:   "P1",
		ProductName: "Widget",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("10.00"),
		CustomerID:  "C1",
		Region:      "East",
	}
}

func toolsCatalog() catalog.Catalog {
	return catalog.FromEntries([]model.CatalogEntry{
		{ProductID: "P1", Category: "Tools", Brand: "Acme", Rating: decimal.RequireFromString("4.5")},
	})
}

func TestMerge_CatalogAbsent(t *testing.T) {
	enriched, sum := Merge([]model.Transaction{widgetTxn()}, catalog.Unavailable())

	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].Matched)
	assert.Empty(t, enriched[0].Category)
	assert.Empty(t, enriched[0].Brand)
	assert.True(t, enriched[0].Rating.IsZero())
	assert.Equal(t, "30", enriched[0].Amount().String())

	assert.Equal(t, Summary{Attempted: 1, Matched: 0}, sum)
}

func TestMerge_MatchCopiesFieldsVerbatim(t *testing.T) {
	enriched, sum := Merge([]model.Transaction{widgetTxn()}, toolsCatalog())

	require.Len(t, enriched, 1)
	assert.True(t, enriched[0].Matched)
	assert.Equal(t, "Tools", enriched[0].Category)
	assert.Equal(t, "Acme", enriched[0].Brand)
	assert.Equal(t, "4.5", enriched[0].Rating.String())

	assert.Equal(t, Summary{Attempted: 1, Matched: 1}, sum)
}

func TestMerge_PartialCoverage(t *testing.T) {
	other := widgetTxn()
	other.ID = "T2"
	other.ProductID = "P9"

	enriched, sum := Merge([]model.Transaction{widgetTxn(), other}, toolsCatalog())

	require.Len(t, enriched, 2)
	assert.True(t, enriched[0].Matched)
	assert.False(t, enriched[1].Matched)
	assert.Equal(t, Summary{Attempted: 2, Matched: 1}, sum)
}

func TestMerge_TotalAndOrderPreserving(t *testing.T) {
	var txns []model.Transaction
	for _, id := range []string{"T3", "T1", "T2"} {
		tx := widgetTxn()
		tx.ID = id
		txns = append(txns, tx)
	}

	enriched, _ := Merge(txns, catalog.Unavailable())

	require.Len(t, enriched, len(txns))
	assert.Equal(t, "T3", enriched[0].ID)
	assert.Equal(t, "T1", enriched[1].ID)
	assert.Equal(t, "T2", enriched[2].ID)
}

func TestMerge_EmptyCatalogStillTotal(t *testing.T) {
	enriched, sum := Merge([]model.Transaction{widgetTxn()}, catalog.FromEntries(nil))

	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].Matched)
	assert.Equal(t, 1, sum.Attempted)
}

func TestMerge_RemovingEntriesNeverIncreasesMatches(t *testing.T) {
	txns := []model.Transaction{widgetTxn()}

	_, full := Merge(txns, toolsCatalog())
	_, empty := Merge(txns, catalog.FromEntries(nil))
	_, absent := Merge(txns, catalog.Unavailable())

	assert.LessOrEqual(t, empty.Matched, full.Matched)
	assert.LessOrEqual(t, absent.Matched, full.Matched)
}

func TestMerge_EmptyInput(t *testing.T) {
	enriched, sum := Merge(nil, toolsCatalog())

	assert.Empty(t, enriched)
	assert.Equal(t, Summary{}, sum)
}
