package salesfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// EnrichedHeader is the header row of the enriched output file.
const EnrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|Category|Brand|Rating|Matched"

const enrichedNumFields = 12

// MarshalEnriched converts an EnrichedTransaction to its output fields.
// Enrichment columns are empty strings when the record is unmatched.
func MarshalEnriched(e model.EnrichedTransaction) []string {
	row := make([]string, 0, enrichedNumFields)
	row = append(row,
		e.ID,
		e.Date.Format(model.DateFormat),
		e.ProductID,
		e.ProductName,
		strconv.Itoa(e.Quantity),
		e.UnitPrice.StringFixed(2),
		e.CustomerID,
		e.Region,
	)

	if e.Matched {
		row = append(row, e.Category, e.Brand, e.Rating.String())
	} else {
		row = append(row, "", "", "")
	}
	row = append(row, strconv.FormatBool(e.Matched))

	return row
}

// WriteEnriched writes the enriched dataset (header included).
func WriteEnriched(w io.Writer, rows []model.EnrichedTransaction) error {
	if _, err := fmt.Fprintln(w, EnrichedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(MarshalEnriched(e), "|")); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}
