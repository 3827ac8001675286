package salesfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saleslens-dev/saleslens/internal/model"
)

const (
	numFields   = 8
	colID       = 0
	colDate     = 1
	colProdID   = 2
	colProdName = 3
	colQty      = 4
	colPrice    = 5
	colCustID   = 6
	colRegion   = 7
)

// ParseLine splits one pipe-delimited sales line into a Candidate.
// Field values are trimmed, thousands separators are stripped from the
// numeric columns, and commas in the product name become spaces. A
// malformed line returns an error describing the failure; it never panics.
func ParseLine(line string) (model.Candidate, error) {
	parts := strings.Split(line, "|")
	if len(parts) != numFields {
		return model.Candidate{}, fmt.Errorf("expected %d fields, got %d", numFields, len(parts))
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	qty, err := strconv.Atoi(strings.ReplaceAll(parts[colQty], ",", ""))
	if err != nil {
		return model.Candidate{}, fmt.Errorf("parsing quantity %q: %w", parts[colQty], err)
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(parts[colPrice], ",", ""))
	if err != nil {
		return model.Candidate{}, fmt.Errorf("parsing unit price %q: %w", parts[colPrice], err)
	}

	name := strings.TrimSpace(strings.ReplaceAll(parts[colProdName], ",", " "))

	return model.Candidate{
		Line:        line,
		ID:          parts[colID],
		RawDate:     parts[colDate],
		ProductID:   parts[colProdID],
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   price,
		CustomerID:  parts[colCustID],
		Region:      parts[colRegion],
	}, nil
}

// ParseLines parses every line, collecting parse failures as rejected
// records. One bad line never aborts the batch.
func ParseLines(lines []string) ([]model.Candidate, []model.RejectedRecord) {
	var candidates []model.Candidate
	var rejected []model.RejectedRecord
	for _, line := range lines {
		c, err := ParseLine(line)
		if err != nil {
			rejected = append(rejected, model.RejectedRecord{Line: line, Reason: err.Error()})
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, rejected
}
