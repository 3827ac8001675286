// Package validate classifies parsed sales candidates into accepted
// transactions and rejected records. Every rule is applied per record;
// no violation ever aborts the batch.
package validate

import (
	"fmt"
	"time"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// ReasonDuplicateID is the rejection reason for repeated transaction ids.
// Later duplicates are rejected; the first occurrence wins.
const ReasonDuplicateID = "duplicate id"

// Classify applies the acceptance rules to each candidate in order.
// Accepted transactions preserve input order; daily-trend and first-seen
// analytics depend on that. Always: len(accepted) + len(rejected) equals
// len(candidates).
func Classify(candidates []model.Candidate) ([]model.Transaction, []model.RejectedRecord) {
	var accepted []model.Transaction
	var rejected []model.RejectedRecord

	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		reason, date := check(c)
		if reason == "" && seen[c.ID] {
			reason = ReasonDuplicateID
		}
		if reason != "" {
			rejected = append(rejected, model.RejectedRecord{Line: c.Line, Reason: reason})
			continue
		}

		seen[c.ID] = true
		accepted = append(accepted, model.Transaction{
			ID:          c.ID,
			Date:        date,
			ProductID:   c.ProductID,
			ProductName: c.ProductName,
			Quantity:    c.Quantity,
			UnitPrice:   c.UnitPrice,
			CustomerID:  c.CustomerID,
			Region:      c.Region,
		})
	}

	return accepted, rejected
}

// check returns the first violated rule, or "" and the parsed date when
// the candidate passes every field-level rule.
func check(c model.Candidate) (string, time.Time) {
	if c.ID == "" {
		return "empty transaction id", time.Time{}
	}

	date, err := time.Parse(model.DateFormat, c.RawDate)
	if err != nil {
		return fmt.Sprintf("invalid date %q", c.RawDate), time.Time{}
	}

	if c.Quantity < 0 {
		return fmt.Sprintf("negative quantity %d", c.Quantity), time.Time{}
	}
	if c.UnitPrice.IsNegative() {
		return fmt.Sprintf("negative unit price %s", c.UnitPrice), time.Time{}
	}

	if c.ProductID == "" {
		return "empty product id", time.Time{}
	}
	if c.ProductName == "" {
		return "empty product name", time.Time{}
	}
	if c.CustomerID == "" {
		return "empty customer id", time.Time{}
	}
	if c.Region == "" {
		return "empty region", time.Time{}
	}

	return "", date
}
