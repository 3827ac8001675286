// Package filter narrows the accepted transaction set by region and/or
// amount range. The pipeline applies it exactly once per run; every
// downstream consumer receives the same filtered slice.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saleslens-dev/saleslens/internal/model"
)

// ErrInvalidRange is returned when a criteria's minimum exceeds its maximum.
var ErrInvalidRange = errors.New("invalid amount range")

// Criteria holds the optional filters. An empty Region means all regions;
// a nil bound means unbounded on that side. Bounds are inclusive.
type Criteria struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return c.Region == "" && c.MinAmount == nil && c.MaxAmount == nil
}

// Validate checks the criteria before any filtering runs.
func (c Criteria) Validate() error {
	if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
		return fmt.Errorf("%w: min %s > max %s", ErrInvalidRange, c.MinAmount, c.MaxAmount)
	}
	return nil
}

// Apply returns the transactions matching the criteria, in input order.
// Region matching is case-insensitive and exact; both filters are
// conjunctive. Empty criteria returns the input unchanged.
func Apply(accepted []model.Transaction, c Criteria) ([]model.Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.IsZero() {
		return accepted, nil
	}

	var filtered []model.Transaction
	for _, t := range accepted {
		if !matches(t, c) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

func matches(t model.Transaction, c Criteria) bool {
	if c.Region != "" && !strings.EqualFold(t.Region, c.Region) {
		return false
	}

	amount := t.Amount()
	if c.MinAmount != nil && amount.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && amount.GreaterThan(*c.MaxAmount) {
		return false
	}
	return true
}
