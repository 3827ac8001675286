package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used across sales files.
const DateFormat = "2006-01-02"

// Transaction represents one validated sales record.
type Transaction struct {
	ID          string
	Date        time.Time
	ProductID   string
	ProductName string
	Quantity    int             // units sold, never negative
	UnitPrice   decimal.Decimal // per-unit price, never negative
	CustomerID  string
	Region      string
}

// Amount returns the line total (quantity x unit price).
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// RejectedRecord is a raw input line that failed parsing or validation.
// Diagnostics only; rejected records never reach analytics or enrichment.
type RejectedRecord struct {
	Line   string
	Reason string
}
