package model

import "github.com/shopspring/decimal"

// Candidate is a parsed sales line awaiting validation. The date stays raw
// until the validator classifies the record, so a bad date rejects the one
// record instead of failing the parse stage.
type Candidate struct {
	Line        string // original input line, kept for diagnostics
	ID          string
	RawDate     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	CustomerID  string
	Region      string
}
