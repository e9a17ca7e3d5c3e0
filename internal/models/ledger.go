package models

import (
	"github.com/shopspring/decimal"
)

// LedgerEntry is one cash-flow row read from the ledger table.
// It is immutable once read.
type LedgerEntry struct {
	Row           int             // 0-based position in the ledger table
	Date          string          // passthrough
	CategoryLabel string          // may be blank
	Amount        decimal.Decimal // signed
	RawAmount     string          // cell text as read, kept for output when AmountValid is false
	AmountValid   bool
	Group         string // passthrough, meaningful only when the ledger has the column
}

// Sign returns -1, 0 or 1. An invalid amount has sign 0 and is never classified.
func (e LedgerEntry) Sign() int {
	if !e.AmountValid {
		return 0
	}
	return e.Amount.Sign()
}
