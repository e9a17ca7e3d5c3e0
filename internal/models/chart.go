// Package models provides the data structures shared by the classification pipeline.
package models

import "strings"

// AccountCode is a chart-of-accounts code. Numeric codes read from a CSV keep
// their textual form ("504"), so alphanumeric codes ("1.1.01") work the same way.
// The empty code means "unset".
type AccountCode string

// IsSet reports whether the code carries a value.
func (c AccountCode) IsSet() bool {
	return c != ""
}

// String implements fmt.Stringer.
func (c AccountCode) String() string {
	return string(c)
}

// NewAccountCode trims the raw cell value.
func NewAccountCode(raw string) AccountCode {
	return AccountCode(strings.TrimSpace(raw))
}

// ChartEntry is one row of the chart of accounts.
type ChartEntry struct {
	CategoryLabel string      `json:"subgrupo" yaml:"subgrupo"`
	AccountCode   AccountCode `json:"codigo" yaml:"codigo"`
	Row           int         `json:"row" yaml:"row"` // 0-based position in the source table
}

// DiscardedChartEntry is a chart row whose label normalizes to a key already
// taken by an earlier row. It is kept only for reporting.
type DiscardedChartEntry struct {
	Entry    ChartEntry  `json:"entry" yaml:"entry"`
	KeptRow  int         `json:"kept_row" yaml:"kept_row"`
	KeptCode AccountCode `json:"kept_code" yaml:"kept_code"`
}
