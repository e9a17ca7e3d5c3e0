package models

// UnmatchedWarning is emitted for a ledger entry whose non-blank category
// label has no account code in the chart.
type UnmatchedWarning struct {
	Row           int    `json:"row" yaml:"row"`
	CategoryLabel string `json:"subgrupo" yaml:"subgrupo"`
	Suggestion    string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// CSVLine converts the 0-based row index into the 1-based line of the source
// file, accounting for the header line.
func CSVLine(row int) int {
	return row + 2
}

// RowIssue records a per-row problem found while reading the ledger, e.g. an
// amount that does not parse. The row still flows through unclassified.
type RowIssue struct {
	Row    int    `json:"row" yaml:"row"`
	Field  string `json:"field" yaml:"field"`
	Value  string `json:"value" yaml:"value"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"` // *apperror.ParseError with table and row context
}
