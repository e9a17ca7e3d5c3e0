// Package ledger converts the decoded cash-flow table into ledger entries.
package ledger

import (
	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/currencyutils"
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/tabular"
)

// Required ledger columns; Data and grupo are optional passthrough.
var RequiredColumns = []string{tabular.ColumnCategory, tabular.ColumnAmount}

type ledgerRow struct {
	Date   string `csv:"Data"`
	Label  string `csv:"subgrupo"`
	Amount string `csv:"Valor"`
	Group  string `csv:"grupo"`
}

// HasGroup reports whether the ledger carries the optional grupo column.
func HasGroup(t *tabular.Table) bool {
	return t.HasColumn(tabular.ColumnGroup)
}

// FromTable validates the header and converts every row. A cell that does not
// parse as an amount does not fail the read: the entry keeps its raw text,
// is marked invalid and is reported as a RowIssue.
func FromTable(t *tabular.Table, decimalSep rune) ([]models.LedgerEntry, []models.RowIssue, error) {
	if err := t.RequireColumns(RequiredColumns...); err != nil {
		return nil, nil, err
	}
	rows, err := tabular.Decode[ledgerRow](t)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]models.LedgerEntry, len(rows))
	var issues []models.RowIssue
	for i, r := range rows {
		e := models.LedgerEntry{
			Row:           i,
			Date:          r.Date,
			CategoryLabel: r.Label,
			RawAmount:     r.Amount,
			Group:         r.Group,
		}
		amount, err := currencyutils.ParseAmount(r.Amount, decimalSep)
		if err != nil {
			issues = append(issues, models.RowIssue{
				Row:    i,
				Field:  tabular.ColumnAmount,
				Value:  r.Amount,
				Reason: err.Error(),
				Err:    &apperror.ParseError{Table: t.Name, Row: i, Field: tabular.ColumnAmount, Value: r.Amount, Err: err},
			})
		} else {
			e.Amount = amount
			e.AmountValid = true
		}
		entries[i] = e
	}
	return entries, issues, nil
}
