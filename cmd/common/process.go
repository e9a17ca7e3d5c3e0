// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/runner"
	"fjacquet/cashflow-classifier/internal/tabular"
)

// LogWarnings logs one WARN entry per unmatched ledger entry, with its file
// line and, when available, the closest chart label.
func LogWarnings(log logging.Logger, warnings []models.UnmatchedWarning) {
	for _, w := range warnings {
		fields := []logging.Field{
			logging.F(logging.FieldLine, models.CSVLine(w.Row)),
			logging.F(logging.FieldCategory, w.CategoryLabel),
		}
		if w.Suggestion != "" {
			fields = append(fields, logging.F(logging.FieldSuggestion, w.Suggestion))
		}
		log.Warn("No account code found for category", fields...)
	}
}

// PrintPreview writes the first n output rows as an aligned table.
func PrintPreview(w io.Writer, result *runner.Result, n int, decimalSep rune) error {
	if result == nil || n <= 0 {
		return nil
	}
	if n > len(result.Classified) {
		n = len(result.Classified)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tabular.OutputHeaders(result.HasGroup), "\t"))
	for _, c := range result.Classified[:n] {
		r := tabular.Render(c, decimalSep)
		cells := []string{r.Debit, r.Credit, r.Date}
		if result.HasGroup {
			cells = append(cells, r.Group)
		}
		cells = append(cells, r.Category, r.Amount)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
