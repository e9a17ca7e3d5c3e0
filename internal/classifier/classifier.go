// Package classifier routes ledger entries to the debit or credit column of
// the account code their category label resolves to.
package classifier

import (
	"sort"

	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/textutils"
)

// Lookup resolves a normalized category key to an account code.
type Lookup interface {
	Get(key string) (models.AccountCode, bool)
}

// ClassifyEntry classifies a single entry. It never fails: an unknown
// non-blank label yields a warning and an unclassified entry.
//
// A matched code goes to Debit when the amount is negative and to Credit when
// it is positive. A zero or unparseable amount leaves both unset.
func ClassifyEntry(e models.LedgerEntry, idx Lookup) (models.ClassifiedEntry, *models.UnmatchedWarning) {
	out := models.ClassifiedEntry{Entry: e}

	if textutils.IsBlank(e.CategoryLabel) {
		out.Outcome = models.OutcomeBlankLabel
		return out, nil
	}

	// A label that normalizes to "" (e.g. only combining marks) is not blank
	// and is reported like any other miss.
	code, ok := idx.Get(textutils.Normalize(e.CategoryLabel))
	if !ok {
		out.Outcome = models.OutcomeUnmatched
		return out, &models.UnmatchedWarning{Row: e.Row, CategoryLabel: e.CategoryLabel}
	}

	switch e.Sign() {
	case -1:
		out.Debit = code
		out.Outcome = models.OutcomeDebit
	case 1:
		out.Credit = code
		out.Outcome = models.OutcomeCredit
	default:
		out.Outcome = models.OutcomeZeroAmount
	}
	return out, nil
}

// Classify classifies entries in order. The result has one element per entry;
// warnings are sorted by row.
func Classify(entries []models.LedgerEntry, idx Lookup) ([]models.ClassifiedEntry, []models.UnmatchedWarning) {
	classified := make([]models.ClassifiedEntry, len(entries))
	var warnings []models.UnmatchedWarning
	for i, e := range entries {
		c, w := ClassifyEntry(e, idx)
		classified[i] = c
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	SortWarnings(warnings)
	return classified, warnings
}

// SortWarnings orders warnings by row, keeping the relative order of equal rows.
func SortWarnings(warnings []models.UnmatchedWarning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Row < warnings[j].Row
	})
}
