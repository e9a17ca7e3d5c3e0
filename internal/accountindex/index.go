// Package accountindex builds the lookup from normalized category label to
// account code out of the chart of accounts.
package accountindex

import (
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/tabular"
	"fjacquet/cashflow-classifier/internal/textutils"
)

// Required chart columns, after header aliasing.
const (
	ColumnLabel = tabular.ColumnCategory
	ColumnCode  = tabular.ColumnCode
)

// Index maps normalized labels to account codes. It is read-only once built
// and safe for concurrent readers.
type Index struct {
	codes     map[string]models.ChartEntry
	kept      []models.ChartEntry
	discarded []models.DiscardedChartEntry
	skipped   []models.ChartEntry
}

// Build indexes entries in source order. The first entry for a normalized key
// wins; later ones are recorded in Discarded. Entries with a blank label or a
// blank code are recorded in Skipped and never indexed.
func Build(entries []models.ChartEntry) *Index {
	idx := &Index{codes: make(map[string]models.ChartEntry, len(entries))}
	for _, e := range entries {
		key := textutils.Normalize(e.CategoryLabel)
		if key == "" || !e.AccountCode.IsSet() {
			idx.skipped = append(idx.skipped, e)
			continue
		}
		if first, ok := idx.codes[key]; ok {
			idx.discarded = append(idx.discarded, models.DiscardedChartEntry{
				Entry:    e,
				KeptRow:  first.Row,
				KeptCode: first.AccountCode,
			})
			continue
		}
		idx.codes[key] = e
		idx.kept = append(idx.kept, e)
	}
	return idx
}

// Get returns the code for an already normalized key.
func (i *Index) Get(key string) (models.AccountCode, bool) {
	e, ok := i.codes[key]
	return e.AccountCode, ok
}

// Lookup normalizes label and resolves it.
func (i *Index) Lookup(label string) (models.AccountCode, bool) {
	return i.Get(textutils.Normalize(label))
}

// Len is the number of distinct keys.
func (i *Index) Len() int { return len(i.codes) }

// Entries returns the winning chart entries in source order.
func (i *Index) Entries() []models.ChartEntry {
	return append([]models.ChartEntry(nil), i.kept...)
}

// Labels returns the winning labels in source order, as written in the chart.
func (i *Index) Labels() []string {
	labels := make([]string, len(i.kept))
	for n, e := range i.kept {
		labels[n] = e.CategoryLabel
	}
	return labels
}

// Discarded returns the duplicate rows that lost to an earlier label.
func (i *Index) Discarded() []models.DiscardedChartEntry {
	return append([]models.DiscardedChartEntry(nil), i.discarded...)
}

// Skipped returns the rows ignored for a blank label or code.
func (i *Index) Skipped() []models.ChartEntry {
	return append([]models.ChartEntry(nil), i.skipped...)
}

type chartRow struct {
	Label string `csv:"subgrupo"`
	Code  string `csv:"Codigo"`
}

// FromTable validates the chart header and builds the index. A missing
// required column is reported before any row is read.
func FromTable(t *tabular.Table) (*Index, error) {
	if err := t.RequireColumns(ColumnLabel, ColumnCode); err != nil {
		return nil, err
	}
	rows, err := tabular.Decode[chartRow](t)
	if err != nil {
		return nil, err
	}
	entries := make([]models.ChartEntry, len(rows))
	for n, r := range rows {
		entries[n] = models.ChartEntry{
			CategoryLabel: r.Label,
			AccountCode:   models.NewAccountCode(r.Code),
			Row:           n,
		}
	}
	return Build(entries), nil
}
