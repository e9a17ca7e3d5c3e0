// Package report aggregates the outcome of a classification run.
package report

import (
	"sort"
	"time"

	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/textutils"

	"github.com/google/uuid"
)

// Report is the summary of one run.
type Report struct {
	RunID               string                       `json:"run_id" yaml:"run_id"`
	GeneratedAt         time.Time                    `json:"generated_at" yaml:"generated_at"`
	ChartFile           string                       `json:"chart_file,omitempty" yaml:"chart_file,omitempty"`
	LedgerFile          string                       `json:"ledger_file,omitempty" yaml:"ledger_file,omitempty"`
	OutputFile          string                       `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	ChartEntries        int                          `json:"chart_entries" yaml:"chart_entries"`
	Stats               models.ClassificationStats   `json:"stats" yaml:"stats"`
	DuplicatesDiscarded int                          `json:"duplicates_discarded" yaml:"duplicates_discarded"`
	DiscardedDuplicates []models.DiscardedChartEntry `json:"discarded_duplicates,omitempty" yaml:"discarded_duplicates,omitempty"`
	Warnings            []models.UnmatchedWarning    `json:"warnings" yaml:"warnings"`
	Issues              []models.RowIssue            `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// New counts the outcomes of classified and passes the warnings through,
// sorted by row.
func New(runID string, classified []models.ClassifiedEntry, warnings []models.UnmatchedWarning, discarded []models.DiscardedChartEntry) *Report {
	r := &Report{
		RunID:               runID,
		GeneratedAt:         time.Now().UTC(),
		DuplicatesDiscarded: len(discarded),
		DiscardedDuplicates: discarded,
		Warnings:            append([]models.UnmatchedWarning{}, warnings...),
	}
	for _, c := range classified {
		r.Stats.Record(c)
	}
	sortWarnings(r.Warnings)
	return r
}

// AddSuggestions fills each warning's Suggestion with the closest chart label
// within maxDistance edits. Suggestions never change a classification.
func (r *Report) AddSuggestions(labels []string, maxDistance int) {
	for i := range r.Warnings {
		if s, ok := textutils.Closest(r.Warnings[i].CategoryLabel, labels, maxDistance); ok {
			r.Warnings[i].Suggestion = s
		}
	}
}

// HasWarnings reports whether any entry was left unmatched.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// LogSummary writes the run summary.
func (r *Report) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	log := logger.WithField(logging.FieldRunID, r.RunID)
	r.Stats.LogSummary(log)
	if r.DuplicatesDiscarded > 0 {
		log.Warn("Duplicate chart labels discarded",
			logging.F(logging.FieldCount, r.DuplicatesDiscarded))
	}
	if len(r.Issues) > 0 {
		log.Warn("Ledger rows with unparseable amounts",
			logging.F(logging.FieldCount, len(r.Issues)))
	}
}

func sortWarnings(w []models.UnmatchedWarning) {
	sort.SliceStable(w, func(i, j int) bool { return w[i].Row < w[j].Row })
}
