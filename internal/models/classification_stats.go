package models

import (
	"fjacquet/cashflow-classifier/internal/logging"
)

// ClassificationStats tracks per-outcome counts of a classification pass.
type ClassificationStats struct {
	Total      int `json:"total" yaml:"total"`
	Matched    int `json:"matched" yaml:"matched"`
	Debits     int `json:"debits" yaml:"debits"`
	Credits    int `json:"credits" yaml:"credits"`
	ZeroAmount int `json:"zero_amount" yaml:"zero_amount"`
	Unmatched  int `json:"unmatched" yaml:"unmatched"`
	BlankLabel int `json:"blank_label" yaml:"blank_label"`
}

// Record counts one classified entry.
func (s *ClassificationStats) Record(c ClassifiedEntry) {
	s.Total++
	switch c.Outcome {
	case OutcomeDebit:
		s.Matched++
		s.Debits++
	case OutcomeCredit:
		s.Matched++
		s.Credits++
	case OutcomeZeroAmount:
		s.ZeroAmount++
	case OutcomeBlankLabel:
		s.BlankLabel++
	default:
		s.Unmatched++
	}
}

// MatchRate returns the matched share as a percentage.
func (s ClassificationStats) MatchRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Matched) / float64(s.Total) * 100.0
}

// LogSummary logs the counts at info level.
func (s ClassificationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Classification summary",
		logging.Field{Key: "total_entries", Value: s.Total},
		logging.Field{Key: "matched", Value: s.Matched},
		logging.Field{Key: "debits", Value: s.Debits},
		logging.Field{Key: "credits", Value: s.Credits},
		logging.Field{Key: "zero_amount", Value: s.ZeroAmount},
		logging.Field{Key: "unmatched", Value: s.Unmatched},
		logging.Field{Key: "blank_label", Value: s.BlankLabel},
		logging.Field{Key: "match_rate", Value: s.MatchRate()},
	)
}
