package models

// Outcome says which branch of the classification rules an entry took.
type Outcome int

const (
	OutcomeUnmatched  Outcome = iota // non-blank label absent from the chart
	OutcomeBlankLabel                // no label; silently left unclassified
	OutcomeDebit                     // matched, amount < 0
	OutcomeCredit                    // matched, amount > 0
	OutcomeZeroAmount                // matched, amount == 0 or unparseable
)

var outcomeNames = map[Outcome]string{
	OutcomeUnmatched:  "unmatched",
	OutcomeBlankLabel: "blank_label",
	OutcomeDebit:      "debit",
	OutcomeCredit:     "credit",
	OutcomeZeroAmount: "zero_amount",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// ClassifiedEntry is a LedgerEntry with its debit/credit account codes.
// Exactly one of Debit and Credit is set for OutcomeDebit/OutcomeCredit;
// both are unset otherwise.
type ClassifiedEntry struct {
	Entry   LedgerEntry
	Debit   AccountCode
	Credit  AccountCode
	Outcome Outcome
}

// Matched reports whether a code was assigned.
func (c ClassifiedEntry) Matched() bool {
	return c.Debit.IsSet() || c.Credit.IsSet()
}

// Code returns whichever code is set.
func (c ClassifiedEntry) Code() AccountCode {
	if c.Debit.IsSet() {
		return c.Debit
	}
	return c.Credit
}
