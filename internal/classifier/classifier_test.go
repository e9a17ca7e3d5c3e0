package classifier

import (
	"fmt"
	"testing"

	"fjacquet/cashflow-classifier/internal/accountindex"
	"fjacquet/cashflow-classifier/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerEntry(row int, label, amount string) models.LedgerEntry {
	return models.LedgerEntry{
		Row:           row,
		CategoryLabel: label,
		Amount:        decimal.RequireFromString(amount),
		RawAmount:     amount,
		AmountValid:   true,
	}
}

func testIndex() *accountindex.Index {
	return accountindex.Build([]models.ChartEntry{
		{CategoryLabel: "Aluguel de imóvel", AccountCode: "740", Row: 0},
		{CategoryLabel: "Vendas de proteses", AccountCode: "504", Row: 1},
	})
}

func TestClassifyEntry_SignRouting(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name    string
		amount  string
		debit   models.AccountCode
		credit  models.AccountCode
		outcome models.Outcome
	}{
		{"negative goes to debit", "-500", "740", "", models.OutcomeDebit},
		{"positive goes to credit", "500", "", "740", models.OutcomeCredit},
		{"zero leaves both unset", "0", "", "", models.OutcomeZeroAmount},
		{"smallest negative", "-0.01", "740", "", models.OutcomeDebit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := ClassifyEntry(ledgerEntry(0, "Aluguel de imóvel", tt.amount), idx)
			assert.Nil(t, w)
			assert.Equal(t, tt.debit, c.Debit)
			assert.Equal(t, tt.credit, c.Credit)
			assert.Equal(t, tt.outcome, c.Outcome)
		})
	}
}

func TestClassifyEntry_Unmatched(t *testing.T) {
	c, w := ClassifyEntry(ledgerEntry(3, "Categoria Inexistente", "10"), testIndex())

	require.NotNil(t, w)
	assert.Equal(t, 3, w.Row)
	assert.Equal(t, "Categoria Inexistente", w.CategoryLabel)
	assert.False(t, c.Matched())
	assert.Equal(t, models.OutcomeUnmatched, c.Outcome)
	assert.Equal(t, "Categoria Inexistente", c.Entry.CategoryLabel)
}

func TestClassifyEntry_BlankLabelIsSilent(t *testing.T) {
	for _, label := range []string{"", "   ", "\t"} {
		c, w := ClassifyEntry(ledgerEntry(0, label, "10"), testIndex())
		assert.Nil(t, w)
		assert.False(t, c.Matched())
		assert.Equal(t, models.OutcomeBlankLabel, c.Outcome)
	}
}

func TestClassifyEntry_LabelOfCombiningMarksWarns(t *testing.T) {
	label := "\u0301\u0303"
	c, w := ClassifyEntry(ledgerEntry(7, label, "10"), testIndex())

	require.NotNil(t, w)
	assert.Equal(t, 7, w.Row)
	assert.Equal(t, label, w.CategoryLabel)
	assert.Equal(t, models.OutcomeUnmatched, c.Outcome)
}

func TestClassifyEntry_InvalidAmountIsNotRouted(t *testing.T) {
	e := models.LedgerEntry{CategoryLabel: "Aluguel de imóvel", RawAmount: "abc"}
	c, w := ClassifyEntry(e, testIndex())
	assert.Nil(t, w)
	assert.False(t, c.Matched())
	assert.Equal(t, models.OutcomeZeroAmount, c.Outcome)
}

func TestClassify_OrderPreservedAndWarningsSorted(t *testing.T) {
	entries := []models.LedgerEntry{
		ledgerEntry(0, "Desconhecida B", "1"),
		ledgerEntry(1, "Vendas de Próteses", "1500"),
		ledgerEntry(2, "", "3"),
		ledgerEntry(3, "Desconhecida A", "-1"),
		ledgerEntry(4, "ALUGUEL DE IMOVEL", "-740"),
	}

	classified, warnings := Classify(entries, testIndex())

	require.Len(t, classified, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i], classified[i].Entry)
	}
	assert.Equal(t, models.AccountCode("504"), classified[1].Credit)
	assert.Equal(t, models.AccountCode("740"), classified[4].Debit)

	require.Len(t, warnings, 2)
	assert.Equal(t, 0, warnings[0].Row)
	assert.Equal(t, 3, warnings[1].Row)
}

func TestClassify_Repeatable(t *testing.T) {
	entries := []models.LedgerEntry{
		ledgerEntry(0, "Aluguel de imóvel", "-500"),
		ledgerEntry(1, "Nada", "2"),
	}
	idx := testIndex()

	first, firstWarnings := Classify(entries, idx)
	second, secondWarnings := Classify(entries, idx)

	assert.Equal(t, first, second)
	assert.Equal(t, firstWarnings, secondWarnings)
	assert.Equal(t, "Aluguel de imóvel", entries[0].CategoryLabel)
}

func TestClassify_EndToEnd(t *testing.T) {
	idx := accountindex.Build([]models.ChartEntry{{CategoryLabel: "Vendas de proteses", AccountCode: "504"}})
	entry := ledgerEntry(0, "Vendas de Próteses", "1500.00")
	entry.Date = "2024-01-05"

	classified, warnings := Classify([]models.LedgerEntry{entry}, idx)

	assert.Empty(t, warnings)
	require.Len(t, classified, 1)
	assert.False(t, classified[0].Debit.IsSet())
	assert.Equal(t, models.AccountCode("504"), classified[0].Credit)
	assert.Equal(t, "2024-01-05", classified[0].Entry.Date)
	assert.Equal(t, "Vendas de Próteses", classified[0].Entry.CategoryLabel)
}

func TestClassify_Empty(t *testing.T) {
	classified, warnings := Classify(nil, testIndex())
	assert.Empty(t, classified)
	assert.Empty(t, warnings)
}

func TestSortWarnings_Stable(t *testing.T) {
	w := []models.UnmatchedWarning{{Row: 2, CategoryLabel: "a"}, {Row: 1}, {Row: 2, CategoryLabel: "b"}}
	SortWarnings(w)
	assert.Equal(t, []int{1, 2, 2}, []int{w[0].Row, w[1].Row, w[2].Row})
	assert.Equal(t, "a", w[1].CategoryLabel)
}

func largeLedger(n int) []models.LedgerEntry {
	labels := []string{"Aluguel de imóvel", "Vendas de proteses", "", "Outra coisa"}
	entries := make([]models.LedgerEntry, n)
	for i := range entries {
		entries[i] = ledgerEntry(i, labels[i%len(labels)], fmt.Sprintf("%d", i%7-3))
	}
	return entries
}

var _ Lookup = (*accountindex.Index)(nil)
