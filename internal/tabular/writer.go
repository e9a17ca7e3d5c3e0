package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/currencyutils"
	"fjacquet/cashflow-classifier/internal/fileutils"
	"fjacquet/cashflow-classifier/internal/models"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/transform"
)

// Output column names.
const (
	ColumnDebit    = "Débito"
	ColumnCredit   = "Crédito"
	ColumnDate     = "Data"
	ColumnGroup    = "grupo"
	ColumnCategory = "subgrupo"
	ColumnAmount   = "Valor"
	ColumnCode     = "Codigo"
)

// WriteOptions controls how the classified table is encoded.
type WriteOptions struct {
	Delimiter        rune
	Encoding         string
	DecimalSeparator rune
}

// OutputRecord is one output row as text, in output column order.
type OutputRecord struct {
	Debit    string `csv:"Débito"`
	Credit   string `csv:"Crédito"`
	Date     string `csv:"Data"`
	Group    string `csv:"grupo"`
	Category string `csv:"subgrupo"`
	Amount   string `csv:"Valor"`
}

// outputRecordNoGroup is OutputRecord for ledgers without a grupo column.
type outputRecordNoGroup struct {
	Debit    string `csv:"Débito"`
	Credit   string `csv:"Crédito"`
	Date     string `csv:"Data"`
	Category string `csv:"subgrupo"`
	Amount   string `csv:"Valor"`
}

// Render converts a classified entry to its output text. Amounts that did not
// parse are written back exactly as read.
func Render(c models.ClassifiedEntry, decimalSep rune) OutputRecord {
	amount := c.Entry.RawAmount
	if c.Entry.AmountValid {
		amount = currencyutils.FormatAmount(c.Entry.Amount, decimalSep)
	}
	return OutputRecord{
		Debit:    c.Debit.String(),
		Credit:   c.Credit.String(),
		Date:     c.Entry.Date,
		Group:    c.Entry.Group,
		Category: c.Entry.CategoryLabel,
		Amount:   amount,
	}
}

// OutputHeaders returns the output column order.
func OutputHeaders(hasGroup bool) []string {
	if hasGroup {
		return []string{ColumnDebit, ColumnCredit, ColumnDate, ColumnGroup, ColumnCategory, ColumnAmount}
	}
	return []string{ColumnDebit, ColumnCredit, ColumnDate, ColumnCategory, ColumnAmount}
}

// WriteClassified writes rows to path atomically. Any failure, including a
// character the output encoding cannot represent, is an *apperror.OutputWriteError
// and leaves path untouched.
func WriteClassified(path string, rows []models.ClassifiedEntry, hasGroup bool, opts WriteOptions) error {
	err := fileutils.WriteAtomic(path, 0644, func(w io.Writer) error {
		return EncodeClassified(w, rows, hasGroup, opts)
	})
	if err != nil {
		return &apperror.OutputWriteError{Path: path, Err: err}
	}
	return nil
}

// EncodeClassified writes the header and rows to w.
func EncodeClassified(w io.Writer, rows []models.ClassifiedEntry, hasGroup bool, opts WriteOptions) error {
	enc, err := outputEncoding(opts.Encoding)
	if err != nil {
		return err
	}
	sep := opts.DecimalSeparator
	if sep == 0 {
		sep = currencyutils.DefaultDecimalSeparator
	}

	tw := transform.NewWriter(w, enc.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.Comma = delimiterOrDefault(opts.Delimiter)

	if len(rows) == 0 {
		// Header only.
		if err := cw.Write(OutputHeaders(hasGroup)); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	} else if err := gocsv.MarshalCSV(records(rows, hasGroup, sep), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("error encoding rows: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing rows: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("error encoding output as %s: %w", opts.Encoding, err)
	}
	return nil
}

func records(rows []models.ClassifiedEntry, hasGroup bool, sep rune) interface{} {
	if hasGroup {
		out := make([]OutputRecord, len(rows))
		for i, c := range rows {
			out[i] = Render(c, sep)
		}
		return out
	}
	out := make([]outputRecordNoGroup, len(rows))
	for i, c := range rows {
		r := Render(c, sep)
		out[i] = outputRecordNoGroup{
			Debit:    r.Debit,
			Credit:   r.Credit,
			Date:     r.Date,
			Category: r.Category,
			Amount:   r.Amount,
		}
	}
	return out
}
