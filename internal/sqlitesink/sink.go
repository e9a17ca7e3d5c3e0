package sqlitesink

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/tabular"
)

// DefaultTable is the table written when none is configured.
const DefaultTable = "lancamentos_classificados"

// RowIndexColumn holds the 0-based ledger position of each row.
const RowIndexColumn = "row_index"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Write replaces table in the database at path with rows, in ledger order.
// The table is dropped, recreated and filled in one transaction, so a failed
// run leaves the previous contents in place. Amounts are stored as decimal
// text with a '.' separator; unparseable amounts are stored as read.
func Write(ctx context.Context, path, table string, rows []models.ClassifiedEntry, hasGroup bool) error {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return &apperror.OutputWriteError{Path: path, Err: fmt.Errorf("invalid table name %q", table)}
	}

	conn, err := Open(ctx, path)
	if err != nil {
		return &apperror.OutputWriteError{Path: path, Err: err}
	}
	defer conn.Close()

	columns := append([]string{RowIndexColumn}, tabular.OutputHeaders(hasGroup)...)

	err = conn.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, createTableSQL(table, columns)); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, c := range rows {
			if _, err := stmt.ExecContext(ctx, values(i, c, hasGroup)...); err != nil {
				return fmt.Errorf("failed to insert row %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return &apperror.OutputWriteError{Path: path, Err: err}
	}
	return nil
}

func createTableSQL(table string, columns []string) string {
	defs := make([]string, len(columns))
	defs[0] = quoteIdent(columns[0]) + " INTEGER PRIMARY KEY"
	for i, c := range columns[1:] {
		defs[i+1] = quoteIdent(c) + " TEXT NOT NULL DEFAULT ''"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), strings.Join(quoted, ", "), placeholders)
}

func values(i int, c models.ClassifiedEntry, hasGroup bool) []interface{} {
	r := tabular.Render(c, '.')
	out := []interface{}{i, r.Debit, r.Credit, r.Date}
	if hasGroup {
		out = append(out, r.Group)
	}
	return append(out, r.Category, r.Amount)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
