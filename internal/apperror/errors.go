// Package apperror defines the error taxonomy of a classification run.
//
// MissingInputError and SchemaError are fatal and surface before any entry is
// classified. OutputWriteError is fatal for the write step only. ParseError
// describes a single bad cell and is always degraded to a per-row issue.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks across the taxonomy.
var (
	ErrMissingInput = errors.New("missing input")
	ErrSchema       = errors.New("schema error")
	ErrOutputWrite  = errors.New("output write error")
)

// MissingInputError reports that a required input table does not exist.
type MissingInputError struct {
	Table string
	Path  string
	Err   error
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s file '%s' not found: %v", e.Table, e.Path, e.Err)
	}
	return fmt.Sprintf("%s file '%s' not found", e.Table, e.Path)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMissingInput) succeed.
func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// SchemaError reports required columns missing after header normalization.
// Found lists the columns actually present, for diagnosability.
type SchemaError struct {
	Table       string
	Missing     []string
	Duplicated  []string
	Found       []string
	Suggestions map[string]string // missing column -> closest found column
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "%s is missing required column(s) %s", e.Table, quoteAll(e.Missing))
	} else {
		fmt.Fprintf(&b, "%s has an invalid header", e.Table)
	}
	if len(e.Duplicated) > 0 {
		fmt.Fprintf(&b, "; duplicated column(s) %s", quoteAll(e.Duplicated))
	}
	fmt.Fprintf(&b, "; columns found: [%s]", strings.Join(e.Found, ", "))
	for _, m := range e.Missing {
		if s, ok := e.Suggestions[m]; ok {
			fmt.Fprintf(&b, "; did you mean '%s' for '%s'?", s, m)
		}
	}
	return b.String()
}

// Is makes errors.Is(err, ErrSchema) succeed.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// OutputWriteError reports a failure while persisting results.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write output '%s': %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrOutputWrite) succeed.
func (e *OutputWriteError) Is(target error) bool { return target == ErrOutputWrite }

// ParseError represents a cell that could not be parsed.
type ParseError struct {
	Table string
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: failed to parse %s='%s': %v",
		e.Table, e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingInput) || errors.Is(err, ErrSchema)
}

func quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "'" + c + "'"
	}
	return strings.Join(quoted, ", ")
}
