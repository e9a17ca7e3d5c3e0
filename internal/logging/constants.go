package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the run pipeline,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldTable      = "table"
	FieldRow        = "row"
	FieldLine       = "line"
	FieldCategory   = "subgrupo"
	FieldCode       = "account_code"
	FieldSuggestion = "suggestion"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldColumns    = "columns"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldRunID      = "run_id"
	FieldWorkers    = "workers"
)
