// Package runner orchestrates one classification run: read both tables,
// build the index, classify, report and write the output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/cashflow-classifier/internal/accountindex"
	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/classifier"
	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/fileutils"
	"fjacquet/cashflow-classifier/internal/ledger"
	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/models"
	"fjacquet/cashflow-classifier/internal/report"
	"fjacquet/cashflow-classifier/internal/sqlitesink"
	"fjacquet/cashflow-classifier/internal/store"
	"fjacquet/cashflow-classifier/internal/tabular"
)

// Table names used in errors and logs.
const (
	ChartTable  = "chart of accounts"
	LedgerTable = "ledger"
)

// FieldRawColumns holds the header cells exactly as read, before aliasing.
const FieldRawColumns = "raw_columns"

// Options are the injected inputs of a run.
type Options struct {
	ChartPath  string
	LedgerPath string
	OutputPath string
	ReportPath string // empty: no report file

	OutputFormat string // config.OutputCSV or config.OutputSQLite
	SQLiteTable  string
	ReportFormat string

	Delimiter        rune
	DecimalSeparator rune
	InputEncoding    string
	OutputEncoding   string

	Workers               int
	Suggestions           bool
	MaxSuggestionDistance int
}

// OptionsFromConfig maps configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ChartPath:             cfg.Files.Chart,
		LedgerPath:            cfg.Files.Ledger,
		OutputPath:            cfg.Files.Output,
		ReportPath:            cfg.Files.Report,
		OutputFormat:          cfg.Output.Format,
		SQLiteTable:           cfg.Output.SQLiteTable,
		ReportFormat:          cfg.Report.Format,
		Delimiter:             cfg.DelimiterRune(),
		DecimalSeparator:      cfg.DecimalSeparatorRune(),
		InputEncoding:         cfg.CSV.InputEncoding,
		OutputEncoding:        cfg.CSV.OutputEncoding,
		Workers:               cfg.Classification.Workers,
		Suggestions:           cfg.Report.Suggestions,
		MaxSuggestionDistance: cfg.Report.MaxSuggestionDistance,
	}
}

// Result is what a run computed. It is returned alongside an
// *apperror.OutputWriteError so the caller can retry the write.
type Result struct {
	Classified []models.ClassifiedEntry
	HasGroup   bool
	Index      *accountindex.Index
	Report     *report.Report
}

// Runner executes classification runs.
type Runner struct {
	logger    logging.Logger
	aliases   store.AliasLoader
	generator *report.ReportGenerator
}

// NewRunner creates a Runner. A nil aliases loader means the built-in aliases.
func NewRunner(logger logging.Logger, aliases store.AliasLoader, generator *report.ReportGenerator) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	if aliases == nil {
		aliases = store.DefaultAliases()
	}
	if generator == nil {
		generator = report.NewReportGenerator(logger)
	}
	return &Runner{logger: logger, aliases: aliases, generator: generator}
}

// Run executes the whole pipeline. Missing inputs and schema errors abort
// before anything is classified or written.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	runID := report.NewRunID()
	log := r.logger.WithField(logging.FieldRunID, runID)

	if err := checkInputs(opts); err != nil {
		return nil, err
	}

	idx, err := r.LoadChart(opts)
	if err != nil {
		return nil, err
	}
	entries, issues, hasGroup, err := r.LoadLedger(opts)
	if err != nil {
		return nil, err
	}

	processor := classifier.NewConcurrentProcessor(opts.Workers, log)
	classified, warnings, err := processor.Classify(ctx, entries, idx)
	if err != nil {
		return nil, fmt.Errorf("classification cancelled: %w", err)
	}

	rep := report.New(runID, classified, warnings, idx.Discarded())
	rep.ChartFile = opts.ChartPath
	rep.LedgerFile = opts.LedgerPath
	rep.OutputFile = opts.OutputPath
	rep.ChartEntries = idx.Len()
	rep.Issues = issues
	if opts.Suggestions {
		rep.AddSuggestions(idx.Labels(), opts.MaxSuggestionDistance)
	}

	result := &Result{Classified: classified, HasGroup: hasGroup, Index: idx, Report: rep}

	if err := r.WriteOutput(ctx, result, opts); err != nil {
		return result, err
	}

	if opts.ReportPath != "" {
		if err := r.generator.WriteReport(rep, opts.ReportFormat, opts.ReportPath); err != nil {
			return result, &apperror.OutputWriteError{Path: opts.ReportPath, Err: err}
		}
	}

	log.Info("Classification run completed",
		logging.F(logging.FieldCount, len(classified)),
		logging.F(logging.FieldOutputFile, opts.OutputPath),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return result, nil
}

// Validate reads both tables and checks their headers without classifying.
func (r *Runner) Validate(opts Options) (chartRows, ledgerRows int, err error) {
	if err := checkInputs(opts); err != nil {
		return 0, 0, err
	}
	aliases, err := r.aliases.LoadHeaderAliases()
	if err != nil {
		return 0, 0, err
	}

	chart, err := tabular.ReadFile(opts.ChartPath, ChartTable, readOptions(opts, aliases))
	if err != nil {
		return 0, 0, err
	}
	r.logColumns(chart)
	if err := chart.RequireColumns(accountindex.ColumnLabel, accountindex.ColumnCode); err != nil {
		return 0, 0, err
	}

	ledg, err := tabular.ReadFile(opts.LedgerPath, LedgerTable, readOptions(opts, aliases))
	if err != nil {
		return 0, 0, err
	}
	r.logColumns(ledg)
	if err := ledg.RequireColumns(ledger.RequiredColumns...); err != nil {
		return 0, 0, err
	}

	r.logger.Info("Input tables are valid",
		logging.F(logging.FieldInputFile, opts.LedgerPath),
		logging.F("chart_rows", len(chart.Rows)),
		logging.F("ledger_rows", len(ledg.Rows)))
	return len(chart.Rows), len(ledg.Rows), nil
}

// LoadChart reads the chart of accounts and builds the index.
func (r *Runner) LoadChart(opts Options) (*accountindex.Index, error) {
	if !fileutils.FileExists(opts.ChartPath) {
		return nil, &apperror.MissingInputError{Table: ChartTable, Path: opts.ChartPath}
	}
	aliases, err := r.aliases.LoadHeaderAliases()
	if err != nil {
		return nil, err
	}

	t, err := tabular.ReadFile(opts.ChartPath, ChartTable, readOptions(opts, aliases))
	if err != nil {
		return nil, err
	}
	r.logColumns(t)
	idx, err := accountindex.FromTable(t)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Chart of accounts indexed",
		logging.F(logging.FieldFile, opts.ChartPath),
		logging.F(logging.FieldCount, idx.Len()))
	if d := idx.Discarded(); len(d) > 0 {
		r.logger.Warn("Duplicate labels in chart of accounts, keeping first occurrence",
			logging.F(logging.FieldFile, opts.ChartPath),
			logging.F(logging.FieldCount, len(d)))
	}
	if s := idx.Skipped(); len(s) > 0 {
		r.logger.Debug("Chart rows with blank label or code skipped",
			logging.F(logging.FieldCount, len(s)))
	}
	return idx, nil
}

// LoadLedger reads the ledger into entries.
func (r *Runner) LoadLedger(opts Options) ([]models.LedgerEntry, []models.RowIssue, bool, error) {
	aliases, err := r.aliases.LoadHeaderAliases()
	if err != nil {
		return nil, nil, false, err
	}

	t, err := tabular.ReadFile(opts.LedgerPath, LedgerTable, readOptions(opts, aliases))
	if err != nil {
		return nil, nil, false, err
	}
	r.logColumns(t)
	entries, issues, err := ledger.FromTable(t, opts.DecimalSeparator)
	if err != nil {
		return nil, nil, false, err
	}
	for _, issue := range issues {
		r.logger.WithError(issue.Err).Warn("Ledger amount could not be parsed, row left unclassified",
			logging.F(logging.FieldLine, models.CSVLine(issue.Row)),
			logging.F(logging.FieldCategory, entries[issue.Row].CategoryLabel))
	}

	r.logger.Debug("Ledger loaded",
		logging.F(logging.FieldFile, opts.LedgerPath),
		logging.F(logging.FieldCount, len(entries)))
	return entries, issues, ledger.HasGroup(t), nil
}

// WriteOutput persists the classified rows in the configured format.
func (r *Runner) WriteOutput(ctx context.Context, result *Result, opts Options) error {
	var err error
	switch opts.OutputFormat {
	case config.OutputSQLite:
		err = sqlitesink.Write(ctx, opts.OutputPath, opts.SQLiteTable, result.Classified, result.HasGroup)
	case config.OutputCSV, "":
		err = tabular.WriteClassified(opts.OutputPath, result.Classified, result.HasGroup, tabular.WriteOptions{
			Delimiter:        opts.Delimiter,
			Encoding:         opts.OutputEncoding,
			DecimalSeparator: opts.DecimalSeparator,
		})
	default:
		err = &apperror.OutputWriteError{Path: opts.OutputPath, Err: fmt.Errorf("unsupported output format %q", opts.OutputFormat)}
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to write output",
			logging.F(logging.FieldOutputFile, opts.OutputPath))
		return err
	}

	r.logger.Info("Output written",
		logging.F(logging.FieldOutputFile, opts.OutputPath),
		logging.F(logging.FieldCount, len(result.Classified)))
	return nil
}

// logColumns records the header as found in the file and after aliasing.
func (r *Runner) logColumns(t *tabular.Table) {
	r.logger.Debug("Columns read",
		logging.F(logging.FieldTable, t.Name),
		logging.F(FieldRawColumns, t.RawHeaders),
		logging.F(logging.FieldColumns, t.Headers))
}

func checkInputs(opts Options) error {
	var errs []error
	if !fileutils.FileExists(opts.ChartPath) {
		errs = append(errs, &apperror.MissingInputError{Table: ChartTable, Path: opts.ChartPath})
	}
	if !fileutils.FileExists(opts.LedgerPath) {
		errs = append(errs, &apperror.MissingInputError{Table: LedgerTable, Path: opts.LedgerPath})
	}
	return errors.Join(errs...)
}

func readOptions(opts Options, aliases store.Aliases) tabular.ReadOptions {
	return tabular.ReadOptions{
		Delimiter: opts.Delimiter,
		Encoding:  opts.InputEncoding,
		Headers:   aliases,
	}
}
