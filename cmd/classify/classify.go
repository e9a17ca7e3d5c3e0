// Package classify implements the classify command
package classify

import (
	"context"
	"fmt"

	"fjacquet/cashflow-classifier/cmd/common"
	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	workers      int
	previewRows  int
	strict       bool
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Assign debit and credit account codes to ledger entries",
	Long: `Read the chart of accounts and the cash-flow ledger, look up the account code of
every entry's subgrupo and write it to Débito (negative amounts) or Crédito
(positive amounts). Entries whose subgrupo is not in the chart are kept and
reported as warnings.`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVar(&outputFormat, "format", "", "Output format (csv or sqlite)")
	Cmd.Flags().IntVar(&workers, "workers", -1, "Number of classification workers (0 for one per CPU)")
	Cmd.Flags().IntVar(&previewRows, "preview", -1, "Number of classified rows to print (0 to disable)")
	Cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when an entry has no account code")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return Execute(cmd.Context(), cmd, c)
}

// Execute runs a classification with the container's configuration and the
// command's flag overrides.
func Execute(ctx context.Context, cmd *cobra.Command, c *container.Container) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := c.GetLogger()
	cfg := c.GetConfig()

	opts := c.RunOptions()
	if outputFormat != "" {
		opts.OutputFormat = outputFormat
	}
	if workers >= 0 {
		opts.Workers = workers
	}
	preview := cfg.Report.PreviewRows
	if previewRows >= 0 {
		preview = previewRows
	}

	log.Info("Classifying ledger entries",
		logging.F("chart_file", opts.ChartPath),
		logging.F(logging.FieldInputFile, opts.LedgerPath),
		logging.F(logging.FieldWorkers, opts.Workers))

	result, err := c.GetRunner().Run(ctx, opts)
	if result != nil {
		common.LogWarnings(log, result.Report.Warnings)
		result.Report.LogSummary(log)
	}
	if err != nil {
		if apperror.IsFatal(err) {
			log.Error("Input tables rejected, nothing was classified or written")
		}
		return err
	}

	out := cmd.OutOrStdout()
	if preview > 0 {
		fmt.Fprintf(out, "Output written to %s. First rows:\n", opts.OutputPath)
		if err := common.PrintPreview(out, result, preview, opts.DecimalSeparator); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Output written to %s.\n", opts.OutputPath)
	}

	if rep := result.Report; rep.HasWarnings() {
		fmt.Fprintf(out, "%d entries have a subgrupo missing from the chart of accounts.\n", len(rep.Warnings))
		if strict {
			return fmt.Errorf("%d ledger entries left without an account code", len(rep.Warnings))
		}
	}
	return nil
}
