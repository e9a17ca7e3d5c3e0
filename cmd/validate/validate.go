// Package validate implements the validate command
package validate

import (
	"fmt"

	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the input tables exist and carry the required columns",
	Long: `Read the chart of accounts and the cash-flow ledger and check their headers,
without classifying anything or writing output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Execute(cmd, c)
	},
}

// Execute validates the configured input tables.
func Execute(cmd *cobra.Command, c *container.Container) error {
	opts := c.RunOptions()
	chartRows, ledgerRows, err := c.GetRunner().Validate(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d rows\n", opts.ChartPath, chartRows)
	fmt.Fprintf(out, "%s: %d rows\n", opts.LedgerPath, ledgerRows)
	fmt.Fprintln(out, "Input tables are valid.")
	return nil
}
