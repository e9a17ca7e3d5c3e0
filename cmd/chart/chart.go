// Package chart implements the chart command
package chart

import (
	"fmt"
	"text/tabwriter"

	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/models"

	"github.com/spf13/cobra"
)

var listEntries bool

// Cmd represents the chart command
var Cmd = &cobra.Command{
	Use:   "chart",
	Short: "Inspect the chart of accounts index",
	Long: `Build the lookup index from the chart of accounts and print its size, the rows
discarded because their subgrupo repeats an earlier one, and the rows skipped
for a blank subgrupo or code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Execute(cmd, c)
	},
}

func init() {
	Cmd.Flags().BoolVar(&listEntries, "list", false, "List every indexed subgrupo with its code")
}

// Execute prints a summary of the configured chart of accounts.
func Execute(cmd *cobra.Command, c *container.Container) error {
	opts := c.RunOptions()
	idx, err := c.GetRunner().LoadChart(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d labels indexed\n", opts.ChartPath, idx.Len())

	if listEntries {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LINE\tSUBGRUPO\tCODIGO")
		for _, e := range idx.Entries() {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", models.CSVLine(e.Row), e.CategoryLabel, e.AccountCode)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if discarded := idx.Discarded(); len(discarded) > 0 {
		fmt.Fprintf(out, "%d duplicate labels discarded (first occurrence kept):\n", len(discarded))
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LINE\tSUBGRUPO\tCODIGO\tKEPT LINE\tKEPT CODIGO")
		for _, d := range discarded {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
				models.CSVLine(d.Entry.Row), d.Entry.CategoryLabel, d.Entry.AccountCode,
				models.CSVLine(d.KeptRow), d.KeptCode)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if skipped := idx.Skipped(); len(skipped) > 0 {
		fmt.Fprintf(out, "%d rows skipped for a blank subgrupo or codigo\n", len(skipped))
	}
	return nil
}
