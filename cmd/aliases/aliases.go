// Package aliases implements the aliases command
package aliases

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/container"

	"github.com/spf13/cobra"
)

var write bool

// Cmd represents the aliases command
var Cmd = &cobra.Command{
	Use:   "aliases",
	Short: "Show the header aliases applied to input columns",
	Long: `Print every header variant that is renamed to a canonical column (e.g.
subgrupos -> subgrupo) when the input tables are read. With --write, the
effective aliases are saved to the alias file so they can be edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Execute(cmd, c)
	},
}

func init() {
	Cmd.Flags().BoolVar(&write, "write", false, "Save the effective aliases to files.header_aliases")
}

// Execute prints the effective header aliases and optionally saves them.
func Execute(cmd *cobra.Command, c *container.Container) error {
	s := c.GetStore()
	aliases, err := s.LoadHeaderAliases()
	if err != nil {
		return err
	}

	variants := make([]string, 0, len(aliases))
	for v := range aliases {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HEADER\tCOLUMN")
	for _, v := range variants {
		fmt.Fprintf(tw, "%s\t%s\n", v, aliases[v])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if write {
		if err := s.SaveHeaderAliases(aliases); err != nil {
			return err
		}
		fmt.Fprintf(out, "Aliases written to %s.\n", s.AliasesFile)
	}
	return nil
}
