package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim/demand"
)

// demandCmd prints the generated demand without running the pipeline
var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Show the generated orders per day",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, cat, err := resolveSettings(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		spec := demand.SpecFromConfig(cfg)
		s := demand.ResolveSeed(cfg.Seed)
		spec.Seed = &s
		orders, err := demand.Generate(spec, cat.Customers, cat.SKUs)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DAY\tORDERS\tUNITS\tTOP SKU\tTOP UNITS\tDESCRIPTION")
		for _, d := range demand.Summarize(orders) {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%d\t%s\n",
				d.Day, d.Orders, d.Units, d.MostRequestedSKU, d.MostRequestedUnits, cat.SKUDescription(d.MostRequestedSKU))
		}
		if err := tw.Flush(); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(demandCmd)
}
