package cmd

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/transport"
)

// catalogCmd prints the effective catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show SKUs, customers with their tier, fleet and distances",
	Run: func(cmd *cobra.Command, args []string) {
		_, cat, err := resolveSettings(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := printCatalog(cmd.OutOrStdout(), cat); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func printCatalog(w io.Writer, cat sim.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "SKU\tDESCRIPTION")
	for _, s := range cat.SKUs {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Description)
	}

	fmt.Fprintln(tw, "\nCUSTOMER\tNAME\tTIER\tKM")
	for _, c := range cat.Customers {
		km, ok := cat.Distances[c.Name]
		if !ok {
			km = transport.DefaultDistance
		}
		fmt.Fprintf(tw, "%s\t%s\t%d (%s)\t%d\n", c.ID, c.Name, int(c.Tier), c.Tier, km)
	}

	fmt.Fprintln(tw, "\nVEHICLE\tTYPE\tCAPACITY\tCOST/KM")
	for _, v := range cat.Vehicles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", v.ID, v.Type, v.Capacity, v.CostPerDistance.StringFixed(2))
	}

	// distances for names that are not catalog customers
	known := make(map[string]bool, len(cat.Customers))
	for _, c := range cat.Customers {
		known[c.Name] = true
	}
	var extra []string
	for name := range cat.Distances {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		slices.Sort(extra)
		fmt.Fprintln(tw, "\nDESTINATION\tKM")
		for _, name := range extra {
			fmt.Fprintf(tw, "%s\t%d\n", name, cat.Distances[name])
		}
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
