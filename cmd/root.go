package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/pipeline"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/report"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/trace"
)

var (
	// Run parameters; each can also come from LOGSIM_<NAME> or a scenario file
	scenarioPath string // Scenario YAML with simulation overrides and catalog
	seed         int64  // Seed for order generation
	days         int    // Number of simulated days
	capacity     int    // Daily picking capacity in units
	workHours    int    // Shift length in hours
	initialStock int    // Starting units per SKU
	reorderPoint int    // Replenish when stock falls below this
	lotSize      int    // Units added per replenishment
	generator    string // Random source: mt19937 or go
	traceLevel   string // Decision trace verbosity
	logLevel     string // Log verbosity level

	// Outputs of the run command
	reportText string // Text report path
	reportCSV  string // CSV report path
	reportPDF  string // PDF report path
	outputJSON string // Full result JSON path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "logistica-sim",
	Short: "Multi-day order fulfillment simulator for a spare-parts distributor",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv()
		setupLogging(cmd.Flags())
	},
}

// runCmd executes the simulation and prints the final report
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fulfillment simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, cat, err := resolveSettings(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		s, err := pipeline.NewSimulator(cfg, cat)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		res, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulated %d days in %s", cfg.Days, time.Since(startTime))

		rep := report.Build(res, time.Now())
		if err := report.WriteText(cmd.OutOrStdout(), rep); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeOutputs(res, rep); err != nil {
			logrus.Fatalf("%v", err)
		}
		if res.Trace != nil {
			summary := trace.Summarize(res.Trace)
			fmt.Fprintf(cmd.OutOrStdout(), "Trace: %d picking decisions (%d deferred), %d vehicles used, mean regret %.1f units\n",
				summary.TotalDecisions, summary.DeferredCount, summary.UniqueVehicles, summary.MeanRegret)
		}

		logrus.Info("Simulation complete.")
	},
}

// writeOutputs saves every report file that was requested.
func writeOutputs(res *pipeline.Result, rep report.Report) error {
	if reportText != "" {
		if err := writeFile(reportText, func(w io.Writer) error { return report.WriteText(w, rep) }); err != nil {
			return err
		}
	}
	if reportCSV != "" {
		if err := writeFile(reportCSV, func(w io.Writer) error { return report.WriteCSV(w, rep) }); err != nil {
			return err
		}
	}
	if reportPDF != "" {
		pdf, err := report.RenderPDF(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportPDF, pdf, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", reportPDF, err)
		}
		logrus.Infof("PDF report written to %s", reportPDF)
	}
	if outputJSON != "" {
		if err := writeFile(outputJSON, func(w io.Writer) error { return writeResultJSON(w, res) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Infof("Wrote %s", path)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSettingsFlags registers the run parameters shared by every subcommand.
func addSettingsFlags(fs *pflag.FlagSet) {
	def := sim.DefaultConfig()
	fs.StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (simulation overrides and catalog)")
	fs.Int64Var(&seed, "seed", *def.Seed, "Seed for order generation")
	fs.IntVar(&days, "days", def.Days, "Number of days to simulate")
	fs.IntVar(&capacity, "capacity", def.PickingCapacity, "Daily picking capacity in units")
	fs.IntVar(&workHours, "work-hours", def.WorkHours, "Shift length in hours (1-24)")
	fs.IntVar(&initialStock, "initial-stock", def.InitialStock, "Starting units per SKU")
	fs.IntVar(&reorderPoint, "reorder-point", def.ReorderPoint, "Replenish SKUs whose stock falls below this")
	fs.IntVar(&lotSize, "lot-size", def.LotSize, "Units added per replenishment")
	fs.StringVar(&generator, "generator", def.Generator, "Random source (mt19937, go)")
	fs.StringVar(&traceLevel, "trace", def.TraceLevel, "Decision trace level (none, decisions)")
	fs.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	addSettingsFlags(rootCmd.PersistentFlags())

	runCmd.Flags().StringVar(&reportText, "report-text", "", "Write the text report to this file")
	runCmd.Flags().StringVar(&reportCSV, "report-csv", "", "Write the CSV report to this file")
	runCmd.Flags().StringVar(&reportPDF, "report-pdf", "", "Write the PDF report to this file")
	runCmd.Flags().StringVar(&outputJSON, "output-json", "", "Write the full run result as JSON to this file")

	rootCmd.AddCommand(runCmd)
}
