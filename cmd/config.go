package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/pipeline"
)

// configCmd prints the effective configuration after every override
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and print the effective simulation configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := resolveSettings(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeConfigYAML(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func writeConfigYAML(w io.Writer, cfg sim.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]sim.Config{"simulation": cfg}); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// writeResultJSON dumps the complete run result.
func writeResultJSON(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
