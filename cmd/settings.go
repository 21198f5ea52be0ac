package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// envPrefix namespaces environment overrides: LOGSIM_SEED, LOGSIM_DAYS,
// LOGSIM_INITIAL_STOCK and so on.
const envPrefix = "LOGSIM"

// loadDotEnv reads .env into the process environment when present.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("Ignoring unreadable .env: %v", err)
	}
}

// newViper binds every flag of fs to viper with the LOGSIM_ environment
// prefix. A key counts as set when its flag was given or its variable exists.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return v, nil
}

// resolveSettings builds the effective configuration and catalog.
// Precedence: flag > environment > scenario file > defaults.
func resolveSettings(flags *pflag.FlagSet) (sim.Config, sim.Catalog, error) {
	v, err := newViper(flags)
	if err != nil {
		return sim.Config{}, sim.Catalog{}, err
	}

	cfg, cat := sim.DefaultConfig(), sim.DefaultCatalog()
	if path := v.GetString("scenario"); path != "" {
		if cfg, cat, err = loadScenario(path); err != nil {
			return sim.Config{}, sim.Catalog{}, err
		}
		logrus.Infof("Loaded scenario %s", path)
	}

	if v.IsSet("seed") {
		s := v.GetInt64("seed")
		cfg.Seed = &s
	}
	overrideInt(v, "days", &cfg.Days)
	overrideInt(v, "capacity", &cfg.PickingCapacity)
	overrideInt(v, "work-hours", &cfg.WorkHours)
	overrideInt(v, "initial-stock", &cfg.InitialStock)
	overrideInt(v, "reorder-point", &cfg.ReorderPoint)
	overrideInt(v, "lot-size", &cfg.LotSize)
	overrideString(v, "generator", &cfg.Generator)
	overrideString(v, "trace", &cfg.TraceLevel)

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, sim.Catalog{}, err
	}
	if err := cat.Validate(); err != nil {
		return sim.Config{}, sim.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return cfg, cat, nil
}

func overrideInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

// setupLogging applies the --log level (or LOGSIM_LOG).
func setupLogging(flags *pflag.FlagSet) {
	level := logLevel
	if v, err := newViper(flags); err == nil {
		level = v.GetString("log")
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
}
