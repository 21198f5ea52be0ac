package demand

import (
	"fmt"
	"time"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// Spec describes how orders are drawn.
type Spec struct {
	Days          int
	Seed          *int64 // nil draws a time-based seed
	Generator     string // sim.GeneratorMT19937 (default) or sim.GeneratorGo
	OrdersPerDay  sim.Range
	LinesPerOrder sim.Range
	UnitsPerLine  sim.Range
	Start         time.Time // creation timestamp of day 1; zero means now
}

// DefaultSpec returns the reference ranges: 10-15 orders a day, 1-3 lines an
// order and 5-50 units a line.
func DefaultSpec(days int, seed *int64) *Spec {
	return &Spec{
		Days:          days,
		Seed:          seed,
		Generator:     sim.GeneratorMT19937,
		OrdersPerDay:  sim.Range{Min: 10, Max: 15},
		LinesPerOrder: sim.Range{Min: 1, Max: 3},
		UnitsPerLine:  sim.Range{Min: 5, Max: 50},
	}
}

// SpecFromConfig lifts the demand parameters out of a run configuration.
func SpecFromConfig(cfg sim.Config) *Spec {
	return &Spec{
		Days:          cfg.Days,
		Seed:          cfg.Seed,
		Generator:     cfg.Generator,
		OrdersPerDay:  cfg.OrdersPerDay,
		LinesPerOrder: cfg.LinesPerOrder,
		UnitsPerLine:  cfg.UnitsPerLine,
		Start:         cfg.StartDate,
	}
}

// Validate checks day count, ranges and generator name.
func (s *Spec) Validate() error {
	if s.Days < 0 {
		return fmt.Errorf("days must be non-negative, got %d", s.Days)
	}
	if !sim.IsValidGenerator(s.Generator) {
		return fmt.Errorf("unknown generator %q; valid: mt19937, go", s.Generator)
	}
	if err := validateRange("orders_per_day", s.OrdersPerDay); err != nil {
		return err
	}
	if err := validateRange("lines_per_order", s.LinesPerOrder); err != nil {
		return err
	}
	return validateRange("units_per_line", s.UnitsPerLine)
}

func validateRange(name string, r sim.Range) error {
	if r.Min <= 0 {
		return fmt.Errorf("%s.min must be positive, got %d", name, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s.max (%d) must be >= min (%d)", name, r.Max, r.Min)
	}
	return nil
}
