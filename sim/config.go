package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim/trace"
)

// Range is an inclusive integer interval used for demand draws.
type Range struct {
	Min int `json:"min" yaml:"min" validate:"gt=0"`
	Max int `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// Thresholds are the alert limits. Percentages are in [0, 100].
type Thresholds struct {
	OTIFMin             float64 `json:"otif_min" yaml:"otif_min" validate:"gte=0,lte=100"`
	FillRateMin         float64 `json:"fill_rate_min" yaml:"fill_rate_min" validate:"gte=0,lte=100"`
	BacklogMax          float64 `json:"backlog_max" yaml:"backlog_max" validate:"gte=0,lte=100"`
	FleetUtilizationMax float64 `json:"fleet_utilization_max" yaml:"fleet_utilization_max" validate:"gte=0,lte=100"`
	ProductivityMin     float64 `json:"productivity_min" yaml:"productivity_min" validate:"gte=0"` // units per hour
}

// DefaultThresholds returns the reference alert limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OTIFMin:             95.0,
		FillRateMin:         96.0,
		BacklogMax:          5.0,
		FleetUtilizationMax: 85.0,
		ProductivityMin:     150.0,
	}
}

// Config groups every run parameter. It is built explicitly (DefaultConfig,
// then overrides) and passed into the pipeline; nothing reads globals.
type Config struct {
	Seed          *int64     `json:"seed,omitempty" yaml:"seed,omitempty"` // nil draws a time-based seed
	Days          int        `json:"days" yaml:"days" validate:"gt=0"`
	OrdersPerDay  Range      `json:"orders_per_day" yaml:"orders_per_day"`
	LinesPerOrder Range      `json:"lines_per_order" yaml:"lines_per_order"`
	UnitsPerLine  Range      `json:"units_per_line" yaml:"units_per_line"`
	StartDate     time.Time  `json:"start_date" yaml:"start_date,omitempty"` // zero means today
	Generator     string     `json:"generator" yaml:"generator" validate:"omitempty,oneof=mt19937 go"`
	TraceLevel    string     `json:"trace_level" yaml:"trace_level"`
	Thresholds    Thresholds `json:"thresholds" yaml:"thresholds"`

	PickingCapacity int `json:"picking_capacity" yaml:"picking_capacity" validate:"gt=0"` // units per day
	WorkHours       int `json:"work_hours" yaml:"work_hours" validate:"gte=1,lte=24"`
	InitialStock    int `json:"initial_stock" yaml:"initial_stock" validate:"gt=0,gtefield=LotSize"`
	ReorderPoint    int `json:"reorder_point" yaml:"reorder_point" validate:"gte=0,ltfield=InitialStock"`
	LotSize         int `json:"lot_size" yaml:"lot_size" validate:"gt=0"`
	LeadTimeHours   int `json:"lead_time_hours" yaml:"lead_time_hours" validate:"gt=0"` // hours; carried in the config only
}

// DefaultConfig returns the reference run: seed 42, three days, 1500 units of
// daily picking capacity over an 8 hour shift.
func DefaultConfig() Config {
	seed := int64(42)
	return Config{
		Seed:            &seed,
		Days:            3,
		OrdersPerDay:    Range{Min: 10, Max: 15},
		LinesPerOrder:   Range{Min: 1, Max: 3},
		UnitsPerLine:    Range{Min: 5, Max: 50},
		Generator:       GeneratorMT19937,
		TraceLevel:      string(trace.TraceLevelNone),
		Thresholds:      DefaultThresholds(),
		PickingCapacity: 1500,
		WorkHours:       8,
		InitialStock:    200,
		ReorderPoint:    50,
		LotSize:         100,
		LeadTimeHours:   48,
	}
}

var validate = validator.New()

// Validate reports the structural errors that must stop a run before the
// pipeline starts.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid simulation config: %s=%v violates %s", fe.Namespace(), fe.Value(), constraint(fe))
		}
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("invalid simulation config: unknown trace level %q; valid: none, decisions", c.TraceLevel)
	}
	return nil
}

// constraint renders a validator tag as a short readable rule.
func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "> " + fe.Param()
	case "gte":
		return ">= " + fe.Param()
	case "lt":
		return "< " + fe.Param()
	case "lte":
		return "<= " + fe.Param()
	case "gtefield":
		return ">= " + fe.Param()
	case "ltfield":
		return "< " + fe.Param()
	case "oneof":
		return "one of [" + fe.Param() + "]"
	default:
		return fe.Tag()
	}
}
