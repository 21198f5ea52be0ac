// Package pipeline drives a multi-day run: demand, then per day inventory
// reservation, replenishment, picking, transport and indicators, and finally
// consolidation, alerts and recommendations.
package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/alert"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/demand"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/inventory"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/kpi"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/picking"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/trace"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/transport"
)

// DayResult is everything one simulated day produced.
type DayResult struct {
	Day            int                       `json:"day"`
	Date           time.Time                 `json:"date"`
	Orders         []sim.Order               `json:"orders"`
	Requested      int                       `json:"requested"`
	Reservation    inventory.Reservation     `json:"reservation"`
	Replenishments []inventory.Replenishment `json:"replenishments"`
	StockAfter     inventory.Ledger          `json:"stock_after"`
	Batch          picking.Batch             `json:"picking"`
	Plan           transport.Plan            `json:"transport"`
	Indicators     kpi.Daily                 `json:"indicators"`
	Alerts         []alert.Alert             `json:"alerts"`
}

// Result is the outcome of a complete run.
type Result struct {
	RunID           string                  `json:"run_id"`
	Seed            int64                   `json:"seed"` // the seed actually used
	Config          sim.Config              `json:"config"`
	Days            []DayResult             `json:"days"`
	Consolidated    kpi.Consolidated        `json:"consolidated"`
	Alerts          []alert.Alert           `json:"alerts"`
	Recommendations []string                `json:"recommendations"`
	FinalStock      []inventory.StockStatus `json:"final_stock"`
	Trace           *trace.SimulationTrace  `json:"trace,omitempty"`
}

// Simulator runs the pipeline for one configuration and catalog.
type Simulator struct {
	cfg    sim.Config
	cat    sim.Catalog
	index  map[string]sim.Customer
	trace  *trace.SimulationTrace
	hasRun bool
}

// NewSimulator validates cfg and cat and returns a Simulator ready to Run.
func NewSimulator(cfg sim.Config, cat sim.Catalog) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	s := &Simulator{cfg: cfg, cat: cat, index: cat.CustomerIndex()}
	if tc := (trace.TraceConfig{Level: trace.TraceLevel(cfg.TraceLevel)}); tc.Enabled() {
		s.trace = trace.NewSimulationTrace(tc)
	}
	return s, nil
}

// Trace returns the decision trace, or nil when tracing is off.
func (s *Simulator) Trace() *trace.SimulationTrace {
	return s.trace
}

// Run generates demand and executes every day in ascending order, threading
// the stock ledger from one day into the next. It may be called once.
func (s *Simulator) Run() (*Result, error) {
	if s.hasRun {
		return nil, fmt.Errorf("simulator already ran")
	}
	s.hasRun = true

	seed := demand.ResolveSeed(s.cfg.Seed)
	spec := demand.SpecFromConfig(s.cfg)
	spec.Seed = &seed
	orders, err := demand.Generate(spec, s.cat.Customers, s.cat.SKUs)
	if err != nil {
		return nil, fmt.Errorf("generating demand: %w", err)
	}

	res := &Result{
		RunID:  runID(s.cfg, s.cat, seed),
		Seed:   seed,
		Config: s.cfg,
		Days:   make([]DayResult, 0, s.cfg.Days),
		Trace:  s.trace,
	}
	logrus.Infof("Run %s: %d days, seed %d, capacity %d", res.RunID, s.cfg.Days, seed, s.cfg.PickingCapacity)

	ledger := inventory.Initialize(s.cat.SKUs, s.cfg.InitialStock)
	daily := make([]kpi.Daily, 0, s.cfg.Days)
	for day := 1; day <= s.cfg.Days; day++ {
		var dr DayResult
		dr, ledger = s.RunDay(day, ledger, orders[day])
		s.recordDecisions(day, dr.Batch, dr.Plan)
		res.Days = append(res.Days, dr)
		daily = append(daily, dr.Indicators)
	}

	res.Consolidated = kpi.Consolidate(daily)
	ind := alert.FromConsolidated(res.Consolidated)
	res.Alerts = alert.Generate(ind, s.cfg.Thresholds)
	res.Recommendations = alert.Recommend(res.Alerts, ind)
	res.FinalStock = inventory.Status(ledger, s.cat.SKUs, s.cfg.ReorderPoint)

	logrus.Infof("Run %s done: OTIF %.2f%%, %d alerts", res.RunID, res.Consolidated.OTIF, len(res.Alerts))
	return res, nil
}

// RunDay executes one day against the ledger snapshot entering it and
// returns the day's result with the ledger to carry into the next day.
// Neither the input ledger nor the simulator's trace is modified, so any day
// can be replayed in isolation.
//
// Picking works on all of the day's orders, independent of what the
// reservation could serve.
func (s *Simulator) RunDay(day int, ledger inventory.Ledger, orders []sim.Order) (DayResult, inventory.Ledger) {
	afterReserve, reservation := inventory.ReserveAndUpdate(ledger, orders, s.index)
	next, replenished := inventory.Replenish(afterReserve, s.cat.SKUs, s.cfg.ReorderPoint, s.cfg.LotSize)

	batch := picking.Allocate(day, orders, s.cfg.PickingCapacity, s.cat.Tiers)
	plan := transport.PlanRoutes(day, batch.Admitted, s.cat.Vehicles, s.cat.Distances, s.index)

	requested := sim.TotalUnits(orders)
	daily := kpi.ComputeDaily(kpi.Inputs{
		Day:             day,
		Orders:          len(orders),
		Requested:       requested,
		Delivered:       reservation.Delivered,
		Prepared:        batch.AdmittedUnits,
		Transported:     plan.TransportedUnits,
		Untransported:   plan.UntransportedUnits,
		MeanUtilization: plan.MeanUtilization,
		WorkHours:       s.cfg.WorkHours,
	})

	dr := DayResult{
		Day:            day,
		Orders:         orders,
		Requested:      requested,
		Reservation:    reservation,
		Replenishments: replenished,
		StockAfter:     next.Clone(),
		Batch:          batch,
		Plan:           plan,
		Indicators:     daily,
		Alerts:         alert.Generate(alert.FromDaily(daily), s.cfg.Thresholds),
	}
	if len(orders) > 0 {
		dr.Date = orders[0].CreatedAt
	}
	if dr.Replenishments == nil {
		dr.Replenishments = make([]inventory.Replenishment, 0)
	}
	return dr, next
}

func (s *Simulator) recordDecisions(day int, batch picking.Batch, plan transport.Plan) {
	if s.trace == nil {
		return
	}
	for _, d := range batch.Decisions {
		s.trace.RecordPicking(trace.PickingRecord{
			Day:           day,
			OrderID:       d.OrderID,
			CustomerID:    d.CustomerID,
			Tier:          int(d.Tier),
			Units:         d.Units,
			RunningBefore: d.RunningBefore,
			Admitted:      d.Admitted,
			Reason:        d.Reason,
		})
	}
	for _, a := range plan.Assignments {
		cands := make([]trace.VehicleCandidate, len(a.Candidates))
		for i, c := range a.Candidates {
			cands[i] = trace.VehicleCandidate{VehicleID: c.VehicleID, Capacity: c.Capacity, Slack: c.Slack}
		}
		s.trace.RecordAssignment(trace.AssignmentRecord{
			Day:           day,
			CustomerID:    a.CustomerID,
			Units:         a.Units,
			ChosenVehicle: a.VehicleID,
			Candidates:    cands,
			Regret:        a.Regret,
		})
	}
}

// runID is stable for seeded runs of the same configuration and catalog and
// random otherwise.
func runID(cfg sim.Config, cat sim.Catalog, seed int64) string {
	if cfg.Seed == nil {
		return uuid.New().String()
	}
	cfg.Seed = &seed
	params, err := json.Marshal(struct {
		Config  sim.Config  `json:"config"`
		Catalog sim.Catalog `json:"catalog"`
	}{cfg, cat})
	if err != nil {
		logrus.Warnf("Cannot derive a stable run id: %v", err)
		return uuid.New().String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, append([]byte("logistica-sim/"), params...)).String()
}
