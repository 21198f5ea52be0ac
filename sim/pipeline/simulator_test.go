package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/alert"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/internal/testutil"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/inventory"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/trace"
)

func configFor(seed int64, days, capacity int) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = &seed
	cfg.Days = days
	cfg.PickingCapacity = capacity
	cfg.StartDate = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	return cfg
}

func mustRun(t *testing.T, cfg sim.Config) *Result {
	t.Helper()
	s, err := NewSimulator(cfg, sim.DefaultCatalog())
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	return res
}

func TestRun_GoldenRuns(t *testing.T) {
	for _, golden := range testutil.LoadGoldenDataset(t).Runs {
		t.Run(golden.Name, func(t *testing.T) {
			// GIVEN the reference configuration for this run
			res := mustRun(t, configFor(golden.Seed, golden.Days, golden.PickingCapacity))

			// THEN every day matches the reference outputs
			require.Len(t, res.Days, len(golden.DayResults))
			for i, g := range golden.DayResults {
				d := res.Days[i]
				assert.Equal(t, g.Day, d.Day)
				assert.Len(t, d.Orders, g.Orders, "day %d orders", g.Day)
				assert.Equal(t, g.Requested, d.Requested, "day %d requested", g.Day)
				assert.Equal(t, g.Delivered, d.Reservation.Delivered, "day %d delivered", g.Day)
				assert.Equal(t, g.Undelivered, d.Reservation.Undelivered, "day %d undelivered", g.Day)
				assert.Equal(t, map[string]int(g.StockAfter), map[string]int(d.StockAfter), "day %d stock", g.Day)

				replenished := make([]string, 0)
				for _, r := range d.Replenishments {
					replenished = append(replenished, r.SKU)
				}
				assert.Equal(t, g.Replenished, replenished, "day %d replenished", g.Day)

				assert.Equal(t, g.PreparedUnits, d.Batch.AdmittedUnits)
				assert.Equal(t, g.DeferredCount, d.Batch.DeferredCount)
				assert.Len(t, d.Plan.Routes, len(g.Routes))
				assert.True(t, decimal.RequireFromString(g.TotalCost).Equal(d.Plan.TotalCost),
					"day %d cost: got %s want %s", g.Day, d.Plan.TotalCost, g.TotalCost)

				assert.Equal(t, g.Indicators.OTIF, d.Indicators.OTIF, "day %d otif", g.Day)
				assert.Equal(t, g.Indicators.FillRate, d.Indicators.FillRate)
				assert.Equal(t, g.Indicators.BacklogRate, d.Indicators.BacklogRate)
				assert.Equal(t, g.Indicators.PickingProductivity, d.Indicators.PickingProductivity)
				assert.Equal(t, g.Indicators.FleetUtilization, d.Indicators.FleetUtilization, "day %d fleet", g.Day)
				assert.Equal(t, g.Indicators.TransportIndex, d.Indicators.TransportIndex)
			}

			// AND the consolidation, alerts and recommendations match
			c := res.Consolidated
			assert.Equal(t, golden.Consolidated.OTIF, c.OTIF)
			assert.Equal(t, golden.Consolidated.FillRate, c.FillRate)
			assert.Equal(t, golden.Consolidated.BacklogRate, c.BacklogRate)
			assert.Equal(t, golden.Consolidated.PickingProductivity, c.PickingProductivity)
			assert.Equal(t, golden.Consolidated.FleetUtilization, c.FleetUtilization)
			assert.Equal(t, golden.Consolidated.Delivered, c.Delivered)
			assert.Equal(t, golden.Consolidated.Undelivered, c.Undelivered)
			assert.Equal(t, golden.Consolidated.Orders, c.Orders)
			assert.Equal(t, golden.Consolidated.Days, c.Days)
			assert.Equal(t, golden.Alerts, alert.Types(res.Alerts))
			assert.Len(t, res.Recommendations, golden.RecommendationCount)
		})
	}
}

func TestRunDay_ReplayFromSnapshot(t *testing.T) {
	// GIVEN a complete run
	cfg := configFor(42, 3, 1500)
	res := mustRun(t, cfg)

	// WHEN day 3 is replayed alone from the stock left by day 2
	s, err := NewSimulator(cfg, sim.DefaultCatalog())
	require.NoError(t, err)
	snapshot := res.Days[1].StockAfter.Clone()
	replay, next := s.RunDay(3, snapshot, res.Days[2].Orders)

	// THEN it reproduces the original day exactly and leaves the snapshot intact
	assert.Equal(t, res.Days[2].Reservation, replay.Reservation)
	assert.Equal(t, res.Days[2].Indicators, replay.Indicators)
	assert.True(t, res.Days[2].Plan.TotalCost.Equal(replay.Plan.TotalCost))
	assert.Equal(t, res.Days[2].StockAfter, next)
	assert.Equal(t, res.Days[1].StockAfter, snapshot)
}

func TestRunDay_ReplayLeavesTraceUntouched(t *testing.T) {
	// GIVEN a traced run
	cfg := configFor(42, 3, 1500)
	cfg.TraceLevel = string(trace.TraceLevelDecisions)
	s, err := NewSimulator(cfg, sim.DefaultCatalog())
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	pickings, assignments := len(res.Trace.Pickings), len(res.Trace.Assignments)
	before := trace.Summarize(res.Trace)

	// WHEN day 3 is replayed on the same simulator
	replay, _ := s.RunDay(3, res.Days[1].StockAfter.Clone(), res.Days[2].Orders)

	// THEN the replay still reports its decisions but the run trace is unchanged
	assert.Len(t, replay.Batch.Decisions, len(res.Days[2].Orders))
	assert.Len(t, s.Trace().Pickings, pickings)
	assert.Len(t, s.Trace().Assignments, assignments)
	assert.Equal(t, before, trace.Summarize(s.Trace()))
}

func TestRun_Deterministic(t *testing.T) {
	a := mustRun(t, configFor(2024, 6, 900))
	b := mustRun(t, configFor(2024, 6, 900))

	assert.Equal(t, a.RunID, b.RunID)
	assert.Equal(t, a.Consolidated, b.Consolidated)
	for i := range a.Days {
		assert.Equal(t, a.Days[i].Indicators, b.Days[i].Indicators)
		assert.Equal(t, a.Days[i].StockAfter, b.Days[i].StockAfter)
	}
}

func TestRun_RunIDDependsOnParameters(t *testing.T) {
	base := configFor(42, 3, 1500)
	smallLines := base
	smallLines.UnitsPerLine = sim.Range{Min: 1, Max: 2}
	strict := base
	strict.Thresholds.OTIFMin = 99
	later := base
	later.StartDate = base.StartDate.AddDate(0, 0, 7)

	ref := mustRun(t, base).RunID
	tests := []struct {
		name string
		cfg  sim.Config
	}{
		{"capacity", configFor(42, 3, 300)},
		{"units per line", smallLines},
		{"thresholds", strict},
		{"start date", later},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, ref, mustRun(t, tt.cfg).RunID)
		})
	}
}

func TestRun_RunIDDependsOnCatalog(t *testing.T) {
	// GIVEN the same configuration over a catalog with one more destination
	cfg := configFor(42, 3, 1500)
	cat := sim.DefaultCatalog()
	cat.Distances["Puerto Callao"] = 20

	s, err := NewSimulator(cfg, cat)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)

	// THEN the run id changes with it
	assert.NotEqual(t, mustRun(t, cfg).RunID, res.RunID)
}

func TestRun_NoSeed_RandomRunID(t *testing.T) {
	cfg := configFor(0, 1, 1500)
	cfg.Seed = nil

	a := mustRun(t, cfg)
	b := mustRun(t, cfg)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Len(t, a.Days, 1)
}

func TestRun_Invariants(t *testing.T) {
	res := mustRun(t, configFor(99, 10, 700))

	for _, d := range res.Days {
		// stock never negative
		for sku, qty := range d.StockAfter {
			assert.GreaterOrEqual(t, qty, 0, "day %d sku %s", d.Day, sku)
		}
		// units balance through every stage
		assert.Equal(t, d.Requested, d.Reservation.Delivered+d.Reservation.Undelivered)
		assert.Equal(t, d.Requested, d.Batch.AdmittedUnits+d.Batch.DeferredUnits)
		assert.Equal(t, d.Batch.AdmittedUnits, d.Plan.TransportedUnits+d.Plan.UntransportedUnits)
		assert.LessOrEqual(t, d.Batch.AdmittedUnits, 700)
		assert.Equal(t, d.Orders[0].CreatedAt, d.Date)
	}
	assert.Len(t, res.FinalStock, 8)
}

func TestRun_DailyAlertsUseThresholds(t *testing.T) {
	cfg := configFor(42, 3, 1500)
	cfg.Thresholds = sim.Thresholds{OTIFMin: 0, FillRateMin: 0, BacklogMax: 100, FleetUtilizationMax: 100, ProductivityMin: 0}

	res := mustRun(t, cfg)

	assert.Empty(t, res.Alerts)
	for _, d := range res.Days {
		assert.Empty(t, d.Alerts)
	}
}

func TestRun_TraceRecordsEveryDecision(t *testing.T) {
	// GIVEN tracing enabled
	cfg := configFor(42, 3, 300)
	cfg.TraceLevel = string(trace.TraceLevelDecisions)

	res := mustRun(t, cfg)

	// THEN one picking record per order and one assignment per customer group
	require.NotNil(t, res.Trace)
	orders, groups := 0, 0
	for _, d := range res.Days {
		orders += len(d.Orders)
		groups += len(d.Plan.Routes) + len(d.Plan.NotTransported)
	}
	assert.Len(t, res.Trace.Pickings, orders)
	assert.Len(t, res.Trace.Assignments, groups)

	summary := trace.Summarize(res.Trace)
	assert.Equal(t, orders, summary.AdmittedCount+summary.DeferredCount)
}

func TestRun_LeadTimeIsConfigOnly(t *testing.T) {
	base := configFor(42, 3, 1500)
	longer := base
	longer.LeadTimeHours = 96

	a, b := mustRun(t, base), mustRun(t, longer)

	assert.Equal(t, a.Consolidated, b.Consolidated)
	assert.Equal(t, 96, b.Config.LeadTimeHours)
}

func TestRun_TraceOffByDefault(t *testing.T) {
	res := mustRun(t, configFor(42, 1, 1500))
	assert.Nil(t, res.Trace)
}

func TestRun_Twice_Errors(t *testing.T) {
	s, err := NewSimulator(configFor(42, 1, 1500), sim.DefaultCatalog())
	require.NoError(t, err)
	_, err = s.Run()
	require.NoError(t, err)
	_, err = s.Run()
	assert.Error(t, err)
}

func TestNewSimulator_RejectsInvalidInputs(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.PickingCapacity = 0
	_, err := NewSimulator(cfg, sim.DefaultCatalog())
	assert.ErrorContains(t, err, "PickingCapacity")

	cat := sim.DefaultCatalog()
	cat.Vehicles = nil
	_, err = NewSimulator(sim.DefaultConfig(), cat)
	assert.ErrorContains(t, err, "invalid catalog")
}

func TestRunDay_EmptyDay(t *testing.T) {
	s, err := NewSimulator(sim.DefaultConfig(), sim.DefaultCatalog())
	require.NoError(t, err)
	ledger := inventory.Initialize(sim.DefaultCatalog().SKUs, 200)

	dr, next := s.RunDay(1, ledger, nil)

	assert.Equal(t, 0, dr.Requested)
	assert.Equal(t, 0.0, dr.Indicators.OTIF)
	assert.Empty(t, dr.Plan.Routes)
	assert.Equal(t, ledger, next)
}
