package transport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/demand"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/internal/testutil"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/picking"
)

func mkOrder(id, customer string, units int) sim.Order {
	return sim.Order{ID: id, CustomerID: customer, Lines: []sim.OrderLine{{SKU: "A", Quantity: units}}}
}

func testFleet() []sim.Vehicle {
	return []sim.Vehicle{
		{ID: "SMALL", Capacity: 100, CostPerDistance: decimal.RequireFromString("2.5")},
		{ID: "BIG", Capacity: 300, CostPerDistance: decimal.RequireFromString("4")},
		{ID: "MID", Capacity: 200, CostPerDistance: decimal.RequireFromString("3")},
	}
}

func testCustomers() map[string]sim.Customer {
	return map[string]sim.Customer{
		"C1": {ID: "C1", Name: "North Mine"},
		"C2": {ID: "C2", Name: "South Depot"},
	}
}

func TestGroupByCustomer_FirstAppearanceOrder(t *testing.T) {
	groups := GroupByCustomer([]sim.Order{
		mkOrder("O1", "C2", 10),
		mkOrder("O2", "C1", 5),
		mkOrder("O3", "C2", 7),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "C2", groups[0].CustomerID)
	assert.Equal(t, 17, groups[0].Units)
	assert.Len(t, groups[0].Orders, 2)
	assert.Equal(t, "C1", groups[1].CustomerID)
}

func TestPlanRoutes_FirstFitLargestFirst(t *testing.T) {
	// GIVEN a 90-unit group that every vehicle could carry
	orders := []sim.Order{mkOrder("O1", "C1", 90)}

	// WHEN planned
	plan := PlanRoutes(1, orders, testFleet(), map[string]int{"North Mine": 10}, testCustomers())

	// THEN the largest vehicle is chosen, not the tightest
	require.Len(t, plan.Routes, 1)
	r := plan.Routes[0]
	assert.Equal(t, "BIG", r.VehicleID)
	assert.Equal(t, 30.0, r.Utilization)
	assert.Equal(t, "North Mine", r.Customer)
	assert.True(t, r.TotalCost.Equal(decimal.NewFromInt(40)), "cost %s", r.TotalCost)
	assert.Equal(t, []string{"O1"}, r.OrderIDs)

	// AND the assignment records the counterfactual best fit
	require.Len(t, plan.Assignments, 1)
	assert.Len(t, plan.Assignments[0].Candidates, 3)
	assert.Equal(t, 200, plan.Assignments[0].Regret) // slack 210 vs 10
}

func TestPlanRoutes_VehiclesReusable(t *testing.T) {
	// GIVEN two customers that both need the big vehicle
	orders := []sim.Order{mkOrder("O1", "C1", 250), mkOrder("O2", "C2", 260)}

	plan := PlanRoutes(1, orders, testFleet(), map[string]int{"North Mine": 10, "South Depot": 20}, testCustomers())

	// THEN both get a route on the same category
	require.Len(t, plan.Routes, 2)
	assert.Equal(t, "BIG", plan.Routes[0].VehicleID)
	assert.Equal(t, "BIG", plan.Routes[1].VehicleID)
	assert.Equal(t, 510, plan.TransportedUnits)
	assert.True(t, plan.TotalCost.Equal(decimal.NewFromInt(120)))
}

func TestPlanRoutes_OversizedGroupNotTransported(t *testing.T) {
	// GIVEN one group above every capacity and one that fits
	orders := []sim.Order{
		mkOrder("O1", "C1", 200),
		mkOrder("O2", "C1", 150),
		mkOrder("O3", "C2", 50),
	}

	plan := PlanRoutes(2, orders, testFleet(), map[string]int{"North Mine": 10, "South Depot": 20}, testCustomers())

	// THEN the oversized group only appears in NotTransported
	require.Len(t, plan.NotTransported, 1)
	assert.Equal(t, "C1", plan.NotTransported[0].CustomerID)
	assert.Equal(t, 350, plan.UntransportedUnits)
	require.Len(t, plan.Routes, 1)
	assert.Equal(t, "C2", plan.Routes[0].CustomerID)
	assert.Equal(t, 50, plan.TransportedUnits)
	assert.Equal(t, 1, plan.RouteCount)
	assert.Equal(t, "", plan.Assignments[0].VehicleID)
}

func TestPlanRoutes_DefaultDistanceAndUnknownCustomer(t *testing.T) {
	orders := []sim.Order{mkOrder("O1", "C9", 10)}

	plan := PlanRoutes(1, orders, testFleet(), map[string]int{}, testCustomers())

	require.Len(t, plan.Routes, 1)
	assert.Equal(t, sim.UnknownName, plan.Routes[0].Customer)
	assert.Equal(t, DefaultDistance, plan.Routes[0].Distance)
	assert.True(t, plan.Routes[0].TotalCost.Equal(decimal.NewFromInt(400)))
}

func TestPlanRoutes_EmptyInput(t *testing.T) {
	plan := PlanRoutes(3, nil, testFleet(), nil, nil)

	assert.Equal(t, 3, plan.Day)
	assert.Empty(t, plan.Routes)
	assert.Empty(t, plan.NotTransported)
	assert.Equal(t, 0.0, plan.MeanUtilization)
	assert.True(t, plan.TotalCost.IsZero())
}

func TestPlanRoutes_EqualCapacityKeepsFleetOrder(t *testing.T) {
	fleet := []sim.Vehicle{
		{ID: "FIRST", Capacity: 100, CostPerDistance: decimal.NewFromInt(1)},
		{ID: "SECOND", Capacity: 100, CostPerDistance: decimal.NewFromInt(2)},
	}
	plan := PlanRoutes(1, []sim.Order{mkOrder("O1", "C1", 10)}, fleet, nil, testCustomers())
	assert.Equal(t, "FIRST", plan.Routes[0].VehicleID)
}

func TestPlanRoutes_UtilizationBounded(t *testing.T) {
	cat := sim.DefaultCatalog()
	seed := int64(99)
	dm, err := demand.Generate(demand.DefaultSpec(15, &seed), cat.Customers, cat.SKUs)
	require.NoError(t, err)

	for _, day := range dm.Days() {
		batch := picking.Allocate(day, dm[day], 1500, cat.Tiers)
		plan := PlanRoutes(day, batch.Admitted, cat.Vehicles, cat.Distances, cat.CustomerIndex())

		routed := make(map[string]bool)
		for _, r := range plan.Routes {
			assert.GreaterOrEqual(t, r.Utilization, 0.0)
			assert.LessOrEqual(t, r.Utilization, 100.0)
			routed[r.CustomerID] = true
		}
		for _, g := range plan.NotTransported {
			assert.False(t, routed[g.CustomerID], "day %d: %s both routed and not transported", day, g.CustomerID)
		}
		assert.Equal(t, batch.AdmittedUnits, plan.TransportedUnits+plan.UntransportedUnits)
	}
}

func TestPlanRoutes_GoldenRuns(t *testing.T) {
	cat := sim.DefaultCatalog()
	for _, golden := range testutil.LoadGoldenDataset(t).Runs {
		t.Run(golden.Name, func(t *testing.T) {
			seed := golden.Seed
			dm, err := demand.Generate(demand.DefaultSpec(golden.Days, &seed), cat.Customers, cat.SKUs)
			require.NoError(t, err)

			for _, g := range golden.DayResults {
				batch := picking.Allocate(g.Day, dm[g.Day], golden.PickingCapacity, cat.Tiers)
				plan := PlanRoutes(g.Day, batch.Admitted, cat.Vehicles, cat.Distances, cat.CustomerIndex())

				require.Len(t, plan.Routes, len(g.Routes), "day %d routes", g.Day)
				for i, want := range g.Routes {
					got := plan.Routes[i]
					assert.Equal(t, want.VehicleID, got.VehicleID)
					assert.Equal(t, want.Customer, got.Customer)
					assert.Equal(t, want.Units, got.Units)
					assert.True(t, decimal.RequireFromString(want.Cost).Equal(got.TotalCost),
						"day %d route %d cost: got %s want %s", g.Day, i, got.TotalCost, want.Cost)
				}
				notTransported := make([]string, 0)
				for _, nt := range plan.NotTransported {
					notTransported = append(notTransported, nt.CustomerID)
				}
				assert.Equal(t, g.NotTransported, notTransported)
				assert.Equal(t, g.TransportedUnits, plan.TransportedUnits)
				assert.Equal(t, g.UntransportedUnits, plan.UntransportedUnits)
				assert.True(t, decimal.RequireFromString(g.TotalCost).Equal(plan.TotalCost),
					"day %d total cost: got %s want %s", g.Day, plan.TotalCost, g.TotalCost)
				testutil.AssertFloat64Equal(t, "mean utilization", g.Indicators.FleetUtilization, plan.MeanUtilization, 1e-2)
			}
		})
	}
}
