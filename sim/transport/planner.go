// Package transport assigns picked orders to vehicles, one route per
// customer, with a greedy first-fit over the fleet.
package transport

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// DefaultDistance is used for customers missing from the distance table.
const DefaultDistance = 100

// Route is one vehicle trip to one customer.
type Route struct {
	VehicleID       string          `json:"vehicle_id"`
	CustomerID      string          `json:"customer_id"`
	Customer        string          `json:"customer"`
	Units           int             `json:"units"`
	Capacity        int             `json:"capacity"`
	Utilization     float64         `json:"utilization"` // percent of capacity
	Distance        int             `json:"distance"`
	CostPerDistance decimal.Decimal `json:"cost_per_distance"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	OrderIDs        []string        `json:"order_ids"`
}

// CustomerGroup is the admitted orders of one customer.
type CustomerGroup struct {
	CustomerID string      `json:"customer_id"`
	Units      int         `json:"units"`
	Orders     []sim.Order `json:"orders"`
}

// Candidate is a vehicle able to carry a group, with the capacity it would
// leave unused.
type Candidate struct {
	VehicleID string `json:"vehicle_id"`
	Capacity  int    `json:"capacity"`
	Slack     int    `json:"slack"`
}

// Assignment records how one group was placed. Regret is the extra unused
// capacity of the first-fit choice over the tightest feasible vehicle.
type Assignment struct {
	CustomerID string      `json:"customer_id"`
	Units      int         `json:"units"`
	VehicleID  string      `json:"vehicle_id,omitempty"` // empty when unassignable
	Candidates []Candidate `json:"candidates"`
	Regret     int         `json:"regret"`
}

// Plan is the transport outcome for one day.
type Plan struct {
	Day                int             `json:"day"`
	Routes             []Route         `json:"routes"`
	NotTransported     []CustomerGroup `json:"not_transported"`
	TransportedUnits   int             `json:"transported_units"`
	UntransportedUnits int             `json:"untransported_units"`
	RouteCount         int             `json:"route_count"`
	MeanUtilization    float64         `json:"mean_utilization"` // 0 with no routes
	TotalCost          decimal.Decimal `json:"total_cost"`
	Assignments        []Assignment    `json:"assignments"`
}

// GroupByCustomer groups orders by customer id, groups ordered by the first
// appearance of each customer and orders kept in input order.
func GroupByCustomer(orders []sim.Order) []CustomerGroup {
	var groups []CustomerGroup
	index := make(map[string]int)
	for _, o := range orders {
		i, ok := index[o.CustomerID]
		if !ok {
			i = len(groups)
			index[o.CustomerID] = i
			groups = append(groups, CustomerGroup{CustomerID: o.CustomerID})
		}
		groups[i].Orders = append(groups[i].Orders, o)
		groups[i].Units += o.Units()
	}
	return groups
}

// PlanRoutes builds the day's routes from the admitted picking orders.
//
// The fleet is sorted once by capacity, largest first (ties keep fleet
// order), and every customer group takes the first vehicle whose capacity
// covers it. Vehicles are categories, not units: one category may serve any
// number of groups in a day. A group larger than every vehicle is not
// transported at all.
func PlanRoutes(day int, admitted []sim.Order, fleet []sim.Vehicle, distances map[string]int, customers map[string]sim.Customer) Plan {
	plan := Plan{
		Day:            day,
		Routes:         make([]Route, 0),
		NotTransported: make([]CustomerGroup, 0),
		TotalCost:      decimal.Zero,
		Assignments:    make([]Assignment, 0),
	}
	if len(admitted) == 0 {
		return plan
	}

	vehicles := append([]sim.Vehicle(nil), fleet...)
	sort.SliceStable(vehicles, func(i, j int) bool {
		return vehicles[i].Capacity > vehicles[j].Capacity
	})

	totalUtilization := 0.0
	for _, g := range GroupByCustomer(admitted) {
		name := sim.UnknownName
		if c, ok := customers[g.CustomerID]; ok {
			name = c.Name
		}
		distance, ok := distances[name]
		if !ok {
			logrus.Warnf("[day %d] no distance for %q; using %d", day, name, DefaultDistance)
			distance = DefaultDistance
		}

		a := Assignment{CustomerID: g.CustomerID, Units: g.Units, Candidates: make([]Candidate, 0)}
		var chosen *sim.Vehicle
		for i := range vehicles {
			v := &vehicles[i]
			if v.Capacity < g.Units {
				continue
			}
			a.Candidates = append(a.Candidates, Candidate{VehicleID: v.ID, Capacity: v.Capacity, Slack: v.Capacity - g.Units})
			if chosen == nil {
				chosen = v
			}
		}

		if chosen == nil {
			logrus.Warnf("[day %d] %d units for %s exceed every vehicle; not transported", day, g.Units, g.CustomerID)
			plan.NotTransported = append(plan.NotTransported, g)
			plan.UntransportedUnits += g.Units
			plan.Assignments = append(plan.Assignments, a)
			continue
		}

		a.VehicleID = chosen.ID
		a.Regret = a.Candidates[0].Slack - minSlack(a.Candidates)
		plan.Assignments = append(plan.Assignments, a)

		utilization := float64(g.Units) / float64(chosen.Capacity) * 100
		cost := decimal.NewFromInt(int64(distance)).Mul(chosen.CostPerDistance)
		orderIDs := make([]string, len(g.Orders))
		for i, o := range g.Orders {
			orderIDs[i] = o.ID
		}
		plan.Routes = append(plan.Routes, Route{
			VehicleID:       chosen.ID,
			CustomerID:      g.CustomerID,
			Customer:        name,
			Units:           g.Units,
			Capacity:        chosen.Capacity,
			Utilization:     utilization,
			Distance:        distance,
			CostPerDistance: chosen.CostPerDistance,
			TotalCost:       cost,
			OrderIDs:        orderIDs,
		})
		plan.TransportedUnits += g.Units
		plan.TotalCost = plan.TotalCost.Add(cost)
		totalUtilization += utilization
	}

	plan.RouteCount = len(plan.Routes)
	if plan.RouteCount > 0 {
		plan.MeanUtilization = totalUtilization / float64(plan.RouteCount)
	}
	logrus.Debugf("[day %d] transport: %d routes, %d units carried, %d left, cost %s",
		day, plan.RouteCount, plan.TransportedUnits, plan.UntransportedUnits, plan.TotalCost.StringFixed(2))
	return plan
}

func minSlack(cands []Candidate) int {
	best := cands[0].Slack
	for _, c := range cands[1:] {
		best = min(best, c.Slack)
	}
	return best
}
