// Package demand draws the daily customer orders that feed the pipeline.
package demand

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// Generate creates spec.Days days of orders for the given catalogs.
// Deterministic given the same spec, seed and catalog order.
//
// Draws are consumed in a fixed order: per day the order count; per order the
// customer choice and the line count; per line the SKU choice and the
// quantity. Customers and SKUs are chosen by index into the slices, so their
// order is part of the contract.
func Generate(spec *Spec, customers []sim.Customer, skus []sim.SKU) (sim.DayMap, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid demand spec: %w", err)
	}
	days := make(sim.DayMap, spec.Days)
	if spec.Days == 0 {
		return days, nil
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("demand needs at least one customer")
	}
	if len(skus) == 0 {
		return nil, fmt.Errorf("demand needs at least one SKU")
	}

	seed := ResolveSeed(spec.Seed)
	src, err := sim.NewRandomSource(spec.Generator, sim.NewSimulationKey(seed))
	if err != nil {
		return nil, err
	}
	start := spec.Start
	if start.IsZero() {
		start = time.Now()
	}

	for day := 1; day <= spec.Days; day++ {
		count := src.IntRange(spec.OrdersPerDay.Min, spec.OrdersPerDay.Max)
		createdAt := start.AddDate(0, 0, day-1)
		orders := make([]sim.Order, 0, count)
		for seq := 1; seq <= count; seq++ {
			customer := customers[src.IntN(len(customers))]
			lines := make([]sim.OrderLine, src.IntRange(spec.LinesPerOrder.Min, spec.LinesPerOrder.Max))
			for i := range lines {
				sku := skus[src.IntN(len(skus))]
				lines[i] = sim.OrderLine{
					SKU:      sku.ID,
					Quantity: src.IntRange(spec.UnitsPerLine.Min, spec.UnitsPerLine.Max),
				}
			}
			orders = append(orders, sim.Order{
				ID:         sim.OrderID(day, seq),
				CustomerID: customer.ID,
				Lines:      lines,
				CreatedAt:  createdAt,
			})
		}
		days[day] = orders
		logrus.Debugf("[day %d] generated %d orders, %d units", day, len(orders), sim.TotalUnits(orders))
	}
	return days, nil
}

// ResolveSeed returns *seed, or a time-based seed when seed is nil. The drawn
// seed is logged so the run can be replayed with --seed.
func ResolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	drawn := time.Now().UnixNano()
	logrus.Infof("No seed given; using %d", drawn)
	return drawn
}
