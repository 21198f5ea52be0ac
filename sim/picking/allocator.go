// Package picking admits a day's orders into the warehouse picking batch
// under a daily unit capacity.
package picking

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// Decision captures one admission verdict, in processing order.
type Decision struct {
	OrderID       string   `json:"order_id"`
	CustomerID    string   `json:"customer_id"`
	Tier          sim.Tier `json:"tier"`
	Units         int      `json:"units"`
	RunningBefore int      `json:"running_before"` // admitted units before this order
	Admitted      bool     `json:"admitted"`
	Reason        string   `json:"reason,omitempty"`
}

// Batch is the picking plan for one day. Admitted and Deferred keep the
// priority order in which orders were considered.
type Batch struct {
	Day           int         `json:"day"`
	Admitted      []sim.Order `json:"admitted"`
	Deferred      []sim.Order `json:"deferred"`
	AdmittedUnits int         `json:"admitted_units"`
	DeferredUnits int         `json:"deferred_units"`
	Capacity      int         `json:"capacity"`
	CapacityUsed  int         `json:"capacity_used"`
	AdmittedCount int         `json:"admitted_count"`
	DeferredCount int         `json:"deferred_count"`
	Decisions     []Decision  `json:"decisions"`
}

// Allocate sorts orders by (tier, order id) and admits each whole order while
// the running unit total stays within capacity. It is a single greedy pass:
// once an order is deferred, a later smaller order may still be admitted, but
// nothing already decided is revisited. A nil tiers table uses the reference
// membership; customers missing from the table are tier 3.
func Allocate(day int, orders []sim.Order, capacity int, tiers sim.TierTable) Batch {
	if tiers == nil {
		tiers = sim.DefaultTierTable()
	}

	sorted := append([]sim.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := tiers.TierOf(sorted[i].CustomerID), tiers.TierOf(sorted[j].CustomerID)
		if ti != tj {
			return ti < tj
		}
		return sorted[i].ID < sorted[j].ID
	})

	batch := Batch{
		Day:       day,
		Admitted:  make([]sim.Order, 0, len(sorted)),
		Deferred:  make([]sim.Order, 0),
		Capacity:  capacity,
		Decisions: make([]Decision, 0, len(sorted)),
	}
	for _, o := range sorted {
		units := o.Units()
		tier := tiers.TierOf(o.CustomerID)
		if _, known := tiers[o.CustomerID]; !known {
			logrus.Warnf("[day %d] customer %s has no tier; treating as %s", day, o.CustomerID, tier)
		}
		d := Decision{OrderID: o.ID, CustomerID: o.CustomerID, Tier: tier, Units: units, RunningBefore: batch.AdmittedUnits}
		if batch.AdmittedUnits+units <= capacity {
			d.Admitted = true
			batch.Admitted = append(batch.Admitted, o)
			batch.AdmittedUnits += units
		} else {
			d.Reason = fmt.Sprintf("capacity exceeded: %d+%d > %d", batch.AdmittedUnits, units, capacity)
			batch.Deferred = append(batch.Deferred, o)
			batch.DeferredUnits += units
		}
		batch.Decisions = append(batch.Decisions, d)
	}
	batch.CapacityUsed = batch.AdmittedUnits
	batch.AdmittedCount = len(batch.Admitted)
	batch.DeferredCount = len(batch.Deferred)

	logrus.Debugf("[day %d] picking admitted %d orders (%d/%d units), deferred %d (%d units)",
		day, batch.AdmittedCount, batch.AdmittedUnits, capacity, batch.DeferredCount, batch.DeferredUnits)
	return batch
}

// Productivity returns picked units per work hour, 0 for non-positive hours.
func Productivity(units, hours int) float64 {
	if hours <= 0 {
		return 0
	}
	return float64(units) / float64(hours)
}
