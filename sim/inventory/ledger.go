// Package inventory implements the stock ledger: reservation against daily
// orders and reorder-point replenishment. Every operation takes a ledger by
// value and returns a new one, so the ledger entering any day can be kept as
// a snapshot and replayed.
package inventory

import (
	"maps"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// Ledger maps SKU id to on-hand units. Quantities are never negative.
type Ledger map[string]int

// Clone returns an independent copy.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for sku, qty := range l {
		out[sku] = qty
	}
	return out
}

// Initialize stocks every catalog SKU with qty units.
func Initialize(skus []sim.SKU, qty int) Ledger {
	ledger := make(Ledger, len(skus))
	for _, s := range skus {
		ledger[s.ID] = qty
	}
	return ledger
}

// Transaction is one reserved order line.
type Transaction struct {
	OrderID     string `json:"order_id"`
	Customer    string `json:"customer"` // display name
	SKU         string `json:"sku"`
	Requested   int    `json:"requested"`
	Delivered   int    `json:"delivered"`
	Undelivered int    `json:"undelivered"`
}

// Reservation is the outcome of reserving a day's orders.
type Reservation struct {
	Delivered    int           `json:"delivered"`
	Undelivered  int           `json:"undelivered"`
	Transactions []Transaction `json:"transactions"`
}

// ReserveAndUpdate reserves stock for orders in slice order, lines in line
// order. Each line gets min(on hand, requested); earlier orders therefore win
// under scarcity. SKUs missing from the ledger count as zero stock and stay
// missing. The input ledger is not modified.
func ReserveAndUpdate(ledger Ledger, orders []sim.Order, customers map[string]sim.Customer) (Ledger, Reservation) {
	next := ledger.Clone()
	res := Reservation{Transactions: make([]Transaction, 0, len(orders))}

	for _, o := range orders {
		name := sim.UnknownName
		if c, ok := customers[o.CustomerID]; ok {
			name = c.Name
		}
		for _, line := range o.Lines {
			onHand, known := next[line.SKU]
			if !known {
				logrus.Warnf("order %s references unknown SKU %s; treating as out of stock", o.ID, line.SKU)
			}
			delivered := min(onHand, line.Quantity)
			if known {
				next[line.SKU] = onHand - delivered
			}
			res.Transactions = append(res.Transactions, Transaction{
				OrderID:     o.ID,
				Customer:    name,
				SKU:         line.SKU,
				Requested:   line.Quantity,
				Delivered:   delivered,
				Undelivered: line.Quantity - delivered,
			})
			res.Delivered += delivered
			res.Undelivered += line.Quantity - delivered
		}
	}
	return next, res
}

// Replenishment records one lot added to a SKU.
type Replenishment struct {
	SKU    string `json:"sku"`
	Before int    `json:"before"`
	After  int    `json:"after"`
	Added  int    `json:"added"`
}

// Replenish adds lot units to every catalog SKU strictly below reorderPoint,
// in catalog order. A SKU exactly at the reorder point is left alone.
func Replenish(ledger Ledger, skus []sim.SKU, reorderPoint, lot int) (Ledger, []Replenishment) {
	next := ledger.Clone()
	var log []Replenishment
	for _, s := range skus {
		current := next[s.ID]
		if current >= reorderPoint {
			continue
		}
		next[s.ID] = current + lot
		log = append(log, Replenishment{SKU: s.ID, Before: current, After: current + lot, Added: lot})
	}
	return next, log
}

// StockStatus is one row of the stock report.
type StockStatus struct {
	SKU          string `json:"sku"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity"`
	BelowReorder bool   `json:"below_reorder"`
}

// Status lists catalog SKUs with their on-hand quantity, followed by any
// ledger SKUs the catalog does not describe.
func Status(ledger Ledger, skus []sim.SKU, reorderPoint int) []StockStatus {
	out := make([]StockStatus, 0, len(ledger))
	listed := make(map[string]bool, len(skus))
	for _, s := range skus {
		listed[s.ID] = true
		qty, ok := ledger[s.ID]
		if !ok {
			continue
		}
		out = append(out, StockStatus{SKU: s.ID, Description: s.Description, Quantity: qty, BelowReorder: qty < reorderPoint})
	}
	for _, sku := range slices.Sorted(maps.Keys(ledger)) {
		if listed[sku] {
			continue
		}
		qty := ledger[sku]
		out = append(out, StockStatus{SKU: sku, Description: sim.UnknownName, Quantity: qty, BelowReorder: qty < reorderPoint})
	}
	return out
}
