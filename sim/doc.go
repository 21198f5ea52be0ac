// Package sim holds the shared domain model of the fulfillment simulator:
// catalog data, customer tiers, orders, run configuration and seeded random
// sources.
//
// # Reading Guide
//
// Start with these files to understand the data that flows through a run:
//   - catalog.go: SKUs, customers, vehicle categories and road distances
//   - order.go: Order, OrderLine and the per-day DayMap
//   - config.go: Config, Thresholds and their validation rules
//
// # Architecture
//
// Each daily stage lives in its own sub-package and only depends on sim:
//   - sim/demand/: seeded order generation
//   - sim/inventory/: stock ledger, reservation and replenishment
//   - sim/picking/: capacity-bounded, tier-ordered order admission
//   - sim/transport/: first-fit route planning and cost
//   - sim/kpi/: daily and consolidated indicators
//   - sim/alert/: threshold alerts and recommendations
//   - sim/trace/: decision trace recording
//
// sim/pipeline wires the stages into the day loop and sim/report renders the
// final result as text, CSV, JSON or PDF.
//
// # Determinism
//
// Given a seed and a generator name, NewRandomSource yields the same draw
// sequence on every platform. All other stages are pure functions of their
// inputs, so a seeded run is fully reproducible.
package sim
