// Package testutil provides shared test infrastructure for the logistics
// simulator: the golden run dataset and float assertion helpers used across
// sim/ sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_runs.json.
// Values were recorded from accepted runs over the default catalog and must
// be matched exactly, including draws and rounding.
type GoldenDataset struct {
	Runs []GoldenRun `json:"runs"`
}

// GoldenRun is one complete multi-day run.
type GoldenRun struct {
	Name            string             `json:"name"`
	Seed            int64              `json:"seed"`
	Days            int                `json:"days"`
	PickingCapacity int                `json:"picking_capacity"`
	DayResults      []GoldenDay        `json:"day_results"`
	Consolidated    GoldenConsolidated `json:"consolidated"`
	Alerts          []string           `json:"alerts"`
	// Recommendations are compared by count only.
	RecommendationCount int `json:"recommendation_count"`
}

// GoldenDay holds the expected outputs of one simulated day.
type GoldenDay struct {
	Day                int              `json:"day"`
	Orders             int              `json:"orders"`
	Requested          int              `json:"requested"`
	Delivered          int              `json:"delivered"`
	Undelivered        int              `json:"undelivered"`
	FirstOrderID       string           `json:"first_order_id"`
	FirstCustomerID    string           `json:"first_customer_id"`
	MostRequestedSKU   string           `json:"most_requested_sku"`
	MostRequestedUnits int              `json:"most_requested_units"`
	Replenished        []string         `json:"replenished"`
	StockAfter         map[string]int   `json:"stock_after"`
	AdmittedIDs        []string         `json:"admitted_ids"`
	DeferredCount      int              `json:"deferred_count"`
	PreparedUnits      int              `json:"prepared_units"`
	DeferredUnits      int              `json:"deferred_units"`
	Routes             []GoldenRoute    `json:"routes"`
	NotTransported     []string         `json:"not_transported"`
	TransportedUnits   int              `json:"transported_units"`
	UntransportedUnits int              `json:"untransported_units"`
	TotalCost          string           `json:"total_cost"` // exact decimal
	Indicators         GoldenIndicators `json:"indicators"`
}

// GoldenRoute is one expected vehicle assignment.
type GoldenRoute struct {
	VehicleID string `json:"vehicle_id"`
	Customer  string `json:"customer"`
	Units     int    `json:"units"`
	Cost      string `json:"cost"` // exact decimal
}

// GoldenIndicators are the expected rounded daily KPIs.
type GoldenIndicators struct {
	OTIF                float64 `json:"otif"`
	FillRate            float64 `json:"fill_rate"`
	BacklogRate         float64 `json:"backlog_rate"`
	PickingProductivity float64 `json:"picking_productivity"`
	FleetUtilization    float64 `json:"fleet_utilization"`
	TransportIndex      float64 `json:"transport_index"`
}

// GoldenConsolidated are the expected multi-day aggregates.
type GoldenConsolidated struct {
	OTIF                float64 `json:"otif"`
	FillRate            float64 `json:"fill_rate"`
	BacklogRate         float64 `json:"backlog_rate"`
	PickingProductivity float64 `json:"picking_productivity"`
	FleetUtilization    float64 `json:"fleet_utilization"`
	Delivered           int     `json:"delivered"`
	Undelivered         int     `json:"undelivered"`
	Orders              int     `json:"orders"`
	Days                int     `json:"days"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_runs.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// GoldenRunByName returns the named run or fails the test.
func GoldenRunByName(t *testing.T, name string) GoldenRun {
	t.Helper()
	for _, run := range LoadGoldenDataset(t).Runs {
		if run.Name == name {
			return run
		}
	}
	t.Fatalf("golden run %q not found", name)
	return GoldenRun{}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
