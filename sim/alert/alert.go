// Package alert turns indicator values into threshold alerts and a
// deduplicated list of operational recommendations.
package alert

import (
	"fmt"
	"sort"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/kpi"
)

// Alert types.
const (
	TypeOTIFLow         = "OTIF_LOW"
	TypeFillRateLow     = "FILL_RATE_LOW"
	TypeBacklogHigh     = "BACKLOG_HIGH"
	TypeFleetSaturated  = "FLEET_SATURATED"
	TypeProductivityLow = "PRODUCTIVITY_LOW"
)

// Severity levels, highest first.
const (
	SeverityHigh   = "ALTO"
	SeverityMedium = "MEDIO"
	SeverityLow    = "BAJO"
)

// Fixed recommendations attached to each alert type.
const (
	RecOTIF         = "Review picking and transport lead times"
	RecFillRate     = "Review inventory availability"
	RecBacklog      = "Increase picking capacity or reassign resources"
	RecFleet        = "Saturation risk: consider additional fleet"
	RecProductivity = "Review picking processes and staff training"
)

// Heuristic recommendations, triggered below the alert thresholds.
const (
	RecRebalanceZones   = "Rebalance orders across zones to even out load"
	RecOptimizeRoutes   = "Optimize transport routes to improve efficiency"
	RecPeakStaffing     = "Add picking staff during peak hours"
	RecImproveForecasts = "Improve demand forecasting and replenishment"
)

// Heuristic trigger levels.
const (
	backlogHeuristic      = 3.0
	fleetHeuristic        = 80.0
	productivityHeuristic = 180.0
	fillRateHeuristic     = 98.0
)

// Indicators is the subset of KPIs the alert rules look at.
type Indicators struct {
	OTIF                float64 `json:"otif"`
	FillRate            float64 `json:"fill_rate"`
	BacklogRate         float64 `json:"backlog_rate"`
	FleetUtilization    float64 `json:"fleet_utilization"`
	PickingProductivity float64 `json:"picking_productivity"`
}

// FromDaily extracts the alert inputs of one day.
func FromDaily(d kpi.Daily) Indicators {
	return Indicators{
		OTIF:                d.OTIF,
		FillRate:            d.FillRate,
		BacklogRate:         d.BacklogRate,
		FleetUtilization:    d.FleetUtilization,
		PickingProductivity: d.PickingProductivity,
	}
}

// FromConsolidated extracts the alert inputs of a whole run.
func FromConsolidated(c kpi.Consolidated) Indicators {
	return Indicators{
		OTIF:                c.OTIF,
		FillRate:            c.FillRate,
		BacklogRate:         c.BacklogRate,
		FleetUtilization:    c.FleetUtilization,
		PickingProductivity: c.PickingProductivity,
	}
}

// Alert is one threshold violation.
type Alert struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Generate evaluates the five threshold rules in fixed order: OTIF, fill
// rate, backlog, fleet utilization, productivity. Comparisons are strict, so
// a value exactly on its threshold raises nothing.
func Generate(ind Indicators, th sim.Thresholds) []Alert {
	alerts := make([]Alert, 0, 5)
	if ind.OTIF < th.OTIFMin {
		alerts = append(alerts, Alert{
			Type:           TypeOTIFLow,
			Severity:       SeverityHigh,
			Message:        fmt.Sprintf("OTIF low (%.1f%% < %.1f%%)", ind.OTIF, th.OTIFMin),
			Recommendation: RecOTIF,
		})
	}
	if ind.FillRate < th.FillRateMin {
		alerts = append(alerts, Alert{
			Type:           TypeFillRateLow,
			Severity:       SeverityHigh,
			Message:        fmt.Sprintf("Fill rate low (%.1f%% < %.1f%%)", ind.FillRate, th.FillRateMin),
			Recommendation: RecFillRate,
		})
	}
	if ind.BacklogRate > th.BacklogMax {
		alerts = append(alerts, Alert{
			Type:           TypeBacklogHigh,
			Severity:       SeverityMedium,
			Message:        fmt.Sprintf("Backlog high (%.1f%% > %.1f%%)", ind.BacklogRate, th.BacklogMax),
			Recommendation: RecBacklog,
		})
	}
	if ind.FleetUtilization > th.FleetUtilizationMax {
		alerts = append(alerts, Alert{
			Type:           TypeFleetSaturated,
			Severity:       SeverityMedium,
			Message:        fmt.Sprintf("Fleet utilization high (%.1f%% > %.1f%%)", ind.FleetUtilization, th.FleetUtilizationMax),
			Recommendation: RecFleet,
		})
	}
	if ind.PickingProductivity < th.ProductivityMin {
		alerts = append(alerts, Alert{
			Type:           TypeProductivityLow,
			Severity:       SeverityLow,
			Message:        fmt.Sprintf("Productivity low (%.1f units/h < %.1f)", ind.PickingProductivity, th.ProductivityMin),
			Recommendation: RecProductivity,
		})
	}
	return alerts
}

// Recommend merges the alerts' recommendations with the heuristic ones and
// returns them deduplicated in lexicographic order.
func Recommend(alerts []Alert, ind Indicators) []string {
	set := make(map[string]struct{})
	for _, a := range alerts {
		set[a.Recommendation] = struct{}{}
	}
	if ind.BacklogRate > backlogHeuristic {
		set[RecRebalanceZones] = struct{}{}
	}
	if ind.FleetUtilization > fleetHeuristic {
		set[RecOptimizeRoutes] = struct{}{}
	}
	if ind.PickingProductivity < productivityHeuristic {
		set[RecPeakStaffing] = struct{}{}
	}
	if ind.FillRate < fillRateHeuristic {
		set[RecImproveForecasts] = struct{}{}
	}

	recs := make([]string, 0, len(set))
	for r := range set {
		recs = append(recs, r)
	}
	sort.Strings(recs)
	return recs
}

// Types returns the type tag of every alert, in order.
func Types(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Type
	}
	return out
}
