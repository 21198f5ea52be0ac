// Package kpi computes the daily logistics indicators and their multi-day
// consolidation. All percentages are on a 0-100 scale and every published
// value is rounded with Round2.
package kpi

import "github.com/sirupsen/logrus"

// Inputs are the raw counts of one simulated day.
type Inputs struct {
	Day             int
	Orders          int
	Requested       int
	Delivered       int
	Prepared        int     // units admitted to picking
	Transported     int     // units with a route
	Untransported   int     // admitted units left without a vehicle
	MeanUtilization float64 // mean route utilization, percent
	WorkHours       int
}

// Daily holds one day's rounded indicators plus the raw counts they came from.
type Daily struct {
	Day                 int     `json:"day"`
	OTIF                float64 `json:"otif"`
	FillRate            float64 `json:"fill_rate"`
	BacklogRate         float64 `json:"backlog_rate"`
	PickingProductivity float64 `json:"picking_productivity"`
	FleetUtilization    float64 `json:"fleet_utilization"`
	TransportIndex      float64 `json:"transport_index"`
	Orders              int     `json:"orders"`
	Requested           int     `json:"requested"`
	Delivered           int     `json:"delivered"`
	Undelivered         int     `json:"undelivered"`
	Untransported       int     `json:"untransported"`
}

// ComputeDaily derives the indicators for one day.
//
// OTIF approximates on-time-in-full as the fill rate: 0 when there are no
// orders or no requested units, capped at 100. Rates with a zero denominator
// are 0. Productivity is prepared units per work hour.
func ComputeDaily(in Inputs) Daily {
	undelivered := in.Requested - in.Delivered

	otif := 0.0
	if in.Orders > 0 && in.Requested > 0 {
		otif = min(percent(in.Delivered, in.Requested), 100)
	}
	fillRate, backlogRate := 0.0, 0.0
	if in.Requested > 0 {
		fillRate = percent(in.Delivered, in.Requested)
		backlogRate = percent(undelivered, in.Requested)
	}
	productivity := 0.0
	if in.WorkHours > 0 {
		productivity = float64(in.Prepared) / float64(in.WorkHours)
	}
	transportIndex := 0.0
	if in.Prepared > 0 {
		transportIndex = percent(in.Transported, in.Prepared)
	}

	d := Daily{
		Day:                 in.Day,
		OTIF:                Round2(otif),
		FillRate:            Round2(fillRate),
		BacklogRate:         Round2(backlogRate),
		PickingProductivity: Round2(productivity),
		FleetUtilization:    Round2(in.MeanUtilization),
		TransportIndex:      Round2(transportIndex),
		Orders:              in.Orders,
		Requested:           in.Requested,
		Delivered:           in.Delivered,
		Undelivered:         undelivered,
		Untransported:       in.Untransported,
	}
	logrus.Debugf("[day %d] indicators: otif=%.2f fill=%.2f backlog=%.2f prod=%.2f fleet=%.2f transport=%.2f",
		d.Day, d.OTIF, d.FillRate, d.BacklogRate, d.PickingProductivity, d.FleetUtilization, d.TransportIndex)
	return d
}

func percent(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
