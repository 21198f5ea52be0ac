package demand

import "github.com/TRABAJOSUNI2025/logistica-sim/sim"

// DaySummary is the per-day demand digest shown by the demand command.
type DaySummary struct {
	Day                int    `json:"day"`
	Orders             int    `json:"orders"`
	Units              int    `json:"units"`
	MostRequestedSKU   string `json:"most_requested_sku"`
	MostRequestedUnits int    `json:"most_requested_units"`
}

// Summarize digests every day of dm in ascending day order.
func Summarize(dm sim.DayMap) []DaySummary {
	days := dm.Days()
	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		orders := dm[day]
		sku, units := sim.MostRequestedSKU(orders)
		out = append(out, DaySummary{
			Day:                day,
			Orders:             len(orders),
			Units:              sim.TotalUnits(orders),
			MostRequestedSKU:   sku,
			MostRequestedUnits: units,
		})
	}
	return out
}
