package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions      int            `json:"total_decisions"`
	AdmittedCount       int            `json:"admitted_count"`
	DeferredCount       int            `json:"deferred_count"`
	MeanRegret          float64        `json:"mean_regret"`
	MaxRegret           int            `json:"max_regret"`
	UniqueVehicles      int            `json:"unique_vehicles"`
	VehicleDistribution map[string]int `json:"vehicle_distribution"` // vehicle ID → routes assigned
	Unassigned          int            `json:"unassigned"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields). Regret statistics
// cover assigned groups only.
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		VehicleDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Pickings)
	for _, p := range st.Pickings {
		if p.Admitted {
			summary.AdmittedCount++
		} else {
			summary.DeferredCount++
		}
	}

	assigned, totalRegret := 0, 0
	for _, a := range st.Assignments {
		if a.ChosenVehicle == "" {
			summary.Unassigned++
			continue
		}
		assigned++
		summary.VehicleDistribution[a.ChosenVehicle]++
		totalRegret += a.Regret
		summary.MaxRegret = max(summary.MaxRegret, a.Regret)
	}
	if assigned > 0 {
		summary.MeanRegret = float64(totalRegret) / float64(assigned)
	}

	summary.UniqueVehicles = len(summary.VehicleDistribution)

	return summary
}
