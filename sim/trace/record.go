// Package trace records the per-order and per-customer decisions of a
// simulation run for later analysis.
// It has no dependencies on sim/ or its sub-packages and stores pure data types.
package trace

// PickingRecord captures one picking admission verdict.
type PickingRecord struct {
	Day           int    `json:"day"`
	OrderID       string `json:"order_id"`
	CustomerID    string `json:"customer_id"`
	Tier          int    `json:"tier"`
	Units         int    `json:"units"`
	RunningBefore int    `json:"running_before"`
	Admitted      bool   `json:"admitted"`
	Reason        string `json:"reason,omitempty"`
}

// VehicleCandidate is a vehicle that could have carried a customer group.
type VehicleCandidate struct {
	VehicleID string `json:"vehicle_id"`
	Capacity  int    `json:"capacity"`
	Slack     int    `json:"slack"`
}

// AssignmentRecord captures one vehicle assignment with its counterfactuals.
type AssignmentRecord struct {
	Day           int                `json:"day"`
	CustomerID    string             `json:"customer_id"`
	Units         int                `json:"units"`
	ChosenVehicle string             `json:"chosen_vehicle,omitempty"` // empty when no vehicle fits
	Candidates    []VehicleCandidate `json:"candidates"`
	Regret        int                `json:"regret"` // slack(chosen) - min slack; 0 when chosen is tightest
}
