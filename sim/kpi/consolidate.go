package kpi

// Consolidated aggregates the daily indicators of a run.
type Consolidated struct {
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
	Days                int     `json:"days"`
}

// Consolidate averages the already-rounded daily indicators (each mean rounded
// again) and sums the raw counts. An empty slice yields the zero value.
func Consolidate(days []Daily) Consolidated {
	if len(days) == 0 {
		return Consolidated{}
	}

	var c Consolidated
	var otif, fill, backlog, prod, fleet, transport float64
	for _, d := range days {
		otif += d.OTIF
		fill += d.FillRate
		backlog += d.BacklogRate
		prod += d.PickingProductivity
		fleet += d.FleetUtilization
		transport += d.TransportIndex
		c.Orders += d.Orders
		c.Requested += d.Requested
		c.Delivered += d.Delivered
		c.Undelivered += d.Undelivered
	}

	n := float64(len(days))
	c.Days = len(days)
	c.OTIF = Round2(otif / n)
	c.FillRate = Round2(fill / n)
	c.BacklogRate = Round2(backlog / n)
	c.PickingProductivity = Round2(prod / n)
	c.FleetUtilization = Round2(fleet / n)
	c.TransportIndex = Round2(transport / n)
	return c
}

// BacklogPercent is the share of requested units left undelivered over the
// whole run, rounded to two decimals. It is 0 when nothing was requested.
func (c Consolidated) BacklogPercent() float64 {
	if c.Requested == 0 {
		return 0
	}
	return Round2(percent(c.Undelivered, c.Requested))
}
