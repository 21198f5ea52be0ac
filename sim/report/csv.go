package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV renders the report as Concept,Value rows: the operations summary,
// the global indicators, then one row per alert and recommendation.
func WriteCSV(w io.Writer, r Report) error {
	pct := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	rows := [][]string{
		{"Concept", "Value"},
		{"Orders received", strconv.Itoa(r.Summary.Orders)},
		{"Units requested", strconv.Itoa(r.Summary.Requested)},
		{"Units delivered", strconv.Itoa(r.Summary.Delivered)},
		{"Units not delivered", strconv.Itoa(r.Summary.Undelivered)},
		{"Backlog (%)", pct(r.Summary.BacklogPercent)},
		{"OTIF", pct(r.Indicators.OTIF)},
		{"Fill Rate", pct(r.Indicators.FillRate)},
		{"Backlog Rate", pct(r.Indicators.BacklogRate)},
		{"Picking Productivity", pct(r.Indicators.PickingProductivity)},
		{"Fleet Utilization", pct(r.Indicators.FleetUtilization)},
		{"Transport Index", pct(r.Indicators.TransportIndex)},
	}
	for _, a := range r.Alerts {
		rows = append(rows, []string{"Alert " + a.Type, fmt.Sprintf("[%s] %s", a.Severity, a.Message)})
	}
	for i, rec := range r.Recommendations {
		rows = append(rows, []string{fmt.Sprintf("Recommendation %d", i+1), rec})
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("report: write csv: %w", err)
	}
	return nil
}
