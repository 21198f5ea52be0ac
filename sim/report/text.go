package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ruleWidth = 70

// WriteText renders the report as plain text, grouping thousands in unit
// counts.
func WriteText(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	var b strings.Builder
	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "  %s\n", r.Title)
	fmt.Fprintf(&b, "  Date: %s\n", r.GeneratedAt.Format(DateLayout))
	if r.RunID != "" {
		fmt.Fprintf(&b, "  Run: %s (seed %d)\n", r.RunID, r.Seed)
	}
	b.WriteString(heavy + "\n\n")

	b.WriteString("OPERATIONS SUMMARY:\n" + light + "\n")
	fmt.Fprintf(&b, "  Total orders received: %d\n", r.Summary.Orders)
	p.Fprintf(&b, "  Total units requested: %d\n", r.Summary.Requested)
	p.Fprintf(&b, "  Total units delivered: %d\n", r.Summary.Delivered)
	p.Fprintf(&b, "  Total units not delivered: %d\n", r.Summary.Undelivered)
	fmt.Fprintf(&b, "  Backlog: %.2f%%\n\n", r.Summary.BacklogPercent)

	ind := r.Indicators
	b.WriteString("GLOBAL INDICATORS:\n" + light + "\n")
	fmt.Fprintf(&b, "  OTIF: %.2f%%\n", ind.OTIF)
	fmt.Fprintf(&b, "  Fill Rate: %.2f%%\n", ind.FillRate)
	fmt.Fprintf(&b, "  Backlog Rate: %.2f%%\n", ind.BacklogRate)
	fmt.Fprintf(&b, "  Picking Productivity: %.2f units/h\n", ind.PickingProductivity)
	fmt.Fprintf(&b, "  Fleet Utilization: %.2f%%\n", ind.FleetUtilization)
	fmt.Fprintf(&b, "  Transport Index: %.2f%%\n\n", ind.TransportIndex)

	if len(r.Alerts) > 0 {
		b.WriteString("ALERTS:\n" + light + "\n")
		for _, a := range r.Alerts {
			fmt.Fprintf(&b, "  [%s] %s\n", a.Severity, a.Message)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No active alerts.\n\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS:\n" + light + "\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	if len(r.Stock) > 0 {
		b.WriteString("FINAL STOCK:\n" + light + "\n")
		for _, s := range r.Stock {
			flag := ""
			if s.BelowReorder {
				flag = "  (below reorder point)"
			}
			fmt.Fprintf(&b, "  %-12s %-28s %6d%s\n", s.SKU, s.Description, s.Quantity, flag)
		}
		b.WriteString("\n")
	}

	b.WriteString(heavy + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("report: write text: %w", err)
	}
	return nil
}
