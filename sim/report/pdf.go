package report

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// RenderPDF lays the report out on A4 pages and returns the document bytes.
func RenderPDF(r Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor("logistica-sim", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("OPERATIONS SUMMARY"))
	m.AddRows(
		pairRow("Orders received", fmt.Sprintf("%d", r.Summary.Orders)),
		pairRow("Units requested", fmt.Sprintf("%d", r.Summary.Requested)),
		pairRow("Units delivered", fmt.Sprintf("%d", r.Summary.Delivered)),
		pairRow("Units not delivered", fmt.Sprintf("%d", r.Summary.Undelivered)),
		pairRow("Backlog", fmt.Sprintf("%.2f%%", r.Summary.BacklogPercent)),
	)

	ind := r.Indicators
	m.AddRows(sectionRow("GLOBAL INDICATORS"))
	m.AddRows(
		pairRow("OTIF", fmt.Sprintf("%.2f%%", ind.OTIF)),
		pairRow("Fill rate", fmt.Sprintf("%.2f%%", ind.FillRate)),
		pairRow("Backlog rate", fmt.Sprintf("%.2f%%", ind.BacklogRate)),
		pairRow("Picking productivity", fmt.Sprintf("%.2f units/h", ind.PickingProductivity)),
		pairRow("Fleet utilization", fmt.Sprintf("%.2f%%", ind.FleetUtilization)),
		pairRow("Transport index", fmt.Sprintf("%.2f%%", ind.TransportIndex)),
	)

	if len(r.Daily) > 0 {
		m.AddRows(sectionRow("DAILY INDICATORS"))
		m.AddRows(dailyHeaderRow())
		for _, d := range r.Daily {
			m.AddRows(dailyRow(d.Day, []float64{d.OTIF, d.FillRate, d.BacklogRate, d.PickingProductivity, d.FleetUtilization, d.TransportIndex}))
		}
	}

	m.AddRows(sectionRow("ALERTS"))
	if len(r.Alerts) == 0 {
		m.AddRows(noteRow("No active alerts.", colorGray))
	}
	for _, a := range r.Alerts {
		m.AddRows(noteRow(fmt.Sprintf("[%s] %s", a.Severity, a.Message), colorAlert))
	}

	if len(r.Recommendations) > 0 {
		m.AddRows(sectionRow("RECOMMENDATIONS"))
		for i, rec := range r.Recommendations {
			m.AddRows(noteRow(fmt.Sprintf("%d. %s", i+1, rec), nil))
		}
	}

	if len(r.Stock) > 0 {
		m.AddRows(sectionRow("FINAL STOCK"))
		for _, s := range r.Stock {
			c := (*props.Color)(nil)
			if s.BelowReorder {
				c = colorAlert
			}
			m.AddRows(row.New(6).Add(
				col.New(3).Add(text.New(s.SKU, props.Text{Size: 8, Top: 1})),
				col.New(7).Add(text.New(s.Description, props.Text{Size: 8, Top: 1})),
				col.New(2).Add(text.New(fmt.Sprintf("%d", s.Quantity), props.Text{Size: 8, Top: 1, Align: align.Right, Color: c})),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate report: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r Report) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("Run "+r.RunID, props.Text{Size: 7, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Date: "+r.GeneratedAt.Format(DateLayout), props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("Seed %d", r.Seed), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4}),
	))
}

func pairRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 8, Top: 1})),
		col.New(6).Add(text.New(value, props.Text{Size: 8, Top: 1, Align: align.Right, Style: fontstyle.Bold})),
	)
}

func noteRow(s string, c *props.Color) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Top: 1, Color: c})))
}

func dailyHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorPrimary, Top: 1}))
	}
	return row.New(6).Add(
		h("Day", 1), h("OTIF", 2), h("Fill", 2), h("Backlog", 2),
		h("Units/h", 2), h("Fleet", 2), h("Transp.", 1),
	)
}

func dailyRow(day int, values []float64) core.Row {
	sizes := []int{2, 2, 2, 2, 2, 1}
	cols := []core.Col{col.New(1).Add(text.New(fmt.Sprintf("%d", day), props.Text{Size: 7, Align: align.Center, Top: 1}))}
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(fmt.Sprintf("%.2f", v), props.Text{Size: 7, Align: align.Center, Top: 1})))
	}
	return row.New(5).Add(cols...)
}
