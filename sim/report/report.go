// Package report assembles the final run report and renders it as text, CSV,
// PDF or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim/alert"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/inventory"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/kpi"
	"github.com/TRABAJOSUNI2025/logistica-sim/sim/pipeline"
)

// DefaultTitle heads every report unless the caller sets another.
const DefaultTitle = "LOGISTICS REPORT - ANDES LOGISTICS S.A."

// DateLayout is the timestamp format printed under the title.
const DateLayout = "02/01/2006 15:04:05"

// Summary is the operations overview of a run.
type Summary struct {
	Orders         int     `json:"orders"`
	Requested      int     `json:"requested"`
	Delivered      int     `json:"delivered"`
	Undelivered    int     `json:"undelivered"`
	BacklogPercent float64 `json:"backlog_percent"`
}

// Report is the record every renderer works from.
type Report struct {
	Title           string                  `json:"title"`
	GeneratedAt     time.Time               `json:"generated_at"`
	RunID           string                  `json:"run_id"`
	Seed            int64                   `json:"seed"`
	Summary         Summary                 `json:"summary"`
	Indicators      kpi.Consolidated        `json:"indicators"`
	Daily           []kpi.Daily             `json:"daily"`
	Alerts          []alert.Alert           `json:"alerts"`
	Recommendations []string                `json:"recommendations"`
	Stock           []inventory.StockStatus `json:"stock"`
}

// Build turns a run result into a report stamped with now.
func Build(res *pipeline.Result, now time.Time) Report {
	requested, delivered := 0, 0
	daily := make([]kpi.Daily, len(res.Days))
	for i, d := range res.Days {
		requested += d.Requested
		delivered += d.Reservation.Delivered
		daily[i] = d.Indicators
	}
	undelivered := requested - delivered
	backlog := 0.0
	if requested > 0 {
		backlog = kpi.Round2(float64(undelivered) / float64(requested) * 100)
	}

	return Report{
		Title:       DefaultTitle,
		GeneratedAt: now,
		RunID:       res.RunID,
		Seed:        res.Seed,
		Summary: Summary{
			Orders:         res.Consolidated.Orders,
			Requested:      requested,
			Delivered:      delivered,
			Undelivered:    undelivered,
			BacklogPercent: backlog,
		},
		Indicators:      res.Consolidated,
		Daily:           daily,
		Alerts:          nonNil(res.Alerts),
		Recommendations: nonNil(res.Recommendations),
		Stock:           res.FinalStock,
	}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
