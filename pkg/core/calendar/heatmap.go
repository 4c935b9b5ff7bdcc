// Package calendar maps aggregated results onto calendar-grid display
// intensities. It is a contract boundary for the presentation layer and
// deliberately carries no logic beyond the mapping.
package calendar

import "github.com/moyeo-app/moyeo/pkg/core/model"

// Intensity is a calendar cell shade from 0 (no votes) to 4 (unanimous).
type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLow
	IntensityMedium
	IntensityHigh
	IntensityFull
)

// IntensityFor maps a bucket's voter percentage to a cell shade.
func IntensityFor(percentage int) Intensity {
	switch {
	case percentage <= 0:
		return IntensityNone
	case percentage <= 25:
		return IntensityLow
	case percentage <= 50:
		return IntensityMedium
	case percentage < 100:
		return IntensityHigh
	default:
		return IntensityFull
	}
}

// HeatmapByDate returns the shade for each voted date in the results.
func HeatmapByDate(results []model.VoteResult) map[string]Intensity {
	cells := make(map[string]Intensity, len(results))
	for _, r := range results {
		if r.Date == "" {
			continue
		}
		cells[r.Date] = IntensityFor(r.Percentage)
	}
	return cells
}
