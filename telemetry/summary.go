package telemetry

import (
	"fmt"

	"github.com/gosuri/uitable"
)

// SummaryTable renders generation records as an aligned console table.
func SummaryTable(records []GenerationStats) string {
	table := uitable.New()
	table.MaxColWidth = 40
	table.Wrap = false
	table.AddRow("Generation", "Best", "Average", "Worst", "P50", "Rewards", "Hazards", "Elapsed")
	for _, r := range records {
		table.AddRow(
			r.Generation,
			fmt.Sprintf("%.0f", r.Best),
			fmt.Sprintf("%.2f", r.Average),
			fmt.Sprintf("%.0f", r.Worst),
			fmt.Sprintf("%.1f", r.FitnessP50),
			r.RewardsCollected,
			r.HazardsHit,
			fmt.Sprintf("%.2fs", r.ElapsedSec),
		)
	}
	return table.String()
}
