// Package report renders analysis results for human consumption: a
// sectioned text report and a speed-over-time plot.
package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
	"github.com/banshee-data/nav.report/internal/units"
)

const separator = "============================================================"

// topAreasShown caps the "top visited areas" section; the full ranked
// list stays available on the JSON surface.
const topAreasShown = 5

// Formatter writes analysis reports in the given speed units.
type Formatter struct {
	Units string
}

// NewFormatter returns a Formatter for the given speed units. Invalid
// units fall back to the native units/second.
func NewFormatter(speedUnits string) *Formatter {
	if !units.IsValid(speedUnits) {
		speedUnits = units.UPS
	}
	return &Formatter{Units: speedUnits}
}

// Write renders the full session report. When result is nil the movement
// sections are replaced by the analysis error, but session information
// still prints: a session too short to analyze is still a session.
func (f *Formatter) Write(w io.Writer, log *navlog.NavLog, result *nav.AnalysisResult, analysisErr error) error {
	stats := log.Statistics

	fmt.Fprintf(w, "\n%s\n", separator)
	fmt.Fprintln(w, "NAVIGATION ANALYSIS REPORT")
	fmt.Fprintf(w, "%s\n", separator)

	fmt.Fprintln(w, "\nSESSION INFORMATION:")
	fmt.Fprintf(w, "   Start Time: %s\n", log.StartTime().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "   Duration: %.1f seconds (%.1f minutes)\n", stats.SessionDuration, stats.SessionDuration/60)
	fmt.Fprintf(w, "   Total Navigation Points: %d\n", stats.TotalPoints)
	fmt.Fprintf(w, "   Average Position: [%.2f, %.2f, %.2f]\n",
		stats.AveragePosition.X(), stats.AveragePosition.Y(), stats.AveragePosition.Z())

	if result == nil {
		if analysisErr != nil {
			fmt.Fprintf(w, "\nAnalysis Error: %v\n", analysisErr)
		}
		fmt.Fprintf(w, "\n%s\n", separator)
		return nil
	}

	label := units.Label(f.Units)
	fmt.Fprintln(w, "\nMOVEMENT ANALYSIS:")
	fmt.Fprintf(w, "   Total Distance Traveled: %.2f units\n", result.TotalDistance)
	fmt.Fprintf(w, "   Average Speed: %.2f %s\n", units.ConvertSpeed(result.AverageSpeed, f.Units), label)
	fmt.Fprintf(w, "   Maximum Speed: %.2f %s\n", units.ConvertSpeed(result.MaxSpeed, f.Units), label)
	fmt.Fprintf(w, "   Max Distance in Interval: %.2f units\n", result.MaxIntervalDistance)

	bounds := result.ExplorationBounds
	fmt.Fprintln(w, "\nEXPLORATION AREA:")
	fmt.Fprintf(w, "   Min Bounds: [%.2f, %.2f, %.2f]\n",
		bounds.MinBounds.X(), bounds.MinBounds.Y(), bounds.MinBounds.Z())
	fmt.Fprintf(w, "   Max Bounds: [%.2f, %.2f, %.2f]\n",
		bounds.MaxBounds.X(), bounds.MaxBounds.Y(), bounds.MaxBounds.Z())
	fmt.Fprintf(w, "   Total Area Explored: %.2f square units\n", bounds.ExplorationArea)

	if len(result.MovementClusters) > 0 {
		fmt.Fprintln(w, "\nTOP VISITED AREAS:")
		for i, cluster := range result.MovementClusters {
			if i >= topAreasShown {
				break
			}
			fmt.Fprintf(w, "   %d. Position [%.2f, %.2f, %.2f] - %.0fs (%d visits)\n",
				i+1,
				cluster.Center.X(), cluster.Center.Y(), cluster.Center.Z(),
				cluster.TimeSpent, cluster.Count)
		}
	}

	fmt.Fprintf(w, "\n%s\n", separator)
	return nil
}
