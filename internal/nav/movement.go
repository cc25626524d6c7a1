package nav

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/nav.report/internal/geom"
)

// AnalyzeMovement computes distance and speed statistics from consecutive
// sample pairs. It returns ErrInsufficientData when fewer than two samples
// are supplied.
//
// Distance and speed are accumulated asymmetrically on purpose: every
// interval contributes to TotalDistance and MaxIntervalDistance, but only
// intervals with a positive time delta produce a speed sample. A delta of
// zero or less indicates duplicate or disordered timestamps and carries no
// meaningful time base for a rate, while the path length is real either way.
func AnalyzeMovement(samples []PositionSample) (MovementStats, error) {
	if len(samples) < 2 {
		return MovementStats{}, ErrInsufficientData
	}

	var stats MovementStats
	speeds := make([]float64, 0, len(samples)-1)

	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]

		d := geom.Distance(prev.Position, curr.Position)
		stats.TotalDistance += d
		if d > stats.MaxIntervalDistance {
			stats.MaxIntervalDistance = d
		}

		if dt := curr.SessionTime - prev.SessionTime; dt > 0 {
			speeds = append(speeds, d/dt)
		}
	}

	if len(speeds) > 0 {
		stats.AverageSpeed = stat.Mean(speeds, nil)
		stats.MaxSpeed = floats.Max(speeds)
	}

	return stats, nil
}
