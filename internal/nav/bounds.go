package nav

import "github.com/banshee-data/nav.report/internal/geom"

// ExplorationBounds carries the session's recorded position extremes plus
// the ground-plane footprint they span.
type ExplorationBounds struct {
	MinBounds       geom.Vec3 `json:"min_bounds"`
	MaxBounds       geom.Vec3 `json:"max_bounds"`
	ExplorationArea float64   `json:"exploration_area"`
}

// ComputeBounds derives the exploration footprint from the recorder's
// precomputed session bounds. Bound ordering (min <= max per axis) is the
// recorder's precondition and is not validated here; inverted bounds show
// up as a negative area.
func ComputeBounds(minBounds, maxBounds geom.Vec3) ExplorationBounds {
	return ExplorationBounds{
		MinBounds:       minBounds,
		MaxBounds:       maxBounds,
		ExplorationArea: geom.PlanarArea(minBounds, maxBounds),
	}
}
