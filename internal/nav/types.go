// Package nav implements the movement-pattern analysis engine: distance
// and speed aggregation over an ordered position sequence, online spatial
// clustering of visited areas, and the exploration footprint calculation.
//
// Every entry point is a pure function over an immutable snapshot. Each
// call owns its own accumulators; nothing persists between runs and
// nothing is shared across goroutines.
package nav

import (
	"errors"

	"github.com/banshee-data/nav.report/internal/geom"
)

// ErrInsufficientData is returned when a session has fewer than two
// position samples, which is not enough to derive any movement interval.
var ErrInsufficientData = errors.New("insufficient data")

// PositionSample is one recorded player position with its elapsed session
// time in seconds. Sequences are time-ordered by the recorder; the engine
// assumes non-decreasing SessionTime but does not enforce it.
type PositionSample struct {
	Position    geom.Vec3 `json:"position"`
	SessionTime float64   `json:"session_time"`
}

// MovementStats aggregates path length and speed over one session.
// Values are derived purely from consecutive sample pairs and are
// immutable once computed.
type MovementStats struct {
	TotalDistance       float64 `json:"total_distance_traveled"`
	AverageSpeed        float64 `json:"average_speed"`
	MaxSpeed            float64 `json:"max_speed"`
	MaxIntervalDistance float64 `json:"max_distance_per_interval"`
}

// AnalysisResult is the combined output of one analysis run: movement
// statistics, the top-K attention clusters ranked by dwell time, and the
// exploration footprint. Built once per run; read-only afterward.
type AnalysisResult struct {
	MovementStats
	MovementClusters  []Cluster         `json:"movement_clusters"`
	ExplorationBounds ExplorationBounds `json:"exploration_bounds"`
}

// Analyze runs the full pipeline over one session snapshot: movement
// statistics, clustering, and the bounds footprint. The three passes are
// independent; they only share the input slice, which is never mutated.
// Fewer than two samples yields ErrInsufficientData.
func Analyze(samples []PositionSample, minBounds, maxBounds geom.Vec3, params ClusterParams) (*AnalysisResult, error) {
	stats, err := AnalyzeMovement(samples)
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		MovementStats:     stats,
		MovementClusters:  FindClusters(samples, params),
		ExplorationBounds: ComputeBounds(minBounds, maxBounds),
	}, nil
}
