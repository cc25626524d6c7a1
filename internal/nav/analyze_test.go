package nav

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/nav.report/internal/geom"
)

func TestAnalyzeCombinesAllSections(t *testing.T) {
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{3, 4, 0}, SessionTime: 5},
		{Position: geom.Vec3{100, 0, 0}, SessionTime: 10},
	}

	result, err := Analyze(samples, geom.Vec3{0, 0, 0}, geom.Vec3{10, 5, 20}, DefaultClusterParams())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.TotalDistance <= 0 {
		t.Errorf("TotalDistance = %f, want > 0", result.TotalDistance)
	}
	if len(result.MovementClusters) != 2 {
		t.Errorf("len(MovementClusters) = %d, want 2", len(result.MovementClusters))
	}
	if result.ExplorationBounds.ExplorationArea != 200 {
		t.Errorf("ExplorationArea = %f, want 200", result.ExplorationBounds.ExplorationArea)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	result, err := Analyze(
		[]PositionSample{{Position: geom.Vec3{1, 2, 3}}},
		geom.Vec3{}, geom.Vec3{}, DefaultClusterParams(),
	)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Analyze error = %v, want ErrInsufficientData", err)
	}
	if result != nil {
		t.Errorf("Analyze result = %+v, want nil", result)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	samples := samplesAt(
		geom.Vec3{0, 0, 0},
		geom.Vec3{1, 0, 0},
		geom.Vec3{30, 2, -5},
		geom.Vec3{31, 2, -4},
		geom.Vec3{-12, 0, 8},
	)

	first, err := Analyze(samples, geom.Vec3{-12, 0, -5}, geom.Vec3{31, 2, 8}, DefaultClusterParams())
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := Analyze(samples, geom.Vec3{-12, 0, -5}, geom.Vec3{31, 2, 8}, DefaultClusterParams())
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated analysis differs (-first +second):\n%s", diff)
	}
}

func TestAnalysisResultJSONShape(t *testing.T) {
	// The wire shape is consumed by the report tooling: flat movement
	// fields, clusters without member lists, array-encoded vectors.
	samples := samplesAt(geom.Vec3{0, 0, 0}, geom.Vec3{3, 4, 0})
	result, err := Analyze(samples, geom.Vec3{0, 0, 0}, geom.Vec3{10, 5, 20}, DefaultClusterParams())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	for _, key := range []string{
		"total_distance_traveled", "average_speed", "max_speed",
		"max_distance_per_interval", "movement_clusters", "exploration_bounds",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("result JSON missing key %q", key)
		}
	}

	clusters, ok := decoded["movement_clusters"].([]interface{})
	if !ok || len(clusters) == 0 {
		t.Fatalf("movement_clusters = %v", decoded["movement_clusters"])
	}
	cluster := clusters[0].(map[string]interface{})
	if _, ok := cluster["members"]; ok {
		t.Error("cluster JSON should not expose the member list")
	}
	if center, ok := cluster["center"].([]interface{}); !ok || len(center) != 3 {
		t.Errorf("cluster center = %v, want 3-element array", cluster["center"])
	}
}
