package nav

import (
	"errors"
	"math"
	"testing"

	"github.com/banshee-data/nav.report/internal/geom"
)

func floatEquals(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestAnalyzeMovementBasic(t *testing.T) {
	// One 3-4-5 interval over five seconds.
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{3, 4, 0}, SessionTime: 5},
	}

	stats, err := AnalyzeMovement(samples)
	if err != nil {
		t.Fatalf("AnalyzeMovement returned error: %v", err)
	}

	if !floatEquals(stats.TotalDistance, 5.0, 1e-9) {
		t.Errorf("TotalDistance = %f, want 5.0", stats.TotalDistance)
	}
	if !floatEquals(stats.AverageSpeed, 1.0, 1e-9) {
		t.Errorf("AverageSpeed = %f, want 1.0", stats.AverageSpeed)
	}
	if !floatEquals(stats.MaxSpeed, 1.0, 1e-9) {
		t.Errorf("MaxSpeed = %f, want 1.0", stats.MaxSpeed)
	}
	if !floatEquals(stats.MaxIntervalDistance, 5.0, 1e-9) {
		t.Errorf("MaxIntervalDistance = %f, want 5.0", stats.MaxIntervalDistance)
	}
}

func TestAnalyzeMovementInsufficientData(t *testing.T) {
	for _, samples := range [][]PositionSample{
		nil,
		{},
		{{Position: geom.Vec3{1, 2, 3}, SessionTime: 0}},
	} {
		_, err := AnalyzeMovement(samples)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("AnalyzeMovement(%d samples) error = %v, want ErrInsufficientData", len(samples), err)
		}
	}
}

func TestAnalyzeMovementZeroTimeDelta(t *testing.T) {
	// Duplicate timestamps: the interval's distance still counts toward
	// the path length, but no speed sample is recorded for it.
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{10, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{13, 4, 0}, SessionTime: 5},
	}

	stats, err := AnalyzeMovement(samples)
	if err != nil {
		t.Fatalf("AnalyzeMovement returned error: %v", err)
	}

	if !floatEquals(stats.TotalDistance, 15.0, 1e-9) {
		t.Errorf("TotalDistance = %f, want 15.0", stats.TotalDistance)
	}
	if !floatEquals(stats.MaxIntervalDistance, 10.0, 1e-9) {
		t.Errorf("MaxIntervalDistance = %f, want 10.0", stats.MaxIntervalDistance)
	}
	// Only the second interval (5 units over 5 seconds) produced a speed.
	if !floatEquals(stats.AverageSpeed, 1.0, 1e-9) {
		t.Errorf("AverageSpeed = %f, want 1.0", stats.AverageSpeed)
	}
	if !floatEquals(stats.MaxSpeed, 1.0, 1e-9) {
		t.Errorf("MaxSpeed = %f, want 1.0", stats.MaxSpeed)
	}
}

func TestAnalyzeMovementNegativeTimeDelta(t *testing.T) {
	// Disordered timestamps never yield a speed sample; with no valid
	// interval at all, both speed figures stay at zero.
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 10},
		{Position: geom.Vec3{6, 0, 8}, SessionTime: 5},
	}

	stats, err := AnalyzeMovement(samples)
	if err != nil {
		t.Fatalf("AnalyzeMovement returned error: %v", err)
	}

	if !floatEquals(stats.TotalDistance, 10.0, 1e-9) {
		t.Errorf("TotalDistance = %f, want 10.0", stats.TotalDistance)
	}
	if stats.AverageSpeed != 0 {
		t.Errorf("AverageSpeed = %f, want 0", stats.AverageSpeed)
	}
	if stats.MaxSpeed != 0 {
		t.Errorf("MaxSpeed = %f, want 0", stats.MaxSpeed)
	}
}

func TestAnalyzeMovementTotalAtLeastMaxInterval(t *testing.T) {
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{2, 0, 0}, SessionTime: 5},
		{Position: geom.Vec3{2, 0, 9}, SessionTime: 10},
		{Position: geom.Vec3{2, 1, 9}, SessionTime: 15},
	}

	stats, err := AnalyzeMovement(samples)
	if err != nil {
		t.Fatalf("AnalyzeMovement returned error: %v", err)
	}
	if stats.TotalDistance < stats.MaxIntervalDistance {
		t.Errorf("TotalDistance %f < MaxIntervalDistance %f", stats.TotalDistance, stats.MaxIntervalDistance)
	}
}

func TestAnalyzeMovementDoesNotMutateInput(t *testing.T) {
	samples := []PositionSample{
		{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
		{Position: geom.Vec3{1, 1, 1}, SessionTime: 5},
	}
	want := make([]PositionSample, len(samples))
	copy(want, samples)

	if _, err := AnalyzeMovement(samples); err != nil {
		t.Fatalf("AnalyzeMovement returned error: %v", err)
	}
	for i := range samples {
		if samples[i] != want[i] {
			t.Errorf("sample %d mutated: %+v", i, samples[i])
		}
	}
}
