package db

import (
	"path/filepath"
	"testing"

	"github.com/banshee-data/nav.report/internal/geom"
	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nav_runs.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testAnalysis(t *testing.T) (*navlog.NavLog, *nav.AnalysisResult) {
	t.Helper()
	log := &navlog.NavLog{
		SessionStart: 1735689600,
		Positions: []nav.PositionSample{
			{Position: geom.Vec3{0, 0, 0}, SessionTime: 0},
			{Position: geom.Vec3{3, 4, 0}, SessionTime: 5},
			{Position: geom.Vec3{100, 0, 0}, SessionTime: 10},
		},
		Statistics: navlog.SessionStats{
			SessionDuration: 10,
			TotalPoints:     3,
			MinBounds:       geom.Vec3{0, 0, 0},
			MaxBounds:       geom.Vec3{100, 4, 0},
		},
	}
	result, err := nav.Analyze(log.Positions, log.Statistics.MinBounds, log.Statistics.MaxBounds, nav.DefaultClusterParams())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return log, result
}

func TestRecordAnalysisRoundTrip(t *testing.T) {
	db := testDB(t)
	log, result := testAnalysis(t)

	runID, err := db.RecordAnalysis("nav.json", log, result)
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}
	if runID == "" {
		t.Fatal("RecordAnalysis returned empty run ID")
	}

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}

	run := runs[0]
	if run.RunID != runID {
		t.Errorf("RunID = %q, want %q", run.RunID, runID)
	}
	if run.SourceFile != "nav.json" {
		t.Errorf("SourceFile = %q", run.SourceFile)
	}
	if run.TotalDistance != result.TotalDistance {
		t.Errorf("TotalDistance = %f, want %f", run.TotalDistance, result.TotalDistance)
	}
	if run.ClusterCount != len(result.MovementClusters) {
		t.Errorf("ClusterCount = %d, want %d", run.ClusterCount, len(result.MovementClusters))
	}
	if run.TotalPoints != 3 {
		t.Errorf("TotalPoints = %d, want 3", run.TotalPoints)
	}
}

func TestClustersForRun(t *testing.T) {
	db := testDB(t)
	log, result := testAnalysis(t)

	runID, err := db.RecordAnalysis("nav.json", log, result)
	if err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	clusters, err := db.ClustersForRun(runID)
	if err != nil {
		t.Fatalf("ClustersForRun: %v", err)
	}
	if len(clusters) != len(result.MovementClusters) {
		t.Fatalf("len(clusters) = %d, want %d", len(clusters), len(result.MovementClusters))
	}

	for i, c := range clusters {
		if c.ClusterRank != i+1 {
			t.Errorf("cluster %d rank = %d, want %d", i, c.ClusterRank, i+1)
		}
		want := result.MovementClusters[i]
		if c.SampleCount != want.Count {
			t.Errorf("cluster %d SampleCount = %d, want %d", i, c.SampleCount, want.Count)
		}
		if c.TimeSpent != want.TimeSpent {
			t.Errorf("cluster %d TimeSpent = %f, want %f", i, c.TimeSpent, want.TimeSpent)
		}
		if c.CenterX != want.Center.X() || c.CenterY != want.Center.Y() || c.CenterZ != want.Center.Z() {
			t.Errorf("cluster %d center = (%f, %f, %f), want %v", i, c.CenterX, c.CenterY, c.CenterZ, want.Center)
		}
	}
}

func TestRecentRunsLimit(t *testing.T) {
	db := testDB(t)
	log, result := testAnalysis(t)

	for i := 0; i < 5; i++ {
		if _, err := db.RecordAnalysis("nav.json", log, result); err != nil {
			t.Fatalf("RecordAnalysis #%d: %v", i, err)
		}
	}

	runs, err := db.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("len(runs) = %d, want 3", len(runs))
	}
}

func TestClustersForUnknownRun(t *testing.T) {
	db := testDB(t)

	clusters, err := db.ClustersForRun("no-such-run")
	if err != nil {
		t.Fatalf("ClustersForRun: %v", err)
	}
	if len(clusters) != 0 {
		t.Errorf("len(clusters) = %d, want 0", len(clusters))
	}
}
