// Package db archives analysis runs in sqlite so past sessions stay
// queryable after the telemetry file has been overwritten by the recorder.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id                TEXT PRIMARY KEY,
			source_file           TEXT,
			session_start         DOUBLE,
			session_duration      DOUBLE,
			total_points          BIGINT,
			total_distance        DOUBLE,
			average_speed         DOUBLE,
			max_speed             DOUBLE,
			max_interval_distance DOUBLE,
			exploration_area      DOUBLE,
			cluster_count         BIGINT,
			timestamp             TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS run_clusters (
			run_id                TEXT,
			cluster_rank          BIGINT,
			center_x              DOUBLE,
			center_y              DOUBLE,
			center_z              DOUBLE,
			sample_count          BIGINT,
			time_spent            DOUBLE,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Run is one archived analysis invocation.
type Run struct {
	RunID               string    `json:"run_id"`
	SourceFile          string    `json:"source_file"`
	SessionStart        float64   `json:"session_start"`
	SessionDuration     float64   `json:"session_duration"`
	TotalPoints         int       `json:"total_points"`
	TotalDistance       float64   `json:"total_distance_traveled"`
	AverageSpeed        float64   `json:"average_speed"`
	MaxSpeed            float64   `json:"max_speed"`
	MaxIntervalDistance float64   `json:"max_distance_per_interval"`
	ExplorationArea     float64   `json:"exploration_area"`
	ClusterCount        int       `json:"cluster_count"`
	Timestamp           time.Time `json:"timestamp"`
}

// RunCluster is one ranked cluster belonging to an archived run.
type RunCluster struct {
	RunID       string  `json:"run_id"`
	ClusterRank int     `json:"cluster_rank"`
	CenterX     float64 `json:"center_x"`
	CenterY     float64 `json:"center_y"`
	CenterZ     float64 `json:"center_z"`
	SampleCount int     `json:"sample_count"`
	TimeSpent   float64 `json:"time_spent"`
}

// RecordAnalysis archives one completed run with its ranked clusters and
// returns the generated run ID. The run row and cluster rows commit
// together or not at all.
func (db *DB) RecordAnalysis(sourceFile string, log *navlog.NavLog, result *nav.AnalysisResult) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, source_file, session_start, session_duration, total_points,
			total_distance, average_speed, max_speed, max_interval_distance,
			exploration_area, cluster_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		sourceFile,
		log.SessionStart,
		log.Statistics.SessionDuration,
		log.Statistics.TotalPoints,
		result.TotalDistance,
		result.AverageSpeed,
		result.MaxSpeed,
		result.MaxIntervalDistance,
		result.ExplorationBounds.ExplorationArea,
		len(result.MovementClusters),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for rank, cluster := range result.MovementClusters {
		_, err = tx.Exec(`
			INSERT INTO run_clusters (
				run_id, cluster_rank, center_x, center_y, center_z, sample_count, time_spent
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID,
			rank+1,
			cluster.Center.X(),
			cluster.Center.Y(),
			cluster.Center.Z(),
			cluster.Count,
			cluster.TimeSpent,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert cluster %d: %w", rank+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns the most recent archived runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, source_file, session_start, session_duration, total_points,
		       total_distance, average_speed, max_speed, max_interval_distance,
		       exploration_area, cluster_count, timestamp
		FROM runs
		ORDER BY timestamp DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.RunID,
			&run.SourceFile,
			&run.SessionStart,
			&run.SessionDuration,
			&run.TotalPoints,
			&run.TotalDistance,
			&run.AverageSpeed,
			&run.MaxSpeed,
			&run.MaxIntervalDistance,
			&run.ExplorationArea,
			&run.ClusterCount,
			&run.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// ClustersForRun returns a run's clusters in rank order.
func (db *DB) ClustersForRun(runID string) ([]RunCluster, error) {
	rows, err := db.Query(`
		SELECT run_id, cluster_rank, center_x, center_y, center_z, sample_count, time_spent
		FROM run_clusters
		WHERE run_id = ?
		ORDER BY cluster_rank ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer rows.Close()

	var clusters []RunCluster
	for rows.Next() {
		var c RunCluster
		if err := rows.Scan(
			&c.RunID,
			&c.ClusterRank,
			&c.CenterX,
			&c.CenterY,
			&c.CenterZ,
			&c.SampleCount,
			&c.TimeSpent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clusters, nil
}
