// Package navlog loads and validates recorded navigation sessions.
//
// All schema checking happens here: the analysis engine receives only
// well-typed, validated data and performs no defensive parsing of its own.
package navlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/nav.report/internal/fsutil"
	"github.com/banshee-data/nav.report/internal/geom"
	"github.com/banshee-data/nav.report/internal/nav"
)

// ErrMalformed marks a nav log that parsed as JSON but violates the
// recorder's schema. Wrapped errors carry the offending field.
var ErrMalformed = errors.New("malformed nav log")

// SessionStats is the recorder's precomputed session aggregate.
type SessionStats struct {
	SessionDuration float64   `json:"session_duration"`
	TotalPoints     int       `json:"total_points"`
	AveragePosition geom.Vec3 `json:"average_position"`
	MinBounds       geom.Vec3 `json:"min_bounds"`
	MaxBounds       geom.Vec3 `json:"max_bounds"`
}

// NavLog is one validated recording session: the ordered position
// sequence plus the recorder's aggregate statistics.
type NavLog struct {
	SessionStart float64              `json:"session_start"`
	Positions    []nav.PositionSample `json:"positions"`
	Statistics   SessionStats         `json:"statistics"`
}

// StartTime converts the epoch-seconds session start to a time.Time.
func (l *NavLog) StartTime() time.Time {
	return time.Unix(int64(l.SessionStart), 0)
}

// Raw decode targets. Positions decode as open-ended float slices and
// optional fields as pointers so that shape violations are detectable
// instead of silently zero-filled.
type rawNavLog struct {
	SessionStart *float64      `json:"session_start"`
	Positions    []rawPosition `json:"positions"`
	Statistics   *rawStats     `json:"statistics"`
}

type rawPosition struct {
	Position    []float64 `json:"position"`
	SessionTime *float64  `json:"session_time"`
}

type rawStats struct {
	SessionDuration *float64  `json:"session_duration"`
	TotalPoints     *int      `json:"total_points"`
	AveragePosition []float64 `json:"average_position"`
	MinBounds       []float64 `json:"min_bounds"`
	MaxBounds       []float64 `json:"max_bounds"`
}

// Load reads and validates a nav log file. File-not-found and JSON syntax
// errors come back wrapped; schema violations wrap ErrMalformed.
func Load(fsys fsutil.FileSystem, path string) (*NavLog, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nav log %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates nav log JSON.
func Parse(data []byte) (*NavLog, error) {
	var raw rawNavLog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse nav log JSON: %w", err)
	}

	if raw.SessionStart == nil {
		return nil, fmt.Errorf("%w: missing session_start", ErrMalformed)
	}
	if raw.Statistics == nil {
		return nil, fmt.Errorf("%w: missing statistics block", ErrMalformed)
	}

	log := &NavLog{
		SessionStart: *raw.SessionStart,
		Positions:    make([]nav.PositionSample, 0, len(raw.Positions)),
	}

	for i, p := range raw.Positions {
		pos, err := toVec3(p.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: positions[%d]: %v", ErrMalformed, i, err)
		}
		if p.SessionTime == nil {
			return nil, fmt.Errorf("%w: positions[%d]: missing session_time", ErrMalformed, i)
		}
		log.Positions = append(log.Positions, nav.PositionSample{
			Position:    pos,
			SessionTime: *p.SessionTime,
		})
	}

	stats, err := toStats(raw.Statistics)
	if err != nil {
		return nil, fmt.Errorf("%w: statistics: %v", ErrMalformed, err)
	}
	log.Statistics = stats

	return log, nil
}

func toStats(raw *rawStats) (SessionStats, error) {
	var stats SessionStats

	if raw.SessionDuration == nil {
		return stats, errors.New("missing session_duration")
	}
	if raw.TotalPoints == nil {
		return stats, errors.New("missing total_points")
	}

	avg, err := toVec3(raw.AveragePosition)
	if err != nil {
		return stats, fmt.Errorf("average_position: %v", err)
	}
	minBounds, err := toVec3(raw.MinBounds)
	if err != nil {
		return stats, fmt.Errorf("min_bounds: %v", err)
	}
	maxBounds, err := toVec3(raw.MaxBounds)
	if err != nil {
		return stats, fmt.Errorf("max_bounds: %v", err)
	}

	stats.SessionDuration = *raw.SessionDuration
	stats.TotalPoints = *raw.TotalPoints
	stats.AveragePosition = avg
	stats.MinBounds = minBounds
	stats.MaxBounds = maxBounds
	return stats, nil
}

func toVec3(components []float64) (geom.Vec3, error) {
	if len(components) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(components))
	}
	return geom.Vec3{components[0], components[1], components[2]}, nil
}
