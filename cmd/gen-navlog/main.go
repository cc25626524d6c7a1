// Command gen-navlog generates a synthetic nav.json session for testing
// the analyzer without running the game. The walk lingers at a few
// waypoints so the clustering output is non-trivial.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/banshee-data/nav.report/internal/geom"
	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
)

var (
	output  = flag.String("o", "nav.json", "output path")
	count   = flag.Int("n", 200, "number of position samples")
	seed    = flag.Int64("seed", 0, "random seed (0 uses the current time)")
	cadence = flag.Float64("cadence", 5.0, "seconds between samples")
)

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	waypoints := []geom.Vec3{
		{0, 0, 0},
		{80, 2, 10},
		{-40, 0, 60},
		{20, 5, -90},
	}

	samples := make([]nav.PositionSample, 0, *count)
	pos := waypoints[0]
	target := 0
	for i := 0; i < *count; i++ {
		// Drift toward the current waypoint with a little jitter, and
		// switch targets once close enough.
		wp := waypoints[target]
		dx := wp[0] - pos[0]
		dz := wp[2] - pos[2]
		dist := math.Hypot(dx, dz)
		if dist < 3 {
			target = (target + 1) % len(waypoints)
		} else {
			step := math.Min(4, dist)
			pos[0] += dx / dist * step
			pos[2] += dz / dist * step
		}
		pos[0] += rng.Float64()*2 - 1
		pos[1] = wp[1] + rng.Float64()*0.5
		pos[2] += rng.Float64()*2 - 1

		samples = append(samples, nav.PositionSample{
			Position:    pos,
			SessionTime: float64(i) * *cadence,
		})
	}

	doc := navlog.NavLog{
		SessionStart: float64(time.Now().Unix()),
		Positions:    samples,
		Statistics:   sessionStats(samples),
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal nav log: %v", err)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", *output, err)
	}
	log.Printf("wrote %d samples to %s (seed=%d)", len(samples), *output, s)
}

// sessionStats computes the aggregate block the game recorder would
// normally maintain incrementally.
func sessionStats(samples []nav.PositionSample) navlog.SessionStats {
	stats := navlog.SessionStats{TotalPoints: len(samples)}
	if len(samples) == 0 {
		return stats
	}

	minB := samples[0].Position
	maxB := samples[0].Position
	var sum geom.Vec3
	for _, s := range samples {
		for axis := 0; axis < 3; axis++ {
			minB[axis] = math.Min(minB[axis], s.Position[axis])
			maxB[axis] = math.Max(maxB[axis], s.Position[axis])
			sum[axis] += s.Position[axis]
		}
	}

	n := float64(len(samples))
	stats.SessionDuration = samples[len(samples)-1].SessionTime
	stats.AveragePosition = geom.Vec3{sum[0] / n, sum[1] / n, sum[2] / n}
	stats.MinBounds = minB
	stats.MaxBounds = maxB
	return stats
}
