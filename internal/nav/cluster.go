package nav

import (
	"sort"

	"github.com/banshee-data/nav.report/internal/geom"
)

// Constants for clustering configuration
const (
	// DefaultClusterRadius is the assignment radius in world units.
	DefaultClusterRadius = 5.0
	// DefaultDwellIncrement is the time in seconds attributed to a cluster
	// per assigned sample. It assumes the recorder's fixed sampling cadence.
	DefaultDwellIncrement = 5.0
	// DefaultTopK is the number of ranked clusters returned.
	DefaultTopK = 10
)

// ClusterParams contains parameters for the online clustering pass.
type ClusterParams struct {
	Radius         float64 // assignment radius in world units
	DwellIncrement float64 // seconds of dwell per assigned sample
	TopK           int     // maximum clusters returned after ranking
}

// DefaultClusterParams returns parameters matching the telemetry
// recorder's five-second sampling cadence.
func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		Radius:         DefaultClusterRadius,
		DwellIncrement: DefaultDwellIncrement,
		TopK:           DefaultTopK,
	}
}

// Cluster is a dynamically grown group of nearby samples sharing an
// evolving centroid. Center is always the exact coordinate-wise mean of
// Members; it is recomputed on every assignment, never drifted
// incrementally. TimeSpent is Count times the dwell increment.
type Cluster struct {
	Center    geom.Vec3   `json:"center"`
	Members   []geom.Vec3 `json:"-"`
	Count     int         `json:"count"`
	TimeSpent float64     `json:"time_spent"`
}

// FindClusters performs a single forward pass over the sample sequence,
// assigning each position to the first existing cluster (in creation
// order) whose center lies within the radius, or seeding a new cluster
// when none qualifies. Clusters only grow; they are never merged, split,
// or deleted within a run.
//
// Each assignment rescans the cluster list and recomputes one centroid,
// so the worst case is quadratic in the sample count. That is the
// documented baseline contract: session telemetry runs to the low
// thousands of samples, not streaming scale.
//
// The returned list is ranked by TimeSpent descending and truncated to
// TopK. The sort is stable: clusters with equal dwell keep their creation
// order, which callers rely on for reproducible rankings.
func FindClusters(samples []PositionSample, params ClusterParams) []Cluster {
	if len(samples) == 0 {
		return nil
	}

	var clusters []Cluster

	for _, sample := range samples {
		p := sample.Position

		assigned := false
		for i := range clusters {
			c := &clusters[i]
			if geom.Distance(p, c.Center) <= params.Radius {
				c.Members = append(c.Members, p)
				c.Count++
				c.TimeSpent += params.DwellIncrement
				c.Center = centroid(c.Members)
				assigned = true
				break
			}
		}

		if !assigned {
			clusters = append(clusters, Cluster{
				Center:    p,
				Members:   []geom.Vec3{p},
				Count:     1,
				TimeSpent: params.DwellIncrement,
			})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TimeSpent > clusters[j].TimeSpent
	})

	if params.TopK >= 0 && len(clusters) > params.TopK {
		clusters = clusters[:params.TopK]
	}
	return clusters
}

// centroid computes the exact coordinate-wise mean of a member list.
func centroid(members []geom.Vec3) geom.Vec3 {
	var sum geom.Vec3
	for _, m := range members {
		sum[0] += m[0]
		sum[1] += m[1]
		sum[2] += m[2]
	}
	n := float64(len(members))
	return geom.Vec3{sum[0] / n, sum[1] / n, sum[2] / n}
}
