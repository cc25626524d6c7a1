// Package geom provides the small amount of 3D vector math the analyzer
// needs: Euclidean distance between positions and the ground-plane area
// spanned by a bounding box.
package geom

import "math"

// Vec3 is a position in world coordinates. The array layout matches the
// [x, y, z] JSON encoding used by the telemetry recorder, so values
// marshal and unmarshal without adapters.
type Vec3 [3]float64

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second (vertical) component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Vec3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarArea returns the ground-plane (X/Z) area of the box spanned by
// min and max. The vertical axis is ignored on purpose: the result
// measures floor coverage, not enclosing volume. Degenerate bounds
// (max < min) produce a negative area and are passed through unmodified.
func PlanarArea(min, max Vec3) float64 {
	width := max[0] - min[0]
	depth := max[2] - min[2]
	return width * depth
}
