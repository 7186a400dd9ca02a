// Package spatial implements the geometry primitives (C1): 3-vectors,
// 3x3 rotation matrices and poses in the OMAF referential (x forward,
// y left, z up), built on top of github.com/go-gl/mathgl.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in the OMAF referential.
type Vec3 = mgl64.Vec3

// NaNVec3 is the sentinel for "no data" in any pipeline buffer holding
// world-space coordinates; every component is NaN.
func NaNVec3() Vec3 {
	n := math.NaN()
	return Vec3{n, n, n}
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v Vec3) bool {
	return !math.IsNaN(v[0]) && !math.IsNaN(v[1]) && !math.IsNaN(v[2]) &&
		!math.IsInf(v[0], 0) && !math.IsInf(v[1], 0) && !math.IsInf(v[2], 0)
}

// Norm returns the Euclidean length of v — the equirectangular "radius".
func Norm(v Vec3) float64 {
	return v.Len()
}
