package geom

import "math"

// ViewDistance is the eye distance used by every caller of Project.
const ViewDistance = 6.0

// minDepth bounds the projection denominator away from zero.
const minDepth = 1e-6

// Point2 is a projected point in CSS units. Z keeps the source depth.
type Point2 struct {
	X, Y, Z float64
}

// Project maps p onto a width x height device surface. fov is normally the
// surface height and distance is ViewDistance. A depth at or behind the eye
// is clamped to minDepth; see Depth to detect it.
func Project(p Vec3, width, height, fov, distance, dpr float64) Point2 {
	dpr = NormalizeDPR(dpr)
	factor := (fov / dpr) / Depth(p, distance)
	return Point2{
		X: p.X*factor + (width/dpr)/2,
		Y: p.Y*factor + (height/dpr)/2,
		Z: p.Z,
	}
}

// Depth returns the clamped projection denominator for p.
func Depth(p Vec3, distance float64) float64 {
	d := distance + p.Z
	if d < minDepth || math.IsNaN(d) {
		return minDepth
	}
	return d
}

// NormalizeDPR returns dpr, or 1 when it is zero, negative or not a number.
func NormalizeDPR(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return 1
	}
	return dpr
}
