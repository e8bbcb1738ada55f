// Package geom holds the cube's geometry: points, rotations, the perspective
// projection and the canonical cube with its per-face paint.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an immutable point in world space. Rotations return a new value
// and never touch the receiver.
type Vec3 struct {
	X, Y, Z float64
}

// RotateX rotates the point around the X axis by deg degrees.
func (v Vec3) RotateX(deg float64) Vec3 {
	return v.transform(mgl64.Rotate3DX(mgl64.DegToRad(deg)))
}

// RotateY rotates the point around the Y axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	return v.transform(mgl64.Rotate3DY(mgl64.DegToRad(deg)))
}

// RotateZ rotates the point around the Z axis by deg degrees.
// The interaction model never calls it.
func (v Vec3) RotateZ(deg float64) Vec3 {
	return v.transform(mgl64.Rotate3DZ(mgl64.DegToRad(deg)))
}

// Norm returns the distance from the origin.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) transform(m mgl64.Mat3) Vec3 {
	r := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}
