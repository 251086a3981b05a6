// Package xform compiles a pitch/yaw/roll Euler rotation and a world
// position into the rotation and world matrices the rest of the renderer
// consumes.
package xform

import (
	"math"

	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// Transform holds a named actor or camera's placement in world space.
// Rotation is specified in degrees (pitch, yaw, roll); the compiled
// rotation matrix is always orthonormal.
type Transform struct {
	Pitch, Yaw, Roll float64 // degrees
	Position         vecmath.Vec3
}

// Identity returns the transform at the world origin with no rotation.
func Identity() Transform {
	return Transform{}
}

// NewTransform creates a transform from Euler angles (degrees) and a world
// position.
func NewTransform(pitch, yaw, roll float64, position vecmath.Vec3) Transform {
	return Transform{Pitch: pitch, Yaw: yaw, Roll: roll, Position: position}
}

// RotationMatrix composes the orthonormal rotation matrix as yaw * pitch *
// roll, matching the fixed axis order pitch=X, yaw=Y, roll=Z.
func (t Transform) RotationMatrix() vecmath.Mat3 {
	pitch := vecmath.RotationX(degToRad(t.Pitch))
	yaw := vecmath.RotationY(degToRad(t.Yaw))
	roll := vecmath.RotationZ(degToRad(t.Roll))
	return yaw.Mul(pitch).Mul(roll)
}

// WorldMatrix compiles the 4x4 world matrix: translate(Position) *
// RotationMatrix().
func (t Transform) WorldMatrix() vecmath.Mat4 {
	return vecmath.NewWorldMatrix(t.RotationMatrix(), t.Position)
}

// TransformPoint maps a local-space point into world space.
func (t Transform) TransformPoint(p vecmath.Vec3) vecmath.Vec3 {
	return t.WorldMatrix().MulPoint(p)
}

// TransformDirection maps a local-space direction into world space
// (rotation only).
func (t Transform) TransformDirection(d vecmath.Vec3) vecmath.Vec3 {
	return t.RotationMatrix().MulVec3(d)
}

// Forward returns the world-space forward axis, i.e. the local -Z axis
// rotated into world space. Directional lights shine along -Forward.
func (t Transform) Forward() vecmath.Vec3 {
	return t.TransformDirection(vecmath.NewVec3(0, 0, -1)).Normalize()
}

// Up returns the world-space up axis, i.e. the local +Y axis rotated into
// world space. Planes use this as their world-space normal.
func (t Transform) Up() vecmath.Vec3 {
	return t.TransformDirection(vecmath.NewVec3(0, 1, 0)).Normalize()
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
