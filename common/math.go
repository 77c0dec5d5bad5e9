package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta and returns
// target exactly once it is within reach, so callers can test arrival with ==.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	to := target.Sub(current)
	sq := to.Dot(to)
	if sq == 0 || (maxDelta >= 0 && sq <= maxDelta*maxDelta) {
		return target
	}
	dist := math.Sqrt(sq)
	return current.Add(to.Mul(maxDelta / dist))
}

// LookRotation returns the rotation whose +Z axis points along forward with
// +Y as close to up as possible. A zero forward yields the identity.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.Len() == 0 {
		return mgl64.QuatIdent()
	}
	z := forward.Normalize()
	x := up.Cross(z)
	if x.Len() < 1e-9 {
		// forward is parallel to up; pick any perpendicular right axis
		x = mgl64.Vec3{1, 0, 0}.Cross(z)
		if x.Len() < 1e-9 {
			x = mgl64.Vec3{0, 0, 1}.Cross(z)
		}
	}
	x = x.Normalize()
	y := z.Cross(x)
	m := mgl64.Mat3FromCols(x, y, z)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

// Yaw returns the heading of q on the X/Z plane in radians, measured from +Z
// toward +X.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return math.Atan2(f.X(), f.Z())
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
