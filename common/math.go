package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

var (
	// ForwardAxis is the local facing direction of every entity.
	ForwardAxis = mgl64.Vec3{0, 0, -1}
	// WorldUp is the fixed up vector used when building look rotations.
	WorldUp = mgl64.Vec3{0, 1, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Forward returns the world-space facing of rotation q.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(ForwardAxis)
}

// DistanceSquared avoids the square root for nearest-of comparisons.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// LookRotation builds the rotation whose forward (-Z) points along dir with
// +Y as close to up as possible. It reports false for a zero direction.
func LookRotation(dir, up mgl64.Vec3) (mgl64.Quat, bool) {
	if dir.Dot(dir) < epsilon {
		return mgl64.QuatIdent(), false
	}
	back := dir.Mul(-1).Normalize()
	right := up.Cross(back)
	if right.Dot(right) < epsilon {
		right = anyOrthogonal(back)
	}
	right = right.Normalize()
	newUp := back.Cross(right)

	m := mgl64.Mat4{
		right[0], right[1], right[2], 0,
		newUp[0], newUp[1], newUp[2], 0,
		back[0], back[1], back[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize(), true
}

// LookAt is LookRotation from eye toward target with the world up vector.
func LookAt(eye, target mgl64.Vec3) (mgl64.Quat, bool) {
	return LookRotation(target.Sub(eye), WorldUp)
}

func anyOrthogonal(v mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(v[0]) < 0.9 {
		return v.Cross(mgl64.Vec3{1, 0, 0})
	}
	return v.Cross(mgl64.Vec3{0, 1, 0})
}

// AngleBetween is the rotation angle in radians that takes a onto b along
// the shortest arc.
func AngleBetween(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Dot(b))
	return 2 * math.Acos(math.Min(d, 1))
}

// RotateTowards turns from toward to by at most maxAngle radians. A
// non-positive budget leaves from untouched.
func RotateTowards(from, to mgl64.Quat, maxAngle float64) mgl64.Quat {
	if maxAngle <= 0 {
		return from
	}
	angle := AngleBetween(from, to)
	if angle <= maxAngle {
		return to
	}
	return slerp(from, to, maxAngle/angle)
}

// slerp interpolates along the shortest arc; t scales the rotation angle
// exactly, which keeps turn-rate limits exact.
func slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	a = a.Normalize()
	b = b.Normalize()
	d := a.Dot(b)
	if d < 0 {
		b = b.Scale(-1)
		d = -d
	}
	if d > 1-epsilon {
		return a
	}
	theta := math.Acos(d) * t
	rel := b.Sub(a.Scale(d)).Normalize()
	return a.Scale(math.Cos(theta)).Add(rel.Scale(math.Sin(theta))).Normalize()
}

// RotateVectorTowards returns the rotation that turns unit vector from
// toward unit vector to by at most maxAngle radians. It reports false when
// the vectors are parallel or anti-parallel and the axis is undefined.
func RotateVectorTowards(from, to mgl64.Vec3, maxAngle float64) (mgl64.Quat, bool) {
	axis := from.Cross(to)
	if axis.Len() < 1e-6 || maxAngle <= 0 {
		return mgl64.QuatIdent(), false
	}
	angle := math.Acos(mgl64.Clamp(from.Dot(to), -1, 1))
	return mgl64.QuatRotate(math.Min(angle, maxAngle), axis.Normalize()), true
}

// VectorAngle is the unsigned angle between two vectors in radians.
func VectorAngle(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < epsilon || lb < epsilon {
		return 0
	}
	return math.Acos(mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1))
}
