package trident

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// extractRotation returns a rotation-only matrix: the upper 3x3 basis of m
// with each column normalized to unit length.
func extractRotation(m mgl32.Mat4) mgl32.Mat4 {
	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()
	if l := x.Len(); l > 0 {
		x = x.Mul(1 / l)
	}
	if l := y.Len(); l > 0 {
		y = y.Mul(1 / l)
	}
	if l := z.Len(); l > 0 {
		z = z.Mul(1 / l)
	}
	return mgl32.Mat4{
		x.X(), x.Y(), x.Z(), 0,
		y.X(), y.Y(), y.Z(), 0,
		z.X(), z.Y(), z.Z(), 0,
		0, 0, 0, 1,
	}
}

// lookAtRotation builds the rotation that points the local +Z axis along eye.
// Degenerate up/eye pairs fall back to a Z-aligned up vector.
func lookAtRotation(eye, up mgl32.Vec3) mgl32.Quat {
	z := eye
	if z.Len() == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < 1e-6 {
		x = mgl32.Vec3{0, 0, 1}.Cross(z)
		if x.Len() < 1e-6 {
			x = mgl32.Vec3{1, 0, 0}
		}
	}
	x = x.Normalize()
	y := z.Cross(x)

	m := mgl32.Mat4{
		x.X(), x.Y(), x.Z(), 0,
		y.X(), y.Y(), y.Z(), 0,
		z.X(), z.Y(), z.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl32.Mat4ToQuat(m)
}

// atan2Angles reduces a vector to the pairwise atan2 triple used by the rotate
// drag math: one angle per principal axis.
func atan2Angles(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Atan2(float64(v.Z()), float64(v.Y()))),
		float32(math.Atan2(float64(v.X()), float64(v.Z()))),
		float32(math.Atan2(float64(v.Y()), float64(v.X()))),
	}
}

func angleBetween(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return float32(math.Acos(float64(cos)))
}

func roundToMultiple(v, step float32) float32 {
	if step == 0 {
		return v
	}
	return float32(math.Round(float64(v/step))) * step
}

func compMul(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// safeInverse inverts each component. A zero component inverts to zero so a
// degenerate parent scale drops the delta instead of producing Inf.
func safeInverse(v mgl32.Vec3) mgl32.Vec3 {
	inv := func(c float32) float32 {
		if c == 0 {
			return 0
		}
		return 1 / c
	}
	return mgl32.Vec3{inv(v.X()), inv(v.Y()), inv(v.Z())}
}

func transformDirection(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

func transformPoint(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	out := m.Mul4x1(v.Vec4(1))
	if w := out.W(); w != 0 && w != 1 {
		return out.Vec3().Mul(1 / w)
	}
	return out.Vec3()
}
