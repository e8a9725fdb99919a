package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

func Clamp01(val float32) float32 {
	return mgl32.Clamp(val, 0, 1)
}

func Lerp(start, end, rate float32) float32 {
	return start + (end-start)*rate
}

func Vec3Lerp(start, end mgl32.Vec3, rate float32) mgl32.Vec3 {
	return start.Add(end.Sub(start).Mul(rate))
}

func Vec3Mul(v1, v2 mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v1.X() * v2.X(), v1.Y() * v2.Y(), v1.Z() * v2.Z()}
}

func DistanceSqr(v1, v2 mgl32.Vec3) float32 {
	d := v1.Sub(v2)
	return d.Dot(d)
}

// TransformPoint 按点变换（w=1），带平移
func TransformPoint(mat mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return mat.Mul4x1(v.Vec4(1)).Vec3()
}

// SafeNormalize 零向量返回 false，调用方应当跳过修正而不是产生 NaN
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l <= 0 {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// RotationTo from 旋转到 to 的最短旋转，任一为零向量时失败
func RotationTo(from, to mgl32.Vec3) (mgl32.Quat, bool) {
	from, ok1 := SafeNormalize(from)
	to, ok2 := SafeNormalize(to)
	if !ok1 || !ok2 {
		return mgl32.QuatIdent(), false
	}
	return mgl32.QuatBetweenVectors(from, to).Normalize(), true
}

// ProjectOnPlane 把 pos 正交投影到过 origin 法线为 normal 的平面上
func ProjectOnPlane(pos, normal, origin mgl32.Vec3) mgl32.Vec3 {
	normal, ok := SafeNormalize(normal)
	if !ok {
		return pos
	}
	dist := pos.Sub(origin).Dot(normal)
	return pos.Sub(normal.Mul(dist))
}

// EulerToQuat 角度制 XYZ 欧拉角
func EulerToQuat(euler mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(mgl32.DegToRad(euler.X()), mgl32.DegToRad(euler.Y()), mgl32.DegToRad(euler.Z()), mgl32.XYZ)
}
