package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the axis a boid mesh points along before any rotation.
var Up = Vector3D{Y: 1}

// Identity returns the "no rotation" quaternion.
func Identity() mgl64.Quat {
	return mgl64.QuatIdent()
}

// RotationFromTo returns the shortest arc rotation taking direction from onto
// direction to. The angle comes from atan2(|from×to|, from·to), which stays
// exact next to 180°. Exactly opposite directions turn about Z when that is
// perpendicular to from, so planar headings stay in the plane.
// A zero vector on either side yields the identity.
func RotationFromTo(from, to Vector3D) mgl64.Quat {
	from, to = from.Normalize(), to.Normalize()
	if from.IsZero() || to.IsZero() {
		return Identity()
	}
	axis := from.Cross(to)
	sin, cos := axis.Len(), from.Dot(to)
	if sin < Epsilon {
		if cos > 0 {
			return Identity()
		}
		axis = perpendicular(from)
	}
	return mgl64.QuatRotate(math.Atan2(sin, cos), axis.Normalize().Vec3())
}

// perpendicular returns a unit vector orthogonal to the unit vector v,
// preferring Z.
func perpendicular(v Vector3D) Vector3D {
	z := Vector3D{Z: 1}
	if math.Abs(v.Dot(z)) < Epsilon {
		return z
	}
	return v.Cross(Vector3D{X: 1}).Add(v.Cross(Vector3D{Y: 1})).Normalize()
}

// Rotate applies q to v.
func Rotate(q mgl64.Quat, v Vector3D) Vector3D {
	return FromVec3(q.Rotate(v.Vec3()))
}

// HeadingAngle returns the angle, in radians relative to the X axis, of the
// planar direction Up is rotated to by q. Range: [-Pi, Pi].
// Renderers drawing in 2D use this instead of the full quaternion.
func HeadingAngle(q mgl64.Quat) float64 {
	d := Rotate(q, Up)
	return math.Atan2(d.Y, d.X)
}
