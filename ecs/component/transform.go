package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity pose. Rotation is a unit quaternion; the local
// forward axis is -Z and up is +Y. For children of another entity the pose
// is relative to the parent.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()

func NewTransform(pos mgl64.Vec3, rot mgl64.Quat) *Transform {
	return &Transform{Position: pos, Rotation: rot.Normalize()}
}

// Forward returns the unit vector the entity faces.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Mul composes a parent pose with a child-local pose.
func (t Transform) Mul(local Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(local.Position)),
		Rotation: t.Rotation.Mul(local.Rotation).Normalize(),
	}
}
