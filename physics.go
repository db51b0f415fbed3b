package trident

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ColliderShape int

const (
	ShapeBox ColliderShape = iota
	ShapeSphere
)

type Collider struct {
	Shape       ColliderShape
	HalfExtents mgl32.Vec3 // box
	Radius      float32    // sphere
	Friction    float32
	Restitution float32
}

// PhysicsBody is the optional physics payload of a node. The controls only
// touch it to keep collision shapes in sync while a scale drag is live.
type PhysicsBody struct {
	Colliders []*Collider
	Mass      float32
	IsStatic  bool
}

// SyncShapes overwrites collider dimensions from the node scale: box half
// extents are half the scale per axis, sphere radius follows the X component.
func (b *PhysicsBody) SyncShapes(scale mgl32.Vec3) {
	for _, col := range b.Colliders {
		switch col.Shape {
		case ShapeBox:
			col.HalfExtents = scale.Mul(0.5)
		case ShapeSphere:
			col.Radius = scale.X()
		}
	}
}
