package trident

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSyncShapesFollowsScale(t *testing.T) {
	body := &PhysicsBody{
		Colliders: []*Collider{
			{Shape: ShapeBox},
			{Shape: ShapeSphere},
		},
		Mass: 2,
	}

	body.SyncShapes(mgl32.Vec3{2, 4, 6})

	want := mgl32.Vec3{1, 2, 3}
	if body.Colliders[0].HalfExtents != want {
		t.Errorf("Box half extents = %v, want %v", body.Colliders[0].HalfExtents, want)
	}
	if body.Colliders[1].Radius != 2 {
		t.Errorf("Sphere radius = %v, want 2", body.Colliders[1].Radius)
	}
}

func TestSyncShapesEmptyBody(t *testing.T) {
	body := &PhysicsBody{}
	body.SyncShapes(mgl32.Vec3{1, 1, 1}) // must not panic
}
