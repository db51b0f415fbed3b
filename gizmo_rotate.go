package trident

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// RotateGizmo shows three half-rings, one per axis, plus the outer
// screen-space ring "E" and an invisible trackball sphere "XYZE".
type RotateGizmo struct {
	gizmoBase
}

func NewRotateGizmo() *RotateGizmo {
	ninety := mgl32.DegToRad(90)
	pi := float32(math.Pi)

	handles := []handleDef{
		{name: "X", geom: NewTorusGeometry(1, 0.015, 4, 32, pi), rotation: mgl32.Vec3{0, -ninety, -ninety}, color: colornames.Red},
		{name: "Y", geom: NewTorusGeometry(1, 0.015, 4, 32, pi), rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Lime},
		{name: "Z", geom: NewTorusGeometry(1, 0.015, 4, 32, pi), rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Blue},
		{name: "E", geom: NewTorusGeometry(1.25, 0.015, 4, 64, 2*pi), color: colornames.Yellow},
	}

	pickers := []handleDef{
		{name: "X", geom: NewTorusGeometry(1, 0.12, 4, 12, pi), rotation: mgl32.Vec3{0, -ninety, -ninety}, color: colornames.Red},
		{name: "Y", geom: NewTorusGeometry(1, 0.12, 4, 12, pi), rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Lime},
		{name: "Z", geom: NewTorusGeometry(1, 0.12, 4, 12, pi), rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Blue},
		{name: "E", geom: NewTorusGeometry(1.25, 0.12, 2, 24, 2*pi), color: colornames.Yellow},
		{name: "XYZE", geom: NewSphereGeometry(0.7, 10, 8), color: colornames.Gray},
	}

	return &RotateGizmo{gizmoBase: *newGizmoBase(handles, pickers)}
}

func (g *RotateGizmo) SetActivePlane(axis string, eye mgl32.Vec3) {
	switch axis {
	case "E", "XYZE":
		g.activePlane = g.planeByAxis["XYZE"]
	case "X":
		g.activePlane = g.planeByAxis["YZ"]
	case "Y":
		g.activePlane = g.planeByAxis["XZ"]
	case "Z":
		g.activePlane = g.planeByAxis["XY"]
	}
}

// Update spins each half-ring around its own axis so the visible half keeps
// facing the camera.
func (g *RotateGizmo) Update(rotation mgl32.Quat, eye mgl32.Vec3) {
	g.gizmoBase.Update(rotation, eye)

	e := rotation.Inverse().Rotate(eye)
	for _, group := range []*Node{g.handles, g.pickers} {
		for _, child := range group.Children {
			switch child.Name {
			case "X":
				q := mgl32.QuatRotate(float32(math.Atan2(float64(-e.Y()), float64(e.Z()))), mgl32.Vec3{1, 0, 0})
				child.SetQuaternion(rotation.Mul(q))
			case "Y":
				q := mgl32.QuatRotate(float32(math.Atan2(float64(e.X()), float64(e.Z()))), mgl32.Vec3{0, 1, 0})
				child.SetQuaternion(rotation.Mul(q))
			case "Z":
				q := mgl32.QuatRotate(float32(math.Atan2(float64(e.Y()), float64(e.X()))), mgl32.Vec3{0, 0, 1})
				child.SetQuaternion(rotation.Mul(q))
			}
		}
	}
}
