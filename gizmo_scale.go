package trident

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// ScaleGizmo shows axis stems ending in boxes plus a center box for uniform
// scaling ("XYZE").
type ScaleGizmo struct {
	gizmoBase
}

func NewScaleGizmo() *ScaleGizmo {
	ninety := mgl32.DegToRad(90)

	handles := []handleDef{
		{name: "X", geom: axisStem(), rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Red},
		{name: "Y", geom: axisStem(), color: colornames.Lime},
		{name: "Z", geom: axisStem(), rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Blue},
		{name: "XYZE", geom: NewBoxGeometry(0.125, 0.125, 0.125), color: colornames.Gray},
	}

	pickers := []handleDef{
		{name: "X", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0.6, 0, 0}, rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Red},
		{name: "Y", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0, 0.6, 0}, color: colornames.Lime},
		{name: "Z", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0, 0, 0.6}, rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Blue},
		{name: "XYZE", geom: NewBoxGeometry(0.4, 0.4, 0.4), color: colornames.Gray},
	}

	return &ScaleGizmo{gizmoBase: *newGizmoBase(handles, pickers)}
}

// axisStem is a thin shaft with a box cap at the unit mark.
func axisStem() *Geometry {
	stem := NewCylinderGeometry(0.02, 0.02, 0.875, 8)
	stem.Translate(mgl32.Vec3{0, 0.4375, 0})
	tip := NewBoxGeometry(0.125, 0.125, 0.125)
	tip.Translate(mgl32.Vec3{0, 0.9375, 0})
	return stem.Merge(tip)
}

func (g *ScaleGizmo) SetActivePlane(axis string, eye mgl32.Vec3) {
	e := g.localEye(eye)
	switch axis {
	case "X":
		g.activePlane = g.planeByAxis["XY"]
		if mgl32.Abs(e.Y()) > mgl32.Abs(e.Z()) {
			g.activePlane = g.planeByAxis["XZ"]
		}
	case "Y":
		g.activePlane = g.planeByAxis["XY"]
		if mgl32.Abs(e.X()) > mgl32.Abs(e.Z()) {
			g.activePlane = g.planeByAxis["YZ"]
		}
	case "Z":
		g.activePlane = g.planeByAxis["XY"]
		if mgl32.Abs(e.X()) > mgl32.Abs(e.Y()) {
			g.activePlane = g.planeByAxis["YZ"]
		}
	case "XYZE":
		g.activePlane = g.planeByAxis["XYZE"]
	}
}
