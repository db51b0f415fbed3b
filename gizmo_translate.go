package trident

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// TranslateGizmo shows axis arrows, plane tabs, and a free-move octahedron.
type TranslateGizmo struct {
	gizmoBase
}

func NewTranslateGizmo() *TranslateGizmo {
	ninety := mgl32.DegToRad(90)

	handles := []handleDef{
		{name: "X", geom: axisArrow(), rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Red},
		{name: "Y", geom: axisArrow(), color: colornames.Lime},
		{name: "Z", geom: axisArrow(), rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Blue},
		{name: "XYZ", geom: NewOctahedronGeometry(0.1), color: colornames.White},
		{name: "XY", geom: NewPlaneGeometry(0.29, 0.29), position: mgl32.Vec3{0.15, 0.15, 0}, color: colornames.Yellow},
		{name: "YZ", geom: NewPlaneGeometry(0.29, 0.29), position: mgl32.Vec3{0, 0.15, 0.15}, rotation: mgl32.Vec3{0, ninety, 0}, color: colornames.Cyan},
		{name: "XZ", geom: NewPlaneGeometry(0.29, 0.29), position: mgl32.Vec3{0.15, 0, 0.15}, rotation: mgl32.Vec3{-ninety, 0, 0}, color: colornames.Magenta},
	}

	pickers := []handleDef{
		{name: "X", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0.6, 0, 0}, rotation: mgl32.Vec3{0, 0, -ninety}, color: colornames.Red},
		{name: "Y", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0, 0.6, 0}, color: colornames.Lime},
		{name: "Z", geom: NewCylinderGeometry(0.2, 0, 1, 8), position: mgl32.Vec3{0, 0, 0.6}, rotation: mgl32.Vec3{ninety, 0, 0}, color: colornames.Blue},
		{name: "XYZ", geom: NewOctahedronGeometry(0.2), color: colornames.White},
		{name: "XY", geom: NewPlaneGeometry(0.4, 0.4), position: mgl32.Vec3{0.2, 0.2, 0}, color: colornames.Yellow},
		{name: "YZ", geom: NewPlaneGeometry(0.4, 0.4), position: mgl32.Vec3{0, 0.2, 0.2}, rotation: mgl32.Vec3{0, ninety, 0}, color: colornames.Cyan},
		{name: "XZ", geom: NewPlaneGeometry(0.4, 0.4), position: mgl32.Vec3{0.2, 0, 0.2}, rotation: mgl32.Vec3{-ninety, 0, 0}, color: colornames.Magenta},
	}

	return &TranslateGizmo{gizmoBase: *newGizmoBase(handles, pickers)}
}

func axisArrow() *Geometry {
	return NewArrowGeometry(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0.02, 0.25)
}

// SetActivePlane favors the plane most perpendicular to the eye for
// single-axis picks, so the drag point stays well conditioned.
func (g *TranslateGizmo) SetActivePlane(axis string, eye mgl32.Vec3) {
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
	case "XYZ":
		g.activePlane = g.planeByAxis["XYZE"]
	case "XY", "YZ", "XZ":
		g.activePlane = g.planeByAxis[axis]
	}
}
