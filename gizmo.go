package trident

import (
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

type TransformMode int

const (
	ModeNone TransformMode = iota
	ModeTranslate
	ModeRotate
	ModeScale
)

func (m TransformMode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	default:
		return "none"
	}
}

// Gizmo is the per-mode handle widget set. Handles are the visible meshes,
// pickers the enlarged invisible hit-test meshes sharing the handle names, and
// the four canonical constraint planes convert pointer rays to drag points.
type Gizmo interface {
	Root() *Node
	Pickers() *Node

	// Update orients camera-facing children (names containing "E") toward eye
	// and every axis-named child to the given rotation.
	Update(rotation mgl32.Quat, eye mgl32.Vec3)

	// Highlight marks the handle whose name equals axis, clearing the rest.
	Highlight(axis string)

	// SetActivePlane picks the constraint plane for the axis token, using eye
	// to break ties for single-axis picks.
	SetActivePlane(axis string, eye mgl32.Vec3)
	ActivePlane() *Node

	Dispose()
}

// newGizmoForMode is the factory keyed on mode. Unknown modes get the inert
// base gizmo.
func newGizmoForMode(mode TransformMode) Gizmo {
	switch mode {
	case ModeTranslate:
		return NewTranslateGizmo()
	case ModeRotate:
		return NewRotateGizmo()
	case ModeScale:
		return NewScaleGizmo()
	default:
		return NewNullGizmo()
	}
}

// handleDef describes one named mesh with its local offset. The offset is
// baked into the vertex data at construction so per-frame pose updates only
// touch rotation and scale.
type handleDef struct {
	name     string
	geom     *Geometry
	position mgl32.Vec3
	rotation mgl32.Vec3 // euler, radians
	color    color.RGBA
}

type gizmoBase struct {
	root    *Node
	handles *Node
	pickers *Node
	planes  *Node

	planeByAxis map[string]*Node
	activePlane *Node
}

const planeExtent = 500

func newGizmoBase(handleDefs, pickerDefs []handleDef) *gizmoBase {
	g := &gizmoBase{
		root:        NewNode("gizmo"),
		handles:     NewNode("handles"),
		pickers:     NewNode("pickers"),
		planes:      NewNode("planes"),
		planeByAxis: make(map[string]*Node),
	}
	g.root.AddChild(g.handles)
	g.root.AddChild(g.pickers)
	g.root.AddChild(g.planes)

	// Canonical plane orientations are baked so Update can own the node
	// rotation. XYZE starts facing +Z and tracks the camera from then on.
	planeOrient := map[string]mgl32.Vec3{
		"XY":   {0, 0, 0},
		"YZ":   {0, mgl32.DegToRad(90), 0},
		"XZ":   {mgl32.DegToRad(-90), 0, 0},
		"XYZE": {0, 0, 0},
	}
	for _, name := range []string{"XY", "YZ", "XZ", "XYZE"} {
		geom := NewPlaneGeometry(planeExtent, planeExtent)
		e := planeOrient[name]
		geom.Rotate(mgl32.AnglesToQuat(e.X(), e.Y(), e.Z(), mgl32.XYZ))
		plane := NewMeshNode(name, geom, NewMaterial(colornames.Gray))
		plane.Visible = false
		g.planes.AddChild(plane)
		g.planeByAxis[name] = plane
	}
	g.activePlane = g.planeByAxis["XYZE"]

	for _, def := range handleDefs {
		g.handles.AddChild(buildHandleNode(def, true))
	}
	for _, def := range pickerDefs {
		g.pickers.AddChild(buildHandleNode(def, false))
	}
	return g
}

func buildHandleNode(def handleDef, visible bool) *Node {
	geom := def.geom
	rot := mgl32.AnglesToQuat(def.rotation.X(), def.rotation.Y(), def.rotation.Z(), mgl32.XYZ)
	geom.Rotate(rot)
	geom.Translate(def.position)
	n := NewMeshNode(def.name, geom, NewMaterial(def.color))
	n.Visible = visible
	return n
}

func (g *gizmoBase) Root() *Node    { return g.root }
func (g *gizmoBase) Pickers() *Node { return g.pickers }

func (g *gizmoBase) Update(rotation mgl32.Quat, eye mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	for _, group := range []*Node{g.handles, g.pickers, g.planes} {
		for _, child := range group.Children {
			if strings.Contains(child.Name, "E") {
				child.SetQuaternion(lookAtRotation(eye, up))
			} else if strings.ContainsAny(child.Name, "XYZ") {
				child.SetQuaternion(rotation)
			}
		}
	}
}

func (g *gizmoBase) Highlight(axis string) {
	for _, child := range g.handles.Children {
		if child.Mesh != nil && child.Mesh.Material != nil {
			child.Mesh.Material.SetHighlighted(child.Name == axis)
		}
	}
}

// SetActivePlane is a no-op on the base gizmo; concrete modes override it.
func (g *gizmoBase) SetActivePlane(axis string, eye mgl32.Vec3) {}

func (g *gizmoBase) ActivePlane() *Node { return g.activePlane }

func (g *gizmoBase) Dispose() {
	if g.root.Parent != nil {
		g.root.Parent.RemoveChild(g.root)
	}
}

// localEye expresses the eye vector in the gizmo's current rotation frame,
// which is what the plane-selection heuristics compare against.
func (g *gizmoBase) localEye(eye mgl32.Vec3) mgl32.Vec3 {
	inv := extractRotation(g.planeByAxis["XY"].WorldMatrix()).Inv()
	return transformDirection(inv, eye)
}

// NullGizmo is the inert gizmo used for ModeNone and unknown modes.
type NullGizmo struct {
	gizmoBase
}

func NewNullGizmo() *NullGizmo {
	return &NullGizmo{gizmoBase: *newGizmoBase(nil, nil)}
}
