package trident

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"golang.org/x/image/colornames"
)

// Node is an element of the scene graph. Transform components are local to the
// parent; the world matrix is cached and recomputed lazily after edits.
type Node struct {
	Id   string
	Name string

	Position   mgl32.Vec3
	Quaternion mgl32.Quat
	Scale      mgl32.Vec3

	Parent   *Node
	Children []*Node

	Visible bool
	Locked  bool

	Mesh *Mesh
	Body *PhysicsBody

	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

func NewNode(name string) *Node {
	return &Node{
		Id:               uuid.NewString(),
		Name:             name,
		Quaternion:       mgl32.QuatIdent(),
		Scale:            mgl32.Vec3{1, 1, 1},
		Visible:          true,
		worldMatrixDirty: true,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

// Matrix composes the local transform (translation * rotation * scale).
func (n *Node) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Quaternion.Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		local := n.Matrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.WorldMatrix().Mul4(local)
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos mgl32.Vec3) {
	n.Position = pos
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetQuaternion(q mgl32.Quat) {
	n.Quaternion = q
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.Scale = scale
	n.MarkWorldMatrixDirty()
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldRotationMatrix returns the rotation part of the world matrix with the
// scale divided out.
func (n *Node) WorldRotationMatrix() mgl32.Mat4 {
	return extractRotation(n.WorldMatrix())
}

func (n *Node) WorldQuaternion() mgl32.Quat {
	return mgl32.Mat4ToQuat(extractRotation(n.WorldMatrix()))
}

func (n *Node) WorldScale() mgl32.Vec3 {
	m := n.WorldMatrix()
	return mgl32.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
}

// Traverse visits the node and all descendants depth-first.
func (n *Node) Traverse(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Traverse(visit)
	}
}

// Mesh pairs triangle geometry with a material. Picker meshes are invisible
// but still participate in raycasting.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

func NewMeshNode(name string, geom *Geometry, mat *Material) *Node {
	n := NewNode(name)
	n.Mesh = &Mesh{Geometry: geom, Material: mat}
	return n
}

// Material carries the display color of a handle. Highlighting swaps the color
// for the shared highlight yellow and restores the base color when cleared.
type Material struct {
	Color       color.RGBA
	base        color.RGBA
	highlighted bool
}

func NewMaterial(c color.RGBA) *Material {
	return &Material{Color: c, base: c}
}

func (m *Material) SetHighlighted(on bool) {
	if m.highlighted == on {
		return
	}
	m.highlighted = on
	if on {
		m.Color = colornames.Yellow
	} else {
		m.Color = m.base
	}
}

func (m *Material) Highlighted() bool { return m.highlighted }
