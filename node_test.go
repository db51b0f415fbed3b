package trident

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"
)

func TestNodeWorldMatrixComposition(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(mgl32.Vec3{10, 0, 0})

	child := NewNode("child")
	child.SetPosition(mgl32.Vec3{0, 5, 0})
	parent.AddChild(child)

	grandchild := NewNode("grandchild")
	grandchild.SetPosition(mgl32.Vec3{0, 0, 2})
	child.AddChild(grandchild)

	pos := grandchild.WorldPosition()
	assert.InDelta(t, 10, pos.X(), 1e-5)
	assert.InDelta(t, 5, pos.Y(), 1e-5)
	assert.InDelta(t, 2, pos.Z(), 1e-5)
}

func TestNodeWorldMatrixInvalidation(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	child.SetPosition(mgl32.Vec3{1, 0, 0})
	parent.AddChild(child)

	// Prime the cache, then move the parent.
	_ = child.WorldPosition()
	parent.SetPosition(mgl32.Vec3{0, 3, 0})

	pos := child.WorldPosition()
	assert.InDelta(t, 1, pos.X(), 1e-5)
	assert.InDelta(t, 3, pos.Y(), 1e-5)
}

func TestNodeWorldRotationAndScale(t *testing.T) {
	parent := NewNode("parent")
	parent.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	parent.SetScale(mgl32.Vec3{2, 3, 4})

	child := NewNode("child")
	parent.AddChild(child)

	scale := child.WorldScale()
	assert.InDelta(t, 2, scale.X(), 1e-4)
	assert.InDelta(t, 3, scale.Y(), 1e-4)
	assert.InDelta(t, 4, scale.Z(), 1e-4)

	// World rotation must come out with the scale divided away.
	rotated := child.WorldQuaternion().Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, rotated.X(), 1e-4)
	assert.InDelta(t, 1, rotated.Y(), 1e-4)
}

func TestNodeReparenting(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AddChild(child)
	b.AddChild(child)

	assert.Empty(t, a.Children)
	assert.Len(t, b.Children, 1)
	assert.Same(t, b, child.Parent)
}

func TestNodeTraverseVisitsAll(t *testing.T) {
	root := NewNode("root")
	c1 := NewNode("c1")
	c2 := NewNode("c2")
	root.AddChild(c1)
	c1.AddChild(c2)

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"root", "c1", "c2"}, names)
}

func TestNodeIdsAreUnique(t *testing.T) {
	a := NewNode("a")
	b := NewNode("a")
	if a.Id == b.Id {
		t.Errorf("Two nodes should never share an id")
	}
}

func TestMaterialHighlightRestoresBaseColor(t *testing.T) {
	m := NewMaterial(colornames.Red)

	m.SetHighlighted(true)
	assert.Equal(t, colornames.Yellow, m.Color)

	// Toggling twice is a no-op in between.
	m.SetHighlighted(true)
	assert.Equal(t, colornames.Yellow, m.Color)

	m.SetHighlighted(false)
	assert.Equal(t, colornames.Red, m.Color)
}
