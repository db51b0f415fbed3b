package trident

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraKind int

const (
	Perspective CameraKind = iota
	Orthographic
)

// Camera provides the view used for picking. It is deliberately minimal: the
// controls only need its world transform, projection, and the ortho view size.
type Camera struct {
	Kind CameraKind

	Fov    float32 // vertical field of view, degrees (perspective)
	Size   float32 // vertical view size, world units (orthographic)
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewPerspectiveCamera(fovDeg, aspect, near, far float32) *Camera {
	return &Camera{
		Kind:     Perspective,
		Fov:      fovDeg,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Rotation: mgl32.QuatIdent(),
	}
}

func NewOrthographicCamera(size, aspect, near, far float32) *Camera {
	return &Camera{
		Kind:     Orthographic,
		Size:     size,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Rotation: mgl32.QuatIdent(),
	}
}

// LookAt orients the camera toward target.
func (c *Camera) LookAt(target, up mgl32.Vec3) {
	c.Rotation = lookAtRotation(c.Position.Sub(target), up)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	rot := c.Rotation.Inverse().Mat4()
	trans := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return rot.Mul4(trans)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.Kind == Orthographic {
		h := c.Size / 2
		w := h * c.Aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(world mgl32.Vec3) mgl32.Vec3 {
	vp := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	return transformPoint(vp, world)
}

// Unproject maps normalized device coordinates back to a world point.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	inv := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
	return transformPoint(inv, ndc)
}
