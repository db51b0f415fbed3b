package trident

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	Node     *Node
}

// Raycaster casts a ray against node meshes. Visibility is ignored on purpose:
// gizmo pickers and constraint planes are invisible but still hit-tested.
type Raycaster struct {
	Ray Ray
}

// SetFromCamera builds a world-space ray through the given normalized device
// coordinates. Valid for both perspective and orthographic projections.
func (r *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam *Camera) {
	near := cam.Unproject(mgl32.Vec3{ndc.X(), ndc.Y(), -1})
	far := cam.Unproject(mgl32.Vec3{ndc.X(), ndc.Y(), 1})
	r.Ray.Origin = near
	r.Ray.Direction = far.Sub(near).Normalize()
}

// IntersectNode tests the node (and, if recursive, all descendants) and
// returns hits sorted nearest first.
func (r *Raycaster) IntersectNode(n *Node, recursive bool) []Hit {
	if n == nil {
		return nil
	}
	var hits []Hit
	if recursive {
		n.Traverse(func(child *Node) {
			if h, ok := r.intersectMesh(child); ok {
				hits = append(hits, h)
			}
		})
	} else if h, ok := r.intersectMesh(n); ok {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (r *Raycaster) intersectMesh(n *Node) (Hit, bool) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return Hit{}, false
	}
	world := n.WorldMatrix()
	geom := n.Mesh.Geometry

	// Broad phase against the world-space AABB of the transformed vertices.
	if len(geom.Vertices) > 12 {
		lo := mgl32.Vec3{float32(math.MaxFloat32), float32(math.MaxFloat32), float32(math.MaxFloat32)}
		hi := lo.Mul(-1)
		for _, v := range geom.Vertices {
			w := transformPoint(world, v)
			for i := 0; i < 3; i++ {
				if w[i] < lo[i] {
					lo[i] = w[i]
				}
				if w[i] > hi[i] {
					hi[i] = w[i]
				}
			}
		}
		if !rayIntersectsAABB(r.Ray, lo, hi) {
			return Hit{}, false
		}
	}

	closest := Hit{Distance: float32(math.MaxFloat32)}
	found := false
	for i := 0; i+2 < len(geom.Indices); i += 3 {
		v0 := transformPoint(world, geom.Vertices[geom.Indices[i]])
		v1 := transformPoint(world, geom.Vertices[geom.Indices[i+1]])
		v2 := transformPoint(world, geom.Vertices[geom.Indices[i+2]])
		if t, ok := rayTriangle(r.Ray, v0, v1, v2); ok && t < closest.Distance {
			closest = Hit{
				Distance: t,
				Point:    r.Ray.Origin.Add(r.Ray.Direction.Mul(t)),
				Node:     n,
			}
			found = true
		}
	}
	return closest, found
}

func rayIntersectsAABB(ray Ray, lo, hi mgl32.Vec3) bool {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if ray.Direction[i] == 0 {
			if ray.Origin[i] < lo[i] || ray.Origin[i] > hi[i] {
				return false
			}
			continue
		}
		inv := 1 / ray.Direction[i]
		t1 := (lo[i] - ray.Origin[i]) * inv
		t2 := (hi[i] - ray.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	return tmax >= 0 && tmin <= tmax
}

// rayTriangle is the Moller-Trumbore intersection test, double sided.
func rayTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
