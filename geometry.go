package trident

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list in object space. Gizmo construction
// bakes handle offsets directly into the vertex data, so node transforms only
// carry per-frame rotation and scale.
type Geometry struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

func (g *Geometry) ApplyMatrix(m mgl32.Mat4) *Geometry {
	for i, v := range g.Vertices {
		g.Vertices[i] = transformPoint(m, v)
	}
	return g
}

func (g *Geometry) Translate(offset mgl32.Vec3) *Geometry {
	return g.ApplyMatrix(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
}

func (g *Geometry) Rotate(q mgl32.Quat) *Geometry {
	return g.ApplyMatrix(q.Mat4())
}

func (g *Geometry) Merge(other *Geometry) *Geometry {
	base := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		g.Indices = append(g.Indices, base+idx)
	}
	return g
}

// Bounds returns the object-space AABB of the geometry.
func (g *Geometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(g.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := g.Vertices[0]
	hi := g.Vertices[0]
	for _, v := range g.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < lo[i] {
				lo[i] = v[i]
			}
			if v[i] > hi[i] {
				hi[i] = v[i]
			}
		}
	}
	return lo, hi
}

func NewBoxGeometry(sizeX, sizeY, sizeZ float32) *Geometry {
	hx, hy, hz := sizeX/2, sizeY/2, sizeZ/2
	verts := []mgl32.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // -z
		4, 5, 6, 4, 6, 7, // +z
		0, 1, 5, 0, 5, 4, // -y
		3, 7, 6, 3, 6, 2, // +y
		0, 4, 7, 0, 7, 3, // -x
		1, 2, 6, 1, 6, 5, // +x
	}
	return &Geometry{Vertices: verts, Indices: indices}
}

// NewPlaneGeometry builds a quad in the XY plane facing +Z.
func NewPlaneGeometry(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	return &Geometry{
		Vertices: []mgl32.Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewCylinderGeometry builds a capped cylinder along the Y axis. A zero top
// radius yields a cone, which is what the arrow tips and axis pickers use.
func NewCylinderGeometry(radiusTop, radiusBottom, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{}
	hy := height / 2

	top := make([]uint32, segments)
	bottom := make([]uint32, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		top[i] = uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices, mgl32.Vec3{radiusTop * c, hy, radiusTop * s})
		bottom[i] = uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices, mgl32.Vec3{radiusBottom * c, -hy, radiusBottom * s})
	}
	topCenter := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, mgl32.Vec3{0, hy, 0})
	bottomCenter := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, mgl32.Vec3{0, -hy, 0})

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		// side
		g.Indices = append(g.Indices,
			top[i], bottom[i], top[j],
			top[j], bottom[i], bottom[j])
		// caps
		g.Indices = append(g.Indices, topCenter, top[i], top[j])
		g.Indices = append(g.Indices, bottomCenter, bottom[j], bottom[i])
	}
	return g
}

// NewTorusGeometry builds a torus around the Z axis. arc < 2*pi yields a
// partial ring, as used by the rotate gizmo handles.
func NewTorusGeometry(radius, tube float32, radialSegments, tubularSegments int, arc float32) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}
	g := &Geometry{}

	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float64(arc) * float64(i) / float64(tubularSegments)
			v := 2 * math.Pi * float64(j) / float64(radialSegments)
			cx := float64(radius) + float64(tube)*math.Cos(v)
			g.Vertices = append(g.Vertices, mgl32.Vec3{
				float32(cx * math.Cos(u)),
				float32(cx * math.Sin(u)),
				float32(float64(tube) * math.Sin(v)),
			})
		}
	}
	stride := uint32(tubularSegments + 1)
	for j := 0; j < radialSegments; j++ {
		for i := 0; i < tubularSegments; i++ {
			a := uint32(j)*stride + uint32(i)
			b := a + stride
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}

func NewOctahedronGeometry(radius float32) *Geometry {
	return &Geometry{
		Vertices: []mgl32.Vec3{
			{radius, 0, 0}, {-radius, 0, 0},
			{0, radius, 0}, {0, -radius, 0},
			{0, 0, radius}, {0, 0, -radius},
		},
		Indices: []uint32{
			0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
			1, 4, 2, 1, 3, 4, 1, 5, 3, 1, 2, 5,
		},
	}
}

func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{}
	for y := 0; y <= heightSegments; y++ {
		theta := math.Pi * float64(y) / float64(heightSegments)
		for x := 0; x <= widthSegments; x++ {
			phi := 2 * math.Pi * float64(x) / float64(widthSegments)
			g.Vertices = append(g.Vertices, mgl32.Vec3{
				float32(float64(radius) * math.Sin(theta) * math.Cos(phi)),
				float32(float64(radius) * math.Cos(theta)),
				float32(float64(radius) * math.Sin(theta) * math.Sin(phi)),
			})
		}
	}
	stride := uint32(widthSegments + 1)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*stride + uint32(x)
			b := a + stride
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}

// NewArrowGeometry builds a shaft plus cone tip from start to end, used by the
// translate handles.
func NewArrowGeometry(start, end mgl32.Vec3, thickness, headLength float32) *Geometry {
	dir := end.Sub(start)
	length := dir.Len()
	if length == 0 {
		return &Geometry{}
	}
	shaftLen := length - headLength
	if shaftLen < 0 {
		shaftLen = 0
	}

	shaft := NewCylinderGeometry(thickness, thickness, shaftLen, 8)
	shaft.Translate(mgl32.Vec3{0, shaftLen / 2, 0})
	head := NewCylinderGeometry(0, thickness*3, headLength, 8)
	head.Translate(mgl32.Vec3{0, shaftLen + headLength/2, 0})
	shaft.Merge(head)

	// orient +Y onto dir, then move to start
	rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, dir)
	shaft.Rotate(rot)
	shaft.Translate(start)
	return shaft
}
