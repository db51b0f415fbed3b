package trident

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

type stubPointer struct {
	pos      mgl32.Vec2
	delta    mgl32.Vec2
	pressed  bool
	released bool
}

func (p *stubPointer) Position() mgl32.Vec2 { return p.pos }
func (p *stubPointer) Delta() mgl32.Vec2    { return p.delta }

func (p *stubPointer) JustPressed(b PointerButton) bool {
	return b == PointerPrimary && p.pressed
}

func (p *stubPointer) JustReleased(b PointerButton) bool {
	return b == PointerPrimary && p.released
}

type stubSurface struct {
	rect Rect
}

func (s stubSurface) Bounds() Rect { return s.rect }

type recordingSink struct {
	sets []ChangeSet
}

func (r *recordingSink) AddAction(set ChangeSet) {
	r.sets = append(r.sets, set)
}

type rig struct {
	controls *TransformControls
	camera   *Camera
	pointer  *stubPointer
	surface  stubSurface
	sink     *recordingSink
	scene    *Node
	cube     *Node
}

// newRig builds a scene with one cube at the origin and a perspective camera
// six units up the Z axis, so the gizmo scale factor is exactly 1.
func newRig(t *testing.T, mode TransformMode) *rig {
	t.Helper()

	scene := NewNode("scene")
	cube := NewMeshNode("cube", NewBoxGeometry(1, 1, 1), NewMaterial(colornames.White))
	scene.AddChild(cube)

	camera := NewPerspectiveCamera(50, 800.0/600.0, 0.1, 1000)
	camera.Position = mgl32.Vec3{0, 0, 6}

	pointer := &stubPointer{}
	surface := stubSurface{rect: Rect{Width: 800, Height: 600}}
	sink := &recordingSink{}

	controls := NewTransformControls(camera, pointer, surface, sink)
	scene.AddChild(controls.Root())
	controls.SetMode(mode)
	controls.Attach([]*Node{cube})

	return &rig{
		controls: controls,
		camera:   camera,
		pointer:  pointer,
		surface:  surface,
		sink:     sink,
		scene:    scene,
		cube:     cube,
	}
}

// screenAt projects a world point into surface pixel coordinates, inverting
// the device-coordinate mapping the controls use.
func (r *rig) screenAt(world mgl32.Vec3) mgl32.Vec2 {
	ndc := r.camera.Project(world)
	b := r.surface.rect
	return mgl32.Vec2{
		(ndc.X()+1)/2*b.Width + b.X,
		(1-ndc.Y())/2*b.Height + b.Y,
	}
}

// frame advances the pointer to pos with the given button edges and runs one
// controls update.
func (r *rig) frame(pos mgl32.Vec2, pressed, released bool) bool {
	r.pointer.delta = pos.Sub(r.pointer.pos)
	r.pointer.pos = pos
	r.pointer.pressed = pressed
	r.pointer.released = released
	return r.controls.Update()
}

// gizmoPoint maps a point in gizmo-local space to world space.
func (r *rig) gizmoPoint(local mgl32.Vec3) mgl32.Vec3 {
	return transformPoint(r.controls.Root().WorldMatrix(), local)
}

func TestTranslateDragCommitsSingleAxisChange(t *testing.T) {
	r := newRig(t, ModeTranslate)

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	assert.Equal(t, "X", r.controls.Axis())

	editing := r.frame(handle, true, false)
	assert.True(t, editing)

	r.frame(r.screenAt(mgl32.Vec3{2.6, 0, 0}), false, false)
	assert.InDelta(t, 2, r.cube.Position.X(), 1e-3)
	assert.InDelta(t, 0, r.cube.Position.Y(), 1e-3)

	r.frame(r.pointer.pos, false, true)
	assert.False(t, r.controls.Editing())

	require.Len(t, r.sink.sets, 1)
	set := r.sink.sets[0]
	require.Len(t, set.Changes, 1)
	assert.Equal(t, FieldPositionX, set.Changes[0].Field)
	assert.Same(t, r.cube, set.Changes[0].Node)
	assert.InDelta(t, 0, set.Changes[0].From, 1e-3)
	assert.InDelta(t, 2, set.Changes[0].To, 1e-3)
}

func TestTranslateSnapRoundsActiveAxis(t *testing.T) {
	r := newRig(t, ModeTranslate)
	r.controls.Snap = true
	r.controls.TranslationSnap = 1

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	r.frame(handle, true, false)
	r.frame(r.screenAt(mgl32.Vec3{2.9, 0, 0}), false, false)
	r.frame(r.pointer.pos, false, true)

	require.Len(t, r.sink.sets, 1)
	got := r.cube.Position.X()
	if got != float32(math.Round(float64(got))) {
		t.Errorf("Snapped coordinate should be an integer, got %v", got)
	}
}

func TestTranslateRoundTripUnderRotatedScaledParent(t *testing.T) {
	r := newRig(t, ModeTranslate)

	parent := NewNode("parent")
	parent.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	parent.SetScale(mgl32.Vec3{2, 2, 2})
	r.scene.AddChild(parent)

	r.scene.RemoveChild(r.cube)
	parent.AddChild(r.cube)
	r.cube.SetPosition(mgl32.Vec3{1, 0, 0})
	r.controls.Attach([]*Node{r.cube})

	start := r.cube.WorldPosition()
	assert.InDelta(t, 0, start.X(), 1e-4)
	assert.InDelta(t, 2, start.Y(), 1e-4)

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	r.frame(handle, true, false)
	require.Equal(t, "X", r.controls.Axis())

	anchor := r.controls.offset
	r.frame(r.screenAt(anchor.Add(mgl32.Vec3{1, 0, 0})), false, false)

	moved := r.cube.WorldPosition()
	assert.InDelta(t, start.X()+1, moved.X(), 1e-3)
	assert.InDelta(t, start.Y(), moved.Y(), 1e-3)

	r.frame(r.screenAt(anchor), false, false)
	r.frame(r.pointer.pos, false, true)

	end := r.cube.WorldPosition()
	assert.InDelta(t, start.X(), end.X(), 1e-3)
	assert.InDelta(t, start.Y(), end.Y(), 1e-3)
	assert.InDelta(t, start.Z(), end.Z(), 1e-3)
}

func TestScaleUniformDrag(t *testing.T) {
	r := newRig(t, ModeScale)
	r.cube.Body = &PhysicsBody{Colliders: []*Collider{
		{Shape: ShapeBox},
		{Shape: ShapeSphere},
	}}

	center := r.screenAt(mgl32.Vec3{0, 0, 0})
	r.frame(center, false, false)
	assert.Equal(t, "XYZE", r.controls.Axis())

	r.frame(center, true, false)
	r.frame(r.screenAt(mgl32.Vec3{0, 0.5, 0}), false, false)

	assert.InDelta(t, 1.5, r.cube.Scale.X(), 1e-3)
	assert.InDelta(t, 1.5, r.cube.Scale.Y(), 1e-3)
	assert.InDelta(t, 1.5, r.cube.Scale.Z(), 1e-3)

	// Collision shapes follow the live scale.
	assert.InDelta(t, 0.75, r.cube.Body.Colliders[0].HalfExtents.X(), 1e-3)
	assert.InDelta(t, 1.5, r.cube.Body.Colliders[1].Radius, 1e-3)

	r.frame(r.pointer.pos, false, true)
	require.Len(t, r.sink.sets, 1)
	assert.Len(t, r.sink.sets[0].Changes, 3)
}

func TestRotateSingleAxisWorldDrag(t *testing.T) {
	r := newRig(t, ModeRotate)

	// A point on the Z ring away from the other rings' arcs.
	onRing := mgl32.Vec3{0.7071, 0.7071, 0}
	handle := r.screenAt(r.gizmoPoint(onRing))
	r.frame(handle, false, false)
	require.Equal(t, "Z", r.controls.Axis())

	r.frame(handle, true, false)
	r.frame(r.screenAt(mgl32.Vec3{-0.7071, 0.7071, 0}), false, false)
	r.frame(r.pointer.pos, false, true)

	// A quarter turn about Z carries +X onto +Y.
	got := r.cube.Quaternion.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-3)
	assert.InDelta(t, 1, got.Y(), 1e-3)
	assert.InDelta(t, 0, got.Z(), 1e-3)

	require.Len(t, r.sink.sets, 1)
	for _, ch := range r.sink.sets[0].Changes {
		if ch.Field != FieldQuaternionX && ch.Field != FieldQuaternionY &&
			ch.Field != FieldQuaternionZ && ch.Field != FieldQuaternionW {
			t.Errorf("Unexpected field in rotate commit: %v", ch.Field)
		}
	}
}

func TestHoverOnlyReleaseCommitsNothing(t *testing.T) {
	r := newRig(t, ModeTranslate)

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	assert.Equal(t, "X", r.controls.Axis())

	r.frame(r.pointer.pos, false, true)

	assert.Empty(t, r.sink.sets)
	assert.False(t, r.controls.Editing())
	assert.False(t, r.controls.dragging)
}

func TestAttachFiltersInvalidObjects(t *testing.T) {
	r := newRig(t, ModeTranslate)

	locked := NewNode("locked")
	locked.Locked = true
	r.scene.AddChild(locked)

	orphan := NewNode("orphan")

	second := NewNode("second")
	r.scene.AddChild(second)

	r.controls.Attach([]*Node{locked, r.cube, nil, orphan, second})

	require.Len(t, r.controls.Objects(), 2)
	assert.Same(t, r.cube, r.controls.Objects()[0])
	assert.Same(t, second, r.controls.Objects()[1])
}

func TestDetachHidesAndClearsAxis(t *testing.T) {
	r := newRig(t, ModeTranslate)

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	require.Equal(t, "X", r.controls.Axis())

	r.controls.Detach()
	assert.False(t, r.controls.Root().Visible)
	assert.Equal(t, "", r.controls.Axis())
	assert.Empty(t, r.controls.Objects())
}

func TestSnapshotPoolGrowsButNeverShrinks(t *testing.T) {
	r := newRig(t, ModeTranslate)

	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	r.scene.AddChild(a)
	r.scene.AddChild(b)
	r.scene.AddChild(c)

	r.controls.Attach([]*Node{a, b, c})
	assert.Len(t, r.controls.attrs, 3)

	r.controls.Attach([]*Node{a})
	assert.Len(t, r.controls.attrs, 3)

	r.controls.Attach([]*Node{a, b})
	assert.Len(t, r.controls.attrs, 3)
	assert.GreaterOrEqual(t, len(r.controls.attrs), len(r.controls.Objects()))
}

func TestSetModeIsIdempotent(t *testing.T) {
	r := newRig(t, ModeTranslate)

	first := r.controls.gizmo
	r.controls.SetMode(ModeTranslate)
	if r.controls.gizmo != first {
		t.Errorf("Repeated SetMode should keep the same gizmo instance")
	}

	r.controls.SetMode(ModeRotate)
	if r.controls.gizmo == first {
		t.Errorf("Switching modes should construct a new gizmo")
	}
}

func TestScaleModeForcesLocalSpace(t *testing.T) {
	r := newRig(t, ModeTranslate)

	r.controls.SetSpace(SpaceWorld)
	require.Equal(t, SpaceWorld, r.controls.Space())

	r.controls.SetMode(ModeScale)
	assert.Equal(t, SpaceLocal, r.controls.Space())

	// World cannot be forced back while scaling.
	r.controls.SetSpace(SpaceWorld)
	assert.Equal(t, SpaceLocal, r.controls.Space())

	// Leaving scale does not restore the previous space.
	r.controls.SetMode(ModeTranslate)
	assert.Equal(t, SpaceLocal, r.controls.Space())
}

func TestGizmoScaleTracksCameraDistance(t *testing.T) {
	r := newRig(t, ModeTranslate)

	assert.InDelta(t, 1, r.controls.Root().Scale.X(), 1e-4)

	r.camera.Position = mgl32.Vec3{0, 0, 12}
	r.controls.Update()
	assert.InDelta(t, 2, r.controls.Root().Scale.X(), 1e-4)

	ortho := NewOrthographicCamera(9, 800.0/600.0, 0.1, 1000)
	ortho.Position = mgl32.Vec3{0, 0, 6}
	r.controls.camera = ortho
	r.controls.Update()
	assert.InDelta(t, 1.5, r.controls.Root().Scale.X(), 1e-4)
}

func TestPointerDownOffPickersSuppressesHover(t *testing.T) {
	r := newRig(t, ModeTranslate)

	far := mgl32.Vec2{10, 10}
	r.frame(far, true, false)
	assert.True(t, r.controls.dragging)
	assert.False(t, r.controls.Editing())

	// Hover over a handle while the button is held must not pick an axis.
	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	assert.Equal(t, "", r.controls.Axis())

	r.frame(handle, false, true)
	assert.False(t, r.controls.dragging)
	assert.Empty(t, r.sink.sets)
}

func TestAttachDuringDragDiscardsGesture(t *testing.T) {
	r := newRig(t, ModeTranslate)

	other := NewNode("other")
	other.SetPosition(mgl32.Vec3{10, 10, 10})
	r.scene.AddChild(other)

	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0.6, 0, 0}))
	r.frame(handle, false, false)
	r.frame(handle, true, false)
	r.frame(r.screenAt(mgl32.Vec3{2.6, 0, 0}), false, false)
	require.InDelta(t, 2, r.cube.Position.X(), 1e-3)

	// Selection changes mid-drag; the gesture must die with it.
	r.controls.Attach([]*Node{other})
	assert.False(t, r.controls.Editing())
	assert.False(t, r.controls.dragging)

	// Further motion must not move the new selection off old snapshots.
	r.frame(r.screenAt(mgl32.Vec3{4.6, 0, 0}), false, false)
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, other.Position)

	// And releasing must not fabricate a change set for it.
	r.frame(r.pointer.pos, false, true)
	assert.Empty(t, r.sink.sets)
}

func TestRotateFullCircleCommitsNothing(t *testing.T) {
	r := newRig(t, ModeRotate)
	start := r.cube.Quaternion

	onRing := mgl32.Vec3{0.7071, 0.7071, 0}
	handle := r.screenAt(r.gizmoPoint(onRing))
	r.frame(handle, false, false)
	require.Equal(t, "Z", r.controls.Axis())
	r.frame(handle, true, false)

	// Walk the pointer all the way around the ring and back to the anchor.
	for _, p := range []mgl32.Vec3{
		{-0.7071, 0.7071, 0},
		{-0.7071, -0.7071, 0},
		{0.7071, -0.7071, 0},
	} {
		r.frame(r.screenAt(p), false, false)
	}
	r.frame(handle, false, false)
	r.frame(handle, false, true)

	dot := float64(start.Dot(r.cube.Quaternion))
	assert.InDelta(t, 1, math.Abs(dot), 1e-4)
	assert.Empty(t, r.sink.sets)
}

func TestTranslateLocalSingleAxisFollowsObjectFrame(t *testing.T) {
	r := newRig(t, ModeTranslate)
	r.cube.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	r.controls.SetSpace(SpaceLocal)

	// With the object turned a quarter around Z, the X handle points up.
	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0, 0.6, 0}))
	r.frame(handle, false, false)
	require.Equal(t, "X", r.controls.Axis())

	r.frame(handle, true, false)
	anchor := r.controls.offset
	r.frame(r.screenAt(anchor.Add(mgl32.Vec3{2, 0, 0})), false, false)

	// The masked world delta is re-expressed along the object's own X axis.
	assert.InDelta(t, 0, r.cube.Position.X(), 1e-3)
	assert.InDelta(t, 2, r.cube.Position.Y(), 1e-3)
	assert.InDelta(t, 0, r.cube.Position.Z(), 1e-3)

	r.frame(r.pointer.pos, false, true)
	require.Len(t, r.sink.sets, 1)
	require.Len(t, r.sink.sets[0].Changes, 1)
	assert.Equal(t, FieldPositionY, r.sink.sets[0].Changes[0].Field)
	assert.InDelta(t, 2, r.sink.sets[0].Changes[0].To, 1e-3)
}

func TestTranslateLocalPlaneDrag(t *testing.T) {
	r := newRig(t, ModeTranslate)
	r.cube.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	r.controls.SetSpace(SpaceLocal)

	// The XY tab sits in the object's rotated quadrant.
	tab := r.screenAt(r.gizmoPoint(mgl32.Vec3{-0.2, 0.2, 0}))
	r.frame(tab, false, false)
	require.Equal(t, "XY", r.controls.Axis())

	r.frame(tab, true, false)
	anchor := r.controls.offset
	r.frame(r.screenAt(anchor.Add(mgl32.Vec3{1, 0.5, 0})), false, false)
	r.frame(r.pointer.pos, false, true)

	// Un-rotating by the world rotation and re-rotating by the pre-drag local
	// rotation cancel out for an unrotated parent.
	assert.InDelta(t, 1, r.cube.Position.X(), 1e-3)
	assert.InDelta(t, 0.5, r.cube.Position.Y(), 1e-3)
	assert.InDelta(t, 0, r.cube.Position.Z(), 1e-3)
}

func TestRotateLocalSingleAxisComposesOntoLocalRotation(t *testing.T) {
	r := newRig(t, ModeRotate)
	r.cube.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 0, 1}))
	r.controls.SetSpace(SpaceLocal)

	// The Z ring turns with the object; pick it at the top of its arc.
	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0, 1, 0}))
	r.frame(handle, false, false)
	require.Equal(t, "Z", r.controls.Axis())

	r.frame(handle, true, false)
	r.frame(r.screenAt(mgl32.Vec3{-1, 0, 0}), false, false)
	r.frame(r.pointer.pos, false, true)

	// 45 degrees of pre-drag rotation plus a quarter turn.
	got := r.cube.Quaternion.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, -0.7071, got.X(), 1e-3)
	assert.InDelta(t, 0.7071, got.Y(), 1e-3)
	assert.InDelta(t, 0, got.Z(), 1e-3)
	require.Len(t, r.sink.sets, 1)
}

func TestScaleSingleAxisUsesObjectFrame(t *testing.T) {
	r := newRig(t, ModeScale)
	r.cube.SetQuaternion(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	r.controls.Update()

	// Scale is always local, so the X stem points along world Y here.
	handle := r.screenAt(r.gizmoPoint(mgl32.Vec3{0, 0.6, 0}))
	r.frame(handle, false, false)
	require.Equal(t, "X", r.controls.Axis())

	r.frame(handle, true, false)
	anchor := r.controls.offset
	r.frame(r.screenAt(anchor.Add(mgl32.Vec3{0, 0.5, 0})), false, false)

	assert.InDelta(t, 1.5, r.cube.Scale.X(), 1e-3)
	assert.InDelta(t, 1, r.cube.Scale.Y(), 1e-3)
	assert.InDelta(t, 1, r.cube.Scale.Z(), 1e-3)

	r.frame(r.pointer.pos, false, true)
	require.Len(t, r.sink.sets, 1)
	require.Len(t, r.sink.sets[0].Changes, 1)
	assert.Equal(t, FieldScaleX, r.sink.sets[0].Changes[0].Field)
}
