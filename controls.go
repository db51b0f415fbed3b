package trident

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type TransformSpace int

const (
	SpaceWorld TransformSpace = iota
	SpaceLocal
)

func (s TransformSpace) String() string {
	if s == SpaceLocal {
		return "local"
	}
	return "world"
}

// objectAttributes is the per-object drag snapshot, captured at pointer-down
// and read-only while the drag is live. Slots are recycled across attach
// calls; the pool grows but never shrinks.
type objectAttributes struct {
	parentRotationMatrix mgl32.Mat4
	parentScaleInv       mgl32.Vec3
	worldRotationMatrix  mgl32.Mat4
	worldPosition        mgl32.Vec3
	worldRotation        mgl32.Quat

	oldPosition       mgl32.Vec3
	oldScale          mgl32.Vec3
	oldQuaternion     mgl32.Quat
	oldRotationMatrix mgl32.Mat4
}

// TransformControls converts pointer motion into position, rotation, and
// scale edits on the attached nodes. The host adds Root to its scene, calls
// Attach with the selection, and invokes Update once per frame; committed
// gestures land on the history sink as one atomic change set.
type TransformControls struct {
	// Size scales the whole gizmo on top of the automatic camera-distance
	// adjustment.
	Size float32

	Snap            bool
	TranslationSnap float32
	RotationSnap    float32

	camera  *Camera
	pointer PointerDevice
	surface Surface
	history HistorySink
	logger  Logger

	root  *Node
	gizmo Gizmo

	mode  TransformMode
	space TransformSpace
	axis  string

	objects []*Node
	attrs   []objectAttributes

	raycaster Raycaster

	editing     bool
	dragging    bool
	snapshotted bool

	eye           mgl32.Vec3
	worldPosition mgl32.Vec3
	offset        mgl32.Vec3
}

func NewTransformControls(camera *Camera, pointer PointerDevice, surface Surface, history HistorySink) *TransformControls {
	c := &TransformControls{
		Size:            1,
		TranslationSnap: 1,
		RotationSnap:    0.1,
		camera:          camera,
		pointer:         pointer,
		surface:         surface,
		history:         history,
		logger:          NewNopLogger(),
		root:            NewNode("transform-controls"),
		gizmo:           NewNullGizmo(),
		mode:            ModeNone,
		space:           SpaceWorld,
	}
	c.root.Visible = false
	c.root.AddChild(c.gizmo.Root())
	return c
}

func (c *TransformControls) SetLogger(logger Logger) {
	if logger == nil {
		logger = NewNopLogger()
	}
	c.logger = logger
}

// Root is the node the host attaches to its scene graph. Position and scale
// track the selection centroid and camera distance.
func (c *TransformControls) Root() *Node { return c.root }

func (c *TransformControls) Mode() TransformMode   { return c.mode }
func (c *TransformControls) Space() TransformSpace { return c.space }
func (c *TransformControls) Axis() string          { return c.axis }
func (c *TransformControls) Editing() bool         { return c.editing }
func (c *TransformControls) Objects() []*Node      { return c.objects }

// Attach replaces the selection wholesale. Nil, locked, and unparented nodes
// are silently excluded; an all-invalid input detaches.
func (c *TransformControls) Attach(objects []*Node) {
	// A selection change cancels any gesture in flight; snapshots taken for
	// the old selection must never be read against the new one.
	c.editing = false
	c.dragging = false
	c.snapshotted = false

	c.objects = c.objects[:0]
	for _, obj := range objects {
		if obj == nil || obj.Locked || obj.Parent == nil {
			continue
		}
		c.objects = append(c.objects, obj)
	}
	for len(c.attrs) < len(c.objects) {
		c.attrs = append(c.attrs, objectAttributes{})
	}
	if len(c.objects) == 0 {
		c.clear()
		return
	}
	c.root.Visible = true
	c.updatePose()
	c.logger.Debugf("attached %d object(s)", len(c.objects))
}

func (c *TransformControls) Detach() {
	c.Attach(nil)
}

func (c *TransformControls) clear() {
	c.root.Visible = false
	c.axis = ""
}

func (c *TransformControls) SetMode(mode TransformMode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.gizmo.Dispose()
	c.gizmo = newGizmoForMode(mode)
	c.root.AddChild(c.gizmo.Root())
	if mode == ModeScale {
		c.space = SpaceLocal
	}
	c.root.Visible = len(c.objects) > 0
	c.updatePose()
	c.logger.Debugf("mode set to %s", mode)
}

func (c *TransformControls) SetSpace(space TransformSpace) {
	if c.mode == ModeScale {
		space = SpaceLocal
	}
	c.space = space
	c.updatePose()
}

// Update runs one frame of the interaction loop: button edges first, then
// hover and drag on motion, pose last so the gizmo reflects the post-edit
// state. Returns whether an edit is in progress, letting the host suppress
// camera navigation while transforming.
func (c *TransformControls) Update() bool {
	if c.pointer.JustPressed(PointerPrimary) {
		c.onPointerDown()
	}
	if c.pointer.JustReleased(PointerPrimary) {
		c.onPointerUp()
	}
	if d := c.pointer.Delta(); d.X() != 0 || d.Y() != 0 {
		c.onPointerHover()
		c.onPointerMove()
	}
	c.updatePose()
	return c.editing
}

func (c *TransformControls) updatePose() {
	if len(c.objects) == 0 {
		c.root.Visible = false
		return
	}
	if c.mode == ModeNone {
		return
	}

	centroid := mgl32.Vec3{}
	for _, obj := range c.objects {
		centroid = centroid.Add(obj.WorldPosition())
	}
	centroid = centroid.Mul(1 / float32(len(c.objects)))
	c.worldPosition = centroid
	c.root.SetPosition(centroid)

	var scale float32
	if c.camera.Kind == Orthographic {
		scale = c.camera.Size / 6 * c.Size
	} else {
		scale = c.camera.Position.Sub(centroid).Len() / 6 * c.Size
	}
	c.root.SetScale(mgl32.Vec3{scale, scale, scale})

	eye := c.camera.Position.Sub(centroid)
	if eye.Len() > 0 {
		eye = eye.Normalize()
	} else {
		eye = mgl32.Vec3{0, 0, 1}
	}
	c.eye = eye

	rotation := mgl32.QuatIdent()
	if c.space == SpaceLocal || c.mode == ModeScale {
		rotation = c.objects[0].WorldQuaternion()
	}
	c.gizmo.Update(rotation, eye)
	c.gizmo.Highlight(c.axis)
}

// pickAxis raycasts the pointer against the gizmo's picker meshes and returns
// the axis token of the nearest hit.
func (c *TransformControls) pickAxis() (string, bool) {
	ndc := deviceCoords(c.pointer.Position(), c.surface.Bounds())
	c.raycaster.SetFromCamera(ndc, c.camera)
	hits := c.raycaster.IntersectNode(c.gizmo.Pickers(), true)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0].Node.Name, true
}

func (c *TransformControls) intersectActivePlane() (mgl32.Vec3, bool) {
	plane := c.gizmo.ActivePlane()
	if plane == nil {
		return mgl32.Vec3{}, false
	}
	ndc := deviceCoords(c.pointer.Position(), c.surface.Bounds())
	c.raycaster.SetFromCamera(ndc, c.camera)
	hits := c.raycaster.IntersectNode(plane, false)
	if len(hits) == 0 {
		return mgl32.Vec3{}, false
	}
	return hits[0].Point, true
}

func (c *TransformControls) onPointerHover() {
	if len(c.objects) == 0 || c.dragging || c.mode == ModeNone {
		return
	}
	axis, _ := c.pickAxis()
	if axis != c.axis {
		c.axis = axis
		c.updatePose()
	}
}

func (c *TransformControls) onPointerDown() {
	if len(c.objects) == 0 || c.dragging || c.mode == ModeNone {
		return
	}
	c.snapshotted = false
	if axis, ok := c.pickAxis(); ok {
		c.editing = true
		c.axis = axis
		c.updatePose()
		c.gizmo.SetActivePlane(c.axis, c.eye)
		if anchor, hit := c.intersectActivePlane(); hit {
			c.captureSnapshots()
			c.offset = anchor
			c.snapshotted = true
		}
	}
	// Suppress hover until release even when nothing was picked.
	c.dragging = true
}

// captureSnapshots records the pre-drag transform state of every attached
// object. Deltas and the commit diff are computed against these.
func (c *TransformControls) captureSnapshots() {
	for i, obj := range c.objects {
		a := &c.attrs[i]
		if obj.Parent != nil {
			a.parentRotationMatrix = obj.Parent.WorldRotationMatrix()
			a.parentScaleInv = safeInverse(obj.Parent.WorldScale())
		} else {
			a.parentRotationMatrix = mgl32.Ident4()
			a.parentScaleInv = mgl32.Vec3{1, 1, 1}
		}
		a.worldRotationMatrix = obj.WorldRotationMatrix()
		a.worldPosition = obj.WorldPosition()
		a.worldRotation = obj.WorldQuaternion()
		a.oldPosition = obj.Position
		a.oldScale = obj.Scale
		a.oldQuaternion = obj.Quaternion
		a.oldRotationMatrix = obj.Quaternion.Mat4()
	}
}

func (c *TransformControls) onPointerMove() {
	if len(c.objects) == 0 || c.axis == "" || !c.dragging || !c.snapshotted || c.mode == ModeNone {
		return
	}
	point, hit := c.intersectActivePlane()
	if !hit {
		return
	}
	switch c.mode {
	case ModeTranslate:
		c.applyTranslate(point)
	case ModeScale:
		c.applyScale(point)
	case ModeRotate:
		c.applyRotate(point)
	}
	c.updatePose()
}

// spansAllAxes reports whether the token constrains none of the three axes.
func spansAllAxes(axis string) bool {
	return strings.Contains(axis, "X") && strings.Contains(axis, "Y") && strings.Contains(axis, "Z")
}

// maskAxes zeroes the components whose letter is absent from the token.
func maskAxes(v mgl32.Vec3, axis string) mgl32.Vec3 {
	if !strings.Contains(axis, "X") {
		v[0] = 0
	}
	if !strings.Contains(axis, "Y") {
		v[1] = 0
	}
	if !strings.Contains(axis, "Z") {
		v[2] = 0
	}
	return v
}

func (c *TransformControls) applyTranslate(point mgl32.Vec3) {
	for i, obj := range c.objects {
		a := &c.attrs[i]
		delta := compMul(point.Sub(c.offset), a.parentScaleInv)
		delta = maskAxes(delta, c.axis)

		var pos mgl32.Vec3
		if c.space == SpaceWorld || spansAllAxes(c.axis) {
			local := transformDirection(a.parentRotationMatrix.Inv(), delta)
			pos = a.oldPosition.Add(local)
		} else if len(c.axis) > 1 {
			local := transformDirection(a.worldRotationMatrix.Inv(), delta)
			local = transformDirection(a.oldRotationMatrix, local)
			pos = a.oldPosition.Add(local)
		} else {
			local := transformDirection(a.oldRotationMatrix, delta)
			pos = a.oldPosition.Add(local)
		}

		if c.Snap {
			if c.space == SpaceLocal {
				pos = transformDirection(a.worldRotationMatrix.Inv(), pos)
			}
			if strings.Contains(c.axis, "X") {
				pos[0] = roundToMultiple(pos[0], c.TranslationSnap)
			}
			if strings.Contains(c.axis, "Y") {
				pos[1] = roundToMultiple(pos[1], c.TranslationSnap)
			}
			if strings.Contains(c.axis, "Z") {
				pos[2] = roundToMultiple(pos[2], c.TranslationSnap)
			}
			if c.space == SpaceLocal {
				pos = transformDirection(a.worldRotationMatrix, pos)
			}
		}
		obj.SetPosition(pos)
	}
}

func (c *TransformControls) applyScale(point mgl32.Vec3) {
	for i, obj := range c.objects {
		a := &c.attrs[i]
		delta := compMul(point.Sub(c.offset), a.parentScaleInv)

		if c.axis == "XYZE" {
			factor := 1 + delta.Y()
			obj.SetScale(a.oldScale.Mul(factor))
		} else {
			local := transformDirection(a.worldRotationMatrix.Inv(), delta)
			scale := a.oldScale
			switch c.axis {
			case "X":
				scale[0] = a.oldScale.X() * (1 + local.X())
			case "Y":
				scale[1] = a.oldScale.Y() * (1 + local.Y())
			case "Z":
				scale[2] = a.oldScale.Z() * (1 + local.Z())
			}
			obj.SetScale(scale)
		}

		// Keep collision shapes in step with the live scale.
		if obj.Body != nil {
			obj.Body.SyncShapes(obj.Scale)
		}
	}
}

func (c *TransformControls) applyRotate(point mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	for i, obj := range c.objects {
		a := &c.attrs[i]
		pointV := compMul(point.Sub(a.worldPosition), a.parentScaleInv)
		offsetV := compMul(c.offset.Sub(a.worldPosition), a.parentScaleInv)
		parentInv := mgl32.Mat4ToQuat(a.parentRotationMatrix).Inverse()

		switch {
		case c.axis == "E":
			camInv := lookAtRotation(c.eye, up).Mat4().Inv()
			rot := atan2Angles(transformDirection(camInv, pointV))
			off := atan2Angles(transformDirection(camInv, offsetV))
			q := mgl32.QuatRotate(rot.Z()-off.Z(), c.eye)
			obj.SetQuaternion(parentInv.Mul(q).Mul(a.worldRotation))

		case c.axis == "XYZE":
			axis := pointV.Cross(offsetV)
			if axis.Len() == 0 {
				continue
			}
			q := mgl32.QuatRotate(angleBetween(pointV, offsetV), axis.Normalize())
			obj.SetQuaternion(parentInv.Mul(q).Mul(a.worldRotation))

		case c.space == SpaceLocal:
			worldInv := a.worldRotationMatrix.Inv()
			rot := atan2Angles(transformDirection(worldInv, pointV))
			off := atan2Angles(transformDirection(worldInv, offsetV))
			angle, unit := c.axisAngle(rot, off)
			q := mgl32.Mat4ToQuat(a.oldRotationMatrix).Mul(mgl32.QuatRotate(angle, unit))
			obj.SetQuaternion(q)

		default: // world space, single axis
			rot := atan2Angles(pointV)
			off := atan2Angles(offsetV)
			angle, unit := c.axisAngle(rot, off)
			q := parentInv.Mul(mgl32.QuatRotate(angle, unit)).Mul(a.worldRotation)
			obj.SetQuaternion(q)
		}
	}
}

// axisAngle reduces the two atan2 triples to the angle delta around the
// selected axis, snapped when enabled.
func (c *TransformControls) axisAngle(rot, off mgl32.Vec3) (float32, mgl32.Vec3) {
	var angle float32
	var unit mgl32.Vec3
	switch c.axis {
	case "X":
		angle = rot.X() - off.X()
		unit = mgl32.Vec3{1, 0, 0}
	case "Y":
		angle = rot.Y() - off.Y()
		unit = mgl32.Vec3{0, 1, 0}
	case "Z":
		angle = rot.Z() - off.Z()
		unit = mgl32.Vec3{0, 0, 1}
	}
	if c.Snap {
		angle = roundToMultiple(angle, c.RotationSnap)
	}
	return angle, unit
}

func (c *TransformControls) onPointerUp() {
	if c.editing && c.snapshotted {
		c.commit()
	}
	c.editing = false
	c.dragging = false
	c.snapshotted = false
}

// commit diffs every object against its drag-start snapshot and submits one
// atomic change set covering the whole selection. A drag that moved nothing
// produces no action.
func (c *TransformControls) commit() {
	set := ChangeSet{Name: c.mode.String()}
	for i, obj := range c.objects {
		a := &c.attrs[i]
		switch c.mode {
		case ModeTranslate:
			appendFieldChange(&set, obj, FieldPositionX, a.oldPosition.X(), obj.Position.X())
			appendFieldChange(&set, obj, FieldPositionY, a.oldPosition.Y(), obj.Position.Y())
			appendFieldChange(&set, obj, FieldPositionZ, a.oldPosition.Z(), obj.Position.Z())
		case ModeScale:
			appendFieldChange(&set, obj, FieldScaleX, a.oldScale.X(), obj.Scale.X())
			appendFieldChange(&set, obj, FieldScaleY, a.oldScale.Y(), obj.Scale.Y())
			appendFieldChange(&set, obj, FieldScaleZ, a.oldScale.Z(), obj.Scale.Z())
		case ModeRotate:
			appendFieldChange(&set, obj, FieldQuaternionX, a.oldQuaternion.V[0], obj.Quaternion.V[0])
			appendFieldChange(&set, obj, FieldQuaternionY, a.oldQuaternion.V[1], obj.Quaternion.V[1])
			appendFieldChange(&set, obj, FieldQuaternionZ, a.oldQuaternion.V[2], obj.Quaternion.V[2])
			appendFieldChange(&set, obj, FieldQuaternionW, a.oldQuaternion.W, obj.Quaternion.W)
		}
	}
	if len(set.Changes) == 0 || c.history == nil {
		return
	}
	c.history.AddAction(set)
	c.logger.Debugf("committed %s of %d object(s), %d field change(s)",
		c.mode, len(c.objects), len(set.Changes))
}

func appendFieldChange(set *ChangeSet, n *Node, field ChangeField, from, to float32) {
	if float32(math.Abs(float64(to-from))) < 1e-7 {
		return
	}
	set.Changes = append(set.Changes, FieldChange{Node: n, Field: field, From: from, To: to})
}
