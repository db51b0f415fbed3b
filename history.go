package trident

type ChangeField int

const (
	FieldPositionX ChangeField = iota
	FieldPositionY
	FieldPositionZ
	FieldScaleX
	FieldScaleY
	FieldScaleZ
	FieldQuaternionX
	FieldQuaternionY
	FieldQuaternionZ
	FieldQuaternionW
)

var changeFieldNames = map[ChangeField]string{
	FieldPositionX:   "position.x",
	FieldPositionY:   "position.y",
	FieldPositionZ:   "position.z",
	FieldScaleX:      "scale.x",
	FieldScaleY:      "scale.y",
	FieldScaleZ:      "scale.z",
	FieldQuaternionX: "quaternion.x",
	FieldQuaternionY: "quaternion.y",
	FieldQuaternionZ: "quaternion.z",
	FieldQuaternionW: "quaternion.w",
}

func (f ChangeField) String() string {
	if name, ok := changeFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// FieldChange is one scalar transform edit on one node.
type FieldChange struct {
	Node  *Node
	Field ChangeField
	From  float32
	To    float32
}

// ChangeSet bundles the field changes of one gesture into a single atomic
// undo step, covering every selected object.
type ChangeSet struct {
	Name    string
	Changes []FieldChange
}

// HistorySink receives committed change sets. The controls only depend on
// this interface; any undo/redo implementation can be injected.
type HistorySink interface {
	AddAction(set ChangeSet)
}

// History is a bounded undo/redo stack over change sets. Sets arrive already
// applied to the scene, so AddAction records without re-executing.
type History struct {
	undoStack []ChangeSet
	redoStack []ChangeSet
	maxDepth  int
}

func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]ChangeSet, 0, maxDepth),
		redoStack: make([]ChangeSet, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

func (h *History) AddAction(set ChangeSet) {
	h.undoStack = append(h.undoStack, set)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// New action invalidates the redo branch.
	h.redoStack = h.redoStack[:0]
}

func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	set := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	for i := len(set.Changes) - 1; i >= 0; i-- {
		applyFieldValue(set.Changes[i].Node, set.Changes[i].Field, set.Changes[i].From)
	}
	h.redoStack = append(h.redoStack, set)
	return true
}

func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	set := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	for _, c := range set.Changes {
		applyFieldValue(c.Node, c.Field, c.To)
	}
	h.undoStack = append(h.undoStack, set)
	return true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

func applyFieldValue(n *Node, field ChangeField, v float32) {
	if n == nil {
		return
	}
	switch field {
	case FieldPositionX:
		n.Position[0] = v
	case FieldPositionY:
		n.Position[1] = v
	case FieldPositionZ:
		n.Position[2] = v
	case FieldScaleX:
		n.Scale[0] = v
	case FieldScaleY:
		n.Scale[1] = v
	case FieldScaleZ:
		n.Scale[2] = v
	case FieldQuaternionX:
		n.Quaternion.V[0] = v
	case FieldQuaternionY:
		n.Quaternion.V[1] = v
	case FieldQuaternionZ:
		n.Quaternion.V[2] = v
	case FieldQuaternionW:
		n.Quaternion.W = v
	}
	n.MarkWorldMatrixDirty()
}
