package trident

import "github.com/go-gl/mathgl/mgl32"

type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

// PointerDevice is the input surface the controls poll once per frame.
// Press/release queries are edge triggered: true only on the frame the
// transition happened.
type PointerDevice interface {
	Position() mgl32.Vec2
	Delta() mgl32.Vec2
	JustPressed(button PointerButton) bool
	JustReleased(button PointerButton) bool
}

type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Surface exposes the bounding rectangle used to normalize pointer
// coordinates to device space.
type Surface interface {
	Bounds() Rect
}

// deviceCoords converts a surface-relative pixel position to normalized
// device coordinates, Y up.
func deviceCoords(pos mgl32.Vec2, bounds Rect) mgl32.Vec2 {
	if bounds.Width == 0 || bounds.Height == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		(pos.X()-bounds.X)/bounds.Width*2 - 1,
		-((pos.Y()-bounds.Y)/bounds.Height*2 - 1),
	}
}
