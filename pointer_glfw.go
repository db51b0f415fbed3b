package trident

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// GlfwPointer adapts a glfw window to the PointerDevice and Surface
// interfaces. Poll must run once per frame, before TransformControls.Update,
// so the edge-triggered queries report this frame's transitions.
type GlfwPointer struct {
	window *glfw.Window

	position mgl32.Vec2
	delta    mgl32.Vec2

	pressed      [3]bool
	justPressed  [3]bool
	justReleased [3]bool
}

func NewGlfwPointer(window *glfw.Window) *GlfwPointer {
	p := &GlfwPointer{window: window}
	x, y := window.GetCursorPos()
	p.position = mgl32.Vec2{float32(x), float32(y)}
	return p
}

func (p *GlfwPointer) Poll() {
	glfw.PollEvents()

	x, y := p.window.GetCursorPos()
	pos := mgl32.Vec2{float32(x), float32(y)}
	p.delta = pos.Sub(p.position)
	p.position = pos

	for btn, glfwBtn := range [3]glfw.MouseButton{
		PointerPrimary:   glfw.MouseButtonLeft,
		PointerSecondary: glfw.MouseButtonRight,
		PointerMiddle:    glfw.MouseButtonMiddle,
	} {
		action := p.window.GetMouseButton(glfwBtn)
		p.justPressed[btn] = false
		p.justReleased[btn] = false

		if glfw.Press == action {
			if !p.pressed[btn] {
				p.justPressed[btn] = true
			}
			p.pressed[btn] = true
		} else if glfw.Release == action {
			if p.pressed[btn] {
				p.justReleased[btn] = true
			}
			p.pressed[btn] = false
		}
	}
}

func (p *GlfwPointer) Position() mgl32.Vec2 { return p.position }
func (p *GlfwPointer) Delta() mgl32.Vec2    { return p.delta }

func (p *GlfwPointer) Pressed(button PointerButton) bool      { return p.pressed[button] }
func (p *GlfwPointer) JustPressed(button PointerButton) bool  { return p.justPressed[button] }
func (p *GlfwPointer) JustReleased(button PointerButton) bool { return p.justReleased[button] }

// Bounds reports the window content area in screen coordinates, matching the
// coordinate space of GetCursorPos.
func (p *GlfwPointer) Bounds() Rect {
	w, h := p.window.GetSize()
	return Rect{Width: float32(w), Height: float32(h)}
}
