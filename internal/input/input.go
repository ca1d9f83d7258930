// Package input maps GLFW key events to viewer actions.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a viewer command, independent of the key that triggers it.
type Action int

const (
	ActionOrbitLeft Action = iota
	ActionOrbitRight
	ActionZoomIn
	ActionZoomOut
	ActionNextMode
	ActionToggleBounds
	ActionToggleProfiling
	ActionQuit
	ActionCount
)

// DefaultBindings is the key map of a new Keys.
var DefaultBindings = map[glfw.Key]Action{
	glfw.KeyA:      ActionOrbitLeft,
	glfw.KeyLeft:   ActionOrbitLeft,
	glfw.KeyD:      ActionOrbitRight,
	glfw.KeyRight:  ActionOrbitRight,
	glfw.KeyW:      ActionZoomIn,
	glfw.KeyUp:     ActionZoomIn,
	glfw.KeyS:      ActionZoomOut,
	glfw.KeyDown:   ActionZoomOut,
	glfw.KeyTab:    ActionNextMode,
	glfw.KeyB:      ActionToggleBounds,
	glfw.KeyV:      ActionToggleProfiling,
	glfw.KeyEscape: ActionQuit,
}

// Keys tracks which actions are held and which were pressed this frame.
// Events arrive from glfw.PollEvents on the render thread, so no locking.
type Keys struct {
	bindings map[glfw.Key]Action
	held     [ActionCount]int
	pressed  [ActionCount]bool
}

// NewKeys creates a key state with DefaultBindings.
func NewKeys() *Keys {
	return &Keys{bindings: DefaultBindings}
}

// Attach installs k as the key callback of window.
func (k *Keys) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k.HandleKey(key, action)
	})
}

// HandleKey applies one key event. Several keys may hold the same action;
// it stays held until all of them are released.
func (k *Keys) HandleKey(key glfw.Key, action glfw.Action) {
	a, ok := k.bindings[key]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		if k.held[a] == 0 {
			k.pressed[a] = true
		}
		k.held[a]++
	case glfw.Release:
		if k.held[a] > 0 {
			k.held[a]--
		}
	}
}

// Held reports whether a bound key of the action is down.
func (k *Keys) Held(a Action) bool {
	return a >= 0 && a < ActionCount && k.held[a] > 0
}

// Pressed reports whether the action went down since the last EndFrame.
func (k *Keys) Pressed(a Action) bool {
	return a >= 0 && a < ActionCount && k.pressed[a]
}

// Axis returns -1 while neg is held, 1 while pos is held and 0 for both or
// neither.
func (k *Keys) Axis(neg, pos Action) float32 {
	var v float32
	if k.Held(neg) {
		v--
	}
	if k.Held(pos) {
		v++
	}
	return v
}

// EndFrame clears the pressed flags. Call once per frame after update.
func (k *Keys) EndFrame() {
	k.pressed = [ActionCount]bool{}
}
