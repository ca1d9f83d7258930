package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestPressedOncePerFrame(t *testing.T) {
	k := NewKeys()

	k.HandleKey(glfw.KeyTab, glfw.Press)
	if !k.Pressed(ActionNextMode) || !k.Held(ActionNextMode) {
		t.Fatal("Tab press not registered")
	}
	k.EndFrame()
	if k.Pressed(ActionNextMode) {
		t.Error("Pressed survived EndFrame")
	}

	k.HandleKey(glfw.KeyTab, glfw.Repeat)
	if k.Pressed(ActionNextMode) {
		t.Error("repeat counted as a new press")
	}

	k.HandleKey(glfw.KeyTab, glfw.Release)
	if k.Held(ActionNextMode) {
		t.Error("release not registered")
	}
}

func TestSharedActionHeldUntilAllKeysUp(t *testing.T) {
	k := NewKeys()
	k.HandleKey(glfw.KeyA, glfw.Press)
	k.HandleKey(glfw.KeyLeft, glfw.Press)
	k.HandleKey(glfw.KeyA, glfw.Release)
	if !k.Held(ActionOrbitLeft) {
		t.Error("orbit released while Left is still down")
	}
	k.HandleKey(glfw.KeyLeft, glfw.Release)
	k.HandleKey(glfw.KeyLeft, glfw.Release)
	if k.Held(ActionOrbitLeft) {
		t.Error("orbit still held")
	}
	k.HandleKey(glfw.KeyA, glfw.Press)
	if !k.Held(ActionOrbitLeft) {
		t.Error("extra release left the action stuck")
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name string
		keys []glfw.Key
		want float32
	}{
		{"none", nil, 0},
		{"zoom in", []glfw.Key{glfw.KeyW}, 1},
		{"zoom out", []glfw.Key{glfw.KeyDown}, -1},
		{"both", []glfw.Key{glfw.KeyUp, glfw.KeyS}, 0},
		{"unbound", []glfw.Key{glfw.KeyP}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeys()
			for _, key := range tt.keys {
				k.HandleKey(key, glfw.Press)
			}
			if got := k.Axis(ActionZoomOut, ActionZoomIn); got != tt.want {
				t.Errorf("Axis = %v, want %v", got, tt.want)
			}
		})
	}
	if k := NewKeys(); k.Held(ActionCount) || k.Pressed(-1) {
		t.Error("out of range actions report active")
	}
}
