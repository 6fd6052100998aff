// Package input maps GLFW key events to fly-camera actions.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"grassfield/internal/viewer"
)

// Action is a logical command, independent of the physical key.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionAscend
	ActionDescend
	ActionReleaseCursor
	ActionQuit
	ActionCount
)

// Manager tracks held actions and per-frame press edges. GLFW delivers
// events from PollEvents on the main thread; the mutex keeps reads from
// other goroutines safe.
type Manager struct {
	mu       sync.RWMutex
	bindings map[glfw.Key][]Action
	held     [ActionCount]bool
	pressed  [ActionCount]bool
}

// NewManager returns a manager with W/S forward and back, A/D turning,
// Space/LeftShift vertical flight, Tab to free the cursor and Escape to quit.
func NewManager() *Manager {
	m := &Manager{bindings: make(map[glfw.Key][]Action)}
	m.Bind(glfw.KeyW, ActionForward)
	m.Bind(glfw.KeyUp, ActionForward)
	m.Bind(glfw.KeyS, ActionBackward)
	m.Bind(glfw.KeyDown, ActionBackward)
	m.Bind(glfw.KeyA, ActionTurnLeft)
	m.Bind(glfw.KeyLeft, ActionTurnLeft)
	m.Bind(glfw.KeyD, ActionTurnRight)
	m.Bind(glfw.KeyRight, ActionTurnRight)
	m.Bind(glfw.KeySpace, ActionAscend)
	m.Bind(glfw.KeyLeftShift, ActionDescend)
	m.Bind(glfw.KeyTab, ActionReleaseCursor)
	m.Bind(glfw.KeyEscape, ActionQuit)
	return m
}

// Bind adds action to key. A key may drive several actions.
func (m *Manager) Bind(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	m.bindings[key] = append(m.bindings[key], action)
	m.mu.Unlock()
}

// HandleKey records a key event.
func (m *Manager) HandleKey(key glfw.Key, action glfw.Action) {
	down := action == glfw.Press || action == glfw.Repeat
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.bindings[key] {
		if down && !m.held[a] {
			m.pressed[a] = true
		}
		m.held[a] = down
	}
}

// Attach installs the key callback on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKey(key, action)
	})
}

// Held reports whether action is currently down.
func (m *Manager) Held(a Action) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return a >= 0 && a < ActionCount && m.held[a]
}

// JustPressed reports whether action went down during this frame.
func (m *Manager) JustPressed(a Action) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return a >= 0 && a < ActionCount && m.pressed[a]
}

// Controls snapshots the held movement actions for the camera.
func (m *Manager) Controls() viewer.Controls {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return viewer.Controls{
		Forward:   m.held[ActionForward],
		Backward:  m.held[ActionBackward],
		TurnLeft:  m.held[ActionTurnLeft],
		TurnRight: m.held[ActionTurnRight],
		Up:        m.held[ActionAscend],
		Down:      m.held[ActionDescend],
	}
}

// EndFrame clears the press edges. Call once after the frame's input checks.
func (m *Manager) EndFrame() {
	m.mu.Lock()
	clear(m.pressed[:])
	m.mu.Unlock()
}
