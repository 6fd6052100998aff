// Package viewer is the fly camera that supplies the streaming viewpoint.
package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls is the per-frame input state, already mapped from physical keys.
type Controls struct {
	Forward, Backward   bool
	TurnLeft, TurnRight bool
	Up, Down            bool
}

// Camera is a yaw/pitch fly camera. Angles are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64
	Pitch    float64

	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	MoveSpeed   float32 // units per second
	TurnSpeed   float32 // radians per second
	Sensitivity float64 // degrees per pixel of mouse travel

	lastX, lastY float64
	firstMouse   bool
}

// NewCamera returns a camera at position looking down -Z.
func NewCamera(position mgl32.Vec3, width, height int) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		FOV:         75,
		Aspect:      aspect(width, height),
		Near:        1,
		Far:         2500,
		MoveSpeed:   50,
		TurnSpeed:   1,
		Sensitivity: 0.1,
		firstMouse:  true,
	}
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// SetViewport updates the aspect ratio.
func (c *Camera) SetViewport(width, height int) { c.Aspect = aspect(width, height) }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(c.Yaw)))
	p := float64(mgl32.DegToRad(float32(c.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Update applies one frame of movement. W/S fly along the view direction,
// A/D turn about the vertical axis.
func (c *Camera) Update(in Controls, dt float64) {
	turn := 0.0
	if in.TurnLeft {
		turn--
	}
	if in.TurnRight {
		turn++
	}
	c.Yaw += turn * float64(c.TurnSpeed) * dt * 180 / math.Pi

	step := c.MoveSpeed * float32(dt)
	front := c.Front()
	if in.Forward {
		c.Position = c.Position.Add(front.Mul(step))
	}
	if in.Backward {
		c.Position = c.Position.Sub(front.Mul(step))
	}
	if in.Up {
		c.Position[1] += step
	}
	if in.Down {
		c.Position[1] -= step
	}
}

// Look turns the camera by the mouse travel since the previous call. The
// first call only records the cursor.
func (c *Camera) Look(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	dx := (xpos - c.lastX) * c.Sensitivity
	dy := (c.lastY - ypos) * c.Sensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw += dx
	c.Pitch = math.Max(-89, math.Min(89, c.Pitch+dy))
}

// KeepAbove lifts the camera so it stays clearance units over ground.
func (c *Camera) KeepAbove(ground, clearance float32) {
	if floor := ground + clearance; c.Position.Y() < floor {
		c.Position[1] = floor
	}
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}
