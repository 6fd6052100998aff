package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/wind"
)

// Frame is what one Scene.Tick produced.
type Frame struct {
	Result   Result
	Uniforms wind.Uniforms
}

// Scene drives chunk streaming and the wind signal from a single per-frame
// tick. The camera update belongs to the host and runs after Tick.
type Scene struct {
	chunks *Manager
	wind   *wind.Driver
}

// NewScene pairs a chunk manager with a wind driver.
func NewScene(chunks *Manager, w *wind.Driver) *Scene {
	return &Scene{chunks: chunks, wind: w}
}

// Chunks returns the scene's chunk manager.
func (s *Scene) Chunks() *Manager { return s.chunks }

// Tick reconciles chunks around viewpoint, then advances the wind to wall.
func (s *Scene) Tick(viewpoint mgl32.Vec3, wall time.Duration) Frame {
	res := s.chunks.Update(viewpoint)
	return Frame{Result: res, Uniforms: s.wind.Advance(wall)}
}

// Uniforms returns the wind scalars published by the last Tick. Every
// chunk's grass draw reads the same pair.
func (s *Scene) Uniforms() wind.Uniforms { return s.wind.Current() }
