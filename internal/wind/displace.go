package wind

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Displacement constants shared by Displace and the GLSL grass stage.
const (
	PrimaryFrequency   = 0.03
	PrimaryGain        = 0.3
	SecondaryFrequency = 0.05
	SecondaryDrift     = 0.3
	SecondaryGain      = 0.15
	CrossSway          = 0.3
	Compression        = 0.05
	OpacityFloor       = 0.6
	OpacityFlicker     = 0.3
)

// Sampler is a 2D noise source in [-1, 1].
type Sampler interface {
	Sample2D(x, z float64) float64
}

// Vertex carries the per-vertex inputs of the displacement stage.
type Vertex struct {
	Position mgl32.Vec3
	Phase    float32
	Bend     float32
	Scale    float32
	Opacity  float32
}

// Displace is the CPU reference of the grass vertex stage. It returns the
// positional offset to add to v.Position and the modulated opacity.
// internal/render/glsl/grass.vert runs the same formula on the GPU.
func Displace(v Vertex, u Uniforms, n Sampler) (mgl32.Vec3, float32) {
	x, z := float64(v.Position.X()), float64(v.Position.Z())
	t := float64(u.Time) + float64(v.Phase)
	s := float64(u.Strength)

	sway := n.Sample2D(x*PrimaryFrequency+t, z*PrimaryFrequency) * s * PrimaryGain
	sway += n.Sample2D(x*SecondaryFrequency-t*SecondaryDrift, z*SecondaryFrequency) * s * SecondaryGain

	k := float64(v.Bend) * float64(v.Scale)
	off := mgl32.Vec3{
		float32(sway * k),
		float32(-math.Abs(sway) * Compression * k),
		float32(sway * CrossSway * k),
	}
	opacity := float64(v.Opacity) * (OpacityFloor + (1-OpacityFloor)*(1-math.Abs(sway)*OpacityFlicker))
	return off, float32(opacity)
}

// MaxSway bounds |sway| for any strength in p's range.
func MaxSway(p Params) float64 {
	lo, hi := p.Range()
	return math.Max(math.Abs(lo), math.Abs(hi)) * (PrimaryGain + SecondaryGain)
}
