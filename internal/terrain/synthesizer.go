package terrain

import (
	"math"

	"grassfield/internal/noise"
)

// Elevator is anything that yields a surface height for world (x, z).
type Elevator interface {
	Elevation(x, z float64) float64
}

// sampler is the part of a noise field the synthesizer reads.
type sampler interface {
	Sample2D(x, z float64) float64
}

// Synthesizer computes terrain elevation as a pure function of world position.
// Its two noise fields are built once, so any chunk asking about the same
// (x, z) gets the same answer.
type Synthesizer struct {
	p     Params
	shape sampler
	blend sampler
}

// NewSynthesizer builds a synthesizer from p. The shape field uses p.Seed and
// the blend field p.Seed+1.
func NewSynthesizer(p Params) *Synthesizer {
	return &Synthesizer{
		p:     p,
		shape: noise.New(p.Noise, p.Seed),
		blend: noise.New(p.Noise, p.Seed+1),
	}
}

// Params returns a copy of the synthesizer's parameters.
func (s *Synthesizer) Params() Params { return s.p }

// Elevation returns the surface height at world (x, z).
func (s *Synthesizer) Elevation(x, z float64) float64 {
	pt := s.newPoint(x, z)

	var h float64
	switch s.p.Style {
	case StyleBowl:
		h = pt.base + s.octaves(s.p.Hills, x, z)
	case StyleIsland:
		h = s.octaves(s.p.Hills, x, z) * s.islandFalloff(pt.dist)
	default:
		h = s.blended(pt)
		h += s.octaves(s.p.Detail, x, z) * (1 + math.Abs(h)*s.p.DetailGain)
	}

	if s.p.Edge.Enabled {
		h = math.Max(h, s.p.Edge.Curve.At(pt.dist))
	}
	return h
}

// Weights returns the normalized blend weights at (x, z). They sum to one,
// or are all zero when every raw weight is zero.
func (s *Synthesizer) Weights(x, z float64) [NumPatterns]float64 {
	var w [NumPatterns]float64
	for _, p := range Patterns {
		w[p] = s.rawWeight(p, x, z)
	}
	normalize(&w)
	return w
}

// PatternHeight evaluates a single landform pattern at (x, z), unweighted.
func (s *Synthesizer) PatternHeight(p Pattern, x, z float64) float64 {
	return s.height(p, s.newPoint(x, z))
}

func (s *Synthesizer) blended(pt point) float64 {
	w := s.Weights(pt.x, pt.z)
	h := 0.0
	for _, p := range Patterns {
		if w[p] == 0 {
			continue
		}
		h += s.height(p, pt) * w[p]
	}
	return h
}

func (s *Synthesizer) islandFalloff(d float64) float64 {
	if s.p.IslandRadius <= 0 {
		return 0
	}
	return 1 - math.Min(d/s.p.IslandRadius, 1)
}

func (s *Synthesizer) octave(o Octave, x, z float64) float64 {
	if o.Amplitude == 0 {
		return 0
	}
	return s.shape.Sample2D(x*o.Frequency, z*o.Frequency) * o.Amplitude
}

func (s *Synthesizer) octaves(os []Octave, x, z float64) float64 {
	sum := 0.0
	for _, o := range os {
		sum += s.octave(o, x, z)
	}
	return sum
}
