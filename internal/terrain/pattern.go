package terrain

import "math"

// Pattern names one of the landform shapes blended by StyleBlended.
type Pattern int

const (
	Bowl Pattern = iota
	Waves
	Crater
	Spiral
	Ridges

	NumPatterns = 5
)

// Patterns lists every pattern in blend order.
var Patterns = [NumPatterns]Pattern{Bowl, Waves, Crater, Spiral, Ridges}

func (p Pattern) String() string {
	switch p {
	case Bowl:
		return "bowl"
	case Waves:
		return "waves"
	case Crater:
		return "crater"
	case Spiral:
		return "spiral"
	case Ridges:
		return "ridges"
	}
	return "unknown"
}

// point is a world sample with its polar coordinates and radial base precomputed.
type point struct {
	x, z  float64
	dist  float64
	angle float64
	base  float64
}

func (s *Synthesizer) newPoint(x, z float64) point {
	d := math.Hypot(x, z)
	return point{
		x:     x,
		z:     z,
		dist:  d,
		angle: math.Atan2(z, x),
		base:  s.p.Base.At(d),
	}
}

// height evaluates pattern p at pt, including its share of the radial base.
func (s *Synthesizer) height(p Pattern, pt point) float64 {
	under := pt.base * s.p.BaseShare[p]
	switch p {
	case Bowl:
		return under + s.octaves(s.p.BowlNoise, pt.x, pt.z)
	case Waves:
		waves := math.Sin(pt.dist*s.p.WaveFrequency) * s.p.WaveHeight
		return under + waves + s.octave(s.p.WaveNoise, pt.x, pt.z)
	case Crater:
		rim := 0.0
		for i, r := range s.p.Craters {
			if v := r.At(pt.dist); i == 0 || v > rim {
				rim = v
			}
		}
		return under + rim + s.octave(s.p.CraterNoise, pt.x, pt.z)
	case Spiral:
		arm := math.Sin(pt.angle*s.p.SpiralArms+pt.dist*s.p.SpiralTwist) * s.p.SpiralHeight
		return under + arm + s.octave(s.p.SpiralNoise, pt.x, pt.z)
	case Ridges:
		n := s.shape.Sample2D(pt.x*s.p.RidgeNoise.Frequency, pt.z*s.p.RidgeNoise.Frequency)
		return under + math.Pow(math.Abs(n), s.p.RidgeSharpness)*s.p.RidgeNoise.Amplitude
	}
	return 0
}

// rawWeight is the unnormalized blend weight of p: the squared blend noise,
// read at a per-pattern offset.
func (s *Synthesizer) rawWeight(p Pattern, x, z float64) float64 {
	f := s.p.BlendFrequency
	n := s.blend.Sample2D(x*f+s.p.BlendOffsets[p], z*f)
	return math.Max(0, n*n)
}

// normalize scales w to sum to one. A zero sum leaves every weight at zero.
func normalize(w *[NumPatterns]float64) {
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		*w = [NumPatterns]float64{}
		return
	}
	for i := range w {
		w[i] /= total
	}
}
