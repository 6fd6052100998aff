package vegetation

import (
	"math"
	"math/rand/v2"

	"grassfield/internal/noise"
)

// HeightSource answers surface height queries for placement.
type HeightSource interface {
	HeightAt(x, z float64) float64
}

// Params configures blade shape and per-blade attribute ranges.
type Params struct {
	Seed  int64      `yaml:"-"`
	Noise noise.Kind `yaml:"noise"`

	// Count is the number of candidate placements per chunk.
	Count       int     `yaml:"count"`
	Segments    int     `yaml:"segments"`
	BladeHeight float64 `yaml:"blade_height"`

	// Bend for segment t is t^2 * (BendBase + n*BendRange), n sampled at BendFrequency.
	BendFrequency float64 `yaml:"bend_frequency"`
	BendBase      float64 `yaml:"bend_base"`
	BendRange     float64 `yaml:"bend_range"`

	ScaleMin    float64 `yaml:"scale_min"`
	ScaleJitter float64 `yaml:"scale_jitter"`

	// HeightScale varies blade length with elevation:
	// HeightScaleMin + |sin(y*HeightScaleFrequency)|*HeightScaleRange.
	HeightScale          bool    `yaml:"height_scale"`
	HeightScaleFrequency float64 `yaml:"height_scale_frequency"`
	HeightScaleMin       float64 `yaml:"height_scale_min"`
	HeightScaleRange     float64 `yaml:"height_scale_range"`

	OpacityMin float64 `yaml:"opacity_min"`

	Policy DensityPolicy `yaml:"policy"`
}

// DefaultParams matches the streamed grass field: uniform placement over the
// chunk, four-segment blades, height-dependent length.
func DefaultParams() Params {
	return Params{
		Seed:                 1,
		Noise:                noise.Simplex,
		Count:                50000,
		Segments:             4,
		BladeHeight:          0.4,
		BendFrequency:        0.1,
		BendBase:             0.3,
		BendRange:            0.2,
		ScaleMin:             0.8,
		ScaleJitter:          0.4,
		HeightScale:          true,
		HeightScaleFrequency: 0.5,
		HeightScaleMin:       0.6,
		HeightScaleRange:     0.4,
		OpacityMin:           0.3,
		Policy:               DensityPolicy{Distribution: Rect, Bias: 0.5},
	}
}

// Scatterer places blades over a height source. The bend noise field is built
// once and shared by every Scatter call.
type Scatterer struct {
	p    Params
	bend *noise.Field
}

// NewScatterer builds a scatterer; fewer than two segments is raised to two.
func NewScatterer(p Params) *Scatterer {
	p.Segments = max(p.Segments, 2)
	return &Scatterer{p: p, bend: noise.New(p.Noise, p.Seed)}
}

// Params returns the scatterer's configuration.
func (s *Scatterer) Params() Params { return s.p }

// Scatter draws count candidates inside bounds under policy and builds the
// blade buffers for the survivors. rng is consumed; bounds, heights and the
// scatterer itself are only read, so independent chunks may scatter concurrently.
func (s *Scatterer) Scatter(rng *rand.Rand, bounds Bounds, count int, heights HeightSource, policy DensityPolicy) *InstanceSet {
	set := &InstanceSet{Segments: s.p.Segments}
	if count <= 0 {
		return set
	}

	segs := s.p.Segments
	set.reserve(count, segs)

	for range count {
		x, z := policy.draw(rng, bounds)
		if policy.reject(rng, bounds, x, z) {
			continue
		}
		y := heights.HeightAt(x, z)

		scale := (s.p.ScaleMin + rng.Float64()*s.p.ScaleJitter) * s.heightScale(y)
		phase := rng.Float64() * 2 * math.Pi
		opacity := s.p.OpacityMin + rng.Float64()*(1-s.p.OpacityMin)

		f := s.p.BendFrequency
		n := s.bend.Sample3D(x*f, y*f, z*f)
		lean := s.p.BendBase + n*s.p.BendRange

		first := uint32(set.VertexCount())
		for j := range segs {
			t := float64(j) / float64(segs-1)
			set.Positions = append(set.Positions, float32(x), float32(y+s.p.BladeHeight*scale*t), float32(z))
			set.Bends = append(set.Bends, float32(t*t*lean))
			set.Phases = append(set.Phases, float32(phase))
			set.Opacities = append(set.Opacities, float32(opacity))
			set.Scales = append(set.Scales, float32(scale))
			if j > 0 {
				v := first + uint32(j)
				set.Indices = append(set.Indices, v-1, v)
			}
		}
		set.Blades++
	}

	if set.Blades == 0 {
		*set = InstanceSet{Segments: segs}
	}
	return set
}

func (s *Scatterer) heightScale(y float64) float64 {
	if !s.p.HeightScale {
		return 1
	}
	return s.p.HeightScaleMin + math.Abs(math.Sin(y*s.p.HeightScaleFrequency))*s.p.HeightScaleRange
}

// ChunkRNG returns the deterministic random source for the chunk at (cx, cz),
// so a chunk rebuilt after eviction scatters the same blades.
func ChunkRNG(seed int64, cx, cz int) *rand.Rand {
	h := noise.Hash2(int64(cx), int64(cz), seed)
	return rand.New(rand.NewPCG(h, h^0xD1B54A32D192ED03))
}
