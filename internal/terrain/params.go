package terrain

import (
	"fmt"
	"math"
	"strings"

	"grassfield/internal/noise"
)

// Style selects how the synthesizer shapes the surface.
type Style int

const (
	// StyleBlended mixes the five landform patterns by noise-derived weights.
	StyleBlended Style = iota
	// StyleBowl is a radial bowl with stacked hills on top.
	StyleBowl
	// StyleIsland is stacked hills that fade to zero at IslandRadius.
	StyleIsland
)

var styleNames = map[Style]string{
	StyleBlended: "blended",
	StyleBowl:    "bowl",
	StyleIsland:  "island",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if n, ok := styleNames[s]; ok {
		return []byte(n), nil
	}
	return nil, fmt.Errorf("unknown terrain style %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for k, v := range styleNames {
		if v == name {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown terrain style %q", string(b))
}

// Octave is one noise term: sample at Frequency, scale by Amplitude.
type Octave struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

// Radial is the power law (d/Radius)^Exponent * Height.
type Radial struct {
	Radius   float64 `yaml:"radius"`
	Exponent float64 `yaml:"exponent"`
	Height   float64 `yaml:"height"`
}

// At evaluates the power law at distance d.
func (r Radial) At(d float64) float64 {
	if r.Radius <= 0 {
		return 0
	}
	return math.Pow(d/r.Radius, r.Exponent) * r.Height
}

// Ring is a Gaussian bump exp(-(d-Radius)^2/Width) * Height around the origin.
type Ring struct {
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// At evaluates the ring at distance d.
func (r Ring) At(d float64) float64 {
	if r.Width <= 0 {
		return 0
	}
	dd := d - r.Radius
	return math.Exp(-dd*dd/r.Width) * r.Height
}

// EdgeFloor forces the surface to rise toward the map edge.
type EdgeFloor struct {
	Enabled bool   `yaml:"enabled"`
	Curve   Radial `yaml:"curve"`
}

// Params holds every constant the synthesizer reads.
type Params struct {
	Seed  int64      `yaml:"-"`
	Noise noise.Kind `yaml:"noise"`
	Style Style      `yaml:"style"`

	// Base is the large-scale radial term every pattern sits on.
	Base Radial `yaml:"base"`

	BlendFrequency float64 `yaml:"blend_frequency"`
	// BlendOffsets shifts the blend-noise x coordinate per pattern so each
	// pattern reads an independent weight.
	BlendOffsets [NumPatterns]float64 `yaml:"blend_offsets"`
	// BaseShare is the fraction of Base carried under each pattern.
	BaseShare [NumPatterns]float64 `yaml:"base_share"`

	BowlNoise []Octave `yaml:"bowl_noise"`

	WaveFrequency float64 `yaml:"wave_frequency"`
	WaveHeight    float64 `yaml:"wave_height"`
	WaveNoise     Octave  `yaml:"wave_noise"`

	Craters     []Ring `yaml:"craters"`
	CraterNoise Octave `yaml:"crater_noise"`

	SpiralArms   float64 `yaml:"spiral_arms"`
	SpiralTwist  float64 `yaml:"spiral_twist"`
	SpiralHeight float64 `yaml:"spiral_height"`
	SpiralNoise  Octave  `yaml:"spiral_noise"`

	RidgeNoise     Octave  `yaml:"ridge_noise"`
	RidgeSharpness float64 `yaml:"ridge_sharpness"`

	Detail     []Octave `yaml:"detail"`
	DetailGain float64  `yaml:"detail_gain"`

	Edge EdgeFloor `yaml:"edge"`

	// Hills and IslandRadius are read by StyleBowl and StyleIsland only.
	Hills        []Octave `yaml:"hills"`
	IslandRadius float64  `yaml:"island_radius"`
}

// DefaultParams returns the blended five-pattern landscape.
func DefaultParams() Params {
	return Params{
		Seed:           1,
		Noise:          noise.Simplex,
		Style:          StyleBlended,
		Base:           Radial{Radius: 150, Exponent: 3, Height: 80},
		BlendFrequency: 0.02,
		BlendOffsets:   [NumPatterns]float64{0, 100, 200, 300, 400},
		BaseShare:      [NumPatterns]float64{1, 0.7, 0.8, 0.9, 0.85},
		BowlNoise:      []Octave{{0.04, 8}, {0.08, 4}},
		WaveFrequency:  0.2,
		WaveHeight:     12,
		WaveNoise:      Octave{0.05, 3},
		Craters:        []Ring{{Radius: 40, Width: 300, Height: 20}, {Radius: 80, Width: 500, Height: 15}},
		CraterNoise:    Octave{0.06, 4},
		SpiralArms:     5,
		SpiralTwist:    0.1,
		SpiralHeight:   15,
		SpiralNoise:    Octave{0.05, 5},
		RidgeNoise:     Octave{0.03, 30},
		RidgeSharpness: 1.5,
		Detail:         []Octave{{0.2, 2}, {0.4, 1}},
		DetailGain:     0.1,
		Edge: EdgeFloor{
			Enabled: true,
			Curve:   Radial{Radius: 200, Exponent: 2, Height: 100},
		},
		Hills:        []Octave{{0.02, 6}, {0.04, 4}, {0.08, 2}},
		IslandRadius: 50,
	}
}

// PresetParams returns DefaultParams adjusted for the given style.
func PresetParams(style Style) Params {
	p := DefaultParams()
	p.Style = style
	switch style {
	case StyleBowl:
		p.Base = Radial{Radius: 100, Exponent: 2, Height: 15}
		p.Hills = []Octave{{0.02, 6}, {0.04, 4}, {0.08, 2}}
		p.Edge.Enabled = false
	case StyleIsland:
		p.Hills = []Octave{{0.02, 4}, {0.05, 2}, {0.1, 1}}
		p.IslandRadius = 50
		p.Edge.Enabled = false
	}
	return p
}
