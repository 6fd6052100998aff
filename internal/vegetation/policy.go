package vegetation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Distribution picks how candidate blade positions are drawn.
type Distribution int

const (
	// Rect draws uniformly over the bounds rectangle.
	Rect Distribution = iota
	// Disc draws a uniform angle and a uniform radius, which crowds the center.
	Disc
	// BiasedDisc multiplies the radius by u^Bias, skewing harder toward the center.
	BiasedDisc
)

var distributionNames = map[Distribution]string{
	Rect:       "rect",
	Disc:       "disc",
	BiasedDisc: "biased-disc",
}

func (d Distribution) String() string {
	if n, ok := distributionNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Distribution) MarshalText() ([]byte, error) {
	if n, ok := distributionNames[d]; ok {
		return []byte(n), nil
	}
	return nil, fmt.Errorf("unknown distribution %d", int(d))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Distribution) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for k, v := range distributionNames {
		if v == name {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown distribution %q", string(b))
}

// Bounds is an axis-aligned footprint in world space.
type Bounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// BoundsAround returns the square of edge size centered on (cx, cz).
func BoundsAround(cx, cz, size float64) Bounds {
	h := size / 2
	return Bounds{MinX: cx - h, MinZ: cz - h, MaxX: cx + h, MaxZ: cz + h}
}

// Center returns the midpoint of b.
func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinZ + b.MaxZ) / 2
}

// inscribedRadius is half the shorter edge.
func (b Bounds) inscribedRadius() float64 {
	return math.Min(b.MaxX-b.MinX, b.MaxZ-b.MinZ) / 2
}

// DensityPolicy governs where blades land and which candidates are dropped.
type DensityPolicy struct {
	Distribution Distribution `yaml:"distribution"`
	// Radius bounds the disc distributions; zero uses the inscribed radius of the bounds.
	Radius float64 `yaml:"radius"`
	// Bias is the exponent applied to the second draw in BiasedDisc.
	Bias float64 `yaml:"bias"`
	// FalloffRadius enables distance rejection when positive: a candidate at
	// distance d from the center survives with probability 1 - d/FalloffRadius.
	FalloffRadius float64 `yaml:"falloff_radius"`
}

// draw returns one candidate position inside b.
func (p DensityPolicy) draw(rng *rand.Rand, b Bounds) (float64, float64) {
	cx, cz := b.Center()
	switch p.Distribution {
	case Disc, BiasedDisc:
		r := p.Radius
		if r <= 0 {
			r = b.inscribedRadius()
		}
		angle := rng.Float64() * 2 * math.Pi
		radius := rng.Float64() * r
		if p.Distribution == BiasedDisc {
			radius *= math.Pow(rng.Float64(), p.Bias)
		}
		return cx + math.Cos(angle)*radius, cz + math.Sin(angle)*radius
	default:
		return b.MinX + rng.Float64()*(b.MaxX-b.MinX), b.MinZ + rng.Float64()*(b.MaxZ-b.MinZ)
	}
}

// reject reports whether the candidate at (x, z) is dropped by distance falloff.
func (p DensityPolicy) reject(rng *rand.Rand, b Bounds, x, z float64) bool {
	if p.FalloffRadius <= 0 {
		return false
	}
	cx, cz := b.Center()
	d := math.Hypot(x-cx, z-cz)
	return rng.Float64() > 1-d/p.FalloffRadius
}
