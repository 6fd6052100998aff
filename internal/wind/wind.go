package wind

import (
	"math"
	"time"
)

// Params shapes the wind signal published to every chunk each frame.
type Params struct {
	// Strength oscillates as Base + Amplitude*sin(wallSeconds*Frequency).
	Base      float64 `yaml:"base"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	// TimeStep is added to the animation clock once per frame.
	TimeStep float64 `yaml:"time_step"`
}

// DefaultParams is a gentle breeze: strength swings between 0 and 0.6 with a
// period of about 12.6 seconds.
func DefaultParams() Params {
	return Params{
		Base:      0.3,
		Amplitude: 0.3,
		Frequency: 0.5,
		TimeStep:  0.01,
	}
}

// Range returns the closed interval Strength stays within.
func (p Params) Range() (lo, hi float64) {
	a := math.Abs(p.Amplitude)
	return p.Base - a, p.Base + a
}

// Period returns the wall-clock length of one full strength oscillation.
func (p Params) Period() time.Duration {
	if p.Frequency == 0 {
		return 0
	}
	return time.Duration(2 * math.Pi / math.Abs(p.Frequency) * float64(time.Second))
}

// Uniforms is the pair of scalars every grass draw reads.
type Uniforms struct {
	Time     float32
	Strength float32
}

// Driver advances the wind state once per frame.
type Driver struct {
	p     Params
	ticks uint64
	cur   Uniforms
}

// NewDriver returns a driver at time zero with strength at Base.
func NewDriver(p Params) *Driver {
	return &Driver{p: p, cur: Uniforms{Strength: float32(p.Base)}}
}

// Params returns the driver's configuration.
func (d *Driver) Params() Params { return d.p }

// Advance steps the animation clock and samples strength at the given wall
// time. Time is derived from the tick count, so it grows by exactly TimeStep
// per call without accumulating rounding drift.
func (d *Driver) Advance(wall time.Duration) Uniforms {
	d.ticks++
	lo, hi := d.p.Range()
	s := d.p.Base + d.p.Amplitude*math.Sin(wall.Seconds()*d.p.Frequency)
	s = math.Max(lo, math.Min(hi, s))
	d.cur = Uniforms{
		Time:     float32(float64(d.ticks) * d.p.TimeStep),
		Strength: float32(s),
	}
	return d.cur
}

// Current returns the most recently published uniforms.
func (d *Driver) Current() Uniforms { return d.cur }
