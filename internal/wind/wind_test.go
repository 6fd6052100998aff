package wind

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/noise"
)

// TestStrengthStaysInRange samples a full oscillation period and more
func TestStrengthStaysInRange(t *testing.T) {
	for _, p := range []Params{
		DefaultParams(),
		{Base: 1, Amplitude: 0.5, Frequency: 3, TimeStep: 0.02},
		{Base: 0, Amplitude: -2, Frequency: 0.1, TimeStep: 0.01},
	} {
		d := NewDriver(p)
		lo, hi := p.Range()
		period := p.Period()
		steps := 2000
		sawLo, sawHi := false, false
		for i := 0; i <= steps; i++ {
			wall := period * time.Duration(i) / time.Duration(steps/2)
			s := float64(d.Advance(wall).Strength)
			if s < lo-1e-6 || s > hi+1e-6 {
				t.Fatalf("%+v: strength %f at %v outside [%f, %f]", p, s, wall, lo, hi)
			}
			sawLo = sawLo || s < lo+0.01*math.Abs(hi-lo)
			sawHi = sawHi || s > hi-0.01*math.Abs(hi-lo)
		}
		if !sawLo || !sawHi {
			t.Errorf("%+v: oscillation never reached both ends (lo %v, hi %v)", p, sawLo, sawHi)
		}
	}
}

// TestTimeStrictlyIncreasing verifies the animation clock advances by TimeStep each frame
func TestTimeStrictlyIncreasing(t *testing.T) {
	p := DefaultParams()
	d := NewDriver(p)
	prev := d.Current().Time
	for i := 1; i <= 10000; i++ {
		u := d.Advance(time.Duration(i) * 16 * time.Millisecond)
		if u.Time <= prev {
			t.Fatalf("frame %d: time %f did not increase past %f", i, u.Time, prev)
		}
		if want := float32(float64(i) * p.TimeStep); u.Time != want {
			t.Fatalf("frame %d: time %f, want %f", i, u.Time, want)
		}
		prev = u.Time
	}
	if d.Current().Time != prev {
		t.Errorf("Current() = %f, want last published %f", d.Current().Time, prev)
	}
}

func TestTimeIgnoresWallClockJumps(t *testing.T) {
	d := NewDriver(DefaultParams())
	a := d.Advance(5 * time.Second)
	b := d.Advance(time.Second) // wall clock went backwards
	if b.Time <= a.Time {
		t.Errorf("time went backwards: %f then %f", a.Time, b.Time)
	}
}

// TestDisplaceBounded checks the reference displacement against its documented limits
func TestDisplaceBounded(t *testing.T) {
	p := DefaultParams()
	d := NewDriver(p)
	n := noise.New(noise.Simplex, 3)
	limit := MaxSway(p)

	for frame := 0; frame < 300; frame++ {
		u := d.Advance(time.Duration(frame) * 50 * time.Millisecond)
		for k := 0; k < 20; k++ {
			v := Vertex{
				Position: mgl32.Vec3{float32(k*13) - 100, 2, float32(k*7) - 40},
				Phase:    float32(k) * 0.3,
				Bend:     0.5,
				Scale:    1.2,
				Opacity:  0.8,
			}
			off, op := Displace(v, u, n)
			kk := float64(v.Bend * v.Scale)
			for i := 0; i < 3; i++ {
				if math.IsNaN(float64(off[i])) || math.IsInf(float64(off[i]), 0) {
					t.Fatalf("non-finite offset %v", off)
				}
			}
			if math.Abs(float64(off.X())) > limit*kk+1e-6 {
				t.Fatalf("sway %f beyond %f", off.X(), limit*kk)
			}
			if off.Y() > 0 || math.Abs(float64(off.Y())) > limit*Compression*kk+1e-6 {
				t.Fatalf("compression %f outside [-%f, 0]", off.Y(), limit*Compression*kk)
			}
			if math.Abs(float64(off.Y())) > math.Abs(float64(off.X()))*Compression+1e-6 {
				t.Fatalf("compression %f not proportional to sway %f", off.Y(), off.X())
			}
			if op > v.Opacity+1e-6 || op < v.Opacity*OpacityFloor-1e-6 {
				t.Fatalf("opacity %f outside [%f, %f]", op, v.Opacity*OpacityFloor, v.Opacity)
			}
		}
	}
}

func TestDisplaceRootStill(t *testing.T) {
	n := noise.New(noise.Simplex, 3)
	off, _ := Displace(Vertex{Position: mgl32.Vec3{5, 0, 5}, Bend: 0, Scale: 1, Opacity: 1}, Uniforms{Time: 4, Strength: 0.6}, n)
	if off != (mgl32.Vec3{}) {
		t.Errorf("vertex with zero bend moved by %v", off)
	}
}

func TestDisplaceContinuousInTime(t *testing.T) {
	n := noise.New(noise.Simplex, 3)
	v := Vertex{Position: mgl32.Vec3{10, 1, -3}, Bend: 0.4, Scale: 1, Opacity: 1}
	a, _ := Displace(v, Uniforms{Time: 1.00, Strength: 0.5}, n)
	b, _ := Displace(v, Uniforms{Time: 1.01, Strength: 0.5}, n)
	if d := a.Sub(b).Len(); d > 0.01 {
		t.Errorf("offset jumped by %f over one frame", d)
	}
}
