package noise

import (
	"math"
	"math/rand"
	"testing"
)

var allKinds = []Kind{Simplex, Perlin, Value}

// TestHash2Deterministic verifies Hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := Hash2(10, 30, 42)
	for i := 0; i < 100; i++ {
		if h := Hash2(10, 30, 42); h != first {
			t.Fatalf("Hash2 not deterministic: got %d then %d", first, h)
		}
	}
}

// TestHash3DifferentInputs verifies Hash3 separates axes and seeds
func TestHash3DifferentInputs(t *testing.T) {
	seed := int64(42)
	cases := []struct {
		name   string
		a, b   [3]int64
		sa, sb int64
	}{
		{"x", [3]int64{1, 0, 0}, [3]int64{2, 0, 0}, seed, seed},
		{"y", [3]int64{0, 1, 0}, [3]int64{0, 2, 0}, seed, seed},
		{"z", [3]int64{0, 0, 1}, [3]int64{0, 0, 2}, seed, seed},
		{"seed", [3]int64{1, 1, 1}, [3]int64{1, 1, 1}, 100, 200},
		{"axis swap", [3]int64{1, 2, 3}, [3]int64{3, 2, 1}, seed, seed},
	}
	for _, tc := range cases {
		h1 := Hash3(tc.a[0], tc.a[1], tc.a[2], tc.sa)
		h2 := Hash3(tc.b[0], tc.b[1], tc.b[2], tc.sb)
		if h1 == h2 {
			t.Errorf("%s: Hash3 collided (%d)", tc.name, h1)
		}
	}
}

func TestHash2AxisSwap(t *testing.T) {
	if Hash2(3, 7, 1) == Hash2(7, 3, 1) {
		t.Errorf("Hash2 should not be symmetric in x and z")
	}
}

// TestSampleRange verifies every backend stays within [-1,1]
func TestSampleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for _, kind := range allKinds {
		f := New(kind, 42)
		for i := 0; i < 2000; i++ {
			x := rng.Float64()*400 - 200
			y := rng.Float64()*400 - 200
			z := rng.Float64()*400 - 200
			if v := f.Sample2D(x, z); v < -1.0001 || v > 1.0001 || math.IsNaN(v) {
				t.Fatalf("%v Sample2D(%f, %f) = %f, expected in [-1,1]", kind, x, z, v)
			}
			if v := f.Sample3D(x, y, z); v < -1.0001 || v > 1.0001 || math.IsNaN(v) {
				t.Fatalf("%v Sample3D(%f, %f, %f) = %f, expected in [-1,1]", kind, x, y, z, v)
			}
		}
	}
}

// TestSameSeedSameField verifies two independently built fields agree exactly
func TestSameSeedSameField(t *testing.T) {
	for _, kind := range allKinds {
		a := New(kind, 7)
		b := New(kind, 7)
		for i := 0; i < 200; i++ {
			x := float64(i)*0.37 - 20
			z := float64(i)*-0.53 + 11
			if va, vb := a.Sample2D(x, z), b.Sample2D(x, z); va != vb {
				t.Fatalf("%v: Sample2D(%f,%f) differs between instances: %f vs %f", kind, x, z, va, vb)
			}
			if va, vb := a.Sample3D(x, 1.5, z), b.Sample3D(x, 1.5, z); va != vb {
				t.Fatalf("%v: Sample3D(%f,1.5,%f) differs between instances: %f vs %f", kind, x, z, va, vb)
			}
		}
	}
}

// TestDifferentSeedsDiffer guards against a backend silently ignoring its seed
func TestDifferentSeedsDiffer(t *testing.T) {
	for _, kind := range allKinds {
		a := New(kind, 1)
		b := New(kind, 2)
		same := 0
		for i := 0; i < 50; i++ {
			x := float64(i)*1.31 + 0.25
			z := float64(i)*0.77 + 0.5
			if a.Sample2D(x, z) == b.Sample2D(x, z) {
				same++
			}
		}
		if same == 50 {
			t.Errorf("%v: seeds 1 and 2 produced identical samples", kind)
		}
	}
}

// TestContinuity verifies smooth interpolation (no jumps across lattice lines)
func TestContinuity(t *testing.T) {
	for _, kind := range allKinds {
		f := New(kind, 42)
		for _, x := range []float64{0.999, 1.0, 2.9995, -3.0} {
			v1 := f.Sample2D(x, 0.3)
			v2 := f.Sample2D(x+0.001, 0.3)
			if d := math.Abs(v1 - v2); d >= 0.05 {
				t.Errorf("%v Sample2D jumps near x=%f: %f vs %f (diff %f)", kind, x, v1, v2, d)
			}
			w1 := f.Sample3D(x, 0.7, 0.3)
			w2 := f.Sample3D(x+0.001, 0.7, 0.3)
			if d := math.Abs(w1 - w2); d >= 0.05 {
				t.Errorf("%v Sample3D jumps near x=%f: %f vs %f (diff %f)", kind, x, w1, w2, d)
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", Simplex, false},
		{"simplex", Simplex, false},
		{" Perlin ", Perlin, false},
		{"VALUE", Value, false},
		{"worley", Simplex, true},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func BenchmarkSample2D(b *testing.B) {
	for _, kind := range allKinds {
		f := New(kind, 99)
		b.Run(kind.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = f.Sample2D(float64(i)*0.013, float64(i)*0.007)
			}
		})
	}
}
