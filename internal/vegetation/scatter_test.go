package vegetation

import (
	"math"
	"math/rand/v2"
	"testing"
)

type flat float64

func (f flat) HeightAt(x, z float64) float64 { return float64(f) }

type slope struct{}

func (slope) HeightAt(x, z float64) float64 { return x * 0.5 }

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestScatterZeroCount(t *testing.T) {
	s := NewScatterer(DefaultParams())
	set := s.Scatter(testRNG(), BoundsAround(0, 0, 100), 0, flat(0), DensityPolicy{})
	if !set.Empty() || set.VertexCount() != 0 || len(set.Indices) != 0 {
		t.Fatalf("zero-count scatter: %d vertices, %d indices, want none", set.VertexCount(), len(set.Indices))
	}
	if set.Bytes() != 0 {
		t.Errorf("zero-count scatter reports %d bytes", set.Bytes())
	}
}

func TestScatterAllRejected(t *testing.T) {
	s := NewScatterer(DefaultParams())
	// Every candidate sits further from the center than the falloff radius.
	policy := DensityPolicy{Distribution: Rect, FalloffRadius: 1e-9}
	set := s.Scatter(testRNG(), Bounds{MinX: 10, MinZ: 10, MaxX: 20, MaxZ: 20}, 500, flat(0), policy)
	if !set.Empty() {
		t.Fatalf("expected every candidate rejected, got %d blades", set.Blades)
	}
	if set.Positions != nil || set.Indices != nil || set.Bends != nil {
		t.Errorf("empty set must carry nil buffers, got %d positions / %d indices", len(set.Positions), len(set.Indices))
	}
}

func TestScatterBufferShapes(t *testing.T) {
	p := DefaultParams()
	s := NewScatterer(p)
	set := s.Scatter(testRNG(), BoundsAround(0, 0, 50), 200, slope{}, DensityPolicy{Distribution: Rect})

	if set.Blades != 200 {
		t.Fatalf("Blades = %d, want 200 with no rejection", set.Blades)
	}
	verts := set.Blades * p.Segments
	if set.VertexCount() != verts {
		t.Fatalf("VertexCount = %d, want %d", set.VertexCount(), verts)
	}
	for name, n := range map[string]int{
		"phases": len(set.Phases), "opacities": len(set.Opacities),
		"scales": len(set.Scales), "bends": len(set.Bends),
	} {
		if n != verts {
			t.Errorf("len(%s) = %d, want %d", name, n, verts)
		}
	}
	if want := set.Blades * (p.Segments - 1) * 2; len(set.Indices) != want {
		t.Errorf("len(Indices) = %d, want %d", len(set.Indices), want)
	}
}

// TestScatterIndicesStayWithinBlade verifies no line joins two different blades
func TestScatterIndicesStayWithinBlade(t *testing.T) {
	p := DefaultParams()
	s := NewScatterer(p)
	set := s.Scatter(testRNG(), BoundsAround(0, 0, 50), 300, flat(1), DensityPolicy{Distribution: Disc, FalloffRadius: 30})
	for i := 0; i < len(set.Indices); i += 2 {
		a, b := int(set.Indices[i]), int(set.Indices[i+1])
		if b != a+1 {
			t.Fatalf("line %d joins %d-%d, want consecutive vertices", i/2, a, b)
		}
		if a/p.Segments != b/p.Segments {
			t.Fatalf("line %d crosses blades: %d-%d", i/2, a, b)
		}
	}
}

// TestScatterPerBladeAttributes verifies phase, opacity and scale are shared by a blade's segments
func TestScatterPerBladeAttributes(t *testing.T) {
	p := DefaultParams()
	s := NewScatterer(p)
	set := s.Scatter(testRNG(), BoundsAround(100, -100, 80), 100, slope{}, DensityPolicy{Distribution: BiasedDisc, Bias: 0.5})
	segs := p.Segments
	for b := 0; b < set.Blades; b++ {
		base := b * segs
		for j := 1; j < segs; j++ {
			v := base + j
			if set.Phases[v] != set.Phases[base] || set.Opacities[v] != set.Opacities[base] || set.Scales[v] != set.Scales[base] {
				t.Fatalf("blade %d segment %d attributes differ from root", b, j)
			}
			if set.Positions[3*v] != set.Positions[3*base] || set.Positions[3*v+2] != set.Positions[3*base+2] {
				t.Fatalf("blade %d segment %d leaves the root column", b, j)
			}
			if set.Positions[3*v+1] < set.Positions[3*(v-1)+1] {
				t.Fatalf("blade %d segment %d lower than the segment below", b, j)
			}
		}
		if ph := set.Phases[base]; ph < 0 || ph >= 2*math.Pi {
			t.Errorf("blade %d phase %f outside [0, 2pi)", b, ph)
		}
		if op := set.Opacities[base]; op < float32(p.OpacityMin) || op > 1 {
			t.Errorf("blade %d opacity %f outside [%f, 1]", b, op, p.OpacityMin)
		}
		if set.Bends[base] != 0 {
			t.Errorf("blade %d root bend %f, want 0", b, set.Bends[base])
		}
		tip := set.Bends[base+segs-1]
		if tip < float32(p.BendBase-p.BendRange)-1e-6 || tip > float32(p.BendBase+p.BendRange)+1e-6 {
			t.Errorf("blade %d tip bend %f outside [%f, %f]", b, tip, p.BendBase-p.BendRange, p.BendBase+p.BendRange)
		}
	}
}

func TestScatterRootsFollowHeights(t *testing.T) {
	p := DefaultParams()
	s := NewScatterer(p)
	set := s.Scatter(testRNG(), BoundsAround(0, 0, 40), 50, slope{}, DensityPolicy{})
	for b := 0; b < set.Blades; b++ {
		v := b * p.Segments
		x, y := set.Positions[3*v], set.Positions[3*v+1]
		if math.Abs(float64(y)-float64(x)*0.5) > 1e-4 {
			t.Errorf("blade %d root y=%f, want %f", b, y, x*0.5)
		}
	}
}

func TestDiscStaysInRadius(t *testing.T) {
	for _, dist := range []Distribution{Disc, BiasedDisc} {
		policy := DensityPolicy{Distribution: dist, Radius: 25, Bias: 0.5}
		rng := testRNG()
		b := BoundsAround(10, 20, 100)
		for i := 0; i < 1000; i++ {
			x, z := policy.draw(rng, b)
			if d := math.Hypot(x-10, z-20); d > 25+1e-9 {
				t.Fatalf("%v: candidate at distance %f beyond radius 25", dist, d)
			}
		}
	}
}

func TestBiasedDiscSkewsInward(t *testing.T) {
	b := BoundsAround(0, 0, 200)
	mean := func(dist Distribution) float64 {
		policy := DensityPolicy{Distribution: dist, Radius: 90, Bias: 0.5}
		rng := testRNG()
		sum := 0.0
		for i := 0; i < 5000; i++ {
			x, z := policy.draw(rng, b)
			sum += math.Hypot(x, z)
		}
		return sum / 5000
	}
	if disc, biased := mean(Disc), mean(BiasedDisc); biased >= disc {
		t.Errorf("biased disc mean radius %f not below disc mean %f", biased, disc)
	}
}

func TestFalloffThinsWithDistance(t *testing.T) {
	policy := DensityPolicy{FalloffRadius: 100}
	b := BoundsAround(0, 0, 200)
	kept := func(d float64) int {
		rng := testRNG()
		n := 0
		for i := 0; i < 2000; i++ {
			if !policy.reject(rng, b, d, 0) {
				n++
			}
		}
		return n
	}
	near, far := kept(10), kept(80)
	if near <= far {
		t.Errorf("falloff kept %d near vs %d far, want more near", near, far)
	}
	if k := kept(150); k != 0 {
		t.Errorf("falloff kept %d candidates beyond the radius", k)
	}
}

func TestChunkRNGDeterministic(t *testing.T) {
	s := NewScatterer(DefaultParams())
	b := BoundsAround(800, 0, 800)
	a := s.Scatter(ChunkRNG(7, 1, 0), b, 64, flat(3), DensityPolicy{})
	c := s.Scatter(ChunkRNG(7, 1, 0), b, 64, flat(3), DensityPolicy{})
	for i := range a.Positions {
		if a.Positions[i] != c.Positions[i] {
			t.Fatalf("same chunk seed scattered differently at %d", i)
		}
	}
	d := s.Scatter(ChunkRNG(7, 2, 0), b, 64, flat(3), DensityPolicy{})
	if d.Positions[0] == a.Positions[0] && d.Positions[2] == a.Positions[2] {
		t.Errorf("neighboring chunks share their first blade")
	}
}

func TestDistributionText(t *testing.T) {
	for _, d := range []Distribution{Rect, Disc, BiasedDisc} {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", d, err)
		}
		var back Distribution
		if err := back.UnmarshalText(b); err != nil || back != d {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}
}

func BenchmarkScatter(b *testing.B) {
	s := NewScatterer(DefaultParams())
	bounds := BoundsAround(0, 0, 800)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Scatter(ChunkRNG(1, i, 0), bounds, 5000, flat(0), DensityPolicy{})
	}
}
