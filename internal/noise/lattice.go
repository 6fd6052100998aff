package noise

import "math"

// Hash-lattice value noise. Lattice values come from a SplitMix64 hash of
// the integer corner coordinates, so no permutation table is stored.

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// Hash2 mixes a lattice coordinate pair and a seed into 64 well-distributed bits.
// Stable across runs and platforms.
func Hash2(x, z, seed int64) uint64 {
	return mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
}

// Hash3 is the three-axis variant of Hash2.
func Hash3(x, y, z, seed int64) uint64 {
	return mix64(uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
}

func unit(h uint64) float64 {
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise2D returns a smooth value in [0,1].
func valueNoise2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	ix, iz := int64(x0), int64(z0)

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := unit(Hash2(ix, iz, seed))
	v10 := unit(Hash2(ix+1, iz, seed))
	v01 := unit(Hash2(ix, iz+1, seed))
	v11 := unit(Hash2(ix+1, iz+1, seed))

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

// valueNoise3D returns a smooth value in [0,1] by trilinear blending of the
// eight surrounding lattice corners.
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	c := func(dx, dy, dz int64) float64 {
		return unit(Hash3(ix+dx, iy+dy, iz+dz, seed))
	}

	i00 := lerp(c(0, 0, 0), c(1, 0, 0), fx)
	i10 := lerp(c(0, 1, 0), c(1, 1, 0), fx)
	i01 := lerp(c(0, 0, 1), c(1, 0, 1), fx)
	i11 := lerp(c(0, 1, 1), c(1, 1, 1), fx)

	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz)
}
