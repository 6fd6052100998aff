package world

import (
	"fmt"
	"math"
)

// ChunkCoord identifies a square cell of the ground plane. Its world-space
// center is (X*size, Z*size).
type ChunkCoord struct {
	X, Z int
}

// CoordAt returns the coordinate of the chunk the viewpoint (x, z) is in.
func CoordAt(x, z, size float64) ChunkCoord {
	return ChunkCoord{
		X: int(math.Floor(x / size)),
		Z: int(math.Floor(z / size)),
	}
}

// Center returns the world-space center of c.
func (c ChunkCoord) Center(size float64) (float64, float64) {
	return float64(c.X) * size, float64(c.Z) * size
}

// Chebyshev returns the ring index of c around o.
func (c ChunkCoord) Chebyshev(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

func (c ChunkCoord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Z) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
