package world

import (
	"grassfield/internal/profiling"
	"grassfield/internal/terrain"
	"grassfield/internal/vegetation"
)

// Chunk bundles the geometry materialized for one coordinate. A chunk is
// complete when it reaches the store and is never mutated afterwards,
// except by Release.
type Chunk struct {
	Coord   ChunkCoord
	Heights *terrain.HeightField
	Terrain *terrain.Mesh
	Grass   *vegetation.InstanceSet
}

// Release drops the chunk's buffers. The store calls it after the chunk has
// left the resident map.
func (c *Chunk) Release() {
	c.Heights = nil
	c.Terrain = nil
	c.Grass = nil
}

// Released reports whether Release has run.
func (c *Chunk) Released() bool { return c.Heights == nil }

// builder turns a coordinate into a complete chunk. It only reads shared
// state, so several builds may run at once.
type builder struct {
	size       float64
	resolution int
	synth      terrain.Elevator
	scatter    *vegetation.Scatterer
}

func (b *builder) build(coord ChunkCoord) *Chunk {
	defer profiling.Track("world.buildChunk")()

	cx, cz := coord.Center(b.size)
	half := b.size / 2
	hf := terrain.BuildHeightField(cx-half, cz-half, b.size, b.size, b.resolution, b.resolution, b.synth)

	stop := profiling.Track("world.buildChunk.mesh")
	mesh := terrain.BuildMesh(hf)
	stop()

	stop = profiling.Track("world.buildChunk.scatter")
	p := b.scatter.Params()
	rng := vegetation.ChunkRNG(p.Seed, coord.X, coord.Z)
	grass := b.scatter.Scatter(rng, vegetation.BoundsAround(cx, cz, b.size), p.Count, hf, p.Policy)
	stop()

	return &Chunk{Coord: coord, Heights: hf, Terrain: mesh, Grass: grass}
}
