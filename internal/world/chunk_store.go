package world

import (
	"sync"
)

// ChunkStore is the resident map: at most one complete chunk per coordinate.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // bumped on every add and remove
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{chunks: make(map[ChunkCoord]*Chunk)}
}

// Has reports whether coord is resident.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ok
}

// Get returns the resident chunk at coord, or nil.
func (cs *ChunkStore) Get(coord ChunkCoord) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// Add inserts a fully built chunk. If coord is already resident the store
// keeps the existing chunk and reports false.
func (cs *ChunkStore) Add(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	return true
}

// Remove takes coord out of the map and then releases its chunk, so no
// reader can observe a released chunk through the store.
func (cs *ChunkStore) Remove(coord ChunkCoord) bool {
	cs.mu.Lock()
	chunk, ok := cs.chunks[coord]
	if ok {
		delete(cs.chunks, coord)
		cs.modCount++
	}
	cs.mu.Unlock()
	if ok {
		chunk.Release()
	}
	return ok
}

// Coords returns the resident coordinates in no particular order.
func (cs *ChunkStore) Coords() []ChunkCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]ChunkCoord, 0, len(cs.chunks))
	for c := range cs.chunks {
		out = append(out, c)
	}
	return out
}

// All returns the resident chunks in no particular order.
func (cs *ChunkStore) All() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, ch := range cs.chunks {
		out = append(out, ch)
	}
	return out
}

// Len returns the number of resident chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// ModCount returns the modification counter. Consumers holding per-chunk
// state (GPU buffers) resync when it changes.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}
