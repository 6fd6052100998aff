package world

import (
	"log"
	"math"
	"runtime"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"grassfield/internal/profiling"
	"grassfield/internal/terrain"
	"grassfield/internal/vegetation"
)

// Settings bounds the streamed working set.
type Settings struct {
	Size             float64 // chunk edge length in world units
	ChunksInView     int     // the desired square extends ChunksInView/2 chunks each way
	MaxViewDistance  float64 // chunks whose center is further than this are never desired
	Resolution       int     // height-field cells per chunk edge
	MaxBuildsPerTick int     // 0 builds the whole difference in one step
	Workers          int     // concurrent builds, 0 = GOMAXPROCS
}

// Radius returns the half-width of the desired square, in chunks.
func (s Settings) Radius() int { return max(s.ChunksInView/2, 0) }

// Result lists what one reconciliation step changed. Pending counts desired
// chunks left for later steps by the build budget.
type Result struct {
	Created   []ChunkCoord
	Destroyed []ChunkCoord
	Pending   int
}

// Changed reports whether the step created or destroyed anything.
func (r Result) Changed() bool { return len(r.Created) > 0 || len(r.Destroyed) > 0 }

// Manager keeps the resident chunk set in step with the viewpoint.
type Manager struct {
	cfg   Settings
	store *ChunkStore
	build builder

	last    ChunkCoord // viewpoint chunk of the last Update that did work
	started bool
	pending int
}

// NewManager returns a manager with an empty store.
func NewManager(cfg Settings, synth terrain.Elevator, scatter *vegetation.Scatterer) *Manager {
	return &Manager{
		cfg:   cfg,
		store: NewChunkStore(),
		build: builder{
			size:       cfg.Size,
			resolution: cfg.Resolution,
			synth:      synth,
			scatter:    scatter,
		},
	}
}

// Settings returns the manager's configuration.
func (m *Manager) Settings() Settings { return m.cfg }

// Store exposes the resident map for read-only consumers such as the renderer.
func (m *Manager) Store() *ChunkStore { return m.store }

// DesiredSet returns every coordinate within Radius() chunks (Chebyshev) of
// the viewpoint's chunk whose center lies within MaxViewDistance of the
// viewpoint on the ground plane.
func (m *Manager) DesiredSet(viewpoint mgl32.Vec3) map[ChunkCoord]struct{} {
	vx, vz := float64(viewpoint.X()), float64(viewpoint.Z())
	center := CoordAt(vx, vz, m.cfg.Size)

	r := m.cfg.Radius()
	out := make(map[ChunkCoord]struct{}, (2*r+1)*(2*r+1))
	for x := center.X - r; x <= center.X+r; x++ {
		for z := center.Z - r; z <= center.Z+r; z++ {
			c := ChunkCoord{X: x, Z: z}
			cx, cz := c.Center(m.cfg.Size)
			if math.Hypot(cx-vx, cz-vz) <= m.cfg.MaxViewDistance {
				out[c] = struct{}{}
			}
		}
	}
	return out
}

// Reconcile destroys resident chunks missing from desired and builds desired
// chunks that are not resident, nearest to the middle of desired first. At
// most MaxBuildsPerTick chunks are built per call; the rest is reported as
// Pending. Builds run in parallel and each chunk is inserted only once it is
// complete.
func (m *Manager) Reconcile(desired map[ChunkCoord]struct{}) Result {
	return m.ReconcileAround(middle(desired), desired)
}

// ReconcileAround is Reconcile with builds ordered by distance to focus.
func (m *Manager) ReconcileAround(focus ChunkCoord, desired map[ChunkCoord]struct{}) Result {
	defer profiling.Track("world.Reconcile")()

	var res Result
	for _, c := range m.store.Coords() {
		if _, ok := desired[c]; !ok && m.store.Remove(c) {
			res.Destroyed = append(res.Destroyed, c)
		}
	}

	missing := make([]ChunkCoord, 0, len(desired))
	for c := range desired {
		if !m.store.Has(c) {
			missing = append(missing, c)
		}
	}
	sortNearest(missing, focus)

	todo := missing
	if n := m.cfg.MaxBuildsPerTick; n > 0 && len(todo) > n {
		todo = todo[:n]
	}
	res.Pending = len(missing) - len(todo)

	for _, ch := range m.buildAll(todo) {
		if m.store.Add(ch) {
			res.Created = append(res.Created, ch.Coord)
		}
	}
	m.pending = res.Pending

	sortCoords(res.Destroyed)
	if res.Changed() {
		log.Printf("world: +%d -%d chunks around %v (resident %d, pending %d)",
			len(res.Created), len(res.Destroyed), focus, m.store.Len(), res.Pending)
	}
	return res
}

// Update recomputes the desired set and reconciles, but only when the
// viewpoint entered a different chunk or an earlier step left builds pending.
func (m *Manager) Update(viewpoint mgl32.Vec3) Result {
	c := CoordAt(float64(viewpoint.X()), float64(viewpoint.Z()), m.cfg.Size)
	if m.started && c == m.last && m.pending == 0 {
		return Result{}
	}
	m.started = true
	m.last = c
	return m.ReconcileAround(c, m.DesiredSet(viewpoint))
}

// Chunk returns the resident chunk at coord, or nil.
func (m *Manager) Chunk(coord ChunkCoord) *Chunk { return m.store.Get(coord) }

// HeightAt samples the terrain under (x, z) from the resident chunk whose
// height field covers it. It reports false when that chunk is not resident.
func (m *Manager) HeightAt(x, z float64) (float64, bool) {
	c := ChunkCoord{
		X: int(math.Round(x / m.cfg.Size)),
		Z: int(math.Round(z / m.cfg.Size)),
	}
	ch := m.store.Get(c)
	if ch == nil {
		return 0, false
	}
	return ch.Heights.HeightAt(x, z), true
}

// GrassBytes totals the vegetation buffer footprint of the resident chunks.
func (m *Manager) GrassBytes() int {
	n := 0
	for _, ch := range m.store.All() {
		n += ch.Grass.Bytes()
	}
	return n
}

// Resident returns the resident coordinates sorted by X then Z.
func (m *Manager) Resident() []ChunkCoord {
	out := m.store.Coords()
	sortCoords(out)
	return out
}

// ModCount returns the store's modification counter.
func (m *Manager) ModCount() uint64 { return m.store.ModCount() }

// Pending returns the number of desired chunks still waiting for a build slot.
func (m *Manager) Pending() int { return m.pending }

func (m *Manager) buildAll(coords []ChunkCoord) []*Chunk {
	out := make([]*Chunk, len(coords))
	if len(coords) == 0 {
		return out
	}
	workers := m.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range coords {
		g.Go(func() error {
			out[i] = m.build.build(c)
			return nil
		})
	}
	_ = g.Wait() // builds never fail
	return out
}

func sortNearest(coords []ChunkCoord, focus ChunkCoord) {
	sort.Slice(coords, func(i, j int) bool {
		di, dj := coords[i].Chebyshev(focus), coords[j].Chebyshev(focus)
		if di != dj {
			return di < dj
		}
		return less(coords[i], coords[j])
	})
}

// middle returns the center of the bounding box of set, rounded down.
func middle(set map[ChunkCoord]struct{}) ChunkCoord {
	first := true
	var lo, hi ChunkCoord
	for c := range set {
		if first {
			lo, hi, first = c, c, false
			continue
		}
		lo = ChunkCoord{X: min(lo.X, c.X), Z: min(lo.Z, c.Z)}
		hi = ChunkCoord{X: max(hi.X, c.X), Z: max(hi.Z, c.Z)}
	}
	return ChunkCoord{X: floorHalf(lo.X + hi.X), Z: floorHalf(lo.Z + hi.Z)}
}

func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

func sortCoords(coords []ChunkCoord) {
	sort.Slice(coords, func(i, j int) bool { return less(coords[i], coords[j]) })
}

func less(a, b ChunkCoord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Z < b.Z
}
