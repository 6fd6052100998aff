package render

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/profiling"
	"grassfield/internal/render/glsl"
	"grassfield/internal/wind"
	"grassfield/internal/world"
)

// Renderer mirrors the resident chunk set on the GPU and draws it. All
// methods must run on the thread owning the GL context.
type Renderer struct {
	terrain *Program
	grass   *Program

	chunks   map[world.ChunkCoord]*chunkBuffers
	modCount uint64
	synced   bool
}

// New compiles both programs and sets the fixed pipeline state. segments is
// the vertex count of one blade.
func New(segments int) (*Renderer, error) {
	terrain, err := loadProgram("terrain")
	if err != nil {
		return nil, err
	}
	grass, err := loadProgram("grass", glsl.WindDefines(segments)...)
	if err != nil {
		terrain.Delete()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &Renderer{
		terrain: terrain,
		grass:   grass,
		chunks:  make(map[world.ChunkCoord]*chunkBuffers),
	}, nil
}

func loadProgram(name string, defs ...glsl.Define) (*Program, error) {
	vs, err := glsl.Source(name+".vert", defs...)
	if err != nil {
		return nil, err
	}
	fs, err := glsl.Source(name+".frag", defs...)
	if err != nil {
		return nil, err
	}
	p, err := newProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	return p, nil
}

// Sync uploads chunks that entered the store and frees the buffers of chunks
// that left it. It does nothing while the store's ModCount is unchanged.
func (r *Renderer) Sync(store *world.ChunkStore) {
	mod := store.ModCount()
	if r.synced && mod == r.modCount {
		return
	}
	defer profiling.Track("render.Sync")()

	resident := store.All()
	live := make(map[world.ChunkCoord]*world.Chunk, len(resident))
	for _, ch := range resident {
		live[ch.Coord] = ch
	}

	freed := 0
	for c, b := range r.chunks {
		// A coordinate may have been destroyed and rebuilt since the last sync.
		if live[c] != b.chunk {
			b.release()
			delete(r.chunks, c)
			freed++
		}
	}
	uploaded := 0
	for c, ch := range live {
		if _, ok := r.chunks[c]; ok {
			continue
		}
		r.chunks[c] = uploadChunk(ch)
		uploaded++
	}

	r.modCount = mod
	r.synced = true
	if uploaded > 0 || freed > 0 {
		log.Printf("render: uploaded %d chunks, freed %d (gpu chunks %d)", uploaded, freed, len(r.chunks))
	}
}

// Render clears the frame and draws every synced chunk: terrain as
// triangles, then grass as lines with the frame's wind uniforms.
func (r *Renderer) Render(view, proj mgl32.Mat4, u wind.Uniforms) {
	defer profiling.Track("render.Render")()

	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.terrain.Use()
	r.terrain.SetMat4("view", view)
	r.terrain.SetMat4("proj", proj)
	func() {
		defer profiling.Track("render.drawTerrain")()
		for _, b := range r.chunks {
			b.terrain.draw()
		}
	}()

	r.grass.Use()
	r.grass.SetMat4("view", view)
	r.grass.SetMat4("proj", proj)
	r.grass.SetFloat("time", u.Time)
	r.grass.SetFloat("windStrength", u.Strength)
	func() {
		defer profiling.Track("render.drawGrass")()
		for _, b := range r.chunks {
			b.grass.draw()
		}
	}()
	gl.BindVertexArray(0)
}

// SetViewport resizes the GL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Dispose frees every chunk buffer and both programs.
func (r *Renderer) Dispose() {
	for c, b := range r.chunks {
		b.release()
		delete(r.chunks, c)
	}
	r.grass.Delete()
	r.terrain.Delete()
}
