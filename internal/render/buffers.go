package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"grassfield/internal/terrain"
	"grassfield/internal/vegetation"
	"grassfield/internal/world"
)

// drawable is one VAO with its element buffer and attribute buffers.
type drawable struct {
	vao      uint32
	ebo      uint32
	vbos     []uint32
	count    int32
	primKind uint32
}

func (d *drawable) draw() {
	if d == nil || d.count == 0 {
		return
	}
	gl.BindVertexArray(d.vao)
	gl.DrawElements(d.primKind, d.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (d *drawable) release() {
	if d == nil {
		return
	}
	if len(d.vbos) > 0 {
		gl.DeleteBuffers(int32(len(d.vbos)), &d.vbos[0])
	}
	if d.ebo != 0 {
		gl.DeleteBuffers(1, &d.ebo)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	*d = drawable{}
}

// attribute binds data to location with size floats per vertex.
func (d *drawable) attribute(location uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, size*4, 0)
	d.vbos = append(d.vbos, vbo)
}

func newDrawable(kind uint32, indices []uint32) *drawable {
	d := &drawable{primKind: kind, count: int32(len(indices))}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &d.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	return d
}

func uploadTerrain(m *terrain.Mesh) *drawable {
	if m == nil || len(m.Indices) == 0 {
		return nil
	}
	d := newDrawable(gl.TRIANGLES, m.Indices)
	d.attribute(0, 3, m.Positions)
	d.attribute(1, 3, m.Normals)
	gl.BindVertexArray(0)
	return d
}

// uploadGrass returns nil for empty sets; they are never uploaded.
func uploadGrass(s *vegetation.InstanceSet) *drawable {
	if s.Empty() {
		return nil
	}
	d := newDrawable(gl.LINES, s.Indices)
	d.attribute(0, 3, s.Positions)
	d.attribute(1, 1, s.Phases)
	d.attribute(2, 1, s.Opacities)
	d.attribute(3, 1, s.Scales)
	d.attribute(4, 1, s.Bends)
	gl.BindVertexArray(0)
	return d
}

// chunkBuffers holds the GPU copy of one resident chunk.
type chunkBuffers struct {
	chunk   *world.Chunk
	terrain *drawable
	grass   *drawable
}

func uploadChunk(ch *world.Chunk) *chunkBuffers {
	return &chunkBuffers{
		chunk:   ch,
		terrain: uploadTerrain(ch.Terrain),
		grass:   uploadGrass(ch.Grass),
	}
}

func (b *chunkBuffers) release() {
	b.terrain.release()
	b.grass.release()
}
