package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle grid ready for upload. Positions and Normals
// hold three floats per vertex; Indices hold three per triangle.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// Vertex returns the position of vertex v.
func (m *Mesh) Vertex(v int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[3*v], m.Positions[3*v+1], m.Positions[3*v+2]}
}

// Normal returns the unit normal of vertex v.
func (m *Mesh) Normal(v int) mgl32.Vec3 {
	return mgl32.Vec3{m.Normals[3*v], m.Normals[3*v+1], m.Normals[3*v+2]}
}

// BuildMesh turns every node of hf into a vertex and every cell into two
// counter-clockwise (seen from above) triangles. Normals are area-weighted
// averages of the adjacent face normals.
func BuildMesh(hf *HeightField) *Mesh {
	nx, nz := hf.resX+1, hf.resZ+1
	m := &Mesh{
		Positions: make([]float32, 0, nx*nz*3),
		Indices:   make([]uint32, 0, hf.resX*hf.resZ*6),
	}

	for j := 0; j < nz; j++ {
		for i := 0; i < nx; i++ {
			x, z := hf.NodePosition(i, j)
			m.Positions = append(m.Positions, float32(x), float32(hf.At(i, j)), float32(z))
		}
	}

	for j := 0; j < hf.resZ; j++ {
		for i := 0; i < hf.resX; i++ {
			a := uint32(j*nx + i)
			b := a + uint32(nx)
			c := a + 1
			d := b + 1
			m.Indices = append(m.Indices, a, b, c, c, b, d)
		}
	}

	acc := make([]mgl32.Vec3, nx*nz)
	for t := 0; t < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Vertex(int(ia)), m.Vertex(int(ib)), m.Vertex(int(ic))
		// Unnormalized cross product: length is twice the triangle area.
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[ia] = acc[ia].Add(n)
		acc[ib] = acc[ib].Add(n)
		acc[ic] = acc[ic].Add(n)
	}

	m.Normals = make([]float32, 0, len(m.Positions))
	up := mgl32.Vec3{0, 1, 0}
	for _, n := range acc {
		if n.Len() == 0 {
			n = up
		} else {
			n = n.Normalize()
		}
		m.Normals = append(m.Normals, n[0], n[1], n[2])
	}
	return m
}
