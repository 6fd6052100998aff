package vegetation

// InstanceSet holds the vertex streams for a batch of blades. Each blade owns
// Segments consecutive vertices; Indices is a line list joining consecutive
// vertices of the same blade. Attribute slices have one entry per vertex,
// Positions three.
type InstanceSet struct {
	Positions []float32
	Phases    []float32
	Opacities []float32
	Scales    []float32
	Bends     []float32
	Indices   []uint32

	Blades   int
	Segments int
}

// VertexCount returns the number of vertices in the set.
func (s *InstanceSet) VertexCount() int { return len(s.Positions) / 3 }

// Empty reports whether the set has nothing to draw. Empty sets carry nil
// buffers and must not be uploaded.
func (s *InstanceSet) Empty() bool { return s == nil || s.Blades == 0 }

func (s *InstanceSet) reserve(blades, segs int) {
	verts := blades * segs
	s.Positions = make([]float32, 0, verts*3)
	s.Phases = make([]float32, 0, verts)
	s.Opacities = make([]float32, 0, verts)
	s.Scales = make([]float32, 0, verts)
	s.Bends = make([]float32, 0, verts)
	s.Indices = make([]uint32, 0, blades*(segs-1)*2)
}

// Bytes estimates the GPU footprint of the set's buffers.
func (s *InstanceSet) Bytes() int {
	if s.Empty() {
		return 0
	}
	return 4 * (len(s.Positions) + len(s.Phases) + len(s.Opacities) + len(s.Scales) + len(s.Bends) + len(s.Indices))
}
