package terrain

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// HeightField is an immutable grid of elevation samples. Node (i, j) sits at
// (OriginX + i*width/resX, OriginZ + j*depth/resZ); samples are stored
// row-major with j as the row.
type HeightField struct {
	originX, originZ float64
	width, depth     float64
	resX, resZ       int
	stepX, stepZ     float64
	samples          []float64
}

// BuildHeightField samples src on a (resX+1) x (resZ+1) node grid covering
// [originX, originX+width] x [originZ, originZ+depth]. Rows are sampled
// concurrently; src must be safe for concurrent use.
func BuildHeightField(originX, originZ, width, depth float64, resX, resZ int, src Elevator) *HeightField {
	resX = max(resX, 1)
	resZ = max(resZ, 1)
	hf := &HeightField{
		originX: originX,
		originZ: originZ,
		width:   width,
		depth:   depth,
		resX:    resX,
		resZ:    resZ,
		stepX:   width / float64(resX),
		stepZ:   depth / float64(resZ),
		samples: make([]float64, (resX+1)*(resZ+1)),
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j <= resZ; j++ {
		g.Go(func() error {
			row := hf.samples[j*(resX+1) : (j+1)*(resX+1)]
			z := hf.nodeZ(j)
			for i := range row {
				row[i] = src.Elevation(hf.nodeX(i), z)
			}
			return nil
		})
	}
	_ = g.Wait()
	return hf
}

func (hf *HeightField) nodeX(i int) float64 {
	if i == hf.resX {
		return hf.originX + hf.width
	}
	return hf.originX + float64(i)*hf.stepX
}

func (hf *HeightField) nodeZ(j int) float64 {
	if j == hf.resZ {
		return hf.originZ + hf.depth
	}
	return hf.originZ + float64(j)*hf.stepZ
}

// Resolution returns the number of cells along x and z.
func (hf *HeightField) Resolution() (int, int) { return hf.resX, hf.resZ }

// Bounds returns the world-space rectangle the field covers.
func (hf *HeightField) Bounds() (minX, minZ, maxX, maxZ float64) {
	return hf.originX, hf.originZ, hf.originX + hf.width, hf.originZ + hf.depth
}

// NodePosition returns the world (x, z) of node (i, j), clamped to the grid.
func (hf *HeightField) NodePosition(i, j int) (float64, float64) {
	i = clampInt(i, 0, hf.resX)
	j = clampInt(j, 0, hf.resZ)
	return hf.nodeX(i), hf.nodeZ(j)
}

// At returns the stored sample at node (i, j), clamped to the grid.
func (hf *HeightField) At(i, j int) float64 {
	i = clampInt(i, 0, hf.resX)
	j = clampInt(j, 0, hf.resZ)
	return hf.samples[j*(hf.resX+1)+i]
}

// HeightAt bilinearly interpolates the four nodes around world (x, z).
// Positions outside the grid take the nearest edge value; non-finite
// input clamps to the origin node.
func (hf *HeightField) HeightAt(x, z float64) float64 {
	gx := gridCoord(x, hf.originX, hf.stepX, hf.resX)
	gz := gridCoord(z, hf.originZ, hf.stepZ, hf.resZ)

	i0 := int(math.Floor(gx))
	j0 := int(math.Floor(gz))
	i1 := min(i0+1, hf.resX)
	j1 := min(j0+1, hf.resZ)
	fx := gx - float64(i0)
	fz := gz - float64(j0)

	h00 := hf.At(i0, j0)
	h10 := hf.At(i1, j0)
	h01 := hf.At(i0, j1)
	h11 := hf.At(i1, j1)

	h0 := h00*(1-fx) + h10*fx
	h1 := h01*(1-fx) + h11*fx
	return h0*(1-fz) + h1*fz
}

// gridCoord maps a world coordinate to a fractional node index in [0, res].
func gridCoord(v, origin, step float64, res int) float64 {
	if step == 0 {
		return 0
	}
	g := (v - origin) / step
	if math.IsNaN(g) || g < 0 {
		return 0
	}
	if g > float64(res) {
		return float64(res)
	}
	return g
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
