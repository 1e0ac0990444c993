package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lignin/pkg/octree"
	"github.com/chazu/lignin/pkg/voxel"
)

// canonicalNormals are the six face normals, in the fixed order the spec's
// face table is keyed on: left, right, bottom, top, back, front.
var canonicalNormals = [6]Vertex{
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
}

// faceTriangles gives, per face (same order as canonicalNormals), the two
// triangles that cover it, as indices into a cube's own 8 corners in the
// Morton corner order voxel.Corners returns. Winding is taken verbatim from
// the governing table: some faces reference corners by a name that does not
// lie on that face geometrically (e.g. the left face's vertices are drawn
// from the r* corners), which is a quirk of the table this emitter is bound
// to reproduce exactly, not a bug to fix here.
var faceTriangles = [6][2][3]int{
	{{5, 7, 6}, {5, 6, 4}}, // left
	{{0, 2, 3}, {0, 3, 1}}, // right
	{{1, 5, 4}, {1, 4, 0}}, // bottom
	{{7, 3, 2}, {7, 2, 6}}, // top
	{{4, 6, 2}, {4, 2, 0}}, // back
	{{1, 3, 7}, {1, 7, 5}}, // front
}

// cubeSpan normalizes an integer octree coordinate (0..MaxCoord+1 at a
// cube's far corner) into the unit cube before the octree's own Transform
// places it in world space.
const cubeSpan = float64(voxel.MaxCoord) + 1

// Emit walks o's sorted voxels and builds the geometric content of the
// surface mesh: one cube of 8 vertices and 12 triangles per voxel with
// material neither Void nor Unknown, with the six canonical face normals
// shared across every cube. It panics if any voxel in o still carries
// Unknown (an unfinished build), per the emitter's precondition.
func Emit(o *octree.Octree) *Mesh {
	m := &Mesh{Normals: canonicalNormals}

	for _, v := range o.Voxels {
		material := v.Material()
		if material == voxel.Unknown {
			panic("mesh: emit called on an octree with an Unknown-material voxel")
		}
		if material == voxel.Void {
			continue
		}

		base := len(m.Vertices)
		for _, c := range v.Corners() {
			local := v3.Vec{X: float64(c.X) / cubeSpan, Y: float64(c.Y) / cubeSpan, Z: float64(c.Z) / cubeSpan}
			world := o.Transform.MulPosition(local)
			m.Vertices = append(m.Vertices, Vertex{X: world.X, Y: world.Y, Z: world.Z})
		}

		for face, tris := range faceTriangles {
			for _, tri := range tris {
				m.Triangles = append(m.Triangles, Triangle{
					V0:     base + tri[0],
					V1:     base + tri[1],
					V2:     base + tri[2],
					Normal: face,
				})
			}
		}
	}

	return m
}
