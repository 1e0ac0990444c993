// Package mesh holds the geometric content of a surface emitted from an
// octree: vertex positions, the six canonical face normals, and the
// triangles that reference them. It says nothing about how that content is
// serialized to a file; see objwriter for the OBJ text format.
package mesh

// Vertex is a point or direction in world space.
type Vertex struct {
	X, Y, Z float64
}

// Triangle references three vertices (0-based, into Mesh.Vertices) and the
// single face normal (0-based, into Mesh.Normals) shared by all three.
type Triangle struct {
	V0, V1, V2 int
	Normal     int
}

// Mesh is a naive per-voxel cube dump: no deduplication of vertices shared
// between adjacent cubes, no simplification. Normals has exactly six
// entries, written once regardless of how many cubes the mesh contains,
// since every cube's faces are axis-aligned to the same six directions.
type Mesh struct {
	Vertices  []Vertex
	Normals   [6]Vertex
	Triangles []Triangle
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// IsEmpty reports whether the mesh carries no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }
