package mesh

import (
	"testing"

	"github.com/chazu/lignin/pkg/octree"
	"github.com/chazu/lignin/pkg/voxel"
)

func buildOctree(t *testing.T, predicate octree.Predicate) *octree.Octree {
	t.Helper()
	o := octree.New()
	o.Build(predicate)
	return o
}

// P9: exactly 8*N vertices and 12*N triangles, N = number of non-Void voxels.
func TestEmitVertexAndTriangleCounts(t *testing.T) {
	o := buildOctree(t, func(v voxel.Voxel) uint32 {
		if v.Level() > 0 {
			return voxel.Unknown
		}
		if v.Coordinates().X < voxel.MaxCoord/2 {
			return 2
		}
		return voxel.Void
	})

	nonVoid := 0
	for _, v := range o.Voxels {
		if v.Material() != voxel.Void {
			nonVoid++
		}
	}

	m := Emit(o)
	if m.VertexCount() != 8*nonVoid {
		t.Fatalf("vertex count = %d, want %d", m.VertexCount(), 8*nonVoid)
	}
	if m.TriangleCount() != 12*nonVoid {
		t.Fatalf("triangle count = %d, want %d", m.TriangleCount(), 12*nonVoid)
	}
	if len(m.Normals) != 6 {
		t.Fatalf("normals count = %d, want 6", len(m.Normals))
	}
}

func TestEmitSkipsVoidVoxels(t *testing.T) {
	o := buildOctree(t, func(v voxel.Voxel) uint32 {
		if v.Level() > 0 {
			return voxel.Unknown
		}
		return voxel.Void
	})

	m := Emit(o)
	if !m.IsEmpty() {
		t.Fatalf("expected an empty mesh when every voxel is void, got %d vertices", m.VertexCount())
	}
}

func TestEmitPanicsOnUnknownMaterial(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when emitting an octree still carrying an Unknown voxel")
		}
	}()

	o := &octree.Octree{Voxels: []voxel.Voxel{voxel.Root()}}
	Emit(o)
}

// Every triangle index must reference valid vertex and normal slots, and
// every face's two triangles in a cube must share one normal.
func TestEmitTriangleIndicesAreValid(t *testing.T) {
	o := buildOctree(t, func(v voxel.Voxel) uint32 {
		if v.Level() > 0 {
			return voxel.Unknown
		}
		return 9
	})

	m := Emit(o)
	for i, tri := range m.Triangles {
		for _, idx := range []int{tri.V0, tri.V1, tri.V2} {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("triangle %d references out-of-range vertex %d", i, idx)
			}
		}
		if tri.Normal < 0 || tri.Normal >= len(m.Normals) {
			t.Fatalf("triangle %d references out-of-range normal %d", i, tri.Normal)
		}
	}

	// Each cube contributes 12 triangles in fixed per-face pairs.
	for cube := 0; cube*12 < len(m.Triangles); cube++ {
		for face := 0; face < 6; face++ {
			a := m.Triangles[cube*12+face*2]
			b := m.Triangles[cube*12+face*2+1]
			if a.Normal != face || b.Normal != face {
				t.Fatalf("cube %d face %d: triangles do not share the expected normal", cube, face)
			}
		}
	}
}
