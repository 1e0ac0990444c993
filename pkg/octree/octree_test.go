package octree

import (
	"testing"

	"github.com/chazu/lignin/pkg/voxel"
)

// Scenario 3 from the spec: a predicate that leaves every internal voxel
// undecided and assigns material 2 only at level 0 forces full
// subdivision down to 8^P unit leaves.
func TestBuildFullSubdivision(t *testing.T) {
	const material = 2

	o := New()
	o.Build(func(v voxel.Voxel) uint32 {
		if v.Level() > 0 {
			return voxel.Unknown
		}
		return material
	})

	want := 1
	for i := 0; i < voxel.Precision; i++ {
		want *= 8
	}
	if len(o.Voxels) != want {
		t.Fatalf("got %d voxels, want %d (8^%d)", len(o.Voxels), want, voxel.Precision)
	}

	for i, v := range o.Voxels {
		if v.Size() != 1 {
			t.Fatalf("voxel %d has size %d, want 1", i, v.Size())
		}
		if v.Material() != material {
			t.Fatalf("voxel %d has material %d, want %d", i, v.Material(), material)
		}
		if i > 0 && !o.Voxels[i-1].Less(v) {
			t.Fatalf("voxels not strictly ascending at index %d", i)
		}
	}
}

// P6: sort invariant and no Unknown materials.
func TestBuildSortInvariant(t *testing.T) {
	o := New()
	calls := 0
	o.Build(func(v voxel.Voxel) uint32 {
		calls++
		if v.Level() > 10 {
			return voxel.Unknown
		}
		if v.Coordinates().X < voxel.MaxCoord/2 {
			return 2
		}
		return voxel.Void
	})

	for i, v := range o.Voxels {
		if v.Material() == voxel.Unknown {
			t.Fatalf("voxel %d has Unknown material", i)
		}
		if i > 0 && o.Voxels[i-1].Code() >= v.Code() {
			t.Fatalf("not strictly ascending at index %d", i)
		}
	}
	if calls == 0 {
		t.Fatal("predicate never called")
	}
}

// P7: coverage. Integer volumes of all voxels sum to (MAX_COORD+1)^3.
func TestBuildCoverage(t *testing.T) {
	o := New()
	o.Build(func(v voxel.Voxel) uint32 {
		c := v.Coordinates()
		mid := uint16(voxel.MaxCoord / 2)
		if v.Height() > 2 && (c.X < mid) != (c.X+v.Size() <= mid) {
			return voxel.Unknown // straddles the midplane on X: keep splitting
		}
		if c.X < mid {
			return 3
		}
		return voxel.Void
	})

	var total uint64
	for _, v := range o.Voxels {
		size := uint64(v.Size())
		total += size * size * size
	}

	want := uint64(voxel.MaxCoord+1) * uint64(voxel.MaxCoord+1) * uint64(voxel.MaxCoord+1)
	if total != want {
		t.Fatalf("total volume = %d, want %d", total, want)
	}
}

// Builder faithfulness (P8): every output voxel's material matches what
// the predicate assigns it.
func TestBuildFaithfulness(t *testing.T) {
	predicate := func(v voxel.Voxel) uint32 {
		if v.Level() > 9 {
			return voxel.Unknown
		}
		return uint32(v.Coordinates().X%5) + 2
	}

	o := New()
	o.Build(predicate)

	for _, v := range o.Voxels {
		if got := predicate(v); got != v.Material() {
			t.Fatalf("predicate(%v) = %d, but stored material is %d", v, got, v.Material())
		}
	}
}
