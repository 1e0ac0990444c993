package octree

import (
	"sort"

	"github.com/chazu/lignin/pkg/voxel"
)

// lowerBound returns the index of the first voxel whose Code() is >=
// code, or Len() if none is.
func (o *Octree) lowerBound(code uint64) int {
	return sort.Search(len(o.Voxels), func(i int) bool {
		return o.Voxels[i].Code() >= code
	})
}

func sameLocationLevel(a, b voxel.Voxel) bool {
	return a.Morton() == b.Morton() && a.Level() == b.Level()
}

// covers reports whether ancestor's cell contains key's cell: ancestor
// must be strictly coarser, and its Morton code must agree with key's
// once both are masked down to ancestor's own level.
func covers(ancestor, key voxel.Voxel) bool {
	if ancestor.Level() <= key.Level() {
		return false
	}
	shift := uint(ancestor.Level()) * 3
	return (ancestor.Morton() >> shift) == (key.Morton() >> shift)
}

// within reports whether cand's cell is a descendant of key's cell.
func within(cand, key voxel.Voxel) bool {
	if cand.Level() >= key.Level() {
		return false
	}
	shift := uint(key.Level()) * 3
	return (cand.Morton() >> shift) == (key.Morton() >> shift)
}

// resolve finds the voxel actually stored in o that occupies key's cell
// (the cell of key's level containing key's location): the same-size
// voxel, a covering ancestor, or the first of a run of descendants. key's
// location is first rounded down to its level's alignment, because a
// negative-face search key holds a coordinate one unit below its source
// voxel rather than the neighbor cell's minimum corner. key's material is
// ignored (it carries whatever material the caller that built it happened
// to have; only its location/level identify a position in the tree), and
// the lower-bound search is performed with both level and material
// zeroed, so it lands on the first stored voxel whose location is at or
// after the cell's minimum corner, whatever that voxel's level or material.
func (o *Octree) resolve(key voxel.Voxel) (voxel.Voxel, bool) {
	shift := uint(key.Level()) * 3
	cell := key.WithMorton(key.Morton() >> shift << shift)
	idx := o.lowerBound(cell.WithLevel(0).WithMaterial(0).Code())

	if idx < len(o.Voxels) {
		if c := o.Voxels[idx]; sameLocationLevel(c, cell) || covers(c, cell) || within(c, cell) {
			return c, true
		}
	}
	if idx > 0 && covers(o.Voxels[idx-1], cell) {
		return o.Voxels[idx-1], true
	}
	return voxel.Voxel(0), false
}

// Neighbor resolves the voxel across face f from v. v need not itself be
// a member of o. It returns false if v is on the boundary of the octree
// in direction f, or if no voxel occupies that cell (e.g. v is not
// actually part of this octree).
func (o *Octree) Neighbor(v voxel.Voxel, f voxel.Face) (voxel.Voxel, bool) {
	key := v.Neighbor(f)
	if key.IsVoid() {
		return voxel.Voxel(0), false
	}
	return o.resolve(key)
}

// EdgeNeighbor resolves the voxel across the edge shared by faces f1 and
// f2: the face-f2 neighbor of v's face-f1 neighbor.
func (o *Octree) EdgeNeighbor(v voxel.Voxel, f1, f2 voxel.Face) (voxel.Voxel, bool) {
	mid := v.Neighbor(f1)
	if mid.IsVoid() {
		return voxel.Voxel(0), false
	}
	key := mid.Neighbor(f2)
	if key.IsVoid() {
		return voxel.Voxel(0), false
	}
	return o.resolve(key)
}
