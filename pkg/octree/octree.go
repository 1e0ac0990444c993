// Package octree builds and queries a linear (pointerless) sparse octree:
// a sorted slice of voxel.Voxel values, ordered by Morton code, that
// stands in for the implicit inner nodes of a full octree. Construction
// is adaptive subdivision driven by a caller-supplied material predicate;
// once built, face neighbors are resolved by binary search rather than
// pointer chasing (see neighbor.go).
package octree

import (
	"sort"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/lignin/pkg/voxel"
)

// Octree is an ordered sequence of voxels plus the world transform that
// places the unit octree cube in world space.
type Octree struct {
	Voxels    []voxel.Voxel
	Transform sdf.M44
}

// New returns an empty Octree with an identity world transform.
func New() *Octree {
	return &Octree{Transform: sdf.Identity3d()}
}

// Predicate assigns a material to a candidate voxel during construction.
// It must return voxel.Unknown to request further subdivision, or a
// decided material (including voxel.Void) to stop. It must depend only on
// the voxel it is passed: build's internal buffer is in an inconsistent,
// partially-expanded state while a build is in progress.
type Predicate func(voxel.Voxel) uint32

// Build populates o by adaptive subdivision of the root voxel against
// predicate, then sorts the result. It is a single-buffer, in-place
// expansion: appending new children to the tail and re-examining the same
// index after a subdivision produces a depth-first preorder walk without
// recursion, and the final sort turns that walk into the canonical
// Morton-ordered sequence.
func (o *Octree) Build(predicate Predicate) {
	buf := []voxel.Voxel{voxel.Root()}

	for i := 0; i < len(buf); {
		v := buf[i]
		m := predicate(v)

		if v.Height() > 0 && m == voxel.Unknown {
			children := v.Children()
			buf[i] = children[0]
			buf = append(buf, children[1:]...)
			continue // re-examine index i: it now holds children[0]
		}

		if m == voxel.Unknown {
			// Maximum subdivision reached and the predicate still can't
			// decide: treat the voxel as empty rather than leaving an
			// Unknown material in the output (open question in the
			// original source; see SPEC_FULL.md).
			m = voxel.Void
		}

		buf[i] = v.WithMaterial(m)
		i++
	}

	sort.Slice(buf, func(a, b int) bool { return buf[a].Less(buf[b]) })
	o.Voxels = buf
}

// Len returns the number of voxels in the octree.
func (o *Octree) Len() int { return len(o.Voxels) }
