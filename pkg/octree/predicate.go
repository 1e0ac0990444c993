package octree

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lignin/pkg/csg"
	"github.com/chazu/lignin/pkg/voxel"
)

// classification is the result of testing a voxel against a single
// top-level CSG object.
type classification int

const (
	outside classification = iota
	inside
	atIntersection
)

// classify maps v (integer octree space) into world space using scene's
// bounding box, then tests the sign and magnitude of obj's signed
// distance at the voxel's center against the voxel's circumscribed
// sphere. The circumscribed sphere of a cubic voxel crosses the surface
// only when the SDF magnitude at its center is smaller than the sphere's
// radius (half the cube's space diagonal); epsilon caps refinement at a
// fraction of the scene's size.
func classify(scene *csg.Scene, obj csg.NodeID, bbox csg.AACube, v voxel.Voxel, epsilon float64) classification {
	scale := bbox.Side / float64(voxel.MaxCoord)
	coords := v.Coordinates()
	origin := v3.Vec{
		X: bbox.Min.X + scale*float64(coords.X),
		Y: bbox.Min.Y + scale*float64(coords.Y),
		Z: bbox.Min.Z + scale*float64(coords.Z),
	}
	sideWorld := scale * float64(v.Size())

	center := v3.Vec{
		X: origin.X + sideWorld/2,
		Y: origin.Y + sideWorld/2,
		Z: origin.Z + sideWorld/2,
	}
	diagonal := math.Sqrt(3) * sideWorld

	d := scene.Distance(obj, center)
	if math.Abs(d) < diagonal/2 && sideWorld >= epsilon*bbox.Side {
		return atIntersection
	}
	if d > 0 {
		return outside
	}
	return inside
}

// ScenePredicate returns the canonical CSG-driven builder Predicate for
// scene at relative precision epsilon (0, 1]: the minimum voxel edge,
// expressed as a fraction of the scene's bounding-cube side, below which
// the builder stops subdividing. Objects are tested in declaration order;
// the first one a voxel is found Inside of wins (earlier top-levels paint
// over later ones in overlapping regions), and a voxel Outside every
// object is Void.
func ScenePredicate(scene *csg.Scene, epsilon float64) Predicate {
	bbox := scene.BoundingBox()

	return func(v voxel.Voxel) uint32 {
		for _, top := range scene.Tops {
			switch classify(scene, top, bbox, v, epsilon) {
			case inside:
				return scene.Material(top)
			case atIntersection:
				return voxel.Unknown
			}
		}
		return voxel.Void
	}
}
