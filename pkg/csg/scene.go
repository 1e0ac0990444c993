// Package csg implements the CSG (Constructive Solid Geometry) scene: an
// arena of immutable signed-distance nodes, interned by index, plus the
// ordered list of top-level objects that make up a scene. It is the
// geometric half of the contact point described for the CSG grammar in
// the system's external interfaces — the grammar's tokenizer/parser builds
// a Scene through the factory methods here; this package never reads
// source text itself.
package csg

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NodeID interns a node by its index in a Scene's arena. NodeIDs are
// stable for the lifetime of the owning Scene: the arena only grows, and
// nodes are never mutated or removed once created.
type NodeID int

// Scene owns the node arena and the ordered list of top-level (root,
// material) objects to build. It has no cycles (nodes only ever reference
// earlier nodes), so the arena can be freed as a single unit with the
// Scene and reference counting is unnecessary.
type Scene struct {
	nodes []node
	Tops  []NodeID // TopLevel node ids, in declaration order
}

// New returns an empty Scene.
func New() *Scene {
	return &Scene{}
}

func (s *Scene) node(id NodeID) *node {
	return &s.nodes[id]
}

func (s *Scene) intern(n node) NodeID {
	s.nodes = append(s.nodes, n)
	return NodeID(len(s.nodes) - 1)
}

// Sphere creates a sphere of the given radius, centered at the origin.
func (s *Scene) Sphere(radius float64) NodeID {
	if radius <= 0 {
		panic(fmt.Sprintf("csg: sphere radius must be positive, got %g", radius))
	}
	return s.intern(node{kind: KindSphere, radius: radius})
}

// Cube creates a cube of the given side length, centered at the origin.
func (s *Scene) Cube(side float64) NodeID {
	if side <= 0 {
		panic(fmt.Sprintf("csg: cube side must be positive, got %g", side))
	}
	return s.intern(node{kind: KindCube, side: side})
}

// Union creates the union of two subtrees.
func (s *Scene) Union(left, right NodeID) NodeID {
	return s.intern(node{kind: KindUnion, left: left, right: right})
}

// Intersection creates an Intersection node over two subtrees. Its distance
// is max(left, -right) (see Distance), which is the solid left minus right.
func (s *Scene) Intersection(left, right NodeID) NodeID {
	return s.intern(node{kind: KindIntersection, left: left, right: right})
}

// Difference creates a Difference node over two subtrees. Its distance is
// max(left, right) (see Distance), which is the solid shared by both
// subtrees, not left minus right.
func (s *Scene) Difference(left, right NodeID) NodeID {
	return s.intern(node{kind: KindDifference, left: left, right: right})
}

// Transform applies an affine transform to child. The inverse is
// precomputed once here, at construction time, rather than on every
// Distance call.
func (s *Scene) Transform(child NodeID, objectToWorld sdf.M44) NodeID {
	return s.intern(node{
		kind:          KindTransform,
		child:         child,
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
	})
}

// TopLevel creates a root marker pairing child with the material that
// should paint its interior, and does NOT register it in Tops: callers
// that want it built should use Build instead, which also appends it to
// Tops.
func (s *Scene) TopLevel(child NodeID, material uint32) NodeID {
	return s.intern(node{kind: KindTopLevel, topChild: child, material: material})
}

// Build creates a TopLevel node for child/material and appends it to the
// scene's ordered build list. Objects declared earlier paint over later
// ones in overlapping regions (first-match semantics in the builder's
// predicate).
func (s *Scene) Build(child NodeID, material uint32) NodeID {
	id := s.TopLevel(child, material)
	s.Tops = append(s.Tops, id)
	return id
}

// Translate wraps child in a transform that offsets it by (x, y, z).
func (s *Scene) Translate(child NodeID, x, y, z float64) NodeID {
	return s.Transform(child, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate wraps child in a transform that rotates it by Euler angles (in
// radians) around X, then Y, then Z, applied right-hand-rule style.
func (s *Scene) Rotate(child NodeID, x, y, z float64) NodeID {
	m := sdf.RotateZ(z).Mul(sdf.RotateY(y)).Mul(sdf.RotateX(x))
	return s.Transform(child, m)
}

// RotateAxis wraps child in a rotation by angle radians about an arbitrary
// axis, right-hand rule. It is built from RotateY/RotateZ rather than a
// dedicated axis-angle primitive: A = Rz(phi)*Ry(theta) aligns +Z to the
// normalized axis (theta = acos(az), phi = atan2(ay,ax)), and the rotation
// is A * Rz(angle) * A^-1.
func (s *Scene) RotateAxis(child NodeID, angle float64, axis v3.Vec) NodeID {
	length := math.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if length == 0 {
		panic("csg: rotation axis must be non-zero")
	}
	ax, ay, az := axis.X/length, axis.Y/length, axis.Z/length

	theta := math.Acos(az)
	phi := math.Atan2(ay, ax)
	align := sdf.RotateZ(phi).Mul(sdf.RotateY(theta))

	m := align.Mul(sdf.RotateZ(angle)).Mul(align.Inverse())
	return s.Transform(child, m)
}

// Scale wraps child in a non-uniform scale. Every component must be
// non-zero: a zero scale collapses the object to a degenerate plane or
// point, which the rest of the pipeline cannot represent.
func (s *Scene) Scale(child NodeID, x, y, z float64) NodeID {
	if x == 0 || y == 0 || z == 0 {
		panic(fmt.Sprintf("csg: scale factors must be non-zero, got (%g,%g,%g)", x, y, z))
	}
	return s.Transform(child, sdf.Scale3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Material returns the material a TopLevel node paints.
func (s *Scene) Material(topLevel NodeID) uint32 {
	return s.node(topLevel).material
}

// BoundingBox returns the union bounding cube of every top-level object.
// Precondition: the scene has at least one top-level object.
func (s *Scene) BoundingBox() AACube {
	if len(s.Tops) == 0 {
		panic("csg: BoundingBox called on a scene with no top-level objects")
	}
	box := s.BoundingBoxOf(s.Tops[0])
	for _, id := range s.Tops[1:] {
		box = Union(box, s.BoundingBoxOf(id))
	}
	return box
}
