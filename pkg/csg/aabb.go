package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// AACube is an axis-aligned bounding box restricted to a cube: a minimum
// corner plus a single edge length. The octree builder works in a cubic
// coordinate space, so every bounding volume it consumes is re-cubed to
// this shape rather than kept as a general box.
type AACube struct {
	Min  v3.Vec
	Side float64
}

// Max returns the cube's maximum corner.
func (c AACube) Max() v3.Vec {
	return v3.Vec{X: c.Min.X + c.Side, Y: c.Min.Y + c.Side, Z: c.Min.Z + c.Side}
}

// Union returns the smallest axis-aligned cube enclosing both a and b: the
// componentwise union of their corners, re-cubed by taking the largest
// resulting extent along any axis.
func Union(a, b AACube) AACube {
	aMax, bMax := a.Max(), b.Max()

	minX := math.Min(a.Min.X, b.Min.X)
	minY := math.Min(a.Min.Y, b.Min.Y)
	minZ := math.Min(a.Min.Z, b.Min.Z)

	maxX := math.Max(aMax.X, bMax.X)
	maxY := math.Max(aMax.Y, bMax.Y)
	maxZ := math.Max(aMax.Z, bMax.Z)

	extent := math.Max(maxX-minX, math.Max(maxY-minY, maxZ-minZ))
	return AACube{Min: v3.Vec{X: minX, Y: minY, Z: minZ}, Side: extent}
}
