// Package voxel implements the bit-packed voxel identity at the heart of
// the octree: a Morton location code, a refinement level and a material
// id, all packed into a single 64-bit word. The word is never exposed as
// a language bitfield (the host compiler is free to reorder those); it is
// treated as a plain uint64 with documented shift/mask accessors, per the
// layout below, most-significant bit first:
//
//	location (Morton code)  39 bits
//	level                    4 bits
//	material                21 bits
package voxel

import (
	"fmt"

	"github.com/chazu/lignin/pkg/morton"
)

// Precision is the number of bits of integer coordinate precision per axis.
// Level P spans the whole coordinate space; level 0 is a unit cube.
const Precision = 13

// MaxCoord is the largest valid integer coordinate along any axis.
const MaxCoord = 1<<Precision - 1 // 8191

const (
	materialBits  = 64 - 39 - 4
	materialMask  = 1<<materialBits - 1
	levelShift    = materialBits
	levelMask     = 1<<4 - 1
	locationShift = materialBits + 4
	locationMask  = 1<<39 - 1
)

// Reserved material values.
const (
	Unknown uint32 = 0 // sentinel: undecided, subdivide further
	Void    uint32 = 1 // empty space; dropped from the final mesh
)

// MaxMaterial is the largest value the material field can hold.
const MaxMaterial = materialMask

// Voxel is a packed (location, level, material) identity. It is a plain
// 64-bit value: comparing two Voxels with < or == is exactly the
// lexicographic ordering defined by the spec (location, then level, then
// material), because location occupies the high bits.
type Voxel uint64

// Coords is an integer coordinate triple in octree space.
type Coords struct {
	X, Y, Z uint16
}

func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

func fromParts(location uint64, level uint8, material uint32) Voxel {
	return Voxel(location<<locationShift | uint64(level)<<levelShift | uint64(material))
}

// New packs a coordinate triple, level and material into a Voxel. It panics
// if the coordinates or level are out of range (a precondition violation).
func New(c Coords, level uint8, material uint32) Voxel {
	assert(c.X <= MaxCoord && c.Y <= MaxCoord && c.Z <= MaxCoord,
		"voxel: coordinate %+v out of range [0,%d]", c, MaxCoord)
	assert(level <= Precision, "voxel: level %d exceeds precision %d", level, Precision)
	assert(material <= MaxMaterial, "voxel: material %d exceeds field width", material)

	loc := morton.Pack(uint32(c.X), uint32(c.Y), uint32(c.Z))
	return fromParts(loc, level, material)
}

// FromCode is a trusted constructor: it does not validate its input.
func FromCode(code uint64) Voxel {
	return Voxel(code)
}

// Root returns the level-P voxel spanning the whole coordinate space, with
// an Unknown material.
func Root() Voxel {
	return New(Coords{}, Precision, Unknown)
}

// Code returns the raw 64-bit packed word.
func (v Voxel) Code() uint64 { return uint64(v) }

// Level returns the refinement level: 0 is a unit leaf, Precision is the root.
func (v Voxel) Level() uint8 { return uint8(uint64(v)>>levelShift) & levelMask }

// Material returns the material id.
func (v Voxel) Material() uint32 { return uint32(uint64(v) & materialMask) }

// Morton returns the raw 39-bit Morton location code.
func (v Voxel) Morton() uint64 { return (uint64(v) >> locationShift) & locationMask }

// Coordinates returns the voxel's minimum-corner integer coordinates.
func (v Voxel) Coordinates() Coords {
	x, y, z := morton.Unpack(v.Morton())
	return Coords{X: uint16(x), Y: uint16(y), Z: uint16(z)}
}

// Height is the base-2 log of the voxel's edge length in integer units,
// which equals its level: 0 for a unit leaf, Precision for the root.
func (v Voxel) Height() uint8 { return v.Level() }

// Size returns the voxel's edge length in integer coordinate units.
func (v Voxel) Size() uint16 { return 1 << v.Height() }

// WithMaterial returns a copy of v with a new material.
func (v Voxel) WithMaterial(m uint32) Voxel {
	assert(m <= MaxMaterial, "voxel: material %d exceeds field width", m)
	return Voxel(uint64(v)&^materialMask | uint64(m))
}

// WithLevel returns a copy of v with a new level, leaving location and
// material untouched. Callers are responsible for keeping the location
// consistent with the new level (see the Morton-alignment invariant).
func (v Voxel) WithLevel(level uint8) Voxel {
	assert(level <= Precision, "voxel: level %d exceeds precision %d", level, Precision)
	return Voxel(uint64(v)&^(uint64(levelMask)<<levelShift) | uint64(level)<<levelShift)
}

// WithMorton returns a copy of v with a new 39-bit Morton location.
func (v Voxel) WithMorton(code uint64) Voxel {
	return Voxel(uint64(v)&^(uint64(locationMask)<<locationShift) | (code&locationMask)<<locationShift)
}

// Less reports whether v sorts before other under the total Code() ordering.
func (v Voxel) Less(other Voxel) bool { return v.Code() < other.Code() }

// childOffset returns the (dx,dy,dz) octant offset for child index i in
// {0..7}, matching the canonical child/corner order: bit 0 selects x, bit
// 1 selects y, bit 2 selects z.
func childOffset(i int) (dx, dy, dz uint16) {
	return uint16(i & 1), uint16((i >> 1) & 1), uint16((i >> 2) & 1)
}

// Children returns the 8 octants of v, one level finer, sharing v's
// material. Precondition: v.Height() > 0 (v is not already a unit leaf).
//
// The parent's Morton code has exactly three "don't-care" bits at
// [childLevel*3, childLevel*3+3) that enumerate the eight octants in the
// same order Morton naturally visits them; incrementing the parent's
// Morton code by inc = 1<<(childLevel*3) walks those bits in canonical
// order, which is cheaper than recomputing each child's coordinates.
func (v Voxel) Children() [8]Voxel {
	assert(v.Height() > 0, "voxel: Children called on a level-0 leaf")

	childLevel := v.Level() - 1
	inc := uint64(1) << (uint(childLevel) * 3)
	m := v.Morton()
	material := v.Material()

	var out [8]Voxel
	for i := 0; i < 8; i++ {
		out[i] = fromParts(m+uint64(i)*inc, childLevel, material)
	}
	return out
}

// Corners returns the 8 corner coordinates of v's cube, in the same
// octant order as Children: corner i has offset (i&1, (i>>1)&1, (i>>2)&1)
// times v.Size().
func (v Voxel) Corners() [8]Coords {
	base := v.Coordinates()
	size := v.Size()

	var out [8]Coords
	for i := 0; i < 8; i++ {
		dx, dy, dz := childOffset(i)
		out[i] = Coords{
			X: base.X + dx*size,
			Y: base.Y + dy*size,
			Z: base.Z + dz*size,
		}
	}
	return out
}
