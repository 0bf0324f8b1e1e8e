package geometry

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// unitCorners is the box [-1,1]³, back face (-Z) first, counterclockwise from -X-Y
var unitCorners = [8]core.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// boxFaces lists, per face, the corner the quad starts from and the corners
// at the ends of its U and V edges. U×V points out of the box.
var boxFaces = [6][3]int{
	{4, 5, 7}, // +Z
	{1, 0, 2}, // -Z
	{5, 1, 6}, // +X
	{0, 4, 3}, // -X
	{3, 7, 2}, // +Y
	{4, 0, 5}, // -Y
}

// Box is an oriented box built from six outward-facing quads
type Box struct {
	Center   core.Vec3
	HalfSize core.Vec3 // half-extents along the box's local axes
	Rotation core.Vec3 // radians around X, Y then Z
	faces    [6]*Quad
	bounds   core.AABB
}

func NewBox(center, halfSize, rotation core.Vec3) *Box {
	b := &Box{Center: center, HalfSize: halfSize, Rotation: rotation}

	var corners [8]core.Vec3
	for i, local := range unitCorners {
		corners[i] = local.MultiplyVec(halfSize).Rotate(rotation).Add(center)
	}

	for i, face := range boxFaces {
		origin := corners[face[0]]
		b.faces[i] = NewQuad(origin, corners[face[1]].Subtract(origin), corners[face[2]].Subtract(origin))
	}
	b.bounds = core.NewAABBFromPoints(corners[:]...)
	return b
}

func NewAxisAlignedBox(center, halfSize core.Vec3) *Box {
	return NewBox(center, halfSize, core.Vec3{})
}

// Intersect tests all faces; each hit shortens the ray so the last one
// reported is the nearest
func (b *Box) Intersect(ray *core.Ray) bool {
	hit := false
	for _, face := range b.faces {
		if face.Intersect(ray) {
			hit = true
		}
	}
	return hit
}

func (b *Box) Bounds() core.AABB {
	return b.bounds
}
