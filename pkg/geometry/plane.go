package geometry

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Plane is an infinite plane through Point facing along Normal
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3 // unit length
	d      float64   // Normal·Point
}

func NewPlane(point, normal core.Vec3) *Plane {
	normal = normal.Normalize()
	return &Plane{Point: point, Normal: normal, d: normal.Dot(point)}
}

func (p *Plane) Intersect(ray *core.Ray) bool {
	t, ok := planeDistance(ray, p.Normal, p.d)
	if !ok {
		return false
	}
	ray.T = t
	ray.Ng = p.Normal
	return true
}

// Bounds returns a large finite box. Axis-aligned planes get a thin slab
// around Point so the BVH can still split on them.
func (p *Plane) Bounds() core.AABB {
	box := core.NewAABB(core.Splat(-planeExtent), core.Splat(planeExtent))
	if axis, ok := alignedAxis(p.Normal); ok {
		at := p.Point.Axis(axis)
		box.Min = withAxis(box.Min, axis, at)
		box.Max = withAxis(box.Max, axis, at)
		box = padAxis(box, axis, slabThickness)
	}
	return box
}
