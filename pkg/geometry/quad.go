package geometry

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Quad is the parallelogram Corner + a·U + b·V for a, b in [0,1].
// Its front side is the one U×V points to.
type Quad struct {
	Corner core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3 // unit U×V

	d float64   // Normal·Corner
	w core.Vec3 // (U×V)/|U×V|², maps plane offsets to (a, b)
}

func NewQuad(corner, u, v core.Vec3) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(corner),
		w:      n.Multiply(1 / n.LengthSquared()),
	}
}

func (q *Quad) Intersect(ray *core.Ray) bool {
	t, ok := planeDistance(ray, q.Normal, q.d)
	if !ok {
		return false
	}

	offset := ray.At(t).Subtract(q.Corner)
	a := q.w.Dot(offset.Cross(q.V))
	b := q.w.Dot(q.U.Cross(offset))
	if a < 0 || a > 1 || b < 0 || b > 1 {
		return false
	}

	ray.T = t
	ray.Ng = q.Normal
	return true
}

func (q *Quad) Bounds() core.AABB {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
	if axis, ok := alignedAxis(q.Normal); ok {
		return padAxis(box, axis, slabThickness)
	}
	return box.Expand(slabThickness)
}
