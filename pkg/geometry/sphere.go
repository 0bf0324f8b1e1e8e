package geometry

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Sphere is a solid ball given by its center and radius
type Sphere struct {
	Center core.Vec3
	Radius float64
}

func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Intersect solves |o + t·d - c|² = r² and takes the nearer root inside the
// ray segment, falling back to the far root when the origin is inside
func (s *Sphere) Intersect(ray *core.Ray) bool {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root < ray.T0 || root > ray.T {
			continue
		}
		ray.T = root
		ray.Ng = ray.At(root).Subtract(s.Center).Multiply(1 / s.Radius)
		return true
	}
	return false
}

func (s *Sphere) Bounds() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
