package geometry

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

const (
	parallelEpsilon = 1e-8  // |direction · normal| below this counts as parallel
	slabThickness   = 0.001 // padding for flat shapes lying in an axis plane
	planeExtent     = 1e6   // stand-in for infinity in plane bounds
)

// planeDistance returns where ray crosses the plane n·x = d, if that lies
// inside the ray's current segment
func planeDistance(ray *core.Ray, n core.Vec3, d float64) (float64, bool) {
	denominator := ray.Direction.Dot(n)
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	t := (d - ray.Origin.Dot(n)) / denominator
	if t < ray.T0 || t > ray.T {
		return 0, false
	}
	return t, true
}

// alignedAxis reports the axis n is parallel to, if any
func alignedAxis(n core.Vec3) (int, bool) {
	const tolerance = 1e-9
	n = n.Normalize()
	for axis := 0; axis < 3; axis++ {
		if math.Abs(math.Abs(n.Axis(axis))-1) < tolerance {
			return axis, true
		}
	}
	return 0, false
}

// withAxis returns v with the given component replaced
func withAxis(v core.Vec3, axis int, value float64) core.Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// padAxis thickens box along axis so flat shapes still have volume
func padAxis(box core.AABB, axis int, padding float64) core.AABB {
	box.Min = withAxis(box.Min, axis, box.Min.Axis(axis)-padding)
	box.Max = withAxis(box.Max, axis, box.Max.Axis(axis)+padding)
	return box
}
