package core

import (
	"math"
)

// Frame builds an orthonormal tangent and bitangent around the unit vector n
// without branching on its direction (Duff et al. 2017).
func Frame(n Vec3) (tangent, bitangent Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent = Vec3{X: 1 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	bitangent = Vec3{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}
	return tangent, bitangent
}

// SampleCosineHemisphere maps a [0,1)² sample to a direction around normal
// with density proportional to the cosine of its angle to normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	phi := 2 * math.Pi * sample.X
	cosTheta := math.Sqrt(sample.Y)
	sinTheta := math.Sqrt(1 - sample.Y)

	tangent, bitangent := Frame(normal)
	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Add(normal.Multiply(cosTheta))
}

// SampleUnitDisk maps a [0,1)² sample onto the unit disk with the
// concentric mapping, preserving area and adjacency
func SampleUnitDisk(sample Vec2) Vec2 {
	sx, sy := 2*sample.X-1, 2*sample.Y-1
	if sx == 0 && sy == 0 {
		return Vec2{}
	}

	var r, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		r, theta = sx, math.Pi/4*(sy/sx)
	} else {
		r, theta = sy, math.Pi/2-math.Pi/4*(sx/sy)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}
