package core

import "math"

// NoHit is the GeomID of a ray that has not hit anything
const NoHit = -1

// Coherency hints the intersection service about the expected spatial
// coherence of a group of rays
type Coherency int

const (
	// Coherent rays start close together and point in similar directions (primary rays)
	Coherent Coherency = iota
	// Incoherent rays are scattered, e.g. ambient occlusion or shadow rays
	Incoherent
)

func (c Coherency) String() string {
	switch c {
	case Coherent:
		return "coherent"
	case Incoherent:
		return "incoherent"
	default:
		return "unknown"
	}
}

// Ray is a ray segment [T0, T] together with its intersection state.
// The intersection service shortens T to the hit distance and fills in
// GeomID and Ng.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	T0        float64 // Start of the valid segment
	T         float64 // End of the valid segment, hit distance after intersection
	GeomID    int     // Index of the hit shape, NoHit when nothing was hit
	Ng        Vec3    // Unnormalized geometric normal at the hit point
}

// NewRay creates a new ray covering [0, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		T0:        0,
		T:         math.Inf(1),
		GeomID:    NoHit,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// HitSomething reports whether the intersection service recorded a hit
func (r *Ray) HitSomething() bool {
	return r.GeomID != NoHit
}

// Disable empties the ray segment so no intersection can be found
func (r *Ray) Disable() {
	r.T0 = math.Inf(1)
	r.T = math.Inf(-1)
	r.GeomID = NoHit
}

// Disabled reports whether the ray segment is empty
func (r *Ray) Disabled() bool {
	return r.T0 > r.T
}
