package core

// Shape is a piece of geometry the intersection service traces rays against
type Shape interface {
	// Intersect looks for the closest surface crossing inside [ray.T0, ray.T].
	// On a hit it shortens ray.T to the hit distance, stores the outward
	// geometric normal in ray.Ng and returns true. GeomID is left to the caller.
	Intersect(ray *Ray) bool
	Bounds() AABB
}

// Material resolves a surface hit to a color contribution
type Material interface {
	Shade(dg *DifferentialGeometry) Vec3
}

// DifferentialGeometry describes the surface around a hit point as seen by shaders
type DifferentialGeometry struct {
	P        Vec3     // Hit point
	Ng       Vec3     // Geometric normal, normalized and facing the incoming ray
	Ns       Vec3     // Shading normal, normalized and facing the incoming ray
	Color    Vec3     // Per-geometry color, white when the geometry has none
	Material Material // Material bound to the hit geometry, may be nil
	GeomID   int
}
