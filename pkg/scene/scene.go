package scene

import (
	"sync/atomic"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// Scene holds the geometry and volumes of a frame and answers ray queries
// against them. Queries are safe for concurrent use once Preprocess has run.
type Scene struct {
	CameraConfig camera.Config // Preferred camera for the scene
	Background   core.Vec3
	Shapes       []core.Shape
	Materials    []core.Material // Per-geometry material, indexed like Shapes
	Colors       []core.Vec3     // Per-geometry color, indexed like Shapes
	BVH          *core.BVH

	volumes []volume.Volume
	stats   [2]rayCounter
}

type rayCounter struct {
	rays atomic.Int64
	hits atomic.Int64
}

// RayStats counts the rays traced against the scene per coherency hint
type RayStats struct {
	CoherentRays, CoherentHits     int64
	IncoherentRays, IncoherentHits int64
}

// New creates an empty scene with a white background
func New() *Scene {
	return &Scene{
		CameraConfig: camera.DefaultConfig(),
		Background:   core.Splat(1),
	}
}

// Add adds a shape with a white geometry color and returns its geometry ID.
// mat may be nil for shapes only used as occluders.
func (s *Scene) Add(shape core.Shape, mat core.Material) int {
	return s.AddWithColor(shape, mat, core.Splat(1))
}

// AddWithColor adds a shape whose shading color is tinted by color
func (s *Scene) AddWithColor(shape core.Shape, mat core.Material, color core.Vec3) int {
	s.Shapes = append(s.Shapes, shape)
	s.Materials = append(s.Materials, mat)
	s.Colors = append(s.Colors, color)
	s.BVH = nil
	return len(s.Shapes) - 1
}

// AddVolume adds a volume; shaders use the first one
func (s *Scene) AddVolume(v volume.Volume) {
	s.volumes = append(s.volumes, v)
}

// Volumes returns the volumes in insertion order
func (s *Scene) Volumes() []volume.Volume {
	return s.volumes
}

// Preprocess builds the acceleration structure
func (s *Scene) Preprocess() error {
	s.BVH = core.NewBVH(s.Shapes)
	return nil
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// bvh returns the acceleration structure, empty until Preprocess has run
func (s *Scene) bvh() *core.BVH {
	if s.BVH == nil {
		return &core.BVH{}
	}
	return s.BVH
}

func (s *Scene) counter(coherency core.Coherency) *rayCounter {
	if coherency == core.Incoherent {
		return &s.stats[1]
	}
	return &s.stats[0]
}

// Intersect finds the closest hit within [ray.T0, ray.T]. On a hit it
// shortens ray.T to the hit distance and records the geometry ID and
// the geometric normal. Disabled rays are left untouched.
func (s *Scene) Intersect(ray *core.Ray, coherency core.Coherency) {
	if ray.Disabled() {
		return
	}
	c := s.counter(coherency)
	c.rays.Add(1)

	if s.bvh().Intersect(ray) {
		c.hits.Add(1)
	}
}

// IntersectBatch intersects every enabled ray of rays
func (s *Scene) IntersectBatch(rays []core.Ray, coherency core.Coherency) {
	for i := range rays {
		s.Intersect(&rays[i], coherency)
	}
}

// Occluded reports whether any shape blocks the ray segment
func (s *Scene) Occluded(ray *core.Ray, coherency core.Coherency) bool {
	if ray.Disabled() {
		return false
	}
	c := s.counter(coherency)
	c.rays.Add(1)
	if s.bvh().Occluded(*ray) {
		c.hits.Add(1)
		return true
	}
	return false
}

// PostIntersect resolves the surface at the hit recorded on ray. Normals are
// normalized and face the incoming ray.
func (s *Scene) PostIntersect(ray *core.Ray) core.DifferentialGeometry {
	dg := core.DifferentialGeometry{
		P:      ray.At(ray.T),
		Color:  core.Splat(1),
		GeomID: ray.GeomID,
	}
	if ray.GeomID < 0 || ray.GeomID >= len(s.Shapes) {
		return dg
	}

	n := core.FaceForward(ray.Ng.Normalize(), ray.Direction)
	dg.Ng, dg.Ns = n, n
	dg.Color = s.Colors[ray.GeomID]
	dg.Material = s.Materials[ray.GeomID]
	return dg
}

// RayStats returns the rays traced so far
func (s *Scene) RayStats() RayStats {
	return RayStats{
		CoherentRays:   s.stats[0].rays.Load(),
		CoherentHits:   s.stats[0].hits.Load(),
		IncoherentRays: s.stats[1].rays.Load(),
		IncoherentHits: s.stats[1].hits.Load(),
	}
}

// ResetRayStats clears the ray counters
func (s *Scene) ResetRayStats() {
	for i := range s.stats {
		s.stats[i].rays.Store(0)
		s.stats[i].hits.Store(0)
	}
}
