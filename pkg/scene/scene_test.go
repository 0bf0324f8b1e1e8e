package scene

import (
	"math"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/geometry"
	"github.com/df07/go-stream-raytracer/pkg/material"
)

func newTwoSphereScene() (*Scene, *material.Diffuse) {
	mat := material.NewDiffuse(core.NewVec3(0.2, 0.4, 0.6))
	s := New()
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), mat)
	s.AddWithColor(geometry.NewSphere(core.NewVec3(0, 0, -10), 1), nil, core.NewVec3(1, 0, 0))
	s.Preprocess()
	return s, mat
}

func TestScene_IntersectClosest(t *testing.T) {
	s, _ := newTwoSphereScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	s.Intersect(&ray, core.Coherent)

	if ray.GeomID != 0 {
		t.Errorf("Expected geometry 0, got %d", ray.GeomID)
	}
	if math.Abs(ray.T-4) > 1e-9 {
		t.Errorf("Expected T 4, got %f", ray.T)
	}
	if ray.Ng.Normalize().Z <= 0 {
		t.Errorf("Expected outward normal towards the ray origin, got %v", ray.Ng)
	}
}

func TestScene_IntersectRespectsSegment(t *testing.T) {
	s, _ := newTwoSphereScene()

	tests := []struct {
		name     string
		t0, t    float64
		expected int
	}{
		{"full segment", 0, math.Inf(1), 0},
		{"starts past first sphere", 7, math.Inf(1), 1},
		{"ends before first sphere", 0, 3, core.NoHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			ray.T0, ray.T = tt.t0, tt.t
			s.Intersect(&ray, core.Coherent)
			if ray.GeomID != tt.expected {
				t.Errorf("Expected geometry %d, got %d", tt.expected, ray.GeomID)
			}
		})
	}
}

func TestScene_DisabledRaysAreIgnored(t *testing.T) {
	s, _ := newTwoSphereScene()
	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
	}
	rays[1].Disable()

	s.IntersectBatch(rays, core.Coherent)

	if !rays[0].HitSomething() {
		t.Error("Expected enabled ray to hit")
	}
	if rays[1].HitSomething() || !rays[1].Disabled() {
		t.Error("Expected disabled ray to stay disabled without hit")
	}
	if stats := s.RayStats(); stats.CoherentRays != 1 {
		t.Errorf("Expected 1 traced ray, got %d", stats.CoherentRays)
	}
}

func TestScene_Occluded(t *testing.T) {
	s, _ := newTwoSphereScene()

	blocked := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !s.Occluded(&blocked, core.Incoherent) {
		t.Error("Expected ray towards the spheres to be occluded")
	}

	short := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	short.T = 2
	if s.Occluded(&short, core.Incoherent) {
		t.Error("Expected short ray to be unoccluded")
	}

	away := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if s.Occluded(&away, core.Incoherent) {
		t.Error("Expected ray pointing away to be unoccluded")
	}

	stats := s.RayStats()
	if stats.IncoherentRays != 3 || stats.IncoherentHits != 1 {
		t.Errorf("Expected 3 incoherent rays with 1 hit, got %d and %d", stats.IncoherentRays, stats.IncoherentHits)
	}
	s.ResetRayStats()
	if s.RayStats() != (RayStats{}) {
		t.Error("Expected cleared ray stats")
	}
}

func TestScene_PostIntersect(t *testing.T) {
	s, mat := newTwoSphereScene()

	// From inside the first sphere the far side is hit from within
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1))
	s.Intersect(&ray, core.Coherent)
	dg := s.PostIntersect(&ray)

	if dg.GeomID != 0 {
		t.Fatalf("Expected geometry 0, got %d", dg.GeomID)
	}
	if dg.Ng.Dot(ray.Direction) >= 0 {
		t.Errorf("Expected normal facing the ray, got %v", dg.Ng)
	}
	if math.Abs(dg.Ng.Length()-1) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", dg.Ng.Length())
	}
	if dg.Material != mat {
		t.Errorf("Expected material of the hit sphere, got %v", dg.Material)
	}
	if dg.Color != core.Splat(1) {
		t.Errorf("Expected white geometry color, got %v", dg.Color)
	}

	ray = core.NewRay(core.NewVec3(0, 0, -7), core.NewVec3(0, 0, -1))
	s.Intersect(&ray, core.Coherent)
	dg = s.PostIntersect(&ray)
	if dg.Color != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red geometry color, got %v", dg.Color)
	}
	if dg.Material != nil {
		t.Errorf("Expected no material on the occluder-only sphere, got %v", dg.Material)
	}
}

func TestScene_MaterialsFollowGeomID(t *testing.T) {
	red := material.NewDiffuse(core.NewVec3(1, 0, 0))
	blue := material.NewDiffuse(core.NewVec3(0, 0, 1))

	// Two spheres whose surfaces touch at z=-2: whichever is hit, its own
	// material must come back
	s := New()
	if id := s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 1), red); id != 0 {
		t.Fatalf("Expected geometry ID 0, got %d", id)
	}
	if id := s.Add(geometry.NewSphere(core.NewVec3(0, 0, -3), 1), blue); id != 1 {
		t.Fatalf("Expected geometry ID 1, got %d", id)
	}
	s.Preprocess()

	tests := []struct {
		name     string
		t0       float64
		expected *material.Diffuse
	}{
		{"first sphere", 0.001, red},
		{"second sphere past the first", 2.6, blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, -1))
			ray.T0 = tt.t0
			s.Intersect(&ray, core.Coherent)
			if dg := s.PostIntersect(&ray); dg.Material != tt.expected {
				t.Errorf("Expected material %v for geometry %d, got %v", tt.expected, ray.GeomID, dg.Material)
			}
		})
	}
}

func TestScene_EmptyScene(t *testing.T) {
	s := New()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	s.Intersect(&ray, core.Coherent)
	if ray.HitSomething() {
		t.Error("Expected no hit in an empty scene")
	}
	if s.Occluded(&ray, core.Incoherent) {
		t.Error("Expected no occlusion in an empty scene")
	}
}
