package shader

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/material"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
)

// AO rays leaving closer than this to the surface tangent count as occluded
const grazingCutoff = 0.05

// Offset of AO ray origins along the normal
const aoEpsilon = 1e-4

// AOConfig configures ambient occlusion shading
type AOConfig struct {
	Samples   int     // Occlusion rays per shading point
	RayLength float64 // Maximum distance of an occluder
}

// DefaultAOConfig returns one unbounded occlusion ray per hit
func DefaultAOConfig() AOConfig {
	return AOConfig{
		Samples:   1,
		RayLength: 1e20,
	}
}

// Attenuation returns the unoccluded fraction of samples AO rays
func Attenuation(hits, samples int) float64 {
	if samples <= 0 {
		return 1
	}
	return 1 - float64(hits)/float64(samples)
}

// surfaceColor returns the unlit color of a hit: material reflectance times geometry color
func surfaceColor(dg *core.DifferentialGeometry) core.Vec3 {
	kd := material.DefaultKd
	if dg.Material != nil {
		kd = dg.Material.Shade(dg)
	}
	return kd.MultiplyVec(dg.Color)
}

// aoRay builds an occlusion ray above the surface, bounded by length
func aoRay(dg *core.DifferentialGeometry, dir core.Vec3, length float64) core.Ray {
	ray := core.NewRay(dg.P.Add(dg.Ng.Multiply(aoEpsilon)), dir)
	ray.T = length
	return ray
}

// SimpleAO shades one sample at a time with ambient occlusion
type SimpleAO struct {
	config AOConfig
}

// NewSimpleAO creates a scalar ambient occlusion shader
func NewSimpleAO(config AOConfig) *SimpleAO {
	return &SimpleAO{config: config}
}

func (ao *SimpleAO) RenderSample(job *renderer.Job, s *renderer.Sample) {
	fc := job.Frame
	s.Alpha = 1

	fc.Scene.Intersect(&s.Ray, core.Coherent)
	if !s.Ray.HitSomething() {
		s.RGB = fc.Background
		return
	}

	dg := fc.Scene.PostIntersect(&s.Ray)
	s.Depth = s.Ray.T
	s.RGB = surfaceColor(&dg)

	hits := 0
	for i := 0; i < ao.config.Samples; i++ {
		u := core.NewVec2(job.Random.Float64(), job.Random.Float64())
		dir := core.SampleCosineHemisphere(dg.Ng, u)
		if dir.Dot(dg.Ng) < grazingCutoff {
			hits++
			continue
		}
		ray := aoRay(&dg, dir, ao.config.RayLength)
		if fc.Scene.Occluded(&ray, core.Incoherent) {
			hits++
		}
	}

	cosine := math.Abs(dg.Ng.Dot(s.Ray.Direction.Normalize()))
	s.RGB = s.RGB.Multiply(cosine * Attenuation(hits, ao.config.Samples))
}
