package scene

import (
	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/geometry"
	"github.com/df07/go-stream-raytracer/pkg/material"
)

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v)
}

// NewDefaultScene creates a default scene with spheres and a box on a checkered ground
func NewDefaultScene() *Scene {
	s := New()
	s.CameraConfig = camera.Config{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	s.Background = core.NewVec3(0.5, 0.7, 1.0)

	white := material.NewDiffuse(core.Splat(0.8))
	ground := material.NewTexturedDiffuse(material.NewChecker(core.Splat(0.85), core.Splat(0.35), 0.5))

	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 100.0), ground)
	s.AddWithColor(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), white, core.NewVec3(0.9, 0.35, 0.25))
	s.AddWithColor(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), white, core.NewVec3(0.8, 0.8, 0.8))
	s.AddWithColor(geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), white, core.NewVec3(0.9, 0.7, 0.25))
	s.AddWithColor(geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25), white, core.NewVec3(0.3, 0.5, 0.9))
	s.AddWithColor(geometry.NewBox(core.NewVec3(-0.5, 0.2, -0.4), core.NewVec3(0.2, 0.2, 0.2), core.NewVec3(0, 0.6, 0)),
		white, core.NewVec3(0.35, 0.8, 0.35))

	s.Preprocess()
	return s
}
