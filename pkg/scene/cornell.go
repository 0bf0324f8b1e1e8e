package scene

import (
	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/geometry"
	"github.com/df07/go-stream-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls, a box and a sphere
func NewCornellScene() *Scene {
	s := New()
	s.CameraConfig = camera.Config{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0, // Square aspect ratio for Cornell box
		VFov:        40.0,
	}
	s.Background = core.NewVec3(0, 0, 0)

	params := material.Params{"Kd": core.Splat(0.73)}
	white := material.NewDiffuseFromParams(params)
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	// Floor (white) - XZ plane at y=0
	s.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	// Ceiling (white) - XZ plane at y=boxSize
	s.Add(geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize)), white)
	// Back wall (white) - XY plane at z=boxSize
	s.Add(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0)), white)
	// Left wall (red) - YZ plane at x=0
	s.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0)), red)
	// Right wall (green) - YZ plane at x=boxSize
	s.Add(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize)), green)

	// Tall rotated box on the left, sphere on the right
	s.Add(geometry.NewBox(core.NewVec3(185, 165, 351), core.NewVec3(82.5, 165, 82.5), core.NewVec3(0, 0.26, 0)), white)
	s.Add(geometry.NewSphere(core.NewVec3(370, 90, 169), 90), white)

	s.Preprocess()
	return s
}
