package volume

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// TransferFunction maps scalar volume samples to color and opacity
type TransferFunction interface {
	Color(value float64) core.Vec3
	Opacity(value float64) float64
}

// Volume is a scalar field that can be ray marched
type Volume interface {
	// Intersect clips the ray segment [T0, T] to the volume and reports whether anything is left
	Intersect(ray *core.Ray) bool
	// ComputeSample returns the field value at a world space point
	ComputeSample(point core.Vec3) float64
	// Advance moves the ray start forward by one ray marching step
	Advance(ray *core.Ray)
	// SamplingStep is the base ray marching distance
	SamplingStep() float64
	// SamplingRate scales the sampling density; the effective step is SamplingStep / SamplingRate
	SamplingRate() float64
	TransferFunction() TransferFunction
}
