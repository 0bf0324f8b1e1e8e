package camera

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Sample is a camera sample: a normalized screen position in [0,1]² with
// (0,0) at the bottom-left of the image, and a lens sample in [0,1]²
type Sample struct {
	Screen core.Vec2
	Lens   core.Vec2
}

// SampleBatch holds camera samples for a batch of lanes in SoA layout
type SampleBatch struct {
	ScreenX, ScreenY []float64
	LensX, LensY     []float64
}

// NewSampleBatch allocates a batch with width lanes
func NewSampleBatch(width int) *SampleBatch {
	return &SampleBatch{
		ScreenX: make([]float64, width),
		ScreenY: make([]float64, width),
		LensX:   make([]float64, width),
		LensY:   make([]float64, width),
	}
}

// Width returns the number of lanes
func (b *SampleBatch) Width() int {
	return len(b.ScreenX)
}

// Lane returns the scalar sample of lane i
func (b *SampleBatch) Lane(i int) Sample {
	return Sample{
		Screen: core.NewVec2(b.ScreenX[i], b.ScreenY[i]),
		Lens:   core.NewVec2(b.LensX[i], b.LensY[i]),
	}
}

// Camera generates primary rays one sample at a time
type Camera interface {
	GetRay(sample Sample) core.Ray
}

// BatchCamera generates primary rays for a whole batch of samples
type BatchCamera interface {
	Camera
	// GetRays writes one ray per lane of samples into rays
	GetRays(samples *SampleBatch, rays []core.Ray)
}
