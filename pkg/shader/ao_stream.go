package shader

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
	"github.com/df07/go-stream-raytracer/pkg/simd"
)

// StreamAO shades a batch of samples with ambient occlusion. Occlusion
// directions come from per-lane TEA hashes of the pixel position.
type StreamAO struct {
	config AOConfig
}

// NewStreamAO creates a batch ambient occlusion shader
func NewStreamAO(config AOConfig) *StreamAO {
	return &StreamAO{config: config}
}

func (ao *StreamAO) RenderStream(job *renderer.Job, b *renderer.SampleBatch) {
	fc := job.Frame
	width := b.Width()

	b.ForEachSample(renderer.Enabled, func(s renderer.SampleRef) {
		*s.Alpha = 1
	})

	fc.Scene.IntersectBatch(b.Rays, core.Coherent)

	b.ForEachSample(renderer.Miss, func(s renderer.SampleRef) {
		s.SetRGB(fc.Background)
		s.Ray.Disable()
	})

	hit := b.Mask(renderer.Hit)
	if hit.None() {
		return
	}

	dgs := make([]core.DifferentialGeometry, width)
	cosine := make([]float64, width)
	b.ForEachSampleI(renderer.Hit, func(lane int, s renderer.SampleRef) {
		dgs[lane] = fc.Scene.PostIntersect(s.Ray)
		*s.Depth = s.Ray.T
		s.SetRGB(surfaceColor(&dgs[lane]))
		cosine[lane] = math.Abs(dgs[lane].Ng.Dot(s.Ray.Direction.Normalize()))
	})

	idx := make([]uint32, width)
	for lane := range idx {
		idx[lane] = uint32(b.X[lane] + b.Y[lane]*fc.Width)
	}
	tea := simd.NewTEA(idx, uint32(b.Z[0]))

	hits := make([]int, width)
	rays := make([]core.Ray, width)
	u := make([]float64, width)
	v := make([]float64, width)
	for i := 0; i < ao.config.Samples; i++ {
		tea.Floats(u, v)

		var traced simd.Mask
		for lane := range rays {
			rays[lane].Disable()
			if !hit.Has(lane) {
				continue
			}
			dg := &dgs[lane]
			dir := core.SampleCosineHemisphere(dg.Ng, core.NewVec2(u[lane], v[lane]))
			if dir.Dot(dg.Ng) < grazingCutoff {
				hits[lane]++
				continue
			}
			rays[lane] = aoRay(dg, dir, ao.config.RayLength)
			traced = traced.Set(lane, true)
		}
		if traced.None() {
			continue
		}

		fc.Scene.IntersectBatch(rays, core.Incoherent)
		traced.ForEach(func(lane int) {
			if rays[lane].HitSomething() {
				hits[lane]++
			}
		})
	}

	b.ForEachSampleI(renderer.Hit, func(lane int, s renderer.SampleRef) {
		s.SetRGB(s.RGB().Multiply(cosine[lane] * Attenuation(hits[lane], ao.config.Samples)))
	})
}
