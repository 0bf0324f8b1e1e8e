package shader

import (
	"image"
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// wallScene is an infinite wall at z = -2 facing +Z. Occlusion rays can be
// forced to always or never hit.
type wallScene struct {
	empty    bool // Primary rays miss
	occluded bool // Occlusion rays hit
	volumes  []volume.Volume
	material core.Material
}

func (w *wallScene) Intersect(ray *core.Ray, coherency core.Coherency) {
	if ray.Disabled() {
		return
	}
	if coherency == core.Incoherent {
		if w.occluded {
			ray.T = 1
			ray.GeomID = 0
		}
		return
	}
	if w.empty || ray.Direction.Z >= 0 {
		return
	}
	t := (-2 - ray.Origin.Z) / ray.Direction.Z
	if t < ray.T0 || t > ray.T {
		return
	}
	ray.T = t
	ray.GeomID = 0
	ray.Ng = core.NewVec3(0, 0, 1)
}

func (w *wallScene) IntersectBatch(rays []core.Ray, coherency core.Coherency) {
	for i := range rays {
		w.Intersect(&rays[i], coherency)
	}
}

func (w *wallScene) Occluded(ray *core.Ray, coherency core.Coherency) bool {
	return w.occluded
}

func (w *wallScene) PostIntersect(ray *core.Ray) core.DifferentialGeometry {
	n := core.FaceForward(ray.Ng.Normalize(), ray.Direction)
	return core.DifferentialGeometry{
		P:        ray.At(ray.T),
		Ng:       n,
		Ns:       n,
		Color:    core.Splat(1),
		Material: w.material,
		GeomID:   ray.GeomID,
	}
}

func (w *wallScene) Volumes() []volume.Volume { return w.volumes }

func newTestJob(scene renderer.Scene, background core.Vec3) *renderer.Job {
	fc := &renderer.FrameContext{
		Width:           1,
		Height:          1,
		Scene:           scene,
		Background:      background,
		SamplesPerPixel: 1,
		Seed:            7,
	}
	if volumes := scene.Volumes(); len(volumes) > 0 {
		fc.Volume = volumes[0]
	}
	tile := framebuffer.NewTile()
	tile.Begin(image.Pt(0, 0), -1)
	return renderer.NewJob(fc, tile, 0)
}

func forwardSample() renderer.Sample {
	s := renderer.NewSample()
	s.TileOffset = 0
	s.Ray = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	return s
}

func forwardBatch(width int) *renderer.SampleBatch {
	b := renderer.NewSampleBatch(width)
	for i := 0; i < width; i++ {
		b.X[i] = i
		b.TileOffset[i] = i
		b.Rays[i] = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	}
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
