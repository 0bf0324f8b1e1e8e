package renderer

import (
	"image"
	"sync"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// screenCamera encodes the camera sample into the ray so shaders can inspect it:
// the origin holds the screen position and the direction the lens sample
type screenCamera struct{}

func (screenCamera) GetRay(s camera.Sample) core.Ray {
	return core.NewRay(core.NewVec3(s.Screen.X, s.Screen.Y, 0), core.NewVec3(s.Lens.X, s.Lens.Y, 1))
}

func (c screenCamera) GetRays(samples *camera.SampleBatch, rays []core.Ray) {
	for i := range rays {
		rays[i] = c.GetRay(samples.Lane(i))
	}
}

// scalarCamera only generates single rays
type scalarCamera struct{}

func (scalarCamera) GetRay(s camera.Sample) core.Ray {
	return core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
}

type mockScene struct {
	volumes []volume.Volume
}

func (m *mockScene) Intersect(ray *core.Ray, coherency core.Coherency)        {}
func (m *mockScene) IntersectBatch(rays []core.Ray, coherency core.Coherency) {}
func (m *mockScene) Occluded(ray *core.Ray, coherency core.Coherency) bool    { return false }
func (m *mockScene) PostIntersect(ray *core.Ray) core.DifferentialGeometry {
	return core.DifferentialGeometry{GeomID: ray.GeomID, Color: core.Splat(1)}
}
func (m *mockScene) Volumes() []volume.Volume { return m.volumes }

// countingShader counts the samples shaded per pixel and paints them a constant color
type countingShader struct {
	mu     sync.Mutex
	color  core.Vec3
	counts map[image.Point]int
	calls  int
	rays   []core.Ray
}

func newCountingShader(color core.Vec3) *countingShader {
	return &countingShader{color: color, counts: make(map[image.Point]int)}
}

func (c *countingShader) RenderSample(job *Job, s *Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.counts[image.Pt(s.ID.X, s.ID.Y)]++
	c.rays = append(c.rays, s.Ray)
	s.RGB = c.color
	s.Alpha = 1
	s.Depth = 1
}

func (c *countingShader) RenderStream(job *Job, b *SampleBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	b.ForEachSample(Enabled, func(s SampleRef) {
		c.counts[image.Pt(*s.X, *s.Y)]++
		s.SetRGB(c.color)
		*s.Alpha = 1
		*s.Depth = 1
	})
}

func (c *countingShader) count(x, y int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[image.Pt(x, y)]
}

// mismatchShader calls the scalar hook of a stream renderer
type mismatchShader struct {
	renderer *SimdRenderer
}

func (m *mismatchShader) RenderStream(job *Job, b *SampleBatch) {
	s := NewSample()
	m.renderer.RenderSample(job, &s)
}

func testConfig(cam camera.Camera) Config {
	config := DefaultConfig()
	config.Camera = cam
	config.Scene = &mockScene{}
	return config
}

func newTestTile(id image.Point, accumID int) *framebuffer.Tile {
	tile := framebuffer.NewTile()
	tile.Begin(id, accumID)
	return tile
}
