package renderer

import (
	"image"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// Scene is the intersection service shaders trace rays against
type Scene interface {
	// Intersect finds the closest hit in [ray.T0, ray.T] and records it on the ray
	Intersect(ray *core.Ray, coherency core.Coherency)
	// IntersectBatch intersects every enabled ray of a batch
	IntersectBatch(rays []core.Ray, coherency core.Coherency)
	// Occluded reports whether anything blocks the ray segment
	Occluded(ray *core.Ray, coherency core.Coherency) bool
	// PostIntersect resolves the surface at the hit recorded on the ray
	PostIntersect(ray *core.Ray) core.DifferentialGeometry
	Volumes() []volume.Volume
}

// FrameBuffer is the tile-addressed target the scheduler renders into
type FrameBuffer interface {
	Size() (int, int)
	BeginFrame()
	TileGrid() image.Point
	TileError(id image.Point) float64
	AccumID(id image.Point) int
	SetTile(tile *framebuffer.Tile)
	EndFrame(errorThreshold float64) float64
}

// DepthTexture bounds primary rays, e.g. with the depth of a rasterized pass.
// At is only called with 0 <= x < width and 0 <= y < height.
type DepthTexture interface {
	Size() (int, int)
	At(x, y int) float64
}

// DepthBuffer is a DepthTexture backed by a row-major slice
type DepthBuffer struct {
	Width, Height int
	Data          []float64
}

// NewDepthBuffer creates a depth buffer cleared to +Inf
func NewDepthBuffer(width, height int) *DepthBuffer {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.Inf(1)
	}
	return &DepthBuffer{Width: width, Height: height, Data: data}
}

func (d *DepthBuffer) Size() (int, int) {
	return d.Width, d.Height
}

// At returns the depth at (x, y), clamping coordinates to the buffer
func (d *DepthBuffer) At(x, y int) float64 {
	x = max(0, min(d.Width-1, x))
	y = max(0, min(d.Height-1, y))
	return d.Data[x+y*d.Width]
}

// FrameContext carries the read-only state of one frame to every job
type FrameContext struct {
	Width, Height   int
	Camera          camera.Camera
	BatchCamera     camera.BatchCamera // nil unless the camera generates batches
	Scene           Scene
	Volume          volume.Volume // First volume of the scene, nil when there is none
	Background      core.Vec3
	SamplesPerPixel int
	ErrorThreshold  float64
	MaxDepth        DepthTexture
	Seed            int64
	Frame           int

	samples atomic.Int64
	rays    atomic.Int64
}

// MaxT returns the far bound for a primary ray through pixel (x, y). Pixels
// outside the frame use the nearest texel.
func (fc *FrameContext) MaxT(x, y int) float64 {
	if fc.MaxDepth == nil {
		return math.Inf(1)
	}
	w, h := fc.MaxDepth.Size()
	if w <= 0 || h <= 0 {
		return math.Inf(1)
	}
	px := int((float64(x) + 0.5) * float64(w) / float64(fc.Width))
	py := int((float64(y) + 0.5) * float64(h) / float64(fc.Height))
	return fc.MaxDepth.At(max(0, min(w-1, px)), max(0, min(h-1, py)))
}

// Samples returns the number of samples shaded in this frame so far
func (fc *FrameContext) Samples() int64 {
	return fc.samples.Load()
}

// PrimaryRays returns the number of primary rays generated in this frame so far
func (fc *FrameContext) PrimaryRays() int64 {
	return fc.rays.Load()
}

// Job is one slice of a tile's pixel order processed by a single worker
type Job struct {
	Frame  *FrameContext
	Tile   *framebuffer.Tile
	ID     int
	Random *rand.Rand
}

// NewJob creates a job with a random generator seeded from the frame seed,
// the frame index, the tile and the job index, so renders are reproducible
// regardless of scheduling
func NewJob(fc *FrameContext, tile *framebuffer.Tile, id int) *Job {
	grid := int64(tile.ID.X) + int64(tile.ID.Y)*0x10000
	seed := fc.Seed ^ int64(fc.Frame)*0x9e3779b97f4a7c ^ grid*0x632be59bd9b4e019 ^ int64(id)*0x85ebca6b
	return &Job{
		Frame:  fc,
		Tile:   tile,
		ID:     id,
		Random: rand.New(rand.NewSource(seed)),
	}
}
