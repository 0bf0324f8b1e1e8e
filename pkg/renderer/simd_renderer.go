package renderer

import (
	"fmt"
	"sync"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/simd"
)

// SimdRenderer renders tiles in batches of lanes with a StreamShader.
// Every lane of a batch carries the same sample index.
type SimdRenderer struct {
	renderState
	shader StreamShader
	width  int
	pool   sync.Pool
}

// batchScratch holds the per-job buffers of one batch
type batchScratch struct {
	batch   *SampleBatch
	samples *camera.SampleBatch
	du, dv  []float64
	lu, lv  []float64
	tMax    []float64
	offset  []int
}

func newBatchScratch(width int) *batchScratch {
	return &batchScratch{
		batch:   NewSampleBatch(width),
		samples: camera.NewSampleBatch(width),
		du:      make([]float64, width),
		dv:      make([]float64, width),
		lu:      make([]float64, width),
		lv:      make([]float64, width),
		tMax:    make([]float64, width),
		offset:  make([]int, width),
	}
}

// NewSimdRenderer creates a stream renderer that shades batches with shader
func NewSimdRenderer(shader StreamShader) *SimdRenderer {
	r := &SimdRenderer{
		shader: shader,
		width:  simd.Width(),
	}
	r.init("simd")
	return r
}

// Width returns the lane width of the committed configuration
func (r *SimdRenderer) Width() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width
}

// Commit validates config and makes it the state used by the next frames.
// The camera must generate batches of rays.
func (r *SimdRenderer) Commit(config Config) error {
	width := config.LaneWidth
	if width == 0 {
		width = simd.Width()
	}
	err := r.commit(config, func(c Config) error {
		if _, ok := c.Camera.(camera.BatchCamera); !ok {
			return ErrBatchCameraNotDefined
		}
		if !simd.ValidWidth(width, PixelsPerJob) {
			return fmt.Errorf("%w: got %d", ErrInvalidLaneWidth, width)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	return nil
}

func (r *SimdRenderer) BeginFrame(fb FrameBuffer) (*FrameContext, error) {
	fc, err := r.beginFrame(fb)
	if err != nil {
		return nil, err
	}
	if fc.BatchCamera == nil {
		return nil, ErrBatchCameraNotDefined
	}
	return fc, nil
}

func (r *SimdRenderer) EndFrame(fc *FrameContext, channels framebuffer.Channel) {
	r.endFrame(fc, channels)
}

// RenderSample is never valid on a stream renderer and panics with ErrTypeMismatch
func (r *SimdRenderer) RenderSample(job *Job, s *Sample) {
	panic(ErrTypeMismatch)
}

// RenderStream shades one batch with the renderer's shader
func (r *SimdRenderer) RenderStream(job *Job, b *SampleBatch) {
	r.shader.RenderStream(job, b)
}

func (r *SimdRenderer) getScratch() *batchScratch {
	r.mu.RLock()
	width := r.width
	r.mu.RUnlock()
	if s, ok := r.pool.Get().(*batchScratch); ok && s.batch.Width() == width {
		return s
	}
	return newBatchScratch(width)
}

// RenderTile shades the pixels of job jobID in batches of lanes. Lanes whose
// pixel lies outside the image are disabled and never written back.
func (r *SimdRenderer) RenderTile(fc *FrameContext, tile *framebuffer.Tile, jobID int) {
	job := NewJob(fc, tile, jobID)
	scratch := r.getScratch()
	defer r.pool.Put(scratch)

	b := scratch.batch
	width := b.Width()
	spp := fc.SamplesPerPixel
	start := max(tile.AccumID, 0) * spp
	scale := 1.0 / float64(spp)
	invW, invH := 1.0/float64(fc.Width), 1.0/float64(fc.Height)

	begin, end := r.jobRange(jobID)
	for first := begin; first < end; first += width {
		b.Reset()
		simd.FillInts(scratch.offset, -1)

		var active simd.Mask
		for lane := 0; lane < width; lane++ {
			i := first + lane
			if i >= end {
				continue
			}
			x := tile.Region.Min.X + r.order.X[i]
			y := tile.Region.Min.Y + r.order.Y[i]
			b.X[lane], b.Y[lane] = x, y
			// Either coordinate in range enables the lane; the framebuffer clips the rest
			if x < fc.Width || y < fc.Height {
				active = active.Set(lane, true)
				scratch.offset[lane] = r.order.Offset(i, framebuffer.TileSize)
				scratch.tMax[lane] = fc.MaxT(x, y)
			}
		}
		if active.None() {
			continue
		}

		for s := 0; s < spp; s++ {
			index := start + s
			b.ResetColor()
			copy(b.TileOffset, scratch.offset)
			simd.FillInts(b.Z, index)

			simd.Uniform(scratch.du, job.Random)
			simd.Uniform(scratch.dv, job.Random)
			simd.Uniform(scratch.lu, job.Random)
			simd.Uniform(scratch.lv, job.Random)
			for lane := 0; lane < width; lane++ {
				scratch.samples.ScreenX[lane] = (float64(b.X[lane]) + scratch.du[lane]) * invW
				scratch.samples.ScreenY[lane] = (float64(b.Y[lane]) + scratch.dv[lane]) * invH
				scratch.samples.LensX[lane] = scratch.lu[lane]
				scratch.samples.LensY[lane] = scratch.lv[lane]
			}

			fc.BatchCamera.GetRays(scratch.samples, b.Rays)
			for lane := 0; lane < width; lane++ {
				if active.Has(lane) {
					b.Rays[lane].T = scratch.tMax[lane]
				} else {
					b.Rays[lane].Disable()
				}
			}
			fc.rays.Add(int64(active.Count()))

			r.RenderStream(job, b)
			fc.samples.Add(int64(active.Count()))

			b.ScaleRGB(scale)
			active.ForEach(func(lane int) {
				tile.Set(scratch.offset[lane], b.RGB(lane), b.Alpha[lane], b.Depth[lane])
			})
		}
	}
}
