package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/log"
)

// SampleShader computes the color of one sample at a time
type SampleShader interface {
	// RenderSample traces s.Ray and fills in color, alpha and depth
	RenderSample(job *Job, s *Sample)
}

// StreamShader computes the colors of a whole batch of samples
type StreamShader interface {
	// RenderStream traces the rays of every enabled lane and fills in their color, alpha and depth
	RenderStream(job *Job, b *SampleBatch)
}

// TileRenderer renders the jobs of a tile for the frame scheduler
type TileRenderer interface {
	// BeginFrame resolves the committed state against fb into a frame context
	BeginFrame(fb FrameBuffer) (*FrameContext, error)
	// RenderTile shades the pixels of job jobID of tile into the tile
	RenderTile(fc *FrameContext, tile *framebuffer.Tile, jobID int)
	EndFrame(fc *FrameContext, channels framebuffer.Channel)
}

// renderState is the committed configuration shared by the scalar and the stream renderer
type renderState struct {
	mu        sync.RWMutex
	config    Config
	committed bool
	frames    atomic.Int64
	order     *PixelOrder
	logger    log.Logger
}

func (rs *renderState) init(name string) {
	rs.config = DefaultConfig()
	rs.order = NewPixelOrder(framebuffer.TileSize)
	rs.logger = log.New(name)
}

// commit validates and stores config under the write lock
func (rs *renderState) commit(config Config, validate func(Config) error) error {
	if config.Camera == nil {
		return ErrCameraNotDefined
	}
	if config.Scene == nil {
		return ErrSceneNotDefined
	}
	if config.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSPP, config.SamplesPerPixel)
	}
	if validate != nil {
		if err := validate(config); err != nil {
			return err
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.config = config
	rs.committed = true
	return nil
}

// beginFrame snapshots the committed configuration into a frame context
func (rs *renderState) beginFrame(fb FrameBuffer) (*FrameContext, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if !rs.committed {
		return nil, ErrNotCommitted
	}
	cfg := rs.config
	if cfg.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if cfg.Scene == nil {
		return nil, ErrSceneNotDefined
	}

	w, h := fb.Size()
	fc := &FrameContext{
		Width:           w,
		Height:          h,
		Camera:          cfg.Camera,
		Scene:           cfg.Scene,
		Background:      cfg.Background,
		SamplesPerPixel: cfg.SamplesPerPixel,
		ErrorThreshold:  cfg.ErrorThreshold,
		MaxDepth:        cfg.MaxDepth,
		Seed:            cfg.Seed,
		Frame:           int(rs.frames.Add(1) - 1),
	}
	if bc, ok := cfg.Camera.(camera.BatchCamera); ok {
		fc.BatchCamera = bc
	}
	if volumes := cfg.Scene.Volumes(); len(volumes) > 0 {
		fc.Volume = volumes[0]
	}
	return fc, nil
}

func (rs *renderState) endFrame(fc *FrameContext, channels framebuffer.Channel) {
	rs.logger.Debugf("frame %d: %d samples, %d primary rays, channels %08b",
		fc.Frame, fc.Samples(), fc.PrimaryRays(), channels)
}

// jobRange returns the slice of the pixel order covered by jobID
func (rs *renderState) jobRange(jobID int) (int, int) {
	begin := jobID * PixelsPerJob
	end := min(begin+PixelsPerJob, rs.order.Len())
	return begin, end
}

// Renderer renders tiles one sample at a time with a SampleShader
type Renderer struct {
	renderState
	shader SampleShader
}

// NewRenderer creates a scalar renderer that shades samples with shader
func NewRenderer(shader SampleShader) *Renderer {
	r := &Renderer{shader: shader}
	r.init("renderer")
	return r
}

// Commit validates config and makes it the state used by the next frames
func (r *Renderer) Commit(config Config) error {
	return r.commit(config, nil)
}

func (r *Renderer) BeginFrame(fb FrameBuffer) (*FrameContext, error) {
	return r.beginFrame(fb)
}

func (r *Renderer) EndFrame(fc *FrameContext, channels framebuffer.Channel) {
	r.endFrame(fc, channels)
}

// RenderSample shades one sample with the renderer's shader
func (r *Renderer) RenderSample(job *Job, s *Sample) {
	r.shader.RenderSample(job, s)
}

// RenderTile shades every in-bounds pixel of job jobID with SamplesPerPixel
// samples. Samples are placed with Halton sequences indexed by the absolute
// sample number, so accumulation passes continue the sequence.
func (r *Renderer) RenderTile(fc *FrameContext, tile *framebuffer.Tile, jobID int) {
	job := NewJob(fc, tile, jobID)
	spp := fc.SamplesPerPixel
	start := max(tile.AccumID, 0) * spp
	scale := 1.0 / float64(spp)
	invW, invH := 1.0/float64(fc.Width), 1.0/float64(fc.Height)

	begin, end := r.jobRange(jobID)
	for i := begin; i < end; i++ {
		x := tile.Region.Min.X + r.order.X[i]
		y := tile.Region.Min.Y + r.order.Y[i]
		if x >= fc.Width || y >= fc.Height {
			continue
		}
		offset := r.order.Offset(i, framebuffer.TileSize)
		tMax := fc.MaxT(x, y)

		for s := 0; s < spp; s++ {
			index := start + s
			sample := NewSample()
			sample.ID = SampleID{X: x, Y: y, Z: index}
			sample.TileOffset = offset

			cs := camera.Sample{
				Screen: core.NewVec2((float64(x)+core.Halton2(index))*invW, (float64(y)+core.Halton3(index))*invH),
				Lens:   core.NewVec2(core.Halton3(index), core.Halton5(index)),
			}
			sample.Ray = fc.Camera.GetRay(cs)
			sample.Ray.T = tMax
			fc.rays.Add(1)

			r.RenderSample(job, &sample)
			fc.samples.Add(1)

			tile.Set(offset, sample.RGB.Multiply(scale), sample.Alpha, sample.Depth)
		}
	}
}
