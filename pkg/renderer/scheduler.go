package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/log"
)

// SchedulerConfig sizes the worker pools of a FrameScheduler
type SchedulerConfig struct {
	TileWorkers int // Tiles rendered concurrently (0 = use CPU count)
	JobWorkers  int // Jobs executed concurrently across all tiles (0 = use GOMAXPROCS)
}

// DefaultSchedulerConfig returns sensible default values
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TileWorkers: 0,
		JobWorkers:  0,
	}
}

// FrameScheduler fans the tiles of a frame out to a tile renderer. Tiles run
// on a tile worker pool, and the jobs of each tile on a shared job pool.
type FrameScheduler struct {
	renderer TileRenderer
	tiles    *WorkerPool
	jobs     *JobPool
	tilePool *TilePool
	logger   log.Logger

	mu     sync.Mutex
	closed bool
}

// NewFrameScheduler creates a scheduler with started worker pools
func NewFrameScheduler(renderer TileRenderer, config SchedulerConfig, logger log.Logger) *FrameScheduler {
	if logger == nil {
		logger = log.New("scheduler")
	}
	fs := &FrameScheduler{
		renderer: renderer,
		jobs:     NewJobPool(config.JobWorkers),
		tilePool: NewTilePool(),
		logger:   logger,
	}
	fs.tiles = NewWorkerPool(fs.renderTile, config.TileWorkers, 0)
	fs.tiles.Start()
	return fs
}

// JobsPerTile is the number of jobs a tile is split into
func JobsPerTile() int {
	return framebuffer.TilePixels / PixelsPerJob
}

// RenderFrame renders every tile of fb that has not converged and returns the
// frame error reported by the framebuffer. If a job fails, its tile is not
// merged and the first failure is returned once every tile has finished.
func (fs *FrameScheduler) RenderFrame(fb FrameBuffer, channels framebuffer.Channel) (float64, RenderStats, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return math.Inf(1), RenderStats{}, ErrInterrupted
	}

	start := time.Now()
	fc, err := fs.renderer.BeginFrame(fb)
	if err != nil {
		return math.Inf(1), RenderStats{}, fmt.Errorf("begin frame: %w", err)
	}
	fb.BeginFrame()

	stats := RenderStats{Frame: fc.Frame, Threshold: fc.ErrorThreshold}

	grid := fb.TileGrid()
	var tasks []TileTask
	for y := 0; y < grid.Y; y++ {
		for x := 0; x < grid.X; x++ {
			id := image.Pt(x, y)
			if fb.TileError(id) <= fc.ErrorThreshold {
				stats.TilesSkipped++
				continue
			}
			tasks = append(tasks, TileTask{
				Frame:  fc,
				Tile:   fs.tilePool.Get(id, fb.AccumID(id)),
				TaskID: x + y*grid.X,
			})
		}
	}

	fs.logger.Debugf("frame %d: rendering %d tiles, %d skipped", fc.Frame, len(tasks), stats.TilesSkipped)

	go func() {
		for _, task := range tasks {
			fs.tiles.SubmitTask(task)
		}
	}()

	var firstErr error
	for range tasks {
		result, ok := fs.tiles.GetResult()
		if !ok {
			return math.Inf(1), stats, fmt.Errorf("worker pool closed unexpectedly: %w", ErrInterrupted)
		}
		stats.Jobs += result.Jobs
		if result.Error != nil {
			stats.TilesFailed++
			if firstErr == nil {
				firstErr = fmt.Errorf("tile %v: %w", result.Tile.ID, result.Error)
			}
			fs.logger.Warningf("frame %d: tile %v dropped: %v", fc.Frame, result.Tile.ID, result.Error)
		} else {
			fb.SetTile(result.Tile)
			stats.TilesRendered++
		}
		fs.tilePool.Put(result.Tile)
	}

	fs.renderer.EndFrame(fc, channels)
	stats.Samples = fc.Samples()
	stats.Duration = time.Since(start)

	if firstErr != nil {
		stats.Error = math.Inf(1)
		return stats.Error, stats, firstErr
	}

	stats.Error = fb.EndFrame(fc.ErrorThreshold)
	fs.logger.Debugf("%v", stats)
	return stats.Error, stats, nil
}

// renderTile runs every job of a tile on the job pool
func (fs *FrameScheduler) renderTile(task TileTask) TileResult {
	n := JobsPerTile()
	errs := make([]error, n)
	work := make([]func(), n)
	for i := range work {
		jobID := i
		work[i] = func() {
			errs[jobID] = fs.runJob(task.Frame, task.Tile, jobID)
		}
	}
	fs.jobs.ExecuteAll(work)

	result := TileResult{TaskID: task.TaskID, Tile: task.Tile, Jobs: n}
	for _, err := range errs {
		if err != nil {
			result.Error = err
			break
		}
	}
	return result
}

// runJob renders one job and converts a panic into an error
func (fs *FrameScheduler) runJob(fc *FrameContext, tile *framebuffer.Tile, jobID int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("job %d: %w", jobID, e)
			} else {
				err = fmt.Errorf("job %d: %v", jobID, r)
			}
		}
	}()
	fs.renderer.RenderTile(fc, tile, jobID)
	return nil
}

// Close stops the worker pools. Rendering after Close fails with ErrInterrupted.
func (fs *FrameScheduler) Close() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return
	}
	fs.closed = true
	fs.tiles.Stop()
	fs.jobs.Close()
}
