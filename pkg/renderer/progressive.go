package renderer

import (
	"context"

	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/log"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	MaxFrames int                 // Maximum number of frames to accumulate
	Channels  framebuffer.Channel // Channels passed to the renderer at the end of each frame
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		MaxFrames: 16,
		Channels:  framebuffer.ColorChannel | framebuffer.AccumChannel | framebuffer.VarianceChannel,
	}
}

// FrameResult contains the result of a single frame
type FrameResult struct {
	Frame     int // Frame index of the renderer, same as Stats.Frame
	Stats     RenderStats
	Converged bool
	IsLast    bool
}

// Progressive renders frames into one framebuffer until it converges
type Progressive struct {
	scheduler *FrameScheduler
	fb        FrameBuffer
	config    ProgressiveConfig
	logger    log.Logger
}

// NewProgressive creates a progressive driver over scheduler and fb
func NewProgressive(scheduler *FrameScheduler, fb FrameBuffer, config ProgressiveConfig, logger log.Logger) *Progressive {
	if config.MaxFrames <= 0 {
		config.MaxFrames = 1
	}
	if logger == nil {
		logger = log.New("progressive")
	}
	return &Progressive{
		scheduler: scheduler,
		fb:        fb,
		config:    config,
		logger:    logger,
	}
}

// Render renders frames in the background and reports each one on the
// returned channel. Rendering stops once the frame error reaches the
// threshold, after MaxFrames frames, on the first error, or when ctx is
// cancelled. Cancellation is checked between frames.
func (p *Progressive) Render(ctx context.Context) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		p.logger.Infof("starting progressive rendering with up to %d frames", p.config.MaxFrames)

		for rendered := 0; rendered < p.config.MaxFrames; rendered++ {
			select {
			case <-ctx.Done():
				p.logger.Noticef("rendering cancelled after %d frames", rendered)
				errChan <- ctx.Err()
				return
			default:
			}

			_, stats, err := p.scheduler.RenderFrame(p.fb, p.config.Channels)
			if err != nil {
				errChan <- err
				return
			}

			converged := stats.Converged()
			result := FrameResult{
				Frame:     stats.Frame,
				Stats:     stats,
				Converged: converged,
				IsLast:    converged || rendered+1 == p.config.MaxFrames,
			}
			p.logger.Infof("frame %d completed in %v (error %.5f)", stats.Frame, stats.Duration, stats.Error)

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if converged {
				p.logger.Infof("converged after %d frames", rendered+1)
				return
			}
		}
	}()

	return frameChan, errChan
}
