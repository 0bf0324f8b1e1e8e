package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Frame         int           // 0-based frame index of the renderer
	TilesRendered int           // Tiles whose jobs ran and were merged
	TilesSkipped  int           // Tiles skipped because they had converged
	TilesFailed   int           // Tiles dropped because a job failed
	Jobs          int           // Jobs executed
	Samples       int64         // Samples shaded
	Duration      time.Duration // Wall time of the frame
	Error         float64       // Mean tile error reported by the framebuffer
	Threshold     float64       // Error threshold of the frame
}

// Converged reports whether the frame error reached the threshold
func (s RenderStats) Converged() bool {
	return s.Error <= s.Threshold
}

// SamplesPerSecond returns the shading throughput of the frame
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Samples) / s.Duration.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("frame %d: %d tiles (%d skipped, %d failed), %d jobs, %d samples in %v, error %.5f",
		s.Frame, s.TilesRendered, s.TilesSkipped, s.TilesFailed, s.Jobs, s.Samples, s.Duration, s.Error)
}
