package renderer

import (
	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// PixelsPerJob is the number of tile pixels one job shades
const PixelsPerJob = 64

// Config is the state a renderer is committed with before rendering frames
type Config struct {
	Camera          camera.Camera
	Scene           Scene
	SamplesPerPixel int
	ErrorThreshold  float64      // Tiles whose error is at or below this value are skipped
	Background      core.Vec3    // Color of rays that leave the scene
	MaxDepth        DepthTexture // Optional far bound for primary rays
	Seed            int64
	LaneWidth       int // Lanes per batch for stream rendering, 0 selects the host width
}

// DefaultConfig returns a configuration without camera or scene
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 1,
		ErrorThreshold:  0,
		Background:      core.NewVec3(1, 1, 1),
		Seed:            42,
	}
}
