package scene

import (
	"fmt"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// NewVolumeScene creates a scene holding a single procedural grid volume
// centred at the origin, rendered with a cool to warm transfer function
func NewVolumeScene(field volume.Field, resolution int) (*Scene, error) {
	config := volume.DefaultGridConfig()
	config.Dimensions = [3]int{resolution, resolution, resolution}

	grid, err := volume.NewProceduralGrid(config, field, volume.NewCoolWarm())
	if err != nil {
		return nil, fmt.Errorf("volume scene: %w", err)
	}
	return NewVolumeSceneFrom(grid), nil
}

// NewVolumeSceneFrom creates a scene around an existing volume
func NewVolumeSceneFrom(v volume.Volume) *Scene {
	s := New()
	s.CameraConfig = camera.Config{
		Center:      core.NewVec3(1.2, 0.9, 1.6),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
	}
	s.Background = core.Splat(0.1)
	s.AddVolume(v)
	s.Preprocess()
	return s
}
