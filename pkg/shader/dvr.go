package shader

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
)

// DVRConfig configures direct volume rendering
type DVRConfig struct {
	OpacityCutoff float64 // Ray marching stops once accumulated opacity reaches this value
}

// DefaultDVRConfig returns the default volume rendering settings
func DefaultDVRConfig() DVRConfig {
	return DVRConfig{OpacityCutoff: 0.99}
}

// DVR ray marches the first volume of the scene front to back
type DVR struct {
	config DVRConfig
}

// NewDVR creates a direct volume rendering shader
func NewDVR(config DVRConfig) *DVR {
	if config.OpacityCutoff <= 0 {
		config.OpacityCutoff = DefaultDVRConfig().OpacityCutoff
	}
	return &DVR{config: config}
}

func (d *DVR) RenderSample(job *renderer.Job, s *renderer.Sample) {
	fc := job.Frame
	s.RGB = fc.Background

	vol := fc.Volume
	if vol == nil {
		return
	}

	ray := s.Ray
	if !vol.Intersect(&ray) {
		return
	}

	rate := vol.SamplingRate()
	ray.T0 += job.Random.Float64() * vol.SamplingStep() / rate

	tf := vol.TransferFunction()
	color := core.Vec3{}
	opacity := 0.0
	for ray.T0 < ray.T {
		value := vol.ComputeSample(ray.At(ray.T0))
		clamped := max(0, min(1, tf.Opacity(value)/rate))

		color = color.Add(tf.Color(value).Multiply((1 - opacity) * clamped))
		opacity += (1 - opacity) * clamped
		if opacity >= d.config.OpacityCutoff {
			break
		}
		vol.Advance(&ray)
	}

	s.RGB = s.RGB.Multiply(1 - opacity).Add(color.Multiply(opacity))
	s.Alpha = opacity
}
