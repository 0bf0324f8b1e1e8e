package volume

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// RadialField is 1 at the centre of the volume and falls off linearly to 0 at radius 0.5
func RadialField(p core.Vec3) float64 {
	d := p.Subtract(core.Splat(0.5)).Length()
	return math.Max(0, 1-2*d)
}

// WaveField is a smooth interference pattern of three sine waves in [0,1]
func WaveField(p core.Vec3) float64 {
	const frequency = 3 * math.Pi
	v := math.Sin(p.X*frequency) * math.Sin(p.Y*frequency) * math.Sin(p.Z*frequency)
	return 0.5 + 0.5*v
}

// ConstantField returns a field with the same value everywhere
func ConstantField(value float64) Field {
	return func(core.Vec3) float64 { return value }
}
