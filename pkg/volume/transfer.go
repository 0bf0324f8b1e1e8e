package volume

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// PiecewiseLinear is a transfer function built from evenly spaced color and
// opacity control points over a value range
type PiecewiseLinear struct {
	Colors    []core.Vec3
	Opacities []float64
	Min, Max  float64 // Value range mapped onto the control points
}

// NewPiecewiseLinear creates a transfer function over [lo, hi]
func NewPiecewiseLinear(colors []core.Vec3, opacities []float64, lo, hi float64) *PiecewiseLinear {
	return &PiecewiseLinear{Colors: colors, Opacities: opacities, Min: lo, Max: hi}
}

// NewGrayscaleRamp returns a transfer function from transparent black to opaque white over [0,1]
func NewGrayscaleRamp() *PiecewiseLinear {
	return NewPiecewiseLinear(
		[]core.Vec3{core.Splat(0), core.Splat(1)},
		[]float64{0, 1},
		0, 1,
	)
}

// NewCoolWarm returns a blue to red transfer function with a linear opacity ramp over [0,1]
func NewCoolWarm() *PiecewiseLinear {
	return NewPiecewiseLinear(
		[]core.Vec3{
			core.NewVec3(0.23, 0.30, 0.75),
			core.NewVec3(0.87, 0.87, 0.87),
			core.NewVec3(0.71, 0.02, 0.15),
		},
		[]float64{0, 0.05, 0.4},
		0, 1,
	)
}

// Color returns the interpolated color for value
func (tf *PiecewiseLinear) Color(value float64) core.Vec3 {
	if len(tf.Colors) == 0 {
		return core.Vec3{}
	}
	i, t := tf.locate(value, len(tf.Colors))
	if i+1 >= len(tf.Colors) {
		return tf.Colors[len(tf.Colors)-1]
	}
	return tf.Colors[i].Multiply(1 - t).Add(tf.Colors[i+1].Multiply(t))
}

// Opacity returns the interpolated opacity for value
func (tf *PiecewiseLinear) Opacity(value float64) float64 {
	if len(tf.Opacities) == 0 {
		return 0
	}
	i, t := tf.locate(value, len(tf.Opacities))
	if i+1 >= len(tf.Opacities) {
		return tf.Opacities[len(tf.Opacities)-1]
	}
	return tf.Opacities[i]*(1-t) + tf.Opacities[i+1]*t
}

// locate returns the control point segment and the position within it for value
func (tf *PiecewiseLinear) locate(value float64, points int) (int, float64) {
	if points < 2 || tf.Max <= tf.Min {
		return 0, 0
	}
	x := (value - tf.Min) / (tf.Max - tf.Min)
	x = math.Max(0, math.Min(1, x)) * float64(points-1)
	i := min(int(x), points-2)
	return i, x - float64(i)
}
