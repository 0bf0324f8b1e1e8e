package renderer

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/simd"
)

// SampleBatch holds one sample per lane in structure-of-arrays layout.
// All lanes share the same sample index when a shader runs, while pixel
// positions are independent.
type SampleBatch struct {
	X, Y, Z    []int
	Rays       []core.Ray
	R, G, B    []float64
	Alpha      []float64
	Depth      []float64
	TileOffset []int
}

// NewSampleBatch allocates a batch of width lanes with default values
func NewSampleBatch(width int) *SampleBatch {
	b := &SampleBatch{
		X:          make([]int, width),
		Y:          make([]int, width),
		Z:          make([]int, width),
		Rays:       make([]core.Ray, width),
		R:          make([]float64, width),
		G:          make([]float64, width),
		B:          make([]float64, width),
		Alpha:      make([]float64, width),
		Depth:      make([]float64, width),
		TileOffset: make([]int, width),
	}
	b.Reset()
	return b
}

// Width returns the number of lanes
func (b *SampleBatch) Width() int {
	return len(b.X)
}

// Reset restores every lane to a disabled default sample
func (b *SampleBatch) Reset() {
	simd.FillInts(b.TileOffset, -1)
	simd.FillInts(b.X, 0)
	simd.FillInts(b.Y, 0)
	simd.FillInts(b.Z, 0)
	b.ResetColor()
	for i := range b.Rays {
		b.Rays[i] = core.Ray{GeomID: core.NoHit}
	}
}

// ResetColor restores the shading outputs of every lane
func (b *SampleBatch) ResetColor() {
	simd.Fill(b.R, 0)
	simd.Fill(b.G, 0)
	simd.Fill(b.B, 0)
	simd.Fill(b.Alpha, 0)
	simd.Fill(b.Depth, math.Inf(1))
}

// SetRGB sets the color of lane i
func (b *SampleBatch) SetRGB(i int, rgb core.Vec3) {
	b.R[i], b.G[i], b.B[i] = rgb.X, rgb.Y, rgb.Z
}

// RGB returns the color of lane i
func (b *SampleBatch) RGB(i int) core.Vec3 {
	return core.NewVec3(b.R[i], b.G[i], b.B[i])
}

// ScaleRGB multiplies the color of every lane by s
func (b *SampleBatch) ScaleRGB(s float64) {
	simd.Scale(b.R, s)
	simd.Scale(b.G, s)
	simd.Scale(b.B, s)
}

// Lane returns a view of lane i whose fields point into the batch
func (b *SampleBatch) Lane(i int) SampleRef {
	return SampleRef{
		Lane:       i,
		X:          &b.X[i],
		Y:          &b.Y[i],
		Z:          &b.Z[i],
		Ray:        &b.Rays[i],
		R:          &b.R[i],
		G:          &b.G[i],
		B:          &b.B[i],
		Alpha:      &b.Alpha[i],
		Depth:      &b.Depth[i],
		TileOffset: &b.TileOffset[i],
	}
}

// SampleRef is a per-lane view of a batch. Writes through its fields are
// visible in the batch.
type SampleRef struct {
	Lane       int
	X, Y, Z    *int
	Ray        *core.Ray
	R, G, B    *float64
	Alpha      *float64
	Depth      *float64
	TileOffset *int
}

// SetRGB sets the color of the lane
func (s SampleRef) SetRGB(rgb core.Vec3) {
	*s.R, *s.G, *s.B = rgb.X, rgb.Y, rgb.Z
}

// RGB returns the color of the lane
func (s SampleRef) RGB() core.Vec3 {
	return core.NewVec3(*s.R, *s.G, *s.B)
}

// Predicate derives a lane mask from the current batch state
type Predicate func(b *SampleBatch) simd.Mask

// Enabled selects lanes that map to a tile pixel
func Enabled(b *SampleBatch) simd.Mask {
	var m simd.Mask
	for i, offset := range b.TileOffset {
		m = m.Set(i, offset >= 0)
	}
	return m
}

// Hit selects enabled lanes whose ray hit geometry
func Hit(b *SampleBatch) simd.Mask {
	var m simd.Mask
	for i := range b.Rays {
		m = m.Set(i, b.TileOffset[i] >= 0 && b.Rays[i].HitSomething())
	}
	return m
}

// Miss selects enabled lanes whose ray did not hit anything
func Miss(b *SampleBatch) simd.Mask {
	var m simd.Mask
	for i := range b.Rays {
		m = m.Set(i, b.TileOffset[i] >= 0 && !b.Rays[i].HitSomething())
	}
	return m
}

// Mask evaluates pred against the current batch state; a nil predicate selects every lane
func (b *SampleBatch) Mask(pred Predicate) simd.Mask {
	if pred == nil {
		return simd.FullMask(b.Width())
	}
	return pred(b)
}

// ForEachSample calls fn for every lane selected by pred. The predicate is
// evaluated once, when ForEachSample is called.
func (b *SampleBatch) ForEachSample(pred Predicate, fn func(s SampleRef)) {
	b.Mask(pred).ForEach(func(lane int) {
		fn(b.Lane(lane))
	})
}

// ForEachSampleI calls fn with the lane index for every lane selected by pred
func (b *SampleBatch) ForEachSampleI(pred Predicate, fn func(lane int, s SampleRef)) {
	b.Mask(pred).ForEach(func(lane int) {
		fn(lane, b.Lane(lane))
	})
}
