package renderer

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// SampleID identifies one sample of a pixel: its position and the absolute
// sample index across accumulation passes
type SampleID struct {
	X, Y int
	Z    int
}

// Sample is the unit of work of the scalar renderer
type Sample struct {
	ID         SampleID
	Ray        core.Ray
	RGB        core.Vec3
	Alpha      float64
	Depth      float64
	TileOffset int // Offset of the pixel in the tile, negative when the sample is disabled
}

// NewSample creates a disabled sample with default values: black,
// transparent and infinitely far away
func NewSample() Sample {
	return Sample{
		Depth:      math.Inf(1),
		TileOffset: -1,
	}
}

// Enabled reports whether the sample maps to a tile pixel
func (s *Sample) Enabled() bool {
	return s.TileOffset >= 0
}
