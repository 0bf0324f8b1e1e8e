package volume

import (
	"fmt"
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Field is a procedural scalar function over normalized volume coordinates in [0,1]³
type Field func(p core.Vec3) float64

// GridConfig describes a structured grid volume
type GridConfig struct {
	Dimensions   [3]int    // Number of voxels along X, Y and Z
	Bounds       core.AABB // World space extent of the grid
	SamplingStep float64   // Base ray marching distance, 0 for one voxel diagonal
	SamplingRate float64   // Sampling density multiplier
}

// DefaultGridConfig returns a 64³ grid over the unit cube centred at the origin
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Dimensions:   [3]int{64, 64, 64},
		Bounds:       core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(0.5, 0.5, 0.5)),
		SamplingRate: 1.0,
	}
}

// Grid is a structured grid volume with trilinear interpolation
type Grid struct {
	dims         [3]int
	bounds       core.AABB
	data         []float64
	samplingStep float64
	samplingRate float64
	transfer     TransferFunction
}

// NewGrid creates a grid volume from voxel data stored X-fastest
func NewGrid(config GridConfig, data []float64, transfer TransferFunction) (*Grid, error) {
	for axis, n := range config.Dimensions {
		if n < 2 {
			return nil, fmt.Errorf("volume: dimension %d must be at least 2, got %d", axis, n)
		}
	}
	expected := config.Dimensions[0] * config.Dimensions[1] * config.Dimensions[2]
	if len(data) != expected {
		return nil, fmt.Errorf("volume: expected %d voxels, got %d", expected, len(data))
	}
	if transfer == nil {
		return nil, fmt.Errorf("volume: no transfer function")
	}

	g := &Grid{
		dims:         config.Dimensions,
		bounds:       config.Bounds,
		data:         data,
		samplingStep: config.SamplingStep,
		samplingRate: config.SamplingRate,
		transfer:     transfer,
	}
	if g.samplingRate <= 0 {
		g.samplingRate = 1
	}
	if g.samplingStep <= 0 {
		size := g.bounds.Size()
		g.samplingStep = math.Min(size.X/float64(g.dims[0]-1),
			math.Min(size.Y/float64(g.dims[1]-1), size.Z/float64(g.dims[2]-1)))
	}
	return g, nil
}

// NewProceduralGrid fills a grid by evaluating field at every voxel centre
func NewProceduralGrid(config GridConfig, field Field, transfer TransferFunction) (*Grid, error) {
	nx, ny, nz := config.Dimensions[0], config.Dimensions[1], config.Dimensions[2]
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("volume: invalid dimensions %v", config.Dimensions)
	}

	data := make([]float64, nx*ny*nz)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				p := core.NewVec3(
					float64(x)/float64(nx-1),
					float64(y)/float64(ny-1),
					float64(z)/float64(nz-1),
				)
				data[x+nx*(y+ny*z)] = field(p)
			}
		}
	}
	return NewGrid(config, data, transfer)
}

// Bounds returns the world space extent of the grid
func (g *Grid) Bounds() core.AABB {
	return g.bounds
}

// Intersect clips the ray to the grid bounds
func (g *Grid) Intersect(ray *core.Ray) bool {
	tNear, tFar, ok := g.bounds.Intersect(*ray)
	if !ok {
		return false
	}
	ray.T0, ray.T = tNear, tFar
	return true
}

// ComputeSample trilinearly interpolates the voxel data at a world space point.
// Points outside the grid are clamped to the boundary.
func (g *Grid) ComputeSample(point core.Vec3) float64 {
	size := g.bounds.Size()
	local := point.Subtract(g.bounds.Min)

	var base [3]int
	var frac [3]float64
	for axis := 0; axis < 3; axis++ {
		n := g.dims[axis]
		extent := size.Axis(axis)
		c := 0.0
		if extent > 0 {
			c = local.Axis(axis) / extent * float64(n-1)
		}
		c = math.Max(0, math.Min(float64(n-1), c))
		i := min(int(c), n-2)
		base[axis] = i
		frac[axis] = c - float64(i)
	}

	x0, y0, z0 := base[0], base[1], base[2]
	fx, fy, fz := frac[0], frac[1], frac[2]

	c00 := lerp(g.voxel(x0, y0, z0), g.voxel(x0+1, y0, z0), fx)
	c10 := lerp(g.voxel(x0, y0+1, z0), g.voxel(x0+1, y0+1, z0), fx)
	c01 := lerp(g.voxel(x0, y0, z0+1), g.voxel(x0+1, y0, z0+1), fx)
	c11 := lerp(g.voxel(x0, y0+1, z0+1), g.voxel(x0+1, y0+1, z0+1), fx)

	return lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
}

// Advance moves the ray start by SamplingStep / SamplingRate
func (g *Grid) Advance(ray *core.Ray) {
	ray.T0 += g.samplingStep / g.samplingRate
}

// SamplingStep returns the base ray marching distance
func (g *Grid) SamplingStep() float64 {
	return g.samplingStep
}

// SamplingRate returns the sampling density multiplier
func (g *Grid) SamplingRate() float64 {
	return g.samplingRate
}

// TransferFunction returns the transfer function of the volume
func (g *Grid) TransferFunction() TransferFunction {
	return g.transfer
}

func (g *Grid) voxel(x, y, z int) float64 {
	return g.data[x+g.dims[0]*(y+g.dims[1]*z)]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
