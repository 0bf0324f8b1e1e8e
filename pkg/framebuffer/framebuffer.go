package framebuffer

import (
	"image"
	"math"
	"sync"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Channel selects the buffers a framebuffer maintains
type Channel uint8

const (
	ColorChannel Channel = 1 << iota // Color and alpha
	DepthChannel                     // Depth of the last merged pass
	AccumChannel                     // Accumulate passes instead of overwriting
	VarianceChannel                  // Track per-tile error between passes
)

// Has reports whether all channels in other are set
func (c Channel) Has(other Channel) bool {
	return c&other == other
}

// FrameBuffer stores the image, accumulates passes per tile and estimates
// how much each tile still changes between passes.
//
// SetTile may be called concurrently for different tiles; every merge only
// touches the pixels and bookkeeping of its own tile.
type FrameBuffer struct {
	width, height int
	channels      Channel
	grid          image.Point

	color []core.Vec3 // Sum of merged colors
	alpha []float64   // Sum of merged alphas
	depth []float64

	accumID   []int     // Passes merged per tile
	tileError []float64 // Error estimate per tile

	mu        sync.Mutex
	frameID   int
	converged int
}

// New creates a framebuffer of the given size
func New(width, height int, channels Channel) *FrameBuffer {
	grid := image.Pt((width+TileSize-1)/TileSize, (height+TileSize-1)/TileSize)
	fb := &FrameBuffer{
		width:     width,
		height:    height,
		channels:  channels | ColorChannel,
		grid:      grid,
		color:     make([]core.Vec3, width*height),
		alpha:     make([]float64, width*height),
		depth:     make([]float64, width*height),
		accumID:   make([]int, grid.X*grid.Y),
		tileError: make([]float64, grid.X*grid.Y),
	}
	fb.Clear()
	return fb
}

// Size returns the image size in pixels
func (fb *FrameBuffer) Size() (int, int) {
	return fb.width, fb.height
}

// Channels returns the channels maintained by the framebuffer
func (fb *FrameBuffer) Channels() Channel {
	return fb.channels
}

// Clear discards all accumulated data
func (fb *FrameBuffer) Clear() {
	for i := range fb.color {
		fb.color[i] = core.Vec3{}
		fb.alpha[i] = 0
		fb.depth[i] = math.Inf(1)
	}
	for i := range fb.accumID {
		fb.accumID[i] = 0
		fb.tileError[i] = math.Inf(1)
	}
	fb.mu.Lock()
	fb.frameID = 0
	fb.converged = 0
	fb.mu.Unlock()
}

// BeginFrame marks the start of a new frame
func (fb *FrameBuffer) BeginFrame() {
	fb.mu.Lock()
	fb.frameID++
	fb.mu.Unlock()
}

// FrameID returns the number of frames begun since the last Clear
func (fb *FrameBuffer) FrameID() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.frameID
}

// TileGrid returns the number of tiles along X and Y
func (fb *FrameBuffer) TileGrid() image.Point {
	return fb.grid
}

// TileError returns the error estimate of a tile. Tiles that have not been
// rendered often enough to estimate an error report +Inf.
func (fb *FrameBuffer) TileError(id image.Point) float64 {
	if !fb.channels.Has(VarianceChannel) || !fb.channels.Has(AccumChannel) {
		return math.Inf(1)
	}
	return fb.tileError[fb.tileIndex(id)]
}

// AccumID returns the number of passes merged into a tile, or -1 when
// the framebuffer does not accumulate
func (fb *FrameBuffer) AccumID(id image.Point) int {
	if !fb.channels.Has(AccumChannel) {
		return -1
	}
	return fb.accumID[fb.tileIndex(id)]
}

// SetTile merges a rendered tile. A tile with AccumID <= 0 replaces the
// stored pixels, otherwise it is added to the accumulated passes.
// Pixels outside the image are ignored.
func (fb *FrameBuffer) SetTile(tile *Tile) {
	region := tile.Region.Intersect(image.Rect(0, 0, fb.width, fb.height))
	if region.Empty() {
		return
	}

	reset := tile.AccumID <= 0
	passes := 1
	if !reset {
		passes = tile.AccumID + 1
	}

	errorSum := 0.0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			offset := (x - tile.Region.Min.X) + (y-tile.Region.Min.Y)*TileSize
			i := x + y*fb.width
			rgb := tile.Color(offset)

			if reset {
				fb.color[i] = rgb
				fb.alpha[i] = tile.A[offset]
			} else {
				before := fb.color[i].Multiply(1 / float64(passes-1))
				fb.color[i] = fb.color[i].Add(rgb)
				fb.alpha[i] += tile.A[offset]
				after := fb.color[i].Multiply(1 / float64(passes))
				errorSum += math.Abs(after.Luminance() - before.Luminance())
			}

			if fb.channels.Has(DepthChannel) {
				fb.depth[i] = tile.Z[offset]
			}
		}
	}

	if !fb.channels.Has(AccumChannel) {
		return
	}

	t := fb.tileIndex(tile.ID)
	fb.accumID[t] = passes
	if reset {
		fb.tileError[t] = math.Inf(1)
	} else {
		fb.tileError[t] = errorSum / float64(region.Dx()*region.Dy())
	}
}

// EndFrame returns the mean tile error of the frame and records how many
// tiles are at or below errorThreshold
func (fb *FrameBuffer) EndFrame(errorThreshold float64) float64 {
	total := 0.0
	converged := 0
	for t := range fb.tileError {
		err := fb.TileError(image.Pt(t%fb.grid.X, t/fb.grid.X))
		total += err
		if err <= errorThreshold {
			converged++
		}
	}

	fb.mu.Lock()
	fb.converged = converged
	fb.mu.Unlock()

	if len(fb.tileError) == 0 {
		return 0
	}
	return total / float64(len(fb.tileError))
}

// ConvergedTiles returns the number of tiles at or below the threshold of the last EndFrame
func (fb *FrameBuffer) ConvergedTiles() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.converged
}

// Pixel returns the averaged color and alpha at (x, y); y = 0 is the bottom row
func (fb *FrameBuffer) Pixel(x, y int) (core.Vec3, float64) {
	i := x + y*fb.width
	n := fb.passes(x, y)
	return fb.color[i].Multiply(1 / n), fb.alpha[i] / n
}

// Depth returns the depth at (x, y), +Inf when nothing was hit or depth is not tracked
func (fb *FrameBuffer) Depth(x, y int) float64 {
	return fb.depth[x+y*fb.width]
}

// Image converts the framebuffer to an opaque 8-bit image with the given gamma.
// Image row 0 is the top of the frame.
func (fb *FrameBuffer) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		row := fb.height - 1 - y
		for x := 0; x < fb.width; x++ {
			rgb, _ := fb.Pixel(x, y)
			c := rgb.Clamp(0, 1)
			if gamma > 0 && gamma != 1 {
				c = c.GammaCorrect(gamma)
			}
			o := img.PixOffset(x, row)
			img.Pix[o+0] = uint8(c.X*255 + 0.5)
			img.Pix[o+1] = uint8(c.Y*255 + 0.5)
			img.Pix[o+2] = uint8(c.Z*255 + 0.5)
			img.Pix[o+3] = 255
		}
	}
	return img
}

// passes returns how many passes are summed into the pixel at (x, y)
func (fb *FrameBuffer) passes(x, y int) float64 {
	if !fb.channels.Has(AccumChannel) {
		return 1
	}
	n := fb.accumID[fb.tileIndex(image.Pt(x/TileSize, y/TileSize))]
	if n < 1 {
		return 1
	}
	return float64(n)
}

func (fb *FrameBuffer) tileIndex(id image.Point) int {
	return id.X + id.Y*fb.grid.X
}
