package framebuffer

import (
	"image"
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// TileSize is the edge length of a square tile in pixels
const TileSize = 64

// TilePixels is the number of pixels in one tile
const TilePixels = TileSize * TileSize

// Tile is a square block of pixels rendered as one unit of work.
// Pixel (x, y) of the region is stored at offset x + y*TileSize.
type Tile struct {
	ID      image.Point     // Tile coordinates in the tile grid
	Region  image.Rectangle // Pixel bounds, may overhang the image
	AccumID int             // Accumulation pass of the tile, negative on the first pass or without accumulation

	R, G, B, A []float64 // Color and alpha per pixel
	Z          []float64 // Depth per pixel
}

// NewTile allocates a tile with default pixel values
func NewTile() *Tile {
	t := &Tile{
		R: make([]float64, TilePixels),
		G: make([]float64, TilePixels),
		B: make([]float64, TilePixels),
		A: make([]float64, TilePixels),
		Z: make([]float64, TilePixels),
	}
	t.Reset()
	return t
}

// Reset clears the pixel data: black, transparent and infinitely far away
func (t *Tile) Reset() {
	for i := range t.R {
		t.R[i], t.G[i], t.B[i], t.A[i] = 0, 0, 0, 0
		t.Z[i] = math.Inf(1)
	}
	t.AccumID = -1
}

// Begin prepares the tile for rendering the tile at id of the grid
func (t *Tile) Begin(id image.Point, accumID int) {
	t.ID = id
	t.Region = image.Rect(id.X*TileSize, id.Y*TileSize, (id.X+1)*TileSize, (id.Y+1)*TileSize)
	t.AccumID = accumID
}

// Set overwrites the pixel at offset
func (t *Tile) Set(offset int, rgb core.Vec3, alpha, depth float64) {
	t.R[offset] = rgb.X
	t.G[offset] = rgb.Y
	t.B[offset] = rgb.Z
	t.A[offset] = alpha
	t.Z[offset] = depth
}

// Color returns the color at offset
func (t *Tile) Color(offset int) core.Vec3 {
	return core.NewVec3(t.R[offset], t.G[offset], t.B[offset])
}
