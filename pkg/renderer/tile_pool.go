package renderer

import (
	"image"
	"sync"

	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
)

// TilePool recycles tile buffers between frames
type TilePool struct {
	pool sync.Pool
}

// NewTilePool creates an empty tile pool
func NewTilePool() *TilePool {
	return &TilePool{
		pool: sync.Pool{
			New: func() any {
				return framebuffer.NewTile()
			},
		},
	}
}

// Get returns a cleared tile prepared for grid position id
func (p *TilePool) Get(id image.Point, accumID int) *framebuffer.Tile {
	tile := p.pool.Get().(*framebuffer.Tile)
	tile.Reset()
	tile.Begin(id, accumID)
	return tile
}

// Put returns a tile to the pool
func (p *TilePool) Put(tile *framebuffer.Tile) {
	if tile != nil {
		p.pool.Put(tile)
	}
}
