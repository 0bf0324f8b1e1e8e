package renderer

// PixelOrder lists the pixels of a square tile along a Morton (Z-order)
// curve. Consecutive runs of indices cover compact blocks of the tile, so
// jobs that take a contiguous slice of the order touch nearby pixels.
type PixelOrder struct {
	Size int   // Edge length of the tile
	X, Y []int // Pixel offsets within the tile, indexed by order position
}

// NewPixelOrder builds the Morton order for a size×size tile. Sizes that are
// not powers of two walk the curve of the next power of two and drop the
// positions that fall outside the tile, so the table is a bijection for any size.
func NewPixelOrder(size int) *PixelOrder {
	order := &PixelOrder{
		Size: size,
		X:    make([]int, 0, size*size),
		Y:    make([]int, 0, size*size),
	}

	pow2 := 1
	for pow2 < size {
		pow2 <<= 1
	}

	for i := 0; i < pow2*pow2; i++ {
		x, y := deinterleave(uint32(i))
		if x < size && y < size {
			order.X = append(order.X, x)
			order.Y = append(order.Y, y)
		}
	}
	return order
}

// Len returns the number of pixels in the order
func (o *PixelOrder) Len() int {
	return len(o.X)
}

// Offset returns the tile buffer offset of the pixel at order position i
func (o *PixelOrder) Offset(i, stride int) int {
	return o.X[i] + o.Y[i]*stride
}

// deinterleave splits a Morton code into its even (x) and odd (y) bits
func deinterleave(code uint32) (int, int) {
	return int(compact(code)), int(compact(code >> 1))
}

// compact gathers every second bit of v into the low half
func compact(v uint32) uint32 {
	v &= 0x55555555
	v = (v | (v >> 1)) & 0x33333333
	v = (v | (v >> 2)) & 0x0f0f0f0f
	v = (v | (v >> 4)) & 0x00ff00ff
	v = (v | (v >> 8)) & 0x0000ffff
	return v
}
