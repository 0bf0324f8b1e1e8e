package simd

import "math/bits"

// MaxWidth is the largest lane width a Mask can describe
const MaxWidth = 64

// Mask is a per-lane activity bitset; bit i set means lane i participates
type Mask uint64

// FullMask returns a mask with the first width lanes set
func FullMask(width int) Mask {
	if width >= MaxWidth {
		return ^Mask(0)
	}
	return Mask(1)<<uint(width) - 1
}

// Set returns the mask with lane i set to on
func (m Mask) Set(i int, on bool) Mask {
	if on {
		return m | Mask(1)<<uint(i)
	}
	return m &^ (Mask(1) << uint(i))
}

// Has reports whether lane i is set
func (m Mask) Has(i int) bool {
	return m&(Mask(1)<<uint(i)) != 0
}

// Any reports whether at least one lane is set
func (m Mask) Any() bool {
	return m != 0
}

// None reports whether no lane is set
func (m Mask) None() bool {
	return m == 0
}

// Count returns the number of set lanes
func (m Mask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// ForEach calls fn for every set lane in ascending order
func (m Mask) ForEach(fn func(lane int)) {
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		fn(bits.TrailingZeros64(rest))
	}
}
