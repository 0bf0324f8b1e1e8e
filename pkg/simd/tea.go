package simd

const teaToFloat = 1.0 / (1 << 32)

// TEA8 scrambles the pair (v0, v1) with eight rounds of the Tiny Encryption Algorithm
func TEA8(v0, v1 uint32) (uint32, uint32) {
	var sum uint32
	for i := 0; i < 8; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}
	return v0, v1
}

// TEA is a lane-wise hashing random generator. Each lane is seeded from its
// own index so lanes produce uncorrelated streams without shared state.
type TEA struct {
	v0, v1 []uint32
}

// NewTEA creates a generator with one lane per entry of idx, all sharing seed
func NewTEA(idx []uint32, seed uint32) *TEA {
	t := &TEA{
		v0: make([]uint32, len(idx)),
		v1: make([]uint32, len(idx)),
	}
	copy(t.v0, idx)
	for i := range t.v1 {
		t.v1[i] = seed
	}
	return t
}

// Width returns the number of lanes
func (t *TEA) Width() int {
	return len(t.v0)
}

// Floats advances every lane and writes two values in [0, 1) per lane into u and v
func (t *TEA) Floats(u, v []float64) {
	for i := range t.v0 {
		t.v0[i], t.v1[i] = TEA8(t.v0[i], t.v1[i])
		u[i] = float64(t.v0[i]) * teaToFloat
		v[i] = float64(t.v1[i]) * teaToFloat
	}
}
