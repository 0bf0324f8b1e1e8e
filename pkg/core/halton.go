package core

// HaltonTableSize is the number of precomputed entries per Halton base.
// Indices wrap around modulo the table size.
const HaltonTableSize = 1 << 12

var (
	halton2 = buildHaltonTable(2)
	halton3 = buildHaltonTable(3)
	halton5 = buildHaltonTable(5)
)

// RadicalInverse mirrors the base-b digits of index around the decimal point,
// giving the index-th element of the Halton sequence for base b in [0, 1)
func RadicalInverse(base, index int) float64 {
	invBase := 1.0 / float64(base)
	f := invBase
	result := 0.0
	for index > 0 {
		result += f * float64(index%base)
		index /= base
		f *= invBase
	}
	return result
}

func buildHaltonTable(base int) []float64 {
	table := make([]float64, HaltonTableSize)
	for i := range table {
		table[i] = RadicalInverse(base, i)
	}
	return table
}

func haltonIndex(index int) int {
	index %= HaltonTableSize
	if index < 0 {
		index += HaltonTableSize
	}
	return index
}

// Halton2 returns the precomputed base-2 Halton value for index
func Halton2(index int) float64 { return halton2[haltonIndex(index)] }

// Halton3 returns the precomputed base-3 Halton value for index
func Halton3(index int) float64 { return halton3[haltonIndex(index)] }

// Halton5 returns the precomputed base-5 Halton value for index
func Halton5(index int) float64 { return halton5[haltonIndex(index)] }
