package simd

import "math/rand"

// Scale multiplies every lane of v by s in place
func Scale(v []float64, s float64) {
	for i := range v {
		v[i] *= s
	}
}

// Fill sets every lane of v to x
func Fill(v []float64, x float64) {
	for i := range v {
		v[i] = x
	}
}

// FillInts sets every lane of v to x
func FillInts(v []int, x int) {
	for i := range v {
		v[i] = x
	}
}

// Uniform fills v with independent uniform values in [0, 1) drawn from random
func Uniform(v []float64, random *rand.Rand) {
	for i := range v {
		v[i] = random.Float64()
	}
}
