package renderer

import "testing"

func TestPixelOrder_Bijection(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 8, 33, 64} {
		order := NewPixelOrder(size)

		if order.Len() != size*size {
			t.Errorf("size %d: expected %d entries, got %d", size, size*size, order.Len())
			continue
		}

		seen := make([]bool, size*size)
		for i := 0; i < order.Len(); i++ {
			x, y := order.X[i], order.Y[i]
			if x < 0 || x >= size || y < 0 || y >= size {
				t.Fatalf("size %d: entry %d out of range: (%d, %d)", size, i, x, y)
			}
			offset := order.Offset(i, size)
			if seen[offset] {
				t.Fatalf("size %d: pixel (%d, %d) listed twice", size, x, y)
			}
			seen[offset] = true
		}
	}
}

func TestPixelOrder_MortonPrefix(t *testing.T) {
	order := NewPixelOrder(4)
	expected := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {3, 0}, {2, 1}, {3, 1}}

	for i, e := range expected {
		if order.X[i] != e[0] || order.Y[i] != e[1] {
			t.Errorf("entry %d: expected (%d, %d), got (%d, %d)", i, e[0], e[1], order.X[i], order.Y[i])
		}
	}
}

func TestPixelOrder_JobsCoverCompactBlocks(t *testing.T) {
	order := NewPixelOrder(64)

	// Each run of 64 entries covers one 8x8 block
	for job := 0; job < order.Len()/PixelsPerJob; job++ {
		begin := job * PixelsPerJob
		minX, minY := order.X[begin], order.Y[begin]
		for i := begin; i < begin+PixelsPerJob; i++ {
			if order.X[i]/8 != minX/8 || order.Y[i]/8 != minY/8 {
				t.Fatalf("job %d: pixel (%d, %d) outside block of (%d, %d)", job, order.X[i], order.Y[i], minX, minY)
			}
		}
	}
}
