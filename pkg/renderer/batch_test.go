package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/simd"
)

func TestNewSample_Defaults(t *testing.T) {
	s := NewSample()

	if s.Enabled() {
		t.Error("Expected a new sample to be disabled")
	}
	if s.RGB != (core.Vec3{}) || s.Alpha != 0 {
		t.Errorf("Expected black transparent sample, got %v alpha %f", s.RGB, s.Alpha)
	}
	if !math.IsInf(s.Depth, 1) {
		t.Errorf("Expected depth +Inf, got %f", s.Depth)
	}
}

func TestSampleBatch_Reset(t *testing.T) {
	b := NewSampleBatch(4)
	b.TileOffset[1] = 3
	b.SetRGB(1, core.NewVec3(1, 2, 3))
	b.Depth[1] = 5
	b.Rays[1].GeomID = 2

	b.Reset()

	if b.TileOffset[1] != -1 {
		t.Errorf("Expected disabled lane, got offset %d", b.TileOffset[1])
	}
	if b.RGB(1) != (core.Vec3{}) {
		t.Errorf("Expected black lane, got %v", b.RGB(1))
	}
	if !math.IsInf(b.Depth[1], 1) {
		t.Errorf("Expected depth +Inf, got %f", b.Depth[1])
	}
	if b.Rays[1].HitSomething() {
		t.Error("Expected ray without hit after reset")
	}
}

func TestSampleBatch_LaneWritesAreVisible(t *testing.T) {
	b := NewSampleBatch(4)
	ref := b.Lane(2)

	ref.SetRGB(core.NewVec3(0.1, 0.2, 0.3))
	*ref.Alpha = 1
	ref.Ray.GeomID = 7

	if b.RGB(2) != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected color written through lane view, got %v", b.RGB(2))
	}
	if b.Alpha[2] != 1 {
		t.Errorf("Expected alpha 1, got %f", b.Alpha[2])
	}
	if b.Rays[2].GeomID != 7 {
		t.Errorf("Expected geometry 7, got %d", b.Rays[2].GeomID)
	}
}

func newPredicateBatch() *SampleBatch {
	b := NewSampleBatch(4)
	for i := range b.TileOffset {
		b.TileOffset[i] = i
	}
	b.TileOffset[3] = -1
	b.Rays[0].GeomID = 0
	b.Rays[1].GeomID = 4
	return b
}

func TestPredicates(t *testing.T) {
	b := newPredicateBatch()

	tests := []struct {
		name     string
		pred     Predicate
		expected simd.Mask
	}{
		{"nil selects all lanes", nil, 0b1111},
		{"enabled", Enabled, 0b0111},
		{"hit", Hit, 0b0011},
		{"miss", Miss, 0b0100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Mask(tt.pred); got != tt.expected {
				t.Errorf("Expected mask %04b, got %04b", tt.expected, got)
			}
		})
	}
}

func TestPredicates_ReevaluatedAfterStateChange(t *testing.T) {
	b := newPredicateBatch()

	// Miss lanes get disabled, as a shader does after writing the background
	b.ForEachSample(Miss, func(s SampleRef) {
		s.Ray.Disable()
		*s.TileOffset = -1
	})

	if got := Miss(b); got.Any() {
		t.Errorf("Expected no miss lanes after disabling them, got %04b", got)
	}
	if got := Enabled(b); got != 0b0011 {
		t.Errorf("Expected lanes 0 and 1 enabled, got %04b", got)
	}

	b.Rays[0].GeomID = core.NoHit
	if got := Hit(b); got != 0b0010 {
		t.Errorf("Expected only lane 1 to hit, got %04b", got)
	}
}

func TestForEachSampleI_Order(t *testing.T) {
	b := newPredicateBatch()

	var lanes []int
	b.ForEachSampleI(Enabled, func(lane int, s SampleRef) {
		if s.Lane != lane {
			t.Errorf("Expected view of lane %d, got %d", lane, s.Lane)
		}
		lanes = append(lanes, lane)
	})

	if len(lanes) != 3 || lanes[0] != 0 || lanes[1] != 1 || lanes[2] != 2 {
		t.Errorf("Expected lanes [0 1 2], got %v", lanes)
	}
}
