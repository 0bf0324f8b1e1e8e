package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1)
	forward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		ray      core.Ray
		hit      bool
		expectT  float64
		expectNg core.Vec3
	}{
		{
			name:     "from outside takes the near side",
			ray:      segment(core.NewVec3(0, 0, -5), forward, 0, math.Inf(1)),
			hit:      true,
			expectT:  4,
			expectNg: core.NewVec3(0, 0, -1),
		},
		{
			name:     "from inside takes the far side",
			ray:      segment(core.NewVec3(0, 0, 0), forward, 0.001, math.Inf(1)),
			hit:      true,
			expectT:  1,
			expectNg: core.NewVec3(0, 0, 1),
		},
		{
			name:     "segment starting past the near side",
			ray:      segment(core.NewVec3(0, 0, -5), forward, 4.5, math.Inf(1)),
			hit:      true,
			expectT:  6,
			expectNg: core.NewVec3(0, 0, 1),
		},
		{
			name: "segment ending before the sphere",
			ray:  segment(core.NewVec3(0, 0, -5), forward, 0, 3.9),
		},
		{
			name: "passes beside",
			ray:  segment(core.NewVec3(0, 2, -5), forward, 0, math.Inf(1)),
		},
		{
			name:     "grazing",
			ray:      segment(core.NewVec3(0, 1, -5), forward, 0, math.Inf(1)),
			hit:      true,
			expectT:  5,
			expectNg: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			hit := sphere.Intersect(&ray)
			if hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, hit)
			}
			if !hit {
				if ray != tt.ray {
					t.Errorf("Expected ray unchanged on miss, got %+v", ray)
				}
				return
			}
			if math.Abs(ray.T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectT, ray.T)
			}
			if !vecNear(ray.Ng, tt.expectNg) {
				t.Errorf("Expected normal %v, got %v", tt.expectNg, ray.Ng)
			}
			if ray.GeomID != core.NoHit {
				t.Errorf("Expected GeomID to be left to the caller, got %d", ray.GeomID)
			}
		})
	}
}

func TestSphere_IntersectKeepsCloserHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1)
	// Something at t=2 was already hit; the sphere at t=4 lies behind it
	ray := segment(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0, 2)
	if sphere.Intersect(&ray) {
		t.Errorf("Expected sphere behind the current hit to be ignored, got t=%f", ray.T)
	}
}

func TestSphere_Bounds(t *testing.T) {
	bounds := NewSphere(core.NewVec3(1, 2, 3), 0.5).Bounds()
	if bounds.Min != core.NewVec3(0.5, 1.5, 2.5) || bounds.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Unexpected bounds %v", bounds)
	}
}
