package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

func TestBox_FacesPointOutward(t *testing.T) {
	box := NewBox(core.NewVec3(1, 2, 3), core.NewVec3(0.5, 1, 1.5), core.NewVec3(0.3, 0.7, 0.2))
	for i, face := range box.faces {
		center := face.Corner.Add(face.U.Multiply(0.5)).Add(face.V.Multiply(0.5))
		if center.Subtract(box.Center).Dot(face.Normal) <= 0 {
			t.Errorf("Face %d normal %v points into the box", i, face.Normal)
		}
	}
}

func TestBox_Intersect_AxisAligned(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		hit      bool
		expectT  float64
		expectNg core.Vec3
	}{
		{"toward -Z face", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), true, 2, core.NewVec3(0, 0, -1)},
		{"toward +Z face", core.NewVec3(0.2, -0.3, 4), core.NewVec3(0, 0, -1), true, 3, core.NewVec3(0, 0, 1)},
		{"toward -X face", core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0), true, 2, core.NewVec3(-1, 0, 0)},
		{"toward +Y face", core.NewVec3(0, 5, 0.5), core.NewVec3(0, -1, 0), true, 4, core.NewVec3(0, 1, 0)},
		{"from inside", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), true, 1, core.NewVec3(1, 0, 0)},
		{"passes above", core.NewVec3(0, 3, -3), core.NewVec3(0, 0, 1), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := segment(tt.origin, tt.dir, 0.001, 10)
			if got := box.Intersect(&ray); got != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, got)
			}
			if !tt.hit {
				return
			}
			if math.Abs(ray.T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectT, ray.T)
			}
			if !vecNear(ray.Ng, tt.expectNg) {
				t.Errorf("Expected normal %v, got %v", tt.expectNg, ray.Ng)
			}
		})
	}
}

func TestBox_Intersect_Rotated(t *testing.T) {
	// Rotated 45° about Y the box presents an edge to a ray along +Z
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0))

	ray := segment(core.NewVec3(1e-4, 0, -3), core.NewVec3(0, 0, 1), 0.001, 10)
	if !box.Intersect(&ray) {
		t.Fatal("Expected ray to hit rotated box")
	}
	if math.Abs(ray.T-(3-math.Sqrt2)) > 1e-3 {
		t.Errorf("Expected t=%f at the leading edge, got %f", 3-math.Sqrt2, ray.T)
	}

	// Off-centre the ray meets a single face whose normal lies in the XZ diagonal
	ray = segment(core.NewVec3(0.5, 0, -3), core.NewVec3(0, 0, 1), 0.001, 10)
	if !box.Intersect(&ray) {
		t.Fatal("Expected off-centre ray to hit rotated box")
	}
	if math.Abs(math.Abs(ray.Ng.X)-math.Sqrt2/2) > 1e-6 || math.Abs(ray.Ng.Z+math.Sqrt2/2) > 1e-6 {
		t.Errorf("Expected diagonal normal facing -Z, got %v", ray.Ng)
	}
}

func TestBox_Bounds(t *testing.T) {
	aligned := NewAxisAlignedBox(core.NewVec3(2, 3, 4), core.NewVec3(1, 2, 1.5)).Bounds()
	if !vecNear(aligned.Min, core.NewVec3(1, 1, 2.5)) || !vecNear(aligned.Max, core.NewVec3(3, 5, 5.5)) {
		t.Errorf("Unexpected axis-aligned bounds %v", aligned)
	}

	rotated := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0)).Bounds()
	extent := core.NewVec3(math.Sqrt2, 1, math.Sqrt2)
	if !vecNear(rotated.Min, extent.Negate()) || !vecNear(rotated.Max, extent) {
		t.Errorf("Expected rotated bounds ±%v, got %v", extent, rotated)
	}
}
