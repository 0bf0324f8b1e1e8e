package loaders

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

func writePNG(t *testing.T, img image.Image) string {
	testFile := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()
	return testFile
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	imageData, err := LoadImage(writePNG(t, img))
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor := func(name string, got, expected core.Vec3) {
		const tolerance = 0.01
		if math.Abs(got.X-expected.X) > tolerance ||
			math.Abs(got.Y-expected.Y) > tolerance ||
			math.Abs(got.Z-expected.Z) > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	checkColor("Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1))
	checkColor("Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0))
	checkColor("Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0))
	checkColor("Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1))
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestLoadDepthImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 255}) // Top row: unbounded
	img.SetGray(0, 1, color.Gray{Y: 0})   // Bottom row: near plane

	depth, err := LoadDepthImage(writePNG(t, img), 2, 10)
	if err != nil {
		t.Fatalf("LoadDepthImage failed: %v", err)
	}

	if w, h := depth.Size(); w != 1 || h != 2 {
		t.Fatalf("Expected 1x2 depth buffer, got %dx%d", w, h)
	}
	if depth.At(0, 0) != 2 {
		t.Errorf("Expected bottom row at the near plane, got %f", depth.At(0, 0))
	}
	if !math.IsInf(depth.At(0, 1), 1) {
		t.Errorf("Expected unbounded top row, got %f", depth.At(0, 1))
	}
}

func TestLoadDepthImage_EmptyRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	if _, err := LoadDepthImage(writePNG(t, img), 5, 5); err == nil {
		t.Error("Expected error for an empty depth range")
	}
}
