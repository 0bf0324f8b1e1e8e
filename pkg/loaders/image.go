package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/go-stream-raytracer/pkg/core"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image
}

// LoadImage loads a PNG, JPEG, TIFF or BMP image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// DepthFromImage maps the red channel of an image linearly onto [near, far].
// White pixels leave primary rays unbounded. The image is flipped so depth
// row 0 is the bottom of the frame, matching screen coordinates.
func DepthFromImage(img *ImageData, near, far float64) *renderer.DepthBuffer {
	depth := renderer.NewDepthBuffer(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		row := img.Height - 1 - y
		for x := 0; x < img.Width; x++ {
			v := img.Pixels[row*img.Width+x].X
			if v >= 1 {
				depth.Data[x+y*img.Width] = math.Inf(1)
				continue
			}
			depth.Data[x+y*img.Width] = near + v*(far-near)
		}
	}
	return depth
}

// LoadDepthImage loads a grayscale depth texture, see DepthFromImage
func LoadDepthImage(filename string, near, far float64) (*renderer.DepthBuffer, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	if far <= near {
		return nil, fmt.Errorf("depth range [%f, %f] is empty", near, far)
	}
	return DepthFromImage(img, near, far), nil
}
