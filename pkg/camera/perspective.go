package camera

import (
	"math"

	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Config contains camera configuration parameters
type Config struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	AspectRatio   float64   // Width / height ratio of the image
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focus plane, 0 for the LookAt distance
}

// DefaultConfig returns a pinhole camera looking down -Z from the origin
func DefaultConfig() Config {
	return Config{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}
}

// Perspective is a perspective camera with an optional thin lens.
// It generates rays for single samples and for batches.
type Perspective struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewPerspective creates a camera from the configuration
func NewPerspective(config Config) *Perspective {
	aspectRatio := config.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = 1
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}

	// Orthonormal camera basis, w points backwards
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Perspective{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetCameraForward returns the direction the camera is looking
func (c *Perspective) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay generates a ray through the screen position of the sample
func (c *Perspective) GetRay(sample Sample) core.Ray {
	return c.ray(sample.Screen.X, sample.Screen.Y, sample.Lens)
}

// GetRays generates one ray per lane of the batch
func (c *Perspective) GetRays(samples *SampleBatch, rays []core.Ray) {
	for i := range rays {
		rays[i] = c.ray(samples.ScreenX[i], samples.ScreenY[i], core.NewVec2(samples.LensX[i], samples.LensY[i]))
	}
}

func (c *Perspective) ray(s, t float64, lens core.Vec2) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SampleUnitDisk(lens)
		origin = origin.Add(c.u.Multiply(rd.X * c.lensRadius)).Add(c.v.Multiply(rd.Y * c.lensRadius))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin).
		Normalize()

	return core.NewRay(origin, direction)
}
