package material

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// DefaultKd is the diffuse reflectance used when no color parameter is set
var DefaultKd = core.Splat(0.8)

// Diffuse is a matte material described only by its diffuse reflectance Kd
type Diffuse struct {
	Kd ColorSource
}

// NewDiffuse creates a diffuse material with a solid color
func NewDiffuse(kd core.Vec3) *Diffuse {
	return &Diffuse{Kd: NewSolidColor(kd)}
}

// NewTexturedDiffuse creates a diffuse material whose color varies in space
func NewTexturedDiffuse(kd ColorSource) *Diffuse {
	return &Diffuse{Kd: kd}
}

// NewDiffuseFromParams creates a diffuse material from named parameters.
// The color is looked up as "color", then "kd", then "Kd", falling back to DefaultKd.
func NewDiffuseFromParams(params Params) *Diffuse {
	return NewDiffuse(params.Vec3(DefaultKd, "color", "kd", "Kd"))
}

// Shade returns the diffuse reflectance at the hit point
func (d *Diffuse) Shade(dg *core.DifferentialGeometry) core.Vec3 {
	return d.Kd.Evaluate(dg.P)
}
