package material

import (
	"github.com/df07/go-stream-raytracer/pkg/core"
)

// Params is a set of named material parameters
type Params map[string]any

// Vec3 returns the first parameter among names that holds a color, or def.
// A float parameter is accepted and expanded to a gray color.
func (p Params) Vec3(def core.Vec3, names ...string) core.Vec3 {
	for _, name := range names {
		switch v := p[name].(type) {
		case core.Vec3:
			return v
		case float64:
			return core.Splat(v)
		}
	}
	return def
}

// Float returns the first parameter among names that holds a float, or def
func (p Params) Float(def float64, names ...string) float64 {
	for _, name := range names {
		if v, ok := p[name].(float64); ok {
			return v
		}
	}
	return def
}
