package shader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-stream-raytracer/pkg/renderer"
)

// ErrUnknownShader is returned for names missing from the registry
var ErrUnknownShader = errors.New("shader: unknown shader")

// Config holds the parameters of every registered shader
type Config struct {
	AO  AOConfig
	DVR DVRConfig
}

// DefaultConfig returns default parameters for every shader
func DefaultConfig() Config {
	return Config{
		AO:  DefaultAOConfig(),
		DVR: DefaultDVRConfig(),
	}
}

// Renderer is a committable tile renderer built around a shader
type Renderer interface {
	renderer.TileRenderer
	Commit(config renderer.Config) error
}

// Info describes a registered shader
type Info struct {
	Name        string
	Aliases     []string
	Description string
	Stream      bool // Renders batches on the stream renderer
}

type entry struct {
	info   Info
	create func(config Config) any
}

var registry = map[string]entry{
	"ao": {
		info:   Info{Name: "ao", Aliases: []string{"cpp_ao"}, Description: "ambient occlusion, one sample at a time"},
		create: func(config Config) any { return NewSimpleAO(config.AO) },
	},
	"ao_stream": {
		info:   Info{Name: "ao_stream", Aliases: []string{"cpp_ao_stream"}, Description: "ambient occlusion on lane batches", Stream: true},
		create: func(config Config) any { return NewStreamAO(config.AO) },
	},
	"dvr": {
		info:   Info{Name: "dvr", Aliases: []string{"cpp_dvr"}, Description: "direct volume rendering of the first scene volume"},
		create: func(config Config) any { return NewDVR(config.DVR) },
	},
}

func lookup(name string) (entry, error) {
	if e, ok := registry[name]; ok {
		return e, nil
	}
	for _, e := range registry {
		for _, alias := range e.info.Aliases {
			if alias == name {
				return e, nil
			}
		}
	}
	return entry{}, fmt.Errorf("%w: %q", ErrUnknownShader, name)
}

// New creates the renderer registered under name, or one of its aliases
func New(name string, config Config) (Renderer, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return build(e, config, e.info.Stream)
}

// NewStream creates a stream renderer for the shader registered under name.
// Shaders that only shade single samples fail with renderer.ErrTypeMismatch.
func NewStream(name string, config Config) (Renderer, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return build(e, config, true)
}

func build(e entry, config Config, stream bool) (Renderer, error) {
	shader := e.create(config)
	if stream {
		ss, ok := shader.(renderer.StreamShader)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no batch shading", renderer.ErrTypeMismatch, e.info.Name)
		}
		return renderer.NewSimdRenderer(ss), nil
	}
	ss, ok := shader.(renderer.SampleShader)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no sample shading", renderer.ErrTypeMismatch, e.info.Name)
	}
	return renderer.NewRenderer(ss), nil
}

// Names returns the registered shader names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the description of the shader registered under name or an alias
func Lookup(name string) (Info, error) {
	e, err := lookup(name)
	return e.info, err
}
