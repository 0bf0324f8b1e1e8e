package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-stream-raytracer/pkg/volume"
)

// ErrUnknownScene is returned for names that are not built in
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string
	DisplayName string
	Description string
	Volume      bool // Scene is meant for volume rendering
}

type builtin struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{Description: "spheres and a box on a checkered ground"},
		build: func() (*Scene, error) {
			return NewDefaultScene(), nil
		},
	},
	"cornell-box": {
		info: SceneInfo{Description: "Cornell box with a rotated box and a sphere"},
		build: func() (*Scene, error) {
			return NewCornellScene(), nil
		},
	},
	"sphere-grid": {
		info: SceneInfo{Description: "20x20 grid of spheres with per-geometry colors"},
		build: func() (*Scene, error) {
			return NewSphereGridScene(20), nil
		},
	},
	"volume-radial": {
		info: SceneInfo{Description: "procedural radial density volume", Volume: true},
		build: func() (*Scene, error) {
			return NewVolumeScene(volume.RadialField, 64)
		},
	},
	"volume-wave": {
		info: SceneInfo{Description: "procedural wave density volume", Volume: true},
		build: func() (*Scene, error) {
			return NewVolumeScene(volume.WaveField, 64)
		},
	},
}

// Load builds the built-in scene with the given ID
func Load(id string) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return b.build()
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, b := range builtins {
		info := b.info
		info.ID = id
		info.DisplayName = titleCase(id)
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
