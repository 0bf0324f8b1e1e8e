package main

import (
	"os"

	"github.com/df07/go-stream-raytracer/cmd"
	"github.com/df07/go-stream-raytracer/pkg/loaders"
	"github.com/df07/go-stream-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag also claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-stream-raytracer"
	app.Usage = "render scenes with tile based scalar and stream renderers"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene (or a raw volume file) progressively. Every frame adds
spp samples per pixel to the tiles that have not converged yet; rendering stops
when the frame error reaches the threshold or after the given number of frames.

The output format is chosen by the file extension: .png, .tif/.tiff or .bmp.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene id (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "renderer, r",
					Value: "ao",
					Usage: "renderer name or alias (see the renderers command)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 1,
					Usage: "samples per pixel and frame",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 16,
					Usage: "maximum number of frames to accumulate",
				},
				cli.Float64Flag{
					Name:  "threshold",
					Value: 0.001,
					Usage: "tile error at which a tile stops being rendered",
				},
				cli.IntFlag{
					Name:  "lanes",
					Usage: "lanes per batch for stream renderers (0 = detect)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2.2,
					Usage: "output gamma",
				},
				cli.IntFlag{
					Name:  "ao-samples",
					Usage: "ambient occlusion rays per hit (0 = renderer default)",
				},
				cli.StringFlag{
					Name:  "volume",
					Usage: "render a raw volume file instead of a built-in scene",
				},
				cli.StringFlag{
					Name:  "volume-dims",
					Value: "64,64,64",
					Usage: "voxel dimensions of the raw volume",
				},
				cli.StringFlag{
					Name:  "volume-format",
					Value: loaders.RawUint8.String(),
					Usage: "voxel format of the raw volume: uint8, uint16 or float32",
				},
				cli.StringFlag{
					Name:  "depth",
					Usage: "grayscale image bounding the distance of primary rays",
				},
				cli.Float64Flag{
					Name:  "depth-near",
					Value: 0,
					Usage: "distance mapped to black in the depth image",
				},
				cli.Float64Flag{
					Name:  "depth-far",
					Value: 100,
					Usage: "distance mapped to just below white in the depth image",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "renderers",
			Usage:  "list available renderers",
			Action: cmd.ListRenderers,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "cpu",
			Usage:  "show detected SIMD features and lane width",
			Action: cmd.CPUInfo,
		},
	}
	return app
}
