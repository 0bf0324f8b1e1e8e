package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-stream-raytracer/pkg/camera"
	"github.com/df07/go-stream-raytracer/pkg/framebuffer"
	"github.com/df07/go-stream-raytracer/pkg/loaders"
	"github.com/df07/go-stream-raytracer/pkg/renderer"
	"github.com/df07/go-stream-raytracer/pkg/scene"
	"github.com/df07/go-stream-raytracer/pkg/shader"
	"github.com/df07/go-stream-raytracer/pkg/volume"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var errUnsupportedFormat = errors.New("unsupported output format")

type renderOptions struct {
	Scene     string
	Renderer  string
	Width     int
	Height    int
	SPP       int
	Frames    int
	Threshold float64
	Lanes     int
	Seed      int64
	Gamma     float64
	AOSamples int
	Out       string

	VolumeFile   string
	VolumeDims   [3]int
	VolumeFormat loaders.RawFormat

	DepthFile string
	DepthNear float64
	DepthFar  float64
}

func optionsFromContext(ctx *cli.Context) (renderOptions, error) {
	opts := renderOptions{
		Scene:     ctx.String("scene"),
		Renderer:  ctx.String("renderer"),
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		SPP:       ctx.Int("spp"),
		Frames:    ctx.Int("frames"),
		Threshold: ctx.Float64("threshold"),
		Lanes:     ctx.Int("lanes"),
		Seed:      ctx.Int64("seed"),
		Gamma:     ctx.Float64("gamma"),
		AOSamples: ctx.Int("ao-samples"),
		Out:       ctx.String("out"),

		VolumeFile: ctx.String("volume"),
		DepthFile:  ctx.String("depth"),
		DepthNear:  ctx.Float64("depth-near"),
		DepthFar:   ctx.Float64("depth-far"),
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return opts, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}

	if opts.VolumeFile != "" {
		dims, err := parseDims(ctx.String("volume-dims"))
		if err != nil {
			return opts, err
		}
		format, err := loaders.ParseRawFormat(ctx.String("volume-format"))
		if err != nil {
			return opts, err
		}
		opts.VolumeDims = dims
		opts.VolumeFormat = format
	}
	return opts, nil
}

// parseDims parses volume dimensions written as "X,Y,Z" or "XxYxZ"
func parseDims(value string) ([3]int, error) {
	var dims [3]int
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == 'x' })
	if len(parts) != 3 {
		return dims, fmt.Errorf("invalid volume dimensions %q", value)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 2 {
			return dims, fmt.Errorf("invalid volume dimension %q", part)
		}
		dims[i] = n
	}
	return dims, nil
}

// RenderFrame renders a scene progressively and writes the result to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, stats, err := renderImage(runCtx, opts)
	if len(stats) > 0 {
		displayFrameStats(stats)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := writeImage(opts.Out, fb.Image(opts.Gamma)); err != nil {
		return err
	}
	logger.Noticef("frame saved as %s", opts.Out)
	return nil
}

func loadScene(opts renderOptions) (*scene.Scene, error) {
	if opts.VolumeFile == "" {
		return scene.Load(opts.Scene)
	}

	data, err := loaders.LoadRawVolume(opts.VolumeFile, opts.VolumeDims, opts.VolumeFormat)
	if err != nil {
		return nil, err
	}
	config := volume.DefaultGridConfig()
	config.Dimensions = opts.VolumeDims
	grid, err := volume.NewGrid(config, data, volume.NewCoolWarm())
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %v %s volume from %s", opts.VolumeDims, opts.VolumeFormat, opts.VolumeFile)
	return scene.NewVolumeSceneFrom(grid), nil
}

// renderImage renders frames until the image converges, opts.Frames frames
// have been accumulated or ctx is cancelled. The framebuffer holds every
// frame that completed, even when an error is returned.
func renderImage(ctx context.Context, opts renderOptions) (*framebuffer.FrameBuffer, []renderer.RenderStats, error) {
	fb := framebuffer.New(opts.Width, opts.Height,
		framebuffer.ColorChannel|framebuffer.DepthChannel|framebuffer.AccumChannel|framebuffer.VarianceChannel)

	sc, err := loadScene(opts)
	if err != nil {
		return fb, nil, err
	}

	shaderConfig := shader.DefaultConfig()
	if opts.AOSamples > 0 {
		shaderConfig.AO.Samples = opts.AOSamples
	}
	r, err := shader.New(opts.Renderer, shaderConfig)
	if err != nil {
		return fb, nil, err
	}

	cameraConfig := sc.CameraConfig
	cameraConfig.AspectRatio = float64(opts.Width) / float64(opts.Height)

	config := renderer.DefaultConfig()
	config.Camera = camera.NewPerspective(cameraConfig)
	config.Scene = sc
	config.Background = sc.Background
	config.SamplesPerPixel = opts.SPP
	config.ErrorThreshold = opts.Threshold
	config.LaneWidth = opts.Lanes
	config.Seed = opts.Seed

	if opts.DepthFile != "" {
		depth, err := loaders.LoadDepthImage(opts.DepthFile, opts.DepthNear, opts.DepthFar)
		if err != nil {
			return fb, nil, err
		}
		if w, h := depth.Size(); w != opts.Width || h != opts.Height {
			logger.Warningf("depth texture is %dx%d, frame is %dx%d", w, h, opts.Width, opts.Height)
		}
		config.MaxDepth = depth
	}

	if err := r.Commit(config); err != nil {
		return fb, nil, err
	}

	logger.Infof("rendering %q with %q at %dx%d, %d spp per frame", opts.Scene, opts.Renderer, opts.Width, opts.Height, opts.SPP)

	scheduler := renderer.NewFrameScheduler(r, renderer.DefaultSchedulerConfig(), nil)
	defer scheduler.Close()

	progressive := renderer.NewProgressive(scheduler, fb, renderer.ProgressiveConfig{
		MaxFrames: opts.Frames,
		Channels:  fb.Channels(),
	}, nil)

	frames, errs := progressive.Render(ctx)
	var stats []renderer.RenderStats
	for result := range frames {
		stats = append(stats, result.Stats)
		logger.Infof("%v", result.Stats)
	}
	if err := <-errs; err != nil {
		return fb, stats, err
	}

	rays := sc.RayStats()
	logger.Infof("rays: %d coherent (%d hits), %d incoherent (%d hits)",
		rays.CoherentRays, rays.CoherentHits, rays.IncoherentRays, rays.IncoherentHits)
	return fb, stats, nil
}

// writeImage encodes img by file extension: .png, .tif/.tiff or .bmp
func writeImage(filename string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".tif", ".tiff", ".bmp":
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".png":
		err = png.Encode(file, img)
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return nil
}

func displayFrameStats(stats []renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", frameStatsTable(stats))
}

func frameStatsTable(stats []renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Tiles", "Skipped", "Failed", "Jobs", "Samples", "Samples/s", "Error", "Render time"})

	var total time.Duration
	var samples int64
	for _, stat := range stats {
		total += stat.Duration
		samples += stat.Samples
		table.Append([]string{
			fmt.Sprintf("%d", stat.Frame),
			fmt.Sprintf("%d", stat.TilesRendered),
			fmt.Sprintf("%d", stat.TilesSkipped),
			fmt.Sprintf("%d", stat.TilesFailed),
			fmt.Sprintf("%d", stat.Jobs),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%.0f", stat.SamplesPerSecond()),
			fmt.Sprintf("%.5f", stat.Error),
			stat.Duration.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", fmt.Sprintf("%d", samples), "", "", total.String()})

	table.Render()
	return buf.String()
}
