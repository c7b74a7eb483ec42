// Command seascape renders procedural ocean scenes to image files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/tiff"

	"github.com/seascape-dev/seascape/render"
	"github.com/seascape-dev/seascape/scene"
)

type config struct {
	preset, file, camera *string
	width, height        *int
	supersample, workers *int
	frames               *int
	fps                  *float64
	clock                *float64
	timeStr              *string
	fog                  *float64
	out                  *string
	verbose, showHelp    *bool
}

func defineFlags() config {
	return config{
		preset: flag.String("scene", "sunny-day", "Scene preset (sunny-day, calm-dawn, night-storm)"),
		file:   flag.String("file", "", "YAML scene file; overrides -scene"),
		camera: flag.String("camera", "", "Camera preset (sunny-day, low-light, cinematic, sky)"),

		width:       flag.Int("width", 960, "Output width in pixels"),
		height:      flag.Int("height", 540, "Output height in pixels"),
		supersample: flag.Int("supersample", 2, "Supersampling factor (higher is slower but smoother)"),
		workers:     flag.Int("workers", 0, "Render goroutines (0 = all CPUs)"),

		frames:  flag.Int("frames", 1, "Number of frames to render"),
		fps:     flag.Float64("fps", 30, "Scene-clock rate for frame sequences"),
		clock:   flag.Float64("t", 0, "Scene clock of the first frame, in seconds"),
		timeStr: flag.String("time", "", "Wall-clock time RFC3339 for the astronomical sun (needs a site in the scene file)"),

		fog: flag.Float64("fog", 0.004, "Distance fog density per meter"),
		out: flag.String("out", "seascape.png", "Output image path (.png, .tif)"),

		verbose:  flag.Bool("v", false, "Verbose logging"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Seascape - Procedural Ocean Renderer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Scene Options", []string{"scene", "file", "camera"})
	printGroup("Rendering Options", []string{"width", "height", "supersample", "workers", "fog"})
	printGroup("Animation", []string{"frames", "fps", "t", "time"})
	printGroup("Output", []string{"out"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-12s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}

	logger := newLogger(*cfg.verbose)
	defer logger.Sync() //nolint:errcheck

	sceneCfg, err := loadSceneConfig(cfg)
	if err != nil {
		logger.Fatal("loading scene", zap.Error(err))
	}

	s, err := sceneCfg.Build()
	if err != nil {
		logger.Fatal("building scene", zap.Error(err))
	}

	if *cfg.timeStr != "" && sceneCfg.Site != nil {
		at, err := time.Parse(time.RFC3339, *cfg.timeStr)
		if err != nil {
			logger.Fatal("invalid -time", zap.Error(err))
		}
		s.Sky.AlignToClock(at, sceneCfg.Site.Lat, sceneCfg.Site.Lon)
		logger.Info("astronomical sun",
			zap.Float64("elevationDeg", s.Sky.SunElevationDeg),
			zap.Float64("azimuthDeg", s.Sky.SunAzimuthDeg))
	}

	cameraName := *cfg.camera
	if cameraName == "" {
		cameraName = sceneCfg.Camera
	}

	opts := render.Options{
		Width:       *cfg.width,
		Height:      *cfg.height,
		Supersample: *cfg.supersample,
		Workers:     *cfg.workers,
		Camera:      render.Preset(cameraName),
		FogDensity:  *cfg.fog,
		Logger:      logger,
	}

	for i := 0; i < *cfg.frames; i++ {
		opts.Time = *cfg.clock + float64(i) / *cfg.fps
		img := render.Frame(s, opts)

		path := framePath(*cfg.out, i, *cfg.frames)
		if err := writeImage(path, img); err != nil {
			logger.Fatal("writing image", zap.String("path", path), zap.Error(err))
		}
		logger.Info("wrote frame", zap.String("path", path))
	}
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func loadSceneConfig(cfg config) (scene.Config, error) {
	if *cfg.file != "" {
		return scene.LoadConfig(*cfg.file)
	}
	return scene.PresetConfig(*cfg.preset), nil
}

// framePath numbers the output when rendering a sequence.
func framePath(out string, frame, total int) string {
	if total <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(out, ext), frame, ext)
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
	}
}
