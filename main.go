package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/display"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// options holds the parsed command line. Zero sizes and sampling values keep the scene's defaults.
type options struct {
	Scene    string
	Width    int
	Height   int
	Samples  int
	Depth    int
	Seed     int64
	BVH      string
	LeafSize int
	Workers  int
	Frames   int
	Out      string
	Window   bool
	Help     bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Scene, "scene", "default", "Scene name (see -help for the list)")
	fs.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", 0, "Maximum bounces per path (0 = scene default)")
	fs.Int64Var(&opts.Seed, "seed", 0, "Sampler seed for reproducible frames (0 = fresh each frame)")
	fs.StringVar(&opts.BVH, "bvh", "centroid", "BVH split strategy: 'centroid' or 'median'")
	fs.IntVar(&opts.LeafSize, "leaf", 0, "Max primitives per BVH leaf (0 = strategy default)")
	fs.IntVar(&opts.Workers, "workers", 0, "Row workers (0 = one per CPU)")
	fs.IntVar(&opts.Frames, "frames", 1, "Frames to render; the last one is saved")
	fs.StringVar(&opts.Out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.Window, "window", false, "Show frames in a window instead of writing a PNG")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Samples < 0 || opts.Depth < 0 || opts.Workers < 0 {
		return opts, errors.New("sizes, samples, depth and workers must not be negative")
	}
	if opts.Frames < 1 {
		return opts, fmt.Errorf("frames must be at least 1, got %d", opts.Frames)
	}
	return opts, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Realtime Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range scene.ListAllScenes().Groups {
		fmt.Fprintf(w, "  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "    %-18s %s\n", info.ID, info.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run with -h for the option list.")
}

// bvhConfig converts the -bvh and -leaf flags
func bvhConfig(opts options) (geometry.BVHConfig, error) {
	strategy, err := geometry.ParseSplitStrategy(opts.BVH)
	if err != nil {
		return geometry.BVHConfig{}, err
	}
	config := geometry.DefaultBVHConfig()
	config.Strategy = strategy
	config.LeafSize = opts.LeafSize
	return config, nil
}

// createRaytracer builds the scene and applies the command line overrides
func createRaytracer(opts options, logger core.Logger) (*renderer.Raytracer, *scene.Scene, error) {
	bvh, err := bvhConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	sceneObj, err := scene.Create(opts.Scene, scene.Options{BVH: bvh, Seed: 1, Logger: logger})
	if err != nil {
		return nil, nil, err
	}

	cameraConfig := sceneObj.CameraConfig
	if opts.Width > 0 {
		cameraConfig.Width = opts.Width
	}
	if opts.Height > 0 {
		cameraConfig.Height = opts.Height
	}

	sampling := sceneObj.SamplingConfig
	if opts.Samples > 0 {
		sampling.SamplesPerPixel = opts.Samples
	}
	if opts.Depth > 0 {
		sampling.MaxDepth = opts.Depth
	}
	sampling.Seed = opts.Seed
	sampling.NumWorkers = opts.Workers

	return renderer.NewRaytracer(sceneObj.World, renderer.NewCamera(cameraConfig), sampling, logger), sceneObj, nil
}

// outputPath returns the -out path or a timestamped file under output/<scene>/
func outputPath(opts options, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(opts.Scene)
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// savePNG writes the frame, creating parent directories as needed
func savePNG(frame *renderer.Frame, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := frame.WritePNG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// renderFrames computes opts.Frames frames and returns the total render time
func renderFrames(ctx context.Context, rt *renderer.Raytracer, frames int) (time.Duration, error) {
	var total time.Duration
	for i := 0; i < frames; i++ {
		if err := rt.ComputeFrame(ctx); err != nil {
			return total, err
		}
		total += rt.Stats().Duration
	}
	return total, nil
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	rt, sceneObj, err := createRaytracer(opts, logger)
	if err != nil {
		return err
	}

	if opts.Window {
		return display.Run(ctx, rt, display.Options{Title: "Raytracer: " + sceneObj.Name, Scale: 2})
	}

	total, err := renderFrames(ctx, rt, opts.Frames)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (%v per frame)\n", total, total/time.Duration(opts.Frames))

	filename := outputPath(opts, time.Now())
	if err := savePNG(rt.Frame(), filename); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if opts.Help {
		printHelp(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Realtime Raytracer (scene %s)...\n", opts.Scene)
	if err := run(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
