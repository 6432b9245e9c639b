package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// shadowAcneEpsilon is the minimum hit distance for every ray, so a
// scattered ray doesn't re-hit the surface it leaves.
const shadowAcneEpsilon = 0.001

// SamplingConfig contains rendering parameters
type SamplingConfig struct {
	SamplesPerPixel int   // Rays averaged per pixel
	MaxDepth        int   // Maximum scatter bounces per path
	Jitter          bool  // Offset each sample randomly within its pixel
	MotionBlur      bool  // Give each camera ray a random time in [0, 1)
	Seed            int64 // Base seed for per-row samplers; 0 seeds from the clock
	NumWorkers      int   // Row workers; 0 uses one per CPU
}

// DefaultSamplingConfig returns interactive-quality settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        50,
		Jitter:          true,
		MotionBlur:      true,
	}
}

// Raytracer renders a scene into an ARGB frame
type Raytracer struct {
	world  geometry.Hittable
	camera *Camera
	config SamplingConfig
	frame  *Frame
	pool   *WorkerPool
	stats  RenderStats
	logger core.Logger
}

// NewRaytracer creates a raytracer for world as seen through camera
func NewRaytracer(world geometry.Hittable, camera *Camera, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.DiscardLogger
	}
	cameraConfig := camera.Config()
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		frame:  NewFrame(cameraConfig.Width, cameraConfig.Height),
		pool:   NewWorkerPool(config.NumWorkers),
		logger: logger,
	}
}

// Camera returns the camera; call Refocus or LookFrom on it between frames
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Frame returns the buffer written by the most recent ComputeFrame
func (rt *Raytracer) Frame() *Frame {
	return rt.frame
}

// Stats returns statistics for the most recent frame
func (rt *Raytracer) Stats() RenderStats {
	return rt.stats
}

// SetSamplingConfig replaces the sampling parameters used by later frames
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	if config.NumWorkers != rt.pool.NumWorkers() {
		rt.pool = NewWorkerPool(config.NumWorkers)
	}
}

// ComputeFrame renders every pixel into the frame. Rows are rendered in
// parallel, each with its own sampler, and every pixel is written exactly once.
// With a non-zero seed the frame is identical across runs and worker counts.
func (rt *Raytracer) ComputeFrame(ctx context.Context) error {
	start := time.Now()
	cameraConfig := rt.camera.Config()
	width, height := cameraConfig.Width, cameraConfig.Height
	if rt.frame.Width != width || rt.frame.Height != height {
		rt.frame = NewFrame(width, height)
	}

	spp := max(rt.config.SamplesPerPixel, 1)
	baseSeed := rt.config.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	err := rt.pool.ForEach(ctx, height, func(y int) error {
		sampler := core.NewSeededSampler(rowSeed(baseSeed, y))
		row := rt.frame.Row(y)
		for x := 0; x < width; x++ {
			row[x] = PackARGB(rt.samplePixel(x, y, spp, sampler))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("frame cancelled: %w", err)
	}

	rt.stats = RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		TotalSamples:    width * height * spp,
		SamplesPerPixel: spp,
		Workers:         rt.pool.NumWorkers(),
		Duration:        time.Since(start),
	}
	rt.logger.Printf("Frame: %s\n", rt.stats)
	return nil
}

// rowSeed derives an independent sampler seed for each image row
func rowSeed(base int64, row int) int64 {
	return base*1_000_003 + int64(row)
}

// samplePixel averages spp radiance samples through pixel (x, y)
func (rt *Raytracer) samplePixel(x, y, spp int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for s := 0; s < spp; s++ {
		ray := rt.camera.GetRay(x, y, rt.config.Jitter, rt.config.MotionBlur, sampler)
		colorAccum = colorAccum.Add(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	return colorAccum.Multiply(1.0 / float64(spp))
}

// RayColor returns the radiance carried back along ray: emission at the hit
// plus the attenuated radiance of the scattered ray, the background on a
// miss, and black once depth is exhausted.
func (rt *Raytracer) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !rt.world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), &hit, sampler) {
		return rt.camera.config.Background.Color(ray.Direction)
	}

	colorFromEmission := material.Emitted(&hit)

	scatter, scattered := material.Scatter(ray, &hit, sampler)
	if !scattered {
		return colorFromEmission
	}

	colorFromScatter := scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
	return colorFromEmission.Add(colorFromScatter)
}
