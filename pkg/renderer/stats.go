package renderer

import (
	"fmt"
	"time"
)

// RenderStats describes the most recent frame
type RenderStats struct {
	Width           int           // Frame width in pixels
	Height          int           // Frame height in pixels
	TotalPixels     int           // Pixels written
	TotalSamples    int           // Camera rays traced
	SamplesPerPixel int           // Samples averaged per pixel
	Workers         int           // Goroutines used
	Duration        time.Duration // Wall time of ComputeFrame
}

// SamplesPerSecond returns camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d spp, %d workers, %v (%.2f Msamples/s)",
		s.Width, s.Height, s.SamplesPerPixel, s.Workers,
		s.Duration.Round(time.Millisecond), s.SamplesPerSecond()/1e6)
}
