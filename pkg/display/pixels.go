package display

import (
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// Controls for the interactive window
const (
	orbitStep = 5.0  // Degrees per key press
	fovStep   = 5.0  // Degrees per key press
	minFov    = 10.0 // Narrowest horizontal field of view
	maxFov    = 150.0
)

// Options configures the window
type Options struct {
	Title string
	Scale int // Window pixels per frame pixel
}

// copyFrameRGBA expands packed ARGB pixels into RGBA bytes. dst must hold 4 bytes per pixel.
func copyFrameRGBA(frame *renderer.Frame, dst []byte) {
	for i, pixel := range frame.Pixels {
		a, r, g, b := renderer.UnpackARGB(pixel)
		j := 4 * i
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = a
	}
}

// clampFov keeps a field of view inside the supported range
func clampFov(fov float64) float64 {
	return max(minFov, min(maxFov, fov))
}
