package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// imageSearchDirs are tried in order when resolving an image name
var imageSearchDirs = []string{"", "images", filepath.Join("..", "images")}

// ImageData is a decoded 8-bit RGB image. It implements material.ImageProvider.
type ImageData struct {
	width  int
	height int
	pixels []uint8 // 3 bytes per pixel, row-major, top row first
}

// NewImageData wraps raw RGB bytes; len(pixels) must be 3*width*height
func NewImageData(width, height int, pixels []uint8) (*ImageData, error) {
	if width < 0 || height < 0 || len(pixels) != 3*width*height {
		return nil, fmt.Errorf("invalid image buffer: %dx%d with %d bytes", width, height, len(pixels))
	}
	return &ImageData{width: width, height: height, pixels: pixels}, nil
}

// Width returns the image width in pixels
func (d *ImageData) Width() int { return d.width }

// Height returns the image height in pixels
func (d *ImageData) Height() int { return d.height }

// Pixel returns the color at (x, y), clamping coordinates to the image.
// An empty image returns magenta.
func (d *ImageData) Pixel(x, y int) (r, g, b uint8) {
	if d.width <= 0 || d.height <= 0 {
		return 255, 0, 255
	}
	x = max(0, min(x, d.width-1))
	y = max(0, min(y, d.height-1))
	i := 3 * (y*d.width + x)
	return d.pixels[i], d.pixels[i+1], d.pixels[i+2]
}

// Color returns the pixel at (x, y) as a linear [0,1] color
func (d *ImageData) Color(x, y int) core.Vec3 {
	r, g, b := d.Pixel(x, y)
	return core.NewVec3(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
}

// FindImage resolves name against the current directory, images/ and ../images/
func FindImage(name string) (string, error) {
	for _, dir := range imageSearchDirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("image %q not found in %v: %w", name, imageSearchDirs, os.ErrNotExist)
}

// LoadImage finds and decodes a PNG or JPEG image
func LoadImage(name string) (*ImageData, error) {
	path, err := FindImage(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image to 8-bit RGB, dropping alpha
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]uint8, 3*width*height)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[i], pixels[i+1], pixels[i+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
			i += 3
		}
	}

	return &ImageData{width: width, height: height, pixels: pixels}
}

// LoadImageOrFallback loads an image, logging a failure and returning an
// empty image instead. Textures over an empty image render magenta.
func LoadImageOrFallback(name string, logger core.Logger) *ImageData {
	data, err := LoadImage(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Printf("ERROR: Could not load image file '%s'\n", name)
		} else {
			logger.Printf("ERROR: Could not load image file '%s': %v\n", name, err)
		}
		return &ImageData{}
	}
	return data
}
