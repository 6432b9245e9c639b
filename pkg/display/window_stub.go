//go:build nowindow

package display

import (
	"context"
	"errors"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// Run is unavailable in builds without a window system
func Run(ctx context.Context, rt *renderer.Raytracer, opts Options) error {
	return errors.New("display: built with the nowindow tag")
}
