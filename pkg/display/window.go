//go:build !nowindow

package display

import (
	"context"
	"errors"

	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Run opens a window that renders a new frame on every tick and presents it.
// Arrow keys orbit the camera and zoom; Escape closes the window.
// It blocks until the window closes or ctx is cancelled.
func Run(ctx context.Context, rt *renderer.Raytracer, opts Options) error {
	config := rt.Camera().Config()
	scale := max(opts.Scale, 1)

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(config.Width*scale, config.Height*scale)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(&viewer{ctx: ctx, rt: rt})
	if errors.Is(err, ebiten.Termination) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type viewer struct {
	ctx     context.Context
	rt      *renderer.Raytracer
	frame   *ebiten.Image
	scratch []byte
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	camera := v.rt.Camera()
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		camera.Orbit(-orbitStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		camera.Orbit(orbitStep)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		camera.SetFov(clampFov(camera.Config().HFov - fovStep))
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		camera.SetFov(clampFov(camera.Config().HFov + fovStep))
	}

	return v.rt.ComputeFrame(v.ctx)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	frame := v.rt.Frame()
	if v.frame == nil || v.frame.Bounds().Dx() != frame.Width || v.frame.Bounds().Dy() != frame.Height {
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(frame.Width, frame.Height)
		v.scratch = make([]byte, 4*len(frame.Pixels))
	}

	copyFrameRGBA(frame, v.scratch)
	v.frame.WritePixels(v.scratch)
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	config := v.rt.Camera().Config()
	return config.Width, config.Height
}
