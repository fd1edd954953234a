package gui

import (
	"fmt"

	"github.com/freewilll/doomgo/cmd/internal/errs"
	"github.com/veandco/go-sdl2/sdl"
)

// Renderer wraps an sdl.Renderer plus the one streaming texture the frame
// buffer is blitted through every tick.
type Renderer struct {
	*sdl.Renderer
	frame *sdl.Texture
}

func newRenderer(window *sdl.Window, w, h int32, options uint32) (*Renderer, error) {
	renderer, err := sdl.CreateRenderer(window, -1, options)
	if err != nil {
		return nil, fmt.Errorf("unable to create sdl renderer: %s", err)
	}

	frame, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		return nil, fmt.Errorf("unable to create frame texture: %s", err)
	}

	return &Renderer{
		Renderer: renderer,
		frame:    frame,
	}, nil
}

func (r *Renderer) Destroy() error {
	return errs.NewList(r.frame.Destroy(), r.Renderer.Destroy())
}

// DrawFrame uploads a packed RGB8 framebuffer (3 bytes/pixel, row-major, the
// render.Pixels layout) into the streaming texture and blits it into rect.
func (r *Renderer) DrawFrame(rgb []byte, rect *sdl.Rect) error {
	_, _, w, _, err := r.frame.Query()
	if err != nil {
		return fmt.Errorf("unable to query frame texture: %s", err)
	}

	if err := r.frame.Update(nil, rgb, int(w)*3); err != nil {
		return fmt.Errorf("unable to update frame texture: %s", err)
	}

	if err := r.Copy(r.frame, nil, rect); err != nil {
		return fmt.Errorf("unable to copy frame texture: %s", err)
	}

	return nil
}
