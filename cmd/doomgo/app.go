package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/term"

	"github.com/freewilll/doomgo/cmd/internal/gui"
	"github.com/freewilll/doomgo/cmd/internal/meter"
	"github.com/freewilll/doomgo/engine"
	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/render"
)

// windowScale blows the native ScreenWidth x ScreenHeight framebuffer up
// to a visible window size; the framebuffer itself stays render-native.
const windowScale = 3

// frameMeterLen is the rolling window for the FPS estimate.
const frameMeterLen = 16

// app owns the SDL window, the engine driving game state, and everything
// a frame needs to render: the graphics store, sky texture, and the
// scratch framebuffer reused every frame.
type app struct {
	view *gui.View

	engine     *engine.Engine
	store      *gfx.Store
	skyTexture *gfx.Texture
	pixels     *render.Pixels

	pressed  map[engine.Key]bool
	showMap  bool
	fpsMeter *meter.Meter

	printFPS            bool
	printPlayerPosition bool
	isTTY               bool
}

func newApp(e *engine.Engine, store *gfx.Store, skyTexture *gfx.Texture, printFPS, printPlayerPosition bool) (*app, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("app: unable to init sdl: %s", err)
	}

	view, err := gui.NewView(
		"doomgo",
		render.ScreenWidth, render.ScreenHeight, windowScale,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("app: unable to create view: %s", err)
	}

	return &app{
		view:                view,
		engine:              e,
		store:               store,
		skyTexture:          skyTexture,
		pixels:              render.NewPixels(),
		pressed:             make(map[engine.Key]bool),
		fpsMeter:            meter.New(frameMeterLen),
		printFPS:            printFPS,
		printPlayerPosition: printPlayerPosition,
		isTTY:               term.IsTerminal(int(os.Stderr.Fd())),
	}, nil
}

func (a *app) destroy() error {
	err := a.view.Destroy()
	sdl.Quit()
	return err
}

// run is the frame driver's main loop: render, present, poll input,
// advance the game clock by real elapsed time, repeat until a quit event
// or the window is closed.
func (a *app) run() error {
	t0 := time.Now()
	for a.view.Visible() {
		r := render.NewRenderer(
			a.pixels,
			a.engine.Map,
			a.engine.Objects,
			a.store.Textures,
			a.store.Sprites,
			a.skyTexture,
			a.store.Flats,
			a.store.Palette,
			a.engine.Player,
			a.engine.Clock.Timestamp(),
		)
		a.pixels.Clear()
		if err := r.Render(); err != nil {
			return err
		}

		if err := a.view.DrawFrame(a.pixels.Buf); err != nil {
			return err
		}

		if a.showMap {
			a.drawMapOverlay()
		}

		a.view.Paint()

		quit, err := a.poll()
		if quit {
			return nil
		}
		if err != nil {
			return err
		}

		now := time.Now()
		dt := now.Sub(t0)
		a.fpsMeter.Record(dt)
		a.engine.Advance(dt.Seconds(), a.pressed)
		t0 = now

		a.report()
	}

	return nil
}

// poll drains pending SDL events: window chrome, one-shot commands
// (tab/kill/explode/respawn/quit), and held-key state for movement.
func (a *app) poll() (quit bool, err error) {
	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		if _, ok := evt.(*sdl.QuitEvent); ok {
			return true, nil
		}

		if handled, err := a.view.Handle(evt); handled {
			if err != nil {
				return false, err
			}
			continue
		}

		if a.handleKey(evt) {
			return true, nil
		}
	}

	return false, nil
}

// handleKey updates a.pressed from key down/up events and runs the
// one-shot commands; it returns true if the event
// requests a quit.
func (a *app) handleKey(evt sdl.Event) (quit bool) {
	keyMap := map[sdl.Keycode]engine.Key{
		sdl.K_LEFT:  engine.KeyLeft,
		sdl.K_RIGHT: engine.KeyRight,
		sdl.K_UP:    engine.KeyUp,
		sdl.K_DOWN:  engine.KeyDown,
		sdl.K_LALT:  engine.KeyAlt,
		sdl.K_RALT:  engine.KeyAlt,
	}

	if gui.IsKeyDown(evt, sdl.K_LSHIFT) || gui.IsKeyDown(evt, sdl.K_RSHIFT) {
		a.pressed[engine.KeyShift] = true
	}
	if gui.IsKeyUp(evt, sdl.K_LSHIFT) || gui.IsKeyUp(evt, sdl.K_RSHIFT) {
		a.pressed[engine.KeyShift] = false
	}

	for sym, key := range keyMap {
		if gui.IsKeyDown(evt, sym) {
			a.pressed[key] = true
		}
		if gui.IsKeyUp(evt, sym) {
			a.pressed[key] = false
		}
	}

	if gui.IsKeyPress(evt, sdl.K_q) || gui.IsKeyPress(evt, sdl.K_ESCAPE) {
		return true
	}
	if gui.IsKeyPress(evt, sdl.K_TAB) {
		a.showMap = !a.showMap
	}
	if gui.IsKeyPress(evt, sdl.K_k) {
		a.engine.KillAll()
	}
	if gui.IsKeyPress(evt, sdl.K_x) {
		a.engine.ExplodeAll()
	}
	if gui.IsKeyPress(evt, sdl.K_r) {
		a.engine.RespawnAll()
	}

	return false
}

// report prints the --print-fps / --print-player-position diagnostics:
// a single rewritten status line on a TTY, one line per frame otherwise.
func (a *app) report() {
	if !a.printFPS && !a.printPlayerPosition {
		return
	}

	var line string
	if a.printFPS {
		line += fmt.Sprintf("fps=%d ", a.fpsMeter.Tps())
	}
	if a.printPlayerPosition {
		p := a.engine.Player
		line += fmt.Sprintf("pos=(%.1f,%.1f) angle=%.3f", p.Position.X, p.Position.Y, p.Angle)
	}

	if a.isTTY {
		fmt.Fprintf(os.Stderr, "\r%s\x1b[K", line)
	} else {
		fmt.Fprintln(os.Stderr, line)
	}
}

// drawMapOverlay is the developer-only top-down view behind tab: every
// linedef and the player's position/facing, drawn straight onto the SDL
// renderer rather than into the 3D framebuffer. BSP split lines are not
// drawn.
func (a *app) drawMapOverlay() {
	bb := a.engine.Map.BoundingBox
	rect := a.view.Rect()

	scaleX := float64(rect.W) / float64(bb.Right-bb.Left)
	scaleY := float64(rect.H) / float64(bb.Bottom-bb.Top)
	scale := math.Min(scaleX, scaleY)

	project := func(v mapdata.Vertex) (int32, int32) {
		x := (float64(v.X) - float64(bb.Left)) * scale
		y := (float64(v.Y) - float64(bb.Top)) * scale
		return int32(x), int32(y)
	}

	a.view.SetOverlayColor(255, 255, 255, 255)
	for _, l := range a.engine.Map.Linedefs {
		x1, y1 := project(l.Start)
		x2, y2 := project(l.End)
		a.view.DrawOverlayLine(x1, y1, x2, y2)
	}

	a.view.SetOverlayColor(255, 0, 0, 255)
	p := a.engine.Player
	px, py := project(p.Position)
	tip := p.Position.Add(mapdata.Vertex{X: 20, Y: 0}.Rotate(p.Angle))
	tx, ty := project(tip)
	a.view.DrawOverlayLine(px, py, tx, ty)
}
