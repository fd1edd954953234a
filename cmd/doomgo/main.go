// Command doomgo is the SDL2 front end for the renderer: it parses the
// CLI, decodes the wad, loads one map, and hands everything to app's
// frame loop.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/freewilll/doomgo/engine"
	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/think"
	"github.com/freewilll/doomgo/wad"
)

// SDL requires every call to originate from the thread that initialized
// it.
func init() {
	runtime.LockOSThread()
}

// playerPositionOverride is the --player-position JSON payload shape.
type playerPositionOverride struct {
	Position struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	} `json:"position"`
	Angle float32 `json:"angle"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "doomgo:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		wadPath             = pflag.String("wad", "doom1.wad", "path to the IWAD file")
		mapName             = pflag.String("map", "e1m1", "map lump name to load")
		turbo               = pflag.Int("turbo", 100, "player movement speed, percent")
		printFPS            = pflag.Bool("print-fps", false, "log a rolling FPS estimate to stderr")
		printPlayerPosition = pflag.Bool("print-player-position", false, "log the player's position/angle to stderr every frame")
		playerPositionJSON  = pflag.String("player-position", "", `JSON override for the initial pose, e.g. {"position":{"x":0,"y":0},"angle":0}`)
	)
	pflag.Parse()

	runID := uuid.NewString()

	buf, err := os.ReadFile(*wadPath)
	if err != nil {
		return fmt.Errorf("reading wad %q: %w", *wadPath, err)
	}

	f, err := wad.Load(buf)
	if err != nil {
		return fmt.Errorf("loading wad %q: %w", *wadPath, err)
	}

	m, err := mapdata.Load(f, *mapName)
	if err != nil {
		return fmt.Errorf("loading map %q: %w", *mapName, err)
	}

	store, err := gfx.NewStore(f)
	if err != nil {
		return fmt.Errorf("loading graphics store: %w", err)
	}

	skyTexture, err := store.Textures.Get(skyTextureName(*mapName))
	if err != nil {
		return fmt.Errorf("loading sky texture: %w", err)
	}

	pos, angle, err := initialPose(m, *playerPositionJSON)
	if err != nil {
		return err
	}

	reg := think.DefaultRegistry()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	e, err := engine.New(m, reg, rng, pos, angle, *turbo)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	fmt.Fprintf(os.Stderr, "doomgo: session %s map=%s wad=%s\n", runID, *mapName, *wadPath)

	app, err := newApp(e, store, skyTexture, *printFPS, *printPlayerPosition)
	if err != nil {
		return fmt.Errorf("starting app: %w", err)
	}
	defer app.destroy()

	return app.run()
}

// initialPose returns the --player-position override if given, otherwise
// the map's Player1Start thing.
func initialPose(m *mapdata.Map, overrideJSON string) (mapdata.Vertex, float32, error) {
	if overrideJSON != "" {
		var p playerPositionOverride
		if err := json.Unmarshal([]byte(overrideJSON), &p); err != nil {
			return mapdata.Vertex{}, 0, fmt.Errorf("parsing --player-position: %w", err)
		}
		return mapdata.Vertex{X: p.Position.X, Y: p.Position.Y}, p.Angle, nil
	}

	for _, t := range m.Things {
		if t.Type == mapdata.ThingPlayer1Start {
			return t.Position, t.Angle, nil
		}
	}

	return mapdata.Vertex{}, 0, fmt.Errorf("map has no Player1Start thing")
}

// skyTextureName picks the episode sky per the original game's
// R_InitSkyMap convention: one sky texture per episode, keyed off the map
// id's first two characters ("E1", "E2", ...); anything unrecognized
// (including doom2-style MAPxx ids) falls back to SKY1.
func skyTextureName(mapName string) string {
	if len(mapName) < 2 {
		return "SKY1"
	}

	switch mapName[0:2] {
	case "E2", "e2":
		return "SKY2"
	case "E3", "e3":
		return "SKY3"
	case "E4", "e4":
		return "SKY4"
	default:
		return "SKY1"
	}
}
