package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"grassfield/internal/config"
	"grassfield/internal/render"
	"grassfield/internal/terrain"
	"grassfield/internal/vegetation"
	"grassfield/internal/wind"
	"grassfield/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults when empty)")
	seed := flag.Int64("seed", 0, "override the config seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("grassfield: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = *seed
		}
	})

	if err := run(cfg); err != nil {
		log.Fatalf("grassfield: %v", err)
	}
}

func run(cfg *config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}

	r, err := render.New(cfg.Grass.Segments)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer r.Dispose()

	chunks := world.NewManager(
		cfg.WorldSettings(),
		terrain.NewSynthesizer(cfg.TerrainParams()),
		vegetation.NewScatterer(cfg.GrassParams()),
	)
	scene := world.NewScene(chunks, wind.NewDriver(cfg.Wind))

	log.Printf("grassfield: seed %d, %v terrain, %d blades per chunk, chunk %.0f, view %d",
		cfg.Seed, cfg.Terrain.Style, cfg.Grass.Count, cfg.Chunk.Size, cfg.Chunk.ChunksInView)

	newApp(window, cfg.Window, scene, r).run()
	return nil
}

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}
