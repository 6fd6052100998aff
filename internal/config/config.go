package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"grassfield/internal/terrain"
	"grassfield/internal/vegetation"
	"grassfield/internal/wind"
	"grassfield/internal/world"
)

// Config captures every tunable of the landscape and its host window.
type Config struct {
	// Seed drives every noise field and the per-chunk vegetation RNG.
	Seed    int64             `yaml:"seed"`
	Chunk   ChunkConfig       `yaml:"chunk"`
	Terrain terrain.Params    `yaml:"terrain"`
	Grass   vegetation.Params `yaml:"grass"`
	Wind    wind.Params       `yaml:"wind"`
	Window  WindowConfig      `yaml:"window"`
}

type ChunkConfig struct {
	Size             float64 `yaml:"size"`                // world units per chunk edge
	ChunksInView     int     `yaml:"chunks_in_view"`      // desired square spans ChunksInView/2 chunks each way
	MaxViewDistance  float64 `yaml:"max_view_distance"`   // chunk centers beyond this are never built
	Resolution       int     `yaml:"resolution"`          // height samples per chunk edge, minus one
	MaxBuildsPerTick int     `yaml:"max_builds_per_tick"` // 0 builds everything in one step
	Workers          int     `yaml:"workers"`             // parallel chunk builds, 0 = GOMAXPROCS
}

type WindowConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Title     string  `yaml:"title"`
	FOV       float32 `yaml:"fov"` // degrees
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
	VSync     bool    `yaml:"vsync"`
	FPSLimit  int     `yaml:"fps_limit"`  // 0 leaves pacing to vsync
	MoveSpeed float32 `yaml:"move_speed"` // units per second
	TurnSpeed float32 `yaml:"turn_speed"` // radians per second
}

// Default returns the streamed grass field: 800-unit chunks, a 3x3 view,
// 2000-unit horizon.
func Default() *Config {
	return &Config{
		Seed: 1,
		Chunk: ChunkConfig{
			Size:             800,
			ChunksInView:     2,
			MaxViewDistance:  2000,
			Resolution:       100,
			MaxBuildsPerTick: 1,
		},
		Terrain: terrain.DefaultParams(),
		Grass:   vegetation.DefaultParams(),
		Wind:    wind.DefaultParams(),
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "grassfield",
			FOV:       75,
			Near:      1,
			Far:       2500,
			VSync:     true,
			MoveSpeed: 50,
			TurnSpeed: 1,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
// When the file names a terrain style, the terrain section starts from that
// style's preset instead of the blended defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// decode applies data in two passes: the first only looks for
// terrain.style to pick the preset, the second overlays every key on it.
func (c *Config) decode(data []byte) error {
	var head struct {
		Terrain struct {
			Style *terrain.Style `yaml:"style"`
		} `yaml:"terrain"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if s := head.Terrain.Style; s != nil {
		c.Terrain = terrain.PresetParams(*s)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate reports the first setting that would break chunk streaming or synthesis.
func (c *Config) Validate() error {
	if c.Chunk.Size <= 0 {
		return errors.New("chunk.size must be positive")
	}
	if c.Chunk.ChunksInView < 0 {
		return errors.New("chunk.chunks_in_view cannot be negative")
	}
	if c.Chunk.MaxViewDistance <= 0 {
		return errors.New("chunk.max_view_distance must be positive")
	}
	if c.Chunk.Resolution <= 0 {
		return errors.New("chunk.resolution must be positive")
	}
	if c.Chunk.MaxBuildsPerTick < 0 || c.Chunk.Workers < 0 {
		return errors.New("chunk.max_builds_per_tick and chunk.workers cannot be negative")
	}
	if c.Terrain.BlendFrequency < 0 {
		return errors.New("terrain.blend_frequency cannot be negative")
	}
	if c.Terrain.Base.Radius <= 0 {
		return errors.New("terrain.base.radius must be positive")
	}
	if c.Terrain.Edge.Enabled && c.Terrain.Edge.Curve.Radius <= 0 {
		return errors.New("terrain.edge.curve.radius must be positive when the edge floor is enabled")
	}
	if c.Grass.Count < 0 {
		return errors.New("grass.count cannot be negative")
	}
	if c.Grass.Segments < 2 {
		return errors.New("grass.segments must be at least 2")
	}
	if c.Grass.OpacityMin < 0 || c.Grass.OpacityMin > 1 {
		return errors.New("grass.opacity_min must be within [0, 1]")
	}
	if c.Grass.Policy.Bias < 0 {
		return errors.New("grass.policy.bias cannot be negative")
	}
	if c.Wind.TimeStep <= 0 {
		return errors.New("wind.time_step must be positive")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window dimensions must be positive")
	}
	if c.Window.FPSLimit < 0 {
		return errors.New("window.fps_limit cannot be negative")
	}
	if c.Window.Near <= 0 || c.Window.Far <= c.Window.Near {
		return errors.New("window.near must be positive and below window.far")
	}
	return nil
}

// TerrainParams returns the terrain parameters seeded from c.Seed.
func (c *Config) TerrainParams() terrain.Params {
	p := c.Terrain
	p.Seed = c.Seed
	return p
}

// GrassParams returns the vegetation parameters seeded from c.Seed. The bend
// field is offset from the terrain seeds so the two never correlate.
func (c *Config) GrassParams() vegetation.Params {
	p := c.Grass
	p.Seed = c.Seed + 0x5eed
	return p
}

// WorldSettings returns the chunk streaming settings.
func (c *Config) WorldSettings() world.Settings {
	return world.Settings{
		Size:             c.Chunk.Size,
		ChunksInView:     c.Chunk.ChunksInView,
		MaxViewDistance:  c.Chunk.MaxViewDistance,
		Resolution:       c.Chunk.Resolution,
		MaxBuildsPerTick: c.Chunk.MaxBuildsPerTick,
		Workers:          c.Chunk.Workers,
	}
}
