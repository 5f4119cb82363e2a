package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Window  WindowConfig  `toml:"window"`
	Assets  AssetsConfig  `toml:"assets"`
	Player  PlayerConfig  `toml:"player"`
	World   WorldConfig   `toml:"world"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	Title    string `toml:"title"`
	FrameCap int    `toml:"frame_cap"` // ticks per second, 0 = uncapped
	Workers  int    `toml:"workers"`   // parallel systems at once, 0 = GOMAXPROCS
	Headless bool   `toml:"headless"`  // record frames in memory, no terminal
	MaxTicks uint64 `toml:"max_ticks"` // stop after this many ticks, 0 = run until closed
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type AssetsConfig struct {
	SpriteSheet string `toml:"spritesheet"`
	Scripts     string `toml:"scripts"`
	Level       string `toml:"level"` // optional text level layered over the grass
}

type PlayerConfig struct {
	Name          string  `toml:"name"`
	Movement      string  `toml:"movement"` // "accelerated" or "instant"
	MaxSpeed      float64 `toml:"max_speed"`
	Accel         float64 `toml:"accel"`
	Deccel        float64 `toml:"deccel"`
	IdleThreshold float64 `toml:"idle_threshold"`
}

type WorldConfig struct {
	Seed               uint64  `toml:"seed"`
	GrassRadius        int     `toml:"grass_radius"`         // tiles from the origin on each axis
	GrassVariantChance float64 `toml:"grass_variant_chance"` // 0.0-1.0
	TileScale          float64 `toml:"tile_scale"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Engine.FrameCap < 0:
		return fmt.Errorf("engine.frame_cap must not be negative, got %d", c.Engine.FrameCap)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Player.Movement != "accelerated" && c.Player.Movement != "instant":
		return fmt.Errorf("player.movement must be accelerated or instant, got %q", c.Player.Movement)
	case c.World.GrassVariantChance < 0 || c.World.GrassVariantChance > 1:
		return fmt.Errorf("world.grass_variant_chance must be within 0..1, got %v", c.World.GrassVariantChance)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Title:    "StoneNG",
			FrameCap: 60,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		Assets: AssetsConfig{
			SpriteSheet: "data/yaml/spritesheet.yaml",
			Scripts:     "scripts",
			Level:       "data/level/arena.txt",
		},
		Player: PlayerConfig{
			Name:          "Bobert",
			Movement:      "accelerated",
			MaxSpeed:      300,
			Accel:         4,
			Deccel:        10,
			IdleThreshold: 10,
		},
		World: WorldConfig{
			Seed:               1,
			GrassRadius:        12,
			GrassVariantChance: 0.25,
			TileScale:          5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
