// Package config loads engine and host settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration of an easel host.
type Config struct {
	Name             string  `yaml:"name" json:"name"`
	Scene            string  `yaml:"scene" json:"scene"`
	Width            int     `yaml:"width" json:"width"`
	Height           int     `yaml:"height" json:"height"`
	PixelRatio       float64 `yaml:"pixel_ratio" json:"pixel_ratio"`
	DarkMode         bool    `yaml:"dark_mode" json:"dark_mode"`
	FPS              int     `yaml:"fps" json:"fps"`
	AutoStart        bool    `yaml:"auto_start" json:"auto_start"`
	Debug            bool    `yaml:"debug" json:"debug"`
	ResizeDelayMS    int     `yaml:"resize_delay_ms" json:"resize_delay_ms"`
	MaxFrame         int     `yaml:"max_frame" json:"max_frame"`
	AutoResetContext bool    `yaml:"auto_reset_context" json:"auto_reset_context"`

	// Grid and Environment hold the raw overlay values (bool, colour string,
	// number, location, coordinate or options map); see overlay.DecodeGrid
	// and overlay.DecodeEnvironment.
	Grid        any `yaml:"grid" json:"grid"`
	Environment any `yaml:"environment" json:"environment"`

	Server ServerConfig `yaml:"server" json:"server"`
	Redis  RedisConfig  `yaml:"redis" json:"redis"`
}

// ServerConfig configures the debug HTTP server.
type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
}

// RedisConfig configures the frame event publisher. An empty Addr disables it.
type RedisConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	Channel string `yaml:"channel" json:"channel"`
	Every   int    `yaml:"every" json:"every"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Name:             "easel",
		Scene:            "pulse",
		Width:            640,
		Height:           480,
		PixelRatio:       1,
		FPS:              60,
		AutoStart:        true,
		AutoResetContext: true,
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
		},
		Redis: RedisConfig{
			Channel: "easel:frames",
			Every:   60,
		},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default and
// validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate reports every invalid field. Errors wrap domain.ErrInvalidOption.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format+": %w", append(args, domain.ErrInvalidOption)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		invalid("surface size %dx%d must be positive", c.Width, c.Height)
	}
	if c.PixelRatio < 0 {
		invalid("pixel_ratio %g is negative", c.PixelRatio)
	}
	if c.FPS < 0 {
		invalid("fps %d is negative", c.FPS)
	}
	if c.ResizeDelayMS < 0 {
		invalid("resize_delay_ms %d is negative", c.ResizeDelayMS)
	}
	if c.MaxFrame < 0 {
		invalid("max_frame %d is negative", c.MaxFrame)
	}
	if c.Redis.Addr != "" && c.Redis.Channel == "" {
		invalid("redis.channel is required when redis.addr is set")
	}
	if _, err := overlay.DecodeGrid(c.Grid); err != nil {
		errs = append(errs, err)
	}
	if _, err := overlay.DecodeEnvironment(c.Environment); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ResizeDelay returns the resize debounce window.
func (c Config) ResizeDelay() time.Duration {
	return time.Duration(c.ResizeDelayMS) * time.Millisecond
}

// Options converts the configuration into engine options. Pipelines are not
// part of the file; hosts append their own.
func (c Config) Options() ([]easel.Option, error) {
	grid, err := overlay.DecodeGrid(c.Grid)
	if err != nil {
		return nil, err
	}
	env, err := overlay.DecodeEnvironment(c.Environment)
	if err != nil {
		return nil, err
	}
	return []easel.Option{
		easel.WithName(c.Name),
		easel.WithAutoStart(c.AutoStart),
		easel.WithDebug(c.Debug),
		easel.WithResizeDelay(c.ResizeDelay()),
		easel.WithMaxFrame(c.MaxFrame),
		easel.WithAutoResetContext(c.AutoResetContext),
		easel.WithPixelRatio(c.PixelRatio),
		easel.WithDarkMode(c.DarkMode),
		easel.WithFPS(c.FPS),
		easel.WithGrid(grid),
		easel.WithEnvironment(env),
	}, nil
}
