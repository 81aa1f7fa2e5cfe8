// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spacehole-rogue/holejump/internal/jump"
)

// ErrInvalid wraps every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Config is everything the game reads at startup.
//
//	HOLEJUMP_GALAXY_WIDTH      100000
//	HOLEJUMP_RANGE_DIVISOR     16
//	HOLEJUMP_TECH_SCALE        10
//	HOLEJUMP_MIN_TECH_LEVEL    8
//	HOLEJUMP_CENTER_THRESHOLD  5000
//	HOLEJUMP_SEED              1      galaxy seed at startup
//	HOLEJUMP_TECH_LEVEL        10     starting ship tech level
//	HOLEJUMP_SHIP_NAME         Nomad
//	HOLEJUMP_SNAPSHOT          ""     galaxy snapshot JSON; overrides the seed
//	HOLEJUMP_EVENTS_ADDR       ""     listen address for the event websocket; empty disables it
//	LOG_LEVEL                  info   debug, info, warn or error
type Config struct {
	Jump      jump.Config
	Seed      int64
	TechLevel float64
	ShipName  string
	Snapshot  string
	EventAddr string
	LogLevel  slog.Level
}

// Load reads .env files (if any) into the environment and then builds a
// validated Config. Missing .env files are not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	def := jump.DefaultConfig()
	var errs []error
	num := func(key string, fallback float64) float64 {
		v, err := getFloat(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		Jump: jump.Config{
			GalaxyWidth:     num("HOLEJUMP_GALAXY_WIDTH", def.GalaxyWidth),
			RangeDivisor:    num("HOLEJUMP_RANGE_DIVISOR", def.RangeDivisor),
			TechScale:       num("HOLEJUMP_TECH_SCALE", def.TechScale),
			MinTechLevel:    num("HOLEJUMP_MIN_TECH_LEVEL", def.MinTechLevel),
			CenterThreshold: num("HOLEJUMP_CENTER_THRESHOLD", def.CenterThreshold),
		},
		TechLevel: num("HOLEJUMP_TECH_LEVEL", 10),
		ShipName:  getEnv("HOLEJUMP_SHIP_NAME", "Nomad"),
		Snapshot:  getEnv("HOLEJUMP_SNAPSHOT", ""),
		EventAddr: getEnv("HOLEJUMP_EVENTS_ADDR", ""),
	}

	seed, err := strconv.ParseInt(getEnv("HOLEJUMP_SEED", "1"), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("HOLEJUMP_SEED: %w", ErrInvalid))
	}
	cfg.Seed = seed

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.LogLevel = level

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := c.Jump.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.TechLevel < 0 {
		return fmt.Errorf("tech level %g: %w", c.TechLevel, ErrInvalid)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback, fmt.Errorf("%s=%q: %w", key, raw, ErrInvalid)
	}
	return v, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL=%q: %w", s, ErrInvalid)
	}
}
