// Package jump decides which black holes a ship can reach and packages the
// player's jump choice into a travel request for the game-state controller.
package jump

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid jump config")

// Config holds the jump policy constants.
type Config struct {
	GalaxyWidth     float64 // spatial extent of the galaxy
	RangeDivisor    float64 // max jump at TechScale is GalaxyWidth / RangeDivisor
	TechScale       float64 // tech level that yields one full range unit
	MinTechLevel    float64 // tech level that unlocks black hole jumps
	CenterThreshold float64 // black holes closer than this to the origin are the galactic center
}

// DefaultConfig returns the stock policy: 100000-unit galaxy, a sixteenth of
// it per ten tech levels, tech 8 to unlock, 5000 units for the center.
func DefaultConfig() Config {
	return Config{
		GalaxyWidth:     100000,
		RangeDivisor:    16,
		TechScale:       10,
		MinTechLevel:    8,
		CenterThreshold: 5000,
	}
}

// Validate rejects configs that would make range math meaningless.
func (c Config) Validate() error {
	switch {
	case c.GalaxyWidth <= 0:
		return fmt.Errorf("galaxy width %g: %w", c.GalaxyWidth, ErrInvalidConfig)
	case c.RangeDivisor <= 0:
		return fmt.Errorf("range divisor %g: %w", c.RangeDivisor, ErrInvalidConfig)
	case c.TechScale <= 0:
		return fmt.Errorf("tech scale %g: %w", c.TechScale, ErrInvalidConfig)
	case c.MinTechLevel < 0:
		return fmt.Errorf("min tech level %g: %w", c.MinTechLevel, ErrInvalidConfig)
	case c.CenterThreshold < 0:
		return fmt.Errorf("center threshold %g: %w", c.CenterThreshold, ErrInvalidConfig)
	}
	return nil
}

// MaxJumpDistance returns how far a ship of the given tech level can jump.
func (c Config) MaxJumpDistance(techLevel float64) float64 {
	return (techLevel / c.TechScale) * (c.GalaxyWidth / c.RangeDivisor)
}
