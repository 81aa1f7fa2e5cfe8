package galaxy

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned at the ingestion boundary.
var (
	ErrInvalidEntity = errors.New("invalid entity")
	ErrNonFinite     = errors.New("non-finite coordinate")
	ErrDuplicateID   = errors.New("duplicate entity id")
	ErrNegativeTech  = errors.New("negative tech level")
)

// Position is a point in galaxy space.
type Position struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between two positions.
func (p Position) Distance(o Position) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm returns the distance from the galaxy origin.
func (p Position) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Finite reports whether all three components are real numbers.
func (p Position) Finite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// StarKind determines the color of a star on the galaxy map.
type StarKind uint8

const (
	StarYellow StarKind = iota
	StarRed
	StarBlue
	StarWhite
	StarOrange
)

// StarKindName returns a human-readable name for a star kind.
func StarKindName(k StarKind) string {
	switch k {
	case StarYellow:
		return "Yellow dwarf"
	case StarRed:
		return "Red giant"
	case StarBlue:
		return "Blue supergiant"
	case StarWhite:
		return "White dwarf"
	case StarOrange:
		return "Orange star"
	default:
		return "Unknown"
	}
}

// StarSystem is an ordinary jump destination.
type StarSystem struct {
	ID   string
	Name string
	Pos  Position
	Kind StarKind
}

// BlackHole is a long-range travel waypoint.
type BlackHole struct {
	ID   string
	Name string
	Pos  Position
}

// ShipCapability is the subset of ship stats the jump logic reads.
type ShipCapability struct {
	Name      string
	TechLevel float64
}

// Validate rejects tech levels that would poison range math.
func (c *ShipCapability) Validate() error {
	if !finite(c.TechLevel) {
		return fmt.Errorf("ship %q tech level: %w", c.Name, ErrNonFinite)
	}
	if c.TechLevel < 0 {
		return fmt.Errorf("ship %q tech level %g: %w", c.Name, c.TechLevel, ErrNegativeTech)
	}
	return nil
}

// Galaxy is a read-only snapshot of one generated galaxy.
type Galaxy struct {
	Seed       int64
	Systems    []StarSystem
	BlackHoles []BlackHole
}

// Locate resolves an id to a position. Star systems are searched before
// black holes.
func (g *Galaxy) Locate(id string) (Position, bool) {
	if id == "" {
		return Position{}, false
	}
	for i := range g.Systems {
		if g.Systems[i].ID == id {
			return g.Systems[i].Pos, true
		}
	}
	for i := range g.BlackHoles {
		if g.BlackHoles[i].ID == id {
			return g.BlackHoles[i].Pos, true
		}
	}
	return Position{}, false
}

// BlackHole returns the black hole with the given id, or nil.
func (g *Galaxy) BlackHole(id string) *BlackHole {
	for i := range g.BlackHoles {
		if g.BlackHoles[i].ID == id {
			return &g.BlackHoles[i]
		}
	}
	return nil
}

// Validate checks ids and coordinates of every entity. A galaxy that passes
// can be evaluated without producing NaN distances.
func (g *Galaxy) Validate() error {
	seen := make(map[string]bool, len(g.Systems)+len(g.BlackHoles))
	check := func(kind, id string, pos Position) error {
		if id == "" {
			return fmt.Errorf("%s with empty id: %w", kind, ErrInvalidEntity)
		}
		if seen[id] {
			return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
		}
		seen[id] = true
		if !pos.Finite() {
			return fmt.Errorf("%s %q position: %w", kind, id, ErrNonFinite)
		}
		return nil
	}
	for _, s := range g.Systems {
		if err := check("system", s.ID, s.Pos); err != nil {
			return err
		}
	}
	for _, bh := range g.BlackHoles {
		if err := check("black hole", bh.ID, bh.Pos); err != nil {
			return err
		}
	}
	return nil
}
